package render

import "github.com/tsawler/docxconv/numbering"

// levelBullets are the fallback glyphs per list level.
var levelBullets = []string{"•", "○", "■", "□", "▪", "▫", "►", "◦", "•"}

// symbolBullets maps Symbol and Wingdings private-use code points that
// Word writes into w:lvlText to their Unicode look-alikes.
var symbolBullets = map[rune]string{
	0xF0B7: "•", // Symbol bullet
	0xF0A7: "▪", // Wingdings small square
	0xF06E: "■",
	0xF06F: "□",
	0xF071: "❑",
	0xF075: "◆",
	0xF076: "❖",
	0xF0A8: "◻",
	0xF0D8: "➢",
	0xF0E0: "➔",
	0xF0FC: "✓",
	0xF0FB: "✗",
	0xF02D: "-",
}

// markerText returns the text to show for a rendered marker. Bullet
// glyphs from symbol fonts are mapped to Unicode and unrenderable ones
// replaced by the level's default bullet.
func markerText(m numbering.Marker) string {
	if m.Level == nil || m.Level.Format != numbering.FormatBullet {
		return m.Text
	}
	return bulletChar(m.Text, m.Level.Index)
}

// bulletChar returns the appropriate bullet character for the level.
func bulletChar(lvlText string, level int) string {
	if lvlText != "" {
		if isRenderableBullet(lvlText) {
			return lvlText
		}
		runes := []rune(lvlText)
		if len(runes) == 1 {
			if s, ok := symbolBullets[runes[0]]; ok {
				return s
			}
		}
	}

	if level >= 0 && level < len(levelBullets) {
		return levelBullets[level]
	}
	return "•"
}

// isRenderableBullet checks if a bullet character will render properly.
// Private Use Area characters only display in the symbol font they came from.
func isRenderableBullet(s string) bool {
	for _, r := range s {
		if r >= 0xE000 && r <= 0xF8FF {
			return false
		}
		if r < 0x20 {
			return false
		}
	}
	return len(s) > 0
}
