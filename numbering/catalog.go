package numbering

import "github.com/tsawler/docxconv/props"

// MaxLevel is the deepest list level index.
const MaxLevel = 8

// Suffix is what follows a rendered marker (w:suff).
type Suffix string

const (
	SuffixTab     Suffix = "tab"
	SuffixSpace   Suffix = "space"
	SuffixNothing Suffix = "nothing"
)

// Text returns the characters the suffix stands for. Anything unknown,
// including the empty suffix, is a tab.
func (s Suffix) Text() string {
	switch s {
	case SuffixSpace:
		return " "
	case SuffixNothing:
		return ""
	default:
		return "\t"
	}
}

// Level is one tier of a list definition (w:lvl).
type Level struct {
	Index  int
	Format Format
	// Text is the level text template, with %1..%9 naming levels 0..8.
	Text string
	// Start is the declared start value; nil means 1.
	Start *int
	// RestartAfter is the zero-based level whose use restarts this one.
	RestartAfter  *int
	Suffix        Suffix
	Justification string
	// Legal renders every placeholder as decimal (w:isLgl).
	Legal bool

	Paragraph *props.Set
	Run       *props.Set
}

// StartValue returns the declared start or 1.
func (l *Level) StartValue() int {
	if l == nil || l.Start == nil {
		return 1
	}
	return *l.Start
}

// Abstract is a reusable numbering definition (w:abstractNum).
type Abstract struct {
	ID     string
	Levels map[int]*Level
	// StyleLink names the numbering style this definition defines.
	StyleLink string
	// NumStyleLink names a numbering style whose definition this one uses.
	NumStyleLink   string
	MultiLevelType string
}

// Level returns the level definition at index i.
func (a *Abstract) Level(i int) (*Level, bool) {
	if a == nil {
		return nil, false
	}
	l, ok := a.Levels[i]
	return l, ok && l != nil
}

// Instance is a concrete list (w:num) referencing an abstract definition.
type Instance struct {
	ID         string
	AbstractID string
	// StartOverrides replaces the start value per level (w:startOverride).
	StartOverrides map[int]int
	// LevelOverrides replaces whole level definitions (w:lvlOverride/w:lvl).
	LevelOverrides map[int]*Level
}

// Catalog holds numbering instances and abstract definitions.
type Catalog struct {
	abstracts  map[string]*Abstract
	instances  map[string]*Instance
	styleLinks map[string]string // numbering style id -> instance id
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		abstracts:  make(map[string]*Abstract),
		instances:  make(map[string]*Instance),
		styleLinks: make(map[string]string),
	}
}

// AddAbstract registers an abstract definition.
func (c *Catalog) AddAbstract(a *Abstract) {
	if a != nil {
		c.abstracts[a.ID] = a
	}
}

// AddInstance registers a numbering instance.
func (c *Catalog) AddInstance(i *Instance) {
	if i != nil {
		c.instances[i.ID] = i
	}
}

// LinkStyle records that numbering style styleID is bound to instanceID,
// which is how w:numStyleLink references are followed.
func (c *Catalog) LinkStyle(styleID, instanceID string) {
	c.styleLinks[styleID] = instanceID
}

// Instance returns the instance with the given id.
func (c *Catalog) Instance(id string) (*Instance, bool) {
	if c == nil {
		return nil, false
	}
	i, ok := c.instances[id]
	return i, ok
}

// Abstract returns the abstract definition with the given id.
func (c *Catalog) Abstract(id string) (*Abstract, bool) {
	if c == nil {
		return nil, false
	}
	a, ok := c.abstracts[id]
	return a, ok
}

// Len returns the number of instances.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.instances)
}

// AbstractFor resolves an instance to the abstract definition holding its
// levels, following numStyleLink indirections. The walk is bounded and
// stops on revisits.
func (c *Catalog) AbstractFor(instanceID string) (*Abstract, bool) {
	inst, ok := c.Instance(instanceID)
	if !ok {
		return nil, false
	}
	abs, ok := c.Abstract(inst.AbstractID)
	if !ok {
		return nil, false
	}

	visited := map[string]bool{abs.ID: true}
	for abs.NumStyleLink != "" {
		next, ok := c.linked(abs.NumStyleLink)
		if !ok || visited[next.ID] {
			break
		}
		visited[next.ID] = true
		abs = next
	}
	return abs, true
}

func (c *Catalog) linked(styleID string) (*Abstract, bool) {
	instID, ok := c.styleLinks[styleID]
	if !ok {
		return nil, false
	}
	inst, ok := c.Instance(instID)
	if !ok {
		return nil, false
	}
	return c.Abstract(inst.AbstractID)
}

// Level returns the effective level definition for an instance, with
// level overrides applied. Levels outside 0-8 never resolve.
func (c *Catalog) Level(instanceID string, level int) (*Level, bool) {
	if level < 0 || level > MaxLevel {
		return nil, false
	}
	inst, ok := c.Instance(instanceID)
	if !ok {
		return nil, false
	}
	if l, ok := inst.LevelOverrides[level]; ok && l != nil {
		return l, true
	}
	abs, ok := c.AbstractFor(instanceID)
	if !ok {
		return nil, false
	}
	return abs.Level(level)
}

// StartValue returns the seed for a fresh counter: the instance's start
// override, else the level's declared start, else 1.
func (c *Catalog) StartValue(instanceID string, level int) int {
	if inst, ok := c.Instance(instanceID); ok {
		if v, ok := inst.StartOverrides[level]; ok {
			return v
		}
	}
	l, _ := c.Level(instanceID, level)
	return l.StartValue()
}

// LevelProperties returns the paragraph and run formatting of a level.
func (c *Catalog) LevelProperties(instanceID string, level int) (paragraph, run *props.Set) {
	l, ok := c.Level(instanceID, level)
	if !ok {
		return nil, nil
	}
	return l.Paragraph, l.Run
}
