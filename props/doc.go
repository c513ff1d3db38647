// Package props provides the property set value model shared by styles,
// numbering levels and document nodes, together with the merge primitive
// used to layer them.
//
// # Values
//
// A [Set] is an ordered mapping from attribute names to [Value]s. A value
// is a scalar (bool, int, float, string), a nested [Set] or a list. The
// distinction between an absent attribute and an explicitly cleared one
// is kept: absence means the key is not in the set, while [Null] is a
// present-but-cleared marker.
//
//	spacing := props.NewSet().
//	    Put("before", props.Int(240)).
//	    Put("after", props.Int(120))
//	para := props.NewSet().
//	    Put("jc", props.String("center")).
//	    Put("spacing", props.Nested(spacing))
//
// # Merging
//
// [Merge] layers an override on top of a base, recursing into nested sets
// and replacing everything else wholesale. [MergeChain] folds any number
// of sets left to right so that later sets win:
//
//	effective := props.MergeChain(defaults, styleProps, direct)
//
// Neither operation mutates its inputs.
package props
