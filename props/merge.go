package props

// MergeOption adjusts how Merge treats override values.
type MergeOption func(*mergeConfig)

type mergeConfig struct {
	explicitNulls bool
}

// ExplicitNulls makes a Null in the override overwrite the base value with
// the cleared marker instead of being ignored.
func ExplicitNulls() MergeOption {
	return func(c *mergeConfig) {
		c.explicitNulls = true
	}
}

// Merge layers override on top of base and returns a new set.
//
// For each key in override: when both sides hold nested sets the merge
// recurses, otherwise the override value replaces the base value
// wholesale (lists included). Null overrides are skipped unless
// ExplicitNulls is given. Keys only in base are carried through. Neither
// input is modified. A nil base behaves like an empty set, a nil override
// yields a copy of base, and Merge(nil, nil) is nil.
func Merge(base, override *Set, opts ...MergeOption) *Set {
	var cfg mergeConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return merge(base, override, cfg)
}

func merge(base, override *Set, cfg mergeConfig) *Set {
	if base == nil && override == nil {
		return nil
	}
	if override == nil {
		return base.Clone()
	}
	if base == nil {
		base = NewSet()
	}

	out := base.Clone()
	for _, k := range override.keys {
		ov := override.values[k]
		if ov.kind == KindNull {
			if cfg.explicitNulls {
				out.Put(k, Null())
			}
			continue
		}
		if ov.kind == KindSet {
			var bs *Set
			if bv, ok := out.values[k]; ok && bv.kind == KindSet {
				bs = bv.set
			}
			out.Put(k, Nested(merge(bs, ov.set, cfg)))
			continue
		}
		out.Put(k, ov.clone())
	}
	return out
}

// MergeChain folds sets left to right: earlier sets are lower precedence
// defaults and later sets win. Nil entries contribute nothing.
func MergeChain(sets ...*Set) *Set {
	return MergeChainWith(nil, sets...)
}

// MergeChainWith is MergeChain with merge options applied at every step.
func MergeChainWith(opts []MergeOption, sets ...*Set) *Set {
	var out *Set
	for _, s := range sets {
		out = Merge(out, s, opts...)
	}
	return out
}
