package value

// Merge combines base and overlay into a new Value.
//
// When both are maps the result holds the union of their keys; a key present
// in both is merged recursively, a key present in one side is copied. In every
// other case (either side is not a map, or the kinds differ) overlay replaces
// base wholesale. Merge is total and not commutative: overlay always wins on
// conflicting leaves, so callers pass the outer or earlier data as base and
// the data contributed later as overlay.
func Merge(base, overlay Value) Value {
	if base.kind != KindMap || overlay.kind != KindMap {
		return overlay
	}
	out := make(map[string]Value, len(base.m)+len(overlay.m))
	for k, v := range base.m {
		out[k] = v
	}
	for k, ov := range overlay.m {
		if bv, ok := out[k]; ok {
			out[k] = Merge(bv, ov)
			continue
		}
		out[k] = ov
	}
	return Value{kind: KindMap, m: out}
}
