package scholarship

// SelectionState maps scholarship code to the ordered sequence of selected
// sub-type values for that code. The hosting view owns an instance and
// writes Toggle results back into it.
type SelectionState map[string][]string

func NewSelectionState() SelectionState { return SelectionState{} }

func (s SelectionState) Get(code string) []string { return s[code] }

// Toggle applies the transition for one sub-type value and stores the
// result back under code.
func (s SelectionState) Toggle(code, target string, mode SelectionMode, orderedValid []string) {
	s[code] = Toggle(s[code], target, mode, orderedValid)
}

// Reset clears the entry for code. Called when the active scholarship type
// changes so selections never leak across types.
func (s SelectionState) Reset(code string) { delete(s, code) }

func (s SelectionState) ResetAll() {
	for k := range s {
		delete(s, k)
	}
}

// Toggle answers "what does the selection become when the user toggles
// target". Pure: never errors, never mutates its inputs. Invalid toggles
// (out-of-order in hierarchical mode) return the input unchanged.
//
// orderedValid is the scholarship's sub-type list with the general/empty
// sentinel filtered out, in schema order; it is only consulted in
// hierarchical mode.
func Toggle(current []string, target string, mode SelectionMode, orderedValid []string) []string {
	switch mode.Normalize() {
	case SelectionSingle:
		if len(current) == 1 && current[0] == target {
			return []string{}
		}
		return []string{target}

	case SelectionHierarchical:
		if i := indexOf(current, target); i >= 0 {
			// Later selections depend on earlier ones: deselecting a step
			// also drops everything selected after it.
			return append([]string{}, current[:i]...)
		}
		if len(current) < len(orderedValid) && orderedValid[len(current)] == target {
			out := make([]string, 0, len(current)+1)
			out = append(out, current...)
			return append(out, target)
		}
		// Out-of-order attempt: silently ignored, not an error.
		return current

	default: // multiple
		if i := indexOf(current, target); i >= 0 {
			out := make([]string, 0, len(current)-1)
			out = append(out, current[:i]...)
			return append(out, current[i+1:]...)
		}
		out := make([]string, 0, len(current)+1)
		out = append(out, current...)
		return append(out, target)
	}
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
