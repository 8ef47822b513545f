package scholarship

import "math"

// ComputeProgress computes the 0..100 completion percentage of an
// application against its form schema.
//
// Required items are: every active+required field, every active+required
// document, the sub-type selection (only when selectableSubTypes is
// non-empty) and the terms agreement (always). Fixed entries with a
// system-supplied value or file count as completed regardless of user
// input. A nil schema means "not loaded yet" and scores 0.
func ComputeProgress(schema *FormSchema, values FormValues, files FileValues, selectableSubTypes, selection []string, agreeTerms bool) int {
	if schema == nil {
		return 0
	}

	total, completed := 0, 0

	for _, f := range schema.Fields {
		if !f.IsActive || !f.IsRequired {
			continue
		}
		total++
		if f.IsFixed && f.PrefillValue != "" {
			completed++
		} else if valuePresent(values[f.Name]) {
			completed++
		}
	}

	for _, d := range schema.Documents {
		if !d.IsActive || !d.IsRequired {
			continue
		}
		total++
		if d.IsFixed && d.ExistingFileURL != "" {
			completed++
		} else if len(files[d.Name]) > 0 {
			completed++
		}
	}

	if len(selectableSubTypes) > 0 {
		total++
		if len(selection) > 0 {
			completed++
		}
	}

	total++
	if agreeTerms {
		completed++
	}

	if total == 0 {
		return 100
	}
	// Half-up rounding; math.Round is half-away-from-zero, which is the
	// same thing for non-negative operands.
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// valuePresent reports whether a form value counts as filled in. nil and
// the empty string do not; zero numbers and false booleans do.
func valuePresent(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	default:
		return true
	}
}
