package scholarship_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anud18/scholarship-system-sub000/internal/scholarship"
)

var ordered = []string{"A", "B", "C"}

func TestToggleSingle(t *testing.T) {
	got := scholarship.Toggle(nil, "A", scholarship.SelectionSingle, ordered)
	assert.Equal(t, []string{"A"}, got)

	// picking another value replaces, never appends
	got = scholarship.Toggle(got, "B", scholarship.SelectionSingle, ordered)
	assert.Equal(t, []string{"B"}, got)

	// toggling the sole selection deselects
	got = scholarship.Toggle(got, "B", scholarship.SelectionSingle, ordered)
	assert.Empty(t, got)
}

func TestToggleSingleDeselectIdempotent(t *testing.T) {
	once := scholarship.Toggle([]string{}, "A", scholarship.SelectionSingle, ordered)
	twice := scholarship.Toggle(once, "A", scholarship.SelectionSingle, ordered)
	assert.Equal(t, []string{}, twice)
}

func TestToggleMultiple(t *testing.T) {
	s := scholarship.Toggle(nil, "B", scholarship.SelectionMultiple, ordered)
	s = scholarship.Toggle(s, "A", scholarship.SelectionMultiple, ordered)
	s = scholarship.Toggle(s, "C", scholarship.SelectionMultiple, ordered)
	assert.Equal(t, []string{"B", "A", "C"}, s, "appends in click order")

	s = scholarship.Toggle(s, "A", scholarship.SelectionMultiple, ordered)
	assert.Equal(t, []string{"B", "C"}, s, "removal keeps relative order")
}

func TestToggleMultipleIsSetToggle(t *testing.T) {
	s := []string{"A", "C"}
	for _, v := range ordered {
		got := scholarship.Toggle(s, v, scholarship.SelectionMultiple, ordered)
		before := contains(s, v)
		assert.Equal(t, !before, contains(got, v), "membership must flip for %s", v)
	}
}

func TestToggleHierarchicalInOrder(t *testing.T) {
	s := []string{}
	s = scholarship.Toggle(s, "A", scholarship.SelectionHierarchical, ordered)
	s = scholarship.Toggle(s, "B", scholarship.SelectionHierarchical, ordered)
	s = scholarship.Toggle(s, "C", scholarship.SelectionHierarchical, ordered)
	assert.Equal(t, []string{"A", "B", "C"}, s)

	// nothing beyond the list
	assert.Equal(t, s, scholarship.Toggle(s, "D", scholarship.SelectionHierarchical, ordered))
}

func TestToggleHierarchicalOutOfOrderRejected(t *testing.T) {
	assert.Equal(t, []string{}, scholarship.Toggle([]string{}, "B", scholarship.SelectionHierarchical, ordered))
	assert.Equal(t, []string{}, scholarship.Toggle([]string{}, "C", scholarship.SelectionHierarchical, ordered))
	assert.Equal(t, []string{"A"}, scholarship.Toggle([]string{"A"}, "C", scholarship.SelectionHierarchical, ordered))
}

func TestToggleHierarchicalCascadingDeselect(t *testing.T) {
	assert.Equal(t, []string{"A"}, scholarship.Toggle([]string{"A", "B", "C"}, "B", scholarship.SelectionHierarchical, ordered))
	assert.Equal(t, []string{}, scholarship.Toggle([]string{"A", "B", "C"}, "A", scholarship.SelectionHierarchical, ordered))
	assert.Equal(t, []string{"A", "B"}, scholarship.Toggle([]string{"A", "B", "C"}, "C", scholarship.SelectionHierarchical, ordered))
}

// Any random toggle walk must keep the selection a prefix of the ordered
// list.
func TestToggleHierarchicalPrefixInvariant(t *testing.T) {
	walks := [][]string{
		{"A", "B", "C"},
		{"B", "A", "A", "A"},
		{"A", "B", "A", "B", "C"},
		{"C", "C", "A", "C", "B", "B"},
	}
	for _, walk := range walks {
		s := []string{}
		for _, v := range walk {
			s = scholarship.Toggle(s, v, scholarship.SelectionHierarchical, ordered)
			assert.True(t, isPrefix(s, ordered), "walk %v produced %v", walk, s)
		}
	}
}

func TestToggleDoesNotMutateInput(t *testing.T) {
	in := []string{"A", "B", "C"}
	_ = scholarship.Toggle(in, "B", scholarship.SelectionHierarchical, ordered)
	assert.Equal(t, []string{"A", "B", "C"}, in)

	in = []string{"A", "B"}
	_ = scholarship.Toggle(in, "A", scholarship.SelectionMultiple, ordered)
	assert.Equal(t, []string{"A", "B"}, in)
}

func TestToggleUnknownModeDefaultsToMultiple(t *testing.T) {
	got := scholarship.Toggle([]string{"A"}, "B", scholarship.SelectionMode(""), ordered)
	assert.Equal(t, []string{"A", "B"}, got)
}

func TestSelectionState(t *testing.T) {
	st := scholarship.NewSelectionState()
	st.Toggle("phd", "A", scholarship.SelectionHierarchical, ordered)
	st.Toggle("phd", "B", scholarship.SelectionHierarchical, ordered)
	st.Toggle("nstc", "X", scholarship.SelectionSingle, []string{"X", "Y"})
	assert.Equal(t, []string{"A", "B"}, st.Get("phd"))
	assert.Equal(t, []string{"X"}, st.Get("nstc"))

	st.Reset("phd")
	assert.Empty(t, st.Get("phd"))
	assert.Equal(t, []string{"X"}, st.Get("nstc"), "reset is per code")

	st.ResetAll()
	assert.Empty(t, st.Get("nstc"))
}

func TestSelectableValuesFiltersSentinel(t *testing.T) {
	st := scholarship.ScholarshipType{
		Code: "phd",
		EligibleSubTypes: []scholarship.SubTypeOption{
			{Value: "general", Label: "General"},
			{Value: "A", Label: "Track A"},
			{Value: "", Label: "placeholder"},
			{Value: "B", Label: "Track B"},
		},
	}
	assert.Equal(t, []string{"A", "B"}, st.SelectableValues())
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func isPrefix(s, of []string) bool {
	if len(s) > len(of) {
		return false
	}
	for i := range s {
		if s[i] != of[i] {
			return false
		}
	}
	return true
}
