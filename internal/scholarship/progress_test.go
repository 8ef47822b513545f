package scholarship_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anud18/scholarship-system-sub000/internal/scholarship"
)

func baseSchema() *scholarship.FormSchema {
	return &scholarship.FormSchema{
		Fields: []scholarship.Field{
			{Name: "name", IsActive: true, IsRequired: true},
			{Name: "advisor", IsActive: true, IsRequired: true},
			{Name: "note", IsActive: true, IsRequired: false},
			{Name: "legacy", IsActive: false, IsRequired: true}, // inactive: ignored
		},
		Documents: []scholarship.Document{
			{Name: "transcript", IsActive: true, IsRequired: true},
			{Name: "photo", IsActive: true, IsRequired: false},
		},
	}
}

func TestComputeProgressNilSchema(t *testing.T) {
	got := scholarship.ComputeProgress(nil, scholarship.FormValues{"name": "x"}, nil, nil, nil, true)
	assert.Equal(t, 0, got, "schema not loaded yet must score 0")
}

func TestComputeProgressEmptyToFull(t *testing.T) {
	schema := baseSchema()
	// required items: name, advisor, transcript, terms = 4
	assert.Equal(t, 0, scholarship.ComputeProgress(schema, nil, nil, nil, nil, false))

	values := scholarship.FormValues{"name": "Lin"}
	assert.Equal(t, 25, scholarship.ComputeProgress(schema, values, nil, nil, nil, false))

	values["advisor"] = "Prof. Chen"
	assert.Equal(t, 50, scholarship.ComputeProgress(schema, values, nil, nil, nil, false))

	files := scholarship.FileValues{"transcript": {{ID: "f1", Name: "t.pdf"}}}
	assert.Equal(t, 75, scholarship.ComputeProgress(schema, values, files, nil, nil, false))

	assert.Equal(t, 100, scholarship.ComputeProgress(schema, values, files, nil, nil, true))
}

func TestComputeProgressTermsAlone(t *testing.T) {
	schema := &scholarship.FormSchema{}
	assert.Equal(t, 0, scholarship.ComputeProgress(schema, nil, nil, nil, nil, false))
	assert.Equal(t, 100, scholarship.ComputeProgress(schema, nil, nil, nil, nil, true))
}

func TestComputeProgressSubTypeRequirement(t *testing.T) {
	schema := &scholarship.FormSchema{}
	selectable := []string{"A", "B"}
	// items: selection + terms = 2
	assert.Equal(t, 0, scholarship.ComputeProgress(schema, nil, nil, selectable, nil, false))
	assert.Equal(t, 50, scholarship.ComputeProgress(schema, nil, nil, selectable, []string{"A"}, false))
	assert.Equal(t, 100, scholarship.ComputeProgress(schema, nil, nil, selectable, []string{"A"}, true))

	// sentinel-only scholarships have no selection requirement
	assert.Equal(t, 100, scholarship.ComputeProgress(schema, nil, nil, nil, nil, true))
}

func TestComputeProgressFixedEntries(t *testing.T) {
	schema := &scholarship.FormSchema{
		Fields: []scholarship.Field{
			{Name: "student_id", IsActive: true, IsRequired: true, IsFixed: true, PrefillValue: "B1080001"},
			{Name: "bank", IsActive: true, IsRequired: true, IsFixed: true}, // fixed but no prefill: still open
		},
		Documents: []scholarship.Document{
			{Name: "enrollment", IsActive: true, IsRequired: true, IsFixed: true, ExistingFileURL: "file://enrollment.pdf"},
		},
	}
	// items: student_id (auto), bank, enrollment (auto), terms = 4
	assert.Equal(t, 50, scholarship.ComputeProgress(schema, nil, nil, nil, nil, false))

	// a fixed entry without a system value falls back to user input
	values := scholarship.FormValues{"bank": "004-123456"}
	assert.Equal(t, 75, scholarship.ComputeProgress(schema, values, nil, nil, nil, false))
	assert.Equal(t, 100, scholarship.ComputeProgress(schema, values, nil, nil, nil, true))
}

func TestComputeProgressValuePresence(t *testing.T) {
	schema := &scholarship.FormSchema{
		Fields: []scholarship.Field{{Name: "gpa", IsActive: true, IsRequired: true}},
	}
	// items: gpa + terms = 2
	cases := []struct {
		name string
		val  any
		want int
	}{
		{"missing", nil, 50},
		{"empty string", "", 50},
		{"string", "3.8", 100},
		{"zero number counts", 0, 100},
		{"false counts", false, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			values := scholarship.FormValues{}
			if tc.val != nil {
				values["gpa"] = tc.val
			}
			assert.Equal(t, tc.want, scholarship.ComputeProgress(schema, values, nil, nil, nil, true))
		})
	}
}

func TestComputeProgressRounding(t *testing.T) {
	// 3 required fields + terms = 4 items is too even; build 3 items so we
	// exercise the half-up rounding: 1/3 -> 33, 2/3 -> 67.
	schema := &scholarship.FormSchema{
		Fields: []scholarship.Field{
			{Name: "a", IsActive: true, IsRequired: true},
			{Name: "b", IsActive: true, IsRequired: true},
		},
	}
	assert.Equal(t, 33, scholarship.ComputeProgress(schema, scholarship.FormValues{"a": "x"}, nil, nil, nil, false))
	assert.Equal(t, 67, scholarship.ComputeProgress(schema, scholarship.FormValues{"a": "x", "b": "y"}, nil, nil, nil, false))
}

func TestComputeProgressBounds(t *testing.T) {
	schema := baseSchema()
	inputs := []struct {
		values scholarship.FormValues
		files  scholarship.FileValues
		sel    []string
		terms  bool
	}{
		{nil, nil, nil, false},
		{scholarship.FormValues{"name": "x", "advisor": "y", "unknown": "z"}, nil, []string{"A"}, true},
		{scholarship.FormValues{"name": ""}, scholarship.FileValues{"transcript": {}}, nil, true},
	}
	for _, in := range inputs {
		got := scholarship.ComputeProgress(schema, in.values, in.files, []string{"A"}, in.sel, in.terms)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 100)
	}
}
