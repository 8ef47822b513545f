package scholarship

// SelectionMode governs how many sub-types a student may pick for a
// scholarship type, and in what order.
type SelectionMode string

const (
	SelectionSingle       SelectionMode = "single"
	SelectionMultiple     SelectionMode = "multiple"
	SelectionHierarchical SelectionMode = "hierarchical"
)

// Normalize maps an empty or unknown mode to the default (multiple).
func (m SelectionMode) Normalize() SelectionMode {
	switch m {
	case SelectionSingle, SelectionMultiple, SelectionHierarchical:
		return m
	default:
		return SelectionMultiple
	}
}

// GeneralSubType is the sentinel value meaning "no meaningful sub-typing".
// Options carrying it (or an empty value) are never selectable and never
// count toward the selection-required completion item.
const GeneralSubType = "general"

type SubTypeOption struct {
	Value   string `json:"value"`
	Label   string `json:"label"`
	LabelEN string `json:"label_en,omitempty"`
}

// ScholarshipType describes one scholarship program the student may apply
// to. EligibleSubTypes is ordered; in hierarchical mode the order defines
// the required selection sequence.
type ScholarshipType struct {
	Code                 string          `json:"code"`
	Name                 string          `json:"name"`
	NameEN               string          `json:"name_en,omitempty"`
	EligibleSubTypes     []SubTypeOption `json:"eligible_sub_types"`
	SubTypeSelectionMode SelectionMode   `json:"sub_type_selection_mode,omitempty"`
}

// SelectableValues returns the ordered sub-type values with the sentinel
// filtered out.
func (t ScholarshipType) SelectableValues() []string {
	out := make([]string, 0, len(t.EligibleSubTypes))
	for _, o := range t.EligibleSubTypes {
		if o.Value == "" || o.Value == GeneralSubType {
			continue
		}
		out = append(out, o.Value)
	}
	return out
}

// Field is one input of a scholarship's dynamic application form.
// Fixed fields carry a system-supplied value the student cannot edit.
type Field struct {
	Name         string `json:"name"`
	Label        string `json:"label"`
	IsActive     bool   `json:"is_active"`
	IsRequired   bool   `json:"is_required"`
	IsFixed      bool   `json:"is_fixed"`
	PrefillValue string `json:"prefill_value,omitempty"`
}

// Document is one upload slot of the form. Fixed documents point at a file
// the system already holds.
type Document struct {
	Name            string `json:"name"`
	Label           string `json:"label"`
	IsActive        bool   `json:"is_active"`
	IsRequired      bool   `json:"is_required"`
	IsFixed         bool   `json:"is_fixed"`
	ExistingFileURL string `json:"existing_file_url,omitempty"`
}

type FormSchema struct {
	Fields    []Field    `json:"fields"`
	Documents []Document `json:"documents"`
}

// FormValues maps field name to the current scalar value. nil and "" mean
// the field is unfilled; numeric zero and boolean false are real values.
type FormValues map[string]any

// UploadedFile is a handle to one attached file. Only presence matters for
// completion scoring.
type UploadedFile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Key  string `json:"key"`
	Size int64  `json:"size"`
}

type FileValues map[string][]UploadedFile
