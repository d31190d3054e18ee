package appraisal

import "strings"

const (
	DefaultStage        = "VAP"
	DefaultPropertyType = "Other"
)

var (
	Stages        = []string{"VAP", "MAP", "LAP", "Booked", "Listed", "Lost"}
	PropertyTypes = []string{"House", "Unit", "Townhouse", "Apartment", "Section", "Lifestyle", "Other"}
)

type NoteKind string

const (
	// NoteFallback marks a value that was rewritten to the field default.
	NoteFallback NoteKind = "fallback"
	// NoteUnparsable marks a value that was present but could not be read.
	NoteUnparsable NoteKind = "unparsable"
)

// FieldNote records what normalization did to a single raw value.
type FieldNote struct {
	Field   string   `json:"field"`
	Kind    NoteKind `json:"kind"`
	Raw     string   `json:"raw"`
	Applied string   `json:"applied,omitempty"`
}

// Appraisal is one normalized import row. Optional fields are nil when absent
// or unreadable; dates are ISO YYYY-MM-DD.
type Appraisal struct {
	Address        string      `json:"address"`
	Suburb         *string     `json:"suburb"`
	AppraisalDate  *string     `json:"appraisal_date"`
	FollowUpDate   *string     `json:"follow_up_date"`
	Stage          string      `json:"stage"`
	PropertyType   string      `json:"property_type"`
	VendorName     *string     `json:"vendor_name"`
	VendorPhone    *string     `json:"vendor_phone"`
	VendorEmail    *string     `json:"vendor_email"`
	EstimatedValue *float64    `json:"estimated_value"`
	Bedrooms       *int        `json:"bedrooms"`
	Bathrooms      *int        `json:"bathrooms"`
	Notes          *string     `json:"notes"`
	FieldNotes     []FieldNote `json:"field_notes,omitempty"`
}

// Key is the natural key of an appraisal: normalized address plus appraisal date.
type Key struct {
	Address       string
	AppraisalDate string
}

func (k Key) String() string {
	return strings.ToLower(strings.TrimSpace(k.Address)) + "|" + k.AppraisalDate
}

// Key reports false when the row lacks either part of the natural key.
func (a Appraisal) Key() (Key, bool) {
	if strings.TrimSpace(a.Address) == "" || a.AppraisalDate == nil || *a.AppraisalDate == "" {
		return Key{}, false
	}
	return Key{Address: a.Address, AppraisalDate: *a.AppraisalDate}, true
}

func (a Appraisal) Note(field string, kind NoteKind) (FieldNote, bool) {
	for _, note := range a.FieldNotes {
		if note.Field == field && note.Kind == kind {
			return note, true
		}
	}
	return FieldNote{}, false
}

// ValidationResult wraps a row with its classification. Valid is true exactly
// when Errors is empty.
type ValidationResult struct {
	RowIndex int       `json:"row_index"`
	Row      Appraisal `json:"row"`
	Valid    bool      `json:"valid"`
	Errors   []string  `json:"errors"`
	Warnings []string  `json:"warnings"`
}

func (r ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

func InVocabulary(value string, vocabulary []string) bool {
	for _, v := range vocabulary {
		if v == value {
			return true
		}
	}
	return false
}
