package appraisal

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mohammadpnp/appraisal-import/internal/application/ingest"
	domain "github.com/mohammadpnp/appraisal-import/internal/domain/appraisal"
)

type enumField struct {
	name       string
	vocabulary []string
	def        string
	get        func(*domain.Appraisal) *string
}

var enumFields = []enumField{
	{FieldStage, domain.Stages, domain.DefaultStage, func(a *domain.Appraisal) *string { return &a.Stage }},
	{FieldPropertyType, domain.PropertyTypes, domain.DefaultPropertyType, func(a *domain.Appraisal) *string { return &a.PropertyType }},
}

// Validate classifies one normalized row. rowIndex is 1-based. Errors exclude
// the row from import; warnings are advisory. Enum values outside their
// vocabulary are reset to the default here, each with exactly one warning.
func Validate(row domain.Appraisal, rowIndex int) domain.ValidationResult {
	errs := []string{}
	warnings := []string{}
	row.FieldNotes = slices.Clone(row.FieldNotes)

	if strings.TrimSpace(row.Address) == "" {
		errs = append(errs, "address is required")
	}
	if row.AppraisalDate == nil {
		if note, ok := row.Note(FieldAppraisalDate, domain.NoteUnparsable); ok {
			errs = append(errs, fmt.Sprintf("appraisal date %q is not a recognised date", note.Raw))
		} else {
			errs = append(errs, "appraisal date is required")
		}
	}

	if row.VendorName == nil || strings.TrimSpace(*row.VendorName) == "" {
		warnings = append(warnings, "vendor name is missing")
	}
	if strings.TrimSpace(row.Address) != "" && row.Suburb == nil {
		warnings = append(warnings, fmt.Sprintf("address %q has no suburb; expected \"street, suburb\"", row.Address))
	}

	for _, note := range row.FieldNotes {
		switch {
		case note.Field == FieldAppraisalDate:
		case note.Kind == domain.NoteFallback:
			warnings = append(warnings, fallbackWarning(note.Field, note.Raw, note.Applied))
		case note.Kind == domain.NoteUnparsable:
			warnings = append(warnings, fmt.Sprintf("%s %q could not be read and was left blank", label(note.Field), note.Raw))
		}
	}

	for _, f := range enumFields {
		value := f.get(&row)
		if *value == "" {
			*value = f.def
			continue
		}
		if domain.InVocabulary(*value, f.vocabulary) {
			continue
		}
		raw := *value
		*value = f.def
		if _, noted := row.Note(f.name, domain.NoteFallback); !noted {
			row.FieldNotes = append(row.FieldNotes, domain.FieldNote{Field: f.name, Kind: domain.NoteFallback, Raw: raw, Applied: f.def})
			warnings = append(warnings, fallbackWarning(f.name, raw, f.def))
		}
	}

	if row.AppraisalDate != nil && row.FollowUpDate != nil && *row.FollowUpDate < *row.AppraisalDate {
		warnings = append(warnings, fmt.Sprintf("follow-up date %s is before appraisal date %s", *row.FollowUpDate, *row.AppraisalDate))
	}

	return domain.ValidationResult{
		RowIndex: rowIndex,
		Row:      row,
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}

func fallbackWarning(field, raw, applied string) string {
	return fmt.Sprintf("%s %q is not recognised; using %q", label(field), raw, applied)
}

// ValidateRows parses and validates raw rows in input order. Row numbers are
// 1-based positions in rows; blank rows keep their number but yield no result.
func ValidateRows(rows []ingest.RawRow) []domain.ValidationResult {
	results := make([]domain.ValidationResult, 0, len(rows))
	for i, raw := range rows {
		if raw.Blank() {
			continue
		}
		results = append(results, Validate(ParseRow(raw), i+1))
	}
	return results
}
