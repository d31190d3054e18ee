package appraisal

import (
	"github.com/mohammadpnp/appraisal-import/internal/application/ingest"
	domain "github.com/mohammadpnp/appraisal-import/internal/domain/appraisal"
)

// ParseRow maps and normalizes one raw row. It never fails: values that
// cannot be read are left nil and recorded as field notes for the validator.
func ParseRow(raw ingest.RawRow) domain.Appraisal {
	p := rowParser{ix: ingest.NewIndex(raw)}
	row := &p.row

	row.Address, _ = p.value(FieldAddress)
	if suburb, ok := p.value(FieldSuburb); ok {
		row.Suburb = nonEmpty(ingest.TitleCase(suburb))
	} else if street, suburb, ok := ingest.SplitAddress(row.Address); ok {
		row.Address = street
		row.Suburb = nonEmpty(ingest.TitleCase(suburb))
	}

	row.AppraisalDate = p.date(FieldAppraisalDate)
	row.FollowUpDate = p.date(FieldFollowUpDate)
	row.Stage = p.enum(FieldStage, domain.Stages, domain.DefaultStage)
	row.PropertyType = p.enum(FieldPropertyType, domain.PropertyTypes, domain.DefaultPropertyType)

	if name, ok := p.value(FieldVendorName); ok {
		row.VendorName = nonEmpty(ingest.TitleCase(name))
	}
	if phone, ok := p.value(FieldVendorPhone); ok {
		if row.VendorPhone = ingest.NormalizePhone(phone); row.VendorPhone == nil {
			p.note(FieldVendorPhone, domain.NoteUnparsable, phone, "")
		}
	}
	if email, ok := p.value(FieldVendorEmail); ok {
		if row.VendorEmail = ingest.NormalizeEmail(email); row.VendorEmail == nil {
			p.note(FieldVendorEmail, domain.NoteUnparsable, email, "")
		}
	}
	if value, ok := p.value(FieldEstimatedValue); ok {
		if row.EstimatedValue = ingest.NormalizeNumber(value); row.EstimatedValue == nil {
			p.note(FieldEstimatedValue, domain.NoteUnparsable, value, "")
		}
	}
	row.Bedrooms = p.integer(FieldBedrooms)
	row.Bathrooms = p.integer(FieldBathrooms)

	if notes, ok := p.value(FieldNotes); ok {
		row.Notes = ingest.Text(notes)
	}

	return p.row
}

type rowParser struct {
	ix  ingest.Index
	row domain.Appraisal
}

func (p *rowParser) value(field string) (string, bool) {
	return p.ix.Resolve(Columns[field])
}

func (p *rowParser) note(field string, kind domain.NoteKind, raw, applied string) {
	p.row.FieldNotes = append(p.row.FieldNotes, domain.FieldNote{
		Field:   field,
		Kind:    kind,
		Raw:     raw,
		Applied: applied,
	})
}

func (p *rowParser) date(field string) *string {
	raw, ok := p.value(field)
	if !ok {
		return nil
	}
	date := ingest.NormalizeDate(raw)
	if date == nil {
		p.note(field, domain.NoteUnparsable, raw, "")
	}
	return date
}

func (p *rowParser) integer(field string) *int {
	raw, ok := p.value(field)
	if !ok {
		return nil
	}
	n := ingest.NormalizeInt(raw)
	if n == nil {
		p.note(field, domain.NoteUnparsable, raw, "")
	}
	return n
}

func (p *rowParser) enum(field string, vocabulary []string, def string) string {
	raw, _ := p.value(field)
	value, fellBack := ingest.NormalizeEnum(raw, vocabulary, def)
	if fellBack {
		p.note(field, domain.NoteFallback, raw, value)
	}
	return value
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
