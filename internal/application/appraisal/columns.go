package appraisal

const (
	FieldAddress        = "address"
	FieldSuburb         = "suburb"
	FieldAppraisalDate  = "appraisal_date"
	FieldFollowUpDate   = "follow_up_date"
	FieldStage          = "stage"
	FieldPropertyType   = "property_type"
	FieldVendorName     = "vendor_name"
	FieldVendorPhone    = "vendor_phone"
	FieldVendorEmail    = "vendor_email"
	FieldEstimatedValue = "estimated_value"
	FieldBedrooms       = "bedrooms"
	FieldBathrooms      = "bathrooms"
	FieldNotes          = "notes"
)

// Columns lists the header synonyms accepted for each field, most preferred first.
var Columns = map[string][]string{
	FieldAddress:        {"Address", "Street Address", "Property Address", "Property", "Street"},
	FieldSuburb:         {"Suburb", "Locality", "Area", "Town", "City"},
	FieldAppraisalDate:  {"Appraisal Date", "Date", "Appraised On", "Appraisal"},
	FieldFollowUpDate:   {"Follow Up Date", "Follow Up", "Next Follow Up", "Followup Date"},
	FieldStage:          {"Stage", "Status", "Pipeline Stage"},
	FieldPropertyType:   {"Property Type", "Type", "Dwelling Type"},
	FieldVendorName:     {"Vendor Name", "Vendor", "Owner Name", "Owner", "Client Name"},
	FieldVendorPhone:    {"Vendor Phone", "Phone", "Mobile", "Contact Number"},
	FieldVendorEmail:    {"Vendor Email", "Email", "Owner Email"},
	FieldEstimatedValue: {"Estimated Value", "Appraisal Value", "Value", "Estimate", "Price Estimate"},
	FieldBedrooms:       {"Bedrooms", "Beds", "Bed"},
	FieldBathrooms:      {"Bathrooms", "Baths", "Bath"},
	FieldNotes:          {"Notes", "Comments", "Comment"},
}

var fieldLabels = map[string]string{
	FieldAppraisalDate:  "appraisal date",
	FieldFollowUpDate:   "follow-up date",
	FieldStage:          "stage",
	FieldPropertyType:   "property type",
	FieldVendorPhone:    "vendor phone",
	FieldVendorEmail:    "vendor email",
	FieldEstimatedValue: "estimated value",
	FieldBedrooms:       "bedrooms",
	FieldBathrooms:      "bathrooms",
}

func label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}
