package roster

const (
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldFullName  = "full_name"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldRole      = "role"
	FieldOffice    = "office"
	FieldTeam      = "team"
)

var Columns = map[string][]string{
	FieldFirstName: {"First Name", "Given Name", "First"},
	FieldLastName:  {"Last Name", "Surname", "Family Name", "Last"},
	FieldFullName:  {"Name", "Full Name"},
	FieldEmail:     {"Email", "Email Address", "Work Email"},
	FieldPhone:     {"Phone", "Mobile", "Phone Number", "Cell"},
	FieldRole:      {"Role", "Position", "Access Level"},
	FieldOffice:    {"Office", "Office Name", "Branch"},
	FieldTeam:      {"Team", "Team Name"},
}
