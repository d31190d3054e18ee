package roster

import "strings"

type Office struct {
	ID   string
	Name string
}

type Team struct {
	ID       string
	OfficeID string
	Name     string
}

// Directory is the tenant state a roster is resolved against.
type Directory struct {
	Offices []Office
	Teams   []Team
	Emails  []string
}

func (d Directory) FindOffice(name string) (Office, bool) {
	name = strings.TrimSpace(name)
	for _, office := range d.Offices {
		if strings.EqualFold(strings.TrimSpace(office.Name), name) {
			return office, true
		}
	}
	return Office{}, false
}

func (d Directory) FindTeam(name string) (Team, bool) {
	name = strings.TrimSpace(name)
	for _, team := range d.Teams {
		if strings.EqualFold(strings.TrimSpace(team.Name), name) {
			return team, true
		}
	}
	return Team{}, false
}

func (d Directory) EmailSet() map[string]struct{} {
	set := make(map[string]struct{}, len(d.Emails))
	for _, email := range d.Emails {
		set[strings.ToLower(strings.TrimSpace(email))] = struct{}{}
	}
	return set
}
