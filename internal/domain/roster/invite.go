package roster

// InviteRequest is what the external invitation action receives for one user.
type InviteRequest struct {
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     *string `json:"phone,omitempty"`
	Role      string  `json:"role"`
	TenantID  string  `json:"tenant_id"`
	OfficeID  *string `json:"office_id,omitempty"`
	TeamID    *string `json:"team_id,omitempty"`
	InvitedBy string  `json:"invited_by"`
}

type InviteResult struct {
	TargetID string `json:"target_id"`
	Email    string `json:"email"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
}

// BulkInviteProgress is a snapshot; each new one replaces the previous.
type BulkInviteProgress struct {
	Total         int    `json:"total"`
	Completed     int    `json:"completed"`
	Successful    int    `json:"successful"`
	Failed        int    `json:"failed"`
	CurrentTarget string `json:"current_target,omitempty"`
}

func (p BulkInviteProgress) Percent() int {
	if p.Total == 0 {
		return 100
	}
	return p.Completed * 100 / p.Total
}
