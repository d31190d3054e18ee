package roster

import (
	"context"
	"fmt"

	"github.com/mohammadpnp/appraisal-import/internal/application/progress"
	domain "github.com/mohammadpnp/appraisal-import/internal/domain/roster"
	"github.com/mohammadpnp/appraisal-import/internal/domain/tenant"
)

type InviteSelectedInput struct {
	Principal tenant.Principal
	Users     []domain.ParsedUser
	Progress  *progress.Latest[domain.BulkInviteProgress]
}

// InviteSelectedOutput lists the outcome per dispatched target. Rejected holds
// the selected users that failed revalidation and were never dispatched.
type InviteSelectedOutput struct {
	Targets  int                   `json:"targets"`
	Results  []domain.InviteResult `json:"results"`
	Rejected []domain.ParsedUser   `json:"rejected,omitempty"`
}

type InviteSelected interface {
	Execute(ctx context.Context, in InviteSelectedInput) (InviteSelectedOutput, error)
}

type inviteSelected struct {
	directory  domain.DirectoryReader
	dispatcher *Dispatcher
}

func NewInviteSelected(directory domain.DirectoryReader, dispatcher *Dispatcher) InviteSelected {
	return &inviteSelected{directory: directory, dispatcher: dispatcher}
}

// Execute revalidates the users the caller selected against the current
// tenant directory and dispatches only those that are still valid. Validity
// flags sent by the caller are not trusted.
func (uc *inviteSelected) Execute(ctx context.Context, in InviteSelectedInput) (InviteSelectedOutput, error) {
	if err := in.Principal.Require(); err != nil {
		return InviteSelectedOutput{}, err
	}

	chosen := make([]domain.ParsedUser, 0, len(in.Users))
	for _, u := range in.Users {
		if u.IsSelected {
			chosen = append(chosen, u)
		}
	}
	if len(chosen) == 0 {
		return InviteSelectedOutput{}, ErrNoTargets
	}

	dir, err := uc.directory.LoadDirectory(ctx, in.Principal.TenantID)
	if err != nil {
		return InviteSelectedOutput{}, fmt.Errorf("%w: %v", ErrLoadDirectory, err)
	}

	out := InviteSelectedOutput{}
	checked := Revalidate(chosen, dir)
	for _, u := range checked {
		if !u.Dispatchable() {
			out.Rejected = append(out.Rejected, u)
		}
	}
	targets := domain.Selected(checked)
	out.Targets = len(targets)
	if len(targets) == 0 {
		return out, ErrNoTargets
	}

	out.Results, err = uc.dispatcher.Dispatch(ctx, in.Principal, targets, in.Progress)
	return out, err
}
