package run

import (
	"context"
	"fmt"
	"strings"

	"github.com/mohammadpnp/appraisal-import/internal/application/appraisal"
	"github.com/mohammadpnp/appraisal-import/internal/application/progress"
	"github.com/mohammadpnp/appraisal-import/internal/application/roster"
	rosterdomain "github.com/mohammadpnp/appraisal-import/internal/domain/roster"
	domain "github.com/mohammadpnp/appraisal-import/internal/domain/run"
)

// AppraisalImportJob runs the chunked importer and forwards its percentage.
func AppraisalImportJob(uc appraisal.ImportAppraisals, in appraisal.ImportAppraisalsInput) Job {
	return Job{
		Kind:      domain.KindAppraisalImport,
		Principal: in.Principal,
		Run: func(ctx context.Context, report Reporter) (domain.Outcome, error) {
			updates := progress.NewLatest[int]()
			done := forward(updates, func(percent int) {
				report(domain.Progress{Percent: percent})
			})
			in.Progress = updates

			summary, err := uc.Execute(ctx, in)
			updates.Close()
			<-done

			return domain.Outcome{
				Status:     domain.StatusFor(summary.Total, summary.Successful),
				Total:      summary.Total,
				Successful: summary.Successful,
				Failed:     summary.Failed,
				Warnings:   summary.Warnings,
				Duplicates: summary.Duplicates,
				Message:    summary.Message,
				Result:     summary,
			}, err
		},
	}
}

// BulkInviteJob dispatches the selected users and forwards each snapshot.
func BulkInviteJob(uc roster.InviteSelected, in roster.InviteSelectedInput) Job {
	return Job{
		Kind:      domain.KindBulkInvite,
		Principal: in.Principal,
		Run: func(ctx context.Context, report Reporter) (domain.Outcome, error) {
			updates := progress.NewLatest[rosterdomain.BulkInviteProgress]()
			done := forward(updates, func(p rosterdomain.BulkInviteProgress) {
				report(domain.Progress{
					Percent:    p.Percent(),
					Total:      p.Total,
					Completed:  p.Completed,
					Successful: p.Successful,
					Failed:     p.Failed,
					Current:    p.CurrentTarget,
				})
			})
			in.Progress = updates

			out, err := uc.Execute(ctx, in)
			updates.Close()
			<-done

			successful := 0
			for _, r := range out.Results {
				if r.Success {
					successful++
				}
			}
			failed := len(out.Results) - successful

			outcome := domain.Outcome{
				Status:     domain.StatusFor(len(out.Results), successful),
				Total:      out.Targets,
				Successful: successful,
				Failed:     failed,
				Result:     out,
			}
			var notes []string
			if failed > 0 {
				notes = append(notes, fmt.Sprintf("%d of %d invitations failed", failed, len(out.Results)))
			}
			if len(out.Rejected) > 0 {
				notes = append(notes, fmt.Sprintf("%d selected users failed validation and were not invited", len(out.Rejected)))
				if outcome.Status == domain.StatusCompleted {
					outcome.Status = domain.StatusCompletedWithErrors
				}
			}
			outcome.Message = strings.Join(notes, "; ")
			return outcome, err
		},
	}
}

func forward[T any](updates *progress.Latest[T], fn func(T)) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for v := range updates.C() {
			fn(v)
		}
	}()
	return done
}
