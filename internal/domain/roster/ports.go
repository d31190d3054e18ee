package roster

import "context"

type Inviter interface {
	Invite(ctx context.Context, req InviteRequest) error
}

type DirectoryReader interface {
	LoadDirectory(ctx context.Context, tenantID string) (Directory, error)
}
