package registry

import (
	"context"

	"github.com/alanyang/dao-janny/internal/domain/member"
	"github.com/alanyang/dao-janny/internal/domain/task"
)

// MembershipChecker is the narrow interface opt-in needs.
type MembershipChecker interface {
	IsMember(ctx context.Context, daoID, address string) (bool, error)
}

type RosterSource interface {
	Members(ctx context.Context, daoID string) ([]member.Member, error)
}

type ProposalSource interface {
	Proposals(ctx context.Context, daoID string) ([]task.Task, error)
}
