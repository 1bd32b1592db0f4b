package assignment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	domainassignment "github.com/alanyang/dao-janny/internal/domain/assignment"
	domainaudit "github.com/alanyang/dao-janny/internal/domain/audit"
	"github.com/alanyang/dao-janny/internal/domain/chain"
	"github.com/alanyang/dao-janny/internal/domain/event"
	"github.com/alanyang/dao-janny/internal/domain/member"
	"github.com/alanyang/dao-janny/internal/domain/task"
	portassignment "github.com/alanyang/dao-janny/internal/port/assignment"
	portaudit "github.com/alanyang/dao-janny/internal/port/audit"
	portchain "github.com/alanyang/dao-janny/internal/port/chain"
	porteventbus "github.com/alanyang/dao-janny/internal/port/eventbus"
	portfee "github.com/alanyang/dao-janny/internal/port/fee"
	portregistry "github.com/alanyang/dao-janny/internal/port/registry"
	"github.com/alanyang/dao-janny/internal/service/eligibility"
)

var (
	ErrNoEligibleMembers = errors.New("no eligible members")
	ErrNoAccount         = errors.New("no connected account")
	ErrNoDAO             = errors.New("dao id required")
	ErrNotMember         = errors.New("account is not a DAO member")
)

// Picker draws an index in [0, n). *rand.Rand satisfies it.
type Picker interface {
	IntN(n int) int
}

type globalPicker struct{}

func (globalPicker) IntN(n int) int { return rand.IntN(n) }

// Service runs randomized draws: filter, simulate, submit, and fall back to
// a local draw when the chain path fails for technical reasons.
// [DIP] Depends on ports only; the chain, audit store and ledger are adapters.
// Nothing here serialises draws for the same task; the contract does that.
type Service struct {
	tx       portchain.Transactor
	fees     portfee.PayableQuoter
	recorder portaudit.Recorder
	ledger   portassignment.Ledger
	bus      porteventbus.Publisher
	members  portregistry.MembershipChecker

	picker Picker
	now    func() time.Time
}

func NewService(
	tx portchain.Transactor,
	fees portfee.PayableQuoter,
	recorder portaudit.Recorder,
	ledger portassignment.Ledger,
	bus porteventbus.Publisher,
	members portregistry.MembershipChecker,
) *Service {
	return &Service{
		tx:       tx,
		fees:     fees,
		recorder: recorder,
		ledger:   ledger,
		bus:      bus,
		members:  members,
		picker:   globalPicker{},
		now:      time.Now,
	}
}

// WithPicker replaces the random source used for member selection.
func (s *Service) WithPicker(p Picker) *Service {
	s.picker = p
	return s
}

// Assign draws an assignee for in.Task. Precondition failures return a Failed
// result together with an error; user refusal returns Cancelled and technical
// failures return Fallback, both with a nil error.
func (s *Service) Assign(ctx context.Context, in domainassignment.Input) (domainassignment.Result, error) {
	t := task.Normalize(in.Task)
	roster := member.NormalizeAll(in.Roster)
	s.transition(ctx, t.ID, domainassignment.StateIdle)

	s.transition(ctx, t.ID, domainassignment.StateFiltering)
	pool := eligibility.Filter(roster, t.Category)
	if len(pool) == 0 {
		return domainassignment.Failed(t.ID, ErrNoEligibleMembers.Error()), ErrNoEligibleMembers
	}

	account := strings.TrimSpace(in.Account)
	if account == "" {
		return domainassignment.Failed(t.ID, ErrNoAccount.Error()), ErrNoAccount
	}
	if _, err := chain.Lookup(in.ChainID); err != nil {
		return domainassignment.Failed(t.ID, err.Error()), err
	}

	s.transition(ctx, t.ID, domainassignment.StateQuoting)
	value := s.fees.PayableValue(ctx, in.ChainID)

	addresses := eligibility.Addresses(pool)
	req := domainassignment.Request{
		TaskID:            t.ID,
		EligibleAddresses: addresses,
		ChainID:           in.ChainID,
		RequesterAccount:  account,
	}

	call, err := chain.NewAssignCall(req.TaskID, req.EligibleAddresses, chain.NewSalt(t.ID, s.now(), rand.Uint64()))
	if err != nil {
		return s.resolveFailure(ctx, t, req, pool, roster, err)
	}

	s.transition(ctx, t.ID, domainassignment.StateSimulating)
	if err := s.tx.Simulate(ctx, req.ChainID, req.RequesterAccount, call, value); err != nil {
		return s.resolveFailure(ctx, t, req, pool, roster, err)
	}

	s.transition(ctx, t.ID, domainassignment.StateSubmitting)
	txHash, err := s.tx.Submit(ctx, req.ChainID, req.RequesterAccount, call, value)
	if err != nil {
		return s.resolveFailure(ctx, t, req, pool, roster, err)
	}
	s.transition(ctx, t.ID, domainassignment.StateConfirmed)

	// The contract draws on its own; the assignee shown here is a local draw
	// over the same pool and may differ until the TaskAssigned event lands.
	selected := pool[s.picker.IntN(len(pool))]
	res := domainassignment.Submitted(t.ID, txHash, selected)
	res.AuditID = s.record(ctx, domainaudit.New(domainaudit.ActionRandomAssignment, account, domainaudit.SourceOracle, domainaudit.Details{
		Task:            t,
		EligibleMembers: addresses,
		Assignee:        selected.Address,
		TxHash:          txHash,
		ChainID:         req.ChainID,
	}, s.now()))

	s.bookkeep(ctx, res, req.ChainID, event.TypeAssignmentResolved)
	s.transition(ctx, t.ID, domainassignment.StateResolved)
	return res, nil
}

func (s *Service) resolveFailure(
	ctx context.Context,
	t task.Task,
	req domainassignment.Request,
	pool, roster []member.Member,
	cause error,
) (domainassignment.Result, error) {
	reason := failureReason(cause)

	if chain.IsUserDeclined(cause) {
		s.transition(ctx, t.ID, domainassignment.StateUserCancelled)
		slog.InfoContext(ctx, "assignment: requester declined transaction", "task_id", t.ID, "reason", reason)
		res := domainassignment.Cancelled(t.ID, reason)
		s.publish(ctx, event.TypeAssignmentCancelled, t.ID, req.ChainID)
		return res, nil
	}

	s.transition(ctx, t.ID, domainassignment.StateTechnicalFailure)
	slog.WarnContext(ctx, "assignment: on-chain path failed, falling back to local draw",
		"task_id", t.ID, "chain_id", req.ChainID, "kind", chain.KindOf(cause), "error", cause)

	candidates := pool
	if len(candidates) == 0 {
		candidates = roster
	}
	if len(candidates) == 0 {
		return domainassignment.Failed(t.ID, ErrNoEligibleMembers.Error()), ErrNoEligibleMembers
	}

	s.transition(ctx, t.ID, domainassignment.StateFallback)
	selected := candidates[s.picker.IntN(len(candidates))]
	res := domainassignment.Fallback(t.ID, selected, reason)
	res.AuditID = s.record(ctx, domainaudit.New(domainaudit.ActionFallbackAssignment, req.RequesterAccount, domainaudit.SourceFallback, domainaudit.Details{
		Task:            t,
		EligibleMembers: eligibility.Addresses(candidates),
		Assignee:        selected.Address,
		ChainID:         req.ChainID,
		Error:           reason,
	}, s.now()))

	s.bookkeep(ctx, res, req.ChainID, event.TypeAssignmentResolved)
	s.transition(ctx, t.ID, domainassignment.StateResolved)
	return res, nil
}

// OptIn assigns the task to account after checking DAO membership. Unlike a
// draw, a failed audit upload fails the opt-in.
func (s *Service) OptIn(ctx context.Context, in task.Task, account, daoID string) (domainassignment.Result, error) {
	t := task.Normalize(in)
	account = strings.TrimSpace(account)
	if account == "" {
		return domainassignment.Failed(t.ID, ErrNoAccount.Error()), ErrNoAccount
	}
	if strings.TrimSpace(daoID) == "" {
		return domainassignment.Failed(t.ID, ErrNoDAO.Error()), ErrNoDAO
	}

	ok, err := s.members.IsMember(ctx, daoID, account)
	if err != nil {
		return domainassignment.Failed(t.ID, err.Error()), fmt.Errorf("check membership of %s in %s: %w", account, daoID, err)
	}
	if !ok {
		return domainassignment.Failed(t.ID, ErrNotMember.Error()), ErrNotMember
	}

	id, err := s.recorder.Record(ctx, domainaudit.New(domainaudit.ActionDelegateOptIn, account, domainaudit.SourceNone, domainaudit.Details{
		Task:     t,
		Assignee: account,
		DAOID:    daoID,
	}, s.now()))
	if err != nil {
		return domainassignment.Failed(t.ID, err.Error()), fmt.Errorf("record opt-in: %w", err)
	}

	res := domainassignment.OptedIn(t.ID, member.Normalize(member.Member{Address: account}))
	res.AuditID = id
	s.bookkeep(ctx, res, 0, event.TypeDelegateOptedIn)
	return res, nil
}

// Get returns the ledger entry for taskID.
func (s *Service) Get(ctx context.Context, taskID string) (domainassignment.Entry, error) {
	e, err := s.ledger.Get(ctx, taskID)
	if err != nil {
		return domainassignment.Entry{}, fmt.Errorf("get assignment %s: %w", taskID, err)
	}
	return e, nil
}

func (s *Service) record(ctx context.Context, rec domainaudit.Record) string {
	id, err := s.recorder.Record(ctx, rec)
	if err != nil {
		slog.ErrorContext(ctx, "assignment: audit record failed, keeping outcome", "task_id", rec.TaskID, "action", rec.Action, "error", err)
		return ""
	}
	return id
}

func (s *Service) bookkeep(ctx context.Context, res domainassignment.Result, chainID chain.ID, typ event.Type) {
	if err := s.ledger.Record(ctx, domainassignment.EntryFromResult(res, chainID)); err != nil {
		slog.ErrorContext(ctx, "assignment: ledger write failed", "task_id", res.TaskID, "error", err)
	}
	s.publish(ctx, typ, res.TaskID, chainID)
}

func (s *Service) publish(ctx context.Context, typ event.Type, taskID string, chainID chain.ID) {
	if err := s.bus.Publish(ctx, event.New(typ, taskID, uint64(chainID))); err != nil {
		slog.ErrorContext(ctx, "assignment: publish event failed", "task_id", taskID, "type", typ, "error", err)
	}
}

func (s *Service) transition(ctx context.Context, taskID string, st domainassignment.State) {
	slog.DebugContext(ctx, "assignment: state", "task_id", taskID, "state", st)
}

func failureReason(err error) string {
	var txErr *chain.TxError
	if errors.As(err, &txErr) && txErr.Err != nil {
		return txErr.Err.Error()
	}
	return err.Error()
}
