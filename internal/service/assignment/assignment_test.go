package assignment_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/big"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainassignment "github.com/alanyang/dao-janny/internal/domain/assignment"
	domainaudit "github.com/alanyang/dao-janny/internal/domain/audit"
	"github.com/alanyang/dao-janny/internal/domain/chain"
	"github.com/alanyang/dao-janny/internal/domain/event"
	"github.com/alanyang/dao-janny/internal/domain/member"
	"github.com/alanyang/dao-janny/internal/domain/task"
	"github.com/alanyang/dao-janny/internal/mocks"
	assignsvc "github.com/alanyang/dao-janny/internal/service/assignment"
)

// ── helpers ───────────────────────────────────────────────────────────────────

const requester = "0x00000000000000000000000000000000000000ff"

type svcDeps struct {
	tx       *mocks.MockTransactor
	fees     *mocks.MockPayableQuoter
	recorder *mocks.MockAuditRecorder
	ledger   *mocks.MockLedger
	bus      *mocks.MockPublisher
	members  *mocks.MockMembershipChecker
}

func newAssignSvc(t *testing.T) (*assignsvc.Service, svcDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	d := svcDeps{
		tx:       mocks.NewMockTransactor(ctrl),
		fees:     mocks.NewMockPayableQuoter(ctrl),
		recorder: mocks.NewMockAuditRecorder(ctrl),
		ledger:   mocks.NewMockLedger(ctrl),
		bus:      mocks.NewMockPublisher(ctrl),
		members:  mocks.NewMockMembershipChecker(ctrl),
	}
	svc := assignsvc.NewService(d.tx, d.fees, d.recorder, d.ledger, d.bus, d.members).
		WithPicker(rand.New(rand.NewPCG(1, 2)))
	return svc, d
}

func addr(i int) string { return fmt.Sprintf("0x%040x", i) }

func technicalRoster() []member.Member {
	return []member.Member{
		{Address: addr(1), Domain: member.DomainTechnical},
		{Address: addr(2), Domain: member.DomainAccounting},
		{Address: addr(3), Domain: member.DomainTechnical},
		{Address: addr(4), Domain: member.DomainStrategy},
	}
}

func technicalInput() domainassignment.Input {
	return domainassignment.Input{
		Task:    task.Task{ID: "prop-42", Title: "Upgrade the bridge", Category: task.CategoryTechnical},
		Roster:  technicalRoster(),
		Account: requester,
		ChainID: chain.OPSepolia,
	}
}

func matchEventType(et event.Type) gomock.Matcher {
	return eventTypeMatcher{et}
}

type eventTypeMatcher struct{ want event.Type }

func (m eventTypeMatcher) Matches(x interface{}) bool {
	e, ok := x.(event.Event)
	return ok && e.Type == m.want
}
func (m eventTypeMatcher) String() string { return "event.Type=" + string(m.want) }

func matchAction(a domainaudit.Action) gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		rec, ok := x.(domainaudit.Record)
		return ok && rec.Action == a
	})
}

func expectQuote(d svcDeps) {
	d.fees.EXPECT().PayableValue(gomock.Any(), chain.OPSepolia).Return(big.NewInt(1_200_000_000_000_000))
}

func expectBookkeeping(d svcDeps) {
	d.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)
	d.bus.EXPECT().Publish(gomock.Any(), matchEventType(event.TypeAssignmentResolved)).Return(nil)
}

// ── Assign ────────────────────────────────────────────────────────────────────

func TestAssign_Submitted(t *testing.T) {
	svc, d := newAssignSvc(t)
	ctx := context.Background()

	expectQuote(d)
	d.tx.EXPECT().Simulate(gomock.Any(), chain.OPSepolia, requester, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ chain.ID, _ string, call chain.AssignCall, value *big.Int) error {
			require.Len(t, call.Members, 2)
			assert.Equal(t, "prop-42", call.TaskID)
			assert.Equal(t, big.NewInt(1_200_000_000_000_000), value)
			return nil
		})
	d.tx.EXPECT().Submit(gomock.Any(), chain.OPSepolia, requester, gomock.Any(), gomock.Any()).Return("0xdeadbeef", nil)
	d.recorder.EXPECT().Record(gomock.Any(), matchAction(domainaudit.ActionRandomAssignment)).
		DoAndReturn(func(_ context.Context, rec domainaudit.Record) (string, error) {
			assert.Equal(t, domainaudit.SourceOracle, rec.RandomnessSource)
			assert.Equal(t, "0xdeadbeef", rec.Details.TxHash)
			assert.Equal(t, []string{addr(1), addr(3)}, rec.Details.EligibleMembers)
			return "bafyRandom", nil
		})
	expectBookkeeping(d)

	res, err := svc.Assign(ctx, technicalInput())
	require.NoError(t, err)

	assert.Equal(t, domainassignment.KindSubmitted, res.Kind)
	assert.Equal(t, "0xdeadbeef", res.TxHash)
	assert.Equal(t, "bafyRandom", res.AuditID)
	require.NotNil(t, res.Selected)
	assert.Contains(t, []string{addr(1), addr(3)}, res.Selected.Address)
}

func TestAssign_DuplicateRosterEntriesCollapse(t *testing.T) {
	svc, d := newAssignSvc(t)

	in := technicalInput()
	in.Roster = []member.Member{
		{Address: addr(1), Domain: member.DomainTechnical},
		{Address: strings.ToUpper(addr(1)), Domain: member.DomainTechnical},
		{ID: "alias", Address: addr(1), Domain: member.DomainTechnical},
		{Address: addr(2), Domain: member.DomainTechnical},
	}

	expectQuote(d)
	d.tx.EXPECT().Simulate(gomock.Any(), chain.OPSepolia, requester, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ chain.ID, _ string, call chain.AssignCall, _ *big.Int) error {
			require.Len(t, call.Members, 2)
			assert.NotEqual(t, call.Members[0], call.Members[1])
			return nil
		})
	d.tx.EXPECT().Submit(gomock.Any(), chain.OPSepolia, requester, gomock.Any(), gomock.Any()).Return("0xfeed", nil)
	d.recorder.EXPECT().Record(gomock.Any(), matchAction(domainaudit.ActionRandomAssignment)).
		DoAndReturn(func(_ context.Context, rec domainaudit.Record) (string, error) {
			assert.Equal(t, []string{addr(1), addr(2)}, rec.Details.EligibleMembers)
			return "bafyDedup", nil
		})
	expectBookkeeping(d)

	res, err := svc.Assign(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, domainassignment.KindSubmitted, res.Kind)
}

func TestAssign_RevertedSimulationFallsBackWithoutSubmitting(t *testing.T) {
	svc, d := newAssignSvc(t)

	expectQuote(d)
	d.tx.EXPECT().Simulate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&chain.TxError{Kind: chain.FailureReverted, Op: "simulate", Err: errors.New("execution reverted: insufficient funds")})
	d.recorder.EXPECT().Record(gomock.Any(), matchAction(domainaudit.ActionFallbackAssignment)).
		DoAndReturn(func(_ context.Context, rec domainaudit.Record) (string, error) {
			assert.Equal(t, domainaudit.SourceFallback, rec.RandomnessSource)
			assert.Equal(t, "execution reverted: insufficient funds", rec.Details.Error)
			return "bafyFallback", nil
		})
	expectBookkeeping(d)

	res, err := svc.Assign(context.Background(), technicalInput())
	require.NoError(t, err)

	assert.Equal(t, domainassignment.KindFallback, res.Kind)
	assert.Equal(t, "execution reverted: insufficient funds", res.Reason)
	assert.Empty(t, res.TxHash)
	require.NotNil(t, res.Selected)
	assert.Contains(t, []string{addr(1), addr(3)}, res.Selected.Address)
}

func TestAssign_SubmitNetworkErrorFallsBack(t *testing.T) {
	svc, d := newAssignSvc(t)

	expectQuote(d)
	d.tx.EXPECT().Simulate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	d.tx.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", &chain.TxError{Kind: chain.FailureNetwork, Op: "submit", Err: errors.New("connection reset by peer")})
	d.recorder.EXPECT().Record(gomock.Any(), matchAction(domainaudit.ActionFallbackAssignment)).Return("bafy", nil)
	expectBookkeeping(d)

	res, err := svc.Assign(context.Background(), technicalInput())
	require.NoError(t, err)
	assert.Equal(t, domainassignment.KindFallback, res.Kind)
}

func TestAssign_UserRejectionCancelsWithoutAudit(t *testing.T) {
	svc, d := newAssignSvc(t)

	expectQuote(d)
	d.tx.EXPECT().Simulate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	d.tx.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", &chain.TxError{Kind: chain.FailureUserDeclined, Op: "submit", Err: errors.New("User rejected the request")})
	d.bus.EXPECT().Publish(gomock.Any(), matchEventType(event.TypeAssignmentCancelled)).Return(nil)

	res, err := svc.Assign(context.Background(), technicalInput())
	require.NoError(t, err)

	assert.Equal(t, domainassignment.KindCancelled, res.Kind)
	assert.Nil(t, res.Selected)
	assert.Equal(t, "User rejected the request", res.Reason)
}

func TestAssign_Preconditions(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *domainassignment.Input)
		wantErr error
	}{
		{
			name:    "empty roster fails before any network call",
			mutate:  func(in *domainassignment.Input) { in.Roster = nil },
			wantErr: assignsvc.ErrNoEligibleMembers,
		},
		{
			name:    "roster without addresses",
			mutate:  func(in *domainassignment.Input) { in.Roster = []member.Member{{ID: "ghost"}} },
			wantErr: assignsvc.ErrNoEligibleMembers,
		},
		{
			name:    "no account",
			mutate:  func(in *domainassignment.Input) { in.Account = "  " },
			wantErr: assignsvc.ErrNoAccount,
		},
		{
			name:    "unmapped chain",
			mutate:  func(in *domainassignment.Input) { in.ChainID = chain.ID(1) },
			wantErr: chain.ErrUnsupportedChain,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No expectations: any port call fails the test.
			svc, _ := newAssignSvc(t)
			in := technicalInput()
			tt.mutate(&in)

			res, err := svc.Assign(context.Background(), in)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, domainassignment.KindFailed, res.Kind)
			assert.Nil(t, res.Selected)
		})
	}
}

func TestAssign_NoEligibleMembersReason(t *testing.T) {
	svc, _ := newAssignSvc(t)
	in := technicalInput()
	in.Roster = nil

	res, _ := svc.Assign(context.Background(), in)
	assert.Equal(t, "no eligible members", res.Reason)
}

func TestAssign_BestEffortFailuresKeepOutcome(t *testing.T) {
	svc, d := newAssignSvc(t)

	expectQuote(d)
	d.tx.EXPECT().Simulate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	d.tx.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("0xabc", nil)
	d.recorder.EXPECT().Record(gomock.Any(), gomock.Any()).Return("", errors.New("lighthouse: 503"))
	d.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
	d.bus.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("notify failed"))

	res, err := svc.Assign(context.Background(), technicalInput())
	require.NoError(t, err)

	assert.Equal(t, domainassignment.KindSubmitted, res.Kind)
	assert.Empty(t, res.AuditID)
	assert.NotNil(t, res.Selected)
}

func TestAssign_LedgerGetsTentativeAssignee(t *testing.T) {
	svc, d := newAssignSvc(t)

	expectQuote(d)
	d.tx.EXPECT().Simulate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	d.tx.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("0xabc", nil)
	d.recorder.EXPECT().Record(gomock.Any(), gomock.Any()).Return("bafy", nil)

	var entry domainassignment.Entry
	d.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e domainassignment.Entry) error {
			entry = e
			return nil
		})
	d.bus.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	res, err := svc.Assign(context.Background(), technicalInput())
	require.NoError(t, err)

	assert.Equal(t, res.Selected.Address, entry.Assignee)
	assert.Equal(t, "0xabc", entry.TxHash)
	assert.Equal(t, "bafy", entry.AuditID)
	assert.Empty(t, entry.ConfirmedAssignee)
}

func TestAssign_FallbackDrawIsUniform(t *testing.T) {
	svc, d := newAssignSvc(t)

	roster := []member.Member{
		{Address: addr(1), Domain: member.DomainTechnical},
		{Address: addr(2), Domain: member.DomainContracts},
		{Address: addr(3), Domain: member.DomainUnassigned},
		{Address: addr(4), Domain: member.DomainTechnical},
	}

	d.fees.EXPECT().PayableValue(gomock.Any(), gomock.Any()).Return(big.NewInt(1)).AnyTimes()
	d.tx.EXPECT().Simulate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&chain.TxError{Kind: chain.FailureNetwork, Op: "simulate", Err: errors.New("503")}).AnyTimes()
	d.recorder.EXPECT().Record(gomock.Any(), gomock.Any()).Return("bafy", nil).AnyTimes()
	d.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	d.bus.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	const trials = 4000
	counts := make(map[string]int)
	for i := 0; i < trials; i++ {
		res, err := svc.Assign(context.Background(), domainassignment.Input{
			Task:    task.Task{ID: "prop-1", Category: task.CategoryTechnical},
			Roster:  roster,
			Account: requester,
			ChainID: chain.OPSepolia,
		})
		require.NoError(t, err)
		require.Equal(t, domainassignment.KindFallback, res.Kind)
		counts[res.Selected.Address]++
	}

	require.Len(t, counts, len(roster))
	expected := 1.0 / float64(len(roster))
	for a, n := range counts {
		freq := float64(n) / trials
		assert.LessOrEqual(t, math.Abs(freq-expected), 0.03, "member %s drawn with frequency %.3f", a, freq)
	}
}

// ── OptIn ─────────────────────────────────────────────────────────────────────

func TestOptIn(t *testing.T) {
	optTask := task.Task{ID: "prop-9", Title: "Run the meetup", Eligibility: task.Eligibility{OptIn: true}}

	tests := []struct {
		name     string
		account  string
		daoID    string
		setup    func(d svcDeps)
		wantErr  error
		wantKind domainassignment.Kind
	}{
		{
			name:    "member opts in",
			account: requester,
			daoID:   "ens",
			setup: func(d svcDeps) {
				d.members.EXPECT().IsMember(gomock.Any(), "ens", requester).Return(true, nil)
				d.recorder.EXPECT().Record(gomock.Any(), matchAction(domainaudit.ActionDelegateOptIn)).Return("bafyOpt", nil)
				d.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)
				d.bus.EXPECT().Publish(gomock.Any(), matchEventType(event.TypeDelegateOptedIn)).Return(nil)
			},
			wantKind: domainassignment.KindOptedIn,
		},
		{
			name:     "non member",
			account:  requester,
			daoID:    "ens",
			setup:    func(d svcDeps) { d.members.EXPECT().IsMember(gomock.Any(), "ens", requester).Return(false, nil) },
			wantErr:  assignsvc.ErrNotMember,
			wantKind: domainassignment.KindFailed,
		},
		{
			name:    "audit failure is fatal",
			account: requester,
			daoID:   "ens",
			setup: func(d svcDeps) {
				d.members.EXPECT().IsMember(gomock.Any(), "ens", requester).Return(true, nil)
				d.recorder.EXPECT().Record(gomock.Any(), gomock.Any()).Return("", errors.New("upload failed"))
			},
			wantKind: domainassignment.KindFailed,
		},
		{name: "no account", daoID: "ens", setup: func(svcDeps) {}, wantErr: assignsvc.ErrNoAccount, wantKind: domainassignment.KindFailed},
		{name: "no dao", account: requester, setup: func(svcDeps) {}, wantErr: assignsvc.ErrNoDAO, wantKind: domainassignment.KindFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newAssignSvc(t)
			tt.setup(d)

			res, err := svc.OptIn(context.Background(), optTask, tt.account, tt.daoID)

			assert.Equal(t, tt.wantKind, res.Kind)
			if tt.wantKind == domainassignment.KindOptedIn {
				require.NoError(t, err)
				assert.Equal(t, requester, res.Selected.Address)
				assert.Equal(t, "bafyOpt", res.AuditID)
				return
			}
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestGet(t *testing.T) {
	svc, d := newAssignSvc(t)
	d.ledger.EXPECT().Get(gomock.Any(), "prop-1").Return(domainassignment.Entry{}, domainassignment.ErrNotFound)

	_, err := svc.Get(context.Background(), "prop-1")
	assert.ErrorIs(t, err, domainassignment.ErrNotFound)
}
