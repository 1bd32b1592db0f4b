package assignment_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainassignment "github.com/alanyang/dao-janny/internal/domain/assignment"
	"github.com/alanyang/dao-janny/internal/domain/chain"
	"github.com/alanyang/dao-janny/internal/domain/member"
	"github.com/alanyang/dao-janny/internal/mocks"
	portidempotency "github.com/alanyang/dao-janny/internal/port/idempotency"
	assignsvc "github.com/alanyang/dao-janny/internal/service/assignment"
	"github.com/alanyang/dao-janny/internal/transport"
	transportassignment "github.com/alanyang/dao-janny/internal/transport/assignment"
)

func init() { gin.SetMode(gin.TestMode) }

const account = "0x00000000000000000000000000000000000000aa"

type assignDeps struct {
	tx       *mocks.MockTransactor
	payable  *mocks.MockPayableQuoter
	recorder *mocks.MockAuditRecorder
	ledger   *mocks.MockLedger
	bus      *mocks.MockPublisher
	members  *mocks.MockMembershipChecker
	roster   *mocks.MockRosterSource
	idem     *mocks.MockIdempotencyStore
}

func newRouter(t *testing.T, withIdempotency bool) (*gin.Engine, assignDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	d := assignDeps{
		tx:       mocks.NewMockTransactor(ctrl),
		payable:  mocks.NewMockPayableQuoter(ctrl),
		recorder: mocks.NewMockAuditRecorder(ctrl),
		ledger:   mocks.NewMockLedger(ctrl),
		bus:      mocks.NewMockPublisher(ctrl),
		members:  mocks.NewMockMembershipChecker(ctrl),
		roster:   mocks.NewMockRosterSource(ctrl),
		idem:     mocks.NewMockIdempotencyStore(ctrl),
	}
	svc := assignsvc.NewService(d.tx, d.payable, d.recorder, d.ledger, d.bus, d.members).
		WithPicker(rand.New(rand.NewPCG(1, 2)))

	var mw []gin.HandlerFunc
	if withIdempotency {
		mw = append(mw, transport.IdempotencyMiddleware(d.idem, "assign"))
	}
	r := gin.New()
	transportassignment.Register(r.Group("/assignments"), svc, d.roster, mw...)
	return r, d
}

func addr(i int) string { return fmt.Sprintf("0x%040x", i) }

func post(r *gin.Engine, path string, body any, headers ...string) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// expectSubmit wires the happy on-chain path on Sepolia.
func expectSubmit(d assignDeps, txHash string) {
	d.payable.EXPECT().PayableValue(gomock.Any(), chain.OPSepolia).Return(big.NewInt(1200))
	d.tx.EXPECT().Simulate(gomock.Any(), chain.OPSepolia, account, gomock.Any(), gomock.Any()).Return(nil)
	d.tx.EXPECT().Submit(gomock.Any(), chain.OPSepolia, account, gomock.Any(), gomock.Any()).Return(txHash, nil)
	d.recorder.EXPECT().Record(gomock.Any(), gomock.Any()).Return("bafyAudit", nil)
	d.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)
	d.bus.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
}

// ── POST /assignments ─────────────────────────────────────────────────────────

func TestAssign(t *testing.T) {
	roster := []map[string]any{
		{"address": addr(1), "domain": "technical"},
		{"address": addr(2), "domain": "accounting"},
	}

	tests := []struct {
		name       string
		body       map[string]any
		setup      func(d assignDeps)
		wantStatus int
		wantKind   domainassignment.Kind
	}{
		{
			name: "submitted",
			body: map[string]any{
				"task":     map[string]any{"id": "prop-1", "category": "technical"},
				"roster":   roster,
				"account":  account,
				"chain_id": 11155420,
			},
			setup:      func(d assignDeps) { expectSubmit(d, "0xabc") },
			wantStatus: http.StatusOK,
			wantKind:   domainassignment.KindSubmitted,
		},
		{
			name: "user rejection cancels",
			body: map[string]any{
				"task":     map[string]any{"id": "prop-2"},
				"roster":   roster,
				"account":  account,
				"chain_id": 11155420,
			},
			setup: func(d assignDeps) {
				d.payable.EXPECT().PayableValue(gomock.Any(), chain.OPSepolia).Return(big.NewInt(1))
				d.tx.EXPECT().Simulate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&chain.TxError{Kind: chain.FailureUserDeclined, Op: "simulate", Err: errors.New("User rejected the request")})
				d.bus.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusOK,
			wantKind:   domainassignment.KindCancelled,
		},
		{
			name:       "missing task id",
			body:       map[string]any{"task": map[string]any{}, "roster": roster, "account": account, "chain_id": 10},
			setup:      func(d assignDeps) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "empty roster",
			body:       map[string]any{"task": map[string]any{"id": "p"}, "account": account, "chain_id": 10},
			setup:      func(d assignDeps) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   domainassignment.KindFailed,
		},
		{
			name:       "no account",
			body:       map[string]any{"task": map[string]any{"id": "p"}, "roster": roster, "chain_id": 10},
			setup:      func(d assignDeps) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   domainassignment.KindFailed,
		},
		{
			name:       "unsupported chain",
			body:       map[string]any{"task": map[string]any{"id": "p"}, "roster": roster, "account": account, "chain_id": 1},
			setup:      func(d assignDeps) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   domainassignment.KindFailed,
		},
		{
			name: "roster fetched by dao id",
			body: map[string]any{
				"task":     map[string]any{"id": "prop-3"},
				"dao_id":   "optimism",
				"account":  account,
				"chain_id": 11155420,
			},
			setup: func(d assignDeps) {
				d.roster.EXPECT().Members(gomock.Any(), "optimism").Return([]member.Member{{Address: addr(5)}}, nil)
				expectSubmit(d, "0xdef")
			},
			wantStatus: http.StatusOK,
			wantKind:   domainassignment.KindSubmitted,
		},
		{
			name: "roster fetch fails",
			body: map[string]any{"task": map[string]any{"id": "p"}, "dao_id": "optimism", "account": account, "chain_id": 10},
			setup: func(d assignDeps) {
				d.roster.EXPECT().Members(gomock.Any(), "optimism").Return(nil, errors.New("upstream down"))
			},
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, d := newRouter(t, false)
			tt.setup(d)

			w := post(r, "/assignments", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantKind == "" {
				return
			}

			var res domainassignment.Result
			if w.Code == http.StatusOK {
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
			} else {
				var wrapped struct {
					Result domainassignment.Result `json:"result"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &wrapped))
				res = wrapped.Result
			}
			assert.Equal(t, tt.wantKind, res.Kind)
		})
	}
}

func TestAssign_IdempotentReplay(t *testing.T) {
	r, d := newRouter(t, true)
	stored := []byte(`{"kind":"submitted","task_id":"prop-1","tx_hash":"0xold"}`)
	d.idem.EXPECT().Check(gomock.Any(), "assign:/assignments:key-1").Return(portidempotency.Response{Status: http.StatusOK, Body: stored}, true, nil)

	w := post(r, "/assignments", map[string]any{"task": map[string]any{"id": "prop-1"}}, transport.IdempotencyHeader, "key-1")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
	assert.JSONEq(t, string(stored), w.Body.String())
}

func TestAssign_StoresFirstResponse(t *testing.T) {
	r, d := newRouter(t, true)
	d.idem.EXPECT().Check(gomock.Any(), "assign:/assignments:key-2").Return(portidempotency.Response{}, false, nil)
	expectSubmit(d, "0xnew")
	d.idem.EXPECT().Store(gomock.Any(), "assign:/assignments:key-2", "assign", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, resp portidempotency.Response) error {
			assert.Equal(t, http.StatusOK, resp.Status)
			assert.Contains(t, string(resp.Body), "0xnew")
			return nil
		})

	w := post(r, "/assignments", map[string]any{
		"task":     map[string]any{"id": "prop-1"},
		"roster":   []map[string]any{{"address": addr(1)}},
		"account":  account,
		"chain_id": 11155420,
	}, transport.IdempotencyHeader, "key-2")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIdempotencyKey_NotSharedWithOptIn(t *testing.T) {
	r, d := newRouter(t, true)
	stored := []byte(`{"kind":"submitted","task_id":"prop-1","tx_hash":"0xold"}`)
	d.idem.EXPECT().Check(gomock.Any(), "assign:/assignments:key-3").Return(portidempotency.Response{Status: http.StatusOK, Body: stored}, true, nil)
	d.idem.EXPECT().Check(gomock.Any(), "assign:/assignments/opt-in:key-3").Return(portidempotency.Response{}, false, nil)
	d.members.EXPECT().IsMember(gomock.Any(), "optimism", account).Return(true, nil)
	d.recorder.EXPECT().Record(gomock.Any(), gomock.Any()).Return("bafyOpt", nil)
	d.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)
	d.bus.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
	d.idem.EXPECT().Store(gomock.Any(), "assign:/assignments/opt-in:key-3", "assign", gomock.Any()).Return(nil)

	w := post(r, "/assignments", map[string]any{"task": map[string]any{"id": "prop-1"}}, transport.IdempotencyHeader, "key-3")
	assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))

	w = post(r, "/assignments/opt-in", map[string]any{
		"task": map[string]any{"id": "prop-1"}, "account": account, "dao_id": "optimism",
	}, transport.IdempotencyHeader, "key-3")
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Empty(t, w.Header().Get("Idempotent-Replayed"))
	assert.Contains(t, w.Body.String(), "bafyOpt")
}

// ── POST /assignments/opt-in ──────────────────────────────────────────────────

func TestOptIn(t *testing.T) {
	tests := []struct {
		name       string
		body       map[string]any
		setup      func(d assignDeps)
		wantStatus int
	}{
		{
			name: "member opts in",
			body: map[string]any{"task": map[string]any{"id": "prop-1"}, "account": account, "dao_id": "optimism"},
			setup: func(d assignDeps) {
				d.members.EXPECT().IsMember(gomock.Any(), "optimism", account).Return(true, nil)
				d.recorder.EXPECT().Record(gomock.Any(), gomock.Any()).Return("bafyOpt", nil)
				d.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)
				d.bus.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "not a member",
			body: map[string]any{"task": map[string]any{"id": "prop-1"}, "account": account, "dao_id": "optimism"},
			setup: func(d assignDeps) {
				d.members.EXPECT().IsMember(gomock.Any(), "optimism", account).Return(false, nil)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "missing dao",
			body:       map[string]any{"task": map[string]any{"id": "prop-1"}, "account": account},
			setup:      func(d assignDeps) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "audit upload fails",
			body: map[string]any{"task": map[string]any{"id": "prop-1"}, "account": account, "dao_id": "optimism"},
			setup: func(d assignDeps) {
				d.members.EXPECT().IsMember(gomock.Any(), "optimism", account).Return(true, nil)
				d.recorder.EXPECT().Record(gomock.Any(), gomock.Any()).Return("", errors.New("gateway timeout"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, d := newRouter(t, false)
			tt.setup(d)

			w := post(r, "/assignments/opt-in", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}

// ── GET /assignments/:taskId ──────────────────────────────────────────────────

func TestGetAssignment(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		r, d := newRouter(t, false)
		d.ledger.EXPECT().Get(gomock.Any(), "prop-1").Return(domainassignment.Entry{
			TaskID: "prop-1", Kind: domainassignment.KindSubmitted, Assignee: addr(1), ConfirmedAssignee: addr(2),
		}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/assignments/prop-1", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var e domainassignment.Entry
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
		assert.True(t, e.Mismatch())
	})

	t.Run("missing", func(t *testing.T) {
		r, d := newRouter(t, false)
		d.ledger.EXPECT().Get(gomock.Any(), "nope").Return(domainassignment.Entry{}, domainassignment.ErrNotFound)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/assignments/nope", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
