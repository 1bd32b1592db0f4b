package assignment

import (
	"errors"
	"strings"
	"time"

	"github.com/alanyang/dao-janny/internal/domain/chain"
	"github.com/alanyang/dao-janny/internal/domain/member"
	"github.com/alanyang/dao-janny/internal/domain/task"
)

// ErrNotFound is returned by ledgers for a task that was never assigned.
var ErrNotFound = errors.New("assignment not found")

type Kind string

const (
	KindSubmitted Kind = "submitted"
	KindFallback  Kind = "fallback"
	KindCancelled Kind = "cancelled"
	KindFailed    Kind = "failed"
	KindOptedIn   Kind = "opted_in"
)

// State is a step of one draw. Transitions are logged, never persisted.
type State string

const (
	StateIdle             State = "idle"
	StateFiltering        State = "filtering"
	StateQuoting          State = "quoting"
	StateSimulating       State = "simulating"
	StateSubmitting       State = "submitting"
	StateConfirmed        State = "confirmed"
	StateTechnicalFailure State = "technical_failure"
	StateUserCancelled    State = "user_cancelled"
	StateFallback         State = "fallback"
	StateResolved         State = "resolved"
)

// Input is everything one draw needs. Task and Roster are read-only snapshots.
type Input struct {
	Task    task.Task       `json:"task"`
	Roster  []member.Member `json:"roster"`
	Account string          `json:"account"`
	ChainID chain.ID        `json:"chain_id"`
}

// Request is the on-chain half of a draw.
type Request struct {
	TaskID            string   `json:"task_id"`
	EligibleAddresses []string `json:"eligible_addresses"`
	ChainID           chain.ID `json:"chain_id"`
	RequesterAccount  string   `json:"requester_account"`
}

// Result is a tagged outcome; Kind decides which fields are meaningful.
type Result struct {
	Kind     Kind           `json:"kind"`
	TaskID   string         `json:"task_id"`
	TxHash   string         `json:"tx_hash,omitempty"`
	Selected *member.Member `json:"selected_member,omitempty"`
	Reason   string         `json:"reason,omitempty"`
	AuditID  string         `json:"audit_id,omitempty"`
}

func Submitted(taskID, txHash string, m member.Member) Result {
	return Result{Kind: KindSubmitted, TaskID: taskID, TxHash: txHash, Selected: &m}
}

func Fallback(taskID string, m member.Member, reason string) Result {
	return Result{Kind: KindFallback, TaskID: taskID, Selected: &m, Reason: reason}
}

// Cancelled never carries a selected member.
func Cancelled(taskID, reason string) Result {
	return Result{Kind: KindCancelled, TaskID: taskID, Reason: reason}
}

func Failed(taskID, reason string) Result {
	return Result{Kind: KindFailed, TaskID: taskID, Reason: reason}
}

func OptedIn(taskID string, m member.Member) Result {
	return Result{Kind: KindOptedIn, TaskID: taskID, Selected: &m}
}

// Resolved reports whether the result assigned somebody.
func (r Result) Resolved() bool {
	return r.Selected != nil && (r.Kind == KindSubmitted || r.Kind == KindFallback || r.Kind == KindOptedIn)
}

// Entry is the bookkeeping row for a task's latest assignment. The tentative
// assignee comes from this service; ConfirmedAssignee from the contract event.
type Entry struct {
	TaskID            string    `json:"task_id"`
	ChainID           chain.ID  `json:"chain_id"`
	Kind              Kind      `json:"kind"`
	Assignee          string    `json:"assignee"`
	TxHash            string    `json:"tx_hash,omitempty"`
	AuditID           string    `json:"audit_id,omitempty"`
	ConfirmedAssignee string    `json:"confirmed_assignee,omitempty"`
	ConfirmedTxHash   string    `json:"confirmed_tx_hash,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Mismatch reports whether the contract picked a different member than the
// one shown to the requester.
func (e Entry) Mismatch() bool {
	return e.ConfirmedAssignee != "" && e.Assignee != "" && !strings.EqualFold(e.Assignee, e.ConfirmedAssignee)
}

func EntryFromResult(r Result, chainID chain.ID) Entry {
	e := Entry{TaskID: r.TaskID, ChainID: chainID, Kind: r.Kind, TxHash: r.TxHash, AuditID: r.AuditID}
	if r.Selected != nil {
		e.Assignee = r.Selected.Address
	}
	return e
}
