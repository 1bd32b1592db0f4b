package audit

import (
	"fmt"
	"time"

	"github.com/alanyang/dao-janny/internal/domain/chain"
	"github.com/alanyang/dao-janny/internal/domain/task"
)

type Action string

const (
	ActionRandomAssignment   Action = "random_assignment"
	ActionFallbackAssignment Action = "fallback_assignment"
	ActionDelegateOptIn      Action = "delegate_opt_in"
)

type RandomnessSource string

const (
	SourceOracle   RandomnessSource = "pyth_entropy"
	SourceFallback RandomnessSource = "client_fallback"
	SourceNone     RandomnessSource = ""
)

// Details describes what was decided. Empty fields are omitted.
type Details struct {
	Task            task.Task `json:"task"`
	EligibleMembers []string  `json:"eligible_members,omitempty"`
	Assignee        string    `json:"assigned_delegate,omitempty"`
	TxHash          string    `json:"transaction_hash,omitempty"`
	ChainID         chain.ID  `json:"chain_id,omitempty"`
	Error           string    `json:"error,omitempty"`
	DAOID           string    `json:"dao_id,omitempty"`
}

// Record is one resolved decision. It is built once by New and never changed.
type Record struct {
	Action           Action           `json:"action"`
	TaskID           string           `json:"task_id"`
	Timestamp        time.Time        `json:"timestamp"`
	Actor            string           `json:"actor,omitempty"`
	Details          Details          `json:"details"`
	RandomnessSource RandomnessSource `json:"randomness_source,omitempty"`
}

func New(action Action, actor string, source RandomnessSource, d Details, at time.Time) Record {
	pool := make([]string, len(d.EligibleMembers))
	copy(pool, d.EligibleMembers)
	d.EligibleMembers = pool
	return Record{
		Action:           action,
		TaskID:           d.Task.ID,
		Timestamp:        at.UTC(),
		Actor:            actor,
		Details:          d,
		RandomnessSource: source,
	}
}

// Name is the file name the record is stored under.
func (r Record) Name() string {
	return fmt.Sprintf("dao-janny-%s-%s", r.Action, r.TaskID)
}
