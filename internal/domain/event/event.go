package event

import (
	"math/big"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeAssignmentResolved  Type = "assignment_resolved"
	TypeAssignmentCancelled Type = "assignment_cancelled"
	TypeDelegateOptedIn     Type = "delegate_opted_in"
	TypeTaskAssignedOnchain Type = "task_assigned_onchain"
)

// Channel is a domain-scoped Postgres NOTIFY channel.
// All event types within a domain share one LISTEN connection.
type Channel string

const (
	ChannelAssignment Channel = "assignment"
	ChannelChain      Channel = "chain"
)

var typeToChannel = map[Type]Channel{
	TypeAssignmentResolved:  ChannelAssignment,
	TypeAssignmentCancelled: ChannelAssignment,
	TypeDelegateOptedIn:     ChannelAssignment,
	TypeTaskAssignedOnchain: ChannelChain,
}

// ChannelFor returns the domain channel for a given event type.
func ChannelFor(t Type) Channel { return typeToChannel[t] }

// Channels lists every channel an event can be published on.
func Channels() []Channel { return []Channel{ChannelAssignment, ChannelChain} }

// Event carries identifiers only, not full state.
// Subscribers fetch the ledger entry for TaskID when they need more.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Type      Type      `json:"type"`
	TaskID    string    `json:"task_id"`
	ChainID   uint64    `json:"chain_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func New(eventType Type, taskID string, chainID uint64) Event {
	return Event{
		ID:        uuid.New(),
		Type:      eventType,
		TaskID:    taskID,
		ChainID:   chainID,
		Timestamp: time.Now().UTC(),
	}
}

// TaskAssigned is a decoded TaskAssigned log emitted by the assignment contract.
type TaskAssigned struct {
	ChainID     uint64   `json:"chain_id"`
	TaskID      string   `json:"task_id"`
	AssignedTo  string   `json:"assigned_to"`
	RandomIndex *big.Int `json:"random_index"`
	TxHash      string   `json:"tx_hash"`
	BlockNumber uint64   `json:"block_number"`
}
