package chain

import (
	"context"
	"math/big"

	domainchain "github.com/alanyang/dao-janny/internal/domain/chain"
	"github.com/alanyang/dao-janny/internal/domain/event"
)

// FeeReader is the narrow read side the fee service needs.
type FeeReader interface {
	OracleFee(ctx context.Context, chainID domainchain.ID) (*big.Int, error)
	GasPrice(ctx context.Context, chainID domainchain.ID) (*big.Int, error)
	EstimateAssignGas(ctx context.Context, chainID domainchain.ID, call domainchain.AssignCall) (uint64, error)
}

type RoleReader interface {
	HasRole(ctx context.Context, chainID domainchain.ID, role domainchain.RoleID, account string) (bool, error)
	AdminRole(ctx context.Context, chainID domainchain.ID) (domainchain.RoleID, error)
}

// Transactor dry-runs and sends assignTask on behalf of a requester account.
// Both methods return a *domainchain.TxError on failure.
type Transactor interface {
	Simulate(ctx context.Context, chainID domainchain.ID, from string, call domainchain.AssignCall, value *big.Int) error
	// Submit returns once the network has accepted the transaction.
	Submit(ctx context.Context, chainID domainchain.ID, from string, call domainchain.AssignCall, value *big.Int) (txHash string, err error)
}

type Subscription interface {
	Unsubscribe()
	Err() <-chan error
}

// LogSource streams decoded TaskAssigned logs for one chain.
type LogSource interface {
	SubscribeTaskAssigned(ctx context.Context, chainID domainchain.ID, sink func(event.TaskAssigned)) (Subscription, error)
}
