package fee

import (
	"context"
	"math/big"

	"github.com/alanyang/dao-janny/internal/domain/chain"
)

// PayableQuoter supplies the msg.value for assignTask. It never fails; a
// fallback amount is returned when the oracle cannot be read.
type PayableQuoter interface {
	PayableValue(ctx context.Context, chainID chain.ID) *big.Int
}
