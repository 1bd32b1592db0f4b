package fee

import (
	"math/big"
	"time"

	"github.com/alanyang/dao-janny/internal/domain/chain"
)

// BufferPercent pads every quote so a fee that moves between quote and
// submission still covers the oracle.
const BufferPercent = 120

// FallbackGasUnits is used when the node cannot estimate assignTask.
const FallbackGasUnits uint64 = 200_000

var (
	// FallbackRandomnessFee is 0.001 ETH, returned when the oracle cannot be read.
	FallbackRandomnessFee = big.NewInt(1_000_000_000_000_000)
	// FallbackGasPrice is 0.001 gwei, in line with typical OP stack base fees.
	FallbackGasPrice = big.NewInt(1_000_000)
)

// OracleFee is one randomness fee read from a chain's oracle.
type OracleFee struct {
	Amount   *big.Int
	QuotedAt time.Time
}

// Quote is the cost of one random draw on chain.
type Quote struct {
	ChainID       chain.ID  `json:"chain_id"`
	RandomnessFee *big.Int  `json:"randomness_fee"`
	GasUnits      uint64    `json:"gas_units"`
	GasPrice      *big.Int  `json:"gas_price"`
	GasFee        *big.Int  `json:"gas_fee"`
	Total         *big.Int  `json:"total"`
	QuotedAt      time.Time `json:"quoted_at"`
	// Fallback is set when the randomness fee did not come from the oracle.
	Fallback bool `json:"fallback"`
}

// ApplyBuffer returns ceil(amount * BufferPercent / 100).
func ApplyBuffer(amount *big.Int) *big.Int {
	n := new(big.Int).Mul(amount, big.NewInt(BufferPercent))
	n.Add(n, big.NewInt(99))
	return n.Quo(n, big.NewInt(100))
}

// NewQuote combines a randomness fee with a gas estimate.
func NewQuote(chainID chain.ID, oracle OracleFee, gasUnits uint64, gasPrice *big.Int, fallback bool) Quote {
	gasFee := new(big.Int).Mul(new(big.Int).SetUint64(gasUnits), gasPrice)
	sum := new(big.Int).Add(oracle.Amount, gasFee)
	return Quote{
		ChainID:       chainID,
		RandomnessFee: new(big.Int).Set(oracle.Amount),
		GasUnits:      gasUnits,
		GasPrice:      new(big.Int).Set(gasPrice),
		GasFee:        gasFee,
		Total:         ApplyBuffer(sum),
		QuotedAt:      oracle.QuotedAt,
		Fallback:      fallback,
	}
}
