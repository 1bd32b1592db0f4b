package fee

import (
	"context"
	"log/slog"
	"math/big"
	"math/rand/v2"
	"time"

	"github.com/alanyang/dao-janny/internal/adapter/memory"
	"github.com/alanyang/dao-janny/internal/domain/chain"
	domainfee "github.com/alanyang/dao-janny/internal/domain/fee"
	portchain "github.com/alanyang/dao-janny/internal/port/chain"
)

// DefaultTTL is how long an oracle fee is served from cache.
const DefaultTTL = 60 * time.Second

// Service quotes the cost of a random draw. Every read degrades to a fixed
// fallback instead of failing, so quotes never block the caller.
// [DIP] The cache is owned by the caller and injected, never package state.
type Service struct {
	reader portchain.FeeReader
	cache  *memory.Cache[chain.ID, domainfee.OracleFee]
	now    func() time.Time
}

func NewService(reader portchain.FeeReader, cache *memory.Cache[chain.ID, domainfee.OracleFee]) *Service {
	return &Service{reader: reader, cache: cache, now: time.Now}
}

// WithClock sets the clock used to stamp fallback quotes.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// RandomnessFee returns the oracle fee for chainID. fallback is true when the
// oracle could not be read; fallback values are not cached.
func (s *Service) RandomnessFee(ctx context.Context, chainID chain.ID) (f domainfee.OracleFee, fallback bool) {
	if cached, ok := s.cache.Get(chainID); ok {
		return cached, false
	}

	amount, err := s.reader.OracleFee(ctx, chainID)
	if err != nil || amount == nil {
		slog.WarnContext(ctx, "fee: oracle read failed, using fallback fee", "chain_id", chainID, "error", err)
		return domainfee.OracleFee{
			Amount:   new(big.Int).Set(domainfee.FallbackRandomnessFee),
			QuotedAt: s.now(),
		}, true
	}

	f = domainfee.OracleFee{Amount: amount, QuotedAt: s.now()}
	s.cache.Set(chainID, f)
	return f, false
}

// EstimateGas estimates assignTask for the given pool with a fresh salt.
func (s *Service) EstimateGas(ctx context.Context, taskID string, members []string, chainID chain.ID) uint64 {
	call, err := chain.NewAssignCall(taskID, members, chain.NewSalt(taskID, s.now(), rand.Uint64()))
	if err != nil {
		slog.WarnContext(ctx, "fee: cannot build assignTask payload, using fallback gas", "task_id", taskID, "error", err)
		return domainfee.FallbackGasUnits
	}

	units, err := s.reader.EstimateAssignGas(ctx, chainID, call)
	if err != nil {
		slog.WarnContext(ctx, "fee: gas estimation failed, using fallback gas", "task_id", taskID, "chain_id", chainID, "error", err)
		return domainfee.FallbackGasUnits
	}
	return units
}

func (s *Service) gasPrice(ctx context.Context, chainID chain.ID) *big.Int {
	price, err := s.reader.GasPrice(ctx, chainID)
	if err != nil || price == nil {
		slog.WarnContext(ctx, "fee: gas price read failed, using fallback price", "chain_id", chainID, "error", err)
		return new(big.Int).Set(domainfee.FallbackGasPrice)
	}
	return price
}

// Quote prices a draw using the fallback gas limit.
func (s *Service) Quote(ctx context.Context, chainID chain.ID) domainfee.Quote {
	oracle, fallback := s.RandomnessFee(ctx, chainID)
	return domainfee.NewQuote(chainID, oracle, domainfee.FallbackGasUnits, s.gasPrice(ctx, chainID), fallback)
}

// QuoteAssignment prices a draw over members using an estimated gas limit.
func (s *Service) QuoteAssignment(ctx context.Context, chainID chain.ID, taskID string, members []string) domainfee.Quote {
	oracle, fallback := s.RandomnessFee(ctx, chainID)
	units := s.EstimateGas(ctx, taskID, members, chainID)
	return domainfee.NewQuote(chainID, oracle, units, s.gasPrice(ctx, chainID), fallback)
}

// PayableValue is the msg.value sent with assignTask: the buffered randomness fee.
func (s *Service) PayableValue(ctx context.Context, chainID chain.ID) *big.Int {
	oracle, _ := s.RandomnessFee(ctx, chainID)
	return domainfee.ApplyBuffer(oracle.Amount)
}
