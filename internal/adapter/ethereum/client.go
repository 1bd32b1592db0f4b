package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	gethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/alanyang/dao-janny/internal/domain/chain"
	portchain "github.com/alanyang/dao-janny/internal/port/chain"
)

var (
	_ portchain.FeeReader  = (*Client)(nil)
	_ portchain.RoleReader = (*Client)(nil)
	_ portchain.Transactor = (*Client)(nil)
	_ portchain.LogSource  = (*Client)(nil)
)

// Backend is the subset of *ethclient.Client the adapter uses.
type Backend interface {
	CallContract(ctx context.Context, msg gethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	EstimateGas(ctx context.Context, msg gethereum.CallMsg) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
	FilterLogs(ctx context.Context, q gethereum.FilterQuery) ([]types.Log, error)
	SubscribeFilterLogs(ctx context.Context, q gethereum.FilterQuery, ch chan<- types.Log) (gethereum.Subscription, error)
}

// Signer sends transactions on behalf of a requester. *rpc.Client
// pointed at a wallet bridge or Clef satisfies it.
type Signer interface {
	CallContext(ctx context.Context, result any, method string, args ...any) error
}

type Config struct {
	RPCURLs      map[chain.ID]string
	SignerURL    string
	PollInterval time.Duration
}

// Client talks to the assignment contract and the randomness oracle on every
// configured chain. Connections are dialed on first use.
type Client struct {
	cfg Config

	mu       sync.Mutex
	backends map[chain.ID]Backend
	closers  []func()
	signer   Signer
}

func New(cfg Config) *Client {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 15 * time.Second
	}
	return &Client{cfg: cfg, backends: make(map[chain.ID]Backend)}
}

// NewWithBackends builds a Client over pre-dialed backends.
func NewWithBackends(backends map[chain.ID]Backend, signer Signer, pollInterval time.Duration) *Client {
	c := New(Config{PollInterval: pollInterval})
	for id, b := range backends {
		c.backends[id] = b
	}
	c.signer = signer
	return c
}

func (c *Client) backend(ctx context.Context, id chain.ID) (Backend, chain.Deployment, error) {
	d, err := chain.Lookup(id)
	if err != nil {
		return nil, chain.Deployment{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if b, ok := c.backends[id]; ok {
		return b, d, nil
	}
	url, ok := c.cfg.RPCURLs[id]
	if !ok || url == "" {
		return nil, d, fmt.Errorf("no RPC URL configured for chain %d", id)
	}
	ec, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, d, fmt.Errorf("dialing chain %d: %w", id, err)
	}
	c.backends[id] = ec
	c.closers = append(c.closers, ec.Close)
	return ec, d, nil
}

func (c *Client) signerClient(ctx context.Context) (Signer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.signer != nil {
		return c.signer, nil
	}
	if c.cfg.SignerURL == "" {
		return nil, fmt.Errorf("no signer RPC configured")
	}
	rc, err := rpc.DialContext(ctx, c.cfg.SignerURL)
	if err != nil {
		return nil, fmt.Errorf("dialing signer: %w", err)
	}
	c.signer = rc
	c.closers = append(c.closers, rc.Close)
	return rc, nil
}

// Close releases every dialed connection.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, closeFn := range c.closers {
		closeFn()
	}
	c.closers = nil
}
