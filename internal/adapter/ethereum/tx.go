package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	gethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/alanyang/dao-janny/internal/domain/chain"
)

// EIP-1193 user rejection and the JSON-RPC code geth uses for reverts.
const (
	codeUserRejected     = 4001
	codeExecutionReverts = 3
)

var declinedMarkers = []string{"rejected", "denied", "cancelled", "canceled"}

type sendTxArgs struct {
	From    common.Address `json:"from"`
	To      common.Address `json:"to"`
	Value   *hexutil.Big   `json:"value"`
	Data    hexutil.Bytes  `json:"data"`
	ChainID *hexutil.Big   `json:"chainId"`
}

// Simulate dry-runs assignTask with eth_call from the requester.
func (c *Client) Simulate(ctx context.Context, id chain.ID, from string, call chain.AssignCall, value *big.Int) error {
	b, d, err := c.backend(ctx, id)
	if err != nil {
		return classify("simulate", err)
	}
	data, err := packAssign(call)
	if err != nil {
		return classify("simulate", err)
	}
	msg := gethereum.CallMsg{
		From:  common.HexToAddress(from),
		To:    &d.Contract,
		Value: value,
		Data:  data,
	}
	if _, err := b.CallContract(ctx, msg, nil); err != nil {
		return classify("simulate", err)
	}
	return nil
}

// Submit asks the signer to send assignTask and returns the transaction hash
// as soon as the signer reports it; it does not wait for inclusion.
func (c *Client) Submit(ctx context.Context, id chain.ID, from string, call chain.AssignCall, value *big.Int) (string, error) {
	d, err := chain.Lookup(id)
	if err != nil {
		return "", classify("submit", err)
	}
	signer, err := c.signerClient(ctx)
	if err != nil {
		return "", classify("submit", err)
	}
	data, err := packAssign(call)
	if err != nil {
		return "", classify("submit", err)
	}

	args := sendTxArgs{
		From:    common.HexToAddress(from),
		To:      d.Contract,
		Value:   (*hexutil.Big)(value),
		Data:    data,
		ChainID: (*hexutil.Big)(new(big.Int).SetUint64(uint64(id))),
	}
	var hash common.Hash
	if err := signer.CallContext(ctx, &hash, "eth_sendTransaction", args); err != nil {
		return "", classify("submit", err)
	}
	return hash.Hex(), nil
}

// classify turns a raw RPC or wallet error into a *chain.TxError. This is the
// only place error text is inspected.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	kind := chain.FailureNetwork

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		switch rpcErr.ErrorCode() {
		case codeUserRejected:
			kind = chain.FailureUserDeclined
		case codeExecutionReverts:
			kind = chain.FailureReverted
		}
	}

	if kind == chain.FailureNetwork {
		msg := strings.ToLower(err.Error())
		switch {
		case strings.Contains(msg, "execution reverted"):
			kind = chain.FailureReverted
		case containsAny(msg, declinedMarkers):
			kind = chain.FailureUserDeclined
		}
	}

	return &chain.TxError{Kind: kind, Op: op, Err: unwrapRevert(err)}
}

// unwrapRevert appends decoded revert data when the node returned it.
func unwrapRevert(err error) error {
	var dataErr rpc.DataError
	if !errors.As(err, &dataErr) {
		return err
	}
	hexData, ok := dataErr.ErrorData().(string)
	if !ok {
		return err
	}
	raw, decodeErr := hexutil.Decode(hexData)
	if decodeErr != nil {
		return err
	}
	reason, unpackErr := abi.UnpackRevert(raw)
	if unpackErr != nil || strings.Contains(err.Error(), reason) {
		return err
	}
	return fmt.Errorf("%w: %s", err, reason)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
