package ethereum

import (
	"context"
	"fmt"
	"math/big"

	gethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/alanyang/dao-janny/internal/domain/chain"
)

func (c *Client) call(ctx context.Context, id chain.ID, to func(chain.Deployment) common.Address, parsed abi.ABI, method string, args ...any) ([]any, error) {
	b, d, err := c.backend(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("packing %s: %w", method, err)
	}
	addr := to(d)
	out, err := b.CallContract(ctx, gethereum.CallMsg{To: &addr, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("calling %s on chain %d: %w", method, id, err)
	}
	values, err := parsed.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("unpacking %s: %w", method, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%s returned no values", method)
	}
	return values, nil
}

func contractAddr(d chain.Deployment) common.Address { return d.Contract }
func oracleAddr(d chain.Deployment) common.Address   { return d.Oracle }

func (c *Client) OracleFee(ctx context.Context, id chain.ID) (*big.Int, error) {
	values, err := c.call(ctx, id, oracleAddr, oracleABI, "getFee")
	if err != nil {
		return nil, err
	}
	fee, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("getFee: unexpected type %T", values[0])
	}
	return fee, nil
}

func (c *Client) GasPrice(ctx context.Context, id chain.ID) (*big.Int, error) {
	b, _, err := c.backend(ctx, id)
	if err != nil {
		return nil, err
	}
	price, err := b.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("eth_gasPrice on chain %d: %w", id, err)
	}
	return price, nil
}

// EstimateAssignGas estimates assignTask with the oracle fee attached as
// value; without it the contract would revert on the fee check.
func (c *Client) EstimateAssignGas(ctx context.Context, id chain.ID, call chain.AssignCall) (uint64, error) {
	b, d, err := c.backend(ctx, id)
	if err != nil {
		return 0, err
	}
	data, err := packAssign(call)
	if err != nil {
		return 0, err
	}
	msg := gethereum.CallMsg{To: &d.Contract, Data: data}
	if fee, err := c.OracleFee(ctx, id); err == nil {
		msg.Value = fee
	}
	units, err := b.EstimateGas(ctx, msg)
	if err != nil {
		return 0, fmt.Errorf("estimating assignTask on chain %d: %w", id, err)
	}
	return units, nil
}

func (c *Client) HasRole(ctx context.Context, id chain.ID, role chain.RoleID, account string) (bool, error) {
	if !common.IsHexAddress(account) {
		return false, fmt.Errorf("invalid account %q", account)
	}
	values, err := c.call(ctx, id, contractAddr, contractABI, "hasRole", [32]byte(role), common.HexToAddress(account))
	if err != nil {
		return false, err
	}
	ok, isBool := values[0].(bool)
	if !isBool {
		return false, fmt.Errorf("hasRole: unexpected type %T", values[0])
	}
	return ok, nil
}

func (c *Client) AdminRole(ctx context.Context, id chain.ID) (chain.RoleID, error) {
	values, err := c.call(ctx, id, contractAddr, contractABI, "ADMIN_ROLE")
	if err != nil {
		return chain.RoleID{}, err
	}
	raw, ok := values[0].([32]byte)
	if !ok {
		return chain.RoleID{}, fmt.Errorf("ADMIN_ROLE: unexpected type %T", values[0])
	}
	return chain.RoleID(raw), nil
}

func packAssign(call chain.AssignCall) ([]byte, error) {
	data, err := contractABI.Pack("assignTask", call.TaskID, call.Members, [32]byte(call.Salt))
	if err != nil {
		return nil, fmt.Errorf("packing assignTask: %w", err)
	}
	return data, nil
}
