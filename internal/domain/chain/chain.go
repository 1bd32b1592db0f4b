package chain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ID is an EIP-155 chain id.
type ID uint64

const (
	OPMainnet ID = 10
	OPSepolia ID = 11155420
)

func (id ID) String() string { return strconv.FormatUint(uint64(id), 10) }

// ParseID parses a decimal chain id.
func ParseID(s string) (ID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid chain id %q: %w", s, err)
	}
	return ID(v), nil
}

var ErrUnsupportedChain = errors.New("chain not supported")

// Deployment holds the per-chain addresses of the task contract and the
// randomness oracle.
type Deployment struct {
	ChainID  ID
	Name     string
	Contract common.Address
	Oracle   common.Address
}

var deployments = map[ID]Deployment{
	OPMainnet: {
		ChainID:  OPMainnet,
		Name:     "OP Mainnet",
		Contract: common.HexToAddress("0x1b99E303b9A1D8279F45Bb6e510863fB669cDf65"),
		Oracle:   common.HexToAddress("0x4374e5a8b9C22271E9EB878A2AA31DE97DF15DAF"),
	},
	OPSepolia: {
		ChainID:  OPSepolia,
		Name:     "OP Sepolia",
		Contract: common.HexToAddress("0xcaD1561c501eAAB2a44FD257b465b43D888b5b45"),
		Oracle:   common.HexToAddress("0x4374e5a8b9C22271E9EB878A2AA31DE97DF15DAF"),
	},
}

// Lookup returns the deployment for id or ErrUnsupportedChain.
func Lookup(id ID) (Deployment, error) {
	d, ok := deployments[id]
	if !ok {
		return Deployment{}, fmt.Errorf("chain %d: %w", id, ErrUnsupportedChain)
	}
	return d, nil
}

// Supported lists every chain with a deployment.
func Supported() []ID {
	return []ID{OPMainnet, OPSepolia}
}

// RoleID is a bytes32 AccessControl role identifier.
type RoleID = common.Hash

// roleTable maps UI role names to contract role ids: keccak256("<NAME>_ROLE").
var roleTable = map[string]RoleID{
	"governance": crypto.Keccak256Hash([]byte("GOVERNANCE_ROLE")),
	"treasury":   crypto.Keccak256Hash([]byte("TREASURY_ROLE")),
	"technical":  crypto.Keccak256Hash([]byte("TECHNICAL_ROLE")),
	"community":  crypto.Keccak256Hash([]byte("COMMUNITY_ROLE")),
	"grants":     crypto.Keccak256Hash([]byte("GRANTS_ROLE")),
	"operations": crypto.Keccak256Hash([]byte("OPERATIONS_ROLE")),
}

// AdminRoleID is the expected value of the contract's ADMIN_ROLE() constant.
var AdminRoleID = crypto.Keccak256Hash([]byte("ADMIN_ROLE"))

// RoleFor resolves a UI role name. ok is false for unknown names.
func RoleFor(name string) (RoleID, bool) {
	id, ok := roleTable[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

// RoleNames returns the UI role names known to the role table.
func RoleNames() []string {
	return []string{"governance", "treasury", "technical", "community", "grants", "operations"}
}

// AssignCall is the argument set of assignTask(string,address[],bytes32).
type AssignCall struct {
	TaskID  string
	Members []common.Address
	Salt    common.Hash
}

// NewSalt derives user-supplied entropy for the oracle from the task id, the
// wall clock and a local random value. It only has to avoid replays.
func NewSalt(taskID string, now time.Time, r uint64) common.Hash {
	return crypto.Keccak256Hash([]byte(fmt.Sprintf("%s-%d-%d", taskID, now.UnixNano(), r)))
}

// NewAssignCall validates addresses and builds the call arguments.
func NewAssignCall(taskID string, addresses []string, salt common.Hash) (AssignCall, error) {
	members := make([]common.Address, 0, len(addresses))
	for _, a := range addresses {
		if !common.IsHexAddress(a) {
			return AssignCall{}, fmt.Errorf("invalid member address %q", a)
		}
		members = append(members, common.HexToAddress(a))
	}
	return AssignCall{TaskID: taskID, Members: members, Salt: salt}, nil
}
