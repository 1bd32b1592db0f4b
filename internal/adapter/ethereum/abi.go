package ethereum

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const contractABIJSON = `[
	{"type":"function","name":"hasRole","stateMutability":"view",
	 "inputs":[{"name":"role","type":"bytes32"},{"name":"account","type":"address"}],
	 "outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"ADMIN_ROLE","stateMutability":"view",
	 "inputs":[],
	 "outputs":[{"name":"","type":"bytes32"}]},
	{"type":"function","name":"assignTask","stateMutability":"payable",
	 "inputs":[{"name":"taskId","type":"string"},{"name":"eligibleMembers","type":"address[]"},{"name":"randomSalt","type":"bytes32"}],
	 "outputs":[]},
	{"type":"event","name":"TaskAssigned","anonymous":false,
	 "inputs":[{"name":"taskId","type":"string","indexed":false},{"name":"assignedTo","type":"address","indexed":true},{"name":"randomIndex","type":"uint256","indexed":false}]}
]`

const oracleABIJSON = `[
	{"type":"function","name":"getFee","stateMutability":"view",
	 "inputs":[],
	 "outputs":[{"name":"","type":"uint256"}]}
]`

var (
	contractABI = mustParseABI(contractABIJSON)
	oracleABI   = mustParseABI(oracleABIJSON)
)

func mustParseABI(s string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(s))
	if err != nil {
		panic("ethereum: invalid embedded ABI: " + err.Error())
	}
	return parsed
}
