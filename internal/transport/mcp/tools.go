package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	mcpmcp "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	domainassignment "github.com/alanyang/dao-janny/internal/domain/assignment"
	"github.com/alanyang/dao-janny/internal/domain/chain"
	"github.com/alanyang/dao-janny/internal/domain/member"
	"github.com/alanyang/dao-janny/internal/domain/task"
	portregistry "github.com/alanyang/dao-janny/internal/port/registry"
	assignsvc "github.com/alanyang/dao-janny/internal/service/assignment"
	feesvc "github.com/alanyang/dao-janny/internal/service/fee"
	rolesvc "github.com/alanyang/dao-janny/internal/service/role"
)

// RegisterTools registers all MCP tools on the server.
// [SRP] Tool registration only.
// [OCP] Add a new tool by adding a new AddTool call; server.go never changes.
func RegisterTools(s *mcpserver.MCPServer, svcs Services) {
	s.AddTool(mcpmcp.NewTool("quote_assignment_fee",
		mcpmcp.WithDescription("Quote the cost of a random draw: oracle randomness fee plus gas, padded by the safety buffer. Amounts are wei as decimal strings."),
		mcpmcp.WithString("chain_id", mcpmcp.Required(), mcpmcp.Description("Chain id: 10 (OP Mainnet) or 11155420 (OP Sepolia)")),
		mcpmcp.WithString("task_id", mcpmcp.Description("Task id, used with members for a gas estimate")),
		mcpmcp.WithArray("members", mcpmcp.Description("Eligible member addresses for a gas estimate"), mcpmcp.Items(map[string]any{"type": "string"})),
	), quoteFeeHandler(svcs.Fees))

	s.AddTool(mcpmcp.NewTool("assign_task_randomly",
		mcpmcp.WithDescription("Draw an assignee for a task through the on-chain randomness oracle. Falls back to a local uniform draw when the chain path fails for technical reasons. The requester's wallet signs the transaction."),
		mcpmcp.WithString("task_id", mcpmcp.Required(), mcpmcp.Description("Task id (proposal id)")),
		mcpmcp.WithString("title", mcpmcp.Description("Task title")),
		mcpmcp.WithString("category", mcpmcp.Description("governance, treasury, technical, community, grants or operations")),
		mcpmcp.WithString("account", mcpmcp.Required(), mcpmcp.Description("Requester wallet address")),
		mcpmcp.WithString("chain_id", mcpmcp.Required(), mcpmcp.Description("Chain id")),
		mcpmcp.WithString("dao_id", mcpmcp.Description("DAO ens name without .eth; the roster is fetched when roster is omitted")),
		mcpmcp.WithArray("roster", mcpmcp.Description("Members as objects with address and optional domain"), mcpmcp.Items(map[string]any{"type": "object"})),
	), assignHandler(svcs.Assign, svcs.Roster))

	s.AddTool(mcpmcp.NewTool("check_role",
		mcpmcp.WithDescription("Check contract roles for an address. Fails closed: anything unverifiable reads as false."),
		mcpmcp.WithString("chain_id", mcpmcp.Required(), mcpmcp.Description("Chain id")),
		mcpmcp.WithString("address", mcpmcp.Required(), mcpmcp.Description("Address to check")),
		mcpmcp.WithString("role", mcpmcp.Description("Role name such as governance or treasury; all roles when omitted")),
	), checkRoleHandler(svcs.Roles))

	s.AddTool(mcpmcp.NewTool("get_assignment",
		mcpmcp.WithDescription("Return the latest recorded assignment for a task, including the on-chain confirmed assignee when the contract event has been seen."),
		mcpmcp.WithString("task_id", mcpmcp.Required(), mcpmcp.Description("Task id")),
	), getAssignmentHandler(svcs.Assign))
}

// ── Tool handlers ─────────────────────────────────────────────────────────

func parseChain(req mcpmcp.CallToolRequest) (chain.ID, error) {
	id, err := chain.ParseID(strings.TrimSpace(mcpmcp.ParseString(req, "chain_id", "")))
	if err != nil {
		return 0, err
	}
	return id, nil
}

func stringList(req mcpmcp.CallToolRequest, key string) []string {
	raw, ok := mcpmcp.ParseArgument(req, key, nil).([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func jsonResult(v any) *mcpmcp.CallToolResult {
	data, err := json.Marshal(v)
	if err != nil {
		return mcpmcp.NewToolResultText(fmt.Sprintf("error: %s", err))
	}
	return mcpmcp.NewToolResultText(string(data))
}

func quoteFeeHandler(fees *feesvc.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		id, err := parseChain(req)
		if err != nil {
			return mcpmcp.NewToolResultText(fmt.Sprintf("error: %s", err)), nil
		}

		taskID := mcpmcp.ParseString(req, "task_id", "")
		members := stringList(req, "members")

		q := fees.Quote(ctx, id)
		if taskID != "" && len(members) > 0 {
			q = fees.QuoteAssignment(ctx, id, taskID, members)
		}
		return jsonResult(map[string]any{
			"chain_id":           q.ChainID,
			"randomness_fee_wei": q.RandomnessFee.String(),
			"gas_units":          q.GasUnits,
			"gas_price_wei":      q.GasPrice.String(),
			"total_wei":          q.Total.String(),
			"fallback":           q.Fallback,
		}), nil
	}
}

func assignHandler(svc *assignsvc.Service, roster portregistry.RosterSource) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		taskID := strings.TrimSpace(mcpmcp.ParseString(req, "task_id", ""))
		if taskID == "" {
			return mcpmcp.NewToolResultText("error: task_id required"), nil
		}
		chainID, err := chain.ParseID(strings.TrimSpace(mcpmcp.ParseString(req, "chain_id", "")))
		if err != nil {
			return mcpmcp.NewToolResultText(fmt.Sprintf("error: %s", err)), nil
		}

		members, err := rosterArg(req)
		if err != nil {
			return mcpmcp.NewToolResultText(fmt.Sprintf("error: invalid roster: %s", err)), nil
		}
		if daoID := mcpmcp.ParseString(req, "dao_id", ""); len(members) == 0 && daoID != "" && roster != nil {
			members, err = roster.Members(ctx, daoID)
			if err != nil {
				return mcpmcp.NewToolResultText(fmt.Sprintf("error: roster unavailable: %s", err)), nil
			}
		}

		res, err := svc.Assign(ctx, domainassignment.Input{
			Task: task.Task{
				ID:       taskID,
				Title:    mcpmcp.ParseString(req, "title", ""),
				Category: task.Category(mcpmcp.ParseString(req, "category", "")),
			},
			Roster:  members,
			Account: mcpmcp.ParseString(req, "account", ""),
			ChainID: chainID,
		})
		if err != nil {
			return mcpmcp.NewToolResultText(fmt.Sprintf("error: %s", err)), nil
		}
		return jsonResult(res), nil
	}
}

// rosterArg decodes the optional roster argument through JSON so members
// keep their struct tags.
func rosterArg(req mcpmcp.CallToolRequest) ([]member.Member, error) {
	raw := mcpmcp.ParseArgument(req, "roster", nil)
	if raw == nil {
		return nil, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var members []member.Member
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func checkRoleHandler(roles *rolesvc.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		id, err := chain.ParseID(strings.TrimSpace(mcpmcp.ParseString(req, "chain_id", "")))
		if err != nil {
			return mcpmcp.NewToolResultText(fmt.Sprintf("error: %s", err)), nil
		}
		address := mcpmcp.ParseString(req, "address", "")

		var names []string
		if role := mcpmcp.ParseString(req, "role", ""); role != "" {
			if _, ok := chain.RoleFor(role); !ok {
				return mcpmcp.NewToolResultText(fmt.Sprintf("error: unknown role %q, must be one of: %s", role, strings.Join(chain.RoleNames(), ", "))), nil
			}
			names = []string{role}
		}

		return jsonResult(map[string]any{
			"address": address,
			"admin":   roles.IsAdmin(ctx, address, id),
			"roles":   roles.Roles(ctx, address, id, names...),
		}), nil
	}
}

func getAssignmentHandler(svc *assignsvc.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		taskID := mcpmcp.ParseString(req, "task_id", "")
		e, err := svc.Get(ctx, taskID)
		if errors.Is(err, domainassignment.ErrNotFound) {
			return mcpmcp.NewToolResultText("null"), nil
		}
		if err != nil {
			return mcpmcp.NewToolResultText(fmt.Sprintf("error: %s", err)), nil
		}
		return jsonResult(e), nil
	}
}
