package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpmcp "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	domainassignment "github.com/alanyang/dao-janny/internal/domain/assignment"
	assignsvc "github.com/alanyang/dao-janny/internal/service/assignment"
)

// RegisterPrompts registers the MCP native prompts.
// [SRP] Prompt registration only.
func RegisterPrompts(s *mcpserver.MCPServer, svc *assignsvc.Service) {
	s.AddPrompt(
		mcpmcp.NewPrompt("assignment_report",
			mcpmcp.WithPromptDescription("Summarise how a task was assigned so it can be posted to the DAO forum."),
			mcpmcp.WithArgument("task_id",
				mcpmcp.ArgumentDescription("Task id whose assignment should be reported."),
				mcpmcp.RequiredArgument(),
			),
		),
		reportHandler(svc),
	)
}

func reportHandler(svc *assignsvc.Service) mcpserver.PromptHandlerFunc {
	return func(ctx context.Context, req mcpmcp.GetPromptRequest) (*mcpmcp.GetPromptResult, error) {
		taskID := req.Params.Arguments["task_id"]
		if taskID == "" {
			return nil, fmt.Errorf("task_id is required")
		}

		e, err := svc.Get(ctx, taskID)
		if err != nil {
			return nil, fmt.Errorf("get assignment for %s: %w", taskID, err)
		}

		return mcpmcp.NewGetPromptResult(
			fmt.Sprintf("Assignment report for %s", taskID),
			[]mcpmcp.PromptMessage{
				mcpmcp.NewPromptMessage(
					mcpmcp.RoleUser,
					mcpmcp.TextContent{
						Type: "text",
						Text: reportText(e),
					},
				),
			},
		), nil
	}
}

func reportText(e domainassignment.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a short, neutral forum post announcing the assignment of task %s.\n\n", e.TaskID)
	fmt.Fprintf(&b, "Outcome: %s\n", e.Kind)
	if e.Assignee != "" {
		fmt.Fprintf(&b, "Assignee: %s\n", e.Assignee)
	}
	if e.ChainID != 0 {
		fmt.Fprintf(&b, "Chain: %s\n", e.ChainID)
	}
	if e.TxHash != "" {
		fmt.Fprintf(&b, "Transaction: %s\n", e.TxHash)
	}
	if e.ConfirmedAssignee != "" {
		fmt.Fprintf(&b, "On-chain assignee: %s\n", e.ConfirmedAssignee)
		if e.Mismatch() {
			b.WriteString("The on-chain assignee differs from the one first shown; the on-chain value is authoritative.\n")
		}
	}
	if e.AuditID != "" {
		fmt.Fprintf(&b, "Audit record: %s\n", e.AuditID)
	}
	switch e.Kind {
	case domainassignment.KindFallback:
		b.WriteString("The randomness oracle was unavailable, so the draw used the local fallback.\n")
	case domainassignment.KindOptedIn:
		b.WriteString("The assignee volunteered for the task.\n")
	}
	return b.String()
}
