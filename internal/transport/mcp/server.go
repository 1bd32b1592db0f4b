package mcp

import (
	"net/http"

	mcpserver "github.com/mark3labs/mcp-go/server"

	portregistry "github.com/alanyang/dao-janny/internal/port/registry"
	assignsvc "github.com/alanyang/dao-janny/internal/service/assignment"
	feesvc "github.com/alanyang/dao-janny/internal/service/fee"
	rolesvc "github.com/alanyang/dao-janny/internal/service/role"
)

// Services are the application services exposed as MCP tools.
// Roster is optional; without it assign_task_randomly needs an explicit roster.
type Services struct {
	Assign *assignsvc.Service
	Fees   *feesvc.Service
	Roles  *rolesvc.Service
	Roster portregistry.RosterSource
}

// Server wraps the mark3labs/mcp-go MCPServer and its StreamableHTTPServer.
// [SRP] HTTP server lifecycle only.
//
//	Tools are registered in tools.go, prompts in prompts.go.
//
// [OCP] Adding new tools or prompts never requires changes to this file.
type Server struct {
	mcpSrv  *mcpserver.MCPServer
	httpSrv *mcpserver.StreamableHTTPServer
}

func New(svcs Services) *Server {
	mcpSrv := mcpserver.NewMCPServer(
		"dao-janny",
		"1.0.0",
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithPromptCapabilities(true),
	)

	RegisterTools(mcpSrv, svcs)
	RegisterPrompts(mcpSrv, svcs.Assign)

	return &Server{
		mcpSrv:  mcpSrv,
		httpSrv: mcpserver.NewStreamableHTTPServer(mcpSrv),
	}
}

// Handler returns an http.Handler that serves the MCP streamable HTTP endpoint.
func (s *Server) Handler() http.Handler {
	return s.httpSrv
}

// MCPServer exposes the underlying server, mainly for tests.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcpSrv
}
