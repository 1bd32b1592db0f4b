package transport

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/alanyang/dao-janny/internal/domain/event"
	porteventbus "github.com/alanyang/dao-janny/internal/port/eventbus"
	portidempotency "github.com/alanyang/dao-janny/internal/port/idempotency"
	portregistry "github.com/alanyang/dao-janny/internal/port/registry"
	assignsvc "github.com/alanyang/dao-janny/internal/service/assignment"
	auditsvc "github.com/alanyang/dao-janny/internal/service/audit"
	feesvc "github.com/alanyang/dao-janny/internal/service/fee"
	rolesvc "github.com/alanyang/dao-janny/internal/service/role"

	assignmenthandler "github.com/alanyang/dao-janny/internal/transport/assignment"
	audithandler "github.com/alanyang/dao-janny/internal/transport/audit"
	feehandler "github.com/alanyang/dao-janny/internal/transport/fee"
	mcptransport "github.com/alanyang/dao-janny/internal/transport/mcp"
	registryhandler "github.com/alanyang/dao-janny/internal/transport/registry"
	rolehandler "github.com/alanyang/dao-janny/internal/transport/role"
	wshandler "github.com/alanyang/dao-janny/internal/transport/ws"
)

// Deps are the services and adapters the HTTP surface is built from.
type Deps struct {
	Assign      *assignsvc.Service
	Fees        *feesvc.Service
	Roles       *rolesvc.Service
	Audit       *auditsvc.Service
	Roster      portregistry.RosterSource
	Proposals   portregistry.ProposalSource
	Idempotency portidempotency.Store
	MCP         *mcptransport.Server
	EventBus    porteventbus.EventBus
}

func NewRouter(ctx context.Context, d Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(RequestLogger())
	r.Use(CORSMiddleware())

	api := r.Group("/api")

	assignmenthandler.Register(api.Group("/assignments"), d.Assign, d.Roster, IdempotencyMiddleware(d.Idempotency, "assign"))
	feehandler.Register(api.Group("/fees"), d.Fees)
	rolehandler.Register(api.Group("/roles"), d.Roles)
	audithandler.Register(api.Group("/audit"), d.Audit)
	registryhandler.Register(api.Group("/daos"), d.Roster, d.Proposals)

	hub := wshandler.NewHub()
	hub.Register(api.Group("/ws"))

	if d.MCP != nil {
		r.Any("/mcp", gin.WrapH(d.MCP.Handler()))
	}

	// Bridge: one LISTEN connection per domain channel. Every event is
	// forwarded; event.Type in the payload lets the client filter.
	for _, ch := range event.Channels() {
		c := ch
		if _, err := d.EventBus.Subscribe(ctx, c, func(_ context.Context, e event.Event) {
			hub.Broadcast(e)
		}); err != nil {
			slog.Error("failed to subscribe channel to WS hub", "channel", c, "error", err)
		}
	}

	return r
}
