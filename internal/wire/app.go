package wire

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alanyang/dao-janny/internal/adapter/daostar"
	"github.com/alanyang/dao-janny/internal/adapter/ethereum"
	"github.com/alanyang/dao-janny/internal/adapter/lighthouse"
	"github.com/alanyang/dao-janny/internal/adapter/memory"
	pgdb "github.com/alanyang/dao-janny/internal/adapter/postgres"
	pgaudit "github.com/alanyang/dao-janny/internal/adapter/postgres/audit"
	pgeventbus "github.com/alanyang/dao-janny/internal/adapter/postgres/eventbus"
	pgidempotency "github.com/alanyang/dao-janny/internal/adapter/postgres/idempotency"
	pgledger "github.com/alanyang/dao-janny/internal/adapter/postgres/ledger"
	"github.com/alanyang/dao-janny/internal/adapter/postgres/migrations"

	"github.com/alanyang/dao-janny/internal/config"
	"github.com/alanyang/dao-janny/internal/domain/chain"
	domainfee "github.com/alanyang/dao-janny/internal/domain/fee"
	portaudit "github.com/alanyang/dao-janny/internal/port/audit"

	assignsvc "github.com/alanyang/dao-janny/internal/service/assignment"
	auditsvc "github.com/alanyang/dao-janny/internal/service/audit"
	feesvc "github.com/alanyang/dao-janny/internal/service/fee"
	rolesvc "github.com/alanyang/dao-janny/internal/service/role"
	watchersvc "github.com/alanyang/dao-janny/internal/service/watcher"

	"github.com/alanyang/dao-janny/internal/transport"
	mcptransport "github.com/alanyang/dao-janny/internal/transport/mcp"
)

// App holds the top-level resources needed to run and gracefully stop the server.
type App struct {
	Pool      *pgxpool.Pool
	Server    *http.Server
	Chain     *ethereum.Client
	MCPServer *mcptransport.Server

	stopWatchers func()
}

// Close stops the chain watchers and releases the RPC and database connections.
func (a *App) Close() {
	if a.stopWatchers != nil {
		a.stopWatchers()
	}
	a.Chain.Close()
	a.Pool.Close()
}

// Build is the composition root: the only place concrete types are wired to their
// interface dependencies.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	// ── Database ─────────────────────────────────────────────────────────────
	pool, err := pgdb.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := migrations.Apply(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("applying migrations: %w", err)
	}

	// ── Adapters ─────────────────────────────────────────────────────────────
	ledger := pgledger.New(pool)
	eventBus := pgeventbus.New(pool)
	idempotency := pgidempotency.New(pool)

	var auditStore portaudit.Store = pgaudit.New(pool)
	if cfg.LighthouseAPIKey != "" {
		auditStore = lighthouse.New(cfg.LighthouseAPIKey, cfg.HTTPTimeout)
		slog.Info("audit records stored on lighthouse")
	} else {
		slog.Warn("LIGHTHOUSE_API_KEY not set, audit records stored in postgres")
	}

	ethClient := ethereum.New(ethereum.Config{
		RPCURLs:      cfg.RPCURLs,
		SignerURL:    cfg.SignerRPCURL,
		PollInterval: cfg.WatchPoll,
	})
	registry := daostar.New(cfg.MembershipURL, cfg.ProposalsURL, cfg.HTTPTimeout)

	// ── Services ─────────────────────────────────────────────────────────────
	feeSvc := feesvc.NewService(ethClient, memory.NewCache[chain.ID, domainfee.OracleFee](cfg.FeeCacheTTL))
	roleSvc := rolesvc.NewService(ethClient)
	auditSvc := auditsvc.NewService(auditStore)
	assignSvc := assignsvc.NewService(ethClient, feeSvc, auditSvc, ledger, eventBus, registry)
	watcherSvc := watchersvc.NewService(ethClient)

	mcpServer := mcptransport.New(mcptransport.Services{
		Assign: assignSvc,
		Fees:   feeSvc,
		Roles:  roleSvc,
		Roster: registry,
	})

	// ── Transport ─────────────────────────────────────────────────────────────
	router := transport.NewRouter(ctx, transport.Deps{
		Assign:      assignSvc,
		Fees:        feeSvc,
		Roles:       roleSvc,
		Audit:       auditSvc,
		Roster:      registry,
		Proposals:   registry,
		Idempotency: idempotency,
		MCP:         mcpServer,
		EventBus:    eventBus,
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	slog.Info("application wired", "port", cfg.Port, "watch_chains", cfg.WatchChains)

	app := &App{
		Pool:      pool,
		Server:    server,
		Chain:     ethClient,
		MCPServer: mcpServer,
	}

	// ── On-chain reconciliation ───────────────────────────────────────────────
	app.stopWatchers = startReconciler(ctx, cfg.WatchChains, watcherSvc, ledger, eventBus)

	return app, nil
}
