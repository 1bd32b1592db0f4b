package assignment

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainassignment "github.com/alanyang/dao-janny/internal/domain/assignment"
	"github.com/alanyang/dao-janny/internal/domain/chain"
	"github.com/alanyang/dao-janny/internal/domain/member"
	"github.com/alanyang/dao-janny/internal/domain/task"
	portregistry "github.com/alanyang/dao-janny/internal/port/registry"
	assignsvc "github.com/alanyang/dao-janny/internal/service/assignment"
)

// Register mounts the draw endpoints. mw runs before the POST handlers only
// (the idempotency middleware in production). roster may be nil, in which
// case requests must carry their own roster.
func Register(rg *gin.RouterGroup, svc *assignsvc.Service, roster portregistry.RosterSource, mw ...gin.HandlerFunc) {
	rg.POST("", append(mw, assign(svc, roster))...)
	rg.POST("/opt-in", append(mw, optIn(svc))...)
	rg.GET("/:taskId", getAssignment(svc))
}

type assignReq struct {
	Task    task.Task       `json:"task"`
	Roster  []member.Member `json:"roster"`
	Account string          `json:"account"`
	ChainID chain.ID        `json:"chain_id"`
	DAOID   string          `json:"dao_id"`
}

func assign(svc *assignsvc.Service, roster portregistry.RosterSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req assignReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Task.ID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "task.id is required"})
			return
		}
		ctx := c.Request.Context()

		members := req.Roster
		if len(members) == 0 && req.DAOID != "" && roster != nil {
			fetched, err := roster.Members(ctx, req.DAOID)
			if err != nil {
				slog.WarnContext(ctx, "assignment: roster fetch failed", "dao_id", req.DAOID, "error", err)
				c.JSON(http.StatusBadGateway, gin.H{"error": "roster unavailable: " + err.Error()})
				return
			}
			members = fetched
		}

		res, err := svc.Assign(ctx, domainassignment.Input{
			Task:    req.Task,
			Roster:  members,
			Account: req.Account,
			ChainID: req.ChainID,
		})
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error(), "result": res})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

type optInReq struct {
	Task    task.Task `json:"task"`
	Account string    `json:"account"`
	DAOID   string    `json:"dao_id"`
}

func optIn(svc *assignsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req optInReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Task.ID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "task.id is required"})
			return
		}

		res, err := svc.OptIn(c.Request.Context(), req.Task, req.Account, req.DAOID)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error(), "result": res})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func getAssignment(svc *assignsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		e, err := svc.Get(c.Request.Context(), c.Param("taskId"))
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, e)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, assignsvc.ErrNoEligibleMembers),
		errors.Is(err, assignsvc.ErrNoAccount),
		errors.Is(err, assignsvc.ErrNoDAO),
		errors.Is(err, chain.ErrUnsupportedChain):
		return http.StatusUnprocessableEntity
	case errors.Is(err, assignsvc.ErrNotMember):
		return http.StatusForbidden
	case errors.Is(err, domainassignment.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
