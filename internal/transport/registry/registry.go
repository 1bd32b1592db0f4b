package registry

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alanyang/dao-janny/internal/domain/member"
	"github.com/alanyang/dao-janny/internal/domain/task"
	portregistry "github.com/alanyang/dao-janny/internal/port/registry"
	"github.com/alanyang/dao-janny/internal/service/eligibility"
)

func Register(rg *gin.RouterGroup, roster portregistry.RosterSource, proposals portregistry.ProposalSource) {
	rg.GET("/:daoId/members", listMembers(roster))
	rg.GET("/:daoId/proposals", listProposals(proposals))
}

// listMembers returns the roster, narrowed to the eligible pool when a
// category query parameter is given.
func listMembers(src portregistry.RosterSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		roster, err := src.Members(c.Request.Context(), c.Param("daoId"))
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		if cat := c.Query("category"); cat != "" {
			roster = eligibility.Filter(roster, task.Category(cat))
		}
		if roster == nil {
			roster = []member.Member{}
		}
		c.JSON(http.StatusOK, roster)
	}
}

func listProposals(src portregistry.ProposalSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		tasks, err := src.Proposals(c.Request.Context(), c.Param("daoId"))
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		if tasks == nil {
			tasks = []task.Task{}
		}
		c.JSON(http.StatusOK, tasks)
	}
}
