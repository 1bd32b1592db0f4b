package audit

import (
	"net/http"

	"github.com/gin-gonic/gin"

	auditsvc "github.com/alanyang/dao-janny/internal/service/audit"
)

func Register(rg *gin.RouterGroup, svc *auditsvc.Service) {
	rg.GET("/:id", getRecord(svc))
}

func getRecord(svc *auditsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}
