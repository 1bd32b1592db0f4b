package role

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/alanyang/dao-janny/internal/domain/chain"
	rolesvc "github.com/alanyang/dao-janny/internal/service/role"
)

func Register(rg *gin.RouterGroup, svc *rolesvc.Service) {
	rg.GET("/:chainId/admin", adminRole(svc))
	rg.GET("/:chainId/:address", roles(svc))
}

func adminRole(svc *rolesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := chain.ParseID(c.Param("chainId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		roleID, err := svc.AdminRole(c.Request.Context(), id)
		if err != nil {
			status := http.StatusBadGateway
			if errors.Is(err, chain.ErrUnsupportedChain) {
				status = http.StatusUnprocessableEntity
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"chain_id": id, "admin_role": roleID.Hex()})
	}
}

// roles answers for every requested role. Unknown chains and bad addresses
// come back as all-false, matching the service's fail-closed checks.
func roles(svc *rolesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := chain.ParseID(c.Param("chainId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		address := c.Param("address")

		var names []string
		for _, n := range strings.Split(c.Query("roles"), ",") {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}

		ctx := c.Request.Context()
		c.JSON(http.StatusOK, gin.H{
			"chain_id": id,
			"address":  address,
			"valid":    common.IsHexAddress(address),
			"admin":    svc.IsAdmin(ctx, address, id),
			"roles":    svc.Roles(ctx, address, id, names...),
		})
	}
}
