package fee

import (
	"math/big"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alanyang/dao-janny/internal/domain/chain"
	domainfee "github.com/alanyang/dao-janny/internal/domain/fee"
	feesvc "github.com/alanyang/dao-janny/internal/service/fee"
)

func Register(rg *gin.RouterGroup, svc *feesvc.Service) {
	rg.GET("/:chainId", getQuote(svc))
	rg.POST("/:chainId/quote", quoteAssignment(svc))
}

// quoteResp renders wei amounts as decimal strings; they overflow JS numbers.
type quoteResp struct {
	ChainID       chain.ID  `json:"chain_id"`
	RandomnessFee string    `json:"randomness_fee_wei"`
	GasUnits      uint64    `json:"gas_units"`
	GasPrice      string    `json:"gas_price_wei"`
	GasFee        string    `json:"gas_fee_wei"`
	Total         string    `json:"total_wei"`
	TotalETH      string    `json:"total_eth"`
	QuotedAt      time.Time `json:"quoted_at"`
	Fallback      bool      `json:"fallback"`
}

func toResp(q domainfee.Quote) quoteResp {
	return quoteResp{
		ChainID:       q.ChainID,
		RandomnessFee: q.RandomnessFee.String(),
		GasUnits:      q.GasUnits,
		GasPrice:      q.GasPrice.String(),
		GasFee:        q.GasFee.String(),
		Total:         q.Total.String(),
		TotalETH:      formatEther(q.Total),
		QuotedAt:      q.QuotedAt,
		Fallback:      q.Fallback,
	}
}

// formatEther renders wei as ETH with 18 decimals.
func formatEther(wei *big.Int) string {
	f := new(big.Float).SetPrec(256).SetInt(wei)
	f.Quo(f, big.NewFloat(1e18))
	return f.Text('f', 18)
}

// parseChain accepts any chain id. Quotes for chains without a deployment
// come back as the fallback quote.
func parseChain(c *gin.Context) (chain.ID, bool) {
	id, err := chain.ParseID(c.Param("chainId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return 0, false
	}
	return id, true
}

func getQuote(svc *feesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseChain(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, toResp(svc.Quote(c.Request.Context(), id)))
	}
}

type quoteReq struct {
	TaskID  string   `json:"task_id" binding:"required"`
	Members []string `json:"members" binding:"required,min=1"`
}

func quoteAssignment(svc *feesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseChain(c)
		if !ok {
			return
		}
		var req quoteReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, toResp(svc.QuoteAssignment(c.Request.Context(), id, req.TaskID, req.Members)))
	}
}
