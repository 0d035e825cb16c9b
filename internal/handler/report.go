package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

const reportCacheKey = "report:summary"

// GetReport godoc
// @Summary      Full market report
// @Description  Returns the composed market intelligence report as rendered text. May serve a copy cached for up to the configured TTL; chat-delivered reports are always composed fresh.
// @Tags         report
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/report [get]
func (h *Handler) GetReport(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-report")
	defer span.End()

	if h.redis != nil {
		cached, err := h.redis.Get(ctx, reportCacheKey).Result()
		if err == nil && cached != "" {
			c.JSON(http.StatusOK, gin.H{"report": cached, "cached": true})
			return
		}
	}

	text := h.reports.MarketSummary(ctx)
	if h.redis != nil && h.cacheTTL > 0 {
		if err := h.redis.Set(ctx, reportCacheKey, text, h.cacheTTL).Err(); err != nil {
			log.Printf("report cache write error: %v", err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"report": text, "cached": false})
}

// GetBitcoin godoc
// @Summary      Bitcoin price summary
// @Tags         report
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/bitcoin [get]
func (h *Handler) GetBitcoin(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-bitcoin")
	defer span.End()

	c.JSON(http.StatusOK, gin.H{"report": h.reports.BitcoinSummary(ctx)})
}

// GetTrending godoc
// @Summary      Trending coins summary
// @Tags         report
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/trending [get]
func (h *Handler) GetTrending(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-trending")
	defer span.End()

	c.JSON(http.StatusOK, gin.H{"report": h.reports.TrendingSummary(ctx)})
}

// GetDefi godoc
// @Summary      Top DeFi protocols summary
// @Tags         report
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/defi [get]
func (h *Handler) GetDefi(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-defi")
	defer span.End()

	c.JSON(http.StatusOK, gin.H{"report": h.reports.DefiSummary(ctx)})
}
