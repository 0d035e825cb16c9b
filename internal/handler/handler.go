package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

// ReportComposer is the composer surface the HTTP API exposes.
type ReportComposer interface {
	MarketSummary(ctx context.Context) string
	BitcoinSummary(ctx context.Context) string
	TrendingSummary(ctx context.Context) string
	DefiSummary(ctx context.Context) string
}

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

type Handler struct {
	tracer   trace.Tracer
	reports  ReportComposer
	redis    RedisClient
	cacheTTL time.Duration
}

func New(tracer trace.Tracer, reports ReportComposer, redisClient RedisClient, cacheTTL time.Duration) *Handler {
	return &Handler{
		tracer:   tracer,
		reports:  reports,
		redis:    redisClient,
		cacheTTL: cacheTTL,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/api/report", h.GetReport)
	r.GET("/api/bitcoin", h.GetBitcoin)
	r.GET("/api/trending", h.GetTrending)
	r.GET("/api/defi", h.GetDefi)
}
