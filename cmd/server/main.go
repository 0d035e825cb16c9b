package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"alphascope/internal/bot"
	"alphascope/internal/cache"
	"alphascope/internal/config"
	"alphascope/internal/handler"
	"alphascope/internal/provider"
	"alphascope/internal/report"
	"alphascope/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "alphascope/docs"
)

var (
	loadEnvFunc         = godotenv.Load
	loadConfigFunc      = config.Load
	initRedisFunc       = cache.InitRedis
	initTracerFunc      = tracing.InitTracer
	fatalfFunc          = log.Fatalf
	newMarketReaderFunc = func(tracer trace.Tracer, client *http.Client) report.MarketReader {
		return provider.NewCoinGeckoProvider(tracer, client)
	}
	newDefiReaderFunc = func(tracer trace.Tracer, client *http.Client) report.DefiReader {
		return provider.NewDefiLlamaProvider(tracer, client)
	}
	newSentimentReaderFunc = func(tracer trace.Tracer, client *http.Client) report.SentimentReader {
		return provider.NewFearGreedProvider(tracer, client)
	}
	startTelegramBotFunc   = bot.StartTelegramBot
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           AlphaScope API
// @version         1.0
// @description     Crypto market intelligence report API.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()
	if cfg.TelegramBotToken == "" {
		fatalfFunc("TELEGRAM_BOT_TOKEN is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional report cache for the HTTP API
	initRedisFunc(ctx, cfg.RedisURL)

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// One shared transport for every provider call
	httpClient := &http.Client{Timeout: provider.RequestTimeout}

	market := newMarketReaderFunc(tracer, httpClient)
	defi := newDefiReaderFunc(tracer, httpClient)
	sentiment := newSentimentReaderFunc(tracer, httpClient)

	reports := report.NewService(tracer, market, defi, sentiment, cfg.MoversPerPage)

	// Start Telegram bot
	startTelegramBotFunc(cfg.TelegramBotToken, reports)

	// Create handlers and routes
	var reportCache handler.RedisClient
	if cache.Client != nil {
		reportCache = cache.Client
	}
	h := handler.New(tracer, reports, reportCache, time.Duration(cfg.ReportCacheSecs)*time.Second)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("alphascope"))

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
