package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/jstrand/papertrader/internal/auth"
	"github.com/jstrand/papertrader/internal/config"
	"github.com/jstrand/papertrader/internal/db"
	"github.com/jstrand/papertrader/internal/engine"
	"github.com/jstrand/papertrader/internal/handlers"
	"github.com/jstrand/papertrader/internal/holdings"
	"github.com/jstrand/papertrader/internal/ledger"
	"github.com/jstrand/papertrader/internal/quotes"
	"github.com/jstrand/papertrader/internal/users"
	"github.com/jstrand/papertrader/internal/valuation"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults or environment variables")
	}

	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Ledger backend: Postgres in normal operation, in-memory for demos.
	var store ledger.Store
	var userRepo users.Repository
	switch cfg.Storage {
	case "memory":
		mem := ledger.NewMemoryStore()
		store = mem
		userRepo = users.NewMemoryRepository(mem)
		logger.Info("using in-memory ledger")
	default:
		conn, err := db.Open(cfg.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: ", err)
		}
		defer conn.Close()

		if err := db.RunMigrations(context.Background(), conn); err != nil {
			log.Fatal("Failed to run migrations: ", err)
		}

		store = ledger.NewPostgresStore(conn)
		userRepo = users.NewPostgresRepository(conn)
		logger.Info("database connected", "host", cfg.DBHost, "name", cfg.DBName)
	}

	// The simulated source always exists; it drives the websocket stream
	// and stands in for the live source when no API key is configured.
	sim := quotes.NewSim()

	var source quotes.Source = sim
	if cfg.AlphaVantageKey != "" {
		source = quotes.NewAlphaVantage(cfg.AlphaVantageKey, cfg.QuoteTimeout)
		logger.Info("using Alpha Vantage quote source")
	}

	// Read paths may serve cached quotes; the engine keeps the direct
	// source so trades always commit at a fresh price.
	readSource := source
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to connect to Redis: ", err)
		}
		readSource = quotes.NewCached(source, rdb, cfg.QuoteCacheTTL)
		logger.Info("quote cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.QuoteCacheTTL)
	}

	agg := holdings.NewAggregator(store)
	eng := engine.New(store, agg, source, logger)
	val := valuation.New(store, agg, readSource)

	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenValidity)
	userService := users.NewService(userRepo, tokens, cfg.StartingCash)

	h := handlers.New(eng, val, store, userService, readSource, sim, logger)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.POST("/api/register", h.Register)
	router.POST("/api/login", h.Login)

	api := router.Group("/api")
	api.Use(auth.Middleware(tokens))
	{
		api.POST("/buy", h.Buy)
		api.POST("/sell", h.Sell)
		api.POST("/deposit", h.Deposit)
		api.GET("/portfolio", h.Portfolio)
		api.GET("/history", h.History)
		api.GET("/quote/:symbol", h.Quote)
	}

	router.GET("/ws/prices", h.PriceStream)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	logger.Info("server starting", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
