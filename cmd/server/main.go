package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	echoapi "github.com/geofront-io/geofront/api/echo"
	"github.com/geofront-io/geofront/cache"
	rediscache "github.com/geofront-io/geofront/cache/redis"
	"github.com/geofront-io/geofront/config"
	applog "github.com/geofront-io/geofront/log"
	"github.com/geofront-io/geofront/mongodb"
	"github.com/geofront-io/geofront/security"
	"github.com/geofront-io/geofront/services"
	"github.com/geofront-io/geofront/tracing"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	applog.Setup(cfg.LogLevel, cfg.LogPretty)
	log.Info().
		Str("http_port", cfg.HTTPPort).
		Str("mongo_db_name", cfg.MongoDBName).
		Str("workdir", cfg.Workdir).
		Msg("starting geofront gateway")

	tp, err := tracing.InitTracerProvider(cfg.OtelServiceName)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracer provider")
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Error().Err(err).Msg("error shutting down tracer provider")
		}
	}()

	ctx := context.Background()
	client, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("error closing mongodb connection")
		}
	}()
	db := client.Database()

	tokenRepo := mongodb.NewTokenRepository(db)
	serviceRepo := mongodb.NewServiceRepository(db)
	jobRepo := mongodb.NewJobRepository(db, cfg.EnvironmentTag)

	var tokenCache cache.TokenCache
	if cfg.RedisURI != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURI)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid redis uri")
		}
		tokenCache = rediscache.NewTokenCache(redis.NewClient(redisOpts), "geofront")
		log.Info().Msg("using redis token cache")
	} else {
		tokenCache = cache.NewMemoryTokenCache()
	}

	tokenService := services.NewTokenService(tokenRepo, tokenCache).
		WithDefaultTTL(time.Duration(cfg.TokenTTLHours) * time.Hour)
	credFetcher := security.NewSLCSCredentialFetcher(time.Duration(cfg.CredentialTimeoutSec) * time.Second)
	gate := security.NewOWSSecurity(tokenService, serviceRepo, credFetcher)
	engine := echoapi.NewProxyProtocolHandler(serviceRepo)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	echoapi.NewAPI(tokenService, serviceRepo, jobRepo, gate, engine, cfg.Workdir).RegisterRoutes(e)

	go func() {
		if err := e.Start(":" + cfg.HTTPPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error shutting down http server")
	}
}
