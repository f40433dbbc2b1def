package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/careerstack/identity-federation/internal/api/handler"
	"github.com/careerstack/identity-federation/internal/api/middleware"
	"github.com/careerstack/identity-federation/internal/core/domain"
	"github.com/careerstack/identity-federation/internal/core/ports"
	"github.com/careerstack/identity-federation/internal/core/service"
	"github.com/careerstack/identity-federation/internal/infrastructure/config"
	mongostore "github.com/careerstack/identity-federation/internal/infrastructure/db/mongo"
	redisstore "github.com/careerstack/identity-federation/internal/infrastructure/db/redis"
)

// Databases groups the per-store connections the router wires together:
// the master identity database and one database per linked platform.
type Databases struct {
	Master     *mongo.Database
	Freelancer *mongo.Database
	Career     *mongo.Database
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, dbs Databases, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("federation"))

	// --- Dependencies ---
	masterStore := mongostore.NewMasterStore(dbs.Master)
	platformStores := map[domain.Platform]ports.PlatformStore{
		domain.PlatformFreelancer:    mongostore.NewPlatformProfileStore(dbs.Freelancer, "freelancer_profiles"),
		domain.PlatformCareerCopilot: mongostore.NewPlatformProfileStore(dbs.Career, "learning_profiles"),
	}
	revocations := redisstore.NewRevocationList(rdb)

	codec := service.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL)
	verifier := service.NewCredentialVerifier(masterStore)
	resolver := service.NewLinkResolver(masterStore)
	sessions := service.NewSessionService(verifier, resolver, codec, masterStore, log)
	exchanges := service.NewExchangeService(codec, revocations, log)
	profiles := service.NewProfileService(masterStore, resolver, platformStores, cfg.AggregateReadTimeout, log)

	authHandler := handler.NewAuthHandler(sessions)
	exchangeHandler := handler.NewExchangeHandler(exchanges)
	profileHandler := handler.NewProfileHandler(profiles)
	authMiddleware := middleware.Auth(codec, revocations)

	// --- Federation routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/token/exchange", exchangeHandler.Exchange)
	e.POST("/token/revoke", exchangeHandler.Revoke, authMiddleware)
	e.GET("/profile", profileHandler.Profile, authMiddleware)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(map[string]*mongo.Database{
		"master_db":     dbs.Master,
		"freelancer_db": dbs.Freelancer,
		"career_db":     dbs.Career,
	}, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
