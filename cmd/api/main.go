package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pizzeria/internal/config"
	"pizzeria/internal/handler"
	"pizzeria/internal/infra/db"
	infraRepo "pizzeria/internal/infra/repository"
	"pizzeria/internal/logger"
	"pizzeria/internal/server"
	"pizzeria/internal/usecase"
	auth "pizzeria/internal/usecase/auth_usecase"
	"pizzeria/internal/validator"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	// .env is optional outside local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.GoEnv)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	gormDB, err := db.Connect(cfg, log)
	if err != nil {
		return err
	}
	if err := db.Migrate(gormDB); err != nil {
		return err
	}

	// repositories
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	lineItemRepo := infraRepo.NewLineItemGormRepository(gormDB)
	dishRepo := infraRepo.NewDishGormRepository(gormDB)
	customerRepo := infraRepo.NewCustomerGormRepository(gormDB)
	sessionRepo := infraRepo.NewSessionGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	idGen := &uuidGenerator{}
	clock := &realClock{}

	// usecases
	identityUC := usecase.NewIdentityUsecase(sessionRepo, idGen, clock, cfg.SessionTTL)
	cartUC := usecase.NewCartUsecase(txManager, orderRepo, lineItemRepo)
	catalogUC := usecase.NewCatalogUsecase(dishRepo, cartUC)
	checkoutUC := usecase.NewCheckoutUsecase(
		txManager,
		cartUC,
		customerRepo,
		validator.NewCheckoutValidator(loc, cfg.MinDeliveryLead),
		clock,
		loc,
		cfg.MinDeliveryLead,
	)
	profileUC := usecase.NewProfileUsecase(customerRepo, auditRepo, validator.NewProfileValidator())

	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()
	issuer := auth.NewJWTIssuer(cfg.JWTSecret, cfg.AccessTokenTTL)
	registerUC := auth.NewRegisterUserUsecase(customerRepo, hasher, clock)
	loginUC := auth.NewLoginUsecase(customerRepo, verifier, issuer, clock)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// no background jobs: stale sessions are dropped once per boot
	if n, err := identityUC.PurgeExpiredSessions(ctx); err != nil {
		log.Warn("purge expired sessions", zap.Error(err))
	} else if n > 0 {
		log.Info("purged expired sessions", zap.Int64("count", n))
	}

	// handlers
	e := server.New(cfg, log, identityUC, server.Handlers{
		Catalog:  handler.NewCatalogHandler(catalogUC, log),
		Cart:     handler.NewCartHandler(cartUC, catalogUC, log),
		Checkout: handler.NewCheckoutHandler(checkoutUC, cartUC, log),
		Auth:     handler.NewAuthHandler(registerUC, loginUC, log),
		Profile:  handler.NewProfileHandler(profileUC, log),
	})

	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.GoEnv))
	return server.Start(ctx, e, addr)
}
