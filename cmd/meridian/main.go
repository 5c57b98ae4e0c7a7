package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/meridian-erp/meridian-erp/internal/app"
	"github.com/meridian-erp/meridian-erp/internal/audit"
	"github.com/meridian-erp/meridian-erp/internal/authz"
	"github.com/meridian-erp/meridian-erp/internal/grants"
	"github.com/meridian-erp/meridian-erp/internal/permissions"
	"github.com/meridian-erp/meridian-erp/internal/platform/cache"
	"github.com/meridian-erp/meridian-erp/internal/platform/db"
	"github.com/meridian-erp/meridian-erp/internal/roles"
	"github.com/meridian-erp/meridian-erp/internal/session"
	"github.com/meridian-erp/meridian-erp/internal/users"
	"github.com/meridian-erp/meridian-erp/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	slog.SetDefault(logger)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	// Redis only accelerates grant lookups; a missing instance degrades to
	// direct repository reads instead of blocking startup.
	var grantCache *grants.Cache
	if rdb, err := cache.New(ctx, cfg.RedisAddr); err != nil {
		logger.Warn("redis unavailable, grant cache disabled", slog.Any("error", err))
	} else {
		grantCache = grants.NewCache(rdb, cfg.GrantCacheTTL)
		defer rdb.Close()
	}

	permissionService := permissions.NewService(permissions.NewRepository(pool), logger)
	permissionService.Seed(ctx)

	auditService := audit.NewService(audit.NewRepository(pool), logger)
	grantService := grants.NewService(grants.NewRepository(pool), grantCache, logger)
	roleService := roles.NewService(permissionService, grantService, logger)
	userService := users.NewService(users.NewRepository(pool), roleService, logger)

	sessionStore := session.NewStore(cfg.SnapshotPath())
	sessionManager := session.NewManager(session.Config{
		Users:   userService,
		Store:   sessionStore,
		Audit:   auditService,
		Timeout: cfg.SessionTimeout,
		Logger:  logger,
	})
	sessionManager.RestoreFromDisk(ctx)

	authzService := authz.NewService(sessionManager, permissionService, grantService, logger)

	if grantCache != nil {
		warmClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		if _, err := warmClient.EnqueueGrantWarm(ctx, jobs.GrantWarmPayload{}); err != nil {
			logger.Warn("enqueue grant warm", slog.Any("error", err))
		}
		if err := warmClient.Close(); err != nil {
			logger.Warn("close job client", slog.Any("error", err))
		}
	}

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		SessionManager:     sessionManager,
		SessionHandler:     session.NewHandler(logger, sessionManager),
		UsersHandler:       users.NewHandler(logger, userService),
		GrantsHandler:      grants.NewHandler(logger, grantService, auditService),
		PermissionsHandler: permissions.NewHandler(logger, permissionService),
		RolesHandler:       roles.NewHandler(),
		AuthzHandler:       authz.NewHandler(authzService),
		AuditHandler:       audit.NewHandler(logger, auditService),
		AuthzMiddleware:    authz.Middleware{Service: authzService, Logger: logger},
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped cleanly")
}
