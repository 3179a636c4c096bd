package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/blues/launchpad/internal/config"
	"github.com/blues/launchpad/internal/database"
	"github.com/blues/launchpad/internal/handler"
	"github.com/blues/launchpad/internal/logger"
	"github.com/blues/launchpad/internal/logic"
	"github.com/blues/launchpad/internal/observability"
	"github.com/blues/launchpad/internal/router"
	"github.com/blues/launchpad/internal/scheduler"
	"github.com/blues/launchpad/internal/seed"
	"github.com/blues/launchpad/internal/store"
	"github.com/blues/launchpad/internal/txhash"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// backend 存储后端：读写接口与状态更新
type backend interface {
	store.Store
	store.StatusUpdater
}

func run(ctx context.Context, cfg *config.Config) error {
	data, err := seed.Load(cfg.Store.SeedFile)
	if err != nil {
		return fmt.Errorf("failed to load seed data: %w", err)
	}
	if cfg.Store.RebaseSeed {
		data = seed.Rebase(data, time.Now())
	}

	g, ctx := errgroup.WithContext(ctx)

	// 初始化存储
	var (
		s       backend
		loading func() bool
	)
	switch cfg.Database.Driver {
	case "postgres":
		db, err := database.Init(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		gs := store.NewGormStore(db, txhash.Random())
		if err := gs.Seed(ctx, data); err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}
		s = gs
	default:
		ms := store.NewMemoryStore(store.MemoryOptions{
			LoadDelay:       cfg.Store.LoadDelay,
			CreateDelay:     cfg.Store.CreateDelay,
			ContributeDelay: cfg.Store.ContributeDelay,
		}, store.Dataset{})
		s, loading = ms, ms.Loading

		// 首次加载在后台进行，期间列表接口返回 loading=true
		g.Go(func() error {
			if err := ms.Load(ctx, data); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return fmt.Errorf("failed to load projects: %w", err)
			}
			logger.Info("Loaded %d projects and %d investors", len(data.Projects), len(data.Investors))
			return nil
		})
	}
	logger.Info("Using %s store", cfg.Database.Driver)

	metrics := observability.NewMetrics("launchpad")

	projectLogic := logic.NewProjectLogic(s, metrics)
	contributeLogic := logic.NewContributeLogic(s, metrics, logic.ContributeOptions{
		MinAmount:     cfg.Contribution.Min,
		MaxAmount:     cfg.Contribution.Max,
		RequireActive: cfg.Contribution.RequireActive,
	})

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(router.Handlers{
		Project: handler.NewProjectHandler(projectLogic, handler.ShareOptions{
			BaseURL:  cfg.Share.BaseURL,
			Hashtags: cfg.Share.Hashtags,
		}, loading),
		Contribute: handler.NewContributeHandler(contributeLogic),
	}, metrics)

	// 启动定时任务
	statusJob, err := scheduler.NewProjectStatusJob(s, metrics, time.Duration(cfg.Task.Interval)*time.Second, cfg.Task.Workers)
	if err != nil {
		return err
	}
	manager, err := scheduler.NewManager()
	if err != nil {
		return err
	}
	if err := manager.RegisterProjectStatusJob(ctx, statusJob); err != nil {
		return err
	}
	g.Go(func() error {
		return manager.Run(ctx)
	})

	// 启动服务器
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Go(func() error {
		logger.Info("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
