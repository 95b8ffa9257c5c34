package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/hirea/config"
	"github.com/yoockh/hirea/internal/api/handlers"
	"github.com/yoockh/hirea/internal/api/routes"
	"github.com/yoockh/hirea/internal/cache"
	"github.com/yoockh/hirea/internal/logger"
	"github.com/yoockh/hirea/internal/repositories/sqldb"
	"github.com/yoockh/hirea/internal/services"
	"github.com/yoockh/hirea/internal/state"
	"github.com/yoockh/hirea/internal/utils"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	if strings.EqualFold(cfg.LogLevel, "debug") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.OpenDatabase(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("database init error")
	}
	if err := sqldb.Migrate(ctx, db); err != nil {
		log.WithError(err).Fatal("migration error")
	}
	version, _ := sqldb.CurrentVersion(ctx, db)
	log.WithFields(logrus.Fields{"driver": cfg.DBDriver, "schema_version": version}).Info("database ready")

	var c cache.Cache
	rdb, err := config.OpenRedis(ctx, cfg.RedisAddr)
	switch {
	case utils.IsCode(err, utils.CodeUnavailable):
		log.WithError(err).Warn("redis unavailable, caching disabled")
	case err != nil:
		log.WithError(err).Fatal("Failed to configure redis")
	case rdb != nil:
		defer rdb.Close()
		c = cache.NewRedisCache(rdb)
		log.Info("redis connected")
	}

	jobSvc := services.NewJobService(sqldb.NewJobRepo(db), sqldb.NewJobFieldRepo(db), c, cfg.CacheTTL, log)
	appSvc := services.NewApplicationService(sqldb.NewApplicationRepo(db), sqldb.NewAnswerRepo(db), c, cfg.CacheTTL, log)

	st := state.NewJobsState(jobSvc, appSvc, log)
	if err := st.LoadAll(ctx); err != nil {
		log.WithError(err).Warn("initial state load failed")
	}

	r := routes.NewRouter(log, routes.Options{
		CORSOrigins:     cfg.CORSOrigins,
		ApplyRatePerMin: cfg.ApplyRatePerMin,
	}, routes.Deps{
		Jobs:         handlers.NewJobHandler(jobSvc, st),
		Applications: handlers.NewApplicationHandler(appSvc, st),
		State:        handlers.NewStateHandler(st),
		WS:           handlers.NewWSHandler(st, log, originChecker(cfg.CORSOrigins)),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("server stopped")
}

// originChecker mirrors the CORS allow list for websocket upgrades.
func originChecker(origins []string) func(r *http.Request) bool {
	if len(origins) == 0 {
		return nil
	}
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed[origin]
	}
}
