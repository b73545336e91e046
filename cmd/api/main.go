package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/booki-saas/booki-api/internal/config"
	dbpkg "github.com/booki-saas/booki-api/internal/db"
	"github.com/booki-saas/booki-api/internal/logger"
	"github.com/booki-saas/booki-api/internal/realtime"
	"github.com/booki-saas/booki-api/internal/routes"
)

func main() {

	cfg := config.Load()

	zlog, err := logger.New(cfg.LogPath, cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer zlog.Sync()

	db := dbpkg.NewDB(cfg, zlog)
	rdb := realtime.NewClient(cfg)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, zlog, rdb)

	zlog.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}
