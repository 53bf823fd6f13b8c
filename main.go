package main

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/net/http2"

	"github.com/minglangedu/website/config"
	"github.com/minglangedu/website/internal/database"
	"github.com/minglangedu/website/internal/logger"
	"github.com/minglangedu/website/internal/middleware"
	"github.com/minglangedu/website/internal/router"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	if err := logger.Init(&logger.Config{
		Level:    cfg.Log.Level,
		Format:   cfg.Log.Format,
		Output:   cfg.Log.Output,
		FilePath: cfg.Log.FilePath,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}

	// 初始化默认管理员
	if err := database.SeedDefaultAdmin(db, cfg.Admin); err != nil {
		logger.Fatalf("Failed to seed default admin: %v", err)
	}

	// 初始化中间件和路由
	loggerMiddleware := middleware.NewLoggerMiddleware()
	r, err := router.NewRouter(loggerMiddleware, db, cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize router: %v", err)
	}

	srv := &http.Server{
		Handler:      r.GetEngine(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// 启动服务器
	go func() {
		var err error
		if cfg.Server.EnableHTTPS {
			srv.Addr = ":" + strconv.Itoa(cfg.Server.HTTPSPort)
			srv.TLSConfig = &tls.Config{
				NextProtos: []string{"h2", "http/1.1"},
			}
			if cfg.Server.EnableHTTP2 {
				if err := http2.ConfigureServer(srv, &http2.Server{}); err != nil {
					logger.Fatalf("Failed to configure HTTP/2: %v", err)
				}
			}
			logger.Infof("HTTPS server listening on port %d (HTTP/2: %v)", cfg.Server.HTTPSPort, cfg.Server.EnableHTTP2)
			err = srv.ListenAndServeTLS(cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile)
		} else {
			srv.Addr = ":" + strconv.Itoa(cfg.Server.Port)
			logger.Infof("HTTP server listening on port %d", cfg.Server.Port)
			err = srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// 优雅关闭服务器
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
