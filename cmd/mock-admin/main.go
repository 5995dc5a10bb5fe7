package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"farm_admin_v1/internal/config"
	"farm_admin_v1/internal/mockadmin"
	"farm_admin_v1/pkg/logger"
)

// 启动内存版管理端后端，供本地联调使用
func main() {
	configPath := flag.String("config", "", "配置文件路径")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		panic(err)
	}
	cfg := config.Get()
	logger.Init(logger.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		Filename:   cfg.Log.Filename,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})
	log := logger.Get()
	defer logger.Sync()

	server, err := mockadmin.New(log)
	if err != nil {
		log.Fatal("初始化模拟后端失败", zap.Error(err))
	}

	srv := &http.Server{
		Addr:    cfg.Mock.Listen,
		Handler: server.Engine(),
	}

	go func() {
		log.Info("模拟后端启动", zap.String("listen", cfg.Mock.Listen))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("模拟后端启动失败", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("正在关闭模拟后端...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("模拟后端强制关闭", zap.Error(err))
	}
	log.Info("模拟后端已退出")
}
