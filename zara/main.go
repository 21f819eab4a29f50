package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zara/zara/bootstrap"
	"zara/zara/config"
	"zara/zara/controllers"
	"zara/zara/routes"
	"zara/zara/utils/logging"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}
	if err := logging.InitLogger(cfg.LogDir); err != nil {
		fmt.Fprintln(os.Stderr, "logger error:", err)
		os.Exit(1)
	}
	defer logging.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("startup error", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()

	handler := routes.NewRouter(routes.Deps{
		Tokens: app.Tokens,
		Auth:   controllers.NewAuthController(app.Users, app.Tokens, app.Sink, cfg.MirrorTimeout),
		User:   controllers.NewUserController(app.Users),
		Chats:  controllers.NewChatsController(app.Chats),
		Chat:   app.ChatController(),
		Health: controllers.NewHealthController(cfg.ProviderConfigured()),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logging.AppLogger.Info("zara backend listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
			os.Exit(1)
		}
	}()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
		return
	}
	logging.AppLogger.Info("server shutdown complete")
}
