package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zeus/zeus/bootstrap"
	"zeus/zeus/config"
	"zeus/zeus/controllers"
	"zeus/zeus/middlewares"
	"zeus/zeus/routes"
	"zeus/zeus/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logging.InitLogger(cfg.LogDir)
	defer logging.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("startup failed", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()

	chatCtrl := controllers.NewChatController(app.Router, app.Agent, app.Uploader)
	apiCtrls := routes.APIControllers{
		Upload:   controllers.NewUploadController(app.Uploader),
		Proxy:    controllers.NewProxyController(app.VLM, app.Translator()),
		Analysis: controllers.NewAnalysisController(app.Analyzer, app.DAO),
		Image:    controllers.NewImageController(app.Images),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewares.RequestLog)
	r.Use(middleware.Recoverer)

	r.Get("/health", controllers.NewHealthController(app.Health).HealthCheck)
	// websocket sessions outlive the request timeout
	r.Mount("/chat", routes.ChatRoutes(chatCtrl, cfg.RateLimitPerMinute))
	r.With(middleware.Timeout(120*time.Second)).Mount("/api", routes.APIRoutes(apiCtrls, cfg.RateLimitPerMinute))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}
	go func() {
		logging.AppLogger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
		}
	}()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}
