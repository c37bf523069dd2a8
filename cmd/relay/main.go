package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/laabobo/live-relay/internal/auth"
	"github.com/laabobo/live-relay/internal/config"
	"github.com/laabobo/live-relay/internal/events"
	"github.com/laabobo/live-relay/internal/handler"
	"github.com/laabobo/live-relay/internal/hub"
	"github.com/laabobo/live-relay/internal/room"
	"github.com/laabobo/live-relay/internal/service"
	pkglog "github.com/laabobo/live-relay/pkg/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	pkglog.Init(pkglog.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Level == "debug",
		ServiceName: "live-relay",
	})
	logger := pkglog.L()

	// Interaction event feed; optional, noop when redis is off.
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Redis.Enabled {
		redisPub, err := events.NewRedisPublisher(cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		publisher = redisPub
		logger.Info().Str("address", cfg.Redis.Address).Msg("redis event feed connected")
	}
	defer publisher.Close()

	verifier := auth.NewVerifier(cfg.Auth)
	if verifier.Enabled() {
		logger.Info().Msg("token verification enabled")
	}

	rooms := room.NewTable(cfg.Room.CommentBufferSize)

	wsHub := hub.NewHub(cfg.WebSocket)
	go wsHub.Run()

	relaySvc := service.NewRelayService(rooms, wsHub, verifier, publisher, cfg.Room)

	wsHandler := handler.NewWSHandler(wsHub, relaySvc, cfg.WebSocket)
	httpHandler := handler.NewHTTPHandler(rooms)

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(pkglog.GinMiddleware(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ws", gin.WrapF(wsHandler.HandleWebSocket))
	httpHandler.RegisterRoutes(r)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", server.Addr).Msg("live relay listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down live relay")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("live relay stopped with error")
		return
	}
	logger.Info().Msg("live relay stopped")
}
