package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"birdroyale/config"
	"birdroyale/network"
	"birdroyale/session"
)

func main() {
	if err := config.InitConfig(".env"); err != nil {
		log := config.NewLogger("info", false)
		log.Fatal().Err(err).Msg("env")
	}
	cfg, err := config.Load()
	if err != nil {
		log := config.NewLogger("info", false)
		log.Fatal().Err(err).Msg("config")
	}
	log := config.NewLogger(cfg.LogLevel, cfg.LogPretty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Addr).Msg("listen")
	}
	if err := run(ctx, cfg, ln, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

// run serves sessions on ln until ctx is cancelled, then stops every
// session and shuts the HTTP server down.
func run(ctx context.Context, cfg config.Config, ln net.Listener, log zerolog.Logger) error {
	sessions := session.NewManager(session.Options{
		Tuning:      cfg.Tuning,
		FrameHz:     cfg.FrameHz,
		BroadcastHz: cfg.BroadcastHz,
		Logger:      log,
	})
	srv := &http.Server{
		Handler:           network.NewServer(sessions, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", ln.Addr().String()).Int("frame_hz", cfg.FrameHz).Int("broadcast_hz", cfg.BroadcastHz).Msg("listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		sessions.StopAll()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
