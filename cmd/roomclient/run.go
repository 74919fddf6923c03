package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	router "github.com/dkeye/roomclient/internal/adapters/http"
	"github.com/dkeye/roomclient/internal/adapters/nav"
	"github.com/dkeye/roomclient/internal/adapters/rtc"
	sig "github.com/dkeye/roomclient/internal/adapters/signal"
	"github.com/dkeye/roomclient/internal/app"
	"github.com/dkeye/roomclient/internal/app/session"
	"github.com/dkeye/roomclient/internal/config"
	"github.com/dkeye/roomclient/internal/core"
	"github.com/dkeye/roomclient/internal/domain"
	"github.com/dkeye/roomclient/internal/media"
	"github.com/dkeye/roomclient/internal/token"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func newController(cfg *config.Config, confirmer core.Confirmer) *session.Controller {
	return session.New(session.Options{
		SignalURL: cfg.SignalURL,
		BaseURL:   cfg.BaseURL(),
	}, session.Deps{
		Tokens: token.NewFetcher(cfg.TokenEndpoint, cfg.TokenTimeout),
		Clients: sig.Factory(sig.Options{
			ReadLimit:      cfg.Signal.ReadLimit,
			PingPeriod:     cfg.Signal.PingPeriod,
			WriteTimeout:   cfg.Signal.WriteTimeout,
			RequestTimeout: cfg.Signal.RequestTimeout,
		}),
		Publishers: rtc.Factory(webrtcConfig(cfg.ICEServers), rtc.NewSyntheticSource),
		Navigator:  nav.NewFileNavigator(cfg.StateFile),
		Confirmer:  confirmer,
		Policy:     app.NewPolicy(cfg.Reconnect.MaxAttempts, cfg.Reconnect.BaseDelay, cfg.Reconnect.MaxDelay),
		Limiter:    app.NewRateLimiter(cfg.Chat.RateLimit, cfg.Chat.RateInterval),
		Media:      media.NewStore(cfg.ExternalMedia()),
	})
}

func webrtcConfig(servers []string) webrtc.Configuration {
	if len(servers) == 0 {
		return rtc.DefaultWebRTCConfig()
	}
	return webrtc.Configuration{ICEServers: []webrtc.ICEServer{{URLs: servers}}}
}

// runSession joins, then serves the REPL and the optional control API until
// quit or a signal.
func runSession(parent context.Context, cfg *config.Config, info domain.LoginInfo, autoConfirm bool) error {
	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	lines := readLines(os.Stdin)
	var confirmer core.Confirmer = lineConfirmer{lines: lines, out: os.Stdout}
	if autoConfirm {
		confirmer = yesConfirmer{}
	}

	ctrl := newController(cfg, confirmer)
	defer ctrl.Close()

	g, gctx := errgroup.WithContext(ctx)

	if cfg.ControlAddr != "" {
		srv := &http.Server{
			Addr:    cfg.ControlAddr,
			Handler: router.SetupRouter(gctx, cfg, ctrl),
		}
		g.Go(func() error {
			log.Info().Str("addr", cfg.ControlAddr).Msg("control API started")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("control API forced to shutdown")
			}
			return nil
		})
	}

	g.Go(func() error {
		printUpdates(gctx, ctrl, os.Stdout)
		return nil
	})

	g.Go(func() error {
		if err := ctrl.Join(gctx, info); err != nil {
			return err
		}
		r := &repl{sess: ctrl, lines: lines, out: os.Stdout}
		return r.run(gctx)
	})

	err := g.Wait()
	if errors.Is(err, errQuit) {
		err = nil
	}
	log.Info().Msg("session ended")
	return err
}
