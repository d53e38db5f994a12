// wortwert is a Mastodon bot that replies to mentions with the Scrabble
// score of a word, localized to the requester's language.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/carlmjohnson/versioninfo"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	cli "github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/wortwert/wortwert/bot"
	"github.com/wortwert/wortwert/dedupe"
	"github.com/wortwert/wortwert/mastodon"
	"github.com/wortwert/wortwert/ratelimit"
	"github.com/wortwert/wortwert/scrabble"
	"github.com/wortwert/wortwert/util"
)

func main() {
	if err := run(os.Args); err != nil {
		slog.Error("exiting", "err", err)
		os.Exit(-1)
	}
}

func run(args []string) error {

	app := cli.App{
		Name:    "wortwert",
		Usage:   "Mastodon Scrabble word-score bot",
		Version: versioninfo.Short(),
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "instance-url",
			Usage:   "base URL of the Mastodon instance",
			Value:   "https://mastodon.social",
			EnvVars: []string{"MASTODON_INSTANCE_URL"},
		},
		&cli.StringFlag{
			Name:     "access-token",
			Usage:    "OAuth access token for the bot account",
			Required: true,
			EnvVars:  []string{"MASTODON_ACCESS_TOKEN"},
		},
		&cli.StringFlag{
			Name:    "monitored-account",
			Usage:   "acct (user@domain) whose own single-word posts also get scored",
			EnvVars: []string{"MONITORED_ACCOUNT"},
		},
		&cli.StringFlag{
			Name:    "state-file",
			Usage:   "path of the JSON watermark file",
			Value:   "wortwert_state.json",
			EnvVars: []string{"STATE_FILE"},
		},
		&cli.StringFlag{
			Name:    "default-locale",
			Usage:   "locale used when language detection fails",
			Value:   scrabble.DefaultLocale,
			EnvVars: []string{"DEFAULT_LOCALE"},
		},
		&cli.DurationFlag{
			Name:    "reconnect-base-delay",
			Usage:   "first reconnect delay after a generic stream failure",
			Value:   30 * time.Second,
			EnvVars: []string{"RECONNECT_BASE_DELAY"},
		},
		&cli.BoolFlag{
			Name:    "rate-limit-enabled",
			Usage:   "enforce the per-requester rate limit",
			Value:   true,
			EnvVars: []string{"RATE_LIMIT_ENABLED"},
		},
		&cli.IntFlag{
			Name:    "rate-limit-max",
			Usage:   "max scored requests per requester per window",
			Value:   3,
			EnvVars: []string{"RATE_LIMIT_MAX"},
		},
		&cli.DurationFlag{
			Name:    "rate-limit-window",
			Usage:   "per-requester rate limit window",
			Value:   60 * time.Second,
			EnvVars: []string{"RATE_LIMIT_WINDOW"},
		},
		&cli.Int64Flag{
			Name:    "max-posts-hour",
			Usage:   "global cap on outbound posts per hour",
			Value:   30,
			EnvVars: []string{"MAX_POSTS_HOUR"},
		},
		&cli.Int64Flag{
			Name:    "max-posts-day",
			Usage:   "global cap on outbound posts per day",
			Value:   300,
			EnvVars: []string{"MAX_POSTS_DAY"},
		},
		&cli.StringFlag{
			Name:    "metrics-listen",
			Usage:   "IP or address, and port, to listen on for metrics APIs",
			Value:   ":2471",
			EnvVars: []string{"METRICS_LISTEN"},
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "log level (debug, info, warn, error)",
			Value:   "info",
			EnvVars: []string{"LOG_LEVEL"},
		},
	}

	app.Action = runBot
	return app.Run(args)
}

func runBot(cctx *cli.Context) error {
	logger, err := setupLogger(cctx.String("log-level"))
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := &mastodon.Client{
		Client: util.RobustHTTPClient(logger),
		// Posting goes through a plain client so the reply sender's retry
		// policy is the only layer that can resend a status.
		PostClient:  &http.Client{Timeout: 30 * time.Second},
		Host:        strings.TrimRight(cctx.String("instance-url"), "/"),
		AccessToken: cctx.String("access-token"),
	}

	self, err := client.VerifyCredentials(ctx)
	if err != nil {
		return fmt.Errorf("verifying credentials: %w", err)
	}
	logger.Info("authenticated", "acct", self.Acct, "id", self.ID)

	var monitoredID string
	if acct := cctx.String("monitored-account"); acct != "" {
		monitored, err := client.LookupAccount(ctx, acct)
		if err != nil {
			return fmt.Errorf("looking up monitored account %q: %w", acct, err)
		}
		monitoredID = monitored.ID
		logger.Info("monitoring account", "acct", acct, "id", monitoredID)
	}

	store, err := dedupe.NewStore(cctx.String("state-file"), dedupe.DefaultCacheCapacity, logger)
	if err != nil {
		return fmt.Errorf("opening state file: %w", err)
	}

	limiter := ratelimit.New(
		cctx.Int("rate-limit-max"),
		cctx.Duration("rate-limit-window"),
		cctx.Bool("rate-limit-enabled"),
	)

	b := bot.New(bot.Config{
		Client:        client,
		Logger:        logger,
		Engine:        scrabble.NewEngine(cctx.String("default-locale")),
		Limiter:       limiter,
		Store:         store,
		SelfID:        self.ID,
		MonitoredID:   monitoredID,
		ReconnectBase: cctx.Duration("reconnect-base-delay"),
		MaxPostsHour:  cctx.Int64("max-posts-hour"),
		MaxPostsDay:   cctx.Int64("max-posts-day"),
	})

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		return b.Run(ctx)
	})

	eg.Go(func() error {
		t := time.NewTicker(time.Hour)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				limiter.Cleanup()
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	eg.Go(func() error {
		srv := &http.Server{
			Addr:    cctx.String("metrics-listen"),
			Handler: promhttp.Handler(),
		}
		go func() {
			<-ctx.Done()
			shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutCtx)
		}()
		logger.Info("metrics listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("shutdown complete")
	return nil
}

func setupLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level: %q", level)
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})), nil
}
