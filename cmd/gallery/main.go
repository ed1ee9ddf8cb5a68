// Command gallery is a terminal front end for the event gallery API. It
// restores the saved session, revalidates it and runs one command.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"eventgallery/internal/authstate"
	"eventgallery/internal/broadcast"
	"eventgallery/internal/gateway"
	"eventgallery/internal/session"
	"eventgallery/internal/shared/config"
	"eventgallery/pkg/cache"
	"eventgallery/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

var errUsage = errors.New("usage")

// app is what every command runs against.
type app struct {
	gateway *gateway.Client
	auth    *authstate.Controller
	out     io.Writer
}

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}
	name, args := os.Args[1], os.Args[2:]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", name)
		usage(os.Stderr)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.NewWithHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)}))
	logger.SetDefault(log)

	a, cleanup, err := newApp(ctx, cfg, log)
	if err != nil {
		log.Error("Startup failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer cleanup()

	if err := cmd.run(ctx, a, args); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "usage: gallery %s %s\n", name, cmd.usage)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newApp builds the session store, notifier, gateway and auth controller
// from cfg, then waits for startup revalidation to settle.
func newApp(ctx context.Context, cfg *config.Config, log *logger.Logger) (*app, func(), error) {
	var (
		client   *redis.Client
		cacheSvc cache.Service
		closers  []func()
	)
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.Redis.Enabled {
		var err error
		client, err = cache.Connect(ctx, cache.Config{
			Address:  cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() { _ = client.Close() })
		cacheSvc = cache.NewService(client, log)
	}

	storage, err := session.NewStorage(cfg.Client, cacheSvc)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	store := session.NewStore(storage, log)

	var notifier broadcast.Notifier = broadcast.NewLocalNotifier()
	if client != nil {
		redisNotifier, err := broadcast.NewRedisNotifier(ctx, client, cfg.Client.LogoutChannel, log)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, func() { _ = redisNotifier.Close() })
		notifier = redisNotifier
	}

	gw := gateway.New(cfg.Client.BaseURL, store, notifier,
		gateway.WithTimeout(cfg.Client.Timeout),
		gateway.WithLogger(log),
	)
	auth := authstate.New(gw, store, notifier, log)
	closers = append(closers, auth.Close)

	select {
	case <-auth.Start(ctx):
	case <-ctx.Done():
		cleanup()
		return nil, nil, ctx.Err()
	}

	return &app{gateway: gw, auth: auth, out: os.Stdout}, cleanup, nil
}

// print writes v as indented JSON.
func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: gallery <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-13s %s\n", name, commands[name].usage)
	}
}

func logLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelWarn
	}
	return l
}
