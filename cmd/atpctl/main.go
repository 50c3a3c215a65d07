package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mmattbtw/ATProtoKit/cache"
	"github.com/mmattbtw/ATProtoKit/client"
	"github.com/mmattbtw/ATProtoKit/firehose"
	"github.com/mmattbtw/ATProtoKit/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	flag.StringVar(&configPath, "config", "atpctl.yaml", "path to config file")
	flag.Parse()

	if flag.NArg() < 1 {
		return fmt.Errorf("usage: atpctl [-config path] <profile|timeline|notifications|tail> [args]")
	}

	conf, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	store, err := buildStore(conf.Cache)
	if err != nil {
		return err
	}

	c := client.New(conf.Service.Host,
		client.WithCache(store),
		client.WithLogger(logger),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if conf.Auth.Identifier != "" {
		session, err := c.CreateSession(ctx, conf.Auth.Identifier, conf.Auth.AppPassword)
		if err != nil {
			return fmt.Errorf("create session: %w", err)
		}
		c.SetSession(session)
	}

	switch flag.Arg(0) {
	case "profile":
		if flag.NArg() < 2 {
			return fmt.Errorf("usage: atpctl profile <actor>")
		}
		profile, err := c.GetProfile(ctx, flag.Arg(1))
		if err != nil {
			return err
		}
		return printJSON(profile)

	case "timeline":
		page, err := c.GetTimeline(ctx, client.TimelineRequest{Limit: 25})
		if err != nil {
			return err
		}
		return printJSON(page)

	case "notifications":
		page, err := c.ListNotifications(ctx, 25, "")
		if err != nil {
			return err
		}
		return printJSON(page)

	case "tail":
		collections := flag.Args()[1:]
		sub := firehose.NewSubscriber(conf.Service.FirehoseURL, collections, func(ctx context.Context, ev firehose.Event) error {
			return printJSON(ev)
		}, logger)
		return sub.Run(ctx)
	}

	return fmt.Errorf("unknown command %q", flag.Arg(0))
}

func buildStore(conf config.Cache) (cache.Store, error) {
	switch conf.Backend {
	case "", "memory":
		return cache.NewMemory(10*time.Minute, 15*time.Minute), nil
	case "redis":
		return cache.NewRedis(conf.RedisAddr, "", conf.RedisDB), nil
	case "memcached":
		return cache.NewMemcached(conf.MemcachedAddr), nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", conf.Backend)
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}
