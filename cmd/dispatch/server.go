package main

import (
	"github.com/rs/zerolog"

	"github.com/driftline/dispatch/internal/notify"
	"github.com/driftline/dispatch/pkg/api"
	"github.com/driftline/dispatch/pkg/api/http/server"
	"github.com/driftline/dispatch/pkg/config"
	"github.com/driftline/dispatch/pkg/database"
	"github.com/driftline/dispatch/pkg/structs"
)

const docServer = `Run the dispatch server`

// optsServer are CLI overrides; anything unset falls back to dispatch.yaml /
// DISPATCH_* env vars, then to built-in defaults.
type optsServer struct {
	Addr        string `long:"addr" description:"Address to bind to"`
	DatabaseURL string `long:"database-url" description:"Database connection string"`
	RedisURL    string `long:"redis-url" description:"Redis connection string, blank for in-process broadcast only"`
	AdminToken  string `long:"admin-token" description:"Bearer token for the admin endpoints"`
	WorkDir     string `long:"work-dir" description:"Directory holding task input / output files"`
	StaticDir   string `long:"static-dir" description:"Serve static files from this directory"`
	Debug       bool   `long:"debug" description:"Enable debug logging"`
}

func (c *optsServer) Execute(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.Addr = c.Addr
	}
	if c.DatabaseURL != "" {
		cfg.DatabaseURL = c.DatabaseURL
	}
	if c.RedisURL != "" {
		cfg.RedisURL = c.RedisURL
	}
	if c.AdminToken != "" {
		cfg.AdminToken = c.AdminToken
	}
	if c.WorkDir != "" {
		cfg.WorkDir = c.WorkDir
	}
	if c.StaticDir != "" {
		cfg.StaticDir = c.StaticDir
	}
	cfg.Debug = cfg.Debug || c.Debug

	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	db, err := database.NewPostgres(&database.Options{URL: cfg.DatabaseURL})
	if err != nil {
		return err
	}

	// with redis, availability events reach workers attached to any server
	// instance; without it, only workers attached to this one
	var bus notify.Broadcast
	if cfg.RedisURL != "" {
		bus, err = notify.NewRedisBroadcast(cfg.RedisURL)
		if err != nil {
			return err
		}
	} else {
		bus = notify.NewMemoryBroadcast()
	}

	nt, err := notify.NewNotifier(bus, cfg.DebounceWindow)
	if err != nil {
		return err
	}

	opts := structs.OptionsServerDefault()
	opts.HeartbeatTimeout = cfg.HeartbeatTimeout
	opts.ReapFrequency = cfg.ReapFrequency
	opts.DebounceWindow = cfg.DebounceWindow
	opts.DefaultMaxAttempts = cfg.DefaultMaxAttempts
	opts.Retention = cfg.Retention
	opts.RetentionSchedule = cfg.RetentionSchedule

	svc, err := api.NewAPI(db, nt, opts)
	if err != nil {
		return err
	}
	defer svc.Close()

	s := server.NewServer(cfg.Addr, cfg.StaticDir, cfg.Debug).
		WithAdminToken(cfg.AdminToken).
		WithWorkDir(cfg.WorkDir).
		WithTLS(cfg.TLSCert, cfg.TLSKey)
	return s.ServeForever(svc, nt)
}
