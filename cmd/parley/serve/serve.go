// Package servecmder provides the serve command for running the parley API server.
package servecmder

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/parleyco/parley/api"
	"github.com/parleyco/parley/api/mcp"
	"github.com/parleyco/parley/pkg/config"
	"github.com/parleyco/parley/pkg/dotdir"
	"github.com/parleyco/parley/pkg/eventstream"
	"github.com/parleyco/parley/pkg/eventstream/kafka"
	"github.com/parleyco/parley/pkg/eventstream/nop"
	"github.com/parleyco/parley/pkg/logger"
	"github.com/parleyco/parley/pkg/transcript"
	"github.com/parleyco/parley/pkg/transcript/inmemory"
	"github.com/parleyco/parley/pkg/transcript/postgres"
	"github.com/parleyco/parley/pkg/transcript/sqlite"
	"github.com/parleyco/parley/pkg/transcript/worker"
)

const transcriptFile = "transcript.db"

type serveCommander struct {
	listen        string
	voice         string
	language      string
	streamDelay   uint
	storageDriver string
	sqlitePath    string
	postgresURL   string
	eventsEnabled bool
	eventsBrokers string
	eventsTopic   string
	noMCP         bool
	debug         bool

	configPath string
	logger     *zap.Logger
}

const serveLongDesc string = `Run the parley API server.

The server exposes the voice agent over HTTP: blocking and streamed
responses, voice and language catalogs, the recorded transcript, and an
MCP endpoint at /mcp for agent tooling.

Transcript turns are persisted through the configured storage driver and,
when events are enabled, published to Kafka.

Examples:
  parley serve
  parley serve --listen :9090
  parley serve --storage-driver sqlite --sqlite ./transcript.db
  parley serve --storage-driver postgres --postgres postgres://localhost/parley
  parley serve --events-brokers localhost:9092
`

const serveShortDesc string = "Run the parley API server"

func NewServeCmd() *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			cfger, err := config.NewConfiger(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			cfg, err := cfger.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			cmder.configPath = cfger.GetTarget()

			if !cmd.Flags().Changed(config.FlagAPIListen) {
				cmder.listen = cfg.API.Listen
			}
			if !cmd.Flags().Changed(config.FlagVoice) {
				cmder.voice = cfg.Agent.Voice
			}
			if !cmd.Flags().Changed(config.FlagLanguage) {
				cmder.language = cfg.Agent.Language
			}
			if !cmd.Flags().Changed(config.FlagStreamDelay) {
				cmder.streamDelay = cfg.Agent.StreamDelayMs
			}
			if !cmd.Flags().Changed(config.FlagStorageDriver) {
				cmder.storageDriver = cfg.Storage.Driver
			}
			if !cmd.Flags().Changed(config.FlagSQLite) {
				cmder.sqlitePath = cfg.Storage.SQLitePath
			}
			if !cmd.Flags().Changed(config.FlagPostgres) {
				cmder.postgresURL = cfg.Storage.PostgresURL
			}
			if !cmd.Flags().Changed(config.FlagEventsBrokers) {
				cmder.eventsBrokers = cfg.Events.Brokers
			}
			if !cmd.Flags().Changed(config.FlagEventsTopic) {
				cmder.eventsTopic = cfg.Events.Topic
			}
			if !cmd.Flags().Changed("events") {
				cmder.eventsEnabled = cfg.Events.Enabled || cmder.eventsBrokers != ""
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			return cmder.run(cmd.Context())
		},
	}

	fs := config.DefaultFlagSet()
	config.AddStringFlag(cmd, fs, config.FlagAPIListen, &cmder.listen)
	config.AddStringFlag(cmd, fs, config.FlagVoice, &cmder.voice)
	config.AddStringFlag(cmd, fs, config.FlagLanguage, &cmder.language)
	config.AddUintFlag(cmd, fs, config.FlagStreamDelay, &cmder.streamDelay)
	config.AddStringFlag(cmd, fs, config.FlagStorageDriver, &cmder.storageDriver)
	config.AddStringFlag(cmd, fs, config.FlagSQLite, &cmder.sqlitePath)
	config.AddStringFlag(cmd, fs, config.FlagPostgres, &cmder.postgresURL)
	config.AddStringFlag(cmd, fs, config.FlagEventsBrokers, &cmder.eventsBrokers)
	config.AddStringFlag(cmd, fs, config.FlagEventsTopic, &cmder.eventsTopic)
	cmd.Flags().BoolVar(&cmder.eventsEnabled, "events", false, "Publish turn events to Kafka")
	cmd.Flags().BoolVar(&cmder.noMCP, "no-mcp", false, "Disable the MCP endpoint")

	return cmd
}

func (c *serveCommander) run(ctx context.Context) error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	store, err := c.newStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	publisher, err := c.newPublisher()
	if err != nil {
		return err
	}
	defer publisher.Close()

	pool, err := worker.NewPool(&worker.Config{
		Store:     store,
		Publisher: publisher,
		Logger:    c.logger,
	})
	if err != nil {
		return fmt.Errorf("creating transcript pool: %w", err)
	}
	defer pool.Close()

	mcpServer, err := mcp.NewServer(mcp.Config{
		Noop:   c.noMCP,
		Logger: c.logger,
	})
	if err != nil {
		return fmt.Errorf("creating MCP server: %w", err)
	}

	apiConfig := api.Config{
		ListenAddr:  c.listen,
		Voice:       c.voice,
		Language:    c.language,
		StreamDelay: time.Duration(c.streamDelay) * time.Millisecond,
	}
	server := api.NewServer(apiConfig, store, pool, mcpServer.Handler(), c.logger)

	if c.configPath != "" {
		watcher, err := config.WatchConfig(c.configPath, func(cfg *config.Config) {
			server.SetDefaults(
				cfg.Agent.Voice,
				cfg.Agent.Language,
				time.Duration(cfg.Agent.StreamDelayMs)*time.Millisecond,
			)
			c.logger.Info("applied agent defaults from config",
				zap.String("voice", cfg.Agent.Voice),
				zap.String("language", cfg.Agent.Language),
				zap.Uint("stream_delay_ms", cfg.Agent.StreamDelayMs),
			)
		}, c.logger)
		if err != nil {
			c.logger.Warn("config watching disabled", zap.Error(err))
		} else {
			defer watcher.Close()
		}
	}

	errChan := make(chan error, 1)
	go func() {
		if err := server.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		return server.Shutdown()
	case <-ctx.Done():
		return server.Shutdown()
	}
}

func (c *serveCommander) newStore(ctx context.Context) (transcript.Store, error) {
	switch strings.ToLower(strings.TrimSpace(c.storageDriver)) {
	case "", "memory":
		c.logger.Info("using in-memory transcript store")
		return inmemory.NewStore(), nil

	case "sqlite":
		path, err := c.resolveSQLitePath()
		if err != nil {
			return nil, err
		}
		store, err := sqlite.NewStore(path)
		if err != nil {
			return nil, fmt.Errorf("creating SQLite transcript store: %w", err)
		}
		c.logger.Info("using SQLite transcript store", zap.String("path", path))
		return store, nil

	case "postgres":
		if c.postgresURL == "" {
			return nil, fmt.Errorf("storage driver postgres requires --%s", config.FlagPostgres)
		}
		store, err := postgres.NewStore(ctx, c.postgresURL)
		if err != nil {
			return nil, fmt.Errorf("creating PostgreSQL transcript store: %w", err)
		}
		c.logger.Info("using PostgreSQL transcript store")
		return store, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q (want memory, sqlite, or postgres)", c.storageDriver)
	}
}

func (c *serveCommander) resolveSQLitePath() (string, error) {
	if c.sqlitePath != "" {
		return c.sqlitePath, nil
	}

	target, err := dotdir.NewManager().Target("")
	if err != nil {
		return "", fmt.Errorf("resolving transcript path: %w", err)
	}

	return filepath.Join(target, transcriptFile), nil
}

func (c *serveCommander) newPublisher() (eventstream.Publisher, error) {
	if !c.eventsEnabled {
		return nop.NewPublisher(), nil
	}

	if c.eventsBrokers == "" {
		return nil, fmt.Errorf("turn events require --%s", config.FlagEventsBrokers)
	}

	publisher, err := kafka.NewPublisher(kafka.Config{
		Brokers: strings.Split(c.eventsBrokers, ","),
		Topic:   c.eventsTopic,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Kafka publisher: %w", err)
	}

	c.logger.Info("publishing turn events",
		zap.String("brokers", c.eventsBrokers),
		zap.String("topic", c.eventsTopic),
	)
	return publisher, nil
}
