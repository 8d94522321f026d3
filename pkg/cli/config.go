package cli

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/horizon/pkg/adapter"
	"github.com/m-mizutani/horizon/pkg/model"
	"github.com/m-mizutani/horizon/pkg/repository"
	"github.com/m-mizutani/horizon/pkg/usecase/chat"
	"github.com/m-mizutani/horizon/pkg/usecase/lookup"
	"github.com/m-mizutani/horizon/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// config holds configuration values
type config struct {
	// Logging
	logLevel  string
	logFormat string

	// Persona
	name    string
	version string

	// Knowledge base
	kbPath   string
	kbBucket string

	// Encyclopedia
	wikiEndpoint   string
	wikiUserAgent  string
	lookupTimeout  time.Duration
	lookupInterval time.Duration
	lookupCacheTTL time.Duration

	// Terminal
	historyFile string
	noSpinner   bool
}

// globalFlags returns logging flags used across commands with destination config
func globalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Aliases:     []string{"l"},
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("HORIZON_LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format (console, json)",
			Value:       string(logging.FormatConsole),
			Sources:     cli.EnvVars("HORIZON_LOG_FORMAT"),
			Destination: &cfg.logFormat,
		},
	}
}

// sessionFlags returns flags for persona, knowledge base and encyclopedia with destination config
func sessionFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "name",
			Usage:       "Assistant name used in replies",
			Value:       "HorizonAI",
			Sources:     cli.EnvVars("HORIZON_NAME"),
			Destination: &cfg.name,
		},
		&cli.StringFlag{
			Name:        "version-label",
			Usage:       "Assistant version used in replies",
			Value:       "1.4 Nexus",
			Sources:     cli.EnvVars("HORIZON_VERSION"),
			Destination: &cfg.version,
		},
		&cli.StringFlag{
			Name:        "kb-path",
			Usage:       "Knowledge base file (object name when --kb-bucket is set)",
			Value:       "horizon_knowledge.yaml",
			Sources:     cli.EnvVars("HORIZON_KB_PATH"),
			Destination: &cfg.kbPath,
		},
		&cli.StringFlag{
			Name:        "kb-bucket",
			Usage:       "Cloud Storage bucket for the knowledge base",
			Sources:     cli.EnvVars("HORIZON_KB_BUCKET"),
			Destination: &cfg.kbBucket,
		},
		&cli.StringFlag{
			Name:        "wiki-endpoint",
			Usage:       "MediaWiki action API endpoint",
			Value:       adapter.DefaultWikipediaEndpoint,
			Sources:     cli.EnvVars("HORIZON_WIKI_ENDPOINT"),
			Destination: &cfg.wikiEndpoint,
		},
		&cli.StringFlag{
			Name:        "wiki-user-agent",
			Usage:       "User-Agent sent to the encyclopedia",
			Value:       adapter.DefaultWikipediaUserAgent,
			Sources:     cli.EnvVars("HORIZON_WIKI_USER_AGENT"),
			Destination: &cfg.wikiUserAgent,
		},
		&cli.DurationFlag{
			Name:        "lookup-timeout",
			Usage:       "Upper bound for one encyclopedia lookup",
			Value:       lookup.DefaultTimeout,
			Sources:     cli.EnvVars("HORIZON_LOOKUP_TIMEOUT"),
			Destination: &cfg.lookupTimeout,
		},
		&cli.DurationFlag{
			Name:        "lookup-rate",
			Usage:       "Minimum interval between encyclopedia requests",
			Value:       200 * time.Millisecond,
			Sources:     cli.EnvVars("HORIZON_LOOKUP_RATE"),
			Destination: &cfg.lookupInterval,
		},
		&cli.DurationFlag{
			Name:        "lookup-cache-ttl",
			Usage:       "How long lookup results are reused (0 disables)",
			Value:       10 * time.Minute,
			Sources:     cli.EnvVars("HORIZON_LOOKUP_CACHE_TTL"),
			Destination: &cfg.lookupCacheTTL,
		},
	}
}

// terminalFlags returns flags for the interactive loop with destination config
func terminalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "history-file",
			Usage:       "File to keep input line history in",
			Sources:     cli.EnvVars("HORIZON_HISTORY_FILE"),
			Destination: &cfg.historyFile,
		},
		&cli.BoolFlag{
			Name:        "no-spinner",
			Usage:       "Disable the thinking indicator",
			Sources:     cli.EnvVars("HORIZON_NO_SPINNER"),
			Destination: &cfg.noSpinner,
		},
	}
}

// newLogger builds the logger and installs it as default
func (cfg *config) newLogger(w io.Writer) *slog.Logger {
	logger := logging.New(cfg.logLevel, w, logging.WithFormat(logging.ParseFormat(cfg.logFormat)))
	logging.SetDefault(logger)
	return logger
}

// persona validates and returns the assistant identity
func (cfg *config) persona() (model.Persona, error) {
	if cfg.name == "" {
		return model.Persona{}, goerr.New("name is required")
	}
	return model.Persona{Name: cfg.name, Version: cfg.version}, nil
}

// newRepository creates the knowledge base repository on local disk or Cloud Storage
func (cfg *config) newRepository(ctx context.Context) (repository.KnowledgeRepository, error) {
	if cfg.kbPath == "" {
		return nil, goerr.New("kb-path is required")
	}

	if cfg.kbBucket != "" {
		storage, err := adapter.NewStorage(ctx, cfg.kbBucket)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create storage", goerr.V("bucket", cfg.kbBucket))
		}
		return repository.NewYAML(storage, filepath.ToSlash(cfg.kbPath)), nil
	}

	storage := adapter.NewFileStorage(filepath.Dir(cfg.kbPath))
	return repository.NewYAML(storage, filepath.Base(cfg.kbPath)), nil
}

// newLookup creates the lookup adapter over the MediaWiki client
func (cfg *config) newLookup() (*lookup.Adapter, error) {
	if cfg.wikiEndpoint == "" {
		return nil, goerr.New("wiki-endpoint is required")
	}

	client := adapter.NewWikipedia(
		adapter.WithEndpoint(cfg.wikiEndpoint),
		adapter.WithUserAgent(cfg.wikiUserAgent),
		adapter.WithMinInterval(cfg.lookupInterval),
	)

	return lookup.New(client,
		lookup.WithTimeout(cfg.lookupTimeout),
		lookup.WithCacheTTL(cfg.lookupCacheTTL),
	), nil
}

// newProgress creates the thinking indicator
func (cfg *config) newProgress(w io.Writer) adapter.Progress {
	if cfg.noSpinner {
		return adapter.NopProgress()
	}
	return adapter.NewSpinner(w)
}

// newSession wires every dependency of a chat session
func (cfg *config) newSession(ctx context.Context, progress adapter.Progress) (*chat.Session, error) {
	persona, err := cfg.persona()
	if err != nil {
		return nil, err
	}

	repo, err := cfg.newRepository(ctx)
	if err != nil {
		return nil, err
	}

	lk, err := cfg.newLookup()
	if err != nil {
		return nil, err
	}

	session, err := chat.New(ctx, chat.NewInput{
		Persona:  persona,
		Repo:     repo,
		Lookup:   lk,
		Progress: progress,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create chat session")
	}
	return session, nil
}
