package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zoodb/zoodb/internal/config"
	"github.com/zoodb/zoodb/internal/errors"
	"github.com/zoodb/zoodb/internal/habitat"
	"github.com/zoodb/zoodb/internal/server"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		host       string
		port       int
		habitats   string
		watch      bool
		debug      bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the zoo server",
		Long: `Start the HTTP server.

Configuration is read from --config, or zoodb.json / zoodb.yaml in the
current directory when present. Flags override the file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if habitats != "" {
				cfg.Habitats.Source = config.SourceFile
				cfg.Habitats.File = habitats
			}
			if cmd.Flags().Changed("watch") {
				cfg.Habitats.Watch = watch
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			level := slog.LevelInfo
			if debug {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, cmd, cfg, logger)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to zoodb.json or zoodb.yaml")
	cmd.Flags().StringVar(&host, "host", config.DefaultHost, "Host to bind to")
	cmd.Flags().IntVarP(&port, "port", "p", config.DefaultPort, "Port to listen on")
	cmd.Flags().StringVar(&habitats, "habitats", "", "Load the habitat catalogue from this JSON file")
	cmd.Flags().BoolVar(&watch, "watch", false, "Reload the habitat file when it changes")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")

	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	source, err := habitatSource(ctx, cfg)
	if err != nil {
		return errors.New("E120").Wrap(err)
	}
	store := habitat.NewStore(source, logger)
	if err := store.Reload(ctx); err != nil {
		return errors.New("E120").Wrap(err)
	}

	srv := server.New(server.Options{
		Config: cfg,
		Store:  store,
		Logger: logger,
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx)
	})
	if cfg.Habitats.Source == config.SourceFile && cfg.Habitats.Watch {
		g.Go(func() error {
			return store.Watch(ctx, cfg.Habitats.File)
		})
	}

	success(cmd, "Serving %s on http://%s", cfg.Name, cfg.Addr())
	if err := g.Wait(); err != nil {
		return errors.New("E140").Wrap(err)
	}
	return nil
}

// loadConfig reads an explicit config file, or the one in the working
// directory if any, or falls back to defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	cfg, err := config.Load(".")
	if errors.Code(err) == "E100" {
		return config.New(), nil
	}
	return cfg, err
}

// habitatSource builds the catalogue source named by the config. The s3
// source resolves credentials and region through the SDK's default chain;
// habitats.region overrides the region when set.
func habitatSource(ctx context.Context, cfg *config.Config) (habitat.Source, error) {
	switch cfg.Habitats.Source {
	case config.SourceFile:
		path := cfg.Habitats.File
		if !filepath.IsAbs(path) && cfg.Dir() != "" {
			path = filepath.Join(cfg.Dir(), path)
			cfg.Habitats.File = path
		}
		return habitat.FileSource{Path: path}, nil
	case config.SourceS3:
		var opts []func(*awsconfig.LoadOptions) error
		if cfg.Habitats.Region != "" {
			opts = append(opts, awsconfig.WithRegion(cfg.Habitats.Region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, err
		}
		client := s3.NewFromConfig(awsCfg)
		return habitat.NewS3Source(client, cfg.Habitats.Bucket, cfg.Habitats.Key), nil
	default:
		return habitat.EmbeddedSource{}, nil
	}
}
