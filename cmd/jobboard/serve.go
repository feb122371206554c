package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/jonathan/job-board/internal/config"
	"github.com/jonathan/job-board/internal/matching"
	"github.com/jonathan/job-board/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort    int
	serveMigrate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the job board REST endpoints. It shuts down gracefully on SIGINT or SIGTERM.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Apply the schema before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, store, log, cleanup, err := setup(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if servePort != 0 {
		cfg.Port = servePort
	}
	if serveMigrate {
		if err := store.Migrate(ctx); err != nil {
			return errors.Wrap(err, "failed to apply schema")
		}
		log.Info("schema applied")
	}

	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return err
	}
	pwCfg, err := config.NewPasswordConfig()
	if err != nil {
		return err
	}
	blobs, err := openBlobs(ctx, &cfg.Upload)
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, server.Deps{
		Store:    store,
		Blobs:    blobs,
		Engine:   matching.NewEngine(matching.WithMaxCandidates(cfg.MaxCandidates)),
		Logger:   log,
		JWT:      jwtCfg,
		Password: pwCfg,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create server")
	}

	log.Info("starting job board",
		zap.Int("port", cfg.Port),
		zap.Bool("sqlite", cfg.IsSQLite()),
		zap.String("upload_driver", cfg.Upload.Driver),
	)
	return srv.Run(ctx)
}
