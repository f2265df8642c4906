package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/preston-bernstein/schedule-board-service/internal/config"
	"github.com/preston-bernstein/schedule-board-service/internal/logging"
	"github.com/preston-bernstein/schedule-board-service/internal/schedule"
	"github.com/preston-bernstein/schedule-board-service/internal/server"
)

const serviceName = "schedule-board"

type rootOptions struct {
	envFile    string
	configFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	serve := newServeCmd()

	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Presentation schedule board",
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnv(opts)
		},
		RunE: serve.RunE,
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading configuration")
	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "YAML or JSON configuration file (overrides CONFIG_FILE)")

	root.AddCommand(serve, newDumpCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the board page and JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, err := server.New(cfg, logger)
			if err != nil {
				return err
			}
			srv.Run(ctx, stop)
			return nil
		},
	}
}

func newDumpCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Load the schedule once and print the resolved board",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "text" {
				return fmt.Errorf("unknown format %q (want json or text)", format)
			}
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			cfg.Metrics.Enabled = false

			view, err := dump(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			return writeBoard(cmd.OutOrStdout(), view, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: json or text")
	return cmd
}

func dump(ctx context.Context, cfg config.Config, logger *slog.Logger) (schedule.BoardView, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	srv, err := server.New(cfg, logger)
	if err != nil {
		return schedule.BoardView{}, err
	}
	defer func() { _ = srv.Close(context.Background()) }()
	return srv.LoadOnce(ctx)
}

func loadEnv(opts *rootOptions) error {
	if opts.envFile != "" {
		if err := godotenv.Load(opts.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", opts.envFile, err)
		}
	}
	if opts.configFile != "" {
		return os.Setenv("CONFIG_FILE", opts.configFile)
	}
	return nil
}

func loadConfig() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Service: serviceName,
		Version: appVersion,
		Output:  os.Stderr,
	})
	return cfg, logger, nil
}

func writeBoard(w io.Writer, view schedule.BoardView, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "loaded at %s\n", view.LoadedAt)
	for _, slot := range view.Timeslots {
		fmt.Fprintf(&b, "\n%s\n", slot.Label)
		if len(slot.Teams) == 0 {
			b.WriteString("  (no teams)\n")
			continue
		}
		for _, team := range slot.Teams {
			members := "(no members)"
			if len(team.Members) > 0 {
				members = strings.Join(team.Members, ", ")
			}
			fmt.Fprintf(&b, "  %s: %s\n", team.Name, members)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
