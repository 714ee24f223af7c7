// Package main provides the compras CLI for running the purchase pipeline,
// inspecting and comparing requests, and seeding the supplier registry.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"pei_compras/internal/bootstrap"
	"pei_compras/internal/domain/entities"
	"pei_compras/internal/infrastructure/config"
	"pei_compras/internal/infrastructure/logger"
	"pei_compras/internal/infrastructure/seed"
	"pei_compras/internal/usecase"
	"pei_compras/internal/usecase/interfaces"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

const appName = "compras"

// Version is overridden at build time with -ldflags.
var Version = "dev"

// app is the slice of the container the commands use.
type app struct {
	pipeline   usecase.IPipelineUseCase
	comparison usecase.IPriceComparisonUseCase
	registry   interfaces.ISupplierRegistry
	seedFile   string
	close      func()
}

type appFactory func(ctx context.Context, logLevel string) (*app, error)

func main() {
	if err := rootCmd(newApp).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(ctx context.Context, logLevel string) (*app, error) {
	cfg := config.Load()
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	log := logger.Must(cfg.LogLevel, "pei-compras-cli", cfg.AppVersion)
	c, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return &app{
		pipeline:   c.Pipeline,
		comparison: c.Comparison,
		registry:   c.Registry,
		seedFile:   cfg.SuppliersSeedFile,
		close:      c.Close,
	}, nil
}

func rootCmd(factory appFactory) *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Purchase request pipeline CLI",
		Long: `compras runs the purchasing pipeline outside the HTTP API.

Commands:
  process         Extract, discover suppliers and dispatch RFQs for a request text
  status          Show the progress of a purchase request
  compare         Recommend quoting or buying directly for a stored request
  seed-suppliers  Load the supplier registry from a YAML file`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(processCmd(factory, &logLevel))
	cmd.AddCommand(statusCmd(factory, &logLevel))
	cmd.AddCommand(compareCmd(factory, &logLevel))
	cmd.AddCommand(seedCmd(factory, &logLevel))
	cmd.AddCommand(versionCmd())
	return cmd
}

func processCmd(factory appFactory, logLevel *string) *cobra.Command {
	var (
		origin string
		file   string
	)

	cmd := &cobra.Command{
		Use:   "process [text]",
		Short: "Run the full pipeline for a purchase request",
		Example: `  compras process "Necesito 5 laptops HP con 16GB RAM, urgente"
  compras process --file solicitud.txt --origin email
  echo "20 sillas ergonómicas" | compras process`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(args, file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			o, ok := entities.ParseOrigin(origin)
			if !ok {
				return fmt.Errorf("unknown origin %q", origin)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := factory(ctx, *logLevel)
			if err != nil {
				return err
			}
			defer a.close()

			res := a.pipeline.Run(ctx, text, o)
			if err := printJSON(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if !res.Success {
				return fmt.Errorf("pipeline failed at stage %s: %s", res.Stage, res.Error)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&origin, "origin", string(entities.OriginAPI), "Origin channel (form, messaging, email, api)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the request text from a file")
	return cmd
}

func statusCmd(factory appFactory, logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status <request-id>",
		Short: "Show the status of a purchase request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := factory(cmd.Context(), *logLevel)
			if err != nil {
				return err
			}
			defer a.close()

			view, err := a.pipeline.Status(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), view)
		},
	}
}

func compareCmd(factory appFactory, logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <request-id>",
		Short: "Compare registry, web and marketplace options for a purchase request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := factory(ctx, *logLevel)
			if err != nil {
				return err
			}
			defer a.close()

			report, err := a.comparison.CompareForRequest(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	}
}

func seedCmd(factory appFactory, logLevel *string) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed-suppliers",
		Short: "Upsert the supplier registry from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := factory(cmd.Context(), *logLevel)
			if err != nil {
				return err
			}
			defer a.close()

			path := file
			if path == "" {
				path = a.seedFile
			}
			suppliers, err := seed.LoadSuppliers(path)
			if err != nil {
				return err
			}
			n, err := seed.SeedRegistry(cmd.Context(), a.registry, suppliers, nil)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d suppliers seeded from %s\n", n, path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Seed file (default: SUPPLIERS_SEED_FILE)")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	}
}

// readText takes the request text from the argument, the file or stdin, in
// that order.
func readText(args []string, file string, stdin io.Reader) (string, error) {
	var text string
	switch {
	case len(args) > 0:
		text = args[0]
	case file != "":
		raw, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", file, err)
		}
		text = string(raw)
	default:
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		text = string(raw)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("request text is empty")
	}
	return text, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
