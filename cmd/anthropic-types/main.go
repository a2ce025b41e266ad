package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/terraform-industries/anthropic-types/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// version is the CLI build version.
const version = "0.1.0"

// options holds flags shared by every command.
type options struct {
	// ConfigPath is an explicit YAML settings file.
	ConfigPath string
	// Kind selects the payload shape to decode.
	Kind string
	// Output selects json or yaml output.
	Output string
	// Color selects auto, always or never.
	Color string
	// Concurrency bounds parallel validation.
	Concurrency int
	// Pretty indents JSON output.
	Pretty bool
}

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatalf("load .env: %v", err)
	}

	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" {
		tp, err := initTracing(ctx)
		if err != nil {
			log.Fatalf("init tracing: %v", err)
		}
		defer func() {
			if err := tp.Shutdown(ctx); err != nil {
				log.Printf("shutdown tracing: %v", err)
			}
		}()
	}

	err := newRootCommand().ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var exitErr exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}

// exitError ends the process with code after the command has already
// reported the failure itself.
type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func initTracing(ctx context.Context) (*sdktrace.TracerProvider, error) {
	// The exporter reads OTEL_EXPORTER_OTLP_* variables for endpoint and headers.
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			"",
			attribute.String("service.name", "anthropic-types"),
			attribute.String("service.version", version),
		)),
	)

	otel.SetTracerProvider(tp)
	return tp, nil
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:           "anthropic-types",
		Short:         "Validate, normalize and inspect Anthropic completion payloads",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	applyFlags(rootCmd.PersistentFlags(), opts)

	rootCmd.AddCommand(validateCommand(opts))
	rootCmd.AddCommand(normalizeCommand(opts))
	rootCmd.AddCommand(roundtripCommand(opts))
	rootCmd.AddCommand(inspectCommand(opts))
	rootCmd.AddCommand(modelsCommand(opts))

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w\n\n%s", err, cmd.UsageString())
	})
	return rootCmd
}

// applyFlags defines the flags shared by every command.
func applyFlags(flags *pflag.FlagSet, opts *options) {
	defaults := config.Default()
	flags.StringVar(&opts.ConfigPath, "config", "", "YAML settings file (default $"+config.EnvPrefix+"CONFIG or ./anthropic-types.yaml)")
	flags.StringVarP(&opts.Kind, "kind", "k", string(defaults.Kind), "Payload kind (request|response|message|block|envelope-request|envelope-response|stream)")
	flags.StringVarP(&opts.Output, "output", "o", defaults.Output, "Output format (json|yaml)")
	flags.StringVar(&opts.Color, "color", defaults.Color, "Color mode (auto|always|never)")
	flags.IntVarP(&opts.Concurrency, "concurrency", "j", defaults.Concurrency, "Files validated in parallel")
	flags.BoolVar(&opts.Pretty, "pretty", defaults.Pretty, "Indent JSON output")
}

// resolveConfig layers defaults, the settings file, the environment and the
// flags the user set explicitly, in that order.
func resolveConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	cfg := config.Default()

	path, required := opts.ConfigPath, opts.ConfigPath != ""
	if !required {
		if env, ok := os.LookupEnv(config.EnvPrefix + "CONFIG"); ok && env != "" {
			path, required = env, true
		} else {
			path = "anthropic-types.yaml"
		}
	}
	if err := config.LoadFile(&cfg, path, required); err != nil {
		return config.Config{}, err
	}
	if err := config.ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("kind") {
		cfg.Kind = config.Kind(opts.Kind)
	}
	if flags.Changed("output") {
		cfg.Output = opts.Output
	}
	if flags.Changed("color") {
		cfg.Color = opts.Color
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = opts.Concurrency
	}
	if flags.Changed("pretty") {
		cfg.Pretty = opts.Pretty
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
