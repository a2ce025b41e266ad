package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/sanity-io/litter"
	dmp "github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
	"github.com/terraform-industries/anthropic-types/envelope"
	"github.com/terraform-industries/anthropic-types/internal/config"
	"github.com/terraform-industries/anthropic-types/internal/tracing"
	"github.com/terraform-industries/anthropic-types/models"
	"golang.org/x/sync/errgroup"
)

// loadPayload reads and decodes one input inside a traced span.
func loadPayload(ctx context.Context, operation string, kind config.Kind, path string, stdin io.Reader) (decoded, []byte, error) {
	data, err := readInput(path, stdin)
	if err != nil {
		return decoded{}, nil, err
	}
	var result decoded
	_, err = tracing.TraceDecode(ctx, operation, string(kind), path, len(data), func(context.Context) (tracing.Summary, error) {
		d, err := decodeKind(kind, data)
		if err != nil {
			return tracing.Summary{}, err
		}
		result = d
		return d.summary, nil
	})
	if err != nil {
		return decoded{}, data, err
	}
	return result, data, nil
}

type validation struct {
	source  string
	summary tracing.Summary
	err     error
}

// validateFiles decodes every path with at most cfg.Concurrency in flight.
// Results keep the order of paths. Stdin is read once, before any worker
// starts, and every "-" argument decodes that same input.
func validateFiles(ctx context.Context, cfg config.Config, paths []string, stdin io.Reader) []validation {
	var stdinData []byte
	var stdinErr error
	if slices.Contains(paths, "-") {
		stdinData, stdinErr = io.ReadAll(stdin)
	}

	results := make([]validation, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)
	for i, path := range paths {
		if path == "-" && stdinErr != nil {
			results[i] = validation{source: path, err: stdinErr}
			continue
		}
		g.Go(func() error {
			d, _, err := loadPayload(ctx, "validate", cfg.Kind, path, bytes.NewReader(stdinData))
			results[i] = validation{source: path, summary: d.summary, err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func validateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Decode payloads and report schema errors",
		Long:  "Decode each FILE (\"-\" for stdin) as the configured kind and print one line per file. Exits non-zero when any payload fails.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			st := newStyles(out, useColor(cfg.Color, out))

			failed := 0
			for _, r := range validateFiles(cmd.Context(), cfg, args, cmd.InOrStdin()) {
				if r.err != nil {
					failed++
					fmt.Fprintf(out, "%s %s  %v\n", st.fail.Render("FAIL"), st.source.Render(r.source), r.err)
					continue
				}
				fmt.Fprintf(out, "%s %s  %s\n", st.ok.Render("OK"), st.source.Render(r.source), st.detail.Render(describeSummary(r.summary)))
			}
			if failed > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d payloads failed validation\n", failed, len(args))
				return exitError{code: 1}
			}
			return nil
		},
	}
}

func normalizeCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize FILE",
		Short: "Print the canonical encoding of a payload",
		Long:  "Decode FILE (\"-\" for stdin) and print its canonical encoding: block-list message content, sorted extension fields and compacted raw values.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			d, _, err := loadPayload(cmd.Context(), "normalize", cfg.Kind, args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			canonical, err := encodeValue(d.value)
			if err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return writeOutput(cmd.OutOrStdout(), canonical, cfg)
		},
	}
}

func roundtripCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "roundtrip FILE",
		Short: "Show how decoding and re-encoding changes a payload",
		Long:  "Decode FILE, encode it again and diff the input against the canonical output. Exits non-zero if re-decoding the canonical output does not reproduce it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			if cfg.Kind == config.KindStream {
				return fmt.Errorf("roundtrip needs a JSON payload; use normalize for kind %q", cfg.Kind)
			}
			d, input, err := loadPayload(cmd.Context(), "roundtrip", cfg.Kind, args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			canonical, err := encodeValue(d.value)
			if err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			out := cmd.OutOrStdout()
			st := newStyles(out, useColor(cfg.Color, out))

			stable, err := isStable(cfg.Kind, canonical)
			if err != nil {
				return fmt.Errorf("decode canonical output: %w", err)
			}

			before, err := indent(input)
			if err != nil {
				return err
			}
			after, err := indent(canonical)
			if err != nil {
				return err
			}
			if before == after {
				fmt.Fprintf(out, "%s %s  canonical form matches input\n", st.ok.Render("SAME"), st.source.Render(args[0]))
			} else {
				fmt.Fprint(out, renderDiff(st, before, after))
			}

			if !stable {
				fmt.Fprintf(out, "%s %s  canonical output does not re-encode to itself\n", st.fail.Render("UNSTABLE"), st.source.Render(args[0]))
				return exitError{code: 1}
			}
			return nil
		},
	}
}

// isStable reports whether canonical decodes and re-encodes byte for byte.
func isStable(kind config.Kind, canonical []byte) (bool, error) {
	again, err := decodeKind(kind, canonical)
	if err != nil {
		return false, err
	}
	reencoded, err := encodeValue(again.value)
	if err != nil {
		return false, err
	}
	return bytes.Equal(canonical, reencoded), nil
}

func indent(data []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(data), "", "  "); err != nil {
		return "", err
	}
	buf.WriteByte('\n')
	return buf.String(), nil
}

// renderDiff renders a line diff of two texts.
func renderDiff(st styles, oldText, newText string) string {
	d := dmp.New()
	oldChars, newChars, lineArray := d.DiffLinesToChars(oldText, newText)
	diffs := d.DiffCharsToLines(d.DiffMain(oldChars, newChars, false), lineArray)

	var b strings.Builder
	lines := func(s string) []string { return strings.Split(strings.TrimSuffix(s, "\n"), "\n") }
	for _, df := range diffs {
		switch df.Type {
		case dmp.DiffInsert:
			for _, ln := range lines(df.Text) {
				b.WriteString(st.insert.Render("+ "+ln) + "\n")
			}
		case dmp.DiffDelete:
			for _, ln := range lines(df.Text) {
				b.WriteString(st.delete.Render("- "+ln) + "\n")
			}
		default:
			for _, ln := range lines(df.Text) {
				b.WriteString(st.detail.Render("  "+ln) + "\n")
			}
		}
	}
	return b.String()
}

func inspectCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "Dump the decoded in-memory value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			d, _, err := loadPayload(cmd.Context(), "inspect", cfg.Kind, args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			dumper := litter.Options{
				HidePrivateFields: true,
				HideZeroValues:    true,
				StripPackageNames: true,
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), dumper.Sdump(d.value))
			return err
		},
	}
}

func modelsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "models [ID]",
		Short: "List the capability table or describe one model",
		Long:  "Without ID, print the ListModels proxy response. With ID, print that model's entry; unknown identifiers get the default context window and pricing.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			var value any = envelope.ModelsResponse()
			if len(args) == 1 {
				value = models.Describe(args[0])
			}
			data, err := json.Marshal(value)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), data, cfg)
		},
	}
}
