package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/terraform-industries/anthropic-types/internal/config"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

type styles struct {
	ok     lipgloss.Style
	fail   lipgloss.Style
	source lipgloss.Style
	detail lipgloss.Style
	insert lipgloss.Style
	delete lipgloss.Style
}

// useColor resolves the color mode for w. "auto" colors only a terminal.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newStyles(w io.Writer, color bool) styles {
	renderer := lipgloss.NewRenderer(w)
	if color {
		renderer.SetColorProfile(termenv.ANSI256)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}
	style := renderer.NewStyle
	return styles{
		ok:     style().Foreground(lipgloss.Color("10")).Bold(true),
		fail:   style().Foreground(lipgloss.Color("9")).Bold(true),
		source: style().Bold(true),
		detail: style().Foreground(lipgloss.Color("8")),
		insert: style().Foreground(lipgloss.Color("10")),
		delete: style().Foreground(lipgloss.Color("9")),
	}
}

// writeJSON writes canonical JSON, indented when pretty is set.
func writeJSON(w io.Writer, data []byte, pretty bool) error {
	if pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return err
		}
		data = buf.Bytes()
	}
	_, err := fmt.Fprintf(w, "%s\n", data)
	return err
}

// writeOutput writes canonical JSON in the configured output format.
func writeOutput(w io.Writer, data []byte, cfg config.Config) error {
	if cfg.Output != config.OutputYAML {
		return writeJSON(w, data, cfg.Pretty)
	}
	out, err := jsonToYAML(data)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// jsonToYAML converts JSON to block-style YAML, keeping member order. JSON is
// parsed as a YAML flow document so no map reordering happens.
func jsonToYAML(data []byte) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("convert to yaml: %w", err)
	}
	blockStyle(&doc)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func blockStyle(node *yaml.Node) {
	switch node.Kind {
	case yaml.MappingNode, yaml.SequenceNode:
		node.Style &^= yaml.FlowStyle
	case yaml.ScalarNode:
		if node.Tag == "!!str" {
			node.Style &^= yaml.DoubleQuotedStyle
		}
	}
	for _, child := range node.Content {
		blockStyle(child)
	}
}
