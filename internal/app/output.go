package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/five82/devinfo/internal/device"
)

// Format selects the snapshot encoding for watch and once modes.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a -format flag value. Empty selects text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, json or yaml)", s)
}

// printer writes snapshots to w. JSON is one object per line unless pretty;
// YAML is a document stream.
type printer struct {
	mu     sync.Mutex
	w      io.Writer
	format Format
	pretty bool
	yaml   *yaml.Encoder
	closed bool
}

func newPrinter(w io.Writer, format Format, pretty bool) *printer {
	return &printer{w: w, format: format, pretty: pretty}
}

// Print writes one snapshot.
func (p *printer) Print(info device.Info) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return fmt.Errorf("print snapshot: printer closed")
	}

	switch p.format {
	case FormatJSON:
		enc := json.NewEncoder(p.w)
		if p.pretty {
			enc.SetIndent("", "  ")
		}
		if err := enc.Encode(info); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil

	case FormatYAML:
		if p.yaml == nil {
			p.yaml = yaml.NewEncoder(p.w)
			p.yaml.SetIndent(2)
		}
		if err := p.yaml.Encode(info); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return nil
	}

	_, err := fmt.Fprintln(p.w, info.String())
	return err
}

// Close flushes any buffered output. Later calls are no-ops.
func (p *printer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	if p.yaml != nil {
		if err := p.yaml.Close(); err != nil {
			return fmt.Errorf("flush yaml: %w", err)
		}
	}
	return nil
}
