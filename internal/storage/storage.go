// Package storage persists evaluation records to disk.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatYAML     = "yaml"
)

// ErrNotMarkdown is returned when a record without a markdown rendering is saved as markdown.
var ErrNotMarkdown = errors.New("record cannot be rendered as markdown")

// Markdowner is implemented by records with a markdown rendering.
type Markdowner interface {
	Markdown() string
}

// Store writes records in the configured formats.
type Store struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{logger: logger}
}

// Save writes record to path, creating parent directories. Unsupported formats fall back to JSON.
func (s *Store) Save(record any, path, format string) error {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "md" {
		format = FormatMarkdown
	}
	if format == "yml" {
		format = FormatYAML
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		data, err = encodeJSON(record)
	case FormatMarkdown:
		data, err = encodeMarkdown(record)
	case FormatYAML:
		data, err = yaml.Marshal(record)
	default:
		s.logger.Warn("unsupported output format, saving as json", zap.String("format", format), zap.String("path", path))
		format = FormatJSON
		data, err = encodeJSON(record)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	s.logger.Info("saved", zap.String("path", path), zap.String("format", format))
	return nil
}

// Extension returns the file extension for format.
func Extension(format string) string {
	switch strings.ToLower(format) {
	case FormatMarkdown, "md":
		return ".md"
	case FormatYAML, "yml":
		return ".yaml"
	default:
		return ".json"
	}
}

func encodeJSON(record any) ([]byte, error) {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func encodeMarkdown(record any) ([]byte, error) {
	switch r := record.(type) {
	case Markdowner:
		return []byte(r.Markdown()), nil
	case string:
		return []byte(r), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrNotMarkdown, record)
	}
}
