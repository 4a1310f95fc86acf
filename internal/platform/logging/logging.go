// Package logging はプロセス全体で使う slog ロガーを構築します。
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// 出力形式です。
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Config はロガーの設定です。
type Config struct {
	Level  string // debug / info / warn / error
	Format string // json / text
}

// New builds a logger writing to w.
func New(cfg Config, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.Level, err)
		}
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(cfg.Format) {
	case "", FormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case FormatText:
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.Format)
	}
}

// Setup builds a stdout logger and installs it as the slog default.
func Setup(cfg Config) error {
	logger, err := New(cfg, os.Stdout)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}
