package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/outofforest/mmusim/types"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the configuration of the logger.
type Config struct {
	// Level is one of debug, info, warn, error.
	Level string

	// Format is either FormatText or FormatJSON.
	Format string

	// Output receives log records, stderr is used if nil.
	Output io.Writer
}

// DefaultConfig logs info and above as text to stderr.
var DefaultConfig = Config{
	Level:  "info",
	Format: FormatText,
}

// New creates new logger.
func New(config Config) (*slog.Logger, error) {
	level, err := ParseLevel(config.Level)
	if err != nil {
		return nil, err
	}

	output := config.Output
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: level}
	switch config.Format {
	case FormatText, "":
		return slog.New(slog.NewTextHandler(output, opts)), nil
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(output, opts)), nil
	default:
		return nil, errors.Errorf("unknown log format %q", config.Format)
	}
}

// ParseLevel converts level name to slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, errors.Errorf("unknown log level %q", level)
	}
}

// Discard returns logger dropping all the records.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// WithComponent returns logger tagging records with the component name.
func WithComponent(log *slog.Logger, component string) *slog.Logger {
	return log.With("component", component)
}

// WithProcess returns logger tagging records with the process ID.
func WithProcess(log *slog.Logger, pid types.ProcessID) *slog.Logger {
	return log.With("pid", pid)
}
