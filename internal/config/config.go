package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

const (
	defaultMachineID   = "calculator"
	defaultStateFormat = StateFormatJSON
	defaultLogFormat   = LogFormatText
	defaultLogLevel    = slog.LevelInfo
)

type StateFormat string

const (
	StateFormatJSON StateFormat = "json"
	StateFormatYAML StateFormat = "yaml"
)

type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// Config controls where calculator state is kept and how the CLI logs.
type Config struct {
	MachineID   string
	StateDir    string // empty disables persistence
	StateFormat StateFormat
	LogFormat   LogFormat
	LogLevel    slog.Level
}

// Load reads runtime configuration from environment variables.
func Load() (Config, error) {
	cfg := Default()

	if id := strings.TrimSpace(os.Getenv("CALCX_MACHINE_ID")); id != "" {
		cfg.MachineID = id
	}
	if dir := strings.TrimSpace(os.Getenv("CALCX_STATE_DIR")); dir != "" {
		cfg.StateDir = dir
	}
	if format := strings.TrimSpace(os.Getenv("CALCX_STATE_FORMAT")); format != "" {
		parsed, err := ParseStateFormat(format)
		if err != nil {
			return Config{}, err
		}
		cfg.StateFormat = parsed
	}
	if level := strings.TrimSpace(os.Getenv("CALCX_LOG_LEVEL")); level != "" {
		parsed, err := ParseLogLevel(level)
		if err != nil {
			return Config{}, err
		}
		cfg.LogLevel = parsed
	}
	if format := strings.TrimSpace(os.Getenv("CALCX_LOG_FORMAT")); format != "" {
		parsed, err := ParseLogFormat(format)
		if err != nil {
			return Config{}, err
		}
		cfg.LogFormat = parsed
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func Default() Config {
	return Config{
		MachineID:   defaultMachineID,
		StateFormat: defaultStateFormat,
		LogFormat:   defaultLogFormat,
		LogLevel:    defaultLogLevel,
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.MachineID) == "" {
		return fmt.Errorf("validate config: CALCX_MACHINE_ID must not be empty")
	}
	if strings.ContainsAny(c.MachineID, `/\`) {
		return fmt.Errorf("validate config: CALCX_MACHINE_ID %q must not contain path separators", c.MachineID)
	}

	switch c.StateFormat {
	case StateFormatJSON, StateFormatYAML:
	default:
		return fmt.Errorf(
			"validate config: unsupported CALCX_STATE_FORMAT %q (allowed: %q, %q)",
			c.StateFormat,
			StateFormatJSON,
			StateFormatYAML,
		)
	}

	switch c.LogLevel {
	case slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError:
	default:
		return fmt.Errorf(
			"validate config: unsupported CALCX_LOG_LEVEL %q (allowed: %q, %q, %q, %q)",
			c.LogLevel.String(),
			slog.LevelDebug.String(),
			slog.LevelInfo.String(),
			slog.LevelWarn.String(),
			slog.LevelError.String(),
		)
	}

	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf(
			"validate config: unsupported CALCX_LOG_FORMAT %q (allowed: %q, %q)",
			c.LogFormat,
			LogFormatText,
			LogFormatJSON,
		)
	}

	return nil
}

// ParseLogLevel accepts debug, info, warn/warning and error in any case.
func ParseLogLevel(input string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf(
			"parse CALCX_LOG_LEVEL: unsupported value %q (allowed: %q, %q, %q, %q)",
			input,
			slog.LevelDebug.String(),
			slog.LevelInfo.String(),
			slog.LevelWarn.String(),
			slog.LevelError.String(),
		)
	}
}

func ParseLogFormat(input string) (LogFormat, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case string(LogFormatText):
		return LogFormatText, nil
	case string(LogFormatJSON):
		return LogFormatJSON, nil
	default:
		return "", fmt.Errorf(
			"parse CALCX_LOG_FORMAT: unsupported value %q (allowed: %q, %q)",
			input,
			LogFormatText,
			LogFormatJSON,
		)
	}
}

func ParseStateFormat(input string) (StateFormat, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case string(StateFormatJSON):
		return StateFormatJSON, nil
	case string(StateFormatYAML), "yml":
		return StateFormatYAML, nil
	default:
		return "", fmt.Errorf(
			"parse CALCX_STATE_FORMAT: unsupported value %q (allowed: %q, %q)",
			input,
			StateFormatJSON,
			StateFormatYAML,
		)
	}
}
