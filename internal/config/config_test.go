package config

import (
	"log/slog"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"CALCX_MACHINE_ID", "CALCX_STATE_DIR", "CALCX_STATE_FORMAT", "CALCX_LOG_LEVEL", "CALCX_LOG_FORMAT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("Load() = %+v, want %+v", cfg, Default())
	}
	if cfg.StateDir != "" {
		t.Fatalf("persistence should be disabled by default, got StateDir=%q", cfg.StateDir)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CALCX_MACHINE_ID", "desk")
	t.Setenv("CALCX_STATE_DIR", "/var/lib/calcx")
	t.Setenv("CALCX_STATE_FORMAT", "YAML")
	t.Setenv("CALCX_LOG_LEVEL", "debug")
	t.Setenv("CALCX_LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := Config{
		MachineID:   "desk",
		StateDir:    "/var/lib/calcx",
		StateFormat: StateFormatYAML,
		LogFormat:   LogFormatJSON,
		LogLevel:    slog.LevelDebug,
	}
	if cfg != want {
		t.Fatalf("Load() = %+v, want %+v", cfg, want)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	testCases := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{name: "state format", key: "CALCX_STATE_FORMAT", value: "toml", wantErr: "CALCX_STATE_FORMAT"},
		{name: "log level", key: "CALCX_LOG_LEVEL", value: "trace", wantErr: "CALCX_LOG_LEVEL"},
		{name: "log format", key: "CALCX_LOG_FORMAT", value: "xml", wantErr: "CALCX_LOG_FORMAT"},
		{name: "machine id path", key: "CALCX_MACHINE_ID", value: "../etc", wantErr: "path separators"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			if err == nil {
				t.Fatalf("Load() with %s=%q expected error", tc.key, tc.value)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("Load() error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		input string
		want  slog.Level
		ok    bool
	}{
		{name: "debug", input: "debug", want: slog.LevelDebug, ok: true},
		{name: "info", input: "info", want: slog.LevelInfo, ok: true},
		{name: "warning", input: "warning", want: slog.LevelWarn, ok: true},
		{name: "uppercase", input: "ERROR", want: slog.LevelError, ok: true},
		{name: "invalid", input: "trace", ok: false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			level, err := ParseLogLevel(tc.input)
			if !tc.ok {
				if err == nil {
					t.Fatalf("ParseLogLevel(%q) expected error", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLogLevel(%q) error: %v", tc.input, err)
			}
			if level != tc.want {
				t.Fatalf("ParseLogLevel(%q) mismatch: got=%s want=%s", tc.input, level, tc.want)
			}
		})
	}
}

func TestParseStateFormat(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]StateFormat{"json": StateFormatJSON, "yaml": StateFormatYAML, "yml": StateFormatYAML} {
		got, err := ParseStateFormat(input)
		if err != nil || got != want {
			t.Errorf("ParseStateFormat(%q) = %q, %v; want %q", input, got, err, want)
		}
	}
	if _, err := ParseStateFormat("ini"); err == nil {
		t.Error("ParseStateFormat(ini) expected error")
	}
}
