package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// fileOnly points the global logger at a fresh uncompressed file and
// returns its path. The previous logger is restored on cleanup.
func fileOnly(t *testing.T, level string, maxSizeMB int) string {
	t.Helper()
	prevLog, prevSugar := Log, Sugar
	t.Cleanup(func() {
		Sync()
		Log, Sugar = prevLog, prevSugar
	})

	path := filepath.Join(t.TempDir(), "osgexport.log")
	cfg := DefaultFileConfig(path)
	cfg.MaxSizeMB = maxSizeMB
	cfg.Compress = false
	if err := InitWithFileConfig(level, cfg, false); err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return path
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	Sync()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	return string(content)
}

func TestNopBeforeInit(t *testing.T) {
	if Log.Core().Enabled(zapcore.ErrorLevel) {
		t.Fatal("package logger should discard until Init")
	}
	Named("export").Info("ignored")
}

func TestStageLoggers(t *testing.T) {
	path := fileOnly(t, "debug", 10)

	Named("scene").Debug("mesh converted", zap.String("mesh", "Body"), zap.Int("vertices", 24))
	Named("export").Info("exported", zap.String("output", "cube.osg"))
	Error("export failed", zap.String("input", "missing.yaml"))

	out := readLog(t, path)
	for _, want := range []string{
		"DEBUG scene",
		"mesh converted",
		"Body",
		"INFO export",
		"cube.osg",
		"ERROR",
		"missing.yaml",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level string
		min   zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"verbose", zapcore.InfoLevel},
	}
	all := []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := ParseLevel(tt.level); got != tt.min {
				t.Fatalf("ParseLevel(%q) = %v, want %v", tt.level, got, tt.min)
			}

			path := fileOnly(t, tt.level, 10)
			for _, l := range all {
				Log.Check(l, "stage "+l.CapitalString()).Write()
			}

			out := readLog(t, path)
			for _, l := range all {
				logged := strings.Contains(out, "stage "+l.CapitalString())
				if want := l >= tt.min; logged != want {
					t.Errorf("%s logged=%v at level %s", l.CapitalString(), logged, tt.level)
				}
			}
		})
	}
}

func TestWatchSessionRotates(t *testing.T) {
	path := fileOnly(t, "info", 1)
	dir := filepath.Dir(path)

	// Roughly 3MB of re-export summaries against a 1MB limit.
	input := strings.Repeat("scenes/", 30) + "cube.yaml"
	for i := 0; i < 12000; i++ {
		Sugar.Infow("re-exported", "input", input, "run", i)
	}
	Sync()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("current log file: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}

	var rotated []string
	for _, e := range entries {
		name := e.Name()
		if name != "osgexport.log" && strings.HasPrefix(name, "osgexport-") {
			rotated = append(rotated, name)
		}
	}
	if len(rotated) == 0 {
		t.Fatalf("no rotated files in %v", entries)
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("watch.log")
	want := FileConfig{Path: "watch.log", MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 14, Compress: true}
	if cfg != want {
		t.Errorf("DefaultFileConfig = %+v, want %+v", cfg, want)
	}
}

func TestInitWithoutFile(t *testing.T) {
	prevLog, prevSugar := Log, Sugar
	t.Cleanup(func() { Log, Sugar = prevLog, prevSugar })

	if err := InitWithFileConfig("warn", FileConfig{}, false); err != nil {
		t.Fatalf("init: %v", err)
	}
	if Log.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("logger with no outputs should be disabled")
	}
}
