package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mindgym/internal/platform/logging"
)

func TestNewWithoutPathIsNop(t *testing.T) {
	t.Parallel()
	logger, err := logging.New("", true)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("dropped")
}

func TestNewWritesJSONToFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "logs", "mindgym.log")
	logger, err := logging.New(path, false)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("session created")
	_ = logger.Sync()

	payload, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(payload)
	if !strings.Contains(out, `"msg":"session created"`) {
		t.Fatalf("expected json entry, got %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug entries must be filtered without debug, got %q", out)
	}
}
