package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNew_WritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "bot.log")
	log, err := New("info", FileOptions{Path: path, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	log.Debug("hidden")
	log.Info("tick done", zap.String("tick_id", "abc"))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"msg":"tick done"`) || !strings.Contains(out, `"tick_id":"abc"`) {
		t.Fatalf("unexpected log file: %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug entry leaked at info level")
	}
}

func TestNew_UnknownLevelMeansError(t *testing.T) {
	log, err := New("verbose", FileOptions{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if log.Core().Enabled(zap.WarnLevel) || !log.Core().Enabled(zap.ErrorLevel) {
		t.Fatalf("unknown level must map to error")
	}
}
