package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, expected %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_WritesServiceAndTimestamp(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "movi", "info")
	log.Debug("hidden")
	log.Info("hello", "k", "v")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected exactly one JSON line, got %q: %v", buf.String(), err)
	}
	if entry["service"] != "movi" || entry["msg"] != "hello" || entry["k"] != "v" {
		t.Errorf("Unexpected entry %v", entry)
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Error("Expected a timestamp key")
	}
	if _, ok := entry["time"]; ok {
		t.Error("Expected time to be renamed to timestamp")
	}
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	log := newLogger(&buf, "movi", "info")

	router := gin.New()
	router.Use(RequestLogger(log))
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected one JSON line, got %q: %v", buf.String(), err)
	}
	if entry["level"] != "WARN" || entry["path"] != "/missing" || entry["status"] != float64(404) {
		t.Errorf("Unexpected request log %v", entry)
	}
}
