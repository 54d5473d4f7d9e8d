package arrapi

import (
	"context"
	"errors"
	"log/slog"
	"testing"
)

// levelRecorder captures every record so tests can assert log levels
type levelRecorder struct {
	records []slog.Record
}

func (h *levelRecorder) Enabled(context.Context, slog.Level) bool { return true }
func (h *levelRecorder) Handle(_ context.Context, r slog.Record) error {
	h.records = append(h.records, r)
	return nil
}
func (h *levelRecorder) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *levelRecorder) WithGroup(string) slog.Handler      { return h }

func (h *levelRecorder) countAt(level slog.Level) int {
	n := 0
	for _, r := range h.records {
		if r.Level == level {
			n++
		}
	}
	return n
}

func TestClassifyAddErrorAlreadyExistsLogsInfo(t *testing.T) {
	rec := &levelRecorder{}
	client := NewClient(ClientConfig{Name: "Radarr", BaseURL: "http://localhost", Logger: slog.New(rec)})
	defer client.Close()

	httpErr := &HTTPError{
		StatusCode: 400,
		Body:       `[{"propertyName":"TmdbId","errorMessage":"This movie has already been added"}]`,
	}
	err := client.classifyAddError(httpErr, "Fight Club")

	var exists *AlreadyExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("expected AlreadyExistsError, got %T: %v", err, err)
	}
	if got := rec.countAt(slog.LevelInfo); got != 1 {
		t.Errorf("info records = %d, want 1", got)
	}
	if got := rec.countAt(slog.LevelError); got != 0 {
		t.Errorf("error records = %d, want 0", got)
	}
}

func TestClassifyAddErrorRejectionLogsError(t *testing.T) {
	rec := &levelRecorder{}
	client := NewClient(ClientConfig{Name: "Radarr", BaseURL: "http://localhost", Logger: slog.New(rec)})
	defer client.Close()

	httpErr := &HTTPError{
		StatusCode: 400,
		Body:       `[{"propertyName":"Path","errorMessage":"Invalid path"}]`,
	}
	err := client.classifyAddError(httpErr, "Fight Club")
	if err == nil || err.Error() != "Invalid path" {
		t.Fatalf("err = %v, want Invalid path", err)
	}
	if got := rec.countAt(slog.LevelError); got != 1 {
		t.Errorf("error records = %d, want 1", got)
	}
	if got := rec.countAt(slog.LevelInfo); got != 0 {
		t.Errorf("info records = %d, want 0", got)
	}
}
