package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/civitas/civitas-reader/internal/model"
)

func TestNewWithLevel(t *testing.T) {
	logger, err := NewWithLevel(" DEBUG ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !logger.Core().Enabled(zap.DebugLevel) {
		t.Error("Expected debug level to be enabled")
	}
}

func TestNewWithLevelInvalidFallsBack(t *testing.T) {
	logger, err := NewWithLevel("loud")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if logger.Core().Enabled(zap.DebugLevel) {
		t.Error("Expected debug level to be disabled by default")
	}
	if !logger.Core().Enabled(zap.InfoLevel) {
		t.Error("Expected info level to be enabled by default")
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Error("Expected no-op logger for nil")
	}
	logger := zap.NewExample()
	if OrNop(logger) != logger {
		t.Error("Expected the given logger back")
	}
}

func TestQueryFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	q := model.Query{Category: "poetry", Sort: model.SortByReleaseDate, SearchTerm: "odes"}
	logger.Info("request", QueryFields(q)...)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["query.category"] != "poetry" || fields["query.sort"] != "2" || fields["query.search"] != "odes" {
		t.Errorf("Unexpected fields: %v", fields)
	}
}
