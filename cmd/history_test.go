package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/syndrdb/quill/internal/history"
)

func TestFormatHistoryEntry_ValidStatement(t *testing.T) {
	got := formatHistoryEntry(history.Entry{
		Text:       "SHOW DATABASES;",
		Rule:       "SHOW DATABASES",
		Valid:      true,
		ErrorCount: 0,
		ExecutedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	})

	assert.Contains(t, got, "SHOW DATABASES")
	assert.Contains(t, got, "✓")
	assert.NotContains(t, got, "error")
}

func TestFormatHistoryEntry_InvalidStatement(t *testing.T) {
	got := formatHistoryEntry(history.Entry{
		Text:       "SELEC DOCUMENTS FROM BUNDLE \"users\";",
		Valid:      false,
		ErrorCount: 2,
		ExecutedAt: time.Now(),
	})

	assert.Contains(t, got, "✗ 2 error(s)")
	assert.Contains(t, got, "UNKNOWN")
}

func TestFormatHistoryEntry_CollapsesWhitespace(t *testing.T) {
	got := formatHistoryEntry(history.Entry{
		Text:       "SELECT DOCUMENTS\n  FROM BUNDLE \"users\"\n  WHERE age > 30;",
		Rule:       "SELECT DOCUMENTS",
		Valid:      true,
		ExecutedAt: time.Now(),
	})

	assert.Contains(t, got, `SELECT DOCUMENTS FROM BUNDLE "users" WHERE age > 30;`)
	assert.NotContains(t, got, "\n")
}
