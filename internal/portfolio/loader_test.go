package portfolio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/ecodash/internal/errors"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "targets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_EmptyPathReturnsDefault(t *testing.T) {
	t.Parallel()
	b, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), b)
}

func TestLoad_Targets(t *testing.T) {
	t.Parallel()
	path := writeFile(t, `
title: Green Fund
currency: eur
duration_ms: 800
value_change_pct: 3.2
targets:
  - id: esg
    label: ESG
    kind: score
    end: 91
  - id: aum
    kind: currency
    start: 1000
    end: 250000
    duration_ms: 2000
  - id: holdings
    end: 42
    duration_ms: 0
`)

	b, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Green Fund", b.Title)
	assert.Equal(t, "EUR", b.Currency)
	assert.True(t, b.Profit())
	require.Len(t, b.Metrics, 3)

	esg := b.Metrics[0]
	assert.Equal(t, "ESG", esg.Label)
	assert.Equal(t, 91.0, esg.End)
	assert.Equal(t, 800*time.Millisecond, esg.Duration)
	assert.Equal(t, GroupScores, esg.Group)

	aum := b.Metrics[1]
	assert.Equal(t, 1000.0, aum.Start)
	assert.Equal(t, 2*time.Second, aum.Duration)
	assert.Equal(t, GroupValue, aum.Group)

	holdings := b.Metrics[2]
	assert.Equal(t, "holdings", holdings.Label)
	assert.Equal(t, KindCount, holdings.Kind)
	assert.Equal(t, time.Duration(0), holdings.Duration)
}

func TestLoad_KeepsDefaultMetricsWithoutTargets(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "title: Quick\nduration_ms: 400\n")

	b, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Quick", b.Title)
	assert.Equal(t, "USD", b.Currency)
	require.Len(t, b.Metrics, len(Default().Metrics))
	for _, m := range b.Metrics {
		assert.Equal(t, 400*time.Millisecond, m.Duration, m.ID)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		content string
	}{
		{"duplicate ids", "targets:\n  - id: a\n    end: 1\n  - id: a\n    end: 2\n"},
		{"empty id", "targets:\n  - end: 1\n"},
		{"negative duration", "targets:\n  - id: a\n    end: 1\n    duration_ms: -5\n"},
		{"unknown kind", "targets:\n  - id: a\n    kind: gauge\n"},
		{"malformed yaml", "targets: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(writeFile(t, tt.content))
			require.Error(t, err)
			assert.True(t, apperrors.IsConfigError(err), "got %v", err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.True(t, apperrors.IsConfigError(err))
}
