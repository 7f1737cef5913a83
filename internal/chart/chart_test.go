package chart

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapsheet-dev/tapsheet/internal/model"
)

func buckets() []model.TimeBucket {
	return []model.TimeBucket{
		{Start: time.Date(2024, 1, 3, 14, 0, 0, 0, time.UTC), Total: decimal.RequireFromString("25.00")},
		{Start: time.Date(2024, 1, 3, 14, 30, 0, 0, time.UTC), Total: decimal.RequireFromString("5.00")},
	}
}

func TestRenderProducesPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, buckets(), "€"))

	// PNG magic bytes.
	require.Greater(t, buf.Len(), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, buf.Bytes()[:4])
}

func TestRenderNoBuckets(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Render(&buf, nil, "€"))
}

func TestRenderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buckets.png")
	require.NoError(t, RenderFile(path, buckets(), "€"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRenderFileNoBucketsIsNoOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buckets.png")
	require.NoError(t, RenderFile(path, nil, "€"))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
