package validation

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const compressedTurnFeed = `{"turn": 3, "cities": [{"city_id": "north", "contributions": [{"resource_type": "RE01", "doubled_amount": 6}]}]}`

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func zstdBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestFeedDecoder_CompressedFiles(t *testing.T) {
	dir := t.TempDir()
	d := NewFeedDecoder(NewSchemaValidator(), contributionsSchema)

	tests := []struct {
		name string
		file string
		data []byte
	}{
		{"gzip", "turn.json.gz", gzipBytes(t, []byte(compressedTurnFeed))},
		{"zstd", "turn.json.zst", zstdBytes(t, []byte(compressedTurnFeed))},
		{"plain", "turn.json", []byte(compressedTurnFeed)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			require.NoError(t, os.WriteFile(path, tt.data, 0o600))

			feed, err := d.DecodeFile(path)
			require.NoError(t, err)
			assert.True(t, feed.IsTurn)
			assert.Equal(t, 3, feed.Turn)
			require.Len(t, feed.Cities, 1)
			assert.Equal(t, "north", feed.Cities[0].CityID)
		})
	}
}

func TestFeedDecoder_CorruptArchive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "turn.json.gz")
	require.NoError(t, os.WriteFile(path, []byte("not gzip at all"), 0o600))

	_, err := NewFeedDecoder(NewSchemaValidator(), contributionsSchema).DecodeFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read feed")
}
