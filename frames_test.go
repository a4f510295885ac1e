package balltrack

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFrames creates empty placeholder frame files in dir
func writeFrames(t *testing.T, dir string, names ...string) {
	t.Helper()

	for _, name := range names {
		err := os.WriteFile(filepath.Join(dir, name), []byte{}, 0644)
		require.NoError(t, err)
	}
}

func TestFrameSourceOrdering(t *testing.T) {

	dir := t.TempDir()

	// deliberately out of lexical order, image10 sorts before image2
	// unless numeric ordering is applied
	writeFrames(t, dir, "image10.png", "image2.png", "image1.png")

	src, err := NewFrameSource(dir, 0.04)
	require.NoError(t, err)

	frames := src.Frames()
	require.Len(t, frames, 3)

	assert.Equal(t, 1, frames[0].Number)
	assert.Equal(t, 2, frames[1].Number)
	assert.Equal(t, 10, frames[2].Number)

	// first frame has no elapsed time, remainder use the fixed period
	assert.Equal(t, 0.0, frames[0].DT)
	assert.Equal(t, 0.04, frames[1].DT)
	assert.Equal(t, 0.04, frames[2].DT)
}

func TestFrameSourceTimestamps(t *testing.T) {

	dir := t.TempDir()
	writeFrames(t, dir, "image1.png", "image2.png", "image3.png")

	ts := `{"frames":[{"pkt_pts_time":"0.00"},{"pkt_pts_time":"0.04"},` +
		`{"pkt_pts_time":"0.12"}]}`
	err := os.WriteFile(filepath.Join(dir, "timestamps.json"), []byte(ts), 0644)
	require.NoError(t, err)

	src, err := NewFrameSource(dir, 0)
	require.NoError(t, err)

	frames := src.Frames()
	require.Len(t, frames, 3)

	assert.Equal(t, 0.0, frames[0].DT)
	assert.InDelta(t, 0.04, frames[1].DT, 1e-9)
	assert.InDelta(t, 0.08, frames[2].DT, 1e-9)
}

func TestFrameSourceErrors(t *testing.T) {

	t.Run("empty folder", func(t *testing.T) {
		_, err := NewFrameSource(t.TempDir(), 0.04)
		assert.Error(t, err)
	})

	t.Run("unparsable filename", func(t *testing.T) {
		dir := t.TempDir()
		writeFrames(t, dir, "image1.png", "snapshot.png")

		_, err := NewFrameSource(dir, 0.04)
		assert.Error(t, err)
	})

	t.Run("missing timestamps", func(t *testing.T) {
		dir := t.TempDir()
		writeFrames(t, dir, "image1.png")

		_, err := NewFrameSource(dir, 0)
		assert.Error(t, err)
	})
}

func TestFrameSourceSlice(t *testing.T) {

	dir := t.TempDir()
	writeFrames(t, dir, "image1.png", "image2.png", "image3.png",
		"image4.png", "image5.png")

	src, err := NewFrameSource(dir, 0.04)
	require.NoError(t, err)

	assert.Equal(t, 5, src.Len())

	part := src.Slice(1, 3)
	require.Len(t, part, 3)
	assert.Equal(t, 2, part[0].Number)
	assert.Equal(t, 4, part[2].Number)

	// negative end runs to the last frame
	tail := src.Slice(3, -1)
	require.Len(t, tail, 2)
	assert.Equal(t, 5, tail[1].Number)

	assert.Nil(t, src.Slice(4, 2))
}
