package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitForFileAlreadyPresent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raster.tif")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o600))

	err := WaitForFile(context.Background(), path, 10*time.Millisecond)
	assert.NoError(t, err)
}

func TestWaitForFileCreatedLater(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "raster.tif")

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = os.WriteFile(path, []byte("data"), 0o600)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := WaitForFile(ctx, path, 10*time.Millisecond)
	assert.NoError(t, err)
}

func TestWaitForFileContextCancelled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "never.tif")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := WaitForFile(ctx, path, 10*time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
