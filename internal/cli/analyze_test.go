package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhydro/watermap-cli/internal/config"
)

func TestBoundaryRings_MissingDefaultIsOptional(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.DownloadDir = t.TempDir()

	rings, err := boundaryRings(cfg)
	require.NoError(t, err)
	assert.Nil(t, rings)
}

func TestBoundaryRings_ExplicitPathMustExist(t *testing.T) {
	original := analyzeBoundary
	analyzeBoundary = filepath.Join(t.TempDir(), "missing.shp")
	defer func() { analyzeBoundary = original }()

	_, err := boundaryRings(config.Default())
	assert.Error(t, err)
}
