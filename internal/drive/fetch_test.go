package drive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListQuery(t *testing.T) {
	q := listQuery("water_class_raster", "")
	assert.Equal(t, "name contains 'water_class_raster' and trashed = false", q)
}

func TestListQueryWithParent(t *testing.T) {
	q := listQuery("water_class_raster", "folder123")
	assert.Contains(t, q, "'folder123' in parents")
}

func TestFolderQuery(t *testing.T) {
	q := folderQuery("watermap-exports")
	assert.Contains(t, q, "mimeType = 'application/vnd.google-apps.folder'")
	assert.Contains(t, q, "name = 'watermap-exports'")
	assert.Contains(t, q, "trashed = false")
}

func TestEscapeQuery(t *testing.T) {
	assert.Equal(t, `it\'s`, escapeQuery("it's"))
	assert.Equal(t, `a\\b`, escapeQuery(`a\b`))
}
