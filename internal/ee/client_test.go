package ee

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhydro/watermap-cli/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(context.Background(), "test-project",
		WithBaseURL(srv.URL),
		WithHTTPClient(srv.Client()),
		WithRateLimit(RateLimitConfig{RequestsPerSecond: 1000, BurstSize: 1000}),
	)
	require.NoError(t, err)
	return c
}

func TestNewClientRequiresProject(t *testing.T) {
	_, err := NewClient(context.Background(), "", WithHTTPClient(http.DefaultClient))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListFeatures(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/projects/earthengine-public/assets/USGS/WBD/2017/HUC10:listFeatures", r.URL.Path)
		assert.Equal(t, `huc10 = "1019000101"`, r.URL.Query().Get("filter"))
		assert.Equal(t, "1", r.URL.Query().Get("pageSize"))

		_, _ = w.Write([]byte(`{
			"type": "FeatureCollection",
			"features": [{
				"type": "Feature",
				"geometry": {"type": "Polygon", "coordinates": []},
				"properties": {"huc10": "1019000101", "name": "Upper Basin"}
			}]
		}`))
	})

	list, err := c.ListFeatures(context.Background(),
		PublicAsset("USGS/WBD/2017/HUC10"), EqFilter("huc10", "1019000101"), 1)
	require.NoError(t, err)
	require.Len(t, list.Features, 1)
	assert.Equal(t, "Upper Basin", list.Features[0].Property("name"))
	assert.Empty(t, list.Features[0].Property("missing"))
}

func TestExportImageToDrive(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/projects/test-project/image:export", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body, "expression")
		// int64 fields travel as strings.
		assert.Equal(t, "1000000000", body["maxPixels"])

		_, _ = w.Write([]byte(`{
			"name": "projects/test-project/operations/ABC123",
			"metadata": {"state": "PENDING", "description": "water_class_raster"}
		}`))
	})

	b := NewBuilder()
	expr := b.Build(b.Image("JRC/GSW1_4/YearlyHistory/2020"))

	op, err := c.ExportImageToDrive(context.Background(), &ImageExportRequest{
		Expression:  expr,
		Description: "water_class_raster",
		FileExportOptions: &ImageFileExportOptions{
			FileFormat:       FormatGeoTIFF,
			DriveDestination: &DriveDestination{FilenamePrefix: "water_class_raster"},
		},
		MaxPixels: 1e9,
		Grid:      GridForScale(30),
	})
	require.NoError(t, err)
	assert.Equal(t, "projects/test-project/operations/ABC123", op.Name)
	assert.Equal(t, domain.JobStatePending, op.JobState())
}

func TestGetOperation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/projects/test-project/operations/ABC123", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"name": "projects/test-project/operations/ABC123",
			"done": true,
			"metadata": {"state": "SUCCEEDED"}
		}`))
	})

	op, err := c.GetOperation(context.Background(), "projects/test-project/operations/ABC123")
	require.NoError(t, err)
	assert.True(t, op.Done)
	assert.Equal(t, domain.JobStateSucceeded, op.JobState())
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{"unauthorised", http.StatusUnauthorized, IsUnauthorized},
		{"not found", http.StatusNotFound, IsNotFound},
		{"rate limited", http.StatusTooManyRequests, IsRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error": {"code": ` + strconv.Itoa(tt.status) + `, "message": "nope"}}`))
			})

			_, err := c.ListFeatures(context.Background(), PublicAsset("X/Y"), "", 0)
			require.Error(t, err)
			assert.True(t, tt.check(err))
		})
	}
}

func TestOperationFailureState(t *testing.T) {
	op := &Operation{
		Name:  "projects/p/operations/x",
		Done:  true,
		Error: &OperationError{Code: 3, Message: "Export too large"},
	}
	assert.Equal(t, domain.JobStateFailed, op.JobState())
	assert.Equal(t, "Export too large", op.ErrorMessage())
}
