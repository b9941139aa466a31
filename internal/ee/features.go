package ee

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Feature is a GeoJSON feature returned by listFeatures.
type Feature struct {
	Type       string          `json:"type"`
	Geometry   json.RawMessage `json:"geometry"`
	Properties map[string]any  `json:"properties"`
}

// Property returns a string property, or "" when absent.
func (f *Feature) Property(name string) string {
	v, ok := f.Properties[name]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// FeatureList is a page of features from a table asset.
type FeatureList struct {
	Type          string    `json:"type"`
	Features      []Feature `json:"features"`
	NextPageToken string    `json:"nextPageToken,omitempty"`
}

// EqFilter builds a property equality filter expression for listFeatures.
func EqFilter(field, value string) string {
	return fmt.Sprintf("%s = %q", field, value)
}

// ListFeatures queries a table asset with an optional filter. The asset
// is a full resource name, e.g. PublicAsset("USGS/WBD/2017/HUC10").
// Only the first page is fetched; the extraction stage needs at most one
// matching feature.
func (c *Client) ListFeatures(ctx context.Context, asset, filter string, pageSize int) (*FeatureList, error) {
	q := url.Values{}
	if filter != "" {
		q.Set("filter", filter)
	}
	if pageSize > 0 {
		q.Set("pageSize", strconv.Itoa(pageSize))
	}

	var list FeatureList
	if err := c.do(ctx, http.MethodGet, asset+":listFeatures", q, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}
