// Package ee is a minimal client for the Google Earth Engine REST API
// (v1). It covers the three calls the extraction stage needs: listing
// features from a table asset, starting Drive export jobs for images and
// tables, and polling the resulting long-running operations.
//
// Authentication uses Application Default Credentials. Requests are rate
// limited client-side and API errors are mapped onto sentinel errors so
// callers can branch without inspecting HTTP status codes.
package ee
