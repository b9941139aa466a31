// Package drive locates finished exports in Google Drive and downloads
// them. Earth Engine may shard a large export into several files sharing
// the filename prefix; all shards are fetched.
package drive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/openhydro/watermap-cli/internal/domain"
	"github.com/openhydro/watermap-cli/internal/logger"
)

const folderMimeType = "application/vnd.google-apps.folder"

// Scopes required to list and download export files.
var Scopes = []string{drive.DriveReadonlyScope}

// Fetcher downloads export files from Drive.
type Fetcher struct {
	svc     *drive.Service
	limiter *rate.Limiter
}

// NewFetcher creates a Fetcher using Application Default Credentials.
func NewFetcher(ctx context.Context) (*Fetcher, error) {
	ts, err := google.DefaultTokenSource(ctx, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNoCredentials, err)
	}
	return NewFetcherWithTokenSource(ctx, ts)
}

// NewFetcherWithTokenSource creates a Fetcher with an explicit token
// source.
func NewFetcherWithTokenSource(ctx context.Context, ts oauth2.TokenSource) (*Fetcher, error) {
	svc, err := drive.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("creating drive service: %w", err)
	}
	// Google allows 10 requests/sec/user; stay under it.
	return &Fetcher{svc: svc, limiter: rate.NewLimiter(8, 10)}, nil
}

// FindExports lists non-trashed files whose names start with prefix,
// optionally restricted to a named folder.
func (f *Fetcher) FindExports(ctx context.Context, prefix, folder string) ([]*drive.File, error) {
	if prefix == "" {
		return nil, fmt.Errorf("%w: empty filename prefix", domain.ErrInvalidInput)
	}

	var parent string
	if folder != "" {
		id, err := f.findFolder(ctx, folder)
		if err != nil {
			return nil, err
		}
		parent = id
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	call := f.svc.Files.List().
		Q(listQuery(prefix, parent)).
		Fields("files(id, name, size, mimeType, modifiedTime)").
		PageSize(100).
		Context(ctx)

	res, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("listing exports: %w", err)
	}

	// The "contains" operator matches anywhere in some corpora; keep only
	// true prefix matches.
	var files []*drive.File
	for _, file := range res.Files {
		if strings.HasPrefix(file.Name, prefix) {
			files = append(files, file)
		}
	}
	return files, nil
}

// Download streams one file into destDir, returning the local path.
func (f *Fetcher) Download(ctx context.Context, file *drive.File, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0700); err != nil {
		return "", fmt.Errorf("creating download directory: %w", err)
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}

	resp, err := f.svc.Files.Get(file.Id).Context(ctx).Download()
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", file.Name, err)
	}
	defer resp.Body.Close()

	dest := filepath.Join(destDir, filepath.Base(file.Name))
	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", dest, err)
	}

	n, err := io.Copy(out, resp.Body)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("writing %s: %w", dest, err)
	}

	logger.Debugf("drive: downloaded %s (%d bytes)", dest, n)
	return dest, nil
}

// findFolder resolves a folder name to its ID.
func (f *Fetcher) findFolder(ctx context.Context, name string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}

	res, err := f.svc.Files.List().
		Q(folderQuery(name)).
		Fields("files(id, name)").
		PageSize(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("resolving folder %q: %w", name, err)
	}
	if len(res.Files) == 0 {
		return "", fmt.Errorf("%w: drive folder %q", domain.ErrNotFound, name)
	}
	return res.Files[0].Id, nil
}

// listQuery builds the Files.List query for export shards.
func listQuery(prefix, parentID string) string {
	q := fmt.Sprintf("name contains '%s' and trashed = false", escapeQuery(prefix))
	if parentID != "" {
		q += fmt.Sprintf(" and '%s' in parents", escapeQuery(parentID))
	}
	return q
}

// folderQuery builds the Files.List query for a folder by name.
func folderQuery(name string) string {
	return fmt.Sprintf("mimeType = '%s' and name = '%s' and trashed = false",
		folderMimeType, escapeQuery(name))
}

// escapeQuery escapes single quotes and backslashes for Drive query
// string literals.
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
