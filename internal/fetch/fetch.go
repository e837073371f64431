// Package fetch downloads documents over HTTP.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// UserAgent identifies the tool on outbound requests. Some document hosts
// reject requests without one.
const UserAgent = "pdf-formbot/1.0 (+https://github.com/fwextensions/pdf-formbot)"

// Downloader retrieves document bytes. Redirects are followed by the
// transport's default policy; a non-success status is a terminal error for
// the document, with no retry.
type Downloader struct {
	client *http.Client
}

// NewDownloader creates a downloader backed by the given client, or
// http.DefaultClient when nil.
func NewDownloader(client *http.Client) *Downloader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Downloader{client: client}
}

// Download fetches the document at url and returns its bytes.
func (d *Downloader) Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("download failed: status %d for %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}
