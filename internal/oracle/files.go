package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// uploadFile pushes document bytes to the Gemini Files API using the
// resumable upload protocol: a start request that yields a session URL,
// then a single upload+finalize request with the payload.
func (c *Client) uploadFile(ctx context.Context, data []byte, displayName, mimeType string) (geminiFile, error) {
	if mimeType == "" {
		mimeType = "application/pdf"
	}
	size := len(data)

	uploadBase := strings.Replace(c.baseURL, "/v1beta", "/upload/v1beta", 1)
	url := fmt.Sprintf("%s/files?key=%s", uploadBase, c.apiKey)

	metadata := map[string]any{
		"file": map[string]string{
			"displayName": displayName,
		},
	}
	jsonMeta, err := json.Marshal(metadata)
	if err != nil {
		return geminiFile{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonMeta))
	if err != nil {
		return geminiFile{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Upload-Protocol", "resumable")
	req.Header.Set("X-Goog-Upload-Command", "start")
	req.Header.Set("X-Goog-Upload-Header-Content-Length", fmt.Sprintf("%d", size))
	req.Header.Set("X-Goog-Upload-Header-Content-Type", mimeType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return geminiFile{}, fmt.Errorf("upload start request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return geminiFile{}, fmt.Errorf("upload start failed (status %d): %s", resp.StatusCode, body)
	}

	uploadURL := resp.Header.Get("X-Goog-Upload-URL")
	if uploadURL == "" {
		return geminiFile{}, fmt.Errorf("no upload URL returned in headers")
	}

	reqUpload, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(data))
	if err != nil {
		return geminiFile{}, err
	}
	reqUpload.Header.Set("Content-Length", fmt.Sprintf("%d", size))
	reqUpload.Header.Set("X-Goog-Upload-Offset", "0")
	reqUpload.Header.Set("X-Goog-Upload-Command", "upload, finalize")

	respUpload, err := c.httpClient.Do(reqUpload)
	if err != nil {
		return geminiFile{}, fmt.Errorf("upload data failed: %w", err)
	}
	defer respUpload.Body.Close()

	if respUpload.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(respUpload.Body)
		return geminiFile{}, fmt.Errorf("upload finalization failed (status %d): %s", respUpload.StatusCode, body)
	}

	var result geminiUploadResponse
	if err := json.NewDecoder(respUpload.Body).Decode(&result); err != nil {
		return geminiFile{}, fmt.Errorf("failed to parse upload response: %w", err)
	}
	if result.File.URI == "" {
		return geminiFile{}, fmt.Errorf("no file uri found in upload response")
	}

	c.logger.Debug("uploaded document to oracle",
		zap.String("name", result.File.Name),
		zap.String("state", result.File.State),
		zap.Int("bytes", size))
	return result.File, nil
}

// getFile fetches the current file resource, used to poll ingest state.
func (c *Client) getFile(ctx context.Context, name string) (geminiFile, error) {
	if !strings.HasPrefix(name, "files/") {
		name = "files/" + name
	}

	url := fmt.Sprintf("%s/%s?key=%s", c.baseURL, name, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return geminiFile{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return geminiFile{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return geminiFile{}, fmt.Errorf("get file failed with status %d", resp.StatusCode)
	}

	var file geminiFile
	if err := json.NewDecoder(resp.Body).Decode(&file); err != nil {
		return geminiFile{}, err
	}
	return file, nil
}

// awaitActive polls the uploaded file until the service finishes ingesting
// it. The loop is not a retry of a failed call: it waits out an explicitly
// reported in-progress state, bounded by the configured attempt count.
func (c *Client) awaitActive(ctx context.Context, file geminiFile) (geminiFile, error) {
	for attempt := 1; attempt <= c.pollAttempts; attempt++ {
		switch file.State {
		case fileStateActive:
			return file, nil
		case fileStateFailed:
			msg := "oracle reported file processing failed"
			if file.Error != nil && file.Error.Message != "" {
				msg = fmt.Sprintf("%s: %s", msg, file.Error.Message)
			}
			return geminiFile{}, fmt.Errorf("%s", msg)
		}

		c.logger.Debug("waiting for oracle to process document",
			zap.String("name", file.Name),
			zap.String("state", file.State),
			zap.Int("attempt", attempt))

		select {
		case <-ctx.Done():
			return geminiFile{}, ctx.Err()
		case <-time.After(c.pollDelay):
		}

		next, err := c.getFile(ctx, file.Name)
		if err != nil {
			return geminiFile{}, fmt.Errorf("poll file state: %w", err)
		}
		file = next
	}

	return geminiFile{}, fmt.Errorf("file still %s after %d polls", file.State, c.pollAttempts)
}

// deleteFile removes an uploaded file. Callers treat failures as
// best-effort cleanup and only log them.
func (c *Client) deleteFile(ctx context.Context, name string) error {
	if !strings.HasPrefix(name, "files/") {
		name = "files/" + name
	}

	url := fmt.Sprintf("%s/%s?key=%s", c.baseURL, name, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("delete file failed with status %d", resp.StatusCode)
	}
	return nil
}
