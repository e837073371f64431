package oracle

import (
	"context"
	"net/url"
	"path"

	"go.uber.org/zap"

	"github.com/fwextensions/pdf-formbot/internal/classify"
)

// Classify runs the full oracle pipeline for one document: upload, wait
// for ingest, ask the instruction, parse and normalize the reply. It never
// returns an error past this boundary; every failure becomes a record with
// ErrorMessage set and the IsForm error sentinel.
func (c *Client) Classify(ctx context.Context, docURL string, data []byte, instruction string) classify.MachineRecord {
	rec, err := c.classify(ctx, docURL, data, instruction)
	if err != nil {
		c.logger.Warn("classification failed",
			zap.String("url", docURL),
			zap.Error(err))
		return classify.ErrorRecord(docURL, err)
	}
	return rec
}

func (c *Client) classify(ctx context.Context, docURL string, data []byte, instruction string) (classify.MachineRecord, error) {
	file, err := c.uploadFile(ctx, data, displayName(docURL), "application/pdf")
	if err != nil {
		return classify.MachineRecord{}, err
	}
	defer c.cleanup(file.Name)

	file, err = c.awaitActive(ctx, file)
	if err != nil {
		return classify.MachineRecord{}, err
	}

	reply, err := c.generate(ctx, file, instruction)
	if err != nil {
		return classify.MachineRecord{}, err
	}

	fields, err := ParseReply(reply)
	if err != nil {
		return classify.MachineRecord{}, err
	}

	return classify.Normalize(docURL, fields), nil
}

// cleanup deletes the transient upload. Failures do not affect the
// produced record, so they are logged and swallowed. A fresh context keeps
// cleanup working even when the document's context was cancelled.
func (c *Client) cleanup(name string) {
	if name == "" {
		return
	}
	if err := c.deleteFile(context.Background(), name); err != nil {
		c.logger.Debug("cleanup of uploaded file failed",
			zap.String("name", name),
			zap.Error(err))
	}
}

// displayName derives a human-readable upload name from the document URL.
func displayName(docURL string) string {
	if u, err := url.Parse(docURL); err == nil {
		if base := path.Base(u.Path); base != "." && base != "/" && base != "" {
			return base
		}
	}
	return "document.pdf"
}
