// Package batch drives the strictly sequential classification loop:
// exactly one document in flight at any time, with a fixed courtesy delay
// between documents.
package batch

import (
	"context"

	"go.uber.org/zap"

	"github.com/fwextensions/pdf-formbot/internal/classify"
)

// Downloader retrieves a document's bytes.
type Downloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

// Classifier turns document bytes into a machine record. Implementations
// must not fail past their boundary; errors travel inside the record.
type Classifier interface {
	Classify(ctx context.Context, url string, data []byte, instruction string) classify.MachineRecord
}

// Runner processes a URL list one document at a time.
type Runner struct {
	downloader  Downloader
	classifier  Classifier
	instruction string
	throttle    *Throttle
	logger      *zap.Logger
}

// NewRunner wires the batch loop. A nil logger is replaced with a no-op
// logger.
func NewRunner(d Downloader, c Classifier, instruction string, throttle *Throttle, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		downloader:  d,
		classifier:  c,
		instruction: instruction,
		throttle:    throttle,
		logger:      logger,
	}
}

// Run classifies every URL in order and returns one record per URL.
// Per-document failures become error-flagged records; the batch always
// continues to the next document. Once a document starts it runs to
// completion; cancellation is only observed between documents.
func (r *Runner) Run(ctx context.Context, urls []string) []classify.MachineRecord {
	records := make([]classify.MachineRecord, 0, len(urls))
	for i, url := range urls {
		if err := r.throttle.Wait(ctx); err != nil {
			r.logger.Warn("batch interrupted", zap.Error(err))
			break
		}

		r.logger.Info("processing document",
			zap.Int("index", i+1),
			zap.Int("total", len(urls)),
			zap.String("url", url))

		records = append(records, r.processOne(ctx, url))

		rec := records[len(records)-1]
		if rec.ErrorMessage != "" {
			r.logger.Warn("document failed",
				zap.String("url", url),
				zap.String("error", rec.ErrorMessage))
			continue
		}
		r.logger.Info("document classified",
			zap.String("url", url),
			zap.String("isForm", string(rec.IsForm)),
			zap.String("formType", string(rec.FormType)),
			zap.String("sensitive", rec.Sensitivity.Summary()))
	}
	return records
}

func (r *Runner) processOne(ctx context.Context, url string) classify.MachineRecord {
	data, err := r.downloader.Download(ctx, url)
	if err != nil {
		return classify.ErrorRecord(url, err)
	}
	return r.classifier.Classify(ctx, url, data, r.instruction)
}
