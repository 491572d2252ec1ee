// Package watch auto-ingests documents dropped into a watched directory.
package watch

import (
	"context"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/docsage/docsage/internal/assist"
	"github.com/docsage/docsage/internal/ingest"
	"github.com/docsage/docsage/internal/model"
	"github.com/docsage/docsage/internal/store"
)

// maxIngestWorkers bounds concurrent file ingestions so a bulk drop does not
// fan out into unbounded goroutines and model calls.
const maxIngestWorkers = 4

// Watcher ingests supported files as they appear in a directory.
type Watcher struct {
	fsw   *fsnotify.Watcher
	store store.Store
	svc   assist.Service
}

// New creates a Watcher. svc may be nil, in which case ingested documents
// are stored without a summary.
func New(st store.Store, svc assist.Service) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, eris.Wrap(err, "watch: create watcher")
	}
	return &Watcher{fsw: fsw, store: st, svc: svc}, nil
}

// Close releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run watches dir until ctx is cancelled, ingesting each supported file
// created there. Ingestion runs on a bounded worker group; per-file failures
// are logged and skipped.
func (w *Watcher) Run(ctx context.Context, dir string) error {
	if err := w.fsw.Add(dir); err != nil {
		return eris.Wrapf(err, "watch: add %s", dir)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxIngestWorkers)

	zap.L().Info("watching directory", zap.String("dir", dir))

	for {
		select {
		case <-ctx.Done():
			return g.Wait()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return g.Wait()
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if !ingest.Supported(event.Name) {
				continue
			}
			path := event.Name
			g.Go(func() error {
				w.ingestFile(gctx, path)
				return nil
			})

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return g.Wait()
			}
			zap.L().Warn("watch: watcher error", zap.Error(err))
		}
	}
}

// ingestFile reads, processes, optionally summarizes, and stores one file.
func (w *Watcher) ingestFile(ctx context.Context, path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		zap.L().Warn("watch: read file", zap.String("path", path), zap.Error(err))
		return
	}

	doc, err := ingest.Process(content, path)
	if err != nil {
		zap.L().Warn("watch: process file", zap.String("path", path), zap.Error(err))
		return
	}
	// Create and Write events both land here; a path-derived ID makes the
	// second ingestion an upsert instead of a duplicate document.
	doc.ID = uuid.NewSHA1(uuid.NameSpaceURL, []byte(path)).String()

	if w.svc != nil {
		if sum := w.svc.Summarize(ctx, doc.Text, 0); sum.Status == model.StatusSuccess {
			doc.Summary = sum.Summary
		}
	}

	if err := w.store.PutDocument(ctx, doc); err != nil {
		zap.L().Error("watch: store document", zap.String("path", path), zap.Error(err))
		return
	}

	zap.L().Info("document ingested",
		zap.String("path", path),
		zap.String("document_id", doc.ID),
		zap.Int("words", doc.WordCount),
	)
}
