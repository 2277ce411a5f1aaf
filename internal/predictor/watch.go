package predictor

import (
	"context"

	"github.com/fsnotify/fsnotify"

	"github.com/jdsanc/mt-nir/internal/infrastructure/logging"
	apperrors "github.com/jdsanc/mt-nir/pkg/errors"
)

// CheckpointWatcher reports filesystem changes under the models path so that
// long-running serve deployments notice checkpoint swaps.  It only observes
// and logs; the predictor keeps using the same path, and operators decide
// whether to restart.  Best-effort: watcher failures degrade to a warning.
type CheckpointWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	logger  logging.Logger
}

// NewCheckpointWatcher starts watching modelsPath.
func NewCheckpointWatcher(modelsPath string, logger logging.Logger) (*CheckpointWatcher, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "creating checkpoint watcher")
	}
	if err := w.Add(modelsPath); err != nil {
		_ = w.Close()
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "watching models path")
	}

	return &CheckpointWatcher{
		watcher: w,
		path:    modelsPath,
		logger:  logger.Named("checkpoint-watch"),
	}, nil
}

// Run consumes watcher events until ctx is cancelled, then closes the
// underlying watcher.  Intended to run in its own goroutine.
func (cw *CheckpointWatcher) Run(ctx context.Context) {
	defer func() {
		if err := cw.watcher.Close(); err != nil {
			cw.logger.Warn("closing checkpoint watcher", logging.Err(err))
		}
	}()

	cw.logger.Info("watching checkpoint directory", logging.String("path", cw.path))

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			cw.logger.Warn("checkpoint directory changed; restart to pick up new weights",
				logging.String("op", ev.Op.String()),
				logging.String("name", ev.Name),
			)
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.logger.Warn("checkpoint watcher error", logging.Err(err))
		}
	}
}
