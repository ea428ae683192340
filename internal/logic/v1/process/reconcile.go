package process

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/memoirlab/memoir-api/internal/core"
	"github.com/memoirlab/memoir-api/pkg/safe"
)

const reconcileBatchSize = 50

type OrphanReconcileProcess struct {
	ctx  context.Context
	core *core.Core
}

// StartOrphanReconcile retries the removal of storage objects left behind
// by failed entry deletes. One pass at boot, then one per interval.
func StartOrphanReconcile(core *core.Core, interval time.Duration) context.CancelFunc {
	ctx, cancel := context.WithCancel(context.Background())
	p := &OrphanReconcileProcess{
		ctx:  ctx,
		core: core,
	}

	go safe.Run(func() {
		p.Flush()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.Flush()
			}
		}
	})
	return cancel
}

func (p *OrphanReconcileProcess) Flush() {
	ctx, cancel := context.WithTimeout(p.ctx, time.Second*30)
	defer cancel()

	// one pass at a time, a slow bucket must not stack passes
	if ok, err := p.core.TryLock(ctx, "orphan_reconcile"); err != nil || !ok {
		return
	}

	list, err := p.core.Store().OrphanObjectStore().List(ctx, reconcileBatchSize)
	if err != nil && err != sql.ErrNoRows {
		slog.Error("Failed to list orphan objects", slog.String("error", err.Error()))
		return
	}
	if len(list) == 0 {
		return
	}

	for _, item := range list {
		if err := p.core.FileStorage().DeleteFile(ctx, item.StoragePath); err != nil {
			slog.Error("Failed to reconcile orphan object",
				slog.String("path", item.StoragePath),
				slog.String("error", err.Error()))
			continue
		}

		if err := p.core.Store().OrphanObjectStore().Delete(ctx, item.ID); err != nil {
			slog.Error("Failed to clear orphan object row",
				slog.Int64("id", item.ID),
				slog.String("error", err.Error()))
			continue
		}
		p.core.Metrics().OrphanReconciled()
	}
}
