package persist

import (
	"context"

	"gofo-dispatch/internal/domain"
	"gofo-dispatch/internal/logx"
)

type fileStore interface {
	Save(domain.Snapshot) error
}

// Saver decouples snapshot writes from the request path. Enqueue never
// blocks: the channel holds one pending snapshot and a newer one replaces
// it, so only the latest state reaches disk.
type Saver struct {
	store  fileStore
	logger logx.Logger
	ch     chan domain.Snapshot
}

// NewSaver creates a Saver over the given file store.
func NewSaver(store fileStore, logger logx.Logger) *Saver {
	return &Saver{
		store:  store,
		logger: logger,
		ch:     make(chan domain.Snapshot, 1),
	}
}

// Enqueue schedules a snapshot for writing, replacing any pending one.
func (s *Saver) Enqueue(snap domain.Snapshot) {
	for {
		select {
		case s.ch <- snap:
			return
		default:
		}
		select {
		case <-s.ch:
		default:
		}
	}
}

// Run writes queued snapshots until the context is canceled. On shutdown a
// final pending snapshot, if any, is flushed.
func (s *Saver) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			select {
			case snap := <-s.ch:
				s.save(snap)
			default:
			}
			return
		case snap := <-s.ch:
			s.save(snap)
		}
	}
}

func (s *Saver) save(snap domain.Snapshot) {
	if err := s.store.Save(snap); err != nil {
		s.logger.Error("persist snapshot", logx.Any("err", err))
		return
	}
	s.logger.Debug("snapshot persisted",
		logx.Int("drivers", len(snap.Drivers)),
		logx.Int("orders", len(snap.Orders)),
		logx.Int("assignments", len(snap.Assignments)),
	)
}
