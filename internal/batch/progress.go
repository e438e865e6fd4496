package batch

import (
	"sync/atomic"

	"github.com/five82/audioprobe/internal/logging"
	"github.com/five82/audioprobe/internal/reporter"
)

// noticeBuffer bounds queued failure notices. Notices beyond it are dropped
// rather than stalling a probe; the final report still lists every failure.
const noticeBuffer = 256

// progressTee forwards snapshots and failure notices to a reporter on its
// own goroutine. Producers never block: a pending snapshot that has not
// been rendered yet is replaced by the newer one.
type progressTee struct {
	rep       reporter.Reporter
	log       *logging.Logger
	snapshots chan reporter.ProgressSnapshot
	notices   chan reporter.FailureNotice
	done      chan struct{}
	dropped   atomic.Int64
}

func newProgressTee(rep reporter.Reporter, log *logging.Logger) *progressTee {
	t := &progressTee{
		rep:       rep,
		log:       log,
		snapshots: make(chan reporter.ProgressSnapshot, 1),
		notices:   make(chan reporter.FailureNotice, noticeBuffer),
		done:      make(chan struct{}),
	}
	go t.run()
	return t
}

func (t *progressTee) run() {
	defer close(t.done)
	snapshots, notices := t.snapshots, t.notices
	for snapshots != nil || notices != nil {
		select {
		case snap, ok := <-snapshots:
			if !ok {
				snapshots = nil
				continue
			}
			t.rep.FileProgress(snap)
		case n, ok := <-notices:
			if !ok {
				notices = nil
				continue
			}
			t.rep.FileFailed(n)
		}
	}
}

// publish offers snap without blocking, replacing any unconsumed snapshot.
func (t *progressTee) publish(snap reporter.ProgressSnapshot) {
	select {
	case t.snapshots <- snap:
		return
	default:
	}
	select {
	case <-t.snapshots:
	default:
	}
	select {
	case t.snapshots <- snap:
	default:
		// Another producer refilled the slot; the reporter keeps the max.
	}
}

// notify queues a failure notice without blocking.
func (t *progressTee) notify(n reporter.FailureNotice) {
	select {
	case t.notices <- n:
	default:
		t.dropped.Add(1)
	}
}

// close delivers final as the last snapshot and waits for the consumer to
// drain. It must be called after every producer has returned.
func (t *progressTee) close(final reporter.ProgressSnapshot) {
	t.publish(final)
	close(t.snapshots)
	close(t.notices)
	<-t.done
	if n := t.dropped.Load(); n > 0 {
		t.log.Debug("failure notices dropped", "count", n)
	}
}
