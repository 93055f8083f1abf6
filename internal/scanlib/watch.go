package scanlib

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch refreshes the library whenever the scans directory changes,
// debouncing bursts (scan exports write many files). Blocks until ctx is
// cancelled.
func (l *Library) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("scanlib: watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(l.scansDir); err != nil {
		return fmt.Errorf("scanlib: watch %s: %w", l.scansDir, err)
	}

	const debounce = 500 * time.Millisecond
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Op.Has(fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
			} else {
				// Drain a fired-but-unread tick so Reset cannot
				// deliver a stale one early.
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("scanlib: watch error: %v", err)
		case <-timerC:
			timer = nil
			timerC = nil
			if err := l.Refresh(); err != nil {
				log.Printf("scanlib: refresh: %v", err)
			}
		}
	}
}
