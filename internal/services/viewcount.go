package services

import (
	"log"
	"sync"
	"time"

	"gorm.io/gorm"

	"clawdex/internal/db"
	"clawdex/internal/models"
)

// ViewCounter batches view-count increments so a burst of page loads turns
// into one UPDATE per platform per flush window. Recording never blocks a
// request and never surfaces an error; a failed flush is logged and the
// batch dropped. The displayed count is whatever the page render loaded, so
// there is nothing to roll back.
type ViewCounter struct {
	mu       sync.Mutex
	pending  map[uint]int
	flush    func(counts map[uint]int) error
	interval time.Duration
}

var (
	viewCounter *ViewCounter
	viewOnce    sync.Once
)

// GetViewCounter returns the singleton counter, starting its worker on
// first use.
func GetViewCounter() *ViewCounter {
	viewOnce.Do(func() {
		viewCounter = newViewCounter(flushViewCounts, 30*time.Second)
		go viewCounter.worker()
	})
	return viewCounter
}

func newViewCounter(flush func(map[uint]int) error, interval time.Duration) *ViewCounter {
	return &ViewCounter{
		pending:  make(map[uint]int),
		flush:    flush,
		interval: interval,
	}
}

// Record notes one view of a platform. Fire-and-forget.
func (s *ViewCounter) Record(platformID uint) {
	s.mu.Lock()
	s.pending[platformID]++
	s.mu.Unlock()
}

func (s *ViewCounter) worker() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for range ticker.C {
		s.flushPending()
	}
}

func (s *ViewCounter) flushPending() {
	s.mu.Lock()
	if len(s.pending) == 0 {
		s.mu.Unlock()
		return
	}
	batch := s.pending
	s.pending = make(map[uint]int)
	s.mu.Unlock()

	if err := s.flush(batch); err != nil {
		log.Printf("view count flush failed: %v", err)
	}
}

func flushViewCounts(counts map[uint]int) error {
	for id, n := range counts {
		if err := db.DB.Model(&models.Platform{}).
			Where("id = ?", id).
			UpdateColumn("view_count", gorm.Expr("view_count + ?", n)).
			Error; err != nil {
			return err
		}
	}
	return nil
}
