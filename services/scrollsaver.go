package services

import (
	"context"
	"log"
	"sync"
	"time"
)

type scrollKey struct {
	userID   string
	courseID string
}

type pendingScroll struct {
	offset float64
	timer  *time.Timer
}

// ScrollSaver debounces scroll-position writes: rapid updates for one
// (user, course) collapse into a single store write carrying the latest
// offset, fired after a quiet window. Detach drops a pending write when
// the reader navigates away, so no timer outlives its view.
type ScrollSaver struct {
	progress *ProgressService
	interval time.Duration
	logger   *log.Logger

	mu      sync.Mutex
	pending map[scrollKey]*pendingScroll
	closed  bool
}

func NewScrollSaver(progress *ProgressService, interval time.Duration, logger *log.Logger) *ScrollSaver {
	if interval <= 0 {
		interval = time.Second
	}
	return &ScrollSaver{
		progress: progress,
		interval: interval,
		logger:   logger,
		pending:  make(map[scrollKey]*pendingScroll),
	}
}

// Save records the offset and (re)starts the quiet window. Only the most
// recent offset seen when the window elapses is persisted.
func (s *ScrollSaver) Save(userID, courseID string, offset float64) {
	key := scrollKey{userID: userID, courseID: courseID}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if p, ok := s.pending[key]; ok {
		p.offset = offset
		p.timer.Reset(s.interval)
		return
	}
	p := &pendingScroll{offset: offset}
	p.timer = time.AfterFunc(s.interval, func() { s.flush(key) })
	s.pending[key] = p
}

// Detach cancels any pending write for the course without persisting it.
// Called on view teardown.
func (s *ScrollSaver) Detach(userID, courseID string) {
	key := scrollKey{userID: userID, courseID: courseID}

	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.pending[key]; ok {
		p.timer.Stop()
		delete(s.pending, key)
	}
}

func (s *ScrollSaver) flush(key scrollKey) {
	s.mu.Lock()
	p, ok := s.pending[key]
	if ok {
		delete(s.pending, key)
	}
	s.mu.Unlock()
	if !ok {
		return
	}
	s.write(key, p.offset)
}

func (s *ScrollSaver) write(key scrollKey, offset float64) {
	if err := s.progress.SaveScrollPosition(context.Background(), key.userID, key.courseID, offset); err != nil {
		if s.logger != nil {
			s.logger.Printf("scroll save failed for user %s course %s: %v", key.userID, key.courseID, err)
		}
	}
}

// Close stops all timers and persists whatever is still pending.
func (s *ScrollSaver) Close() {
	s.mu.Lock()
	s.closed = true
	remaining := s.pending
	s.pending = make(map[scrollKey]*pendingScroll)
	s.mu.Unlock()

	for key, p := range remaining {
		p.timer.Stop()
		s.write(key, p.offset)
	}
}
