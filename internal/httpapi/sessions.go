package httpapi

import (
	"sync"
	"time"

	"github.com/PoluyanbIch/GoQuizBot/internal/service"
)

const (
	defaultSessionTTL  = 2 * time.Hour
	defaultMaxSessions = 10000
)

type storedSession struct {
	sess    *service.QuizSession
	touched time.Time
}

// sessionStore keeps in-flight sessions in memory. QuizSession itself is not
// synchronized, so every access goes through with(). Sessions idle longer
// than ttl are dropped, and at most max are kept, evicting the least
// recently used.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*storedSession
	ttl      time.Duration
	max      int
	now      func() time.Time
}

func newSessionStore(ttl time.Duration, max int) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*storedSession),
		ttl:      ttl,
		max:      max,
		now:      time.Now,
	}
}

func (s *sessionStore) add(sess *service.QuizSession) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)
	for s.max > 0 && len(s.sessions) >= s.max {
		s.evictOldestLocked()
	}
	s.sessions[sess.ID] = &storedSession{sess: sess, touched: now}
}

func (s *sessionStore) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// with runs fn on the session while holding the store lock. It reports false
// when there is no such session or it has expired.
func (s *sessionStore) with(id string, fn func(*service.QuizSession)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, ok := s.sessions[id]
	if !ok {
		return false
	}
	if s.expired(entry, now) {
		delete(s.sessions, id)
		return false
	}
	entry.touched = now
	fn(entry.sess)
	return true
}

func (s *sessionStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *sessionStore) expired(entry *storedSession, now time.Time) bool {
	return s.ttl > 0 && now.Sub(entry.touched) > s.ttl
}

func (s *sessionStore) sweepLocked(now time.Time) {
	for id, entry := range s.sessions {
		if s.expired(entry, now) {
			delete(s.sessions, id)
		}
	}
}

func (s *sessionStore) evictOldestLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, entry := range s.sessions {
		if oldestID == "" || entry.touched.Before(oldest) {
			oldestID, oldest = id, entry.touched
		}
	}
	delete(s.sessions, oldestID)
}
