package service

import (
	"sync"
	"time"
)

// Level classifies a notice for display.
type Level int

const (
	LevelInfo Level = iota
	LevelError
)

// Notice is one user-visible notification line.
type Notice struct {
	Time  time.Time
	Level Level
	Text  string
}

const defaultNoticeCapacity = 50

// Notices is a fixed-capacity, newest-first feed of user-visible
// notifications. Mutations post here on success and failure, and the push
// listener posts here for events caused by other users. Safe for
// concurrent use.
type Notices struct {
	mu      sync.Mutex
	max     int
	notices []Notice
}

// NewNotices returns a feed keeping at most the given number of entries;
// zero or negative means the default capacity.
func NewNotices(capacity int) *Notices {
	if capacity <= 0 {
		capacity = defaultNoticeCapacity
	}
	return &Notices{max: capacity}
}

// Post prepends a notice, evicting the oldest entry beyond capacity.
func (n *Notices) Post(level Level, text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append([]Notice{{Time: time.Now(), Level: level, Text: text}}, n.notices...)
	if len(n.notices) > n.max {
		n.notices = n.notices[:n.max]
	}
}

// All returns a copy of the feed, newest first.
func (n *Notices) All() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.notices) == 0 {
		return nil
	}
	dup := make([]Notice, len(n.notices))
	copy(dup, n.notices)
	return dup
}

// Latest returns the newest notice, if any.
func (n *Notices) Latest() (Notice, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.notices) == 0 {
		return Notice{}, false
	}
	return n.notices[0], true
}
