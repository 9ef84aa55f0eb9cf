// Package notice carries short user-facing messages ("Added to cart") from
// the cart to whatever displays them. Delivery is fire-and-forget.
package notice

import (
	"sync"

	"github.com/sirupsen/logrus"
)

type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Notifier receives notices. Implementations must not block.
type Notifier interface {
	Notify(n Notice)
}

// Func adapts a function to Notifier.
type Func func(n Notice)

func (f Func) Notify(n Notice) { f(n) }

// Discard drops every notice.
var Discard Notifier = Func(func(Notice) {})

// Log writes every notice as an info line.
func Log(log logrus.FieldLogger) Notifier {
	return Func(func(n Notice) {
		log.WithFields(logrus.Fields{
			"title":       n.Title,
			"description": n.Description,
		}).Info("notice")
	})
}

// Multi delivers each notice to every non-nil notifier in order.
func Multi(ns ...Notifier) Notifier {
	return Func(func(n Notice) {
		for _, nt := range ns {
			if nt != nil {
				nt.Notify(n)
			}
		}
	})
}

// Recorder keeps the notices it receives.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Notices returns a copy of what was recorded, never nil.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}
