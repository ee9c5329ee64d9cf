package store

import (
	"time"

	"webfree/models"
)

// toastTTL is how long a status message stays up before it self-clears.
const toastTTL = 3 * time.Second

// ShowToast publishes a transient status message. It replaces any message
// currently showing and self-clears after a fixed interval. Subscribers get
// nil when the message clears.
func (s *Store) ShowToast(message, kind string) {
	s.toastMu.Lock()
	s.toastGen++
	gen := s.toastGen
	s.toast = &models.Toast{Message: message, Kind: kind}
	subs := append([]func(*models.Toast){}, s.toastSubs...)
	toast := s.toast
	s.toastMu.Unlock()

	for _, fn := range subs {
		fn(toast)
	}

	time.AfterFunc(s.toastTTL, func() {
		s.toastMu.Lock()
		// A newer toast owns the slot now; leave it alone.
		if s.toastGen != gen {
			s.toastMu.Unlock()
			return
		}
		s.toast = nil
		subs := append([]func(*models.Toast){}, s.toastSubs...)
		s.toastMu.Unlock()
		for _, fn := range subs {
			fn(nil)
		}
	})
}

// OnToast registers fn to run on every toast change.
func (s *Store) OnToast(fn func(*models.Toast)) {
	s.toastMu.Lock()
	defer s.toastMu.Unlock()
	s.toastSubs = append(s.toastSubs, fn)
}

// Toast returns the currently showing status message, or nil.
func (s *Store) Toast() *models.Toast {
	s.toastMu.Lock()
	defer s.toastMu.Unlock()
	return s.toast
}

// fail surfaces msg as an error toast and returns err unchanged.
func (s *Store) fail(err error, msg string) error {
	s.ShowToast(msg, models.ToastError)
	return err
}
