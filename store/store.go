// Package store owns every entity collection and is the only component that
// mutates or persists them. One Store per node; other open nodes converge by
// reloading persisted state when the broadcast channel signals a change.
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"webfree/broadcast"
	"webfree/database"
	"webfree/models"
)

type Store struct {
	mu  sync.RWMutex
	db  *database.DB
	bus broadcast.Bus

	users         []models.User
	posts         []models.Post
	notifications []models.Notification
	messages      []models.Message

	// session is this node's authenticated user. It is loaded once at
	// startup and never replaced by a broadcast resync, so every node can
	// hold its own session against the same shared state.
	session *models.User

	now   func() time.Time
	newID func() string

	toastMu   sync.Mutex
	toast     *models.Toast
	toastSubs []func(*models.Toast)
	toastGen  int
	toastTTL  time.Duration
}

// New builds a store over the shared database and sync bus, loading all
// collections (seeded defaults where nothing is persisted yet) and the last
// session of this node.
func New(db *database.DB, bus broadcast.Bus) *Store {
	s := &Store{
		db:       db,
		bus:      bus,
		now:      time.Now,
		newID:    uuid.NewString,
		toastTTL: toastTTL,
	}
	s.reload()
	db.Load(database.KeyCurrentUser, &s.session)
	bus.Subscribe(s.resync)
	return s
}

// reload replaces every collection from persisted state, falling back to the
// seed/empty defaults.
func (s *Store) reload() {
	users := database.SeedUsers()
	s.db.Load(database.KeyUsers, &users)
	posts := []models.Post{}
	s.db.Load(database.KeyPosts, &posts)
	notifications := []models.Notification{}
	s.db.Load(database.KeyNotifications, &notifications)
	messages := []models.Message{}
	s.db.Load(database.KeyMessages, &messages)

	s.users = users
	s.posts = posts
	s.notifications = notifications
	s.messages = messages
}

// resync runs on a broadcast signal from another node: re-read everything,
// keep the local session.
func (s *Store) resync() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reload()
}

// Read accessors. All return copies so callers cannot reach into the
// store's state.

func (s *Store) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.User(nil), s.users...)
}

// Posts returns all posts, most recent first.
func (s *Store) Posts() []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Post(nil), s.posts...)
}

func (s *Store) Notifications() []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Notification(nil), s.notifications...)
}

func (s *Store) Messages() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Message(nil), s.messages...)
}

// CurrentUser returns this node's session user, or nil when logged out.
func (s *Store) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	u := *s.session
	return &u
}

// UserByID returns a user, or nil when unknown.
func (s *Store) UserByID(id string) *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexUser(s.users, id); i >= 0 {
		u := s.users[i]
		return &u
	}
	return nil
}

// PostByID returns a post, or nil when unknown.
func (s *Store) PostByID(id string) *models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexPost(s.posts, id); i >= 0 {
		p := s.posts[i]
		return &p
	}
	return nil
}

// SessionNotifications returns the session user's notifications, newest
// first.
func (s *Store) SessionNotifications() []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	var out []models.Notification
	for _, n := range s.notifications {
		if n.RecipientID == s.session.ID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// UnreadNotificationCount counts the session user's unread notifications.
func (s *Store) UnreadNotificationCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return 0
	}
	count := 0
	for _, n := range s.notifications {
		if n.RecipientID == s.session.ID && !n.Read {
			count++
		}
	}
	return count
}

// Conversation returns the time-ordered messages between the session user
// and another user. Conversations are derived, never stored.
func (s *Store) Conversation(otherID string) []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	me := s.session.ID
	var out []models.Message
	for _, m := range s.messages {
		if (m.SenderID == me && m.RecipientID == otherID) ||
			(m.SenderID == otherID && m.RecipientID == me) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// UnreadMessageCount counts unread messages addressed to the session user.
func (s *Store) UnreadMessageCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return 0
	}
	count := 0
	for _, m := range s.messages {
		if m.RecipientID == s.session.ID && !m.Read {
			count++
		}
	}
	return count
}

// Internal helpers. All relationship edits go through fresh slices so a
// mutation never writes into state some reader already holds.

func indexUser(users []models.User, id string) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}

func indexPost(posts []models.Post, id string) int {
	for i := range posts {
		if posts[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneUsers(users []models.User) []models.User {
	out := make([]models.User, len(users))
	copy(out, users)
	return out
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func appendID(ids []string, id string) []string {
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids...)
	return append(out, id)
}

func removeID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func toggleID(ids []string, id string) []string {
	if containsID(ids, id) {
		return removeID(ids, id)
	}
	return appendID(ids, id)
}

// setSession replaces the session and persists it so the node resumes it
// after a restart. Must be called with s.mu held.
func (s *Store) setSession(u *models.User) {
	if u != nil {
		copied := *u
		s.session = &copied
	} else {
		s.session = nil
	}
	s.db.Save(database.KeyCurrentUser, s.session)
}

// refreshSession re-points the session at its updated user record after a
// mutation touched it. Must be called with s.mu held.
func (s *Store) refreshSession() {
	if s.session == nil {
		return
	}
	if i := indexUser(s.users, s.session.ID); i >= 0 {
		s.setSession(&s.users[i])
	}
}
