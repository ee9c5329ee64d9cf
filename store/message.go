package store

import (
	"strings"

	"webfree/database"
	"webfree/models"
)

// SendMessage appends an unread direct message from the session user.
func (s *Store) SendMessage(recipientID, text string) error {
	if strings.TrimSpace(text) == "" {
		return s.fail(ErrEmptyText, "Message cannot be empty.")
	}
	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return s.fail(ErrUnauthenticated, "You must be logged in to send messages.")
	}
	msg := models.Message{
		ID:          s.newID(),
		SenderID:    s.session.ID,
		RecipientID: recipientID,
		Text:        text,
		CreatedAt:   s.now(),
	}
	s.messages = append(append([]models.Message(nil), s.messages...), msg)
	s.db.Save(database.KeyMessages, s.messages)
	s.mu.Unlock()

	s.bus.Publish()
	return nil
}

// MarkMessagesAsRead flips read on every message addressed to the session
// user from the given sender.
func (s *Store) MarkMessagesAsRead(senderID string) error {
	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return s.fail(ErrUnauthenticated, "You must be logged in.")
	}
	updated := make([]models.Message, len(s.messages))
	for i, m := range s.messages {
		if m.RecipientID == s.session.ID && m.SenderID == senderID {
			m.Read = true
		}
		updated[i] = m
	}
	s.messages = updated
	s.db.Save(database.KeyMessages, s.messages)
	s.mu.Unlock()

	s.bus.Publish()
	return nil
}

// MarkNotificationsAsRead flips read on every notification addressed to the
// session user. Other recipients' notifications are untouched.
func (s *Store) MarkNotificationsAsRead() error {
	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return s.fail(ErrUnauthenticated, "You must be logged in.")
	}
	updated := make([]models.Notification, len(s.notifications))
	for i, n := range s.notifications {
		if n.RecipientID == s.session.ID {
			n.Read = true
		}
		updated[i] = n
	}
	s.notifications = updated
	s.db.Save(database.KeyNotifications, s.notifications)
	s.mu.Unlock()

	s.bus.Publish()
	return nil
}
