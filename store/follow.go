package store

import (
	"webfree/database"
)

// ToggleFollow follows or unfollows a user. Both sides of the relationship
// (one following list, one followers list) change in the same mutation and
// persist in one users write, so the dual-list invariant holds at every
// point another node can observe. Following yourself is a no-op.
func (s *Store) ToggleFollow(targetID string) error {
	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return s.fail(ErrUnauthenticated, "You must be logged in to follow users.")
	}
	if s.session.ID == targetID {
		s.mu.Unlock()
		return nil
	}
	self := indexUser(s.users, s.session.ID)
	target := indexUser(s.users, targetID)
	if self < 0 || target < 0 {
		s.mu.Unlock()
		return nil
	}

	users := cloneUsers(s.users)
	if containsID(users[self].Following, targetID) {
		users[self].Following = removeID(users[self].Following, targetID)
		users[target].Followers = removeID(users[target].Followers, s.session.ID)
	} else {
		users[self].Following = appendID(users[self].Following, targetID)
		users[target].Followers = appendID(users[target].Followers, s.session.ID)
	}
	s.users = users
	s.refreshSession()
	s.db.Save(database.KeyUsers, s.users)
	s.mu.Unlock()

	s.bus.Publish()
	return nil
}
