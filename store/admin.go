package store

import (
	"fmt"

	"webfree/database"
	"webfree/models"
)

// ToggleBan bans or unbans a user. Admin only; admins cannot ban
// themselves.
func (s *Store) ToggleBan(userID string) error {
	s.mu.Lock()
	if !s.session.IsAdmin() {
		s.mu.Unlock()
		return s.fail(ErrUnauthorized, "Unauthorized")
	}
	if userID == s.session.ID {
		s.mu.Unlock()
		return s.fail(ErrUnauthorized, "You cannot ban yourself.")
	}
	i := indexUser(s.users, userID)
	if i < 0 {
		s.mu.Unlock()
		return s.fail(ErrNotFound, "User not found.")
	}
	users := cloneUsers(s.users)
	users[i].IsBanned = !users[i].IsBanned
	s.users = users
	s.db.Save(database.KeyUsers, s.users)
	username, banned := users[i].Username, users[i].IsBanned
	s.mu.Unlock()

	s.bus.Publish()
	if banned {
		s.ShowToast(fmt.Sprintf("User %s has been banned.", username), models.ToastSuccess)
	} else {
		s.ShowToast(fmt.Sprintf("User %s has been unbanned.", username), models.ToastSuccess)
	}
	return nil
}

// ToggleDonor toggles a user's donor badge. Admin only.
func (s *Store) ToggleDonor(userID string) error {
	s.mu.Lock()
	if !s.session.IsAdmin() {
		s.mu.Unlock()
		return s.fail(ErrUnauthorized, "Unauthorized")
	}
	i := indexUser(s.users, userID)
	if i < 0 {
		s.mu.Unlock()
		return s.fail(ErrNotFound, "User not found.")
	}
	users := cloneUsers(s.users)
	users[i].IsDonor = !users[i].IsDonor
	s.users = users
	s.refreshSession()
	s.db.Save(database.KeyUsers, s.users)
	username, donor := users[i].Username, users[i].IsDonor
	s.mu.Unlock()

	s.bus.Publish()
	if donor {
		s.ShowToast(fmt.Sprintf("User %s is now a donor.", username), models.ToastSuccess)
	} else {
		s.ShowToast(fmt.Sprintf("User %s is no longer a donor.", username), models.ToastSuccess)
	}
	return nil
}

// DeleteUser removes a user and every trace of them, as one atomic unit:
// their posts, their id in other posts' likes and comments, their edges in
// every follow list, their deleted posts in every favorites list, and every
// notification or message they appear in. Admins can delete anyone; users
// can delete themselves.
func (s *Store) DeleteUser(userID string) error {
	s.mu.Lock()
	if s.session == nil || (!s.session.IsAdmin() && s.session.ID != userID) {
		s.mu.Unlock()
		return s.fail(ErrUnauthorized, "You do not have permission to delete this user.")
	}
	i := indexUser(s.users, userID)
	if i < 0 {
		s.mu.Unlock()
		return s.fail(ErrNotFound, "User not found.")
	}
	deletedName := s.users[i].Username
	selfDelete := s.session.ID == userID

	deletedPosts := map[string]bool{}
	for _, p := range s.posts {
		if p.AuthorID == userID {
			deletedPosts[p.ID] = true
		}
	}

	posts := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if p.AuthorID == userID {
			continue
		}
		p.Likes = removeID(p.Likes, userID)
		comments := make([]models.Comment, 0, len(p.Comments))
		for _, c := range p.Comments {
			if c.AuthorID != userID {
				comments = append(comments, c)
			}
		}
		p.Comments = comments
		posts = append(posts, p)
	}

	users := make([]models.User, 0, len(s.users)-1)
	for _, u := range s.users {
		if u.ID == userID {
			continue
		}
		u.Following = removeID(u.Following, userID)
		u.Followers = removeID(u.Followers, userID)
		favorites := make([]string, 0, len(u.Favorites))
		for _, pid := range u.Favorites {
			if !deletedPosts[pid] {
				favorites = append(favorites, pid)
			}
		}
		u.Favorites = favorites
		users = append(users, u)
	}

	notifications := make([]models.Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if n.ActorID != userID && n.RecipientID != userID {
			notifications = append(notifications, n)
		}
	}

	messages := make([]models.Message, 0, len(s.messages))
	for _, m := range s.messages {
		if m.SenderID != userID && m.RecipientID != userID {
			messages = append(messages, m)
		}
	}

	s.posts = posts
	s.users = users
	s.notifications = notifications
	s.messages = messages
	if selfDelete {
		s.setSession(nil)
	} else {
		s.refreshSession()
	}

	s.db.Save(database.KeyUsers, s.users)
	s.db.Save(database.KeyPosts, s.posts)
	s.db.Save(database.KeyNotifications, s.notifications)
	s.db.Save(database.KeyMessages, s.messages)
	s.mu.Unlock()

	s.bus.Publish()
	if selfDelete {
		s.ShowToast("Your account has been deleted.", models.ToastSuccess)
	} else {
		s.ShowToast(fmt.Sprintf("User '%s' and all their content has been deleted.", deletedName), models.ToastSuccess)
	}
	return nil
}
