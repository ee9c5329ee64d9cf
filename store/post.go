package store

import (
	"sort"
	"strings"

	"webfree/database"
	"webfree/models"
)

// CreatePost publishes a post owned by the session user and fans out one
// unread notification to each of their followers. Posts and notifications
// are persisted in the same operation.
func (s *Store) CreatePost(media *models.Media, caption string) (*models.Post, error) {
	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return nil, s.fail(ErrUnauthenticated, "You must be logged in to post.")
	}
	post := models.Post{
		ID:        s.newID(),
		AuthorID:  s.session.ID,
		Media:     media,
		Caption:   caption,
		Likes:     []string{},
		Comments:  []models.Comment{},
		CreatedAt: s.now(),
	}
	// Most recent first.
	s.posts = append([]models.Post{post}, s.posts...)

	if i := indexUser(s.users, s.session.ID); i >= 0 {
		for _, followerID := range s.users[i].Followers {
			s.notifications = append(s.notifications, models.Notification{
				ID:          s.newID(),
				RecipientID: followerID,
				ActorID:     s.session.ID,
				Kind:        models.NotificationNewPost,
				PostID:      post.ID,
				CreatedAt:   s.now(),
			})
		}
	}

	s.db.Save(database.KeyPosts, s.posts)
	s.db.Save(database.KeyNotifications, s.notifications)
	s.mu.Unlock()

	s.bus.Publish()
	s.ShowToast("Post created successfully!", models.ToastSuccess)
	return &post, nil
}

// ToggleLike toggles the session user's like on a post. Unknown posts are a
// silent no-op, so a like racing a deletion just disappears.
func (s *Store) ToggleLike(postID string) error {
	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return s.fail(ErrUnauthenticated, "You must be logged in to like posts.")
	}
	i := indexPost(s.posts, postID)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	updated := make([]models.Post, len(s.posts))
	copy(updated, s.posts)
	updated[i].Likes = toggleID(updated[i].Likes, s.session.ID)
	s.posts = updated
	s.db.Save(database.KeyPosts, s.posts)
	s.mu.Unlock()

	s.bus.Publish()
	return nil
}

// ToggleFavorite toggles a post id in the session user's favorites. Only
// the user entity changes; the post is untouched.
func (s *Store) ToggleFavorite(postID string) error {
	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return s.fail(ErrUnauthenticated, "You must be logged in to favorite posts.")
	}
	i := indexUser(s.users, s.session.ID)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	updated := make([]models.User, len(s.users))
	copy(updated, s.users)
	updated[i].Favorites = toggleID(updated[i].Favorites, postID)
	s.users = updated
	s.refreshSession()
	s.db.Save(database.KeyUsers, s.users)
	s.mu.Unlock()

	s.bus.Publish()
	return nil
}

// AddComment appends a comment and keeps the post's comments ordered by
// ascending timestamp. Order among equal timestamps is unspecified.
func (s *Store) AddComment(postID, text string) error {
	if strings.TrimSpace(text) == "" {
		return s.fail(ErrEmptyText, "Comment cannot be empty.")
	}
	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return s.fail(ErrUnauthenticated, "You must be logged in to comment.")
	}
	i := indexPost(s.posts, postID)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	comment := models.Comment{
		ID:        s.newID(),
		AuthorID:  s.session.ID,
		Text:      text,
		CreatedAt: s.now(),
	}
	updated := make([]models.Post, len(s.posts))
	copy(updated, s.posts)
	comments := append(append([]models.Comment(nil), updated[i].Comments...), comment)
	sort.Slice(comments, func(a, b int) bool {
		return comments[a].CreatedAt.Before(comments[b].CreatedAt)
	})
	updated[i].Comments = comments
	s.posts = updated
	s.db.Save(database.KeyPosts, s.posts)
	s.mu.Unlock()

	s.bus.Publish()
	return nil
}

// DeletePost removes a post. Admin only.
func (s *Store) DeletePost(postID string) error {
	s.mu.Lock()
	if !s.session.IsAdmin() {
		s.mu.Unlock()
		return s.fail(ErrUnauthorized, "You do not have permission to delete posts.")
	}
	i := indexPost(s.posts, postID)
	if i < 0 {
		s.mu.Unlock()
		return s.fail(ErrNotFound, "Post not found.")
	}
	updated := make([]models.Post, 0, len(s.posts)-1)
	for _, p := range s.posts {
		if p.ID != postID {
			updated = append(updated, p)
		}
	}
	s.posts = updated
	s.db.Save(database.KeyPosts, s.posts)
	s.mu.Unlock()

	s.bus.Publish()
	s.ShowToast("Post deleted successfully.", models.ToastSuccess)
	return nil
}

// DeleteComment removes one comment from a post. Admin only.
func (s *Store) DeleteComment(postID, commentID string) error {
	s.mu.Lock()
	if !s.session.IsAdmin() {
		s.mu.Unlock()
		return s.fail(ErrUnauthorized, "You do not have permission to delete comments.")
	}
	i := indexPost(s.posts, postID)
	if i < 0 {
		s.mu.Unlock()
		return s.fail(ErrNotFound, "Post not found.")
	}
	found := false
	comments := make([]models.Comment, 0, len(s.posts[i].Comments))
	for _, c := range s.posts[i].Comments {
		if c.ID == commentID {
			found = true
			continue
		}
		comments = append(comments, c)
	}
	if !found {
		s.mu.Unlock()
		return s.fail(ErrNotFound, "Comment not found.")
	}
	updated := make([]models.Post, len(s.posts))
	copy(updated, s.posts)
	updated[i].Comments = comments
	s.posts = updated
	s.db.Save(database.KeyPosts, s.posts)
	s.mu.Unlock()

	s.bus.Publish()
	s.ShowToast("Comment deleted successfully.", models.ToastSuccess)
	return nil
}
