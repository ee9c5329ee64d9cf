package store

import (
	"errors"
	"testing"

	"webfree/models"
)

// buildCascadeFixture wires a small world around sarah so her deletion has
// something to cascade through: she has a post that crax liked, commented
// on and favorited, she liked and commented on crax's post, both follow
// each other, and notifications and messages flow both ways.
func buildCascadeFixture(t *testing.T, s *Store) (sarahPost, craxPost string) {
	t.Helper()

	if _, err := s.Login("sarah@example.com", "password"); err != nil {
		t.Fatalf("login sarah: %v", err)
	}
	sp, err := s.CreatePost(nil, "sarah's post")
	if err != nil {
		t.Fatalf("sarah post: %v", err)
	}

	loginCrax(t, s)
	cp, err := s.CreatePost(nil, "crax's post")
	if err != nil {
		t.Fatalf("crax post: %v", err)
	}
	if err := s.ToggleLike(sp.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	if err := s.AddComment(sp.ID, "nice"); err != nil {
		t.Fatalf("comment: %v", err)
	}
	if err := s.ToggleFavorite(sp.ID); err != nil {
		t.Fatalf("favorite: %v", err)
	}
	if err := s.SendMessage("user_sarah_usa", "hey"); err != nil {
		t.Fatalf("message: %v", err)
	}

	if _, err := s.Login("sarah@example.com", "password"); err != nil {
		t.Fatalf("re-login sarah: %v", err)
	}
	if err := s.ToggleLike(cp.ID); err != nil {
		t.Fatalf("sarah like: %v", err)
	}
	if err := s.AddComment(cp.ID, "thanks"); err != nil {
		t.Fatalf("sarah comment: %v", err)
	}
	if err := s.SendMessage("user_admin_crax", "hi back"); err != nil {
		t.Fatalf("sarah message: %v", err)
	}

	return sp.ID, cp.ID
}

func assertNoTraceOf(t *testing.T, s *Store, userID string, postIDs ...string) {
	t.Helper()
	deleted := map[string]bool{}
	for _, id := range postIDs {
		deleted[id] = true
	}

	for _, p := range s.Posts() {
		if p.AuthorID == userID {
			t.Fatalf("post %s still authored by deleted user", p.ID)
		}
		if containsID(p.Likes, userID) {
			t.Fatalf("post %s still liked by deleted user", p.ID)
		}
		for _, c := range p.Comments {
			if c.AuthorID == userID {
				t.Fatalf("post %s still has a comment by deleted user", p.ID)
			}
		}
	}
	for _, u := range s.Users() {
		if u.ID == userID {
			t.Fatalf("deleted user still present")
		}
		if containsID(u.Following, userID) || containsID(u.Followers, userID) {
			t.Fatalf("user %s still has a follow edge to deleted user", u.ID)
		}
		for _, fav := range u.Favorites {
			if deleted[fav] {
				t.Fatalf("user %s still favorites a deleted post", u.ID)
			}
		}
	}
	for _, n := range s.Notifications() {
		if n.ActorID == userID || n.RecipientID == userID {
			t.Fatalf("notification %s still references deleted user", n.ID)
		}
	}
	for _, m := range s.Messages() {
		if m.SenderID == userID || m.RecipientID == userID {
			t.Fatalf("message %s still references deleted user", m.ID)
		}
	}
}

func TestDeleteUserCascadeByAdmin(t *testing.T) {
	s := testStore(t)
	sarahPost, craxPost := buildCascadeFixture(t, s)

	loginCrax(t, s)
	if err := s.DeleteUser("user_sarah_usa"); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	assertNoTraceOf(t, s, "user_sarah_usa", sarahPost)

	// Untouched state survives: crax's post remains, minus sarah's marks.
	cp := s.PostByID(craxPost)
	if cp == nil {
		t.Fatalf("unrelated post was deleted")
	}
	if len(cp.Likes) != 0 || len(cp.Comments) != 0 {
		t.Fatalf("deleted user's marks survived on %+v", cp)
	}
	// The admin's own session survives the cascade.
	if got := s.CurrentUser(); got == nil || got.ID != "user_admin_crax" {
		t.Fatalf("admin session lost during cascade: %+v", got)
	}
	if containsID(s.CurrentUser().Favorites, sarahPost) {
		t.Fatalf("session still favorites a deleted post")
	}
}

func TestDeleteUserSelf(t *testing.T) {
	env := newTestEnv(t)
	s := env.node()
	buildCascadeFixture(t, s)

	// Fixture leaves sarah logged in; she deletes her own account.
	if err := s.DeleteUser("user_sarah_usa"); err != nil {
		t.Fatalf("self delete: %v", err)
	}
	if s.CurrentUser() != nil {
		t.Fatalf("session survived self-deletion")
	}

	// And the cleared session persists: a restarted node is logged out.
	restarted := env.node()
	if restarted.CurrentUser() != nil {
		t.Fatalf("deleted account resurrected on restart")
	}
}

func TestDeleteUserUnknownID(t *testing.T) {
	s := testStore(t)
	loginCrax(t, s)
	if err := s.DeleteUser("user_ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteUserKeepsFollowSymmetry(t *testing.T) {
	s := testStore(t)
	loginCrax(t, s)
	if err := s.DeleteUser("user_sarah_usa"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	assertFollowSymmetry(t, s.Users())
}

func TestDeletePostPrunesNoFavoritesOfOthers(t *testing.T) {
	// DeletePost is the narrow admin operation: favorites pruning happens
	// only in the user-deletion cascade, so a favorite of a vanished post
	// is tolerated as a dangling weak reference until then.
	s := testStore(t)
	loginCrax(t, s)
	post, _ := s.CreatePost(nil, "ephemeral")
	s.ToggleFavorite(post.ID)
	if err := s.DeletePost(post.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}
	if s.PostByID(post.ID) != nil {
		t.Fatalf("post survived")
	}
}

func TestSeededScenario(t *testing.T) {
	s := testStore(t)

	// signup sarah (a fresh account, no follow edges yet)
	if _, err := s.Signup("sarah", "s@x.com", "secret1"); err != nil {
		t.Fatalf("signup: %v", err)
	}
	sarahID := s.CurrentUser().ID

	// crax follows sarah
	loginCrax(t, s)
	if err := s.ToggleFollow(sarahID); err != nil {
		t.Fatalf("follow: %v", err)
	}

	// sarah posts; crax is her only follower
	if _, err := s.Login("s@x.com", "secret1"); err != nil {
		t.Fatalf("login sarah: %v", err)
	}
	if _, err := s.CreatePost(nil, "first post"); err != nil {
		t.Fatalf("post: %v", err)
	}

	loginCrax(t, s)
	mine := s.SessionNotifications()
	if len(mine) != 1 {
		t.Fatalf("expected exactly one notification for crax, got %d", len(mine))
	}
	if mine[0].ActorID != sarahID || mine[0].Kind != models.NotificationNewPost || mine[0].Read {
		t.Fatalf("unexpected notification %+v", mine[0])
	}
	if got := s.UnreadNotificationCount(); got != 1 {
		t.Fatalf("unread count = %d, want 1", got)
	}

	if err := s.MarkNotificationsAsRead(); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if got := s.UnreadNotificationCount(); got != 0 {
		t.Fatalf("unread count after mark = %d, want 0", got)
	}
	// Only crax's notifications flipped; nothing else in the system did.
	for _, n := range s.Notifications() {
		if n.RecipientID != "user_admin_crax" && n.Read {
			t.Fatalf("foreign notification flipped: %+v", n)
		}
	}
}
