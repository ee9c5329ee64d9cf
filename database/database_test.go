package database

import (
	"path/filepath"
	"testing"

	"webfree/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLoadMissingKeyKeepsDefault(t *testing.T) {
	db := openTestDB(t)

	users := SeedUsers()
	db.Load(KeyUsers, &users)

	if len(users) != 4 {
		t.Fatalf("expected seed users to survive a missing key, got %d users", len(users))
	}
	if users[0].Username != "crax" {
		t.Fatalf("unexpected first seed user %q", users[0].Username)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	db := openTestDB(t)

	in := []models.Message{
		{ID: "m1", SenderID: "a", RecipientID: "b", Text: "hello"},
		{ID: "m2", SenderID: "b", RecipientID: "a", Text: "hi", Read: true},
	}
	db.Save(KeyMessages, in)

	var out []models.Message
	db.Load(KeyMessages, &out)
	if len(out) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(out))
	}
	if out[0].ID != "m1" || out[1].Read != true {
		t.Fatalf("round trip mangled messages: %+v", out)
	}
}

func TestSaveOverwritesWholeValue(t *testing.T) {
	db := openTestDB(t)

	db.Save(KeyPosts, []models.Post{{ID: "p1"}, {ID: "p2"}})
	db.Save(KeyPosts, []models.Post{{ID: "p3"}})

	var posts []models.Post
	db.Load(KeyPosts, &posts)
	if len(posts) != 1 || posts[0].ID != "p3" {
		t.Fatalf("expected only the last written value, got %+v", posts)
	}
}

func TestLoadCorruptValueKeepsDefault(t *testing.T) {
	db := openTestDB(t)

	if _, err := db.sql.Exec("INSERT INTO kv (key, value) VALUES (?, ?)", KeyUsers, "{not json"); err != nil {
		t.Fatalf("planting corrupt row: %v", err)
	}

	users := SeedUsers()
	db.Load(KeyUsers, &users)
	if len(users) != 4 {
		t.Fatalf("corrupt value should fall back to default, got %d users", len(users))
	}
}

func TestSaveNilClearsValue(t *testing.T) {
	db := openTestDB(t)

	db.Save(KeyCurrentUser, &models.User{ID: "u1"})
	db.Save(KeyCurrentUser, (*models.User)(nil))

	var u *models.User
	db.Load(KeyCurrentUser, &u)
	if u != nil {
		t.Fatalf("expected nil after clearing, got %+v", u)
	}
}

func TestSeedUsersFollowGraphIsSymmetric(t *testing.T) {
	users := SeedUsers()
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for _, u := range users {
		for _, target := range u.Following {
			other, ok := byID[target]
			if !ok {
				t.Fatalf("%s follows unknown user %s", u.ID, target)
			}
			if !contains(other.Followers, u.ID) {
				t.Fatalf("%s follows %s but is not in their followers", u.ID, target)
			}
		}
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
