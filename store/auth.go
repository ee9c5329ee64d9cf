package store

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"webfree/database"
	"webfree/models"
)

// Login verifies credentials and assigns this node's session. Banned
// accounts are rejected even with the right password.
func (s *Store) Login(email, password string) (*models.User, error) {
	s.mu.Lock()
	var user *models.User
	for i := range s.users {
		if s.users[i].Email == email {
			user = &s.users[i]
			break
		}
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.mu.Unlock()
		return nil, s.fail(ErrInvalidCredentials, "Invalid email or password.")
	}
	if user.IsBanned {
		s.mu.Unlock()
		return nil, s.fail(ErrBanned, "Your account has been banned.")
	}
	s.setSession(user)
	out := *user
	s.mu.Unlock()

	s.ShowToast("Login successful!", models.ToastSuccess)
	return &out, nil
}

// Logout clears the session. Purely local: nothing is persisted or
// broadcast, so other nodes are unaffected.
func (s *Store) Logout() {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()
	s.ShowToast("Logged out successfully.", models.ToastSuccess)
}

// Signup creates a user with empty relationship sets and logs the node in
// as them. Username and email must both be unique.
func (s *Store) Signup(username, email, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	s.mu.Lock()
	for i := range s.users {
		if s.users[i].Username == username || s.users[i].Email == email {
			s.mu.Unlock()
			return nil, s.fail(ErrTaken, "Username or email already exists.")
		}
	}
	user := models.User{
		ID:           s.newID(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Avatar:       fmt.Sprintf("https://picsum.photos/seed/%s/200", username),
		Following:    []string{},
		Followers:    []string{},
		Favorites:    []string{},
		Role:         models.RoleUser,
	}
	s.users = append(append([]models.User(nil), s.users...), user)
	s.setSession(&user)
	s.db.Save(database.KeyUsers, s.users)
	s.mu.Unlock()

	s.bus.Publish()
	s.ShowToast("Account created successfully!", models.ToastSuccess)
	return &user, nil
}

// UpdateProfile changes the session user's username and email, rejecting
// values already held by a different user.
func (s *Store) UpdateProfile(username, email string) error {
	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return s.fail(ErrUnauthenticated, "You must be logged in.")
	}
	for i := range s.users {
		if s.users[i].ID != s.session.ID && (s.users[i].Username == username || s.users[i].Email == email) {
			s.mu.Unlock()
			return s.fail(ErrTaken, "Username or email is already taken.")
		}
	}
	updated := make([]models.User, len(s.users))
	for i, u := range s.users {
		if u.ID == s.session.ID {
			u.Username = username
			u.Email = email
		}
		updated[i] = u
	}
	s.users = updated
	s.refreshSession()
	s.db.Save(database.KeyUsers, s.users)
	s.mu.Unlock()

	s.bus.Publish()
	s.ShowToast("Profile updated successfully!", models.ToastSuccess)
	return nil
}

// UpdatePassword unconditionally replaces the session user's password. The
// caller is responsible for verifying the current password first.
func (s *Store) UpdatePassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return s.fail(ErrUnauthenticated, "You must be logged in.")
	}
	updated := make([]models.User, len(s.users))
	for i, u := range s.users {
		if u.ID == s.session.ID {
			u.PasswordHash = string(hash)
		}
		updated[i] = u
	}
	s.users = updated
	s.refreshSession()
	s.db.Save(database.KeyUsers, s.users)
	s.mu.Unlock()

	s.bus.Publish()
	s.ShowToast("Password updated successfully!", models.ToastSuccess)
	return nil
}

// VerifyPassword checks a plaintext password against the session user's
// stored hash, for the change-password flow.
func (s *Store) VerifyPassword(password string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(s.session.PasswordHash), []byte(password)) == nil
}

// UpdateAvatar replaces the session user's avatar reference.
func (s *Store) UpdateAvatar(avatar string) error {
	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return s.fail(ErrUnauthenticated, "You must be logged in.")
	}
	updated := make([]models.User, len(s.users))
	for i, u := range s.users {
		if u.ID == s.session.ID {
			u.Avatar = avatar
		}
		updated[i] = u
	}
	s.users = updated
	s.refreshSession()
	s.db.Save(database.KeyUsers, s.users)
	s.mu.Unlock()

	s.bus.Publish()
	return nil
}
