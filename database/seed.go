package database

import (
	"log"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"webfree/models"
)

// Seed passwords are hashed once per process: SeedUsers runs on every
// resync and bcrypt is deliberately slow.
var (
	seedOnce       sync.Once
	craxSeedHash   string
	commonSeedHash string
)

// SeedUsers returns the default user set a fresh install starts from. It is
// the fallback whenever the users key is missing or unreadable, so every
// node converges on the same initial graph.
func SeedUsers() []models.User {
	seedOnce.Do(func() {
		craxSeedHash = seedHash("Pcmg1234!")
		commonSeedHash = seedHash("password")
	})
	return []models.User{
		{
			ID:           "user_admin_crax",
			Username:     "crax",
			Email:        "crax@gmail.com",
			PasswordHash: craxSeedHash,
			Avatar:       "https://ui-avatars.com/api/?name=Crax&background=dc2626&color=fff&bold=true",
			Following:    []string{"user_sarah_usa", "user_hiro_jp"},
			Followers:    []string{"user_sarah_usa", "user_lucas_br"},
			Favorites:    []string{},
			Role:         models.RoleAdmin,
			IsDonor:      true,
		},
		{
			ID:           "user_sarah_usa",
			Username:     "sarah_nyc",
			Email:        "sarah@example.com",
			PasswordHash: commonSeedHash,
			Avatar:       "https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=200",
			Following:    []string{"user_admin_crax"},
			Followers:    []string{"user_admin_crax", "user_hiro_jp"},
			Favorites:    []string{},
			Role:         models.RoleUser,
		},
		{
			ID:           "user_hiro_jp",
			Username:     "hiro_tokyo",
			Email:        "hiro@example.com",
			PasswordHash: commonSeedHash,
			Avatar:       "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=200",
			Following:    []string{"user_sarah_usa"},
			Followers:    []string{"user_admin_crax"},
			Favorites:    []string{},
			Role:         models.RoleUser,
		},
		{
			ID:           "user_lucas_br",
			Username:     "lucas_rio",
			Email:        "lucas@example.com",
			PasswordHash: commonSeedHash,
			Avatar:       "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=200",
			Following:    []string{"user_admin_crax"},
			Followers:    []string{},
			Favorites:    []string{},
			Role:         models.RoleUser,
		},
	}
}

func seedHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt only fails on absurd cost or oversized input, neither of
		// which applies to the fixed seed passwords.
		log.Printf("database: hashing seed password: %v", err)
		return ""
	}
	return string(hash)
}
