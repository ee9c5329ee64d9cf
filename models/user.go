package models

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"passwordHash"`
	Avatar       string   `json:"avatar"`
	Following    []string `json:"following"`
	Followers    []string `json:"followers"`
	Favorites    []string `json:"favorites"`
	Role         string   `json:"role"`
	IsBanned     bool     `json:"isBanned"`
	IsDonor      bool     `json:"isDonor"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
