package models

import "time"

// Media is the optional file attached to a post.
type Media struct {
	URL  string `json:"url"`
	Type string `json:"type"` // image, video, audio
	Name string `json:"name"`
}

type Post struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Media     *Media    `json:"media,omitempty"`
	Caption   string    `json:"caption"`
	Likes     []string  `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
}

// Comment lives inside its parent post, never independently.
type Comment struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
