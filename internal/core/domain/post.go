package domain

import "time"

// DefaultAuthor labels posts submitted without an author.
const DefaultAuthor = "Anonymous"

// Post is a single blog entry. UserID is the owning user; it is empty only
// for records created before ownership was enforced.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	Author    string    `json:"author"`
	URL       string    `json:"url,omitempty"`
	Likes     int       `json:"likes"`
	UserID    string    `json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// IsOwnedBy reports whether userID is the post's owner.
func (p *Post) IsOwnedBy(userID string) bool {
	return p.UserID != "" && p.UserID == userID
}
