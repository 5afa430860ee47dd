package domain

// User is the domain model for authors who own blog posts.
type User struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	Name         string   `json:"name"`
	PasswordHash string   `json:"-"`
	Blogs        []string `json:"blogs"`
}

