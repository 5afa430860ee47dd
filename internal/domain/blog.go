package domain

// Blog is a stored blog post.
type Blog struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
	UserID string `json:"user,omitempty"`
}

// OwnedBy reports whether the post belongs to userID. Posts without an owner belong to no one.
func (b *Blog) OwnedBy(userID string) bool {
	return b.UserID != "" && b.UserID == userID
}
