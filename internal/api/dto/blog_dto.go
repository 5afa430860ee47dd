package dto

// CreateBlogRequest payload for POST /api/blogs.
type CreateBlogRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
}

// UpdateBlogRequest payload for PUT /api/blogs/:id. Omitted fields are left unchanged.
type UpdateBlogRequest struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	URL    *string `json:"url"`
	Likes  *int    `json:"likes"`
}
