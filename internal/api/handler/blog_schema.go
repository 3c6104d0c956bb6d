package handler

// --- Request types ---

type createBlogRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
	Author  string `json:"author"`
	URL     string `json:"url"`
	Likes   *int   `json:"likes" validate:"omitempty,gte=0"`
}

type updateLikesRequest struct {
	Likes *int `json:"likes" validate:"required,gte=0"`
}

type registerRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// --- Response types ---

type blogResponse struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  string `json:"author"`
	URL     string `json:"url"`
	Likes   int    `json:"likes"`
	User    string `json:"user,omitempty"`
}

// blogSummaryResponse is the post shape embedded in a user listing.
type blogSummaryResponse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
}

type userResponse struct {
	ID       string                `json:"id"`
	Username string                `json:"username"`
	Name     string                `json:"name"`
	Blogs    []blogSummaryResponse `json:"blogs"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type errorResponse struct {
	Error string `json:"error"`
}
