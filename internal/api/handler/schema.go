package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Requests ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
	Bio      string `json:"bio"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	Name *string `json:"name"`
	Bio  *string `json:"bio"`
}

type createPostRequest struct {
	Text string `json:"text" validate:"required"`
}

// updatePostRequest is validated by the service so that ownership is
// checked before the text.
type updatePostRequest struct {
	Text string `json:"text"`
}

type commentRequest struct {
	Text string `json:"text" validate:"required"`
}

// --- Responses ---
// Response types are owned by the transport layer so the JSON contract is
// not coupled to domain or service types.

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Bio   string `json:"bio"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type selfResponse struct {
	User userResponse `json:"user"`
}

type userRefResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type commentResponse struct {
	ID        string          `json:"id"`
	User      userRefResponse `json:"user"`
	Text      string          `json:"text"`
	CreatedAt time.Time       `json:"created_at"`
}

type postResponse struct {
	ID        string            `json:"id"`
	Text      string            `json:"text"`
	Author    userRefResponse   `json:"author"`
	Likes     []string          `json:"likes"`
	Comments  []commentResponse `json:"comments"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

type profileResponse struct {
	User  userResponse   `json:"user"`
	Posts []postResponse `json:"posts"`
}

type likeResponse struct {
	Likes int  `json:"likes"`
	Liked bool `json:"liked"`
}

type messageResponse struct {
	Message string `json:"message"`
}
