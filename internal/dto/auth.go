package dto

// CheckUsernameRequest asks whether a username is still free.
type CheckUsernameRequest struct {
	Username string `json:"username" binding:"required"`
}

type CheckUsernameResponse struct {
	IsUnique bool `json:"is_unique"`
}

// CheckEmailRequest asks whether an email is still free.
type CheckEmailRequest struct {
	Email string `json:"email" binding:"required"`
}

type CheckEmailResponse struct {
	IsUnique bool `json:"is_unique"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}
