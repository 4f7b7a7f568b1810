package dto

// UserResponse describes an account without its credentials.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"nome"`
	Email string `json:"email"`
	Level string `json:"nivel"`
}

// CreateUserRequest describes the payload of an administrator adding an account.
type CreateUserRequest struct {
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Level    string `json:"nivel"`
}
