package dtos

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserRequest creates a login. Admin grants the admin capability.
type UserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Name      string `json:"name"`
	Admin     bool   `json:"admin"`
	StudentID *uint  `json:"student_id"`
}
