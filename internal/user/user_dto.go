package user

// UserResponse is the sanitized view of a user; the password hash never
// leaves the service layer.
type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}
