package dto

// UpdateMeReq represents the request body for PUT/PATCH /user/me.
// Nil fields are left unchanged. The password hash is never accepted or
// returned; only a new plaintext password that will be rehashed.
type UpdateMeReq struct {
	Name     *string `json:"name"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

// UserRes represents a user profile in responses. There is deliberately no
// password field of any kind.
type UserRes struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
