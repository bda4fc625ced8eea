package dto

// RefreshReq represents the request body for the /user/token/refresh and
// /user/logout endpoints.
type RefreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
