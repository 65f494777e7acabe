package auth

type SignInRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SessionResponse struct {
	Identity    string `json:"identity"`
	AccessToken string `json:"access_token,omitempty"`
}
