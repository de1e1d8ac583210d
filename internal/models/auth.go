package models

// FirebaseLoginRequest defines the request body for Firebase login
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// DevTokenRequest asks for a local token for an existing user.
type DevTokenRequest struct {
	UserID string `json:"user_id" validate:"required"`
}
