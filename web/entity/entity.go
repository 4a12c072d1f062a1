// Package entity defines the JSON bodies exchanged by the web layer.
package entity

// Msg is the body of every message-only success response.
type Msg struct {
	Message string `json:"message"`
}

// ErrMsg is the body of every failure response.
type ErrMsg struct {
	Error string `json:"error"`
}

// LoginResult is returned by POST /api/auth/login.
type LoginResult struct {
	UserId int    `json:"userId"`
	Token  string `json:"token"`
}
