// zara/utils/types/user.go
package types

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserView struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type AuthResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    UserView `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Msg   string `json:"msg,omitempty"`
}

type HealthResponse struct {
	Status        string `json:"status"`
	APIConfigured bool   `json:"api_configured"`
	Message       string `json:"message"`
}
