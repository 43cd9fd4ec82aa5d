package inbound

import "net/http"

// RegisterRequest keeps absent and null fields distinguishable from "".
type RegisterRequest struct {
	Username     *string `json:"username" example:"sunny"`
	EmailAddress *string `json:"emailAddress" example:"sunny@taskagile.com"`
	Password     *string `json:"password" example:"MyPassword"`
}

type RegisterResponse struct {
	Username     string `json:"username" example:"sunny"`
	EmailAddress string `json:"emailAddress" example:"sunny@taskagile.com"`
}

func (RegisterResponse) StatusCode() int {
	return http.StatusAccepted
}

func (RegisterResponse) Message() string {
	return "Registration accepted."
}
