package models

type User struct {
	Id    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
