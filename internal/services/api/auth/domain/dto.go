package domain

import "strconv"

// LoginInput is the login widget assertion payload
type LoginInput struct {
	ID        int64  `json:"id" validate:"required" example:"123456789"`
	FirstName string `json:"first_name,omitempty" example:"Ada"`
	LastName  string `json:"last_name,omitempty" example:"Lovelace"`
	Username  string `json:"username,omitempty" example:"ada"`
	PhotoURL  string `json:"photo_url,omitempty" example:"https://t.me/i/userpic/ada.jpg"`
	AuthDate  int64  `json:"auth_date" validate:"required" example:"1756500000"`
	Hash      string `json:"hash" validate:"required,hexadecimal" example:"c0ffee"`
}

// Fields renders the assertion as the string map the verifier consumes
func (in LoginInput) Fields() map[string]string {
	return map[string]string{
		"id":         strconv.FormatInt(in.ID, 10),
		"first_name": in.FirstName,
		"last_name":  in.LastName,
		"username":   in.Username,
		"photo_url":  in.PhotoURL,
		"auth_date":  strconv.FormatInt(in.AuthDate, 10),
	}
}

// UserOut is the public identity profile
type UserOut struct {
	ID          int64  `json:"id" example:"123456789"`
	Username    string `json:"username" example:"ada"`
	Role        string `json:"role" example:"user"`
	Status      string `json:"status" example:"active"`
	AccessLevel string `json:"access_level" example:"user"`
}

// PublicProfile projects an identity onto its public shape
func PublicProfile(id Identity) UserOut {
	return UserOut{
		ID:          id.ID,
		Username:    id.Username,
		Role:        id.Role,
		Status:      string(id.Status),
		AccessLevel: string(id.AccessLevel),
	}
}

// AuthResponse is the login success payload
type AuthResponse struct {
	Token string  `json:"token"`
	User  UserOut `json:"user"`
}

// LogoutResponse acknowledges a logout regardless of session existence
type LogoutResponse struct {
	Detail string `json:"detail" example:"ok"`
}
