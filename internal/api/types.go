// Package api defines the JSON request and response bodies of the HTTP API.
package api

import (
	"time"

	"account_backend/internal/domain/entity"
)

// UserRequest is the body of POST /users/ and PUT /users/:user_id.
type UserRequest struct {
	Name     string  `json:"name" binding:"required,min=2,max=30,username"`
	Fullname *string `json:"fullname" binding:"omitempty,min=2,max=50,fullname"`
}

// AddressRequest is the body of POST /addresses/users/:user_id.
type AddressRequest struct {
	EmailAddress string `json:"email_address" binding:"required,max=100,email,mailaddr"`
}

// AddressResponse is an address as returned to clients.
type AddressResponse struct {
	ID           uint   `json:"id"`
	EmailAddress string `json:"email_address"`
	UserID       uint   `json:"user_id"`
}

// UserResponse is a user as returned to clients, including its addresses.
type UserResponse struct {
	ID         uint              `json:"id"`
	Name       string            `json:"name"`
	Fullname   *string           `json:"fullname"`
	Addresses  []AddressResponse `json:"addresses"`
	CreateTime time.Time         `json:"create_time"`
	UpdateTime *time.Time        `json:"update_time"`
}

// AppInfo is the body of GET /.
type AppInfo struct {
	Message string `json:"message"`
	Docs    string `json:"docs"`
}

// RouteInfo is one entry of GET /docs.
type RouteInfo struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// NewAddressResponse converts an address entity.
func NewAddressResponse(a entity.Address) AddressResponse {
	return AddressResponse{ID: a.ID, EmailAddress: a.EmailAddress, UserID: a.UserID}
}

// NewAddressResponses converts a list of address entities; the result is never nil.
func NewAddressResponses(as []entity.Address) []AddressResponse {
	out := make([]AddressResponse, 0, len(as))
	for _, a := range as {
		out = append(out, NewAddressResponse(a))
	}
	return out
}

// NewUserResponse converts a user entity.
func NewUserResponse(u entity.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Fullname:   u.Fullname,
		Addresses:  NewAddressResponses(u.Addresses),
		CreateTime: u.CreateTime,
		UpdateTime: u.UpdateTime,
	}
}

// NewUserResponses converts a list of user entities; the result is never nil.
func NewUserResponses(us []entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(us))
	for _, u := range us {
		out = append(out, NewUserResponse(u))
	}
	return out
}
