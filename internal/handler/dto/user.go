// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/proledger/proledger/internal/model"
)

// AddressPayload mirrors the optional nested address object.
type AddressPayload struct {
	City    string `json:"city"`
	Country string `json:"country"`
	Zip     int    `json:"zip"`
}

// CreateUserRequest represents the request body for creating a user.
type CreateUserRequest struct {
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Age     int             `json:"age"`
	Address *AddressPayload `json:"address,omitempty"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Age       int             `json:"age"`
	Address   *AddressPayload `json:"address,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// ErrorResponse represents an API error with a stable machine-readable code.
// Validation failures additionally carry the per-field violations.
type ErrorResponse struct {
	Error      string            `json:"error"`
	Code       string            `json:"code"`
	Violations []model.Violation `json:"violations,omitempty"`
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(user *model.User) *UserResponse {
	resp := &UserResponse{
		ID:        user.ID.Hex(),
		Name:      user.Name,
		Email:     user.Email,
		Age:       user.Age,
		CreatedAt: user.CreatedAt,
	}
	if user.Address != nil {
		resp.Address = &AddressPayload{
			City:    user.Address.City,
			Country: user.Address.Country,
			Zip:     user.Address.Zip,
		}
	}
	return resp
}

// ToUserResponses converts a slice of User models, preserving order.
func ToUserResponses(users []*model.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = *ToUserResponse(user)
	}
	return responses
}
