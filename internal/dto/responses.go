package dto

import (
	"github.com/partyklinest/cleaning-backend/internal/models"
	"github.com/partyklinest/cleaning-backend/internal/service"
)

// AuthResponse represents the result of register/login
type AuthResponse struct {
	User   *models.User       `json:"user"`
	Tokens *service.TokenPair `json:"tokens"`
}

// CleanerResponse represents a cleaner profile with schedule
type CleanerResponse struct {
	*models.Cleaner
}

// NewCleanerResponse creates a CleanerResponse
func NewCleanerResponse(cleaner *models.Cleaner) *CleanerResponse {
	return &CleanerResponse{Cleaner: cleaner}
}

// MatchingCleanersResponse pairs matched cleaners with their directory profiles
type MatchingCleanersResponse struct {
	Cleaners []models.Cleaner  `json:"cleaners"`
	Profiles []models.UserInfo `json:"profiles,omitempty"`
}

// ErrorResponse is the uniform error envelope
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse is the uniform success envelope
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
