package dto

import (
	"time"

	"github.com/partyklinest/cleaning-backend/internal/models"
)

// RegisterRequest represents the request to register an account
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// LoginRequest represents the request to log in
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// CreateOrderRequest represents the request to create an order
type CreateOrderRequest struct {
	MessLevel int       `json:"mess_level" binding:"required"`
	MaxPrice  float64   `json:"max_price" binding:"required"`
	Date      time.Time `json:"date" binding:"required"`
}

// OrderSnapshotRequest is the order state a cleaner submits when
// accepting or rejecting an assignment
type OrderSnapshotRequest struct {
	Status    string  `json:"status" binding:"required"`
	CleanerID *string `json:"cleaner_id"`
}

// OpinionRequest represents a cleaner's opinion about a client
type OpinionRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// ScheduleEntryRequest is one availability window in a cleaner's schedule
type ScheduleEntryRequest struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

// OrderFilterRequest represents a cleaner's order filter
type OrderFilterRequest struct {
	MaxMessLevel    int      `json:"max_mess_level" binding:"required"`
	MinPrice        float64  `json:"min_price"`
	MaxPrice        float64  `json:"max_price" binding:"required"`
	MinClientRating *float64 `json:"min_client_rating"`
}

// UpdateCleanerRequest represents the cleaner profile upsert payload.
// Absent fragments stay nil and are left untouched.
type UpdateCleanerRequest struct {
	Status          *string                 `json:"status,omitempty"`
	OrderFilter     *OrderFilterRequest     `json:"order_filter,omitempty"`
	ScheduleEntries *[]ScheduleEntryRequest `json:"schedule_entries,omitempty"`
}

// SetCleanerStatusRequest represents the admin status change payload
type SetCleanerStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AddClientRequest represents the request to register a client profile
type AddClientRequest struct {
	ClientID string `json:"client_id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
}

// AssignCleanerRequest represents the request to offer an order to a cleaner
type AssignCleanerRequest struct {
	CleanerID string `json:"cleaner_id" binding:"required"`
}

// ToOrderFilter converts the request representation to the model
func (r OrderFilterRequest) ToOrderFilter() models.OrderFilter {
	return models.OrderFilter{
		MaxMessLevel:    r.MaxMessLevel,
		MinPrice:        r.MinPrice,
		MaxPrice:        r.MaxPrice,
		MinClientRating: r.MinClientRating,
	}
}

// ToScheduleEntries converts request windows to model entries
func ToScheduleEntries(entries []ScheduleEntryRequest) []models.ScheduleEntry {
	out := make([]models.ScheduleEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.ScheduleEntry{
			DayOfWeek: time.Weekday(e.DayOfWeek),
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
		})
	}
	return out
}
