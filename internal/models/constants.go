package models

// CleanerStatus константы статусов клинера
const (
	CleanerStatusRegistered = "registered"
	CleanerStatusActive     = "active"
	CleanerStatusBanned     = "banned"
)

// OrderStatus константы статусов заказов
const (
	OrderStatusCreated    = "created"
	OrderStatusActive     = "active"
	OrderStatusInProgress = "in_progress"
	OrderStatusClosed     = "closed"
)

// ValidCleanerStatuses список валидных статусов клинера
var ValidCleanerStatuses = map[string]struct{}{
	CleanerStatusRegistered: {},
	CleanerStatusActive:     {},
	CleanerStatusBanned:     {},
}

// ValidOrderStatuses список валидных статусов заказов
var ValidOrderStatuses = map[string]struct{}{
	OrderStatusCreated:    {},
	OrderStatusActive:     {},
	OrderStatusInProgress: {},
	OrderStatusClosed:     {},
}
