package models

import (
	"time"
)

// Cleaner описывает исполнителя уборки: статус, фильтр заказов и расписание.
// Идентификатор — строковый OID учётной записи в каталоге пользователей.
type Cleaner struct {
	CleanerID       string          `db:"cleaner_id" json:"cleaner_id"`
	Status          string          `db:"status" json:"status"`
	OrderFilter     OrderFilter     `json:"order_filter"`
	ScheduleEntries []ScheduleEntry `json:"schedule_entries"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// OrderFilter описывает критерии клинера: какие заказы он готов видеть.
type OrderFilter struct {
	MaxMessLevel    int      `db:"max_mess_level" json:"max_mess_level"`
	MinPrice        float64  `db:"min_price" json:"min_price"`
	MaxPrice        float64  `db:"max_price" json:"max_price"`
	MinClientRating *float64 `db:"min_client_rating" json:"min_client_rating,omitempty"`
}

// Equal сравнивает фильтры по значению.
func (f OrderFilter) Equal(other OrderFilter) bool {
	if f.MaxMessLevel != other.MaxMessLevel || f.MinPrice != other.MinPrice || f.MaxPrice != other.MaxPrice {
		return false
	}
	if (f.MinClientRating == nil) != (other.MinClientRating == nil) {
		return false
	}
	if f.MinClientRating != nil && *f.MinClientRating != *other.MinClientRating {
		return false
	}
	return true
}

// ScheduleEntry описывает окно доступности клинера в пределах недели.
// Время хранится строками в формате HH:MM.
type ScheduleEntry struct {
	DayOfWeek time.Weekday `db:"day_of_week" json:"day_of_week"`
	StartTime string       `db:"start_time" json:"start_time"`
	EndTime   string       `db:"end_time" json:"end_time"`
}

// ScheduleEqual сравнивает расписания позиционно: порядок записей значим,
// [A,B] и [B,A] считаются разными расписаниями.
func ScheduleEqual(a, b []ScheduleEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
