package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrder_SetCleanersOpinion(t *testing.T) {
	order := &Order{OrderID: 1, Status: OrderStatusInProgress}

	err := order.SetCleanersOpinion(Opinion{Rating: 4, Comment: "всё хорошо"})
	assert.NoError(t, err)
	assert.Equal(t, 4, *order.OpinionRating)
	assert.Equal(t, "всё хорошо", *order.OpinionComment)

	// Повторное мнение не перезаписывает первое.
	err = order.SetCleanersOpinion(Opinion{Rating: 1})
	assert.Error(t, err)
	assert.Equal(t, 4, *order.OpinionRating)
}

func TestOrder_SetCleanersOpinion_InvalidRating(t *testing.T) {
	for _, rating := range []int{0, -1, 6} {
		order := &Order{OrderID: 1}
		err := order.SetCleanersOpinion(Opinion{Rating: rating})
		assert.Error(t, err)
		assert.Nil(t, order.OpinionRating)
	}
}

func TestOrder_AssignedTo(t *testing.T) {
	cleanerID := "cleaner-1"
	order := &Order{OrderID: 1, CleanerID: &cleanerID}

	assert.True(t, order.AssignedTo("cleaner-1"))
	assert.False(t, order.AssignedTo("cleaner-2"))

	unassigned := &Order{OrderID: 2}
	assert.False(t, unassigned.AssignedTo("cleaner-1"))
}

func TestOrderFilter_Equal(t *testing.T) {
	rating := 3.5
	base := OrderFilter{MaxMessLevel: 3, MinPrice: 500, MaxPrice: 5000, MinClientRating: &rating}

	same := 3.5
	assert.True(t, base.Equal(OrderFilter{MaxMessLevel: 3, MinPrice: 500, MaxPrice: 5000, MinClientRating: &same}))

	other := 4.0
	assert.False(t, base.Equal(OrderFilter{MaxMessLevel: 3, MinPrice: 500, MaxPrice: 5000, MinClientRating: &other}))
	assert.False(t, base.Equal(OrderFilter{MaxMessLevel: 3, MinPrice: 500, MaxPrice: 5000}))
	assert.False(t, base.Equal(OrderFilter{MaxMessLevel: 4, MinPrice: 500, MaxPrice: 5000, MinClientRating: &same}))
}

func TestScheduleEqual(t *testing.T) {
	a := []ScheduleEntry{
		{DayOfWeek: time.Monday, StartTime: "09:00", EndTime: "12:00"},
		{DayOfWeek: time.Friday, StartTime: "15:00", EndTime: "19:00"},
	}
	b := []ScheduleEntry{
		{DayOfWeek: time.Monday, StartTime: "09:00", EndTime: "12:00"},
		{DayOfWeek: time.Friday, StartTime: "15:00", EndTime: "19:00"},
	}
	assert.True(t, ScheduleEqual(a, b))

	// Порядок записей значим.
	reordered := []ScheduleEntry{b[1], b[0]}
	assert.False(t, ScheduleEqual(a, reordered))

	assert.False(t, ScheduleEqual(a, a[:1]))
	assert.True(t, ScheduleEqual(nil, nil))
	assert.True(t, ScheduleEqual(nil, []ScheduleEntry{}))
}
