package models

import (
	"fmt"
	"time"
)

// Order описывает заказ на уборку.
// CleanerID равен nil, пока заказ никому не предложен.
type Order struct {
	OrderID   int64     `db:"order_id" json:"order_id"`
	ClientID  string    `db:"client_id" json:"client_id"`
	CleanerID *string   `db:"cleaner_id" json:"cleaner_id,omitempty"`
	Status    string    `db:"status" json:"status"`
	MessLevel int       `db:"mess_level" json:"mess_level"`
	MaxPrice  float64   `db:"max_price" json:"max_price"`
	Date      time.Time `db:"date" json:"date"`
	// Мнение клинера о клиенте, заполняется один раз при закрытии заказа.
	OpinionRating  *int    `db:"opinion_rating" json:"opinion_rating,omitempty"`
	OpinionComment *string `db:"opinion_comment" json:"opinion_comment,omitempty"`
	// Version увеличивается при каждой записи, обновления выполняются
	// по принципу compare-and-swap.
	Version   int64     `db:"version" json:"version"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Opinion — неизменяемая оценка клиента, которую клинер оставляет при
// завершении заказа.
type Opinion struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// SetCleanersOpinion прикрепляет мнение клинера к заказу.
// Повторная установка и некорректный рейтинг запрещены.
func (o *Order) SetCleanersOpinion(opinion Opinion) error {
	if o.OpinionRating != nil {
		return fmt.Errorf("order: мнение по заказу %d уже оставлено", o.OrderID)
	}
	if opinion.Rating < 1 || opinion.Rating > 5 {
		return fmt.Errorf("order: рейтинг должен быть от 1 до 5")
	}
	rating := opinion.Rating
	comment := opinion.Comment
	o.OpinionRating = &rating
	o.OpinionComment = &comment
	return nil
}

// AssignedTo сообщает, закреплён ли заказ за указанным клинером.
func (o *Order) AssignedTo(cleanerID string) bool {
	return o.CleanerID != nil && *o.CleanerID == cleanerID
}
