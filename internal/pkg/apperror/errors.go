package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Ошибки доменных правил. Каждая несёт контекст, достаточный для
// диагностики: идентификаторы участников и фактические статусы.
// Все они — ошибки бизнес-уровня, не инфраструктурные сбои.

// CleanerNotFoundError возвращается, когда клинер с указанным OID отсутствует.
type CleanerNotFoundError struct {
	CleanerID string
}

func (e *CleanerNotFoundError) Error() string {
	return fmt.Sprintf("клинер %s не найден", e.CleanerID)
}

// ClientNotFoundError возвращается, когда клиент с указанным OID отсутствует.
type ClientNotFoundError struct {
	ClientID string
}

func (e *ClientNotFoundError) Error() string {
	return fmt.Sprintf("клиент %s не найден", e.ClientID)
}

// OrderNotFoundError возвращается, когда заказ отсутствует.
type OrderNotFoundError struct {
	OrderID int64
}

func (e *OrderNotFoundError) Error() string {
	return fmt.Sprintf("заказ %d не найден", e.OrderID)
}

// WithoutPrivilegesError возвращается при попытке действия над заказом
// забаненным клинером или над чужим заказом.
type WithoutPrivilegesError struct {
	CleanerID string
}

func (e *WithoutPrivilegesError) Error() string {
	return fmt.Sprintf("у клинера %s нет прав на это действие", e.CleanerID)
}

// NotCorrectOrderStatusError возвращается, когда присланный заказ не образует
// допустимого перехода относительно сохранённого.
type NotCorrectOrderStatusError struct {
	StoredStatus string
	SentStatus   string
}

func (e *NotCorrectOrderStatusError) Error() string {
	return fmt.Sprintf("недопустимый переход статуса заказа: сохранён %q, прислан %q", e.StoredStatus, e.SentStatus)
}

// CannotChangeBannedStatusError возвращается при попытке сменить статус
// в бан или из бана через обычное обновление профиля.
type CannotChangeBannedStatusError struct {
	LocalStatus string
	SentStatus  string
}

func (e *CannotChangeBannedStatusError) Error() string {
	return fmt.Sprintf("нельзя изменить статус бана через обновление профиля: текущий %q, прислан %q", e.LocalStatus, e.SentStatus)
}

// UserNotActiveError возвращается при попытке обновить фильтр или расписание
// клинера, который не может быть активирован.
type UserNotActiveError struct {
	CleanerID string
	Status    string
}

func (e *UserNotActiveError) Error() string {
	return fmt.Sprintf("клинер %s не активен (статус %q)", e.CleanerID, e.Status)
}

// OrderConflictError возвращается, когда конкурирующая запись успела изменить
// заказ между чтением и записью (несовпадение версии).
type OrderConflictError struct {
	OrderID int64
}

func (e *OrderConflictError) Error() string {
	return fmt.Sprintf("заказ %d был изменён параллельным запросом, повторите операцию", e.OrderID)
}

// HTTPStatus возвращает HTTP статус для доменной ошибки и признак того,
// что ошибка доменная.
func HTTPStatus(err error) (int, bool) {
	var (
		cleanerNotFound *CleanerNotFoundError
		clientNotFound  *ClientNotFoundError
		orderNotFound   *OrderNotFoundError
		noPrivileges    *WithoutPrivilegesError
		badTransition   *NotCorrectOrderStatusError
		bannedChange    *CannotChangeBannedStatusError
		notActive       *UserNotActiveError
		conflict        *OrderConflictError
	)

	switch {
	case errors.As(err, &cleanerNotFound), errors.As(err, &clientNotFound), errors.As(err, &orderNotFound):
		return http.StatusNotFound, true
	case errors.As(err, &noPrivileges), errors.As(err, &notActive):
		return http.StatusForbidden, true
	case errors.As(err, &badTransition), errors.As(err, &bannedChange), errors.As(err, &conflict):
		return http.StatusConflict, true
	default:
		return http.StatusInternalServerError, false
	}
}

// IsNotFound сообщает, что ошибка означает отсутствие сущности.
func IsNotFound(err error) bool {
	status, ok := HTTPStatus(err)
	return ok && status == http.StatusNotFound
}
