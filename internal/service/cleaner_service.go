package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/partyklinest/cleaning-backend/internal/logger"
	"github.com/partyklinest/cleaning-backend/internal/models"
	"github.com/partyklinest/cleaning-backend/internal/pkg/apperror"
	"github.com/partyklinest/cleaning-backend/internal/repository"
)

// CleanerRepository описывает взаимодействие сервиса с хранилищем клинеров.
// Каждый мутатор выполняет собственную запись: статус, фильтр и расписание
// обновляются независимо друг от друга.
type CleanerRepository interface {
	GetByID(ctx context.Context, cleanerID string) (*models.Cleaner, error)
	Create(ctx context.Context, cleaner *models.Cleaner) error
	UpdateStatus(ctx context.Context, cleanerID, status string) error
	UpdateFilter(ctx context.Context, cleanerID string, filter models.OrderFilter) error
	ReplaceSchedule(ctx context.Context, cleanerID string, entries []models.ScheduleEntry) error
	ListMatching(ctx context.Context, params repository.MatchParams) ([]models.Cleaner, error)
}

// OrderFacade описывает операции над заказами, нужные сервису клинеров.
type OrderFacade interface {
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	ListAssignedOrdersTo(ctx context.Context, cleanerID string) ([]models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	CloseOrder(ctx context.Context, order *models.Order) error
}

// ClientRatingProvider возвращает среднюю оценку клиента.
type ClientRatingProvider interface {
	GetAverageClientRating(ctx context.Context, clientID string) (*float64, error)
}

// DirectoryClient разрешает OID учётных записей в отображаемые профили.
type DirectoryClient interface {
	GetUserInfo(ctx context.Context, ids []string) ([]models.UserInfo, error)
}

// CleanerService содержит бизнес-логику жизненного цикла клинера
// и его действий над заказами.
type CleanerService struct {
	cleaners  CleanerRepository
	orders    OrderFacade
	ratings   ClientRatingProvider
	directory DirectoryClient
}

// NewCleanerService создаёт сервис клинеров.
func NewCleanerService(cleaners CleanerRepository, orders OrderFacade, ratings ClientRatingProvider, directory DirectoryClient) *CleanerService {
	return &CleanerService{
		cleaners:  cleaners,
		orders:    orders,
		ratings:   ratings,
		directory: directory,
	}
}

// GetCleanerInfo возвращает клинера вместе с расписанием.
func (s *CleanerService) GetCleanerInfo(ctx context.Context, cleanerID string) (*models.Cleaner, error) {
	cleaner, err := s.cleaners.GetByID(ctx, cleanerID)
	if err != nil {
		if errors.Is(err, repository.ErrCleanerNotFound) {
			return nil, &apperror.CleanerNotFoundError{CleanerID: cleanerID}
		}
		return nil, err
	}
	return cleaner, nil
}

// GetAssignedOrders возвращает заказы, закреплённые за клинером.
func (s *CleanerService) GetAssignedOrders(ctx context.Context, cleanerID string) ([]models.Order, error) {
	cleaner, err := s.GetCleanerInfo(ctx, cleanerID)
	if err != nil {
		return nil, err
	}
	return s.orders.ListAssignedOrdersTo(ctx, cleaner.CleanerID)
}

// cleanerWithoutPrivileges запрещает действие, если клинер забанен либо заказ
// закреплён за другим клинером. Незакреплённый заказ проверку проходит.
func cleanerWithoutPrivileges(cleaner *models.Cleaner, order *models.Order) bool {
	if cleaner.Status == models.CleanerStatusBanned {
		return true
	}
	return order.CleanerID != nil && *order.CleanerID != cleaner.CleanerID
}

// ConfirmOrderCompleted закрывает заказ от имени клинера и прикрепляет его
// мнение о клиенте. Ни одна запись не выполняется, пока не пройдены обе
// проверки: существование клинера и право действовать над заказом.
func (s *CleanerService) ConfirmOrderCompleted(ctx context.Context, cleanerID string, orderID int64, opinion models.Opinion) error {
	cleaner, err := s.GetCleanerInfo(ctx, cleanerID)
	if err != nil {
		return err
	}

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}

	if cleanerWithoutPrivileges(cleaner, order) {
		return &apperror.WithoutPrivilegesError{CleanerID: cleaner.CleanerID}
	}

	if err := order.SetCleanersOpinion(opinion); err != nil {
		return fmt.Errorf("cleaner service: %w", err)
	}

	return s.orders.CloseOrder(ctx, order)
}

// assignmentEvent — событие, выведенное из присланного клиентом снимка заказа.
type assignmentEvent int

const (
	eventUnknown assignmentEvent = iota
	eventAccept
	eventReject
)

// assignmentTransitions — таблица допустимых переходов из состояния
// "заказ предложен и ждёт подтверждения" (active + закреплён за клинером).
var assignmentTransitions = map[assignmentEvent]string{
	eventAccept: models.OrderStatusInProgress,
	eventReject: models.OrderStatusActive,
}

// classifyAssignmentEvent определяет, что именно прислал клинер:
// принятие (in_progress, закреплён за ним) или отказ (active, никому
// не закреплён). Всё остальное — неизвестное событие.
func classifyAssignmentEvent(sent *models.Order, cleanerID string) assignmentEvent {
	switch {
	case sent.Status == models.OrderStatusInProgress && sent.AssignedTo(cleanerID):
		return eventAccept
	case sent.Status == models.OrderStatusActive && sent.CleanerID == nil:
		return eventReject
	default:
		return eventUnknown
	}
}

// wasAssignedButNotConfirmed сообщает, что сохранённый заказ предложен
// именно этому клинеру и ждёт его решения.
func wasAssignedButNotConfirmed(stored *models.Order, cleanerID string) bool {
	return stored.Status == models.OrderStatusActive && stored.AssignedTo(cleanerID)
}

// AcceptRejectOrder сверяет присланный клинером снимок заказа с сохранённым
// и применяет принятие либо отказ. Переход разрешён только из состояния
// active с закреплением за запрашивающим клинером; запись выполняется с
// проверкой версии, поэтому из двух одновременных подтверждений пройдёт
// только одно.
func (s *CleanerService) AcceptRejectOrder(ctx context.Context, cleanerID string, sentOrder *models.Order) error {
	cleaner, err := s.GetCleanerInfo(ctx, cleanerID)
	if err != nil {
		return err
	}

	stored, err := s.orders.GetOrder(ctx, sentOrder.OrderID)
	if err != nil {
		return err
	}

	// Проверяем права и по сохранённому, и по присланному заказу:
	// подделанный CleanerID в снимке не должен обходить проверку.
	if cleanerWithoutPrivileges(cleaner, stored) || cleanerWithoutPrivileges(cleaner, sentOrder) {
		return &apperror.WithoutPrivilegesError{CleanerID: cleaner.CleanerID}
	}

	event := classifyAssignmentEvent(sentOrder, cleanerID)
	target, legal := assignmentTransitions[event]

	if !wasAssignedButNotConfirmed(stored, cleanerID) || !legal {
		return &apperror.NotCorrectOrderStatusError{
			StoredStatus: stored.Status,
			SentStatus:   sentOrder.Status,
		}
	}

	// Переход применяется к сохранённому заказу: снимок клинера определяет
	// только событие, характеристики заказа он не переносит.
	stored.Status = target
	stored.CleanerID = sentOrder.CleanerID
	return s.orders.Update(ctx, stored)
}

// CleanerPatch перечисляет фрагменты профиля, присланные в запросе.
// Поле со значением nil в запросе отсутствовало и не трогается: решение
// об изменении принимается по присутствию фрагмента, а не по сравнению
// с нулевыми значениями.
type CleanerPatch struct {
	CleanerID       string
	Status          *string
	OrderFilter     *models.OrderFilter
	ScheduleEntries *[]models.ScheduleEntry
}

// UpdateCleaner выполняет upsert профиля клинера. Отсутствующий клинер
// вставляется целиком; у существующего независимо обновляются статус,
// фильтр и расписание — каждый присланный фрагмент своей записью.
func (s *CleanerService) UpdateCleaner(ctx context.Context, patch CleanerPatch) error {
	local, err := s.GetCleanerInfo(ctx, patch.CleanerID)
	if err != nil {
		if !apperror.IsNotFound(err) {
			return err
		}
		return s.cleaners.Create(ctx, newCleanerFromPatch(patch))
	}

	if patch.Status != nil {
		needStatus, err := needUpdateStatus(local.Status, *patch.Status)
		if err != nil {
			return err
		}
		if needStatus {
			if err := s.cleaners.UpdateStatus(ctx, local.CleanerID, *patch.Status); err != nil {
				return err
			}
			local.Status = *patch.Status
		}
	}

	if patch.OrderFilter != nil && !local.OrderFilter.Equal(*patch.OrderFilter) {
		if err := s.updateOrderFilter(ctx, local, *patch.OrderFilter); err != nil {
			return err
		}
	}

	if patch.ScheduleEntries != nil && !models.ScheduleEqual(local.ScheduleEntries, *patch.ScheduleEntries) {
		if err := s.updateSchedule(ctx, local, *patch.ScheduleEntries); err != nil {
			return err
		}
	}

	return nil
}

// newCleanerFromPatch собирает запись первой регистрации клинера.
func newCleanerFromPatch(patch CleanerPatch) *models.Cleaner {
	cleaner := &models.Cleaner{
		CleanerID: patch.CleanerID,
		Status:    models.CleanerStatusRegistered,
	}
	if patch.Status != nil {
		cleaner.Status = *patch.Status
	}
	if patch.OrderFilter != nil {
		cleaner.OrderFilter = *patch.OrderFilter
	}
	if patch.ScheduleEntries != nil {
		cleaner.ScheduleEntries = *patch.ScheduleEntries
	}
	return cleaner
}

// needUpdateStatus решает, нужен ли перенос статуса. Совпадающие статусы,
// включая banned→banned, — безвредный no-op. Различающиеся статусы, где
// любая из сторон banned, запрещены: бан и разбан идут через отдельный
// административный канал.
func needUpdateStatus(local, sent string) (bool, error) {
	if local == sent {
		return false, nil
	}
	if local == models.CleanerStatusBanned || sent == models.CleanerStatusBanned {
		return false, &apperror.CannotChangeBannedStatusError{
			LocalStatus: local,
			SentStatus:  sent,
		}
	}
	return true, nil
}

// activateIfRegistered переводит зарегистрированного клинера в активные
// перед первым содержательным обновлением профиля.
func (s *CleanerService) activateIfRegistered(ctx context.Context, local *models.Cleaner) error {
	if local.Status != models.CleanerStatusRegistered {
		return nil
	}
	if err := s.cleaners.UpdateStatus(ctx, local.CleanerID, models.CleanerStatusActive); err != nil {
		return err
	}
	local.Status = models.CleanerStatusActive
	return nil
}

func (s *CleanerService) updateOrderFilter(ctx context.Context, local *models.Cleaner, filter models.OrderFilter) error {
	if err := s.activateIfRegistered(ctx, local); err != nil {
		return err
	}
	if local.Status != models.CleanerStatusActive {
		return &apperror.UserNotActiveError{CleanerID: local.CleanerID, Status: local.Status}
	}
	if err := s.cleaners.UpdateFilter(ctx, local.CleanerID, filter); err != nil {
		return err
	}
	local.OrderFilter = filter
	return nil
}

func (s *CleanerService) updateSchedule(ctx context.Context, local *models.Cleaner, entries []models.ScheduleEntry) error {
	if err := s.activateIfRegistered(ctx, local); err != nil {
		return err
	}
	if local.Status != models.CleanerStatusActive {
		return &apperror.UserNotActiveError{CleanerID: local.CleanerID, Status: local.Status}
	}
	if err := s.cleaners.ReplaceSchedule(ctx, local.CleanerID, entries); err != nil {
		return err
	}
	local.ScheduleEntries = entries
	return nil
}

// SetCleanerStatus — административный канал смены статуса, в том числе
// бан и разбан, минуя ограничения обычного обновления профиля.
func (s *CleanerService) SetCleanerStatus(ctx context.Context, cleanerID, status string) error {
	if _, ok := models.ValidCleanerStatuses[status]; !ok {
		return fmt.Errorf("cleaner service: неизвестный статус %q", status)
	}
	if err := s.cleaners.UpdateStatus(ctx, cleanerID, status); err != nil {
		if errors.Is(err, repository.ErrCleanerNotFound) {
			return &apperror.CleanerNotFoundError{CleanerID: cleanerID}
		}
		return err
	}

	if logger.Log != nil {
		logger.Log.WithFields(logrus.Fields{
			"cleaner_id": cleanerID,
			"status":     status,
		}).Info("статус клинера изменён администратором")
	}
	return nil
}

// ListCleanersMatchingOrder возвращает активных клинеров, подходящих под
// заказ: расписание покрывает дату, фильтр допускает уровень загрязнения и
// цену, порог рейтинга клиента (если у клиента есть история) не превышен.
// Ранжирование на этом уровне не выполняется.
func (s *CleanerService) ListCleanersMatchingOrder(ctx context.Context, orderID int64) ([]models.Cleaner, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	clientRating, err := s.ratings.GetAverageClientRating(ctx, order.ClientID)
	if err != nil {
		return nil, err
	}

	params := repository.MatchParams{
		Date:         order.Date,
		MessLevel:    order.MessLevel,
		MaxPrice:     order.MaxPrice,
		ClientRating: clientRating,
	}

	return s.cleaners.ListMatching(ctx, params)
}

// ListCleanersMatchingOrderProfiles разрешает подходящих клинеров в
// отображаемые профили через внешний каталог.
func (s *CleanerService) ListCleanersMatchingOrderProfiles(ctx context.Context, orderID int64) ([]models.UserInfo, error) {
	if s.directory == nil {
		return nil, fmt.Errorf("cleaner service: внешний каталог не настроен")
	}

	cleaners, err := s.ListCleanersMatchingOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(cleaners))
	for _, cleaner := range cleaners {
		ids = append(ids, cleaner.CleanerID)
	}

	return s.directory.GetUserInfo(ctx, ids)
}
