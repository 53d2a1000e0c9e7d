package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/partyklinest/cleaning-backend/internal/models"
)

// ErrCleanerNotFound возвращается, когда запись клинера не найдена.
var ErrCleanerNotFound = errors.New("cleaner not found")

// CleanerRepository отвечает за работу с таблицами cleaners и cleaner_schedule_entries.
type CleanerRepository struct {
	db *sqlx.DB
}

// NewCleanerRepository создаёт экземпляр репозитория.
func NewCleanerRepository(db *sqlx.DB) *CleanerRepository {
	return &CleanerRepository{db: db}
}

// cleanerRow — плоское представление строки cleaners.
type cleanerRow struct {
	CleanerID       string    `db:"cleaner_id"`
	Status          string    `db:"status"`
	MaxMessLevel    int       `db:"max_mess_level"`
	MinPrice        float64   `db:"min_price"`
	MaxPrice        float64   `db:"max_price"`
	MinClientRating *float64  `db:"min_client_rating"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (r cleanerRow) toModel() models.Cleaner {
	return models.Cleaner{
		CleanerID: r.CleanerID,
		Status:    r.Status,
		OrderFilter: models.OrderFilter{
			MaxMessLevel:    r.MaxMessLevel,
			MinPrice:        r.MinPrice,
			MaxPrice:        r.MaxPrice,
			MinClientRating: r.MinClientRating,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// GetByID возвращает клинера вместе с расписанием.
func (r *CleanerRepository) GetByID(ctx context.Context, cleanerID string) (*models.Cleaner, error) {
	var row cleanerRow
	query := `
		SELECT cleaner_id, status, max_mess_level, min_price, max_price, min_client_rating, created_at, updated_at
		FROM cleaners
		WHERE cleaner_id = $1
	`
	if err := r.db.GetContext(ctx, &row, query, cleanerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCleanerNotFound
		}
		return nil, fmt.Errorf("cleaner repository: get by id %w", err)
	}

	cleaner := row.toModel()

	schedule, err := r.listSchedule(ctx, cleanerID)
	if err != nil {
		return nil, err
	}
	cleaner.ScheduleEntries = schedule

	return &cleaner, nil
}

// Create сохраняет нового клинера вместе с расписанием в одной транзакции.
func (r *CleanerRepository) Create(ctx context.Context, cleaner *models.Cleaner) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("cleaner repository: begin tx %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO cleaners (cleaner_id, status, max_mess_level, min_price, max_price, min_client_rating)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	if err := tx.QueryRowxContext(
		ctx, query,
		cleaner.CleanerID, cleaner.Status,
		cleaner.OrderFilter.MaxMessLevel, cleaner.OrderFilter.MinPrice,
		cleaner.OrderFilter.MaxPrice, cleaner.OrderFilter.MinClientRating,
	).Scan(&cleaner.CreatedAt, &cleaner.UpdatedAt); err != nil {
		return fmt.Errorf("cleaner repository: create %w", err)
	}

	if err := insertSchedule(ctx, tx, cleaner.CleanerID, cleaner.ScheduleEntries); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("cleaner repository: commit create %w", err)
	}
	return nil
}

// UpdateStatus записывает только статус клинера.
func (r *CleanerRepository) UpdateStatus(ctx context.Context, cleanerID, status string) error {
	query := `UPDATE cleaners SET status = $2, updated_at = NOW() WHERE cleaner_id = $1`
	res, err := r.db.ExecContext(ctx, query, cleanerID, status)
	if err != nil {
		return fmt.Errorf("cleaner repository: update status %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCleanerNotFound
	}
	return nil
}

// UpdateFilter записывает только фильтр заказов клинера.
func (r *CleanerRepository) UpdateFilter(ctx context.Context, cleanerID string, filter models.OrderFilter) error {
	query := `
		UPDATE cleaners
		SET max_mess_level = $2, min_price = $3, max_price = $4, min_client_rating = $5, updated_at = NOW()
		WHERE cleaner_id = $1
	`
	res, err := r.db.ExecContext(ctx, query, cleanerID,
		filter.MaxMessLevel, filter.MinPrice, filter.MaxPrice, filter.MinClientRating)
	if err != nil {
		return fmt.Errorf("cleaner repository: update filter %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCleanerNotFound
	}
	return nil
}

// ReplaceSchedule полностью заменяет расписание клинера, сохраняя порядок записей.
func (r *CleanerRepository) ReplaceSchedule(ctx context.Context, cleanerID string, entries []models.ScheduleEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("cleaner repository: begin tx %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cleaner_schedule_entries WHERE cleaner_id = $1`, cleanerID); err != nil {
		return fmt.Errorf("cleaner repository: clear schedule %w", err)
	}

	if err := insertSchedule(ctx, tx, cleanerID, entries); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE cleaners SET updated_at = NOW() WHERE cleaner_id = $1`, cleanerID); err != nil {
		return fmt.Errorf("cleaner repository: touch cleaner %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("cleaner repository: commit schedule %w", err)
	}
	return nil
}

// MatchParams описывает критерии подбора клинеров под заказ.
// ClientRating равен nil, если у клиента ещё нет истории оценок.
type MatchParams struct {
	Date         time.Time
	MessLevel    int
	MaxPrice     float64
	ClientRating *float64
}

// ListMatching возвращает активных клинеров, подходящих под параметры заказа:
// расписание покрывает день заказа, фильтр допускает уровень загрязнения и
// цену, а порог рейтинга клиента (если задан у обеих сторон) не превышен.
func (r *CleanerRepository) ListMatching(ctx context.Context, params MatchParams) ([]models.Cleaner, error) {
	query := `
		SELECT c.cleaner_id, c.status, c.max_mess_level, c.min_price, c.max_price, c.min_client_rating, c.created_at, c.updated_at
		FROM cleaners c
		WHERE c.status = $1
		  AND c.max_mess_level >= $2
		  AND c.min_price <= $3
		  AND ($4::float8 IS NULL OR c.min_client_rating IS NULL OR c.min_client_rating <= $4)
		  AND EXISTS (
			SELECT 1 FROM cleaner_schedule_entries s
			WHERE s.cleaner_id = c.cleaner_id AND s.day_of_week = $5
		  )
		ORDER BY c.cleaner_id
	`

	var rows []cleanerRow
	err := r.db.SelectContext(ctx, &rows, query,
		models.CleanerStatusActive, params.MessLevel, params.MaxPrice,
		params.ClientRating, int(params.Date.Weekday()))
	if err != nil {
		return nil, fmt.Errorf("cleaner repository: list matching %w", err)
	}

	cleaners := make([]models.Cleaner, 0, len(rows))
	for _, row := range rows {
		cleaner := row.toModel()
		schedule, err := r.listSchedule(ctx, cleaner.CleanerID)
		if err != nil {
			return nil, err
		}
		cleaner.ScheduleEntries = schedule
		cleaners = append(cleaners, cleaner)
	}

	return cleaners, nil
}

// listSchedule возвращает записи расписания в сохранённом порядке.
func (r *CleanerRepository) listSchedule(ctx context.Context, cleanerID string) ([]models.ScheduleEntry, error) {
	var entries []models.ScheduleEntry
	query := `
		SELECT day_of_week, start_time, end_time
		FROM cleaner_schedule_entries
		WHERE cleaner_id = $1
		ORDER BY position
	`
	if err := r.db.SelectContext(ctx, &entries, query, cleanerID); err != nil {
		return nil, fmt.Errorf("cleaner repository: list schedule %w", err)
	}
	return entries, nil
}

// insertSchedule вставляет записи расписания с их порядковыми номерами.
func insertSchedule(ctx context.Context, tx *sqlx.Tx, cleanerID string, entries []models.ScheduleEntry) error {
	query := `
		INSERT INTO cleaner_schedule_entries (cleaner_id, position, day_of_week, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5)
	`
	for i, entry := range entries {
		if _, err := tx.ExecContext(ctx, query, cleanerID, i, entry.DayOfWeek, entry.StartTime, entry.EndTime); err != nil {
			return fmt.Errorf("cleaner repository: insert schedule entry %w", err)
		}
	}
	return nil
}
