package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
	"github.com/m04kA/SMC-TimeslotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TimeslotService/pkg/dberrors"
	"github.com/m04kA/SMC-TimeslotService/pkg/sqlbuilder"
)

const table = "registration_timeslots"

// Repository записи бронирования (связь регистрации со слотом)
type Repository struct {
	db      DBExecutor
	dialect sqlbuilder.Dialect
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, dialect sqlbuilder.Dialect) *Repository {
	return &Repository{db: db, dialect: dialect}
}

// CreateBatch создает записи бронирования одним запросом.
// Вызывается внутри транзакции бронирования, после блокировки слотов.
// Повтор пары (registration_id, timeslot_id) дает ErrAlreadyBooked.
func (r *Repository) CreateBatch(ctx context.Context, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := r.dialect.Insert(table).
		Columns("id", "registration_id", "timeslot_id", "created_at")
	for _, b := range bookings {
		builder = builder.Values(b.ID.String(), b.RegistrationID.String(), b.TimeslotID.String(), b.CreatedAt.UTC())
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %w", ErrAlreadyBooked, err)
		}
		return fmt.Errorf("%w: CreateBatch - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// GetHeldTimeslotIDs возвращает те из timeslotIDs, которые уже забронированы регистрацией
func (r *Repository) GetHeldTimeslotIDs(ctx context.Context, registrationID uuid.UUID, timeslotIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(timeslotIDs) == 0 {
		return nil, nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	ids := make([]string, len(timeslotIDs))
	for i, id := range timeslotIDs {
		ids[i] = id.String()
	}

	query, args, err := r.dialect.Select("timeslot_id").
		From(table).
		Where(squirrel.Eq{"registration_id": registrationID.String()}).
		Where(squirrel.Eq{"timeslot_id": ids}).
		OrderBy("timeslot_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetHeldTimeslotIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetHeldTimeslotIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: GetHeldTimeslotIDs - scan: %v", ErrScanRow, err)
		}
		result = append(result, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetHeldTimeslotIDs - rows iteration: %w", ErrScanRow, err)
	}

	return result, nil
}

// ListByRegistration слоты, забронированные регистрацией, по возрастанию start_at
func (r *Repository) ListByRegistration(ctx context.Context, registrationID uuid.UUID) ([]*domain.BookedTimeslot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Select(
		"rt.id",
		"rt.created_at",
		"t.id",
		"t.form_id",
		"t.start_at",
		"t.end_at",
		"t.capacity",
		"t.booked_count",
		"t.created_at",
		"t.updated_at",
	).
		From(table + " rt").
		Join("timeslots t ON t.id = rt.timeslot_id").
		Where(squirrel.Eq{"rt.registration_id": registrationID.String()}).
		OrderBy("t.start_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRegistration - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRegistration - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookedTimeslots(rows)
}

func scanBookedTimeslots(rows *sql.Rows) ([]*domain.BookedTimeslot, error) {
	result := make([]*domain.BookedTimeslot, 0)

	for rows.Next() {
		var (
			item     domain.BookedTimeslot
			capacity sql.NullInt64
		)
		if err := rows.Scan(
			&item.BookingID,
			&item.BookedAt,
			&item.Timeslot.ID,
			&item.Timeslot.FormID,
			&item.Timeslot.StartAt,
			&item.Timeslot.EndAt,
			&capacity,
			&item.Timeslot.BookedCount,
			&item.Timeslot.CreatedAt,
			&item.Timeslot.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrScanRow, err)
		}

		if capacity.Valid {
			c := int(capacity.Int64)
			item.Timeslot.Capacity = &c
		}
		item.BookedAt = item.BookedAt.UTC()
		item.Timeslot.StartAt = item.Timeslot.StartAt.UTC()
		item.Timeslot.EndAt = item.Timeslot.EndAt.UTC()
		item.Timeslot.CreatedAt = item.Timeslot.CreatedAt.UTC()
		item.Timeslot.UpdatedAt = item.Timeslot.UpdatedAt.UTC()
		result = append(result, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows iteration: %w", ErrScanRow, err)
	}

	return result, nil
}
