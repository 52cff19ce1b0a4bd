package timeslot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
	"github.com/m04kA/SMC-TimeslotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TimeslotService/pkg/sqlbuilder"
)

const table = "timeslots"

var columns = []string{
	"id",
	"form_id",
	"start_at",
	"end_at",
	"capacity",
	"booked_count",
	"created_at",
	"updated_at",
}

// Repository хранилище слотов. Все границы времени в UTC, интервалы полуоткрытые [start, end).
type Repository struct {
	db          DBExecutor
	dialect     sqlbuilder.Dialect
	lockTimeout time.Duration
}

// NewRepository lockTimeout ограничивает ожидание блокировки строк в LockByIDs (0 - умолчание СУБД)
func NewRepository(db DBExecutor, dialect sqlbuilder.Dialect, lockTimeout time.Duration) *Repository {
	return &Repository{
		db:          db,
		dialect:     dialect,
		lockTimeout: lockTimeout,
	}
}

// CreateBatch вставляет слоты одним запросом. Совпадения по (form_id, start_at, end_at)
// пропускаются ограничением уникальности; возвращается число реально вставленных строк.
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.Timeslot) (int, error) {
	if len(slots) == 0 {
		return 0, nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := r.dialect.Insert(table).Columns(columns...)
	for _, s := range slots {
		builder = builder.Values(
			s.ID.String(),
			s.FormID.String(),
			s.StartAt.UTC(),
			s.EndAt.UTC(),
			s.Capacity,
			s.BookedCount,
			s.CreatedAt.UTC(),
			s.UpdatedAt.UTC(),
		)
	}

	query, args, err := builder.
		Suffix("ON CONFLICT (form_id, start_at, end_at) DO NOTHING").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - execute insert: %w", ErrExecQuery, err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - rows affected: %w", ErrExecQuery, err)
	}

	return int(inserted), nil
}

// GetByFormInRange слоты формы со start_at в [from, to), по возрастанию start_at
func (r *Repository) GetByFormInRange(ctx context.Context, formID uuid.UUID, from, to time.Time) ([]*domain.Timeslot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Select(columns...).
		From(table).
		Where(squirrel.Eq{"form_id": formID.String()}).
		Where(squirrel.GtOrEq{"start_at": from.UTC()}).
		Where(squirrel.Lt{"start_at": to.UTC()}).
		OrderBy("start_at ASC", "end_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFormInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFormInRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanTimeslots(rows)
}

// CountByForm количество слотов формы
func (r *Repository) CountByForm(ctx context.Context, formID uuid.UUID) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"form_id": formID.String()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByForm - build count query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByForm - execute query: %w", ErrExecQuery, err)
	}

	return count, nil
}

// GetFormCapacity вместимость существующих слотов формы.
// exists=false, если слотов нет; capacity=nil - безлимитные слоты.
func (r *Repository) GetFormCapacity(ctx context.Context, formID uuid.UUID) (capacity *int, exists bool, err error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Select("capacity").
		From(table).
		Where(squirrel.Eq{"form_id": formID.String()}).
		OrderBy("start_at ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("%w: GetFormCapacity - build select query: %v", ErrBuildQuery, err)
	}

	var value sql.NullInt64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: GetFormCapacity - execute query: %w", ErrExecQuery, err)
	}

	return nullIntPtr(value), true, nil
}

// List слоты формы с start_at >= Now и фильтром диапазона.
// OnlyAvailable оставляет слоты без лимита и с booked_count < capacity.
func (r *Repository) List(ctx context.Context, filter domain.TimeslotFilter) ([]*domain.Timeslot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := r.dialect.Select(columns...).
		From(table).
		Where(squirrel.Eq{"form_id": filter.FormID.String()}).
		Where(squirrel.GtOrEq{"start_at": filter.Now.UTC()})

	if filter.Range.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"start_at": filter.Range.From.UTC()})
	}
	if filter.Range.To != nil {
		builder = builder.Where(squirrel.Lt{"start_at": filter.Range.To.UTC()})
	}
	if filter.OnlyAvailable {
		builder = builder.Where(squirrel.Or{
			squirrel.Eq{"capacity": nil},
			squirrel.Expr("booked_count < capacity"),
		})
	}

	query, args, err := builder.
		OrderBy("start_at ASC", "id ASC").
		Limit(uint64(filter.Page.Limit)).
		Offset(uint64(filter.Page.Offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanTimeslots(rows)
}

// LockByIDs блокирует строки слотов до конца транзакции, всегда в порядке id,
// чтобы параллельные бронирования нескольких слотов не ловили дедлок.
// Отсутствующие id просто не попадают в результат.
func (r *Repository) LockByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Timeslot, error) {
	if !dbmetrics.IsInTransaction(ctx) {
		return nil, ErrNotInTx
	}
	if len(ids) == 0 {
		return nil, nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if r.lockTimeout > 0 && r.dialect.SupportsLockTimeout() {
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())
		if _, err := executor.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("%w: LockByIDs - set lock timeout: %w", ErrExecQuery, err)
		}
	}

	builder := r.dialect.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": sortedIDStrings(ids)}).
		OrderBy("id ASC")
	if suffix := r.dialect.LockSuffix(); suffix != "" {
		builder = builder.Suffix(suffix)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: LockByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: LockByIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanTimeslots(rows)
}

// IncrementBookedCount увеличивает booked_count на 1 у каждого слота, где есть место.
// Возвращает число обновленных строк; меньше len(ids) означает, что кто-то занял место.
func (r *Repository) IncrementBookedCount(ctx context.Context, ids []uuid.UUID, now time.Time) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Update(table).
		Set("booked_count", squirrel.Expr("booked_count + 1")).
		Set("updated_at", now.UTC()).
		Where(squirrel.Eq{"id": sortedIDStrings(ids)}).
		Where(squirrel.Or{
			squirrel.Eq{"capacity": nil},
			squirrel.Expr("booked_count < capacity"),
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: IncrementBookedCount - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: IncrementBookedCount - execute update: %w", ErrExecQuery, err)
	}

	updated, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: IncrementBookedCount - rows affected: %w", ErrExecQuery, err)
	}

	return int(updated), nil
}

// DeleteIfUnbooked удаляет слот, только если booked_count = 0 в момент удаления.
// false означает, что слот уже занят (или удален).
func (r *Repository) DeleteIfUnbooked(ctx context.Context, id uuid.UUID) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Delete(table).
		Where(squirrel.Eq{"id": id.String()}).
		Where(squirrel.Eq{"booked_count": 0}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: DeleteIfUnbooked - build delete query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: DeleteIfUnbooked - execute delete: %w", ErrExecQuery, err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: DeleteIfUnbooked - rows affected: %w", ErrExecQuery, err)
	}

	return deleted > 0, nil
}

// scanTimeslots сканирует строки в слайс слотов
func (r *Repository) scanTimeslots(rows *sql.Rows) ([]*domain.Timeslot, error) {
	result := make([]*domain.Timeslot, 0)

	for rows.Next() {
		var (
			slot     domain.Timeslot
			capacity sql.NullInt64
		)
		if err := rows.Scan(
			&slot.ID,
			&slot.FormID,
			&slot.StartAt,
			&slot.EndAt,
			&capacity,
			&slot.BookedCount,
			&slot.CreatedAt,
			&slot.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrScanRow, err)
		}

		slot.Capacity = nullIntPtr(capacity)
		slot.StartAt = slot.StartAt.UTC()
		slot.EndAt = slot.EndAt.UTC()
		slot.CreatedAt = slot.CreatedAt.UTC()
		slot.UpdatedAt = slot.UpdatedAt.UTC()
		result = append(result, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows iteration: %w", ErrScanRow, err)
	}

	return result, nil
}

func nullIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func sortedIDStrings(ids []uuid.UUID) []string {
	result := make([]string, len(ids))
	for i, id := range ids {
		result[i] = id.String()
	}
	sort.Strings(result)
	return result
}
