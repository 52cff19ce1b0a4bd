package form

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
	"github.com/m04kA/SMC-TimeslotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TimeslotService/pkg/sqlbuilder"
)

// Repository чтение форм. Формы принадлежат конструктору форм, здесь только поиск по ID.
type Repository struct {
	db      DBExecutor
	dialect sqlbuilder.Dialect
}

func NewRepository(db DBExecutor, dialect sqlbuilder.Dialect) *Repository {
	return &Repository{db: db, dialect: dialect}
}

// GetByID возвращает форму или ErrFormNotFound
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Form, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.Select("id", "time_zone", "status").
		From("signup_forms").
		Where(squirrel.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		form     domain.Form
		timeZone sql.NullString
		status   string
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(&form.ID, &timeZone, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan row: %w", ErrExecQuery, err)
	}

	if timeZone.Valid {
		form.TimeZone = &timeZone.String
	}
	form.Status = domain.FormStatus(status)

	return &form, nil
}
