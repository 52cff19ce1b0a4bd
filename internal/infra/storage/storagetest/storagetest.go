// Package storagetest поднимает SQLite-базу со схемой сервиса для тестов.
package storagetest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
	"github.com/m04kA/SMC-TimeslotService/internal/infra/storage/schema"
	"github.com/m04kA/SMC-TimeslotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TimeslotService/pkg/sqlbuilder"
	"github.com/m04kA/SMC-TimeslotService/pkg/txmanager"
)

// Fixture база, диалект и менеджер транзакций одного теста
type Fixture struct {
	DB        *dbmetrics.DB
	Dialect   sqlbuilder.Dialect
	TxManager *txmanager.TransactionManager
}

// Open создает файл базы во временном каталоге теста и применяет схему.
// Одно соединение: записи сериализуются так же, как в боевом sqlite-режиме.
func Open(t testing.TB) *Fixture {
	t.Helper()

	path := filepath.Join(t.TempDir(), "timeslots.db")
	db, err := sql.Open("sqlite", sqlbuilder.SQLiteDSN(path, 5*time.Second))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, schema.Apply(context.Background(), db, sqlbuilder.SQLite))

	wrapped := dbmetrics.Wrap(db, nil)
	return &Fixture{
		DB:        wrapped,
		Dialect:   sqlbuilder.SQLite,
		TxManager: txmanager.NewTransactionManager(wrapped, false),
	}
}

// CreateForm вставляет форму
func (f *Fixture) CreateForm(t testing.TB, zone *string, status domain.FormStatus) uuid.UUID {
	t.Helper()

	id := uuid.New()
	now := time.Now().UTC()
	query, args, err := f.Dialect.Insert("signup_forms").
		Columns("id", "time_zone", "status", "created_at", "updated_at").
		Values(id.String(), zone, string(status), now, now).
		ToSql()
	require.NoError(t, err)

	_, err = f.DB.ExecContext(context.Background(), query, args...)
	require.NoError(t, err)
	return id
}

// CreateRegistration вставляет регистрацию на форму
func (f *Fixture) CreateRegistration(t testing.TB, formID uuid.UUID) uuid.UUID {
	t.Helper()

	id := uuid.New()
	query, args, err := f.Dialect.Insert("registrations").
		Columns("id", "form_id", "created_at").
		Values(id.String(), formID.String(), time.Now().UTC()).
		ToSql()
	require.NoError(t, err)

	_, err = f.DB.ExecContext(context.Background(), query, args...)
	require.NoError(t, err)
	return id
}

// SetBookedCount напрямую выставляет занятость слота
func (f *Fixture) SetBookedCount(t testing.TB, timeslotID uuid.UUID, booked int) {
	t.Helper()

	query, args, err := f.Dialect.Update("timeslots").
		Set("booked_count", booked).
		Where("id = ?", timeslotID.String()).
		ToSql()
	require.NoError(t, err)

	_, err = f.DB.ExecContext(context.Background(), query, args...)
	require.NoError(t, err)
}

// CountBookings количество записей бронирования слота
func (f *Fixture) CountBookings(t testing.TB, timeslotID uuid.UUID) int {
	t.Helper()

	query, args, err := f.Dialect.Select("COUNT(*)").
		From("registration_timeslots").
		Where("timeslot_id = ?", timeslotID.String()).
		ToSql()
	require.NoError(t, err)

	var n int
	require.NoError(t, f.DB.QueryRowContext(context.Background(), query, args...).Scan(&n))
	return n
}
