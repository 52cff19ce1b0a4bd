package sqlbuilder

import (
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
)

// Dialect диалект SQL хранилища
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// ParseDialect разбирает имя драйвера из конфигурации
func ParseDialect(s string) (Dialect, error) {
	switch Dialect(strings.ToLower(strings.TrimSpace(s))) {
	case Postgres, "postgresql", "":
		return Postgres, nil
	case SQLite, "sqlite3":
		return SQLite, nil
	default:
		return "", fmt.Errorf("sqlbuilder: unsupported dialect %q", s)
	}
}

// DriverName имя драйвера для sql.Open
func (d Dialect) DriverName() string {
	if d == SQLite {
		return "sqlite"
	}
	return "postgres"
}

// SQLiteDSN строка подключения modernc.org/sqlite: времена пишутся в сортируемом формате,
// включены внешние ключи и ожидание занятой базы
func SQLiteDSN(path string, busyTimeout time.Duration) string {
	return fmt.Sprintf("file:%s?mode=rwc&_time_format=sqlite&_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)",
		path, busyTimeout.Milliseconds())
}

// Builder squirrel-билдер с плейсхолдерами диалекта
func (d Dialect) Builder() squirrel.StatementBuilderType {
	if d == SQLite {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
	}
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// LockSuffix суффикс для блокировки строк внутри транзакции.
// В SQLite блокировок строк нет: запись сериализуется единственным соединением.
func (d Dialect) LockSuffix() string {
	if d == SQLite {
		return ""
	}
	return "FOR UPDATE"
}

// SupportsIsolationLevels можно ли передавать уровень изоляции в BeginTx
func (d Dialect) SupportsIsolationLevels() bool {
	return d != SQLite
}

// SupportsLockTimeout поддерживается ли SET LOCAL lock_timeout
func (d Dialect) SupportsLockTimeout() bool {
	return d == Postgres
}

// Select, Insert, Update, Delete сокращения для Builder()

func (d Dialect) Select(columns ...string) squirrel.SelectBuilder {
	return d.Builder().Select(columns...)
}

func (d Dialect) Insert(table string) squirrel.InsertBuilder {
	return d.Builder().Insert(table)
}

func (d Dialect) Update(table string) squirrel.UpdateBuilder {
	return d.Builder().Update(table)
}

func (d Dialect) Delete(table string) squirrel.DeleteBuilder {
	return d.Builder().Delete(table)
}
