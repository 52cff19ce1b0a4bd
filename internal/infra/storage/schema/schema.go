// Package schema хранит DDL таблиц планировщика для поддерживаемых диалектов.
package schema

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TimeslotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TimeslotService/pkg/sqlbuilder"
)

var (
	//go:embed postgres.sql
	postgresDDL string
	//go:embed sqlite.sql
	sqliteDDL string
)

// DDL возвращает скрипт создания схемы для диалекта
func DDL(dialect sqlbuilder.Dialect) string {
	if dialect == sqlbuilder.SQLite {
		return sqliteDDL
	}
	return postgresDDL
}

// Apply выполняет DDL по одному выражению. Скрипт идемпотентен (IF NOT EXISTS).
func Apply(ctx context.Context, db dbmetrics.DBExecutor, dialect sqlbuilder.Dialect) error {
	for _, stmt := range statements(DDL(dialect)) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema: apply %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func statements(script string) []string {
	parts := strings.Split(script, ";")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			result = append(result, s)
		}
	}
	return result
}

func firstLine(stmt string) string {
	if i := strings.IndexByte(stmt, '\n'); i >= 0 {
		return stmt[:i]
	}
	return stmt
}
