package common

import (
	"fmt"
	"strings"
)

// Dialect скрывает различия SQL между MySQL и PostgreSQL.
// Обычные запросы пишутся с "?" и проходят через sqlx Rebind, здесь только upsert-конструкции.
type Dialect struct {
	driver string
}

// NewDialect создаёт диалект по имени драйвера sqlx.
func NewDialect(driver string) Dialect {
	return Dialect{driver: strings.ToLower(driver)}
}

// IsPostgres true для драйвера postgres.
func (d Dialect) IsPostgres() bool {
	return d.driver == "postgres" || d.driver == "pgx"
}

// InsertIgnore строит INSERT, который молча пропускает дубликаты по уникальному ключу.
func (d Dialect) InsertIgnore(table string, columns ...string) string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	if d.IsPostgres() {
		return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT DO NOTHING",
			table, strings.Join(columns, ", "), placeholders)
	}
	return fmt.Sprintf("INSERT IGNORE INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), placeholders)
}

// Upsert строит INSERT, который при конфликте по conflictColumns обновляет updateColumns.
func (d Dialect) Upsert(table string, columns, conflictColumns, updateColumns []string) string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	base := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), placeholders)

	sets := make([]string, 0, len(updateColumns))
	for _, col := range updateColumns {
		if d.IsPostgres() {
			sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
		} else {
			sets = append(sets, fmt.Sprintf("%s = VALUES(%s)", col, col))
		}
	}

	if d.IsPostgres() {
		return fmt.Sprintf("%s ON CONFLICT (%s) DO UPDATE SET %s", base, strings.Join(conflictColumns, ", "), strings.Join(sets, ", "))
	}
	return fmt.Sprintf("%s ON DUPLICATE KEY UPDATE %s", base, strings.Join(sets, ", "))
}

// ContainsLike выражение для регистронезависимого поиска подстроки.
func (d Dialect) ContainsLike(column string) string {
	return fmt.Sprintf("LOWER(%s) LIKE ?", column)
}

// LikePattern оборачивает строку поиска в %...% с экранированием спецсимволов.
func LikePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + strings.ToLower(r.Replace(strings.TrimSpace(s))) + "%"
}
