package postgres

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// placeholderClause appends the positional placeholder for the n-th
// argument to a SQL fragment, e.g. placeholderClause(" AND email = ", 2)
// yields " AND email = $2". Used by the filtered list queries, which build
// their WHERE clause from whichever filter fields are set.
func placeholderClause(fragment string, n int) string {
	return fmt.Sprintf("%s$%d", fragment, n)
}

func closeRows(rows *sql.Rows, log *slog.Logger) {
	if err := rows.Close(); err != nil {
		log.Error("failed to close rows", slog.String("error", err.Error()))
	}
}
