// Package sqlstore implements the domain repositories on database/sql.
// Queries use $N placeholders in strict order, which both the pgx stdlib
// driver and go-sqlite3 bind positionally.
package sqlstore
