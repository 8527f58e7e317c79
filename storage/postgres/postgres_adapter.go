package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq" // Registers the driver with database/sql and provides array parameters

	"home-address/storage"
)

const (
	sslModeKey   = "sslmode"
	passwordKey  = "password"
	hostKey      = "host"
	portKey      = "port"
	userKey      = "user"
	dbNameKey    = "dbname"
	tableNameKey = "tablename"
)

var _ storage.Adapter = (*PgAdapter)(nil)

// PgAdapter represents the postgres storage adapter; a record is the set of
// (key, field, value) rows sharing one key
type PgAdapter struct {
	tableName string
	conn      *sql.DB
}

// createTable creates the record table if it does not exist yet
func (a PgAdapter) createTable(ctx context.Context) error {
	sqlStatement := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (key TEXT NOT NULL, field TEXT NOT NULL, value TEXT NOT NULL, PRIMARY KEY (key, field));",
		pq.QuoteIdentifier(a.tableName))

	_, err := a.conn.ExecContext(ctx, sqlStatement)
	return err
}

// PgOptionFunc describes functions which add optional connection variables to Postgres
type PgOptionFunc func(options map[string]string)

// WithPassword is an optional function to provide a password to connect to the database with; default is empty
func WithPassword(password string) PgOptionFunc {
	return func(options map[string]string) {
		options[passwordKey] = password
	}
}

// WithTableName is an optional function to provide a table name for record rows; default is using the database name
func WithTableName(tableName string) PgOptionFunc {
	return func(options map[string]string) {
		options[tableNameKey] = tableName
	}
}

// WithSslOn is an optional function to make ssl required; default is disabled
func WithSslOn() PgOptionFunc {
	return func(options map[string]string) {
		options[sslModeKey] = "require"
	}
}

// applyOpts iterates over the options provided, adds them to the connection variables map, and returns the options
// in string format as optKey=optValue
func applyOpts(connVars map[string]string, pgOpts []PgOptionFunc) string {
	for _, pgOpt := range pgOpts {
		pgOpt(connVars)
	}

	var sb strings.Builder
	for key, val := range connVars {
		if key == tableNameKey || val == "" { // Table name is not a connection option; keep it in the map for later use
			continue
		}
		fmt.Fprintf(&sb, "%s=%s ", key, val)
	}

	return sb.String()
}

// NewAdapter instantiates a new postgres PgAdapter and makes sure the record table exists
func NewAdapter(ctx context.Context, host string, port string, user string, dbName string, pgOpts ...PgOptionFunc) (*PgAdapter, error) {
	connVars := map[string]string{hostKey: host, portKey: port, dbNameKey: dbName, userKey: user, sslModeKey: "disable"}
	psqlInfo := applyOpts(connVars, pgOpts)

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		return nil, err
	}

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	tableName := dbName                                   // Default table name to the db name
	if tbName, exists := connVars[tableNameKey]; exists { // If option passed in for table name, use the option instead of default
		tableName = tbName
	}

	adapter := &PgAdapter{conn: db, tableName: tableName}
	if err = adapter.createTable(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create table %s: %w", tableName, err)
	}

	return adapter, nil
}

// Exists reports whether any row is stored for key
func (a PgAdapter) Exists(ctx context.Context, key string) (bool, error) {
	sqlStatement := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE key=$1)", pq.QuoteIdentifier(a.tableName))

	var exists bool
	if err := a.conn.QueryRowContext(ctx, sqlStatement, key).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

// SetRecord upserts every field of record inside one transaction
func (a PgAdapter) SetRecord(ctx context.Context, key string, record map[string]string) error {
	sqlStatement := fmt.Sprintf(
		"INSERT INTO %s (key, field, value) VALUES ($1, $2, $3) ON CONFLICT (key, field) DO UPDATE SET value=EXCLUDED.value",
		pq.QuoteIdentifier(a.tableName))

	tx, err := a.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() // No-op once committed

	for field, value := range record {
		if _, err := tx.ExecContext(ctx, sqlStatement, key, field, value); err != nil {
			return fmt.Errorf("could not write field %s: %w", field, err)
		}
	}

	return tx.Commit()
}

// GetRecord retrieves all fields stored for key; the map is empty if key is absent
func (a PgAdapter) GetRecord(ctx context.Context, key string) (map[string]string, error) {
	sqlStatement := fmt.Sprintf("SELECT field, value FROM %s WHERE key=$1", pq.QuoteIdentifier(a.tableName))

	rows, err := a.conn.QueryContext(ctx, sqlStatement, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	record := make(map[string]string)
	var field, value string
	for rows.Next() {
		if err = rows.Scan(&field, &value); err != nil {
			return nil, fmt.Errorf("could not transform rows into a record: %w", err)
		}

		record[field] = value
	}
	// Get any error encountered during iteration
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error while iterating over rows: %w", err)
	}

	return record, nil
}

// FieldNames lists the fields stored for key
func (a PgAdapter) FieldNames(ctx context.Context, key string) ([]string, error) {
	sqlStatement := fmt.Sprintf("SELECT field FROM %s WHERE key=$1 ORDER BY field", pq.QuoteIdentifier(a.tableName))

	rows, err := a.conn.QueryContext(ctx, sqlStatement, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fields []string
	var field string
	for rows.Next() {
		if err = rows.Scan(&field); err != nil {
			return nil, fmt.Errorf("could not transform rows into field names: %w", err)
		}

		fields = append(fields, field)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error while iterating over rows: %w", err)
	}

	return fields, nil
}

// DeleteFields removes the named fields stored for key
func (a PgAdapter) DeleteFields(ctx context.Context, key string, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}

	sqlStatement := fmt.Sprintf("DELETE FROM %s WHERE key=$1 AND field = ANY($2)", pq.QuoteIdentifier(a.tableName))

	_, err := a.conn.ExecContext(ctx, sqlStatement, key, pq.Array(fields))
	return err
}

// Ping checks the connection
func (a PgAdapter) Ping(ctx context.Context) error {
	return a.conn.PingContext(ctx)
}

// Close closes the underlying connection pool
func (a PgAdapter) Close() error {
	return a.conn.Close()
}
