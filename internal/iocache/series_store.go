// Package iocache is for durable storage of fetched series.
package iocache

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fredline/fredline/internal/contract"
	"github.com/fredline/fredline/schema"
	"github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// Table names used by the series store.
const (
	seriesTable       = "series"
	observationsTable = "observations"
)

// SeriesStoreImpl handles durable storage operations using various database backends.
type SeriesStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
	connStr    string
}

var _ contract.SeriesStore = &SeriesStoreImpl{} // Compile-time check

// NewSeriesStore initializes and returns a new SeriesStore based on the backend type.
func NewSeriesStore(backend schema.DatabaseBackend, connStr string) (contract.SeriesStore, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetStoreDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite store at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL store: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL store: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled storage
		return &SeriesStoreImpl{
			db:      nil,
			backend: backend,
			connStr: connStr,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported store backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	// Ping to verify connection (skip for NoneBackend)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	// Create the table schema
	for _, query := range getCreateTableQueries(backend) {
		if _, err := db.Exec(query); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create store tables: %w", err)
		}
	}

	return &SeriesStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
		connStr:    connStr,
	}, nil
}

// getCreateTableQueries returns the CREATE TABLE queries for the given backend.
func getCreateTableQueries(backend schema.DatabaseBackend) []string {
	switch backend {
	case schema.MySQLBackend:
		return []string{
			fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS %s (
					series_id VARCHAR(64) PRIMARY KEY,
					title TEXT NOT NULL,
					frequency VARCHAR(64) NOT NULL,
					units TEXT NOT NULL,
					last_updated VARCHAR(64) NOT NULL,
					created_at BIGINT NOT NULL
				);
			`, seriesTable),
			fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS %s (
					series_id VARCHAR(64) NOT NULL,
					obs_index INT NOT NULL,
					obs_date VARCHAR(16) NOT NULL,
					obs_value VARCHAR(64) NOT NULL,
					PRIMARY KEY (series_id, obs_index)
				);
			`, observationsTable),
		}

	case schema.PostgreSQLBackend:
		return []string{
			fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS %s (
					series_id TEXT PRIMARY KEY,
					title TEXT NOT NULL,
					frequency TEXT NOT NULL,
					units TEXT NOT NULL,
					last_updated TEXT NOT NULL,
					created_at BIGINT NOT NULL
				);
			`, seriesTable),
			fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS %s (
					series_id TEXT NOT NULL,
					obs_index INTEGER NOT NULL,
					obs_date TEXT NOT NULL,
					obs_value TEXT NOT NULL,
					PRIMARY KEY (series_id, obs_index)
				);
			`, observationsTable),
		}

	default: // SQLite
		return []string{
			fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS %s (
					series_id TEXT PRIMARY KEY,
					title TEXT NOT NULL,
					frequency TEXT NOT NULL,
					units TEXT NOT NULL,
					last_updated TEXT NOT NULL,
					created_at INTEGER NOT NULL
				);
			`, seriesTable),
			fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS %s (
					series_id TEXT NOT NULL,
					obs_index INTEGER NOT NULL,
					obs_date TEXT NOT NULL,
					obs_value TEXT NOT NULL,
					PRIMARY KEY (series_id, obs_index)
				);
			`, observationsTable),
		}
	}
}

// placeholders returns n comma-joined parameter placeholders for the backend,
// starting at position start (1-based, relevant for PostgreSQL).
func (ss *SeriesStoreImpl) placeholders(start, n int) string {
	parts := make([]string, n)
	for i := range parts {
		if ss.backend == schema.PostgreSQLBackend {
			parts[i] = fmt.Sprintf("$%d", start+i)
		} else {
			parts[i] = "?"
		}
	}
	return strings.Join(parts, ", ")
}

// SaveSeries persists a series record, replacing any existing record with the
// same series ID along with its observations. The write is transactional so a
// partial replacement is never visible.
func (ss *SeriesStoreImpl) SaveSeries(rec schema.SeriesRecord) error {
	// Skip for NoneBackend
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return nil
	}

	createdAt := rec.CreatedAt
	if createdAt == 0 {
		createdAt = time.Now().Unix()
	}

	tx, err := ss.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	upsert := ss.getSeriesUpsertQuery()
	if _, err := tx.Exec(upsert, rec.SeriesID, rec.Title, rec.Frequency, rec.Units, rec.LastUpdated, createdAt); err != nil {
		return fmt.Errorf("failed to upsert series %s: %w", rec.SeriesID, err)
	}

	deleteQuery := fmt.Sprintf("DELETE FROM %s WHERE series_id = %s", observationsTable, ss.placeholders(1, 1))
	if _, err := tx.Exec(deleteQuery, rec.SeriesID); err != nil {
		return fmt.Errorf("failed to clear observations for %s: %w", rec.SeriesID, err)
	}

	insertQuery := fmt.Sprintf("INSERT INTO %s (series_id, obs_index, obs_date, obs_value) VALUES (%s)", observationsTable, ss.placeholders(1, 4))
	stmt, err := tx.Prepare(insertQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare observation insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, obs := range rec.Observations {
		if _, err := stmt.Exec(rec.SeriesID, i, obs.Date, obs.Value); err != nil {
			return fmt.Errorf("failed to insert observation %d for %s: %w", i, rec.SeriesID, err)
		}
	}

	return tx.Commit()
}

// getSeriesUpsertQuery returns the UPSERT query for the series table.
func (ss *SeriesStoreImpl) getSeriesUpsertQuery() string {
	switch ss.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (series_id, title, frequency, units, last_updated, created_at) VALUES (?, ?, ?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE title = new.title, frequency = new.frequency, units = new.units, last_updated = new.last_updated, created_at = new.created_at`, seriesTable)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (series_id, title, frequency, units, last_updated, created_at) VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (series_id) DO UPDATE SET title = EXCLUDED.title, frequency = EXCLUDED.frequency, units = EXCLUDED.units, last_updated = EXCLUDED.last_updated, created_at = EXCLUDED.created_at`, seriesTable)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (series_id, title, frequency, units, last_updated, created_at) VALUES (?, ?, ?, ?, ?, ?)`, seriesTable)
	}
}

// GetSeries loads a full series record by ID.
func (ss *SeriesStoreImpl) GetSeries(seriesID string) (schema.SeriesRecord, error) {
	var rec schema.SeriesRecord

	// Return not found error for NoneBackend
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return rec, contract.ErrSeriesNotFound
	}

	query := fmt.Sprintf("SELECT series_id, title, frequency, units, last_updated, created_at FROM %s WHERE series_id = %s", seriesTable, ss.placeholders(1, 1))
	row := ss.db.QueryRow(query, seriesID)
	if err := row.Scan(&rec.SeriesID, &rec.Title, &rec.Frequency, &rec.Units, &rec.LastUpdated, &rec.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return rec, contract.ErrSeriesNotFound
		}
		return rec, err
	}

	obsQuery := fmt.Sprintf("SELECT obs_date, obs_value FROM %s WHERE series_id = %s ORDER BY obs_index", observationsTable, ss.placeholders(1, 1))
	rows, err := ss.db.Query(obsQuery, seriesID)
	if err != nil {
		return rec, fmt.Errorf("failed to load observations for %s: %w", seriesID, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var obs schema.Observation
		if err := rows.Scan(&obs.Date, &obs.Value); err != nil {
			return rec, err
		}
		rec.Observations = append(rec.Observations, obs)
	}
	return rec, rows.Err()
}

// ListSeries returns summaries for all stored series ordered by series ID.
func (ss *SeriesStoreImpl) ListSeries() ([]schema.SeriesSummary, error) {
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT s.series_id, s.title, s.frequency, s.units, s.last_updated,
			COUNT(o.series_id), COALESCE(MIN(o.obs_date), ''), COALESCE(MAX(o.obs_date), '')
		FROM %s s
		LEFT JOIN %s o ON s.series_id = o.series_id
		GROUP BY s.series_id, s.title, s.frequency, s.units, s.last_updated
		ORDER BY s.series_id`, seriesTable, observationsTable)

	rows, err := ss.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list series: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []schema.SeriesSummary
	for rows.Next() {
		var s schema.SeriesSummary
		if err := rows.Scan(&s.SeriesID, &s.Title, &s.Frequency, &s.Units, &s.LastUpdated, &s.ObservationCount, &s.FirstDate, &s.LastDate); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// DeleteSeries removes a series and its observations.
func (ss *SeriesStoreImpl) DeleteSeries(seriesID string) error {
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return nil
	}

	tx, err := ss.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	obsQuery := fmt.Sprintf("DELETE FROM %s WHERE series_id = %s", observationsTable, ss.placeholders(1, 1))
	if _, err := tx.Exec(obsQuery, seriesID); err != nil {
		return fmt.Errorf("failed to delete observations for %s: %w", seriesID, err)
	}

	seriesQuery := fmt.Sprintf("DELETE FROM %s WHERE series_id = %s", seriesTable, ss.placeholders(1, 1))
	if _, err := tx.Exec(seriesQuery, seriesID); err != nil {
		return fmt.Errorf("failed to delete series %s: %w", seriesID, err)
	}

	return tx.Commit()
}

// Close closes the underlying DB connection.
func (ss *SeriesStoreImpl) Close() error {
	if ss.db != nil {
		return ss.db.Close()
	}
	return nil
}

// GetStatus returns status information about the series store.
func (ss *SeriesStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   string(ss.backend),
		Connected: ss.db != nil,
	}

	if ss.backend == schema.NoneBackend || ss.db == nil {
		return status, nil
	}

	row := ss.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", seriesTable))
	if err := row.Scan(&status.SeriesCount); err != nil {
		return status, fmt.Errorf("failed to count series: %w", err)
	}

	row = ss.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", observationsTable))
	if err := row.Scan(&status.ObservationCount); err != nil {
		return status, fmt.Errorf("failed to count observations: %w", err)
	}

	if status.SeriesCount > 0 {
		row = ss.db.QueryRow(fmt.Sprintf("SELECT MAX(created_at) FROM %s", seriesTable))
		var lastTs int64
		if err := row.Scan(&lastTs); err != nil {
			return status, fmt.Errorf("failed to get last save time: %w", err)
		}
		status.LastSavedTime = time.Unix(lastTs, 0)
	}

	// Estimate table size (approximate)
	// For SQLite, use page_count * page_size
	// For others, use database-specific size queries with a rough fallback
	switch ss.backend {
	case schema.SQLiteBackend:
		row = ss.db.QueryRow("SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()")
		if err := row.Scan(&status.TableSizeBytes); err != nil {
			// If pragma fails, skip size
			status.TableSizeBytes = 0
		}

	case schema.MySQLBackend:
		status.TableSizeBytes = int64(status.ObservationCount) * 100

		cfg, err := mysql.ParseDSN(ss.connStr)
		if err != nil || cfg.DBName == "" {
			break
		}
		sizeQuery := "SELECT COALESCE(SUM(data_length + index_length), 0) FROM information_schema.tables WHERE table_schema = ? AND table_name IN (?, ?)"
		row = ss.db.QueryRow(sizeQuery, cfg.DBName, seriesTable, observationsTable)
		if err := row.Scan(&status.TableSizeBytes); err != nil {
			status.TableSizeBytes = int64(status.ObservationCount) * 100
		}

	case schema.PostgreSQLBackend:
		sizeQuery := "SELECT pg_total_relation_size($1) + pg_total_relation_size($2)"
		row = ss.db.QueryRow(sizeQuery, seriesTable, observationsTable)
		if err := row.Scan(&status.TableSizeBytes); err != nil {
			status.TableSizeBytes = int64(status.ObservationCount) * 100
		}
	}

	return status, nil
}
