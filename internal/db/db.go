package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/models"
)

// ErrNotFound is returned by point queries when no row matches.
var ErrNotFound = errors.New("not found")

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

type DB struct {
	conn   *sql.DB
	driver string
}

// DetectDriver tells a Postgres DSN apart from an SQLite file path.
func DetectDriver(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		return DriverPostgres
	}
	return DriverSQLite
}

// New opens the lead database and applies the schema
func New(dsn string) (*DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database DSN not set")
	}
	driver := DetectDriver(dsn)

	connStr := dsn
	if driver == DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		connStr = fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", dsn)
	}

	conn, err := sql.Open(driver, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if driver == DriverSQLite {
		// single writer; the scheduler and handlers share it
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(10)
		conn.SetConnMaxLifetime(5 * time.Minute)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := &DB{conn: conn, driver: driver}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	slog.Debug("Lead database ready", "driver", driver)

	return db, nil
}

func (db *DB) migrate() error {
	schema := sqliteSchema
	if db.driver == DriverPostgres {
		schema = postgresSchema
	}
	_, err := db.conn.Exec(schema)
	return err
}

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS leads (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		geography TEXT NOT NULL DEFAULT '',
		object_type TEXT NOT NULL DEFAULT '',
		condition TEXT NOT NULL DEFAULT '',
		metrage INTEGER NOT NULL DEFAULT 0,
		repair_format TEXT NOT NULL DEFAULT '',
		keys_ready TEXT NOT NULL DEFAULT '',
		deadline TEXT NOT NULL DEFAULT '',
		main_fear TEXT NOT NULL DEFAULT '',
		budget TEXT NOT NULL DEFAULT '',
		source TEXT NOT NULL DEFAULT 'direct',
		appointment_time TEXT NOT NULL DEFAULT '',
		appointment_status TEXT NOT NULL DEFAULT 'pending',
		survey_completed INTEGER NOT NULL DEFAULT 0,
		start_time TIMESTAMP,
		created_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS broadcast_media (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		broadcast_type TEXT NOT NULL UNIQUE,
		photo_file_id TEXT NOT NULL,
		caption TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_leads_survey_completed ON leads(survey_completed);
	`

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS leads (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		geography TEXT NOT NULL DEFAULT '',
		object_type TEXT NOT NULL DEFAULT '',
		condition TEXT NOT NULL DEFAULT '',
		metrage INTEGER NOT NULL DEFAULT 0,
		repair_format TEXT NOT NULL DEFAULT '',
		keys_ready TEXT NOT NULL DEFAULT '',
		deadline TEXT NOT NULL DEFAULT '',
		main_fear TEXT NOT NULL DEFAULT '',
		budget TEXT NOT NULL DEFAULT '',
		source TEXT NOT NULL DEFAULT 'direct',
		appointment_time TEXT NOT NULL DEFAULT '',
		appointment_status TEXT NOT NULL DEFAULT 'pending',
		survey_completed INTEGER NOT NULL DEFAULT 0,
		start_time TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS broadcast_media (
		id BIGSERIAL PRIMARY KEY,
		broadcast_type TEXT NOT NULL UNIQUE,
		photo_file_id TEXT NOT NULL,
		caption TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMPTZ NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_leads_survey_completed ON leads(survey_completed);
	`

// rebind rewrites ? placeholders to $n for Postgres
func (db *DB) rebind(query string) string {
	if db.driver != DriverPostgres {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteString("$" + strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// RecordStart creates the lead row on first entry or refreshes its start time.
// A completed lead keeps its answers, its completed flag and its first source.
func (db *DB) RecordStart(ctx context.Context, userID int64, source string, at time.Time) error {
	if source == "" {
		source = models.DefaultSource
	}
	_, err := db.conn.ExecContext(ctx, db.rebind(
		`INSERT INTO leads (user_id, source, survey_completed, start_time, created_at)
		 VALUES (?, ?, 0, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
		   start_time = excluded.start_time,
		   source = CASE WHEN leads.survey_completed = 1 THEN leads.source ELSE excluded.source END`),
		userID, source, at, at,
	)
	if err != nil {
		return fmt.Errorf("record start for %d: %w", userID, err)
	}
	return nil
}

// UpsertLead writes every column of the lead, replacing the stored row.
// survey_completed never goes back from 1 to 0.
func (db *DB) UpsertLead(ctx context.Context, lead models.Lead) error {
	if lead.Source == "" {
		lead.Source = models.DefaultSource
	}
	if lead.AppointmentStatus == "" {
		lead.AppointmentStatus = models.AppointmentPending
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now()
	}
	var startTime sql.NullTime
	if lead.StartTime != nil {
		startTime = sql.NullTime{Time: *lead.StartTime, Valid: true}
	}

	_, err := db.conn.ExecContext(ctx, db.rebind(
		`INSERT INTO leads
		   (user_id, name, phone, geography, object_type, condition, metrage,
		    repair_format, keys_ready, deadline, main_fear, budget, source,
		    appointment_time, appointment_status, survey_completed, start_time, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
		   name = excluded.name,
		   phone = excluded.phone,
		   geography = excluded.geography,
		   object_type = excluded.object_type,
		   condition = excluded.condition,
		   metrage = excluded.metrage,
		   repair_format = excluded.repair_format,
		   keys_ready = excluded.keys_ready,
		   deadline = excluded.deadline,
		   main_fear = excluded.main_fear,
		   budget = excluded.budget,
		   source = excluded.source,
		   appointment_time = excluded.appointment_time,
		   appointment_status = excluded.appointment_status,
		   survey_completed = CASE WHEN leads.survey_completed = 1 THEN 1 ELSE excluded.survey_completed END,
		   start_time = excluded.start_time,
		   created_at = excluded.created_at`),
		lead.UserID, lead.Name, lead.Phone, lead.Geography, lead.ObjectType, lead.Condition, lead.Metrage,
		lead.RepairFormat, lead.KeysReady, lead.Deadline, lead.MainFear, lead.Budget, lead.Source,
		lead.AppointmentTime, string(lead.AppointmentStatus), boolToInt(lead.SurveyCompleted), startTime, lead.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert lead %d: %w", lead.UserID, err)
	}
	return nil
}

// GetLead retrieves a lead by user id
func (db *DB) GetLead(ctx context.Context, userID int64) (*models.Lead, error) {
	var lead models.Lead
	var status string
	var startTime sql.NullTime

	err := db.conn.QueryRowContext(ctx, db.rebind(
		`SELECT user_id, name, phone, geography, object_type, condition, metrage,
		        repair_format, keys_ready, deadline, main_fear, budget, source,
		        appointment_time, appointment_status, survey_completed, start_time, created_at
		 FROM leads WHERE user_id = ?`), userID,
	).Scan(
		&lead.UserID, &lead.Name, &lead.Phone, &lead.Geography, &lead.ObjectType, &lead.Condition, &lead.Metrage,
		&lead.RepairFormat, &lead.KeysReady, &lead.Deadline, &lead.MainFear, &lead.Budget, &lead.Source,
		&lead.AppointmentTime, &status, &lead.SurveyCompleted, &startTime, &lead.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get lead %d: %w", userID, err)
	}

	lead.AppointmentStatus = models.AppointmentStatus(status)
	if startTime.Valid {
		lead.StartTime = &startTime.Time
	}
	return &lead, nil
}

// GetStartTime returns the recorded session start, nil if the user never started
func (db *DB) GetStartTime(ctx context.Context, userID int64) (*time.Time, error) {
	var startTime sql.NullTime
	err := db.conn.QueryRowContext(ctx, db.rebind(`SELECT start_time FROM leads WHERE user_id = ?`), userID).Scan(&startTime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get start time %d: %w", userID, err)
	}
	if !startTime.Valid {
		return nil, nil
	}
	return &startTime.Time, nil
}

// IsSurveyCompleted checks whether the user has shared a contact
func (db *DB) IsSurveyCompleted(ctx context.Context, userID int64) (bool, error) {
	var completed bool
	err := db.conn.QueryRowContext(ctx, db.rebind(`SELECT survey_completed FROM leads WHERE user_id = ?`), userID).Scan(&completed)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return completed, err
}

// UsersWithoutSurvey returns ids of users who started but never shared a contact
func (db *DB) UsersWithoutSurvey(ctx context.Context) ([]int64, error) {
	return db.queryIDs(ctx, `SELECT user_id FROM leads WHERE survey_completed = 0 OR survey_completed IS NULL ORDER BY user_id`)
}

func (db *DB) queryIDs(ctx context.Context, query string) ([]int64, error) {
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SaveBroadcastMedia stores or replaces the cached file id of a broadcast asset
func (db *DB) SaveBroadcastMedia(ctx context.Context, m models.BroadcastMedia) error {
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = time.Now()
	}
	_, err := db.conn.ExecContext(ctx, db.rebind(
		`INSERT INTO broadcast_media (broadcast_type, photo_file_id, caption, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (broadcast_type) DO UPDATE SET
		   photo_file_id = excluded.photo_file_id,
		   caption = excluded.caption,
		   updated_at = excluded.updated_at`),
		m.BroadcastType, m.FileID, m.Caption, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save broadcast media %s: %w", m.BroadcastType, err)
	}
	return nil
}

// GetBroadcastMedia looks up a cached asset, ErrNotFound if none
func (db *DB) GetBroadcastMedia(ctx context.Context, broadcastType string) (*models.BroadcastMedia, error) {
	m := models.BroadcastMedia{BroadcastType: broadcastType}
	err := db.conn.QueryRowContext(ctx, db.rebind(
		`SELECT photo_file_id, caption, updated_at FROM broadcast_media WHERE broadcast_type = ?`), broadcastType,
	).Scan(&m.FileID, &m.Caption, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get broadcast media %s: %w", broadcastType, err)
	}
	return &m, nil
}

// Ping checks the connection
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
