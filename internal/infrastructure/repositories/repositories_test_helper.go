package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createCandidateTable(t *testing.T, db *gorm.DB) {
	t.Helper()
	mustExec(t, db, `CREATE TABLE candidates (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		phone TEXT,
		gender TEXT NOT NULL,
		university TEXT,
		level TEXT,
		major TEXT,
		region TEXT,
		tech_skills TEXT,
		domain_skills TEXT,
		cv_url TEXT,
		version INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createTeamTable(t *testing.T, db *gorm.DB) {
	t.Helper()
	mustExec(t, db, `CREATE TABLE teams (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		request_profile TEXT,
		requested_skills TEXT,
		theme TEXT NOT NULL,
		secondary_theme TEXT,
		secondary_theme_description TEXT,
		region TEXT NOT NULL,
		leader_id TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'draft',
		qualitative_score INTEGER NOT NULL DEFAULT 0,
		motivation_url TEXT,
		video_url TEXT,
		prototype_url TEXT,
		submitted_at DATETIME,
		version INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createMembershipTable(t *testing.T, db *gorm.DB) {
	t.Helper()
	mustExec(t, db, `CREATE TABLE memberships (
		id TEXT PRIMARY KEY,
		team_id TEXT NOT NULL,
		candidate_id TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL,
		created_at DATETIME
	);`)
}

func createJoinRequestTable(t *testing.T, db *gorm.DB) {
	t.Helper()
	mustExec(t, db, `CREATE TABLE join_requests (
		id TEXT PRIMARY KEY,
		candidate_id TEXT NOT NULL,
		team_id TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE UNIQUE INDEX idx_join_requests_pending
		ON join_requests (candidate_id, team_id) WHERE status = 'pending';`)
}

func createRegionTable(t *testing.T, db *gorm.DB) {
	t.Helper()
	mustExec(t, db, `CREATE TABLE regions (
		code TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		hackathon_date DATE NOT NULL,
		version INTEGER NOT NULL DEFAULT 0
	);`)
}

func createSchema(t *testing.T, db *gorm.DB) {
	t.Helper()
	createCandidateTable(t, db)
	createTeamTable(t, db)
	createMembershipTable(t, db)
	createJoinRequestTable(t, db)
	createRegionTable(t, db)
}
