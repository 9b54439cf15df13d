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
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		username TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		phone TEXT,
		bio TEXT,
		profile_picture TEXT,
		is_admin BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createOTPTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE otps (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		code TEXT NOT NULL,
		purpose TEXT NOT NULL,
		state TEXT NOT NULL DEFAULT 'issued',
		expires_at DATETIME NOT NULL,
		created_at DATETIME
	);`)
}

func createRideTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE rides (
		id TEXT PRIMARY KEY,
		rider_id TEXT NOT NULL,
		starting_point TEXT NOT NULL,
		destination TEXT NOT NULL,
		is_nust_start BOOLEAN NOT NULL DEFAULT 0,
		is_nust_dest BOOLEAN NOT NULL DEFAULT 0,
		stops TEXT DEFAULT '{}',
		ride_frequency TEXT NOT NULL DEFAULT 'monthly',
		days_available TEXT NOT NULL,
		trip_type TEXT NOT NULL DEFAULT 'round-trip',
		departure_time TEXT NOT NULL,
		return_time TEXT,
		price TEXT NOT NULL,
		vehicle_type TEXT NOT NULL DEFAULT 'car',
		vehicle_details TEXT NOT NULL,
		passenger_capacity TEXT,
		preferences TEXT DEFAULT '{}',
		additional_info TEXT,
		user_name TEXT NOT NULL,
		student_id TEXT NOT NULL,
		phone_number TEXT NOT NULL,
		is_primary_whatsapp BOOLEAN NOT NULL DEFAULT 0,
		email TEXT,
		preferred_contact_method TEXT NOT NULL DEFAULT 'whatsapp',
		share_contact_consent BOOLEAN NOT NULL,
		status TEXT NOT NULL DEFAULT 'active',
		is_flagged BOOLEAN NOT NULL DEFAULT 0,
		flag_reason TEXT DEFAULT '',
		moderation_status TEXT NOT NULL DEFAULT 'approved',
		admin_notes TEXT DEFAULT '',
		last_moderated_by TEXT,
		last_moderated_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}
