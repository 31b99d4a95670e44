package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	_ "modernc.org/sqlite"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate creates the schema. On postgres it additionally installs the
// no-overlap exclusion constraint so a racing writer loses at commit time
// even if it slipped past the transactional re-check.
func Migrate(db *gorm.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY %s,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'user',
			full_name TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP,
			updated_at TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS hotels (
			id INTEGER PRIMARY KEY %s,
			name TEXT NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			country TEXT NOT NULL DEFAULT '',
			stars INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS rooms (
			id INTEGER PRIMARY KEY %s,
			hotel_id INTEGER NOT NULL REFERENCES hotels(id),
			room_number TEXT NOT NULL,
			type TEXT NOT NULL DEFAULT '',
			price_per_night NUMERIC NOT NULL,
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP,
			updated_at TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS bookings (
			id INTEGER PRIMARY KEY %s,
			user_id INTEGER NOT NULL REFERENCES users(id),
			room_id INTEGER NOT NULL REFERENCES rooms(id),
			check_in TIMESTAMP NOT NULL,
			check_out TIMESTAMP NOT NULL,
			total_price NUMERIC NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			is_paid BOOLEAN NOT NULL DEFAULT FALSE,
			payment_intent_id TEXT,
			payment_date TIMESTAMP,
			refund_amount NUMERIC,
			created_at TIMESTAMP,
			updated_at TIMESTAMP,
			cancelled_at TIMESTAMP,
			CHECK (check_out > check_in)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_room ON bookings (room_id, check_in, check_out)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_user ON bookings (user_id)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_payment_intent ON bookings (payment_intent_id) WHERE payment_intent_id IS NOT NULL`,
	}

	autoinc := "AUTOINCREMENT"
	if db.Dialector.Name() == "postgres" {
		autoinc = "GENERATED ALWAYS AS IDENTITY"
	}

	for _, stmt := range stmts {
		sql := stmt
		if strings.Contains(sql, "%s") {
			sql = strings.Replace(sql, "%s", autoinc, 1)
		}
		if err := db.Exec(sql).Error; err != nil {
			return err
		}
	}

	if db.Dialector.Name() == "postgres" {
		overlap := []string{
			`CREATE EXTENSION IF NOT EXISTS btree_gist`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint WHERE conname = 'idx_no_room_overlap'
				) THEN
					ALTER TABLE bookings ADD CONSTRAINT idx_no_room_overlap
						EXCLUDE USING gist (
							room_id WITH =,
							tstzrange(check_in, check_out, '[)') WITH &&
						) WHERE (status <> 'cancelled');
				END IF;
			END $$`,
		}
		for _, stmt := range overlap {
			if err := db.Exec(stmt).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
