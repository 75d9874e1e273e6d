package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE TABLE IF NOT EXISTS rc_records (
		id                UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		client_id         TEXT,
		reg_no            TEXT NOT NULL DEFAULT '',
		normalized_reg_no TEXT NOT NULL DEFAULT '',
		chassis_no        TEXT NOT NULL DEFAULT '',
		owner_name        TEXT NOT NULL DEFAULT '',
		ocr_confidence    NUMERIC(5,2) NOT NULL DEFAULT 0,
		fields_found      INT NOT NULL DEFAULT 0,
		record            JSONB NOT NULL,
		quality           JSONB NOT NULL,
		parse_error       TEXT,
		manually_edited   BOOLEAN NOT NULL DEFAULT FALSE,
		extracted_at      TIMESTAMPTZ NOT NULL,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_rc_records_normalized_reg_no ON rc_records(normalized_reg_no);`,
	`CREATE INDEX IF NOT EXISTS idx_rc_records_chassis_no ON rc_records(chassis_no);`,
	`CREATE INDEX IF NOT EXISTS idx_rc_records_created_at ON rc_records(created_at);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
