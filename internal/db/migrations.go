package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'user_role') THEN
			CREATE TYPE user_role AS ENUM ('ADMIN', 'USER');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'document_type') THEN
			CREATE TYPE document_type AS ENUM ('SHIPMENT', 'RENTAL');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'document_status') THEN
			CREATE TYPE document_status AS ENUM ('PENDING', 'PROCESSING', 'COMPLETED', 'FAILED');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		email VARCHAR(191) NOT NULL,
		name VARCHAR(191) NOT NULL,
		password VARCHAR(191) NOT NULL,
		role user_role NOT NULL DEFAULT 'USER',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_users_email ON users (email);`,
	`CREATE TABLE IF NOT EXISTS contractors (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		short_name VARCHAR(191) NOT NULL,
		full_name VARCHAR(512) NOT NULL,
		ogrn VARCHAR(32) NOT NULL,
		inn VARCHAR(32) NOT NULL,
		kpp VARCHAR(32),
		okpo VARCHAR(32),
		okved VARCHAR(32),
		legal_address VARCHAR(512) NOT NULL,
		actual_address VARCHAR(512),
		checking_account VARCHAR(64),
		bank_name VARCHAR(191),
		correspondent_account VARCHAR(64),
		bik VARCHAR(32),
		director VARCHAR(191),
		phone VARCHAR(64),
		email VARCHAR(191),
		created_by UUID NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_contractors_inn ON contractors (inn);`,
	`CREATE TABLE IF NOT EXISTS documents (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		type document_type NOT NULL,
		customer_id UUID NOT NULL REFERENCES contractors(id),
		contractor_id UUID NOT NULL REFERENCES contractors(id),
		amount NUMERIC(18,2) NOT NULL,
		date TIMESTAMPTZ NOT NULL,
		status document_status NOT NULL DEFAULT 'PENDING',
		render_response TEXT,
		document_url VARCHAR(1024),
		created_by UUID NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_documents_customer_id ON documents (customer_id);`,
	`CREATE INDEX IF NOT EXISTS idx_documents_contractor_id ON documents (contractor_id);`,
	`CREATE INDEX IF NOT EXISTS idx_documents_status ON documents (status);`,
	`CREATE INDEX IF NOT EXISTS idx_documents_created_by ON documents (created_by);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
