// Package db owns the Postgres schema the repositories expect.
package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

const Schema = `
CREATE EXTENSION IF NOT EXISTS "uuid-ossp";

CREATE TABLE IF NOT EXISTS appraisals (
  id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
  tenant_id UUID NOT NULL,
  team_id UUID NOT NULL,
  created_by UUID NOT NULL,
  address TEXT NOT NULL,
  suburb TEXT,
  appraisal_date DATE NOT NULL,
  follow_up_date DATE,
  stage TEXT NOT NULL,
  property_type TEXT NOT NULL,
  vendor_name TEXT,
  vendor_phone TEXT,
  vendor_email TEXT,
  estimated_value DOUBLE PRECISION,
  bedrooms INT,
  bathrooms INT,
  notes TEXT,
  latitude DOUBLE PRECISION,
  longitude DOUBLE PRECISION,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE UNIQUE INDEX IF NOT EXISTS appraisals_team_key_idx
  ON appraisals (team_id, lower(btrim(address)), appraisal_date);
CREATE INDEX IF NOT EXISTS appraisals_tenant_idx ON appraisals (tenant_id);

CREATE UNLOGGED TABLE IF NOT EXISTS stg_appraisals (
  batch_id UUID NOT NULL,
  row_index BIGINT NOT NULL,
  address TEXT NOT NULL,
  suburb TEXT,
  appraisal_date DATE NOT NULL,
  follow_up_date DATE,
  stage TEXT NOT NULL,
  property_type TEXT NOT NULL,
  vendor_name TEXT,
  vendor_phone TEXT,
  vendor_email TEXT,
  estimated_value DOUBLE PRECISION,
  bedrooms INT,
  bathrooms INT,
  notes TEXT
);

CREATE TABLE IF NOT EXISTS import_runs (
  id UUID PRIMARY KEY,
  kind TEXT NOT NULL,
  tenant_id UUID NOT NULL,
  team_id UUID,
  created_by UUID NOT NULL,
  status TEXT NOT NULL,
  total INT NOT NULL DEFAULT 0,
  successful INT NOT NULL DEFAULT 0,
  failed INT NOT NULL DEFAULT 0,
  warnings INT NOT NULL DEFAULT 0,
  duplicates INT NOT NULL DEFAULT 0,
  message TEXT,
  result JSONB,
  started_at TIMESTAMPTZ NOT NULL,
  finished_at TIMESTAMPTZ,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS import_runs_tenant_idx ON import_runs (tenant_id, created_at DESC);

CREATE TABLE IF NOT EXISTS offices (
  id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
  tenant_id UUID NOT NULL,
  name TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS teams (
  id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
  tenant_id UUID NOT NULL,
  office_id UUID REFERENCES offices(id) ON DELETE SET NULL,
  name TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS profiles (
  id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
  tenant_id UUID NOT NULL,
  email TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS profiles_tenant_email_idx ON profiles (tenant_id, lower(email));
`

// Migrate applies Schema. Every statement is idempotent.
func Migrate(ctx context.Context, gdb *gorm.DB) error {
	if err := gdb.WithContext(ctx).Exec(Schema).Error; err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
