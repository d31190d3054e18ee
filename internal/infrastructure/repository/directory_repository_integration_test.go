package repository_test

import (
	"context"
	"testing"

	"github.com/mohammadpnp/appraisal-import/internal/infrastructure/repository"
)

func TestDirectoryRepositoryLoadDirectoryIntegration(t *testing.T) {
	gdb, _ := openTestDB(t)

	const tenantID = "0f1d2c3b-4a59-4687-8a9b-0c1d2e3f4a5b"
	seedSQL := `
    INSERT INTO offices (id, tenant_id, name) VALUES
      ('a1111111-1111-4111-8111-111111111111', '0f1d2c3b-4a59-4687-8a9b-0c1d2e3f4a5b', 'Glen Eden'),
      ('a2222222-2222-4222-8222-222222222222', '99999999-9999-4999-8999-999999999999', 'Elsewhere');
    INSERT INTO teams (id, tenant_id, office_id, name) VALUES
      ('b1111111-1111-4111-8111-111111111111', '0f1d2c3b-4a59-4687-8a9b-0c1d2e3f4a5b', 'a1111111-1111-4111-8111-111111111111', 'Sales A'),
      ('b2222222-2222-4222-8222-222222222222', '0f1d2c3b-4a59-4687-8a9b-0c1d2e3f4a5b', NULL, 'Floaters');
    INSERT INTO profiles (tenant_id, email) VALUES
      ('0f1d2c3b-4a59-4687-8a9b-0c1d2e3f4a5b', 'Existing@Example.com');
    `
	if err := gdb.Exec(seedSQL).Error; err != nil {
		t.Fatalf("failed to seed directory: %v", err)
	}

	dir, err := repository.NewDirectoryRepository(gdb).LoadDirectory(context.Background(), tenantID)
	if err != nil {
		t.Fatalf("load directory failed: %v", err)
	}

	if len(dir.Offices) != 1 || dir.Offices[0].Name != "Glen Eden" {
		t.Fatalf("unexpected offices: %+v", dir.Offices)
	}
	if len(dir.Teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(dir.Teams))
	}
	team, ok := dir.FindTeam("sales a")
	if !ok || team.OfficeID != "a1111111-1111-4111-8111-111111111111" {
		t.Fatalf("unexpected team lookup: %+v %v", team, ok)
	}
	if _, ok := dir.EmailSet()["existing@example.com"]; !ok {
		t.Fatalf("expected existing email in directory, got %v", dir.Emails)
	}
}
