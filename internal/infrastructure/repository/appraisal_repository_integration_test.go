package repository_test

import (
	"context"
	"testing"

	domain "github.com/mohammadpnp/appraisal-import/internal/domain/appraisal"
	"github.com/mohammadpnp/appraisal-import/internal/domain/tenant"
	"github.com/mohammadpnp/appraisal-import/internal/infrastructure/repository"
)

func strPtr(s string) *string { return &s }

func TestAppraisalChunkRepositoryInsertChunkIntegration(t *testing.T) {
	gdb, pool := openTestDB(t)

	scope := tenant.Scope{
		TenantID: "0f1d2c3b-4a59-4687-8a9b-0c1d2e3f4a5b",
		TeamID:   "6a1b2c3d-4e5f-4071-8293-a4b5c6d7e8f9",
		AuthorID: "f7bc5d17-e7b2-49a1-9fd2-061b58f44f85",
	}
	value := 950000.0
	beds := 3
	rows := []domain.Appraisal{
		{
			Address:        "12 Smith St",
			Suburb:         strPtr("Glen Eden"),
			AppraisalDate:  strPtr("2024-03-21"),
			FollowUpDate:   strPtr("2024-04-01"),
			Stage:          "VAP",
			PropertyType:   "House",
			VendorName:     strPtr("Jane Smith"),
			EstimatedValue: &value,
			Bedrooms:       &beds,
		},
		{
			Address:       "14 Smith St",
			AppraisalDate: strPtr("2024-03-21"),
			Stage:         "MAP",
			PropertyType:  "Unit",
		},
	}

	writer := repository.NewAppraisalChunkRepository(pool)
	ids, err := writer.InsertChunk(context.Background(), scope, rows)
	if err != nil {
		t.Fatalf("insert chunk failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %d", len(ids))
	}

	rows[0].Address = "12 SMITH ST"
	ids, err = writer.InsertChunk(context.Background(), scope, rows[:1])
	if err != nil {
		t.Fatalf("insert duplicate chunk failed: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected duplicate to be skipped, got %d ids", len(ids))
	}

	var staged int64
	if err := gdb.Raw("SELECT COUNT(*) FROM stg_appraisals").Scan(&staged).Error; err != nil {
		t.Fatalf("count staging failed: %v", err)
	}
	if staged != 0 {
		t.Fatalf("expected staging to be empty, got %d", staged)
	}

	keys, err := repository.NewAppraisalKeyRepository(gdb).ExistingKeys(context.Background(), scope)
	if err != nil {
		t.Fatalf("existing keys failed: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(keys))
	}
	for _, key := range keys {
		if key.AppraisalDate != "2024-03-21" {
			t.Fatalf("unexpected key date %q", key.AppraisalDate)
		}
	}

	otherTeam := scope
	otherTeam.TeamID = "11111111-2222-4333-8444-555555555555"
	keys, err = repository.NewAppraisalKeyRepository(gdb).ExistingKeys(context.Background(), otherTeam)
	if err != nil {
		t.Fatalf("existing keys for other team failed: %v", err)
	}
	if len(keys) != 0 {
		t.Fatalf("expected no keys for other team, got %d", len(keys))
	}
}
