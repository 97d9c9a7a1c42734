package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ndewijer/import-cost-engine/internal/apperrors"
	"github.com/ndewijer/import-cost-engine/internal/model"
	"github.com/ndewijer/import-cost-engine/internal/repository"
	"github.com/ndewijer/import-cost-engine/internal/testutil"
)

func TestDeliveryRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("GetDeliveryConfig on an empty table", func(t *testing.T) {
		repo := repository.NewDeliveryRepository(testutil.SetupTestDB(t))

		_, err := repo.GetDeliveryConfig(ctx)
		if !errors.Is(err, apperrors.ErrDeliveryConfigNotFound) {
			t.Errorf("Expected ErrDeliveryConfigNotFound, got %v", err)
		}
	})

	t.Run("GetOrCreate inserts the defaults once", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewDeliveryRepository(db)

		first, err := repo.GetOrCreate(ctx)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		second, err := repo.GetOrCreate(ctx)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		defaults := model.DefaultDeliveryParameters()
		if first.OriginExpense != defaults.OriginExpense || first.ServiceFeeMax != defaults.ServiceFeeMax {
			t.Errorf("Expected defaults, got %+v", first)
		}
		if first.ID == "" || first.ID != second.ID {
			t.Errorf("Expected the same stored row, got %q and %q", first.ID, second.ID)
		}
		if first.UpdatedAt.IsZero() {
			t.Error("Expected updatedAt to be set")
		}
		testutil.AssertRowCount(t, db, "delivery_config", 1)
	})

	t.Run("SaveDeliveryConfig replaces the row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewDeliveryRepository(db)
		if _, err := repo.GetOrCreate(ctx); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		updated := model.DefaultDeliveryParameters()
		updated.Freight = 450
		if err := repo.SaveDeliveryConfig(ctx, updated); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		got, err := repo.GetDeliveryConfig(ctx)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got.Freight != 450 {
			t.Errorf("Expected freight 450, got %v", got.Freight)
		}
		testutil.AssertRowCount(t, db, "delivery_config", 1)
	})
}
