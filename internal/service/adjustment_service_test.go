package service

import (
	"errors"
	"testing"

	"github.com/gemforge/atelier/internal/entity"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// TestAdjustmentTransitionErrorSurfacesQueryFailure checks a failing lookup
// is returned as a database error instead of being misread as a missing
// record.
func TestAdjustmentTransitionErrorSurfacesQueryFailure(t *testing.T) {
	// nothing listens on port 1, so the count query fails on connect
	db, err := gorm.Open(postgres.Open("host=127.0.0.1 port=1 user=none dbname=none sslmode=disable connect_timeout=1"), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               gormlogger.Discard,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	err = adjustmentTransitionError(db, &entity.WastageMaterial{}, uuid.NewString())
	if err == nil {
		t.Fatal("expected an error from the unreachable database")
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) {
		t.Fatalf("query failure must not map to a business error: %v", err)
	}
}
