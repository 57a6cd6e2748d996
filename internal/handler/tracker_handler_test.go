package handler

import (
	"net/http"
	"testing"

	"github.com/gemforge/atelier/internal/entity"
	"github.com/gemforge/atelier/internal/testutil"
	"github.com/google/uuid"
)

func setupTrackerTest(t *testing.T) *testutil.Env {
	t.Helper()
	env := testutil.SetupEnv(t)
	h := NewHandlers(env.Services)

	api := env.AuthGroup("/api/v1")
	api.POST("/jobs", h.Job.Create)
	api.PUT("/jobs/status/:id", h.Job.UpdateStatus)
	api.GET("/production-tracker", h.Tracker.List)
	api.PUT("/production-tracker/status/:id", h.Tracker.UpdateStatus)

	return env
}

// TestTrackerStatusSyncsJob verifies the tracker update writes every tracker
// row of the job and mirrors the status onto the job itself.
func TestTrackerStatusSyncsJob(t *testing.T) {
	env := setupTrackerTest(t)
	jobID := seedJobViaAPI(t, env)

	// two transitions to In Progress leave two tracker rows
	for i := 0; i < 2; i++ {
		body := map[string]interface{}{"status": "In Progress"}
		w := testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/jobs/status/"+jobID, body, env.Token)
		if w.Code != http.StatusOK {
			t.Fatalf("job status update failed: %d", w.Code)
		}
	}

	body := map[string]interface{}{"status": "Completed", "description": "polishing done"}
	w := testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/production-tracker/status/"+jobID, body, env.Token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var trackers []entity.ProductionTracker
	env.DB.Where("job_id = ?", jobID).Find(&trackers)
	if len(trackers) != 2 {
		t.Fatalf("expected 2 tracker rows, got %d", len(trackers))
	}
	for _, tr := range trackers {
		if tr.Status != "Completed" {
			t.Fatalf("expected every tracker row Completed, got %s", tr.Status)
		}
		if tr.Description != "polishing done" {
			t.Fatalf("expected description applied, got %q", tr.Description)
		}
	}

	var job entity.Job
	env.DB.Where("id = ?", jobID).First(&job)
	if job.Status != "Completed" {
		t.Fatalf("expected job status synced to Completed, got %s", job.Status)
	}
}

// TestTrackerStatusKeepsDescriptionWhenOmitted verifies a status-only update
// leaves the existing tracker descriptions untouched.
func TestTrackerStatusKeepsDescriptionWhenOmitted(t *testing.T) {
	env := setupTrackerTest(t)
	jobID := seedJobViaAPI(t, env)

	body := map[string]interface{}{"status": "In Progress"}
	w := testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/jobs/status/"+jobID, body, env.Token)
	if w.Code != http.StatusOK {
		t.Fatalf("job status update failed: %d", w.Code)
	}

	body = map[string]interface{}{"status": "Qc", "description": "stones set"}
	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/production-tracker/status/"+jobID, body, env.Token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body = map[string]interface{}{"status": "Completed"}
	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/production-tracker/status/"+jobID, body, env.Token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var trackers []entity.ProductionTracker
	env.DB.Where("job_id = ?", jobID).Find(&trackers)
	if len(trackers) == 0 {
		t.Fatal("expected tracker rows")
	}
	for _, tr := range trackers {
		if tr.Status != "Completed" {
			t.Fatalf("expected status Completed, got %s", tr.Status)
		}
		if tr.Description != "stones set" {
			t.Fatalf("expected description kept, got %q", tr.Description)
		}
	}
}

// TestTrackerStatusCreatesPendingBatches verifies the optional wastage and
// return batches land as Pending records with no ledger rows.
func TestTrackerStatusCreatesPendingBatches(t *testing.T) {
	env := setupTrackerTest(t)
	jobID := seedJobViaAPI(t, env)

	body := map[string]interface{}{
		"status": "Qc",
		"wastage_materials": []map[string]interface{}{
			{
				"material_type_id": uuid.NewString(),
				"material_name_id": uuid.NewString(),
				"unit_id":          uuid.NewString(),
				"quantity":         1.5,
			},
		},
		"return_materials": []map[string]interface{}{
			{
				"material_type_id": uuid.NewString(),
				"material_name_id": uuid.NewString(),
				"unit_id":          uuid.NewString(),
				"quantity":         2.0,
			},
			{
				"material_type_id": uuid.NewString(),
				"material_name_id": uuid.NewString(),
				"unit_id":          uuid.NewString(),
				"quantity":         0.5,
			},
		},
	}
	w := testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/production-tracker/status/"+jobID, body, env.Token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var wastage, returns int64
	env.DB.Model(&entity.WastageMaterial{}).
		Where("job_id = ? AND status = ?", jobID, entity.AdjustmentStatusPending).Count(&wastage)
	env.DB.Model(&entity.ReturnMaterial{}).
		Where("job_id = ? AND status = ?", jobID, entity.AdjustmentStatusPending).Count(&returns)
	if wastage != 1 || returns != 2 {
		t.Fatalf("expected 1 wastage and 2 returns, got %d/%d", wastage, returns)
	}

	// pending records do not touch the ledger
	var inCount int64
	env.DB.Model(&entity.RawMaterialTransaction{}).
		Where("job_id = ? AND transaction_type = ?", jobID, entity.TxTypeIn).Count(&inCount)
	if inCount != 0 {
		t.Fatalf("expected no IN rows, got %d", inCount)
	}

	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/production-tracker/status/"+uuid.NewString(),
		map[string]interface{}{"status": "Qc"}, env.Token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown job, got %d", w.Code)
	}
}

func seedJobViaAPI(t *testing.T, env *testutil.Env) string {
	t.Helper()
	body := map[string]interface{}{
		"product_name": "Tiara",
		"materials":    []map[string]interface{}{materialLine(3, 1)},
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/jobs", body, env.Token)
	if w.Code != http.StatusCreated {
		t.Fatalf("seed job failed: %d %s", w.Code, w.Body.String())
	}
	return testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)
}
