package handler

import (
	"net/http"
	"testing"

	"github.com/gemforge/atelier/internal/entity"
	"github.com/gemforge/atelier/internal/testutil"
	"github.com/google/uuid"
)

func setupJobTest(t *testing.T) *testutil.Env {
	t.Helper()
	env := testutil.SetupEnv(t)
	h := NewHandlers(env.Services)

	api := env.AuthGroup("/api/v1")
	api.POST("/jobs", h.Job.Create)
	api.GET("/jobs", h.Job.List)
	api.GET("/jobs/:id", h.Job.Get)
	api.PUT("/jobs/:id", h.Job.Update)
	api.DELETE("/jobs/:id", h.Job.Delete)
	api.PUT("/jobs/status/:id", h.Job.UpdateStatus)

	return env
}

func materialLine(qty, weight float64) map[string]interface{} {
	return map[string]interface{}{
		"material_type_id": uuid.NewString(),
		"material_name_id": uuid.NewString(),
		"unit_id":          uuid.NewString(),
		"quantity":         qty,
		"weight":           weight,
	}
}

// TestJobCreateWritesLedger verifies one OUT row per material line, all in
// the same transaction.
func TestJobCreateWritesLedger(t *testing.T) {
	env := setupJobTest(t)

	body := map[string]interface{}{
		"product_name":  "Gold Ring",
		"customer_name": "Acme Jewels",
		"priority":      "High",
		"due_date":      "2026-10-01",
		"materials": []map[string]interface{}{
			materialLine(5, 12.5),
			materialLine(2, 0.8),
			materialLine(1, 3.2),
		},
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/jobs", body, env.Token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	jobID := data["id"].(string)
	if data["job_code"].(string) == "" {
		t.Fatal("expected generated job_code")
	}
	if data["status"].(string) != entity.JobStatusPending {
		t.Fatalf("expected Pending status, got %v", data["status"])
	}

	var txCount int64
	env.DB.Model(&entity.RawMaterialTransaction{}).
		Where("job_id = ? AND transaction_type = ?", jobID, entity.TxTypeOut).
		Count(&txCount)
	if txCount != 3 {
		t.Fatalf("expected 3 OUT transactions, got %d", txCount)
	}

	var matCount int64
	env.DB.Model(&entity.JobMaterial{}).Where("job_id = ?", jobID).Count(&matCount)
	if matCount != 3 {
		t.Fatalf("expected 3 job materials, got %d", matCount)
	}
}

// TestJobCreateRequiresMaterials verifies binding rejects an empty material
// list and leaves no partial rows.
func TestJobCreateRequiresMaterials(t *testing.T) {
	env := setupJobTest(t)

	body := map[string]interface{}{
		"product_name": "Empty Job",
		"materials":    []map[string]interface{}{},
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/jobs", body, env.Token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var jobCount int64
	env.DB.Model(&entity.Job{}).Count(&jobCount)
	if jobCount != 0 {
		t.Fatalf("expected no jobs, got %d", jobCount)
	}
}

// TestJobUpdateReconcilesMaterials checks the three reconcile paths: a
// quantity increase writes an extra OUT, a removed line writes a
// compensating IN, and a brand new line writes an OUT.
func TestJobUpdateReconcilesMaterials(t *testing.T) {
	env := setupJobTest(t)

	create := map[string]interface{}{
		"product_name": "Silver Chain",
		"materials": []map[string]interface{}{
			materialLine(10, 5),
			materialLine(4, 2),
		},
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/jobs", create, env.Token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	jobID := data["id"].(string)

	var lines []entity.JobMaterial
	env.DB.Where("job_id = ?", jobID).Order("quantity DESC").Find(&lines)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	keep, drop := lines[0], lines[1] // keep has qty 10, drop has qty 4

	update := map[string]interface{}{
		"product_name": "Silver Chain v2",
		"materials": []map[string]interface{}{
			{
				"id":               keep.ID,
				"material_type_id": keep.MaterialTypeID,
				"material_name_id": keep.MaterialNameID,
				"unit_id":          keep.UnitID,
				"quantity":         13.0, // +3
				"weight":           keep.Weight,
			},
			materialLine(7, 1), // new line
		},
	}
	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/jobs/"+jobID, update, env.Token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// increase on kept line: OUT 3
	var outDelta entity.RawMaterialTransaction
	err := env.DB.Where("job_materials_id = ? AND transaction_type = ? AND quantity = ?",
		keep.ID, entity.TxTypeOut, 3.0).First(&outDelta).Error
	if err != nil {
		t.Fatalf("expected OUT adjustment of 3 for kept line: %v", err)
	}

	// removed line: compensating IN 4 and soft-deleted material
	var inComp entity.RawMaterialTransaction
	err = env.DB.Where("job_materials_id = ? AND transaction_type = ? AND quantity = ?",
		drop.ID, entity.TxTypeIn, 4.0).First(&inComp).Error
	if err != nil {
		t.Fatalf("expected compensating IN of 4 for removed line: %v", err)
	}
	var dropped entity.JobMaterial
	env.DB.Where("id = ?", drop.ID).First(&dropped)
	if dropped.DeletedAt == nil {
		t.Fatal("expected removed line to be soft-deleted")
	}

	// new line: OUT 7
	var newOut int64
	env.DB.Model(&entity.RawMaterialTransaction{}).
		Where("job_id = ? AND transaction_type = ? AND quantity = ?", jobID, entity.TxTypeOut, 7.0).
		Count(&newOut)
	if newOut != 1 {
		t.Fatalf("expected 1 OUT row for new line, got %d", newOut)
	}
}

// TestJobUpdateMixedSignDeltas edits a line up in one dimension and down in
// the other and expects one adjustment row per dimension, each with its own
// direction, so neither dimension is booked with the wrong sign.
func TestJobUpdateMixedSignDeltas(t *testing.T) {
	env := setupJobTest(t)

	create := map[string]interface{}{
		"product_name": "Signet Ring",
		"materials":    []map[string]interface{}{materialLine(10, 5)},
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/jobs", create, env.Token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	jobID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	var line entity.JobMaterial
	env.DB.Where("job_id = ?", jobID).First(&line)

	editLine := func(qty, weight float64) map[string]interface{} {
		return map[string]interface{}{
			"product_name": "Signet Ring",
			"materials": []map[string]interface{}{
				{
					"id":               line.ID,
					"material_type_id": line.MaterialTypeID,
					"material_name_id": line.MaterialNameID,
					"unit_id":          line.UnitID,
					"quantity":         qty,
					"weight":           weight,
				},
			},
		}
	}

	// quantity +3, weight -2
	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/jobs/"+jobID, editLine(13, 3), env.Token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var out entity.RawMaterialTransaction
	err := env.DB.Where("job_materials_id = ? AND transaction_type = ? AND quantity = ? AND weight = ?",
		line.ID, entity.TxTypeOut, 3.0, 0.0).First(&out).Error
	if err != nil {
		t.Fatalf("expected OUT carrying only the quantity increase: %v", err)
	}
	var in entity.RawMaterialTransaction
	err = env.DB.Where("job_materials_id = ? AND transaction_type = ? AND quantity = ? AND weight = ?",
		line.ID, entity.TxTypeIn, 0.0, 2.0).First(&in).Error
	if err != nil {
		t.Fatalf("expected IN carrying only the weight decrease: %v", err)
	}

	// quantity -4, weight +1
	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/jobs/"+jobID, editLine(9, 4), env.Token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	err = env.DB.Where("job_materials_id = ? AND transaction_type = ? AND quantity = ? AND weight = ?",
		line.ID, entity.TxTypeIn, 4.0, 0.0).First(&in).Error
	if err != nil {
		t.Fatalf("expected IN carrying only the quantity decrease: %v", err)
	}
	err = env.DB.Where("job_materials_id = ? AND transaction_type = ? AND quantity = ? AND weight = ?",
		line.ID, entity.TxTypeOut, 0.0, 1.0).First(&out).Error
	if err != nil {
		t.Fatalf("expected OUT carrying only the weight increase: %v", err)
	}

	// create OUT(10,5) plus the four adjustments nets to the line's 9/4
	type sums struct{ Quantity, Weight float64 }
	var net sums
	env.DB.Model(&entity.RawMaterialTransaction{}).
		Select("SUM(CASE WHEN transaction_type = 'OUT' THEN quantity ELSE -quantity END) AS quantity, "+
			"SUM(CASE WHEN transaction_type = 'OUT' THEN weight ELSE -weight END) AS weight").
		Where("job_materials_id = ?", line.ID).Scan(&net)
	if net.Quantity != 9 || net.Weight != 4 {
		t.Fatalf("expected net consumption 9/4, got %v/%v", net.Quantity, net.Weight)
	}
}

// TestJobUpdateUnknownMaterialFails verifies a payload line with an id the
// job does not own rolls the whole update back.
func TestJobUpdateUnknownMaterialFails(t *testing.T) {
	env := setupJobTest(t)

	create := map[string]interface{}{
		"product_name": "Bracelet",
		"materials":    []map[string]interface{}{materialLine(3, 1)},
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/jobs", create, env.Token)
	jobID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	var before int64
	env.DB.Model(&entity.RawMaterialTransaction{}).Where("job_id = ?", jobID).Count(&before)

	update := map[string]interface{}{
		"product_name": "Bracelet renamed",
		"materials": []map[string]interface{}{
			{
				"id":               uuid.NewString(),
				"material_type_id": uuid.NewString(),
				"material_name_id": uuid.NewString(),
				"unit_id":          uuid.NewString(),
				"quantity":         1.0,
			},
		},
	}
	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/jobs/"+jobID, update, env.Token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var after int64
	env.DB.Model(&entity.RawMaterialTransaction{}).Where("job_id = ?", jobID).Count(&after)
	if after != before {
		t.Fatalf("expected no new ledger rows after rollback, got %d -> %d", before, after)
	}

	var job entity.Job
	env.DB.Where("id = ?", jobID).First(&job)
	if job.ProductName != "Bracelet" {
		t.Fatalf("expected header change rolled back, got %q", job.ProductName)
	}
}

// TestJobStatusInProgressCreatesTracker checks that each transition to
// In Progress appends another tracker row.
func TestJobStatusInProgressCreatesTracker(t *testing.T) {
	env := setupJobTest(t)

	create := map[string]interface{}{
		"product_name": "Pendant",
		"materials":    []map[string]interface{}{materialLine(1, 0.5)},
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/jobs", create, env.Token)
	jobID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	for i := 0; i < 2; i++ {
		body := map[string]interface{}{"status": "In Progress", "description": "casting"}
		w = testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/jobs/status/"+jobID, body, env.Token)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	}

	var trackers int64
	env.DB.Model(&entity.ProductionTracker{}).Where("job_id = ?", jobID).Count(&trackers)
	if trackers != 2 {
		t.Fatalf("expected 2 tracker rows, got %d", trackers)
	}

	body := map[string]interface{}{"status": "Bogus"}
	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/jobs/status/"+jobID, body, env.Token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid status, got %d", w.Code)
	}
}

// TestJobDeleteKeepsLedger verifies delete soft-removes the job and lines
// but leaves ledger history untouched.
func TestJobDeleteKeepsLedger(t *testing.T) {
	env := setupJobTest(t)

	create := map[string]interface{}{
		"product_name": "Earring",
		"materials":    []map[string]interface{}{materialLine(2, 1)},
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/jobs", create, env.Token)
	jobID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	w = testutil.DoRequest(env.Router, http.MethodDelete, "/api/v1/jobs/"+jobID, nil, env.Token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/jobs/"+jobID, nil, env.Token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for deleted job, got %d", w.Code)
	}

	var ledger int64
	env.DB.Model(&entity.RawMaterialTransaction{}).Where("job_id = ?", jobID).Count(&ledger)
	if ledger != 1 {
		t.Fatalf("expected ledger history preserved, got %d rows", ledger)
	}

	w = testutil.DoRequest(env.Router, http.MethodDelete, "/api/v1/jobs/"+uuid.NewString(), nil, env.Token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown job, got %d", w.Code)
	}
}
