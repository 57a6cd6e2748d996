package handler

import (
	"net/http"
	"testing"

	"github.com/gemforge/atelier/internal/entity"
	"github.com/gemforge/atelier/internal/testutil"
)

func setupMasterTest(t *testing.T) *testutil.Env {
	t.Helper()
	env := testutil.SetupEnv(t)
	h := NewHandlers(env.Services)

	api := env.AuthGroup("/api/v1")
	api.POST("/masters", h.Master.Create)
	api.GET("/masters", h.Master.List)
	api.GET("/masters/tree", h.Master.Tree)
	api.GET("/masters/:id", h.Master.Get)
	api.PUT("/masters/:id", h.Master.Update)
	api.DELETE("/masters/:id", h.Master.Delete)

	return env
}

func createMaster(t *testing.T, env *testutil.Env, name, code string, parentID *string) map[string]interface{} {
	t.Helper()
	body := map[string]interface{}{"name": name, "code": code}
	if parentID != nil {
		body["parent_id"] = *parentID
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/masters", body, env.Token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create master %s failed: %d %s", code, w.Code, w.Body.String())
	}
	return testutil.ParseResponse(w)["data"].(map[string]interface{})
}

// TestMasterHierarchySnapshot checks children copy parent_code/group_name at
// creation and keep them after a parent rename.
func TestMasterHierarchySnapshot(t *testing.T) {
	env := setupMasterTest(t)

	root := createMaster(t, env, "Material Type", "MAT_TYPE", nil)
	rootID := root["id"].(string)
	if root["group_name"].(string) != "Material Type" {
		t.Fatalf("expected root group_name to be its own name, got %v", root["group_name"])
	}

	child := createMaster(t, env, "Gold", "GOLD", &rootID)
	if child["parent_code"].(string) != "MAT_TYPE" {
		t.Fatalf("expected parent_code MAT_TYPE, got %v", child["parent_code"])
	}
	if child["group_name"].(string) != "Material Type" {
		t.Fatalf("expected group_name Material Type, got %v", child["group_name"])
	}

	// rename the parent; the child snapshot must not move
	update := map[string]interface{}{"name": "Material Kind", "code": "MAT_KIND"}
	w := testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/masters/"+rootID, update, env.Token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var stored entity.Master
	env.DB.Where("id = ?", child["id"].(string)).First(&stored)
	if stored.ParentCode != "MAT_TYPE" || stored.GroupName != "Material Type" {
		t.Fatalf("expected snapshot unchanged, got parent_code=%s group_name=%s",
			stored.ParentCode, stored.GroupName)
	}
}

// TestMasterSequencePerSiblingGroup checks sequence starts at 1 per parent
// and increments among siblings.
func TestMasterSequencePerSiblingGroup(t *testing.T) {
	env := setupMasterTest(t)

	root := createMaster(t, env, "Units", "UNITS", nil)
	rootID := root["id"].(string)

	first := createMaster(t, env, "Gram", "GRAM", &rootID)
	second := createMaster(t, env, "Carat", "CARAT", &rootID)
	if first["sequence"].(float64) != 1 || second["sequence"].(float64) != 2 {
		t.Fatalf("expected sibling sequences 1,2 got %v,%v", first["sequence"], second["sequence"])
	}

	otherRoot := createMaster(t, env, "Colors", "COLORS", nil)
	otherRootID := otherRoot["id"].(string)
	otherChild := createMaster(t, env, "White", "WHITE", &otherRootID)
	if otherChild["sequence"].(float64) != 1 {
		t.Fatalf("expected new sibling group to restart at 1, got %v", otherChild["sequence"])
	}
}

// TestMasterCodeConflictAndDeleteGuard covers the duplicate-code rejection
// and the delete block while children exist.
func TestMasterCodeConflictAndDeleteGuard(t *testing.T) {
	env := setupMasterTest(t)

	root := createMaster(t, env, "Material Type", "MAT_TYPE", nil)
	rootID := root["id"].(string)
	child := createMaster(t, env, "Gold", "GOLD", &rootID)

	dup := map[string]interface{}{"name": "Duplicate", "code": "GOLD"}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/masters", dup, env.Token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate code, got %d", w.Code)
	}

	w = testutil.DoRequest(env.Router, http.MethodDelete, "/api/v1/masters/"+rootID, nil, env.Token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 deleting parent with children, got %d", w.Code)
	}

	// deleting the child first unblocks the parent
	w = testutil.DoRequest(env.Router, http.MethodDelete, "/api/v1/masters/"+child["id"].(string), nil, env.Token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	w = testutil.DoRequest(env.Router, http.MethodDelete, "/api/v1/masters/"+rootID, nil, env.Token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 after children removed, got %d: %s", w.Code, w.Body.String())
	}

	// a deleted child's code becomes reusable
	reuse := map[string]interface{}{"name": "Gold again", "code": "GOLD"}
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/masters", reuse, env.Token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 reusing deleted code, got %d: %s", w.Code, w.Body.String())
	}
}

// TestMasterTree verifies the tree endpoint nests children under roots.
func TestMasterTree(t *testing.T) {
	env := setupMasterTest(t)

	root := createMaster(t, env, "Material Type", "MAT_TYPE", nil)
	rootID := root["id"].(string)
	createMaster(t, env, "Gold", "GOLD", &rootID)
	createMaster(t, env, "Silver", "SILVER", &rootID)

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/masters/tree", nil, env.Token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	roots := testutil.ParseResponse(w)["data"].([]interface{})
	if len(roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(roots))
	}
	children := roots[0].(map[string]interface{})["children"].([]interface{})
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}
}
