package handler

import (
	"net/http"
	"testing"

	"github.com/gemforge/atelier/internal/entity"
	"github.com/gemforge/atelier/internal/middleware"
	"github.com/gemforge/atelier/internal/testutil"
	"github.com/gin-gonic/gin"
)

func setupPermissionTest(t *testing.T) *testutil.Env {
	t.Helper()
	env := testutil.SetupEnv(t)
	h := NewHandlers(env.Services)

	api := env.AuthGroup("/api/v1")
	api.POST("/permissions", h.Permission.Create)
	api.GET("/permissions", h.Permission.List)
	api.GET("/permissions/:id", h.Permission.Get)
	api.PUT("/permissions/:id", h.Permission.Update)
	api.DELETE("/permissions/:id", h.Permission.Delete)
	api.POST("/users", h.User.Create)

	return env
}

func permissionBody(roleName string) map[string]interface{} {
	return map[string]interface{}{
		"role_name": roleName,
		"permission": []map[string]interface{}{
			{
				"name":    "jobs",
				"actions": map[string]bool{"view": true, "create": true},
			},
			{
				"name":    "stock",
				"actions": map[string]bool{"view": true},
			},
		},
	}
}

// TestPermissionRoleNameUnique verifies the duplicate role_name rejection on
// create and update.
func TestPermissionRoleNameUnique(t *testing.T) {
	env := setupPermissionTest(t)

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/permissions", permissionBody("supervisor"), env.Token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/permissions", permissionBody("supervisor"), env.Token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate role, got %d", w.Code)
	}

	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/permissions", permissionBody("operator"), env.Token)
	operatorID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/permissions/"+operatorID, permissionBody("supervisor"), env.Token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 renaming onto existing role, got %d", w.Code)
	}

	// renaming to itself is allowed
	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/permissions/"+operatorID, permissionBody("operator"), env.Token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

// TestPermissionGrantsEnforced checks a token without the required grant is
// rejected by the route guard while a wildcard token passes.
func TestPermissionGrantsEnforced(t *testing.T) {
	env := setupPermissionTest(t)

	viewer := testutil.SeedUser(t, env.DB, "Viewer", "viewer@test.com", true)
	viewerToken := testutil.GenerateTestToken(viewer.ID, viewer.Name, viewer.Email, "viewer", []string{"jobs:view"})

	ok := func(c *gin.Context) { Success(c, nil) }
	guarded := env.AuthGroup("/guarded")
	guarded.GET("/jobs", middleware.RequirePermission("jobs:view"), ok)
	guarded.GET("/stock", middleware.RequirePermission("stock:view"), ok)

	w := testutil.DoRequest(env.Router, http.MethodGet, "/guarded/jobs", nil, viewerToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with jobs:view grant, got %d: %s", w.Code, w.Body.String())
	}
	w = testutil.DoRequest(env.Router, http.MethodGet, "/guarded/stock", nil, viewerToken)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without stock:view grant, got %d", w.Code)
	}
	w = testutil.DoRequest(env.Router, http.MethodGet, "/guarded/stock", nil, env.Token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with wildcard grant, got %d", w.Code)
	}
}

// TestPermissionGrantsFlattening checks the role grants flatten to
// "resource:action" strings.
func TestPermissionGrantsFlattening(t *testing.T) {
	perm := &entity.Permission{
		RoleName: "supervisor",
		Permission: entity.PermissionList{
			{Name: "jobs", Actions: entity.PermissionActions{View: true, Edit: true}},
			{Name: "stock", Actions: entity.PermissionActions{Export: true}},
		},
	}
	grants := perm.Grants()
	want := map[string]bool{"jobs:view": true, "jobs:edit": true, "stock:export": true}
	if len(grants) != len(want) {
		t.Fatalf("expected %d grants, got %v", len(want), grants)
	}
	for _, g := range grants {
		if !want[g] {
			t.Fatalf("unexpected grant %q", g)
		}
	}
}
