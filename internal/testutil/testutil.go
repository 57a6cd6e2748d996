package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gemforge/atelier/internal/config"
	"github.com/gemforge/atelier/internal/entity"
	"github.com/gemforge/atelier/internal/middleware"
	"github.com/gemforge/atelier/internal/repository"
	"github.com/gemforge/atelier/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	TestSchema = "test_atelier"
	JWTSecret  = "atelier-test-jwt-secret"
)

// Env bundles everything a handler test needs: an isolated database,
// the wired service stack, and a router with auth middleware installed.
type Env struct {
	DB       *gorm.DB
	Repos    *repository.Repositories
	Services *service.Services
	Router   *gin.Engine
	User     *entity.User
	Token    string
}

// projectRoot walks up from this file until it finds go.mod.
func projectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func loadEnv() {
	root := projectRoot()
	if root != "" {
		godotenv.Load(filepath.Join(root, ".env"))
	}
}

// SetupTestDB connects to Postgres and migrates into a unique schema so
// tests can run in parallel without stepping on each other. The schema is
// dropped on cleanup.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	loadEnv()

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "postgres")
	dbname := getEnv("DB_NAME", "atelier_test")

	baseDSN := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	schemaName := fmt.Sprintf("%s_%d", TestSchema, time.Now().UnixNano()%1000000)

	setupDB, err := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to database for schema setup: %v", err)
	}
	setupDB.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schemaName))
	sqlSetup, _ := setupDB.DB()
	sqlSetup.Close()

	// search_path in the DSN so every pooled connection uses the test schema.
	testDSN := fmt.Sprintf("%s search_path=%s", baseDSN, schemaName)
	db, err := gorm.Open(postgres.Open(testDSN), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := entity.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		cleanDB, cleanErr := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if cleanErr == nil {
			cleanDB.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", schemaName))
			sqlClean, _ := cleanDB.DB()
			if sqlClean != nil {
				sqlClean.Close()
			}
		}
	})

	return db
}

// SetupTestRedis connects to a local Redis for the auth flow tests.
func SetupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	loadEnv()
	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", getEnv("REDIS_HOST", "127.0.0.1"), getEnv("REDIS_PORT", "6379")),
		DB:   1,
	})
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

// TestConfig returns a config with the test JWT secret and short token TTLs.
func TestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:             JWTSecret,
			AccessTokenExpire:  time.Hour,
			RefreshTokenExpire: 24 * time.Hour,
			Issuer:             "atelier-test",
		},
	}
}

// SetupEnv builds the full stack on a fresh schema and seeds an active
// admin user whose token carries the wildcard grant.
func SetupEnv(t *testing.T) *Env {
	t.Helper()
	db := SetupTestDB(t)
	rdb := SetupTestRedis(t)

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, db, rdb, TestConfig())

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(gin.Recovery())

	admin := SeedUser(t, db, "Test Admin", "admin@test.com", true)
	token := GenerateTestToken(admin.ID, admin.Name, admin.Email, "admin", []string{"*"})

	return &Env{
		DB:       db,
		Repos:    repos,
		Services: services,
		Router:   router,
		User:     admin,
		Token:    token,
	}
}

// AuthGroup creates a router group protected the same way as production
// routes, backed by the test user repository.
func (e *Env) AuthGroup(path string) *gin.RouterGroup {
	return e.Router.Group(path, middleware.JWTAuth(JWTSecret, e.Repos.User))
}

// GenerateTestToken mints a signed access token for test requests.
func GenerateTestToken(userID, name, email, role string, permissions []string) string {
	if permissions == nil {
		permissions = []string{}
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"uid":   userID,
		"name":  name,
		"email": email,
		"role":  role,
		"perms": permissions,
		"iss":   "atelier-test",
		"iat":   now.Unix(),
		"exp":   now.Add(24 * time.Hour).Unix(),
		"jti":   fmt.Sprintf("test-jti-%d", now.UnixNano()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(JWTSecret))
	return tokenString
}

// DoRequest executes an HTTP request against the test router.
func DoRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse decodes the JSON envelope into a map.
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// SeedUser inserts a user row with a bcrypt password of "password123".
func SeedUser(t *testing.T, db *gorm.DB, name, email string, active bool) *entity.User {
	t.Helper()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &entity.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: string(hash),
		IsActive: active,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	return user
}

// SeedMaster inserts a master row. Pass nil parent for a root entry.
func SeedMaster(t *testing.T, db *gorm.DB, name, code string, parent *entity.Master) *entity.Master {
	t.Helper()
	master := &entity.Master{
		ID:       uuid.NewString(),
		Name:     name,
		Code:     code,
		IsActive: true,
	}
	if parent != nil {
		master.ParentID = &parent.ID
		master.ParentCode = parent.Code
		master.GroupName = parent.GroupName
	} else {
		master.GroupName = name
	}
	if err := db.Create(master).Error; err != nil {
		t.Fatalf("Failed to seed master: %v", err)
	}
	return master
}

// SeedVendor inserts a vendor row.
func SeedVendor(t *testing.T, db *gorm.DB, name string) *entity.Vendor {
	t.Helper()
	vendor := &entity.Vendor{ID: uuid.NewString(), Name: name, IsActive: true}
	if err := db.Create(vendor).Error; err != nil {
		t.Fatalf("Failed to seed vendor: %v", err)
	}
	return vendor
}

// SeedManufacturer inserts a manufacturer row.
func SeedManufacturer(t *testing.T, db *gorm.DB, name string) *entity.Manufacturer {
	t.Helper()
	m := &entity.Manufacturer{ID: uuid.NewString(), Name: name, IsActive: true}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("Failed to seed manufacturer: %v", err)
	}
	return m
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
