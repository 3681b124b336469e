package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"resume-evaluator/internal/config"
	"resume-evaluator/internal/database"
	"resume-evaluator/internal/database/migration"
	dbpostgres "resume-evaluator/internal/database/postgres"
	"resume-evaluator/internal/delivery/http/middleware"
	"resume-evaluator/internal/delivery/http/routes"
	"resume-evaluator/internal/infrastructure/cache"
	"resume-evaluator/internal/infrastructure/storage"
	"resume-evaluator/internal/pkg/session"
	"resume-evaluator/internal/repository"
	"resume-evaluator/internal/usecase"
	"resume-evaluator/migrations"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type indexResponse struct {
	Data struct {
		JobRoles []struct {
			ID     string `json:"id"`
			Name   string `json:"name"`
			Skills []struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"skills"`
		} `json:"job_roles"`
		ResumeUploads []struct {
			ID       string `json:"id"`
			Filename string `json:"filename"`
		} `json:"resume_uploads"`
		IsAdmin bool `json:"is_admin"`
	} `json:"data"`
}

func TestIntegration_CatalogEvaluateAndCascade(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	r := migration.Runner{FS: migrations.FS}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	uploadDir := t.TempDir()
	app := newTestApp(t, db, uploadDir)
	cookie := login(t, app)

	roleName := "Integration " + uuid.NewString()[:8]
	defer func() {
		_, _ = db.Exec(context.Background(), `DELETE FROM job_roles WHERE name = $1`, roleName)
	}()

	adminPost(t, app, cookie, "/add_job_role", url.Values{"job_role_name": {roleName}})
	roleID := findRole(t, app, roleName)
	if roleID == "" {
		t.Fatalf("job role %q not listed", roleName)
	}

	adminPost(t, app, cookie, "/add_skill", url.Values{"job_role_id": {roleID}, "skill_name": {"Python"}})
	adminPost(t, app, cookie, "/add_skill", url.Values{"job_role_id": {roleID}, "skill_name": {"Java"}})

	fileName := "it-" + uuid.NewString()[:8] + ".txt"
	res := evaluate(t, app, roleID, fileName, []byte("Python SQL"))
	if len(res.Matched) != 1 || res.Matched[0] != "python" || len(res.Missing) != 1 || res.Missing[0] != "java" || res.Percent != 50 {
		t.Fatalf("unexpected evaluation %+v", res)
	}
	if _, err := os.Stat(uploadDir + "/" + fileName); err != nil {
		t.Fatalf("expected stored file: %v", err)
	}

	resumes := repository.NewPostgresResumeRepository(db)
	roleUUID := uuid.MustParse(roleID)
	uploads, err := resumes.ListByJobRole(ctx, roleUUID)
	if err != nil {
		t.Fatalf("list uploads: %v", err)
	}
	if len(uploads) != 1 || uploads[0].Filename != fileName {
		t.Fatalf("unexpected uploads for role %+v", uploads)
	}

	var skillID string
	if err := db.QueryRow(ctx, `SELECT id::text FROM skills WHERE job_role_id = $1::uuid ORDER BY created_at LIMIT 1`, roleID).Scan(&skillID); err != nil {
		t.Fatalf("select skill: %v", err)
	}
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/delete_skill/"+skillID, nil))
	if err != nil {
		t.Fatalf("unauthorized delete: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if n := count(t, ctx, db, `SELECT count(*) FROM skills WHERE id = $1::uuid`, skillID); n != 1 {
		t.Fatalf("skill must survive an unauthorized delete")
	}

	adminPost(t, app, cookie, "/delete_job_role/"+roleID, nil)

	if n := count(t, ctx, db, `SELECT count(*) FROM skills WHERE job_role_id = $1::uuid`, roleID); n != 0 {
		t.Fatalf("expected skills removed, %d left", n)
	}
	if uploads, err := resumes.ListByJobRole(ctx, roleUUID); err != nil || len(uploads) != 0 {
		t.Fatalf("expected uploads removed, got %+v (err=%v)", uploads, err)
	}
	if n := count(t, ctx, db, `SELECT count(*) FROM resume_uploads WHERE job_role_id = $1::uuid`, roleID); n != 0 {
		t.Fatalf("expected uploads removed, %d left", n)
	}
	if _, err := os.Stat(uploadDir + "/" + fileName); !os.IsNotExist(err) {
		t.Fatalf("expected stored file removed, stat err=%v", err)
	}
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := os.Getenv("RESUMEEVAL_TEST_DB_HOST")
	port := os.Getenv("RESUMEEVAL_TEST_DB_PORT")
	name := os.Getenv("RESUMEEVAL_TEST_DB_NAME")
	user := os.Getenv("RESUMEEVAL_TEST_DB_USER")
	pass := os.Getenv("RESUMEEVAL_TEST_DB_PASSWORD")
	ssl := os.Getenv("RESUMEEVAL_TEST_DB_SSL_MODE")

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set RESUMEEVAL_TEST_DB_HOST/PORT/NAME/USER/PASSWORD")
	}
	if ssl == "" {
		ssl = "disable"
	}

	db, err := dbpostgres.Connect(ctx, config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     user,
		DBPassword: pass,
		DBSSLMode:  ssl,
	})
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func newTestApp(t *testing.T, db database.DB, uploadDir string) *fiber.App {
	t.Helper()
	logger := log.New(io.Discard, "", 0)

	auth, err := usecase.NewAuthUsecase(
		config.AdminConfig{Username: "admin", Password: "password"},
		session.NewHMACService("integration-secret", time.Hour),
		cache.NewRedis(config.RedisConfig{Enabled: false}, logger),
		logger,
	)
	if err != nil {
		t.Fatalf("auth: %v", err)
	}

	roles := repository.NewPostgresJobRoleRepository(db)
	skills := repository.NewPostgresSkillRepository(db)
	resumes := repository.NewPostgresResumeRepository(db)
	files := storage.NewLocal(uploadDir)

	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
	routes.NewRegistry(routes.Deps{
		Catalog:        usecase.NewCatalogUsecase(roles, skills, resumes, files, nil, logger),
		Resumes:        usecase.NewResumeUsecase(roles, skills, resumes, files, nil, logger),
		Auth:           auth,
		Admin:          middleware.NewAdminAuth(auth, "admin_session"),
		DB:             db,
		UploadMaxBytes: 1 << 20,
	}).Register(app)
	return app
}

func login(t *testing.T, app *fiber.App) *http.Cookie {
	t.Helper()
	form := url.Values{"username": {"admin"}, "password": {"password"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	for _, c := range resp.Cookies() {
		if c.Name == "admin_session" {
			return c
		}
	}
	t.Fatalf("login: no session cookie (status %d)", resp.StatusCode)
	return nil
}

func adminPost(t *testing.T, app *fiber.App, cookie *http.Cookie, path string, form url.Values) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	if resp.StatusCode != http.StatusSeeOther {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("POST %s: expected 303, got %d: %s", path, resp.StatusCode, b)
	}
}

func findRole(t *testing.T, app *fiber.App, name string) string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	var body indexResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode index: %v", err)
	}
	for _, r := range body.Data.JobRoles {
		if r.Name == name {
			return r.ID
		}
	}
	return ""
}

type evaluation struct {
	Matched []string `json:"matched_skills"`
	Missing []string `json:"missing_skills"`
	Percent float64  `json:"match_percentage"`
}

func evaluate(t *testing.T, app *fiber.App, roleID, filename string, content []byte) evaluation {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("job_role_id", roleID)
	fw, err := w.CreateFormFile("resume", filename)
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	_, _ = fw.Write(content)
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/evaluate", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("evaluate: expected 200, got %d: %s", resp.StatusCode, b)
	}

	var out evaluation
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode evaluation: %v", err)
	}
	return out
}

func count(t *testing.T, ctx context.Context, db database.DB, query string, args ...any) int {
	t.Helper()
	var n int
	if err := db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
