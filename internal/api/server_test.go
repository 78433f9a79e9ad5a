package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"mokshamaa/internal/config"
	"mokshamaa/internal/domain"
	"mokshamaa/internal/services"
	"mokshamaa/internal/util"
)

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
	token  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(sqlite.Dialector{DriverName: "sqlite", Conn: sqlDB}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Inquiry{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	hashed, err := util.HashPassword("triage-pass")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	staff := domain.User{
		Username:       "staff",
		Email:          "staff@example.com",
		HashedPassword: hashed,
		IsActive:       true,
		IsStaff:        true,
	}
	if err := db.Create(&staff).Error; err != nil {
		t.Fatalf("failed to seed staff user: %v", err)
	}

	emailSvc := services.NewEmailService(&cfg.Email)
	inquirySvc := services.NewInquiryService(db, emailSvc)
	authSvc := services.NewAuthService(db)
	healthSvc := services.NewHealthService("test", func() error { return nil })

	server := httptest.NewServer(NewServer(cfg, inquirySvc, authSvc, healthSvc).Router())
	t.Cleanup(server.Close)

	env := &testEnv{server: server, db: db}
	env.token = env.login(t, "staff", "triage-pass")
	return env
}

func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	status, body := e.request(t, http.MethodPost, "/auth/login", "",
		map[string]any{"username": username, "password": password})
	if status != http.StatusOK {
		t.Fatalf("login returned %d: %s", status, body)
	}
	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	return result.AccessToken
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var reqBody bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&reqBody).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, e.server.URL+path, &reqBody)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	return resp.StatusCode, buf.Bytes()
}

func submission() map[string]any {
	return map[string]any{
		"name":        "Ramesh Shah",
		"email":       "ramesh@example.com",
		"phone":       "+91 9876543210",
		"state":       "Maharashtra",
		"city":        "Pune",
		"category":    "Residential",
		"description": "Need a 2BHK near Kothrud",
	}
}

func (e *testEnv) createInquiry(t *testing.T) domain.Inquiry {
	t.Helper()
	status, body := e.request(t, http.MethodPost, "/inquiries", "", submission())
	if status != http.StatusCreated {
		t.Fatalf("create returned %d: %s", status, body)
	}
	var env struct {
		Inquiry domain.Inquiry `json:"inquiry"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}
	return env.Inquiry
}

func TestSubmitInquiry(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.request(t, http.MethodPost, "/inquiries", "", submission())
	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", status, body)
	}

	var resp struct {
		Success bool           `json:"success"`
		Message string         `json:"message"`
		Inquiry domain.Inquiry `json:"inquiry"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Error("expected success true")
	}
	if resp.Message != "Inquiry submitted successfully" {
		t.Errorf("unexpected message %q", resp.Message)
	}
	if resp.Inquiry.ID == "" {
		t.Error("expected a generated id")
	}
	if resp.Inquiry.Status != domain.StatusNew {
		t.Errorf("expected status new, got %q", resp.Inquiry.Status)
	}
}

func TestSubmitInquiryMissingField(t *testing.T) {
	env := newTestEnv(t)

	payload := submission()
	delete(payload, "email")

	status, body := env.request(t, http.MethodPost, "/inquiries", "", payload)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", status, body)
	}
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "Missing required field: email" {
		t.Errorf("unexpected error %q", resp.Error)
	}
}

func TestListRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.request(t, http.MethodGet, "/inquiries", "", nil)
	if status != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", status)
	}

	status, _ = env.request(t, http.MethodGet, "/inquiries", "bogus-token", nil)
	if status != http.StatusUnauthorized {
		t.Errorf("expected 401 with a bad token, got %d", status)
	}
}

func TestListInquiries(t *testing.T) {
	env := newTestEnv(t)
	env.createInquiry(t)
	env.createInquiry(t)

	status, body := env.request(t, http.MethodGet, "/inquiries", env.token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	var resp struct {
		Inquiries []domain.Inquiry `json:"inquiries"`
		Total     int64            `json:"total"`
		Limit     int              `json:"limit"`
		Offset    int              `json:"offset"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 2 || len(resp.Inquiries) != 2 {
		t.Errorf("expected 2 inquiries, got %d (total %d)", len(resp.Inquiries), resp.Total)
	}
	if resp.Limit != 50 {
		t.Errorf("expected default limit 50, got %d", resp.Limit)
	}

	// Server-side filter that matches nothing
	status, body = env.request(t, http.MethodGet, "/inquiries?status=completed", env.token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 0 {
		t.Errorf("expected no completed inquiries, got total %d", resp.Total)
	}
}

func TestGetInquiry(t *testing.T) {
	env := newTestEnv(t)
	created := env.createInquiry(t)

	status, body := env.request(t, http.MethodGet, "/inquiries/"+created.ID, env.token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	var resp struct {
		Inquiry domain.Inquiry `json:"inquiry"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Inquiry.ID != created.ID {
		t.Errorf("expected id %q, got %q", created.ID, resp.Inquiry.ID)
	}
}

func TestGetInquiryNotFound(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.request(t, http.MethodGet, "/inquiries/does-not-exist", env.token, nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", status, body)
	}
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "Inquiry not found" {
		t.Errorf("unexpected error %q", resp.Error)
	}
}

func TestUpdateInquiry(t *testing.T) {
	env := newTestEnv(t)
	created := env.createInquiry(t)

	status, body := env.request(t, http.MethodPatch, "/inquiries/"+created.ID, env.token,
		map[string]any{"status": "contacted", "assigned_to": "priya"})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	var resp struct {
		Success bool           `json:"success"`
		Message string         `json:"message"`
		Inquiry domain.Inquiry `json:"inquiry"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success || resp.Message != "Inquiry updated successfully" {
		t.Errorf("unexpected envelope: success=%v message=%q", resp.Success, resp.Message)
	}
	if resp.Inquiry.Status != domain.StatusContacted {
		t.Errorf("expected status contacted, got %q", resp.Inquiry.Status)
	}
	if resp.Inquiry.AssignedTo == nil || *resp.Inquiry.AssignedTo != "priya" {
		t.Errorf("expected assigned_to priya, got %v", resp.Inquiry.AssignedTo)
	}
}

func TestUpdateInquiryNoValidFields(t *testing.T) {
	env := newTestEnv(t)
	created := env.createInquiry(t)

	for _, payload := range []map[string]any{
		{},
		{"email": "other@example.com"},
	} {
		status, body := env.request(t, http.MethodPatch, "/inquiries/"+created.ID, env.token, payload)
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400 for %v, got %d: %s", payload, status, body)
		}
		var resp struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Error != "No valid fields to update" {
			t.Errorf("unexpected error %q", resp.Error)
		}
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.request(t, http.MethodPost, "/auth/login", "",
		map[string]any{"username": "staff", "password": "wrong"})
	if status != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", status)
	}
}

func TestAuthMe(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.request(t, http.MethodGet, "/auth/me", env.token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	var user domain.User
	if err := json.Unmarshal(body, &user); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if user.Username != "staff" {
		t.Errorf("expected staff, got %q", user.Username)
	}
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.request(t, http.MethodGet, "/healthz", "", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	var resp struct {
		Status  string `json:"status"`
		Service string `json:"service"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("expected healthy, got %q", resp.Status)
	}
}
