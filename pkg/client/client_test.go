package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mokshamaa/internal/domain"
	"mokshamaa/internal/services"
)

func newClient(t *testing.T, baseURL, token string) *Client {
	t.Helper()
	c, err := New(Config{BaseURL: baseURL, Token: token}, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	if _, err := New(Config{BaseURL: "not a url"}, nil); err == nil {
		t.Error("expected an error for a malformed base url")
	}
}

func TestCreateInquiry(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody services.CreateInquiryInput

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"inquiry": domain.Inquiry{ID: "inq-1", Status: domain.StatusNew},
			"message": "Inquiry submitted successfully",
		})
	}))
	defer server.Close()

	c := newClient(t, server.URL, "")
	inquiry, err := c.CreateInquiry(context.Background(), &services.CreateInquiryInput{
		Name: "Ramesh Shah", Email: "ramesh@example.com",
	})
	if err != nil {
		t.Fatalf("CreateInquiry failed: %v", err)
	}
	if gotPath != "POST /inquiries" {
		t.Errorf("unexpected request %q", gotPath)
	}
	if gotAuth != "" {
		t.Errorf("public submission must not carry a token, got %q", gotAuth)
	}
	if gotBody.Name != "Ramesh Shah" {
		t.Errorf("request body lost fields: %+v", gotBody)
	}
	if inquiry.ID != "inq-1" || inquiry.Status != domain.StatusNew {
		t.Errorf("unexpected inquiry: %+v", inquiry)
	}
}

func TestListInquiriesQueryEncoding(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(ListResult{Total: 0, Limit: 50})
	}))
	defer server.Close()

	c := newClient(t, server.URL, "tok")
	ctx := context.Background()

	// "all" and zero values stay off the wire
	if _, err := c.ListInquiries(ctx, ListParams{Status: "all", Category: "", Priority: "all"}); err != nil {
		t.Fatalf("ListInquiries failed: %v", err)
	}
	if gotQuery != "" {
		t.Errorf("expected no query parameters, got %q", gotQuery)
	}

	if _, err := c.ListInquiries(ctx, ListParams{Status: "new", Limit: 20, Offset: 40}); err != nil {
		t.Fatalf("ListInquiries failed: %v", err)
	}
	if gotQuery != "limit=20&offset=40&status=new" {
		t.Errorf("unexpected query %q", gotQuery)
	}
}

func TestUpdateInquirySendsBearerToken(t *testing.T) {
	var gotAuth, gotMethod string
	var gotFields map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotMethod = r.Method
		json.NewDecoder(r.Body).Decode(&gotFields)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"inquiry": domain.Inquiry{ID: "inq-1", Status: domain.StatusContacted},
		})
	}))
	defer server.Close()

	c := newClient(t, server.URL, "admin-token")
	inquiry, err := c.UpdateInquiry(context.Background(), "inq-1", map[string]any{"status": "contacted"})
	if err != nil {
		t.Fatalf("UpdateInquiry failed: %v", err)
	}
	if gotMethod != http.MethodPatch {
		t.Errorf("expected PATCH, got %q", gotMethod)
	}
	if gotAuth != "Bearer admin-token" {
		t.Errorf("unexpected auth header %q", gotAuth)
	}
	if gotFields["status"] != "contacted" {
		t.Errorf("unexpected patch %v", gotFields)
	}
	if inquiry.Status != domain.StatusContacted {
		t.Errorf("unexpected inquiry %+v", inquiry)
	}
}

func TestAPIErrorFromNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Inquiry not found"})
	}))
	defer server.Close()

	c := newClient(t, server.URL, "tok")
	_, err := c.GetInquiry(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !IsNotFound(err) {
		t.Errorf("expected IsNotFound, got %v", err)
	}
	if err.Error() != "Inquiry not found" {
		t.Errorf("expected the server message, got %q", err.Error())
	}
	if IsTimeout(err) || IsNetwork(err) {
		t.Error("an API error must not classify as timeout or network failure")
	}
}

func TestAPIErrorWithoutBodyFallsBackToStatusText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := newClient(t, server.URL, "")
	_, err := c.GetInquiry(context.Background(), "x")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected an APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway || apiErr.Message != "Bad Gateway" {
		t.Errorf("unexpected error %d %q", apiErr.StatusCode, apiErr.Message)
	}
}

func TestTimeoutError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	c, err := New(Config{BaseURL: server.URL, Timeout: 50 * time.Millisecond}, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = c.ListInquiries(context.Background(), ListParams{})
	if !IsTimeout(err) {
		t.Errorf("expected a timeout error, got %v", err)
	}
}

func TestNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close() // nothing listens here anymore

	c := newClient(t, baseURL, "")
	_, err := c.ListInquiries(context.Background(), ListParams{})
	if !IsNetwork(err) {
		t.Errorf("expected a network error, got %v", err)
	}
	if IsTimeout(err) {
		t.Error("a refused connection must not classify as a timeout")
	}
}
