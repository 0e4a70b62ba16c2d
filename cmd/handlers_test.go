package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/siahsang/blogapi/internal/config"
	"github.com/siahsang/blogapi/internal/core"
	"github.com/siahsang/blogapi/internal/database/memory"
	"github.com/siahsang/blogapi/models"
)

type testServer struct {
	app     *application
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{Port: 3001, Env: config.EnvTest, ShutdownTimeout: time.Second}
	cfg.DB.Driver = config.DriverMemory
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = time.Hour
	cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := newApplication(cfg, logger, memory.New().Repositories())
	return &testServer{app: app, handler: app.routes()}
}

func (ts *testServer) do(t *testing.T, method, path string, body any, token string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		js, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(js)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	var decoded map[string]any
	if rr.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		if err := json.Unmarshal(rr.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("%s %s: invalid JSON body %q: %v", method, path, rr.Body.String(), err)
		}
	}
	return rr, decoded
}

// user registers a user, promotes it when admin is set, and returns it with a valid token.
func (ts *testServer) user(t *testing.T, name string, admin bool) (*models.User, string) {
	t.Helper()
	ctx := context.Background()

	user, err := ts.app.core.RegisterUser(ctx, name, name+"@example.com", "secret123")
	if err != nil {
		t.Fatal(err)
	}
	if admin {
		user.Admin = true
		if user, err = ts.app.core.UpdateProfile(ctx, user, user.ID, core.UserUpdate{Admin: &admin}); err != nil {
			t.Fatal(err)
		}
	}

	token, err := ts.app.auth.GenerateToken(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	return user, token
}

func (ts *testServer) createPost(t *testing.T, token, title string, categories ...string) map[string]any {
	t.Helper()
	payload := map[string]any{"title": title, "caption": "caption of " + title}
	if len(categories) > 0 {
		payload["categories"] = categories
	}

	rr, body := ts.do(t, http.MethodPost, "/api/posts", payload, token)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create post: status %d body %s", rr.Code, rr.Body.String())
	}
	return body
}

func TestListPostsPagination(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.user(t, "admin", true)

	for i := 0; i < 12; i++ {
		ts.createPost(t, token, fmt.Sprintf("Post %d", i))
	}

	rr, body := ts.do(t, http.MethodGet, "/api/posts?page=2&limit=5", nil, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}

	if items := body["items"].([]any); len(items) != 5 {
		t.Errorf("got %d items, want 5", len(items))
	}
	if body["totalCount"].(float64) != 12 || body["currentPage"].(float64) != 2 ||
		body["pageSize"].(float64) != 5 || body["totalPageCount"].(float64) != 3 {
		t.Errorf("unexpected metadata %v", body)
	}

	headers := map[string]string{
		"X-TotalCount":     "12",
		"X-CurrentPage":    "2",
		"X-PageSize":       "5",
		"X-TotalPageCount": "3",
	}
	for name, want := range headers {
		if got := rr.Header().Get(name); got != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
}

func TestListPostsQueryEdgeCases(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.user(t, "admin", true)
	for i := 0; i < 3; i++ {
		ts.createPost(t, token, fmt.Sprintf("Post %d", i))
	}

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantItems  int
		wantSize   float64
	}{
		{"defaults", "", http.StatusOK, 3, 10},
		{"non-positive values are clamped", "?page=0&limit=-4", http.StatusOK, 3, 10},
		{"page past the end", "?page=100&limit=5", http.StatusOK, 0, 5},
		{"non-numeric page", "?page=abc", http.StatusBadRequest, 0, 0},
		{"non-numeric limit", "?limit=ten", http.StatusBadRequest, 0, 0},
		{"limit above maximum", "?limit=101", http.StatusBadRequest, 0, 0},
		{"malformed category id", "?categories=nope", http.StatusBadRequest, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, body := ts.do(t, http.MethodGet, "/api/posts"+tt.query, nil, "")
			if rr.Code != tt.wantStatus {
				t.Fatalf("status %d, want %d: %s", rr.Code, tt.wantStatus, rr.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				if body["errors"] == nil {
					t.Errorf("validation errors missing: %v", body)
				}
				return
			}
			if items := body["items"].([]any); len(items) != tt.wantItems {
				t.Errorf("got %d items, want %d", len(items), tt.wantItems)
			}
			if body["pageSize"].(float64) != tt.wantSize {
				t.Errorf("pageSize = %v, want %v", body["pageSize"], tt.wantSize)
			}
		})
	}
}

func TestListPostsSearchAndCategories(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.user(t, "admin", true)

	rr, golang := ts.do(t, http.MethodPost, "/api/post-categories", map[string]any{"title": "Go"}, token)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create category: %d %s", rr.Code, rr.Body.String())
	}
	goID := golang["_id"].(string)

	ts.createPost(t, token, "Learning Go", goID)
	ts.createPost(t, token, "Go concurrency", goID)
	ts.createPost(t, token, "Cooking pasta")

	_, body := ts.do(t, http.MethodGet, "/api/posts?categories="+goID, nil, "")
	if body["totalCount"].(float64) != 2 {
		t.Errorf("category filter total = %v", body["totalCount"])
	}

	rr, body = ts.do(t, http.MethodGet, "/api/posts?searchKeyword=PASTA", nil, "")
	if body["totalCount"].(float64) != 1 {
		t.Errorf("search total = %v", body["totalCount"])
	}
	if got := rr.Header().Get("X-Filter"); got != "PASTA" {
		t.Errorf("X-Filter = %q", got)
	}

	items := body["items"].([]any)
	post := items[0].(map[string]any)
	if post["user"].(map[string]any)["name"] != "admin" {
		t.Errorf("author not populated: %v", post["user"])
	}
}

func TestAuthGuardChain(t *testing.T) {
	ts := newTestServer(t)
	_, userToken := ts.user(t, "reader", false)
	_, adminToken := ts.user(t, "admin", true)

	unknownToken, err := ts.app.auth.GenerateToken("someone")
	if err != nil {
		t.Fatal(err)
	}

	payload := map[string]any{"title": "Guarded", "caption": "c"}

	tests := []struct {
		name        string
		header      string
		wantStatus  int
		wantMessage string
	}{
		{"no header", "", http.StatusUnauthorized, "Not authorized, No token"},
		{"wrong scheme", "Token " + userToken, http.StatusUnauthorized, "Not authorized, No token"},
		{"garbage token", "Bearer garbage", http.StatusUnauthorized, "Not authorized, Token failed"},
		{"unknown user", "Bearer " + unknownToken, http.StatusUnauthorized, "Not authorized, Token failed"},
		{"not an admin", "Bearer " + userToken, http.StatusUnauthorized, "Not authorized as an admin"},
		{"admin", "Bearer " + adminToken, http.StatusCreated, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			js, _ := json.Marshal(payload)
			req := httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewReader(js))
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			ts.handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("status %d, want %d: %s", rr.Code, tt.wantStatus, rr.Body.String())
			}
			if tt.wantMessage == "" {
				return
			}
			var body map[string]any
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body["message"] != tt.wantMessage {
				t.Errorf("message = %q, want %q", body["message"], tt.wantMessage)
			}
		})
	}
}

func TestPostLifecycle(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.user(t, "admin", true)

	created := ts.createPost(t, token, "Hello World")
	slug := created["slug"].(string)

	rr, body := ts.do(t, http.MethodPut, "/api/posts/"+slug, map[string]any{"caption": "new caption"}, token)
	if rr.Code != http.StatusOK {
		t.Fatalf("update: %d %s", rr.Code, rr.Body.String())
	}
	if body["slug"] != slug || body["caption"] != "new caption" || body["title"] != "Hello World" {
		t.Errorf("unexpected update result %v", body)
	}

	rr, _ = ts.do(t, http.MethodPut, "/api/posts/missing", map[string]any{"caption": "x"}, token)
	if rr.Code != http.StatusNotFound {
		t.Errorf("update missing: %d", rr.Code)
	}

	rr, body = ts.do(t, http.MethodDelete, "/api/posts/"+slug, nil, token)
	if rr.Code != http.StatusOK || body["message"] != "Post is successfully deleted" {
		t.Fatalf("delete: %d %v", rr.Code, body)
	}
	ts.app.wg.Wait()

	rr, body = ts.do(t, http.MethodGet, "/api/posts/"+slug, nil, "")
	if rr.Code != http.StatusNotFound || body["message"] != "Post was not found" {
		t.Errorf("get deleted: %d %v", rr.Code, body)
	}
	if _, ok := body["stack"]; !ok {
		t.Error("stack must be present outside production")
	}

	rr, _ = ts.do(t, http.MethodDelete, "/api/posts/"+slug, nil, token)
	if rr.Code != http.StatusNotFound {
		t.Errorf("delete twice: %d", rr.Code)
	}
}

func TestStackHiddenInProduction(t *testing.T) {
	ts := newTestServer(t)
	ts.app.config.Env = config.EnvProduction

	rr, body := ts.do(t, http.MethodGet, "/api/posts/missing", nil, "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status %d", rr.Code)
	}
	if _, ok := body["stack"]; ok {
		t.Error("stack must not be exposed in production")
	}
}

func TestUsersFlow(t *testing.T) {
	ts := newTestServer(t)

	register := map[string]any{"name": "Ada", "email": "ada@example.com", "password": "secret123"}
	rr, body := ts.do(t, http.MethodPost, "/api/users/register", register, "")
	if rr.Code != http.StatusCreated || body["token"] == "" || body["admin"] != false {
		t.Fatalf("register: %d %v", rr.Code, body)
	}
	token := body["token"].(string)
	id := body["_id"].(string)

	rr, body = ts.do(t, http.MethodPost, "/api/users/register", register, "")
	if rr.Code != http.StatusBadRequest || body["message"] != "User have already registered" {
		t.Errorf("duplicate: %d %v", rr.Code, body)
	}

	rr, _ = ts.do(t, http.MethodPost, "/api/users/register", map[string]any{"name": "Bob", "email": "bob@example.com", "password": "123"}, "")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("short password: %d", rr.Code)
	}

	rr, body = ts.do(t, http.MethodPost, "/api/users/login", map[string]any{"email": "ada@example.com", "password": "wrong-one"}, "")
	if rr.Code != http.StatusUnauthorized || body["message"] != "Invalid email or password" {
		t.Errorf("bad password: %d %v", rr.Code, body)
	}

	rr, body = ts.do(t, http.MethodPost, "/api/users/login", map[string]any{"email": "nobody@example.com", "password": "secret123"}, "")
	if rr.Code != http.StatusNotFound || body["message"] != "Email not found" {
		t.Errorf("unknown email: %d %v", rr.Code, body)
	}

	rr, body = ts.do(t, http.MethodGet, "/api/users/profile", nil, token)
	if rr.Code != http.StatusOK || body["email"] != "ada@example.com" {
		t.Errorf("profile: %d %v", rr.Code, body)
	}
	if _, leaked := body["password"]; leaked {
		t.Error("password must never be serialised")
	}

	rr, body = ts.do(t, http.MethodPut, "/api/users/updateProfile/"+id, map[string]any{"name": "Ada L", "admin": true}, token)
	if rr.Code != http.StatusOK || body["name"] != "Ada L" || body["admin"] != false || body["token"] == "" {
		t.Errorf("update self: %d %v", rr.Code, body)
	}

	_, otherToken := ts.user(t, "mallory", false)
	rr, _ = ts.do(t, http.MethodPut, "/api/users/updateProfile/"+id, map[string]any{"name": "pwned"}, otherToken)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("edit someone else: %d", rr.Code)
	}

	rr, _ = ts.do(t, http.MethodGet, "/api/users", nil, token)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("non-admin listing users: %d", rr.Code)
	}
	_, adminToken := ts.user(t, "root", true)
	rr, body = ts.do(t, http.MethodGet, "/api/users?limit=2", nil, adminToken)
	if rr.Code != http.StatusOK || body["totalCount"].(float64) != 3 || len(body["items"].([]any)) != 2 {
		t.Errorf("admin listing users: %d %v", rr.Code, body)
	}
}

func TestCategoryDeleteDetachesPosts(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.user(t, "admin", true)

	_, category := ts.do(t, http.MethodPost, "/api/post-categories", map[string]any{"title": "Temp"}, token)
	id := category["_id"].(string)
	post := ts.createPost(t, token, "Tagged", id)

	rr, _ := ts.do(t, http.MethodDelete, "/api/post-categories/"+id, nil, token)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete category: %d %s", rr.Code, rr.Body.String())
	}

	rr, _ = ts.do(t, http.MethodGet, "/api/post-categories/"+id, nil, "")
	if rr.Code != http.StatusNotFound {
		t.Errorf("get deleted category: %d", rr.Code)
	}

	_, got := ts.do(t, http.MethodGet, "/api/posts/"+post["slug"].(string), nil, "")
	if categories := got["categories"].([]any); len(categories) != 0 {
		t.Errorf("post still references deleted category: %v", categories)
	}

	rr, _ = ts.do(t, http.MethodPost, "/api/posts", map[string]any{"title": "t", "caption": "c", "categories": []string{id}}, token)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("unknown category on create: %d", rr.Code)
	}
}

func TestCommentsModeration(t *testing.T) {
	ts := newTestServer(t)
	_, adminToken := ts.user(t, "admin", true)
	_, readerToken := ts.user(t, "reader", false)

	slug := ts.createPost(t, adminToken, "Discuss")["slug"].(string)

	rr, comment := ts.do(t, http.MethodPost, "/api/comments", map[string]any{"desc": "first!", "slug": slug}, readerToken)
	if rr.Code != http.StatusCreated || comment["check"] != false {
		t.Fatalf("create comment: %d %v", rr.Code, comment)
	}
	commentID := comment["_id"].(string)

	rr, _ = ts.do(t, http.MethodPost, "/api/comments", map[string]any{"desc": "x", "slug": "missing"}, readerToken)
	if rr.Code != http.StatusNotFound {
		t.Errorf("comment on missing post: %d", rr.Code)
	}

	_, post := ts.do(t, http.MethodGet, "/api/posts/"+slug, nil, "")
	if _, ok := post["comments"]; ok {
		t.Errorf("unchecked comment visible: %v", post["comments"])
	}

	rr, _ = ts.do(t, http.MethodPut, "/api/comments/"+commentID, map[string]any{"check": true}, readerToken)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("reader approving own comment: %d", rr.Code)
	}
	rr, _ = ts.do(t, http.MethodPut, "/api/comments/"+commentID, map[string]any{"check": true}, adminToken)
	if rr.Code != http.StatusOK {
		t.Fatalf("admin approving: %d %s", rr.Code, rr.Body.String())
	}

	_, post = ts.do(t, http.MethodGet, "/api/posts/"+slug, nil, "")
	comments, _ := post["comments"].([]any)
	if len(comments) != 1 {
		t.Fatalf("approved comment missing: %v", post["comments"])
	}

	rr, _ = ts.do(t, http.MethodDelete, "/api/comments/"+commentID, nil, readerToken)
	if rr.Code != http.StatusOK {
		t.Errorf("owner delete: %d", rr.Code)
	}
}

func TestHealthAndUnknownRoutes(t *testing.T) {
	ts := newTestServer(t)

	rr, body := ts.do(t, http.MethodGet, "/health", nil, "")
	if rr.Code != http.StatusOK || body["success"] != true || body["message"] != "Server is healthy" || body["env"] != config.EnvTest {
		t.Fatalf("health: %d %v", rr.Code, body)
	}
	if _, err := time.Parse(time.RFC3339, body["timestamp"].(string)); err != nil {
		t.Errorf("timestamp: %v", err)
	}

	rr, _ = ts.do(t, http.MethodGet, "/", nil, "")
	if rr.Code != http.StatusOK || rr.Body.String() != "Server is running..." {
		t.Errorf("root: %d %q", rr.Code, rr.Body.String())
	}

	rr, body = ts.do(t, http.MethodGet, "/api/nowhere", nil, "")
	if rr.Code != http.StatusNotFound || body["message"] != "Invalid Path" {
		t.Errorf("unknown path: %d %v", rr.Code, body)
	}

	if rr.Header().Get(requestIDHeader) == "" {
		t.Error("request id header missing")
	}
}

func TestCORSExposesPaginationHeaders(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Allow-Origin = %q", got)
	}
	if got := rr.Header().Get("Access-Control-Expose-Headers"); got == "" {
		t.Error("pagination headers are not exposed")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set("Origin", "http://evil.example")
	rr = httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unexpected Allow-Origin %q for unlisted origin", got)
	}
}

func TestListPostsByTwoCategories(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.user(t, "admin", true)

	newCategory := func(title string) string {
		rr, body := ts.do(t, http.MethodPost, "/api/post-categories", map[string]any{"title": title}, token)
		if rr.Code != http.StatusCreated {
			t.Fatalf("create category %q: %d %s", title, rr.Code, rr.Body.String())
		}
		return body["_id"].(string)
	}
	goID, rustID, pythonID := newCategory("Go"), newCategory("Rust"), newCategory("Python")

	want := make(map[string]bool)
	for _, post := range []map[string]any{
		ts.createPost(t, token, "Only Go", goID),
		ts.createPost(t, token, "Only Rust", rustID),
		ts.createPost(t, token, "Go and Rust", goID, rustID),
	} {
		want[post["slug"].(string)] = true
	}
	ts.createPost(t, token, "Only Python", pythonID)
	ts.createPost(t, token, "Uncategorised")

	rr, body := ts.do(t, http.MethodGet, "/api/posts?categories="+goID+","+rustID, nil, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	if body["totalCount"].(float64) != 3 {
		t.Errorf("totalCount = %v, want 3", body["totalCount"])
	}

	items := body["items"].([]any)
	if len(items) != len(want) {
		t.Fatalf("got %d items, want %d", len(items), len(want))
	}
	for _, item := range items {
		slug := item.(map[string]any)["slug"].(string)
		if !want[slug] {
			t.Errorf("unexpected post %q in the union", slug)
		}
		delete(want, slug)
	}
	if len(want) != 0 {
		t.Errorf("posts missing from the union: %v", want)
	}
}

func TestCORSAllowAllEchoesOrigin(t *testing.T) {
	ts := newTestServer(t)
	ts.app.config.CORS.AllowAll = true
	ts.app.config.CORS.AllowedOrigins = nil
	handler := ts.app.routes()

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Allow-Origin = %q, want the request origin", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Allow-Credentials = %q", got)
	}
}

func TestCORSEmptyOriginListAllowsNothing(t *testing.T) {
	ts := newTestServer(t)
	ts.app.config.Env = config.EnvProduction
	ts.app.config.CORS.AllowedOrigins = nil
	handler := ts.app.routes()

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q, want none", got)
	}
}

func TestCreateCommentRejectsMalformedIDs(t *testing.T) {
	ts := newTestServer(t)
	_, adminToken := ts.user(t, "admin", true)
	_, readerToken := ts.user(t, "reader", false)
	slug := ts.createPost(t, adminToken, "Discuss")["slug"].(string)

	tests := []struct {
		name  string
		field string
		body  map[string]any
	}{
		{"parent", "parent", map[string]any{"desc": "hi", "slug": slug, "parent": "bob"}},
		{"reply on user", "replyOnUser", map[string]any{"desc": "hi", "slug": slug, "replyOnUser": "bob"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, body := ts.do(t, http.MethodPost, "/api/comments", tt.body, readerToken)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status %d, want 400: %s", rr.Code, rr.Body.String())
			}
			errs, _ := body["errors"].(map[string]any)
			if errs[tt.field] == nil {
				t.Errorf("no error reported for %s: %v", tt.field, body)
			}
		})
	}

	rr, _ := ts.do(t, http.MethodPost, "/api/comments", map[string]any{"desc": "hi", "slug": slug, "parent": ""}, readerToken)
	if rr.Code != http.StatusCreated {
		t.Errorf("empty parent should create a top-level comment, got %d", rr.Code)
	}
}

func TestMarkupOnlyValuesAreRejected(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.user(t, "admin", true)

	rr, body := ts.do(t, http.MethodPost, "/api/posts", map[string]any{"title": "<b></b>", "caption": "c"}, token)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400: %s", rr.Code, rr.Body.String())
	}
	if errs, _ := body["errors"].(map[string]any); errs["title"] == nil {
		t.Errorf("title error missing: %v", body)
	}

	rr, _ = ts.do(t, http.MethodPost, "/api/post-categories", map[string]any{"title": "&lt;i&gt;&lt;/i&gt;"}, token)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("category with markup-only title: %d", rr.Code)
	}
}
