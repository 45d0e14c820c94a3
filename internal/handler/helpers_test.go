package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/msomdec/storefront/internal/domain"
	"github.com/msomdec/storefront/internal/events"
	"github.com/msomdec/storefront/internal/handler"
	"github.com/msomdec/storefront/internal/repository/sqlite"
	"github.com/msomdec/storefront/internal/service"
	"github.com/shopspring/decimal"
)

const testJWTSecret = "test-secret-for-handler-tests-0123456789"

type testApp struct {
	db      *sqlite.DB
	auth    *service.AuthService
	catalog *service.CatalogService
	carts   *service.CartService
	orders  *service.OrderService
	srv     *httptest.Server
}

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestAuthService(t *testing.T) *service.AuthService {
	t.Helper()
	db := newTestDB(t)
	return service.NewAuthService(db.Users(), db.Sessions(), testJWTSecret, 4, time.Hour)
}

func newTestAppWithLimiter(t *testing.T, limiter *service.RateLimiter) *testApp {
	t.Helper()
	db := newTestDB(t)

	app := &testApp{
		db:      db,
		auth:    service.NewAuthService(db.Users(), db.Sessions(), testJWTSecret, 4, time.Hour),
		catalog: service.NewCatalogService(db.Products()),
		carts:   service.NewCartService(db.Carts(), db.Products()),
		orders:  service.NewOrderService(db.Orders(), db.Products(), events.Noop{}),
	}

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, app.auth, app.catalog, app.carts, app.orders, limiter, false)

	app.srv = httptest.NewServer(handler.RequestID(handler.Logger(handler.SecurityHeaders(mux))))
	t.Cleanup(app.srv.Close)
	return app
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	limiter := service.NewRateLimiter(100, 100)
	t.Cleanup(limiter.Stop)
	return newTestAppWithLimiter(t, limiter)
}

func (a *testApp) createProduct(t *testing.T, name, price string) *domain.Product {
	t.Helper()
	p := &domain.Product{Name: name, ImageURL: "/static/img/" + name + ".jpg", Price: decimal.RequireFromString(price)}
	if err := a.db.Products().Create(context.Background(), p); err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p
}

func (a *testApp) count(t *testing.T, query string, args ...any) int {
	t.Helper()
	var n int
	if err := a.db.SqlDB.Get(&n, query, args...); err != nil {
		t.Fatalf("count %q: %v", query, err)
	}
	return n
}

// newClient returns a client with its own cookie jar that does not follow
// redirects.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("create cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse // don't follow redirects automatically
		},
	}
}

func (a *testApp) register(t *testing.T, client *http.Client, email string) {
	t.Helper()
	resp := postForm(t, client, a.srv.URL+"/register", url.Values{
		"first_name":       {"Test"},
		"last_name":        {"User"},
		"email":            {email},
		"password":         {"password123"},
		"confirm_password": {"password123"},
	})
	expectRedirect(t, resp, "/catalog")
}

func (a *testApp) authToken(t *testing.T, client *http.Client) string {
	t.Helper()
	u, _ := url.Parse(a.srv.URL)
	for _, c := range client.Jar.Cookies(u) {
		if c.Name == "auth_token" {
			return c.Value
		}
	}
	t.Fatal("no auth_token cookie in jar")
	return ""
}

func postForm(t *testing.T, client *http.Client, target string, form url.Values) *http.Response {
	t.Helper()
	resp, err := client.PostForm(target, form)
	if err != nil {
		t.Fatalf("POST %s: %v", target, err)
	}
	return resp
}

func get(t *testing.T, client *http.Client, target string) *http.Response {
	t.Helper()
	resp, err := client.Get(target)
	if err != nil {
		t.Fatalf("GET %s: %v", target, err)
	}
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func expectRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303 redirect to %s, got %d", location, resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != location {
		t.Fatalf("expected redirect to %s, got %s", location, loc)
	}
}
