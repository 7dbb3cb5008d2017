package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/notevault/notevault/internal/models"
	"github.com/notevault/notevault/internal/utils"
)

func gateRouter(mw gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(mw)
	ok := func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) }
	router.GET("/", ok)
	router.GET("/setup", ok)
	router.GET("/maintenance", ok)
	router.GET("/notes", ok)
	router.GET("/api/notes", ok)
	router.GET("/health", ok)
	return router
}

func get(router *gin.Engine, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestSetupGate_RedirectsPagesWhileUnconfigured(t *testing.T) {
	router := gateRouter(SetupGate(func() bool { return true }))

	for _, path := range []string{"/", "/notes"} {
		w := get(router, path)
		if w.Code != http.StatusTemporaryRedirect {
			t.Errorf("%s: expected status %d, got %d", path, http.StatusTemporaryRedirect, w.Code)
		}
		if loc := w.Header().Get("Location"); loc != "/setup" {
			t.Errorf("%s: expected redirect to /setup, got %q", path, loc)
		}
	}
}

func TestSetupGate_SetupPagePassesWhileUnconfigured(t *testing.T) {
	router := gateRouter(SetupGate(func() bool { return true }))

	if w := get(router, "/setup"); w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestSetupGate_APIExemptWhileUnconfigured(t *testing.T) {
	// API traffic is never redirected; setup enforcement for the API
	// surface happens in the handlers.
	router := gateRouter(SetupGate(func() bool { return true }))

	for _, path := range []string{"/api/notes", "/health"} {
		if w := get(router, path); w.Code != http.StatusOK {
			t.Errorf("%s: expected status %d, got %d", path, http.StatusOK, w.Code)
		}
	}
}

func TestSetupGate_BouncesSetupWhenOperational(t *testing.T) {
	router := gateRouter(SetupGate(func() bool { return false }))

	w := get(router, "/setup")
	if w.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected status %d, got %d", http.StatusTemporaryRedirect, w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("expected redirect to /, got %q", loc)
	}

	if w := get(router, "/notes"); w.Code != http.StatusOK {
		t.Errorf("/notes: expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestMaintenanceGate_RedirectsPages(t *testing.T) {
	router := gateRouter(MaintenanceGate(func() bool { return true }))

	w := get(router, "/notes")
	if w.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected status %d, got %d", http.StatusTemporaryRedirect, w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/maintenance" {
		t.Errorf("expected redirect to /maintenance, got %q", loc)
	}
}

func TestMaintenanceGate_APINotGated(t *testing.T) {
	router := gateRouter(MaintenanceGate(func() bool { return true }))

	for _, path := range []string{"/api/notes", "/maintenance", "/setup", "/health"} {
		if w := get(router, path); w.Code != http.StatusOK {
			t.Errorf("%s: expected status %d, got %d", path, http.StatusOK, w.Code)
		}
	}
}

func TestMaintenanceGate_AdminCookiePasses(t *testing.T) {
	router := gateRouter(MaintenanceGate(func() bool { return true }))

	adminToken, _ := utils.GenerateToken(1, "admin", models.RoleAdmin, 24)
	userToken, _ := utils.GenerateToken(2, "user", models.RoleUser, 24)

	w := get(router, "/notes", &http.Cookie{Name: TokenCookie, Value: adminToken})
	if w.Code != http.StatusOK {
		t.Errorf("admin: expected status %d, got %d", http.StatusOK, w.Code)
	}

	w = get(router, "/notes", &http.Cookie{Name: TokenCookie, Value: userToken})
	if w.Code != http.StatusTemporaryRedirect {
		t.Errorf("user: expected status %d, got %d", http.StatusTemporaryRedirect, w.Code)
	}
}

func TestMaintenanceGate_OffPassesAll(t *testing.T) {
	router := gateRouter(MaintenanceGate(func() bool { return false }))

	for _, path := range []string{"/", "/notes", "/api/notes"} {
		if w := get(router, path); w.Code != http.StatusOK {
			t.Errorf("%s: expected status %d, got %d", path, http.StatusOK, w.Code)
		}
	}
}
