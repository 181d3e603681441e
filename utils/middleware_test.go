package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

var testSecret = []byte("middleware-test-secret")

func newRBACTestApp(t *testing.T) *iris.Application {
	t.Helper()

	app := iris.New()
	verifier := jwt.NewVerifier(jwt.HS256, testSecret)
	verifyToken := verifier.Verify(func() interface{} {
		return new(AccessToken)
	})

	admin := app.Party("/admin", verifyToken, RequireRole(RoleAdmin))
	admin.Get("/", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"userID": ContextUserID(ctx), "role": ContextUserRole(ctx)})
	})

	if err := app.Build(); err != nil {
		t.Fatalf("building app: %v", err)
	}
	return app
}

func signTestToken(t *testing.T, id uint, role string) string {
	t.Helper()

	signer := jwt.NewSigner(jwt.HS256, testSecret, 15*time.Minute)
	token, err := signer.Sign(AccessToken{ID: id, Role: role})
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return string(token)
}

func TestRequireRoleRejectsMissingToken(t *testing.T) {
	app := newRBACTestApp(t)

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", w.Code)
	}
}

func TestRequireRoleForbidsLowerRoles(t *testing.T) {
	app := newRBACTestApp(t)

	for _, role := range []string{RoleGuest, RoleFriend, RoleFamily, RoleStaff, RoleManager} {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, 7, role))

		w := httptest.NewRecorder()
		app.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("%s token: status = %d, want 403", role, w.Code)
		}
	}
}

func TestRequireRoleAllowsAdminAndUp(t *testing.T) {
	app := newRBACTestApp(t)

	for _, role := range []string{RoleAdmin, RoleOwner} {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, 7, role))

		w := httptest.NewRecorder()
		app.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("%s token: status = %d, want 200", role, w.Code)
		}
	}
}

func TestRequireRoleTreatsUnknownRoleAsGuest(t *testing.T) {
	app := newRBACTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, 7, "superuser"))

	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("unknown role: status = %d, want 403", w.Code)
	}
}
