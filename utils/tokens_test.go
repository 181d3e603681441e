package utils

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func newRefreshTestApp(t *testing.T) *iris.Application {
	t.Helper()

	app := iris.New()
	verifier := jwt.NewVerifier(jwt.HS256, testSecret)
	verifier.Extractors = append(verifier.Extractors, RefreshTokenFromBody)
	verifyToken := verifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	app.Post("/refresh", verifyToken, func(ctx iris.Context) {
		token := jwt.GetVerifiedToken(ctx)
		ctx.JSON(iris.Map{"subject": token.StandardClaims.Subject})
	})

	if err := app.Build(); err != nil {
		t.Fatalf("building app: %v", err)
	}
	return app
}

func signRefreshToken(t *testing.T, subject string) string {
	t.Helper()

	signer := jwt.NewSigner(jwt.HS256, testSecret, time.Hour)
	token, err := signer.Sign(jwt.Claims{Subject: subject})
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return string(token)
}

func TestRefreshTokenExtractedFromBody(t *testing.T) {
	app := newRefreshTestApp(t)

	body := fmt.Sprintf(`{"refreshToken":%q}`, signRefreshToken(t, "42"))
	req := httptest.NewRequest(http.MethodPost, "/refresh", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("body token: status = %d, want 200 (%s)", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"42"`) {
		t.Errorf("response %q missing token subject", w.Body.String())
	}
}

func TestRefreshTokenHeaderStillWorks(t *testing.T) {
	app := newRefreshTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	req.Header.Set("Authorization", "Bearer "+signRefreshToken(t, "7"))

	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("header token: status = %d, want 200", w.Code)
	}
}

func TestRefreshTokenMissingEverywhere(t *testing.T) {
	app := newRefreshTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/refresh", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", w.Code)
	}
}
