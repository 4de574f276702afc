package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"finbook/internal/models"
)

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthRequired(), func(c *gin.Context) {
		userID := c.MustGet("userID").(uint)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	router := setupAuthRouter()

	t.Run("valid_token", func(t *testing.T) {
		token, err := GenerateToken(&models.User{Base: models.Base{ID: 42}, Email: "a@b.com"})
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}

		w := doRequest(router, "Bearer "+token)
		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("missing_header", func(t *testing.T) {
		w := doRequest(router, "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
		if body := w.Body.String(); body != `{"error":"Missing authentication token"}` {
			t.Errorf("unexpected body: %s", body)
		}
	})

	t.Run("malformed_headers_treated_as_absent", func(t *testing.T) {
		// Anything other than exactly two segments with a Bearer scheme
		// counts as a missing token.
		for _, header := range []string{
			"Bearer",
			"Bearer a b",
			"Basic dXNlcjpwYXNz",
			"bearer sometoken",
		} {
			w := doRequest(router, header)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("header %q: expected 401, got %d", header, w.Code)
			}
			if body := w.Body.String(); body != `{"error":"Missing authentication token"}` {
				t.Errorf("header %q: unexpected body: %s", header, body)
			}
		}
	})

	t.Run("invalid_token", func(t *testing.T) {
		w := doRequest(router, "Bearer not.a.jwt")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
		if body := w.Body.String(); body != `{"error":"Invalid or expired token"}` {
			t.Errorf("unexpected body: %s", body)
		}
	})
}

func TestValidateToken(t *testing.T) {
	t.Run("round_trip", func(t *testing.T) {
		token, err := GenerateToken(&models.User{Base: models.Base{ID: 7}, Email: "x@y.com"})
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}

		userID, ok := ValidateToken(token)
		if !ok {
			t.Fatal("expected valid token")
		}
		if userID != 7 {
			t.Errorf("expected user 7, got %d", userID)
		}
	})

	t.Run("fails_closed_on_garbage", func(t *testing.T) {
		for _, token := range []string{"", "garbage", "a.b.c"} {
			if _, ok := ValidateToken(token); ok {
				t.Errorf("token %q: expected validation to fail", token)
			}
		}
	})
}

func TestAuthOptional(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/open", AuthOptional(), func(c *gin.Context) {
		if userID, exists := c.Get("userID"); exists {
			c.JSON(http.StatusOK, gin.H{"user_id": userID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"anonymous": true})
	})

	t.Run("proceeds_without_token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/open", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
	})

	t.Run("proceeds_with_invalid_token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/open", nil)
		req.Header.Set("Authorization", "Bearer bogus")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
	})

	t.Run("resolves_identity_with_valid_token", func(t *testing.T) {
		token, err := GenerateToken(&models.User{Base: models.Base{ID: 9}, Email: "z@y.com"})
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/open", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
		if w.Body.String() != `{"user_id":9}` {
			t.Errorf("unexpected body: %s", w.Body.String())
		}
	})
}
