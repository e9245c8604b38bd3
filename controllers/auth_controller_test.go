package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stray-app/api-go/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAuthTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.RefreshToken{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	ac := NewAuthController(db)
	r := gin.New()
	r.POST("/register", ac.Register)
	r.POST("/login", ac.Login)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body.Error
}

func TestRegisterFailureMessages(t *testing.T) {
	r := newAuthTestRouter(t)

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantMsg  string
	}{
		{"invalid email", `{"email":"not-an-email","password":"secret1"}`, http.StatusBadRequest, MsgInvalidEmail},
		{"weak password", `{"email":"ayse@example.com","password":"123"}`, http.StatusBadRequest, MsgWeakPassword},
		{"empty fields", `{"email":"","password":""}`, http.StatusBadRequest, MsgMissingFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(r, "/register", tt.body)
			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if got := errorMessage(t, w); got != tt.wantMsg {
				t.Errorf("error = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r := newAuthTestRouter(t)

	if w := postJSON(r, "/register", `{"email":"ayse@example.com","password":"secret1"}`); w.Code != http.StatusCreated {
		t.Fatalf("first register: status = %d, body = %s", w.Code, w.Body.String())
	}

	w := postJSON(r, "/register", `{"email":"ayse@example.com","password":"secret1"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
	if got := errorMessage(t, w); got != MsgEmailInUse {
		t.Errorf("error = %q, want %q", got, MsgEmailInUse)
	}
}

func TestLoginFailureMessages(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := newAuthTestRouter(t)

	if w := postJSON(r, "/register", `{"email":"ayse@example.com","password":"secret1"}`); w.Code != http.StatusCreated {
		t.Fatalf("register: status = %d", w.Code)
	}

	w := postJSON(r, "/login", `{"email":"nobody@example.com","password":"secret1"}`)
	if w.Code != http.StatusUnauthorized || errorMessage(t, w) != MsgUserNotFound {
		t.Errorf("unknown user: status = %d, error = %q", w.Code, errorMessage(t, w))
	}

	w = postJSON(r, "/login", `{"email":"ayse@example.com","password":"wrongpass"}`)
	if w.Code != http.StatusUnauthorized || errorMessage(t, w) != MsgWrongPassword {
		t.Errorf("wrong password: status = %d, error = %q", w.Code, errorMessage(t, w))
	}
}

func TestLoginReturnsDerivedProfile(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := newAuthTestRouter(t)

	if w := postJSON(r, "/register", `{"email":"ayse@example.com","password":"secret1"}`); w.Code != http.StatusCreated {
		t.Fatalf("register: status = %d", w.Code)
	}

	w := postJSON(r, "/login", `{"email":"ayse@example.com","password":"secret1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login: status = %d, body = %s", w.Code, w.Body.String())
	}

	var body struct {
		AccessToken string `json:"access_token"`
		User        struct {
			DisplayName string `json:"displayName"`
			Avatar      string `json:"avatar"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if body.AccessToken == "" {
		t.Error("no access token issued")
	}
	if body.User.DisplayName != "ayse" {
		t.Errorf("displayName = %q, want %q", body.User.DisplayName, "ayse")
	}
	if !strings.Contains(body.User.Avatar, "ayse%40example.com") {
		t.Errorf("avatar %q not derived from email", body.User.Avatar)
	}
}
