package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stray-app/api-go/config"
)

func newTestUploadController(hostURL string) *UploadController {
	return &UploadController{
		Cloudinary: &config.CloudinaryConfig{
			CloudName:    "test-cloud",
			UploadPreset: "stray-unsigned",
			BaseURL:      hostURL,
		},
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestForwardToImageHostReturnsSecureURL(t *testing.T) {
	var gotPreset string
	host := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1_1/test-cloud/image/upload" {
			t.Errorf("upload path = %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		gotPreset = r.FormValue("upload_preset")
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("missing file part: %v", err)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"secure_url": "https://res.example.com/image/upload/v1/abc.jpg",
		})
	}))
	defer host.Close()

	uc := newTestUploadController(host.URL)
	url, err := uc.forwardToImageHost(context.Background(), strings.NewReader("fake image bytes"), "cat.jpg")
	if err != nil {
		t.Fatalf("forwardToImageHost: %v", err)
	}
	if url != "https://res.example.com/image/upload/v1/abc.jpg" {
		t.Errorf("url = %q", url)
	}
	if gotPreset != "stray-unsigned" {
		t.Errorf("upload_preset = %q, want %q", gotPreset, "stray-unsigned")
	}
}

func TestForwardToImageHostSurfacesRemoteError(t *testing.T) {
	host := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "Upload preset not found"},
		})
	}))
	defer host.Close()

	uc := newTestUploadController(host.URL)
	_, err := uc.forwardToImageHost(context.Background(), strings.NewReader("x"), "cat.jpg")
	if err == nil {
		t.Fatal("expected an error from the image host")
	}
	if !strings.Contains(err.Error(), "Upload preset not found") {
		t.Errorf("error %q does not carry the remote message", err)
	}
}

func TestForwardToImageHostRejectsEmptyResponse(t *testing.T) {
	host := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{}"))
	}))
	defer host.Close()

	uc := newTestUploadController(host.URL)
	if _, err := uc.forwardToImageHost(context.Background(), strings.NewReader("x"), "cat.jpg"); err == nil {
		t.Fatal("expected an error for a response without a URL")
	}
}

func TestVerifyFileOwnership(t *testing.T) {
	uc := &UploadController{}

	tests := []struct {
		key    string
		userID uint
		want   bool
	}{
		{"uploads/photos/7/1700000000_abc.jpg", 7, true},
		{"uploads/photos/7/1700000000_abc.jpg", 8, false},
		{"garbage", 7, false},
	}

	for _, tt := range tests {
		if got := uc.verifyFileOwnership(tt.key, tt.userID); got != tt.want {
			t.Errorf("verifyFileOwnership(%q, %d) = %v, want %v", tt.key, tt.userID, got, tt.want)
		}
	}
}
