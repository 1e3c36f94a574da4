package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupLocaleRouter() *gin.Engine {
	r := gin.New()
	r.GET("/locales", NegotiateLocale)
	r.GET("/locales/:lang", GetLocale)
	return r
}

func TestGetLocale(t *testing.T) {
	r := setupLocaleRouter()

	rec := doRequest(r, "GET", "/locales/ur", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if result["dir"] != "rtl" {
		t.Errorf("expected rtl, got %v", result["dir"])
	}
	messages := result["messages"].(map[string]interface{})
	if messages["common.save"] != "محفوظ کریں" {
		t.Errorf("unexpected translation %v", messages["common.save"])
	}

	rec = doRequest(r, "GET", "/locales/fr", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestNegotiateLocale(t *testing.T) {
	r := setupLocaleRouter()

	tests := []struct {
		header string
		want   string
	}{
		{"ur-PK,ur;q=0.9", "ur"},
		{"de-DE", "en"},
		{"", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.want+"_"+tt.header, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/locales", nil)
			if tt.header != "" {
				req.Header.Set("Accept-Language", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if got := parseJSON(t, rec)["lang"]; got != tt.want {
				t.Errorf("expected %s, got %v", tt.want, got)
			}
			if rec.Header().Get("Content-Language") != tt.want {
				t.Errorf("unexpected Content-Language %q", rec.Header().Get("Content-Language"))
			}
		})
	}
}
