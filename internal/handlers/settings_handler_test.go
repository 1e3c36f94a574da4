package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"khata/internal/forex"
	"khata/internal/models"
)

type mockQuoter struct {
	quote *forex.Quote
	err   error
}

func (m *mockQuoter) KWDToPKR(context.Context) (*forex.Quote, error) {
	return m.quote, m.err
}

func setupSettingsRouter(handler *SettingsHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectSession("admin", models.RoleAdmin))
	auth.GET("/settings/currency", handler.GetSettings)
	auth.PUT("/settings/currency", handler.UpdateSettings)
	auth.GET("/settings/currency/stream", handler.StreamSettings)
	auth.GET("/settings/currency/reference", handler.GetReferenceRate)
	return r
}

func TestSettingsHandler_GetSettings(t *testing.T) {
	r := setupSettingsRouter(NewSettingsHandler(&mockSettingsService{}, nil))

	rec := doRequest(r, "GET", "/settings/currency", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	settings := parseJSON(t, rec)["settings"].(map[string]interface{})
	if settings["kwd_to_pkr_rate"] != "85" {
		t.Errorf("expected rate 85, got %v", settings["kwd_to_pkr_rate"])
	}
}

func TestSettingsHandler_UpdateSettings(t *testing.T) {
	t.Run("updates rate with editor", func(t *testing.T) {
		var gotRate decimal.Decimal
		var gotEditor string
		svc := &mockSettingsService{
			updateRateFn: func(_ context.Context, rate decimal.Decimal, editor string) (*models.Settings, error) {
				gotRate, gotEditor = rate, editor
				return &models.Settings{ID: models.CurrencySettingsID, KWDToPKRRate: rate, UpdatedBy: editor}, nil
			},
		}
		r := setupSettingsRouter(NewSettingsHandler(svc, nil))

		rec := doRequest(r, "PUT", "/settings/currency", `{"kwd_to_pkr_rate":"905.75"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotRate.String() != "905.75" || gotEditor != "admin@example.com" {
			t.Errorf("unexpected call: rate=%s editor=%q", gotRate, gotEditor)
		}
	})

	for _, body := range []string{`{"kwd_to_pkr_rate":0}`, `{"kwd_to_pkr_rate":"-1"}`, `{}`} {
		t.Run("rejects "+body, func(t *testing.T) {
			r := setupSettingsRouter(NewSettingsHandler(&mockSettingsService{}, nil))

			rec := doRequest(r, "PUT", "/settings/currency", body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			assertErrorCode(t, parseJSON(t, rec), "INVALID_RATE")
		})
	}
}

func TestSettingsHandler_GetReferenceRate(t *testing.T) {
	t.Run("returns stored and market rate", func(t *testing.T) {
		quoter := &mockQuoter{quote: &forex.Quote{From: "KWD", To: "PKR", Rate: decimal.RequireFromString("906.1"), Source: "Yahoo Finance", AsOf: time.Now()}}
		r := setupSettingsRouter(NewSettingsHandler(&mockSettingsService{}, quoter))

		rec := doRequest(r, "GET", "/settings/currency/reference", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		market := result["market"].(map[string]interface{})
		stored := result["stored"].(map[string]interface{})
		if market["rate"] != "906.1" || stored["kwd_to_pkr_rate"] != "85" {
			t.Errorf("unexpected response: %v", result)
		}
	})

	t.Run("503 when disabled", func(t *testing.T) {
		r := setupSettingsRouter(NewSettingsHandler(&mockSettingsService{}, nil))

		rec := doRequest(r, "GET", "/settings/currency/reference", "")

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "FOREX_UNAVAILABLE")
	})

	t.Run("503 when upstream fails", func(t *testing.T) {
		quoter := &mockQuoter{err: errors.New("upstream down")}
		r := setupSettingsRouter(NewSettingsHandler(&mockSettingsService{}, quoter))

		rec := doRequest(r, "GET", "/settings/currency/reference", "")

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
	})
}

func TestSettingsHandler_StreamSettings(t *testing.T) {
	push := make(chan func(models.Settings), 1)
	svc := &mockSettingsService{
		subscribeFn: func(_ context.Context, fn func(models.Settings)) (func(), error) {
			fn(models.DefaultSettings(decimal.NewFromInt(85)))
			push <- fn
			return func() {}, nil
		},
	}
	server := httptest.NewServer(setupSettingsRouter(NewSettingsHandler(svc, nil)))
	defer server.Close()

	reader, closeStream := openStream(t, server.URL+"/settings/currency/stream")
	defer closeStream()

	_, data := readEvent(t, reader)
	if !strings.Contains(data, `"kwd_to_pkr_rate":"85"`) {
		t.Errorf("unexpected first snapshot: %s", data)
	}

	fn := <-push
	fn(models.Settings{ID: models.CurrencySettingsID, KWDToPKRRate: decimal.NewFromInt(90), UpdatedBy: "a@example.com"})

	_, data = readEvent(t, reader)
	if !strings.Contains(data, `"kwd_to_pkr_rate":"90"`) {
		t.Errorf("unexpected second snapshot: %s", data)
	}
}
