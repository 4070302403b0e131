package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daily-reconciliation/internal/calc"
	"daily-reconciliation/internal/domain"
	"daily-reconciliation/internal/gateway"
	"daily-reconciliation/internal/usecase"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gateway.MemoryDayRecordRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	repo := gateway.NewMemoryDayRecordRepository()
	uc := usecase.NewReconciliationUseCase(repo, calc.NewResolver(calc.DefaultRates()), logger,
		usecase.WithRateHints(repo))

	return NewRouter(NewDayHandler(uc, logger), RouterConfig{Logger: logger, RateLimit: "1000-M"}), repo
}

func do(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestDayHandler_EditAndSaveFlow(t *testing.T) {
	r, repo := newTestRouter(t)

	w := do(r, http.MethodPost, "/v1/days/2025-05-10/real/session", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	edits := []EditRequest{
		{Field: "category.BREAD", Value: "1000"},
		{Field: "category.PASTRY", Value: "600"},
		{Field: "manualSubtotal", Value: "1500"},
		{Field: "payments.cardAmount", Value: "400"},
		{Field: "delivery.grossAmount", Value: "100"},
	}
	var totals TotalsResponse
	for _, e := range edits {
		w = do(r, http.MethodPatch, "/v1/session/fields", e)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	decode(t, w, &totals)
	assert.Equal(t, "1500", totals.Totals.TotalNet.String())
	assert.Equal(t, "82", totals.Totals.DeliveryNet.String())
	assert.Equal(t, "1000", totals.Totals.CashDerived.String())

	w = do(r, http.MethodPost, "/v1/session/save", SaveRequest{Draft: true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var view usecase.SessionView
	decode(t, w, &view)
	assert.Equal(t, domain.SyncStatusReady, view.Record.SyncStatus)
	assert.False(t, view.Dirty)

	saved, err := repo.Load(context.Background(), view.Record.Date, domain.ModeReal)
	require.NoError(t, err)
	require.NotNil(t, saved.Delivery.RateSnapshot)
	assert.Equal(t, "75", saved.Delivery.TaxableShare.String())

	w = do(r, http.MethodPost, "/v1/session/sync", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &view)
	assert.Equal(t, domain.SyncStatusSynced, view.Record.SyncStatus)

	w = do(r, http.MethodPost, "/v1/session/save", SaveRequest{Draft: true})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodDelete, "/v1/session", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodGet, "/v1/session", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDayHandler_DraftSaveKeepsSyncedTargetDay(t *testing.T) {
	r, repo := newTestRouter(t)

	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/v1/days/2025-05-11/real/session", nil).Code)
	require.Equal(t, http.StatusOK, do(r, http.MethodPatch, "/v1/session/fields", EditRequest{Field: "manualSubtotal", Value: "900"}).Code)
	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/v1/session/sync", nil).Code)

	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/v1/days/2025-05-10/real/session", nil).Code)
	require.Equal(t, http.StatusOK, do(r, http.MethodPatch, "/v1/session/fields", EditRequest{Field: "manualSubtotal", Value: "1"}).Code)

	w := do(r, http.MethodPost, "/v1/session/save", SaveRequest{Draft: true, TargetDate: "2025-05-11"})
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	target, err := domain.ParseDate("2025-05-11")
	require.NoError(t, err)
	stored, err := repo.Load(context.Background(), target, domain.ModeReal)
	require.NoError(t, err)
	assert.Equal(t, domain.SyncStatusSynced, stored.SyncStatus)
	assert.Equal(t, "900", stored.ManualSubtotal.String())

	w = do(r, http.MethodPost, "/v1/session/save", SaveRequest{Draft: false, TargetDate: "2025-05-11"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	stored, err = repo.Load(context.Background(), target, domain.ModeReal)
	require.NoError(t, err)
	assert.Equal(t, "1", stored.ManualSubtotal.String())
}

func TestDayHandler_DeclaredLocksFields(t *testing.T) {
	r, _ := newTestRouter(t)

	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/v1/days/2025-05-10/real/session", nil).Code)
	require.Equal(t, http.StatusOK, do(r, http.MethodPatch, "/v1/session/fields", EditRequest{Field: "category.BREAD", Value: "100"}).Code)
	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/v1/session/save", SaveRequest{Draft: true}).Code)

	w := do(r, http.MethodPost, "/v1/days/2025-05-10/declared/session", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var view usecase.SessionView
	decode(t, w, &view)
	assert.True(t, view.Seeded)
	assert.Equal(t, "111", view.Record.CategorySales[domain.CategoryBread].String())

	w = do(r, http.MethodPatch, "/v1/session/fields", EditRequest{Field: "supplements.caterers", Value: "5"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodPatch, "/v1/session/fields", EditRequest{Field: "nope", Value: "5"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(r, http.MethodPost, "/v1/session/save", SaveRequest{Draft: true, TargetDate: "2025-05-11"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDayHandler_BadRequests(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		want   int
	}{
		{name: "bad date", method: http.MethodGet, path: "/v1/days/10-05-2025/real", want: http.StatusBadRequest},
		{name: "bad mode", method: http.MethodPost, path: "/v1/days/2025-05-10/fiscal/session", want: http.StatusBadRequest},
		{name: "edit without session", method: http.MethodPatch, path: "/v1/session/fields", body: EditRequest{Field: "ticketCount", Value: "3"}, want: http.StatusNotFound},
		{name: "edit without field", method: http.MethodPatch, path: "/v1/session/fields", body: EditRequest{Value: "3"}, want: http.StatusUnprocessableEntity},
		{name: "bad target date", method: http.MethodPost, path: "/v1/session/save", body: SaveRequest{TargetDate: "tomorrow"}, want: http.StatusUnprocessableEntity},
		{name: "unknown route", method: http.MethodGet, path: "/v2/anything", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())

			var apiErr APIError
			decode(t, w, &apiErr)
			assert.NotEmpty(t, apiErr.Detail)
		})
	}
}

func TestDayHandler_PreviewIsReadOnly(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodGet, "/v1/days/2025-05-10/declared", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var view usecase.SessionView
	decode(t, w, &view)
	assert.False(t, view.Seeded)
	assert.Equal(t, "2025-05-10", view.Date)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/v1/session", nil).Code)
}

func TestHealth_WithoutBackends(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	decode(t, w, &body)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "disabled", body["db"])
	assert.Equal(t, "disabled", body["redis"])
}

func TestRateLimit_Rejects(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit("1-M"))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/ping", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodGet, "/ping", nil).Code)
}

func TestDayHandler_Compare(t *testing.T) {
	r, _ := newTestRouter(t)

	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/v1/days/2025-05-10/real/session", nil).Code)
	require.Equal(t, http.StatusOK, do(r, http.MethodPatch, "/v1/session/fields", EditRequest{Field: "category.PASTRY", Value: "120"}).Code)
	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/v1/session/save", SaveRequest{Draft: true}).Code)

	w := do(r, http.MethodGet, "/v1/comparisons/2025-05-10", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var report domain.ComparisonReport
	decode(t, w, &report)
	assert.True(t, report.RealSaved)
	assert.Equal(t, "72", report.Declared.TaxableGross.String())
	assert.Equal(t, "-48", report.Difference.TaxableGross.String())

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/v1/comparisons/someday", nil).Code)
}
