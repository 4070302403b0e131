package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"daily-reconciliation/internal/domain"
	"daily-reconciliation/internal/usecase"
)

// DayController is the edit session surface the HTTP handlers drive.
type DayController interface {
	Open(ctx context.Context, date time.Time, mode domain.Mode) (*usecase.SessionView, error)
	Preview(ctx context.Context, date time.Time, mode domain.Mode) (*usecase.SessionView, error)
	Current() (*usecase.SessionView, error)
	CommitEdit(ctx context.Context, field domain.Field, value string) (domain.DerivedTotals, error)
	Save(ctx context.Context, draft bool, target *time.Time) (*usecase.SessionView, error)
	Sync(ctx context.Context) (*usecase.SessionView, error)
	Close(ctx context.Context)
	Compare(ctx context.Context, date time.Time) (*domain.ComparisonReport, error)
}

type EditRequest struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value"`
}

type SaveRequest struct {
	Draft      bool   `json:"draft"`
	TargetDate string `json:"target_date" validate:"omitempty,datetime=2006-01-02"`
}

// TotalsResponse carries totals rounded for display.
type TotalsResponse struct {
	Totals domain.DerivedTotals `json:"totals"`
}

type DayHandler struct {
	uc     DayController
	logger *logrus.Logger
}

func NewDayHandler(uc DayController, logger *logrus.Logger) *DayHandler {
	return &DayHandler{uc: uc, logger: logger}
}

// Open handles POST /v1/days/:date/:mode/session.
func (h *DayHandler) Open(c *gin.Context) {
	date, mode, ok := dayParams(c)
	if !ok {
		return
	}
	view, err := h.uc.Open(c.Request.Context(), date, mode)
	if err != nil {
		writeError(c, h.logger, "Open", err)
		return
	}
	c.JSON(http.StatusOK, display(view))
}

// Preview handles GET /v1/days/:date/:mode.
func (h *DayHandler) Preview(c *gin.Context) {
	date, mode, ok := dayParams(c)
	if !ok {
		return
	}
	view, err := h.uc.Preview(c.Request.Context(), date, mode)
	if err != nil {
		writeError(c, h.logger, "Preview", err)
		return
	}
	c.JSON(http.StatusOK, display(view))
}

// Current handles GET /v1/session.
func (h *DayHandler) Current(c *gin.Context) {
	view, err := h.uc.Current()
	if err != nil {
		writeError(c, h.logger, "Current", err)
		return
	}
	c.JSON(http.StatusOK, display(view))
}

// Edit handles PATCH /v1/session/fields.
func (h *DayHandler) Edit(c *gin.Context) {
	var req EditRequest
	if !bindAndValidate(c, &req) {
		return
	}
	totals, err := h.uc.CommitEdit(c.Request.Context(), domain.Field(req.Field), req.Value)
	if err != nil {
		writeError(c, h.logger, "Edit", err)
		return
	}
	c.JSON(http.StatusOK, TotalsResponse{Totals: totals.Rounded()})
}

// Save handles POST /v1/session/save.
func (h *DayHandler) Save(c *gin.Context) {
	var req SaveRequest
	if !bindAndValidate(c, &req) {
		return
	}
	var target *time.Time
	if req.TargetDate != "" {
		t, err := domain.ParseDate(req.TargetDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, APIError{Detail: "target_date must be formatted YYYY-MM-DD"})
			return
		}
		target = &t
	}
	view, err := h.uc.Save(c.Request.Context(), req.Draft, target)
	if err != nil {
		writeError(c, h.logger, "Save", err)
		return
	}
	c.JSON(http.StatusOK, display(view))
}

// Sync handles POST /v1/session/sync.
func (h *DayHandler) Sync(c *gin.Context) {
	view, err := h.uc.Sync(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, "Sync", err)
		return
	}
	c.JSON(http.StatusOK, display(view))
}

// Close handles DELETE /v1/session.
func (h *DayHandler) Close(c *gin.Context) {
	h.uc.Close(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// Compare handles GET /v1/comparisons/:date.
func (h *DayHandler) Compare(c *gin.Context) {
	date, err := domain.ParseDate(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, APIError{Detail: "date must be formatted YYYY-MM-DD"})
		return
	}
	report, err := h.uc.Compare(c.Request.Context(), date)
	if err != nil {
		writeError(c, h.logger, "Compare", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func display(view *usecase.SessionView) *usecase.SessionView {
	out := *view
	out.Totals = view.Totals.Rounded()
	return &out
}
