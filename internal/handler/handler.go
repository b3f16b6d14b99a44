package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dan9191/solar-simulator/internal/benefit"
	"github.com/Dan9191/solar-simulator/internal/chart"
	"github.com/Dan9191/solar-simulator/internal/demand"
	"github.com/Dan9191/solar-simulator/internal/models"
	"github.com/Dan9191/solar-simulator/internal/params"
	"github.com/Dan9191/solar-simulator/internal/report"
	"github.com/Dan9191/solar-simulator/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// ReportSender delivers a benefit report by email
type ReportSender interface {
	SendBenefitReport(to string, d *models.Dashboard, workbook []byte) error
}

type Handler struct {
	svc      *service.Service
	reports  ReportSender
	log      *logrus.Logger
	validate *validator.Validate
}

func NewHandler(svc *service.Service, reports ReportSender, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, reports: reports, log: log, validate: validator.New()}
}

// Dashboard recomputes the whole view for the query parameters
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.recompute(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, d)
}

// Demand returns the first horizon records of a kind
func (h *Handler) Demand(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	kind := models.KindPredicted
	if raw := q.Get("kind"); raw != "" {
		k, err := models.ParseKind(raw)
		if err != nil {
			h.writeError(w, errors.Join(benefit.ErrInvalidParameter, err))
			return
		}
		kind = k
	}

	horizon := h.svc.DefaultParameters().HorizonDays
	if raw := q.Get(params.KeyHorizon); raw != "" {
		days, err := params.ParseHorizon(raw)
		if err == nil {
			err = params.ValidateHorizon(days)
		}
		if err != nil {
			h.writeError(w, err)
			return
		}
		horizon = days
	}

	h.writeJSON(w, http.StatusOK, h.svc.Window(kind, horizon))
}

// Scenarios lists the capacity catalog
func (h *Handler) Scenarios(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.Catalog())
}

// DieselPrice reports the current default diesel price
func (h *Handler) DieselPrice(w http.ResponseWriter, r *http.Request) {
	price, fromFeed := h.svc.DieselPrice()
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"price_per_liter": price,
		"from_feed":       fromFeed,
	})
}

// DemandChart renders the demand time series
func (h *Handler) DemandChart(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := chart.RenderDemand(&buf, demand.Series(h.svc.Records())); err != nil {
		h.writeError(w, err)
		return
	}
	writePNG(w, buf.Bytes())
}

// BenefitsChart renders the scenario comparison
func (h *Handler) BenefitsChart(w http.ResponseWriter, r *http.Request) {
	d, err := h.recompute(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := chart.RenderComparison(&buf, d.Comparison); err != nil {
		h.writeError(w, err)
		return
	}
	writePNG(w, buf.Bytes())
}

// Export downloads the results table as a workbook
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	d, err := h.recompute(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := report.WriteWorkbook(&buf, d); err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="beneficios.xlsx"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

type emailReportRequest struct {
	To string `json:"to" validate:"required,email"`
}

// EmailReport sends the results of the query parameters to an address
func (h *Handler) EmailReport(w http.ResponseWriter, r *http.Request) {
	var req emailReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "a valid recipient address is required"})
		return
	}

	d, err := h.recompute(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := report.WriteWorkbook(&buf, d); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.reports.SendBenefitReport(req.To, d, buf.Bytes()); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, map[string]string{"status": "sent", "to": req.To})
}

// Health reports liveness and the loaded record count
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ok", "records": len(h.svc.Records())})
}

func (h *Handler) recompute(r *http.Request) (*models.Dashboard, error) {
	q := r.URL.Query()
	p, err := params.FromQuery(h.svc.DefaultParameters(), q)
	if err != nil {
		return nil, err
	}
	sel, err := params.SelectionFromQuery(q)
	if err != nil {
		return nil, err
	}
	return h.svc.Recompute(p, sel)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, benefit.ErrInvalidParameter) {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	h.log.Errorf("Request failed: %v", err)
	h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

// writeJSON encodes before writing the header so encode failures become a 500
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"internal error"}` + "\n"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func writePNG(w http.ResponseWriter, b []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
