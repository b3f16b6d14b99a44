package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dan9191/solar-simulator/internal/config"
	"github.com/Dan9191/solar-simulator/internal/models"
	"github.com/Dan9191/solar-simulator/internal/service"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopMetrics struct{}

func (nopMetrics) RecordRecompute(string, float64) {}
func (nopMetrics) RecordError(string)              {}
func (nopMetrics) RecordDieselPrice(float64)       {}

type fakeSender struct {
	to       string
	workbook []byte
	err      error
}

func (f *fakeSender) SendBenefitReport(to string, d *models.Dashboard, workbook []byte) error {
	f.to, f.workbook = to, workbook
	return f.err
}

var testCfg = &config.Config{JWTSecret: "test-secret", Locality: "Leticia, Colombia", Currency: "COP"}

func newTestRouter(t *testing.T, sender *fakeSender) http.Handler {
	t.Helper()
	day0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var records []models.DemandRecord
	for i := 0; i < 20; i++ {
		kind := models.KindHistorical
		if i >= 10 {
			kind = models.KindPredicted
		}
		records = append(records, models.DemandRecord{Date: day0.AddDate(0, 0, i), Value: 800 + float64(i), Kind: kind})
	}

	log := logrus.New()
	svc := service.NewService(records, nil, nopMetrics{}, log, testCfg)
	return NewRouter(NewHandler(svc, sender, log), testCfg, nil)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestDashboard(t *testing.T) {
	h := newTestRouter(t, &fakeSender{})

	w := get(t, h, "/dashboard?horizon=30&irradiance=4.5&pr=0.8&small=false")
	require.Equal(t, http.StatusOK, w.Code)

	var d models.Dashboard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	assert.Equal(t, 30, d.Parameters.HorizonDays)
	assert.Len(t, d.Window, 10)
	require.Len(t, d.Results, 2)
	assert.Equal(t, "Mediana (1 MW)", d.Results[0].Scenario)
	assert.InDelta(t, 108000.0, d.Results[0].EnergyKWh, 0.01)
}

func TestDashboardInvalidParameters(t *testing.T) {
	h := newTestRouter(t, &fakeSender{})

	for _, target := range []string{
		"/dashboard?kwh_per_liter=0",
		"/dashboard?irradiance=9",
		"/dashboard?horizon=10",
		"/dashboard?pr=abc",
		"/dashboard?large=perhaps",
	} {
		w := get(t, h, target)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestDemand(t *testing.T) {
	h := newTestRouter(t, &fakeSender{})

	w := get(t, h, "/demand?kind=predicha&horizon=7")
	require.Equal(t, http.StatusOK, w.Code)
	var records []models.DemandRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	assert.Len(t, records, 7)

	w = get(t, h, "/demand?kind=HIST%C3%93RICA&horizon=30")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	assert.Len(t, records, 10)

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/demand?kind=otra").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/demand?horizon=-7").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/demand?horizon=10").Code)
}

func TestDashboardUnencodableDemand(t *testing.T) {
	records := []models.DemandRecord{
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Value: math.Inf(1), Kind: models.KindPredicted},
	}
	log := logrus.New()
	svc := service.NewService(records, nil, nopMetrics{}, log, testCfg)
	h := NewRouter(NewHandler(svc, &fakeSender{}, log), testCfg, nil)

	w := get(t, h, "/dashboard")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, w.Body.String())
}

func TestScenariosAndDieselPrice(t *testing.T) {
	h := newTestRouter(t, &fakeSender{})

	w := get(t, h, "/scenarios")
	require.Equal(t, http.StatusOK, w.Code)
	var catalog []models.CapacityScenario
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &catalog))
	assert.Len(t, catalog, 3)

	w = get(t, h, "/diesel-price")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"from_feed":false`)
}

func TestChartsAndExport(t *testing.T) {
	h := newTestRouter(t, &fakeSender{})

	w := get(t, h, "/charts/demand.png")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	w = get(t, h, "/charts/benefits.png?horizon=15")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	w = get(t, h, "/export.xlsx")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))
}

func TestEmailReport(t *testing.T) {
	sender := &fakeSender{}
	h := newTestRouter(t, sender)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "analyst",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(testCfg.JWTSecret))
	require.NoError(t, err)

	post := func(body string, auth bool) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/reports/email?horizon=30", strings.NewReader(body))
		if auth {
			r.Header.Set("Authorization", "Bearer "+signed)
		}
		h.ServeHTTP(w, r)
		return w
	}

	assert.Equal(t, http.StatusUnauthorized, post(`{"to":"ops@example.com"}`, false).Code)
	assert.Equal(t, http.StatusBadRequest, post(`{"to":"not-an-address"}`, true).Code)
	assert.Equal(t, http.StatusBadRequest, post(`{`, true).Code)

	w := post(`{"to":"ops@example.com"}`, true)
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "ops@example.com", sender.to)
	assert.NotEmpty(t, sender.workbook)

	sender.err = errors.New("smtp down")
	assert.Equal(t, http.StatusInternalServerError, post(`{"to":"ops@example.com"}`, true).Code)
}
