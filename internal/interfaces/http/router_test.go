package http_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fuel-dashboard-api/internal/application/auth"
	"github.com/jhoicas/fuel-dashboard-api/internal/application/reporting"
	"github.com/jhoicas/fuel-dashboard-api/internal/application/usecase"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/fuel-dashboard-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/fuel-dashboard-api/internal/interfaces/http"
	"github.com/jhoicas/fuel-dashboard-api/pkg/logger"
)

var fixedNow = time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)

const regularID = "5b0e8c2d-7a41-4f3e-b9d6-2c8a1e7f4d90"

type api struct {
	t     *testing.T
	app   *fiber.App
	store *memory.Store
}

func newAPI(t *testing.T) *api {
	t.Helper()
	store := memory.New()
	require.NoError(t, store.FuelTypes().Create(context.Background(), &entity.FuelType{
		ID: regularID, Name: "Regular", Unit: entity.UnitGallons, IsActive: true,
	}))

	scope := usecase.NewScopeResolver(store.Stations())
	reportRepo := store.Reporting()
	deps := apphttp.RouterDeps{
		AuthUC:     auth.NewAuthUseCase(store.Users(), store.Organizations(), store, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}),
		StationUC:  usecase.NewStationUseCase(store.Stations(), nil),
		FuelTypeUC: usecase.NewFuelTypeUseCase(store.FuelTypes(), nil),
		InvoiceUC:  usecase.NewInvoiceUseCase(store.Invoices(), store.FuelTypes(), scope, nil, nil),
		SaleUC: usecase.NewSaleUseCase(store.Sales(), store.FuelTypes(), scope,
			reporting.NewCostAttributor(reportRepo), nil),
		DashboardUC: reporting.NewDashboardUseCase(reportRepo, store.FuelTypes(), store.Organizations(),
			reporting.WithClock(func() time.Time { return fixedNow })),
		Scope:     scope,
		JWTSecret: testJWTSecret,
	}

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(logger.Nop())})
	apphttp.Router(app, deps)
	return &api{t: t, app: app, store: store}
}

func (a *api) do(method, path, token string, body any) *http.Response {
	a.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	return resp
}

func (a *api) decode(resp *http.Response, out any) {
	a.t.Helper()
	defer resp.Body.Close()
	require.NoError(a.t, json.NewDecoder(resp.Body).Decode(out))
}

// register crea una organización nueva y devuelve su token.
func (a *api) register(email string) string {
	a.t.Helper()
	resp := a.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": email, "password": "supersecret", "full_name": "Owner", "business_name": "Biz " + email,
	})
	require.Equal(a.t, http.StatusCreated, resp.StatusCode)
	var out map[string]any
	a.decode(resp, &out)
	return out["access_token"].(string)
}

func (a *api) createStation(token, name string) string {
	a.t.Helper()
	resp := a.do(http.MethodPost, "/api/stations", token, map[string]string{"name": name, "location": "1 Main St"})
	require.Equal(a.t, http.StatusCreated, resp.StatusCode)
	var out map[string]any
	a.decode(resp, &out)
	return out["id"].(string)
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out["code"]
}

func TestAPI_RegistroLoginYMe(t *testing.T) {
	a := newAPI(t)
	token := a.register("owner@example.com")

	resp := a.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "OWNER@example.com", "password": "supersecret", "full_name": "X", "business_name": "Y",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "EMAIL_EXISTS", errorCode(t, resp))

	resp = a.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "owner@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = a.do(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me map[string]any
	a.decode(resp, &me)
	assert.Equal(t, "Biz owner@example.com", me["organization_name"])
}

func TestAPI_SinTokenEs401(t *testing.T) {
	a := newAPI(t)
	resp := a.do(http.MethodGet, "/api/stations", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_AislamientoEntreOrganizaciones(t *testing.T) {
	a := newAPI(t)
	tokenA := a.register("a@example.com")
	tokenB := a.register("b@example.com")
	stationA := a.createStation(tokenA, "Alpha")

	resp := a.do(http.MethodGet, "/api/stations/"+stationA, tokenB, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, resp))

	resp = a.do(http.MethodPost, "/api/sales", tokenB, map[string]any{
		"sale_date": "2024-03-20", "station_id": stationA, "fuel_type_id": regularID,
		"quantity_sold": "10", "price_per_unit": "3.50",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_STATION", errorCode(t, resp))

	resp = a.do(http.MethodGet, "/api/dashboard?station_id="+stationA, tokenB, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var dash map[string]any
	a.decode(resp, &dash)
	assert.EqualValues(t, 0, dash["kpis"].(map[string]any)["station_count"])
}

func TestAPI_DashboardValidaDays(t *testing.T) {
	a := newAPI(t)
	token := a.register("owner@example.com")

	for _, q := range []string{
		"days=3", "days=366", "days=abc",
		"start_date=2024-03-10&end_date=2024-03-01",
		"days=3&start_date=2024-03-01&end_date=2024-03-10",
		"start_date=1000-01-01&end_date=9999-12-31",
	} {
		resp := a.do(http.MethodGet, "/api/dashboard?"+q, token, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
		assert.Equal(t, "INVALID_PERIOD", errorCode(t, resp), q)
	}

	resp := a.do(http.MethodGet, "/api/dashboard?start_date=2024-13-01&end_date=2024-03-01", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))
}

func TestAPI_IDsMalformados(t *testing.T) {
	a := newAPI(t)
	token := a.register("owner@example.com")
	station := a.createStation(token, "Alpha")

	for _, path := range []string{"/api/sales/123", "/api/invoices/123", "/api/stations/123"} {
		resp := a.do(http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		assert.Equal(t, "NOT_FOUND", errorCode(t, resp), path)
	}

	resp := a.do(http.MethodPost, "/api/sales", token, map[string]any{
		"sale_date": "2024-03-20", "station_id": "1", "fuel_type_id": regularID,
		"quantity_sold": "10", "price_per_unit": "3.50",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_STATION", errorCode(t, resp))

	resp = a.do(http.MethodPost, "/api/sales", token, map[string]any{
		"sale_date": "2024-03-20", "station_id": station, "fuel_type_id": "x",
		"quantity_sold": "10", "price_per_unit": "3.50",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_FUEL_TYPE", errorCode(t, resp))

	resp = a.do(http.MethodGet, "/api/invoices?station_id=abc", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]any
	a.decode(resp, &list)
	assert.Empty(t, list)

	resp = a.do(http.MethodGet, "/api/dashboard?station_id=abc", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var dash map[string]any
	a.decode(resp, &dash)
	assert.EqualValues(t, 0, dash["kpis"].(map[string]any)["station_count"])
}

func TestAPI_DashboardSinEstaciones(t *testing.T) {
	a := newAPI(t)
	token := a.register("owner@example.com")

	resp := a.do(http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Contains(t, string(body), `"sales_trend":[]`)
	assert.Contains(t, string(body), `"station_comparison":[]`)
	assert.Contains(t, string(body), `"fuel_breakdown":[]`)
	assert.Contains(t, string(body), `"station_count":0`)
}

func TestAPI_DashboardConVentas(t *testing.T) {
	a := newAPI(t)
	token := a.register("owner@example.com")
	station := a.createStation(token, "Alpha")

	resp := a.do(http.MethodPost, "/api/sales", token, map[string]any{
		"sale_date": "2024-03-20", "station_id": station, "fuel_type_id": regularID,
		"quantity_sold": "10", "price_per_unit": "3.50",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = a.do(http.MethodGet, "/api/dashboard?days=7", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var dash struct {
		KPIs struct {
			TotalSalesToday string `json:"total_sales_today"`
			StationCount    int    `json:"station_count"`
		} `json:"kpis"`
		Charts struct {
			SalesTrend []map[string]any `json:"sales_trend"`
		} `json:"charts"`
	}
	a.decode(resp, &dash)
	assert.Equal(t, "35", dash.KPIs.TotalSalesToday)
	assert.Equal(t, 1, dash.KPIs.StationCount)
	assert.Len(t, dash.Charts.SalesTrend, 8)
}

func TestAPI_VentasConCostoIndefinidoYCSV(t *testing.T) {
	a := newAPI(t)
	token := a.register("owner@example.com")
	station := a.createStation(token, "Alpha")

	resp := a.do(http.MethodPost, "/api/sales", token, map[string]any{
		"sale_date": "2024-03-20", "station_id": station, "fuel_type_id": regularID,
		"quantity_sold": "10", "price_per_unit": "3.50", "notes": "turno noche",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sale map[string]any
	a.decode(resp, &sale)
	assert.Nil(t, sale["cost_price"])
	assert.Nil(t, sale["total_profit"])
	assert.Equal(t, "35", sale["total_sales"])

	resp = a.do(http.MethodGet, "/api/sales/export/csv", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/csv"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "sales_export.csv")

	rows, err := csv.NewReader(resp.Body).ReadAll()
	resp.Body.Close()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, reporting.SalesCSVHeader, rows[0])
	assert.Equal(t, []string{"2024-03-20", "Alpha", "Regular", "10", "3.5", "35", "", "", "", "turno noche"}, rows[1])
}

func TestAPI_FacturaValidaciones(t *testing.T) {
	a := newAPI(t)
	token := a.register("owner@example.com")
	station := a.createStation(token, "Alpha")

	resp := a.do(http.MethodPost, "/api/invoices", token, map[string]any{
		"invoice_date": "2024-03-01", "supplier_name": "Shell", "station_id": station,
		"fuel_type_id": regularID, "quantity": "-5", "price_per_unit": "3.00",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))

	resp = a.do(http.MethodPost, "/api/invoices", token, map[string]any{
		"invoice_date": "2024-03-01", "supplier_name": "Shell", "station_id": station,
		"fuel_type_id": "nope", "quantity": "5", "price_per_unit": "3.00",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_FUEL_TYPE", errorCode(t, resp))

	resp = a.do(http.MethodPost, "/api/invoices", token, map[string]any{
		"invoice_date": "2024-03-01", "supplier_name": "Shell", "station_id": station,
		"fuel_type_id": regularID, "quantity": "1000", "price_per_unit": "3.10",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var inv map[string]any
	a.decode(resp, &inv)
	assert.Equal(t, "3100", inv["total_amount"])
}
