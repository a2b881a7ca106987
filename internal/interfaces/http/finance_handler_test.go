package http_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/retail-backoffice/internal/application/finance"
	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
	"github.com/tu-usuario/retail-backoffice/internal/domain/repository"
	apphttp "github.com/tu-usuario/retail-backoffice/internal/interfaces/http"
)

// stubLedgerRepo libro financiero fijo para probar el endpoint de resumen.
type stubLedgerRepo struct {
	entries []*entity.LedgerEntry
}

func (r *stubLedgerRepo) Create(*entity.LedgerEntry) error                  { return nil }
func (r *stubLedgerRepo) GetByID(string) (*entity.LedgerEntry, error)       { return nil, nil }
func (r *stubLedgerRepo) Update(*entity.LedgerEntry) error                  { return nil }
func (r *stubLedgerRepo) Delete(string) error                               { return nil }
func (r *stubLedgerRepo) ListByPurchase(string) ([]*entity.LedgerEntry, error) { return nil, nil }
func (r *stubLedgerRepo) ListBySale(string) ([]*entity.LedgerEntry, error)  { return nil, nil }
func (r *stubLedgerRepo) DeleteByPurchase(string) error                     { return nil }
func (r *stubLedgerRepo) DeleteBySale(string) error                         { return nil }

func (r *stubLedgerRepo) List(repository.LedgerFilter) ([]*entity.LedgerEntry, int, error) {
	return r.entries, len(r.entries), nil
}

func (r *stubLedgerRepo) ListByDueDateRange(from, to *time.Time) ([]*entity.LedgerEntry, error) {
	return r.entries, nil
}

func (r *stubLedgerRepo) ListUnpaidDueBetween(from, to time.Time) ([]*entity.LedgerEntry, error) {
	return r.entries, nil
}

type stubEmployeeRepo struct{}

func (stubEmployeeRepo) GetByID(string) (*entity.Employee, error) { return nil, nil }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func buildFinanceApp(repo *stubLedgerRepo) *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		LedgerUC:  finance.NewLedgerUseCase(repo, stubEmployeeRepo{}, nil),
		SummaryUC: finance.NewSummaryUseCase(repo),
	})
	return app
}

func TestSummaryEndpoint(t *testing.T) {
	due := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.Local)
	paid := due
	repo := &stubLedgerRepo{entries: []*entity.LedgerEntry{
		{ID: "c1", Type: entity.EntryCredit, Amount: dec("100.00"), DueDate: &due, PaidDate: &paid},
		{ID: "d1", Type: entity.EntryDebit, Amount: dec("40.00"), DueDate: &due},
	}}
	app := buildFinanceApp(repo)

	req := httptest.NewRequest("GET", "/api/finance/summary?from=2025-03-01&to=2025-03-31", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "100", out["total_credits"])
	assert.Equal(t, "40", out["total_debits"])
	assert.Equal(t, "60", out["net"])
	assert.Equal(t, "40", out["debits_payable"])
	assert.Equal(t, float64(2), out["entry_count"])
}

func TestSummaryEndpoint_FechaInvalida(t *testing.T) {
	app := buildFinanceApp(&stubLedgerRepo{})

	req := httptest.NewRequest("GET", "/api/finance/summary?from=15-03-2025", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateEntryEndpoint_CuerpoInvalido(t *testing.T) {
	app := buildFinanceApp(&stubLedgerRepo{})

	req := httptest.NewRequest("POST", "/api/finance/entries", nil)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateEntryEndpoint_FechaInvalida(t *testing.T) {
	app := buildFinanceApp(&stubLedgerRepo{})

	body := `{
		"type": "DEBIT",
		"amount": "1500.00",
		"due_date": "05/04/2025",
		"user_id": "9f4e1c2a-7b3d-4c5e-8a6f-1d2e3c4b5a69",
		"note": "Nómina abril"
	}`
	req := httptest.NewRequest("POST", "/api/finance/entries", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// El error de parseo de fecha llega al cliente, no el de una validación
	// posterior sobre una entrada vacía.
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), "fecha inválida")
}
