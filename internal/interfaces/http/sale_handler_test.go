package http_test

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/retail-backoffice/internal/application/posting"
	apphttp "github.com/tu-usuario/retail-backoffice/internal/interfaces/http"
)

// stubTxRunner falla si un handler llega a abrir transacción: los tests de
// parseo no deben pasar del borde HTTP.
type stubTxRunner struct{}

func (stubTxRunner) RunPosting(context.Context, func(posting.Repos) error) error {
	return errors.New("no debería abrirse transacción")
}

func buildSaleApp() *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		SaleUC: posting.NewSaleUseCase(stubTxRunner{}, nil, nil, nil),
	})
	return app
}

func TestCreateSaleEndpoint_FechaInvalida(t *testing.T) {
	body := `{
		"customer_name": "María Silva",
		"employee_id": "3b8e0d4c-9a1f-4e6b-8c2d-5f7a9e1b3c4d",
		"user_id": "9f4e1c2a-7b3d-4c5e-8a6f-1d2e3c4b5a69",
		"date": "31/12/2025",
		"items": [{"product_id": "c1a2b3d4-e5f6-4a7b-9c8d-0e1f2a3b4c5d", "quantity": 1, "unit_price": "10.00"}],
		"payments": [{"method": "PIX", "amount": "10.00", "due_date": "2025-12-31"}]
	}`
	req := httptest.NewRequest("POST", "/api/sales", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := buildSaleApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// El error de parseo de fecha llega al cliente; el caso de uso nunca corre
	// (el stub de transacción devolvería un 500).
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), "fecha inválida")
}

func TestCreateSaleEndpoint_CuerpoInvalido(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/sales", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := buildSaleApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), "cuerpo inválido")
}
