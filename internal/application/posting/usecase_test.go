package posting

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/retail-backoffice/internal/domain"
	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
)

const (
	testUserID     = "00000000-0000-0000-0000-000000000001"
	testEmployeeID = "00000000-0000-0000-0000-000000000002"
	testProductID  = "00000000-0000-0000-0000-000000000010"
)

// newTestEnv arma un entorno en memoria con operador, vendedor y un producto
// con control de inventario (costo promedio 4.00, sin movimientos). El reloj
// queda fijo en el 10-mar-2025.
func newTestEnv() (*memStore, *PurchaseUseCase, *SaleUseCase) {
	store := newMemStore()
	store.users[testUserID] = &entity.User{ID: testUserID, Name: "Operador", Active: true}
	store.employees[testEmployeeID] = &entity.Employee{ID: testEmployeeID, Name: "Vendedor", Active: true}
	store.products[testProductID] = &entity.Product{
		ID: testProductID, Name: "Camisa básica", AverageCost: dec("4.00"),
		TracksInventory: true, MinStock: 2, Active: true,
	}

	tx := memTxRunner{store}
	repos := store.repos()
	now := func() time.Time { return day(2025, time.March, 10) }
	return store,
		NewPurchaseUseCase(tx, repos.Purchases, repos.Payments, now),
		NewSaleUseCase(tx, repos.Sales, repos.Payments, now)
}

// seedStock deja saldo inicial vía un movimiento IN directo.
func seedStock(store *memStore, qty int, cost string) {
	store.movements = append(store.movements, &entity.StockMovement{
		ID: store.id(), ProductID: testProductID, Type: entity.MovementIn,
		Quantity: qty, UnitPrice: dec(cost), Date: day(2025, time.January, 1), UserID: testUserID,
	})
}

func singlePayment(amount string) []PaymentInput {
	return []PaymentInput{{
		Method:  entity.PaymentMethodInvoice,
		Amount:  dec(amount),
		DueDate: day(2025, time.April, 1),
	}}
}

func TestPurchaseCreate_RegistroCompleto(t *testing.T) {
	store, purchaseUC, _ := newTestEnv()
	seedStock(store, 10, "4.00")

	purchase, err := purchaseUC.Create(context.Background(), DocumentInput{
		Counterparty: "ACME Ltda",
		Date:         day(2025, time.March, 10),
		UserID:       testUserID,
		Items:        []ItemInput{{ProductID: testProductID, Quantity: 10, UnitPrice: dec("6.00")}},
		Payments:     singlePayment("60.00"),
	})
	require.NoError(t, err)
	require.NotNil(t, purchase)

	// Cabecera con total recalculado en el servidor.
	assert.True(t, dec("60.00").Equal(purchase.Total))
	require.Len(t, purchase.Items, 1)
	assert.True(t, dec("60.00").Equal(purchase.Items[0].Total))
	require.Len(t, purchase.Payments, 1)

	// Movimiento IN referenciando la compra.
	require.Len(t, store.movements, 2) // semilla + compra
	mov := store.movements[1]
	assert.Equal(t, entity.MovementIn, mov.Type)
	assert.Equal(t, 10, mov.Quantity)
	require.NotNil(t, mov.PurchaseID)
	assert.Equal(t, purchase.ID, *mov.PurchaseID)

	// Costo promedio: (10*4 + 10*6) / 20 = 5.00, con rastro en el historial.
	assert.True(t, dec("5.00").Equal(store.products[testProductID].AverageCost))
	require.Len(t, store.changes, 1)
	assert.Equal(t, entity.ChangeUpdated, store.changes[0].Kind)

	// Un asiento DEBIT por el pago único.
	require.Len(t, store.entries, 1)
	assert.Equal(t, entity.EntryDebit, store.entries[0].Type)
	require.NotNil(t, store.entries[0].PurchaseID)
}

func TestPurchaseCreate_BloqueaLaFilaDelProducto(t *testing.T) {
	store, purchaseUC, saleUC := newTestEnv()
	seedStock(store, 10, "4.00")

	_, err := purchaseUC.Create(context.Background(), DocumentInput{
		Counterparty: "ACME Ltda",
		Date:         day(2025, time.March, 10),
		UserID:       testUserID,
		Items:        []ItemInput{{ProductID: testProductID, Quantity: 5, UnitPrice: dec("6.00")}},
		Payments:     singlePayment("30.00"),
	})
	require.NoError(t, err)

	// La compra lee el producto con bloqueo de fila: el par (saldo, costo
	// promedio) no puede cambiar entre la lectura y la escritura.
	require.Equal(t, []string{testProductID}, store.lockedReads)

	_, err = saleUC.Create(context.Background(), DocumentInput{
		Counterparty: "Cliente",
		Date:         day(2025, time.March, 11),
		EmployeeID:   testEmployeeID,
		UserID:       testUserID,
		Items:        []ItemInput{{ProductID: testProductID, Quantity: 2, UnitPrice: dec("9.00")}},
		Payments: []PaymentInput{{
			Method: entity.PaymentMethodPix, Amount: dec("18.00"), DueDate: day(2025, time.April, 1),
		}},
	})
	require.NoError(t, err)

	// Las ventas no tocan el costo promedio y por tanto no bloquean.
	assert.Equal(t, []string{testProductID}, store.lockedReads)
}

func TestPurchaseCreate_PagosNoCuadran(t *testing.T) {
	store, purchaseUC, _ := newTestEnv()

	_, err := purchaseUC.Create(context.Background(), DocumentInput{
		Counterparty: "ACME Ltda",
		Date:         day(2025, time.March, 10),
		UserID:       testUserID,
		Items:        []ItemInput{{ProductID: testProductID, Quantity: 10, UnitPrice: dec("10.00")}},
		Payments:     singlePayment("99.00"), // total real: 100.00
	})
	require.ErrorIs(t, err, domain.ErrPaymentMismatch)

	// Nada se escribió.
	assert.Empty(t, store.purchases)
	assert.Empty(t, store.purchaseItems)
	assert.Empty(t, store.movements)
	assert.Empty(t, store.entries)
	assert.Empty(t, store.payments)
}

func TestPurchaseCreate_ToleranciaDeUnCentavo(t *testing.T) {
	_, purchaseUC, _ := newTestEnv()

	purchase, err := purchaseUC.Create(context.Background(), DocumentInput{
		Counterparty: "ACME Ltda",
		Date:         day(2025, time.March, 10),
		UserID:       testUserID,
		Items:        []ItemInput{{ProductID: testProductID, Quantity: 1, UnitPrice: dec("100.00")}},
		Payments:     singlePayment("99.99"), // diferencia de 0.01: aceptada
	})
	require.NoError(t, err)
	assert.True(t, dec("100.00").Equal(purchase.Total))
}

func TestPurchaseCreate_DescuentoRecortadoACero(t *testing.T) {
	_, purchaseUC, _ := newTestEnv()

	purchase, err := purchaseUC.Create(context.Background(), DocumentInput{
		Counterparty: "ACME Ltda",
		Date:         day(2025, time.March, 10),
		Discount:     dec("500.00"), // mayor que el total de líneas
		UserID:       testUserID,
		Items:        []ItemInput{{ProductID: testProductID, Quantity: 1, UnitPrice: dec("100.00")}},
		Payments: []PaymentInput{{
			Method:  entity.PaymentMethodCash,
			Amount:  dec("0.01"), // dentro de la holgura contra total 0
			DueDate: day(2025, time.April, 1),
		}},
	})
	require.NoError(t, err)
	assert.True(t, purchase.Total.IsZero(), "el total nunca es negativo")
}

func TestPurchaseCreate_ProductoSinControlDeInventario(t *testing.T) {
	store, purchaseUC, _ := newTestEnv()
	store.products[testProductID].TracksInventory = false

	_, err := purchaseUC.Create(context.Background(), DocumentInput{
		Counterparty: "ACME Ltda",
		Date:         day(2025, time.March, 10),
		UserID:       testUserID,
		Items:        []ItemInput{{ProductID: testProductID, Quantity: 5, UnitPrice: dec("6.00")}},
		Payments:     singlePayment("30.00"),
	})
	require.NoError(t, err)

	// El movimiento se registra pero el costo promedio no se toca.
	require.Len(t, store.movements, 1)
	assert.True(t, dec("4.00").Equal(store.products[testProductID].AverageCost))
	assert.Empty(t, store.changes)
}

func TestPurchaseCreate_UsuarioInexistente(t *testing.T) {
	_, purchaseUC, _ := newTestEnv()

	_, err := purchaseUC.Create(context.Background(), DocumentInput{
		Counterparty: "ACME Ltda",
		Date:         day(2025, time.March, 10),
		UserID:       "no-existe",
		Items:        []ItemInput{{ProductID: testProductID, Quantity: 1, UnitPrice: dec("10.00")}},
		Payments:     singlePayment("10.00"),
	})
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestPurchaseDelete_EliminaSoloLoDeLaCompra(t *testing.T) {
	store, purchaseUC, saleUC := newTestEnv()
	seedStock(store, 10, "4.00")

	purchase, err := purchaseUC.Create(context.Background(), DocumentInput{
		Counterparty: "ACME Ltda",
		Date:         day(2025, time.March, 10),
		UserID:       testUserID,
		Items:        []ItemInput{{ProductID: testProductID, Quantity: 10, UnitPrice: dec("6.00")}},
		Payments:     singlePayment("60.00"),
	})
	require.NoError(t, err)

	sale, err := saleUC.Create(context.Background(), DocumentInput{
		Counterparty: "Cliente X",
		Date:         day(2025, time.March, 10),
		EmployeeID:   testEmployeeID,
		UserID:       testUserID,
		Items:        []ItemInput{{ProductID: testProductID, Quantity: 2, UnitPrice: dec("15.00")}},
		Payments: []PaymentInput{{
			Method:  entity.PaymentMethodCash,
			Amount:  dec("30.00"),
			DueDate: day(2025, time.March, 10),
		}},
	})
	require.NoError(t, err)

	require.NoError(t, purchaseUC.Delete(context.Background(), purchase.ID))

	// Los movimientos y asientos de la venta sobreviven; los de la compra no.
	assert.Empty(t, store.purchases)
	for _, m := range store.movements {
		assert.True(t, m.PurchaseID == nil, "no deben quedar movimientos de la compra")
	}
	require.Len(t, store.entries, 1)
	require.NotNil(t, store.entries[0].SaleID)
	assert.Equal(t, sale.ID, *store.entries[0].SaleID)
}

func TestPurchaseDelete_NoExiste(t *testing.T) {
	_, purchaseUC, _ := newTestEnv()
	err := purchaseUC.Delete(context.Background(), "no-existe")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaleCreate_PermiteSobreventa(t *testing.T) {
	store, _, saleUC := newTestEnv()
	seedStock(store, 2, "4.00")

	sale, err := saleUC.Create(context.Background(), DocumentInput{
		Counterparty: "Cliente X",
		Date:         day(2025, time.March, 10),
		EmployeeID:   testEmployeeID,
		UserID:       testUserID,
		Items:        []ItemInput{{ProductID: testProductID, Quantity: 5, UnitPrice: dec("15.00")}},
		Payments: []PaymentInput{{
			Method:  entity.PaymentMethodCash,
			Amount:  dec("75.00"),
			DueDate: day(2025, time.March, 10),
		}},
	})
	require.NoError(t, err, "la sobreventa está permitida")
	require.NotNil(t, sale)

	balance, err := store.repos().Movements.Balance(testProductID)
	require.NoError(t, err)
	assert.Equal(t, -3, balance, "el saldo puede quedar negativo")

	// El costo promedio no se toca en ventas.
	assert.True(t, dec("4.00").Equal(store.products[testProductID].AverageCost))
	assert.Empty(t, store.changes)
}

func TestSaleCreate_VendedorInexistente(t *testing.T) {
	_, _, saleUC := newTestEnv()

	_, err := saleUC.Create(context.Background(), DocumentInput{
		Counterparty: "Cliente X",
		Date:         day(2025, time.March, 10),
		EmployeeID:   "no-existe",
		UserID:       testUserID,
		Items:        []ItemInput{{ProductID: testProductID, Quantity: 1, UnitPrice: dec("15.00")}},
		Payments: []PaymentInput{{
			Method:  entity.PaymentMethodCash,
			Amount:  dec("15.00"),
			DueDate: day(2025, time.March, 10),
		}},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaleUpdate_RevierteYReRegistra(t *testing.T) {
	store, _, saleUC := newTestEnv()
	seedStock(store, 10, "4.00")

	sale, err := saleUC.Create(context.Background(), DocumentInput{
		Counterparty: "Cliente X",
		Date:         day(2025, time.March, 10),
		EmployeeID:   testEmployeeID,
		UserID:       testUserID,
		Items:        []ItemInput{{ProductID: testProductID, Quantity: 5, UnitPrice: dec("15.00")}},
		Payments: []PaymentInput{{
			Method:  entity.PaymentMethodCash,
			Amount:  dec("75.00"),
			DueDate: day(2025, time.March, 10),
		}},
	})
	require.NoError(t, err)

	updated, err := saleUC.Update(context.Background(), sale.ID, DocumentInput{
		Counterparty: "Cliente X",
		Date:         day(2025, time.March, 10),
		EmployeeID:   testEmployeeID,
		UserID:       testUserID,
		Items:        []ItemInput{{ProductID: testProductID, Quantity: 3, UnitPrice: dec("15.00")}},
		Payments: []PaymentInput{{
			Method:  entity.PaymentMethodPix,
			Amount:  dec("45.00"),
			DueDate: day(2025, time.March, 10),
		}},
	})
	require.NoError(t, err)
	assert.True(t, dec("45.00").Equal(updated.Total))
	require.Len(t, updated.Items, 1)
	assert.Equal(t, 3, updated.Items[0].Quantity)

	// Saldo neto: 10 − 5 + 5 (reversión) − 3 = 7.
	balance, err := store.repos().Movements.Balance(testProductID)
	require.NoError(t, err)
	assert.Equal(t, 7, balance)

	// Pagos y asientos reemplazados por completo.
	require.Len(t, updated.Payments, 1)
	assert.Equal(t, entity.PaymentMethodPix, updated.Payments[0].Method)
	entries, err := store.repos().Ledger.ListBySale(sale.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, dec("45.00").Equal(entries[0].Amount))
}

func TestSaleUpdate_NoExiste(t *testing.T) {
	_, _, saleUC := newTestEnv()

	_, err := saleUC.Update(context.Background(), "no-existe", DocumentInput{
		Counterparty: "Cliente X",
		Date:         day(2025, time.March, 10),
		EmployeeID:   testEmployeeID,
		UserID:       testUserID,
		Items:        []ItemInput{{ProductID: testProductID, Quantity: 1, UnitPrice: dec("15.00")}},
		Payments: []PaymentInput{{
			Method:  entity.PaymentMethodCash,
			Amount:  dec("15.00"),
			DueDate: day(2025, time.March, 10),
		}},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaleDelete_EliminaMovimientosYAsientos(t *testing.T) {
	store, _, saleUC := newTestEnv()
	seedStock(store, 10, "4.00")

	sale, err := saleUC.Create(context.Background(), DocumentInput{
		Counterparty: "Cliente X",
		Date:         day(2025, time.March, 10),
		EmployeeID:   testEmployeeID,
		UserID:       testUserID,
		Items:        []ItemInput{{ProductID: testProductID, Quantity: 4, UnitPrice: dec("15.00")}},
		Payments: []PaymentInput{{
			Method:       entity.PaymentMethodCreditCard,
			Amount:       dec("60.00"),
			DueDate:      day(2025, time.April, 10),
			Installments: 3,
		}},
	})
	require.NoError(t, err)

	require.NoError(t, saleUC.Delete(context.Background(), sale.ID))

	assert.Empty(t, store.sales)
	assert.Empty(t, store.saleItems)
	assert.Empty(t, store.payments)
	assert.Empty(t, store.entries, "las 3 cuotas caen con la venta")
	require.Len(t, store.movements, 1, "solo queda la semilla")
	assert.Nil(t, store.movements[0].SaleID)
}

func TestSaleCreate_CuotasGeneranAsientos(t *testing.T) {
	store, _, saleUC := newTestEnv()

	sale, err := saleUC.Create(context.Background(), DocumentInput{
		Counterparty: "Cliente X",
		Date:         day(2025, time.March, 10),
		EmployeeID:   testEmployeeID,
		UserID:       testUserID,
		Items:        []ItemInput{{ProductID: testProductID, Quantity: 2, UnitPrice: dec("50.00")}},
		Payments: []PaymentInput{{
			Method:       entity.PaymentMethodCreditCard,
			Amount:       dec("100.00"),
			DueDate:      day(2025, time.March, 31),
			Installments: 3,
		}},
	})
	require.NoError(t, err)

	// Un pago lógico, tres asientos; la cuota de abril se recorta al 30.
	require.Len(t, sale.Payments, 1)
	entries, err := store.repos().Ledger.ListBySale(sale.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	sum := decimal.Zero
	var dues []time.Time
	for _, e := range entries {
		sum = sum.Add(e.Amount)
		dues = append(dues, *e.DueDate)
	}
	assert.True(t, dec("100.00").Equal(sum))
	assert.Contains(t, dues, day(2025, time.March, 31))
	assert.Contains(t, dues, day(2025, time.April, 30))
	assert.Contains(t, dues, day(2025, time.May, 31))
}

func TestValidateDocument_Errores(t *testing.T) {
	base := DocumentInput{
		Counterparty: "ACME",
		Date:         day(2025, time.March, 10),
		UserID:       testUserID,
		Items:        []ItemInput{{ProductID: testProductID, Quantity: 1, UnitPrice: dec("10.00")}},
		Payments:     singlePayment("10.00"),
	}

	sinItems := base
	sinItems.Items = nil
	assert.ErrorIs(t, validateDocument(sinItems), domain.ErrInvalidInput)

	sinPagos := base
	sinPagos.Payments = nil
	assert.ErrorIs(t, validateDocument(sinPagos), domain.ErrInvalidInput)

	cantidadCero := base
	cantidadCero.Items = []ItemInput{{ProductID: testProductID, Quantity: 0, UnitPrice: dec("10.00")}}
	assert.ErrorIs(t, validateDocument(cantidadCero), domain.ErrInvalidInput)

	metodoInvalido := base
	metodoInvalido.Payments = []PaymentInput{{Method: "VALE", Amount: dec("10.00"), DueDate: day(2025, time.April, 1)}}
	assert.ErrorIs(t, validateDocument(metodoInvalido), domain.ErrInvalidInput)

	descuentoNegativo := base
	descuentoNegativo.Discount = dec("-1.00")
	assert.ErrorIs(t, validateDocument(descuentoNegativo), domain.ErrInvalidInput)

	cuotasNegativas := base
	cuotasNegativas.Payments = []PaymentInput{{Method: entity.PaymentMethodCash, Amount: dec("10.00"), DueDate: day(2025, time.April, 1), Installments: -1}}
	assert.ErrorIs(t, validateDocument(cuotasNegativas), domain.ErrInvalidInput)
}
