package inventory

import "github.com/shopspring/decimal"

// AverageCost implementa el costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((SaldoActual * CostoActual) + (CantEntrada * CostoEntrada)) / (SaldoActual + CantEntrada)
// Se calcula con el saldo ANTERIOR al movimiento de la línea y se redondea a
// 2 decimales. Caso degenerado (saldo resultante <= 0, posible por
// sobreventa): el costo entrante pasa a ser el nuevo promedio, porque no
// queda masa de costo previa con significado.
func AverageCost(balance int, current decimal.Decimal, qty int, unitCost decimal.Decimal) decimal.Decimal {
	q0 := decimal.NewFromInt(int64(balance))
	qn := decimal.NewFromInt(int64(qty))

	sum := q0.Add(qn)
	if sum.LessThanOrEqual(decimal.Zero) {
		return unitCost.Round(2)
	}
	num := q0.Mul(current).Add(qn.Mul(unitCost))
	return num.Div(sum).Round(2)
}
