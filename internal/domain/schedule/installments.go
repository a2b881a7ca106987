package schedule

import "time"

// NormalizeDate trunca t a medianoche en su zona horaria. Todas las
// comparaciones de fechas del motor se hacen sobre fechas normalizadas.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Installments calcula las fechas de vencimiento de count cuotas a partir de
// base. La cuota i cae en el mismo día del mes que base, avanzada i meses; si
// el mes destino tiene menos días, se recorta al último día del mes (ej.:
// base 31-ene, cuota 1 → 28/29-feb). El desborde de meses se resuelve con la
// división entera del índice de mes base cero entre 12. Función pura.
func Installments(base time.Time, count int) []time.Time {
	if count <= 0 {
		return nil
	}
	base = NormalizeDate(base)
	day := base.Day()

	dates := make([]time.Time, 0, count)
	for i := 0; i < count; i++ {
		idx := int(base.Month()) - 1 + i
		year := base.Year() + idx/12
		month := time.Month(idx%12 + 1)

		d := day
		if last := lastDayOfMonth(year, month); d > last {
			d = last
		}
		dates = append(dates, time.Date(year, month, d, 0, 0, 0, 0, base.Location()))
	}
	return dates
}

// lastDayOfMonth aprovecha la normalización de time.Date: el día 0 del mes
// siguiente es el último día del mes pedido.
func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
