package reports

import (
	"context"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// A product needs at least this many daily aggregate rows before a model
// is fit for it.
const minDailyRows = 10

// InsufficientDataMessage is returned to clients when the ledger holds no
// item history at all.
const InsufficientDataMessage = "Not enough sales data to make a prediction."

// Forecaster predicts today's per-product demand from the full sale-item
// history. One ordinary least-squares model per product, day-of-week
// (Mon=0 .. Sun=6) as the sole numeric regressor.
//
// The regression target is the number of line-item rows per day, not the
// summed quantity. That matches the system this replaces; whether it should
// sum quantities instead is an open product question.
type Forecaster struct {
	Ledger SalesLedger
	Now    func() time.Time // defaults to time.Now; tests pin it
}

// ForecastToday returns product name -> predicted quantity for today's UTC
// weekday. Products with fewer than minDailyRows daily rows are left out of
// the map. A nil map means the ledger has no item history at all,
// distinguishing "no data" from "no product qualified".
func (f *Forecaster) ForecastToday(ctx context.Context) (map[string]int, error) {
	history, err := f.Ledger.ItemHistory(ctx)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, nil
	}

	// Aggregate to daily granularity: count line-item occurrences per
	// (calendar date, product).
	type dayKey struct {
		date    string
		product string
	}
	daily := map[dayKey]int{}
	for _, h := range history {
		t := h.SoldAt.UTC()
		daily[dayKey{date: t.Format(dateLayout), product: h.ProductName}]++
	}

	type dayPoint struct {
		weekday int
		count   int
	}
	byProduct := map[string][]dayPoint{}
	for k, n := range daily {
		// key dates came from Format above, so this cannot fail
		d, _ := time.ParseInLocation(dateLayout, k.date, time.UTC)
		byProduct[k.product] = append(byProduct[k.product], dayPoint{
			weekday: isoWeekday(d),
			count:   n,
		})
	}

	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	today := float64(isoWeekday(now().UTC()))

	predictions := make(map[string]int)
	for product, points := range byProduct {
		if len(points) < minDailyRows {
			continue
		}
		xs := make([]float64, len(points))
		ys := make([]float64, len(points))
		for i, p := range points {
			xs[i] = float64(p.weekday)
			ys[i] = float64(p.count)
		}
		predictions[product] = clampRound(predictAt(xs, ys, today))
	}
	return predictions, nil
}

// predictAt fits y = alpha + beta*x by least squares and evaluates it at x.
// With zero regressor variance (all history on one weekday) the slope is
// undefined; the minimum-norm solution is a flat line at the mean, so fall
// back to that.
func predictAt(xs, ys []float64, x float64) float64 {
	constant := true
	for _, v := range xs[1:] {
		if v != xs[0] {
			constant = false
			break
		}
	}
	if constant {
		return stat.Mean(ys, nil)
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	return alpha + beta*x
}

func clampRound(v float64) int {
	if v < 0 {
		return 0
	}
	return int(math.Round(v))
}

// isoWeekday maps time.Weekday (Sunday=0) to the ISO ordinal Monday=0.
func isoWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
