package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// This file holds the derivation engine: pure functions that keep computed
// fields consistent with their inputs, and the full-collection dashboard
// recompute. All of them are unconditional full recomputes: at the data
// volumes of a single workshop (hundreds to low thousands of records) the
// O(n) cost per mutation is not worth incremental bookkeeping.

// materialTotalValue derives Material.TotalValue.
func materialTotalValue(quantity, pricePerUnit decimal.Decimal) decimal.Decimal {
	return quantity.Mul(pricePerUnit)
}

// furnitureCosts snapshots the material and labor cost of one furniture unit
// from the current material prices. BOM lines referencing a missing material
// contribute zero, mirroring the permissive delete semantics (no cascading
// delete, dangling references possible).
func furnitureCosts(materials map[string]Material, bom []BOMLine, mainRate, coRate decimal.Decimal) (materialCost, laborCost decimal.Decimal) {
	for _, line := range bom {
		m, ok := materials[line.MaterialID]
		if !ok {
			continue
		}
		materialCost = materialCost.Add(m.PricePerUnit.Mul(line.QuantityPerUnit))
	}
	laborCost = mainRate.Add(coRate)
	return materialCost, laborCost
}

// productionCosts fixes a production order's cost breakdown at creation time.
// The per-worker rate is the custom rate when positive, otherwise the
// worker's daily wage; workers missing from the roster contribute zero.
func productionCosts(item FurnitureItem, quantity decimal.Decimal, assigned []ProductionWorker, roster map[string]Worker) (materialCost, laborCost decimal.Decimal) {
	materialCost = item.MaterialCost.Mul(quantity)
	for _, pw := range assigned {
		rate := pw.CustomRate
		if !rate.IsPositive() {
			if w, ok := roster[pw.WorkerID]; ok {
				rate = w.DailyWage
			} else {
				continue
			}
		}
		laborCost = laborCost.Add(rate.Mul(quantity))
	}
	return materialCost, laborCost
}

// saleTotals derives a sale's amount, cost and profit from its items.
// Item cost uses the furniture's cost snapshot (material + labor); items
// referencing a missing furniture record contribute zero cost.
func saleTotals(items []SaleItem, catalog map[string]FurnitureItem) (totalAmount, totalCost, profit decimal.Decimal) {
	for _, item := range items {
		totalAmount = totalAmount.Add(item.SellingPrice.Mul(item.Quantity))
		if f, ok := catalog[item.FurnitureID]; ok {
			totalCost = totalCost.Add(f.MaterialCost.Add(f.LaborCost).Mul(item.Quantity))
		}
	}
	return totalAmount, totalCost, totalAmount.Sub(totalCost)
}

// computeDashboard recomputes the aggregate snapshot over the full
// collections. It is pure apart from the wall-clock month used for the
// production count, so repeated calls without intervening mutations yield
// identical results within a calendar month.
func (s *Store) computeDashboard(now time.Time) Dashboard {
	var d Dashboard
	for _, sale := range s.sales {
		d.TotalSales = d.TotalSales.Add(sale.TotalAmount)
		d.TotalProfit = d.TotalProfit.Add(sale.Profit)
		if sale.PaymentStatus != PaymentPaid {
			d.PendingPaymentCount++
		}
	}
	for _, m := range s.materials {
		d.TotalMaterialValue = d.TotalMaterialValue.Add(m.TotalValue)
		if m.Quantity.LessThanOrEqual(m.LowStockThreshold) {
			d.LowStockCount++
		}
	}
	for _, w := range s.workers {
		if w.IsActive {
			d.ActiveWorkerCount++
		}
	}
	year, month := now.Year(), now.Month()
	for _, p := range s.productions {
		date, err := time.Parse("2006-01-02", p.ProductionDate)
		if err != nil {
			continue
		}
		if date.Year() == year && date.Month() == month {
			d.ThisMonthProductionQty = d.ThisMonthProductionQty.Add(p.Quantity)
		}
	}
	return d
}
