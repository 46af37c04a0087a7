package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"workshop-manager/internal/core"
)

// DashboardCollector exposes the store's aggregate metrics as prometheus
// gauges, reading a fresh dashboard at scrape time so the month-scoped
// production counter stays correct across month boundaries.
type DashboardCollector struct {
	store *core.Store

	totalSales         *prometheus.Desc
	totalProfit        *prometheus.Desc
	totalMaterialValue *prometheus.Desc
	lowStock           *prometheus.Desc
	activeWorkers      *prometheus.Desc
	pendingPayments    *prometheus.Desc
	monthProduction    *prometheus.Desc
}

func NewDashboardCollector(store *core.Store) *DashboardCollector {
	return &DashboardCollector{
		store: store,
		totalSales: prometheus.NewDesc(
			"workshop_sales_total_amount",
			"Sum of all sale amounts.", nil, nil),
		totalProfit: prometheus.NewDesc(
			"workshop_sales_total_profit",
			"Sum of all sale profits.", nil, nil),
		totalMaterialValue: prometheus.NewDesc(
			"workshop_materials_total_value",
			"Current stock value across all materials.", nil, nil),
		lowStock: prometheus.NewDesc(
			"workshop_materials_low_stock",
			"Number of materials at or below their low-stock threshold.", nil, nil),
		activeWorkers: prometheus.NewDesc(
			"workshop_workers_active",
			"Number of active workers.", nil, nil),
		pendingPayments: prometheus.NewDesc(
			"workshop_sales_pending_payments",
			"Number of sales not fully paid.", nil, nil),
		monthProduction: prometheus.NewDesc(
			"workshop_production_current_month_quantity",
			"Units ordered for production in the current calendar month.", nil, nil),
	}
}

func (c *DashboardCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalSales
	ch <- c.totalProfit
	ch <- c.totalMaterialValue
	ch <- c.lowStock
	ch <- c.activeWorkers
	ch <- c.pendingPayments
	ch <- c.monthProduction
}

func (c *DashboardCollector) Collect(ch chan<- prometheus.Metric) {
	d := c.store.RecomputeDashboard()
	gauge := func(desc *prometheus.Desc, v float64) {
		ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, v)
	}
	gauge(c.totalSales, d.TotalSales.InexactFloat64())
	gauge(c.totalProfit, d.TotalProfit.InexactFloat64())
	gauge(c.totalMaterialValue, d.TotalMaterialValue.InexactFloat64())
	gauge(c.lowStock, float64(d.LowStockCount))
	gauge(c.activeWorkers, float64(d.ActiveWorkerCount))
	gauge(c.pendingPayments, float64(d.PendingPaymentCount))
	gauge(c.monthProduction, d.ThisMonthProductionQty.InexactFloat64())
}

// NewRegistry builds a registry with the dashboard collector plus the
// standard process and Go runtime collectors.
func NewRegistry(store *core.Store) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		NewDashboardCollector(store),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}
