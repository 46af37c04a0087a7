package core

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// ProductionStatus tracks a production order through the workshop floor.
type ProductionStatus string

const (
	ProductionPlanned    ProductionStatus = "planned"
	ProductionInProgress ProductionStatus = "in-progress"
	ProductionCompleted  ProductionStatus = "completed"
	ProductionOnHold     ProductionStatus = "on-hold"
)

type LedgerType string

const (
	LedgerWorker  LedgerType = "worker"
	LedgerExpense LedgerType = "expense"
)

type LedgerStatus string

const (
	LedgerPaid    LedgerStatus = "paid"
	LedgerPending LedgerStatus = "pending"
)

// Material is a raw-material stock record. TotalValue is derived
// (Quantity × PricePerUnit) and is recomputed on every write; callers
// never set it directly.
type Material struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Subtype           string          `json:"subtype"`
	Unit              string          `json:"unit"`
	Quantity          decimal.Decimal `json:"quantity"`
	PricePerUnit      decimal.Decimal `json:"price_per_unit"`
	TotalValue        decimal.Decimal `json:"total_value"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
	Supplier          string          `json:"supplier"`
	PurchaseDate      string          `json:"purchase_date"` // YYYY-MM-DD
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// Worker is a roster record. UdharBalance is the running advance/debt
// balance, clamped at zero; TotalEarnings only grows through paid ledger
// transactions (a pending→paid reversal removes exactly what it added).
type Worker struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	Role          string          `json:"role"`
	DailyWage     decimal.Decimal `json:"daily_wage"`
	IsActive      bool            `json:"is_active"`
	TotalEarnings decimal.Decimal `json:"total_earnings"`
	UdharBalance  decimal.Decimal `json:"udhar_balance"`
	JoinDate      string          `json:"join_date"` // YYYY-MM-DD
	Address       string          `json:"address"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BOMLine is one bill-of-materials entry: how much of a material one unit
// of a furniture item consumes.
type BOMLine struct {
	MaterialID      string          `json:"material_id"`
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit"`
}

// FurnitureItem is a catalog entry with a costed bill-of-materials.
// MaterialCost and LaborCost are snapshots taken when the item is saved:
// a later change to a material's price does not retroactively change them.
type FurnitureItem struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	ExpectedPrice  decimal.Decimal `json:"expected_price"`
	Materials      []BOMLine       `json:"materials"`
	MaterialCost   decimal.Decimal `json:"material_cost"`
	LaborCost      decimal.Decimal `json:"labor_cost"`
	MainWorkerRate decimal.Decimal `json:"main_worker_rate"`
	CoWorkerRate   decimal.Decimal `json:"co_worker_rate"`
	Description    string          `json:"description"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ExpectedProfit is derived on demand and never stored.
func (f FurnitureItem) ExpectedProfit() decimal.Decimal {
	return f.ExpectedPrice.Sub(f.MaterialCost).Sub(f.LaborCost)
}

// ProductionWorker assigns a worker to a production order. A positive
// CustomRate overrides the worker's daily wage for this order.
type ProductionWorker struct {
	WorkerID   string          `json:"worker_id"`
	Role       string          `json:"role"`
	CustomRate decimal.Decimal `json:"custom_rate"`
}

// ProductionOrder records a production run. Costs are fixed at creation:
// MaterialCost = furniture.MaterialCost × Quantity, LaborCost sums the
// per-worker rate × Quantity, TotalCost = MaterialCost + LaborCost.
type ProductionOrder struct {
	ID             string             `json:"id"`
	FurnitureID    string             `json:"furniture_id"`
	Quantity       decimal.Decimal    `json:"quantity"`
	Workers        []ProductionWorker `json:"workers"`
	Status         ProductionStatus   `json:"status"`
	MaterialCost   decimal.Decimal    `json:"material_cost"`
	LaborCost      decimal.Decimal    `json:"labor_cost"`
	TotalCost      decimal.Decimal    `json:"total_cost"`
	ProductionDate string             `json:"production_date"` // YYYY-MM-DD
	Notes          string             `json:"notes"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// SaleItem is one line of a sale.
type SaleItem struct {
	FurnitureID  string          `json:"furniture_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	SellingPrice decimal.Decimal `json:"selling_price"`
}

// Sale records a customer sale. TotalAmount, TotalCost and Profit are
// derived from the items and the furniture cost snapshots at save time.
type Sale struct {
	ID              string          `json:"id"`
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone"`
	CustomerAddress string          `json:"customer_address"`
	Items           []SaleItem      `json:"items"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	Profit          decimal.Decimal `json:"profit"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	PaymentStatus   PaymentStatus   `json:"payment_status"`
	SaleDate        string          `json:"sale_date"` // YYYY-MM-DD
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// LedgerTransaction is a payment/udhar ledger entry. Worker-typed entries
// cascade into the referenced worker's balance (see Store.AddLedgerTransaction).
// BalanceDeducted records how much of a paid entry actually came out of the
// udhar balance (the deduction clamps at zero), so a status edit can reverse
// exactly what was applied.
type LedgerTransaction struct {
	ID              string          `json:"id"`
	Type            LedgerType      `json:"type"`
	WorkerID        string          `json:"worker_id,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Status          LedgerStatus    `json:"status"`
	BalanceDeducted decimal.Decimal `json:"balance_deducted"`
	Description     string          `json:"description"`
	Date            string          `json:"date"` // YYYY-MM-DD
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Dashboard is the aggregate snapshot recomputed after every mutation.
type Dashboard struct {
	TotalSales             decimal.Decimal `json:"total_sales"`
	TotalProfit            decimal.Decimal `json:"total_profit"`
	TotalMaterialValue     decimal.Decimal `json:"total_material_value"`
	LowStockCount          int             `json:"low_stock_count"`
	ActiveWorkerCount      int             `json:"active_worker_count"`
	PendingPaymentCount    int             `json:"pending_payment_count"`
	ThisMonthProductionQty decimal.Decimal `json:"this_month_production_qty"`
}

// StockShortage reports one bill-of-materials line whose deduction was
// skipped during a production cascade because stock was insufficient.
type StockShortage struct {
	MaterialID   string          `json:"material_id"`
	MaterialName string          `json:"material_name"`
	Required     decimal.Decimal `json:"required"`
	Available    decimal.Decimal `json:"available"`
}

// Snapshot is the whole-store export format: all six collections plus the
// export timestamp. Import replaces any non-nil collection wholesale.
type Snapshot struct {
	Materials         []Material          `json:"materials"`
	Workers           []Worker            `json:"workers"`
	Furniture         []FurnitureItem     `json:"furniture"`
	Productions       []ProductionOrder   `json:"productions"`
	Sales             []Sale              `json:"sales"`
	UdharTransactions []LedgerTransaction `json:"udhar_transactions"`
	ExportedAt        time.Time           `json:"exported_at"`
}
