package core

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Input structs carry caller-supplied fields for create operations; patch
// structs carry optional fields for updates (nil = leave unchanged). Derived
// fields (TotalValue, cost snapshots, sale totals) never appear here; the
// store owns them.

type MaterialInput struct {
	Name              string          `json:"name"`
	Subtype           string          `json:"subtype"`
	Unit              string          `json:"unit"`
	Quantity          decimal.Decimal `json:"quantity"`
	PricePerUnit      decimal.Decimal `json:"price_per_unit"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
	Supplier          string          `json:"supplier"`
	PurchaseDate      string          `json:"purchase_date"`
}

type MaterialPatch struct {
	Name              *string          `json:"name"`
	Subtype           *string          `json:"subtype"`
	Unit              *string          `json:"unit"`
	Quantity          *decimal.Decimal `json:"quantity"`
	PricePerUnit      *decimal.Decimal `json:"price_per_unit"`
	LowStockThreshold *decimal.Decimal `json:"low_stock_threshold"`
	Supplier          *string          `json:"supplier"`
	PurchaseDate      *string          `json:"purchase_date"`
}

type WorkerInput struct {
	Name      string          `json:"name"`
	Phone     string          `json:"phone"`
	Role      string          `json:"role"`
	DailyWage decimal.Decimal `json:"daily_wage"`
	IsActive  bool            `json:"is_active"`
	JoinDate  string          `json:"join_date"`
	Address   string          `json:"address"`
}

type WorkerPatch struct {
	Name      *string          `json:"name"`
	Phone     *string          `json:"phone"`
	Role      *string          `json:"role"`
	DailyWage *decimal.Decimal `json:"daily_wage"`
	IsActive  *bool            `json:"is_active"`
	JoinDate  *string          `json:"join_date"`
	Address   *string          `json:"address"`
}

type FurnitureInput struct {
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	ExpectedPrice  decimal.Decimal `json:"expected_price"`
	Materials      []BOMLine       `json:"materials"`
	MainWorkerRate decimal.Decimal `json:"main_worker_rate"`
	CoWorkerRate   decimal.Decimal `json:"co_worker_rate"`
	Description    string          `json:"description"`
}

type FurniturePatch struct {
	Name           *string          `json:"name"`
	Category       *string          `json:"category"`
	ExpectedPrice  *decimal.Decimal `json:"expected_price"`
	Materials      *[]BOMLine       `json:"materials"`
	MainWorkerRate *decimal.Decimal `json:"main_worker_rate"`
	CoWorkerRate   *decimal.Decimal `json:"co_worker_rate"`
	Description    *string          `json:"description"`
}

type ProductionInput struct {
	FurnitureID    string             `json:"furniture_id"`
	Quantity       decimal.Decimal    `json:"quantity"`
	Workers        []ProductionWorker `json:"workers"`
	Status         ProductionStatus   `json:"status"`
	ProductionDate string             `json:"production_date"`
	Notes          string             `json:"notes"`
}

// ProductionPatch updates bookkeeping fields only. Quantity and workers are
// fixed at creation because the stock cascade and the cost snapshot already
// happened; changing them would silently desynchronize both.
type ProductionPatch struct {
	Status         *ProductionStatus `json:"status"`
	ProductionDate *string           `json:"production_date"`
	Notes          *string           `json:"notes"`
}

type SaleInput struct {
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone"`
	CustomerAddress string          `json:"customer_address"`
	Items           []SaleItem      `json:"items"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	PaymentStatus   PaymentStatus   `json:"payment_status"`
	SaleDate        string          `json:"sale_date"`
	Notes           string          `json:"notes"`
}

type SalePatch struct {
	CustomerName    *string          `json:"customer_name"`
	CustomerPhone   *string          `json:"customer_phone"`
	CustomerAddress *string          `json:"customer_address"`
	Items           *[]SaleItem      `json:"items"`
	PaidAmount      *decimal.Decimal `json:"paid_amount"`
	PaymentStatus   *PaymentStatus   `json:"payment_status"`
	SaleDate        *string          `json:"sale_date"`
	Notes           *string          `json:"notes"`
}

type LedgerInput struct {
	Type        LedgerType      `json:"type"`
	WorkerID    string          `json:"worker_id"`
	Amount      decimal.Decimal `json:"amount"`
	Status      LedgerStatus    `json:"status"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

// ── Validation ────────────────────────────────────────────────────────────────

func validateDate(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return fmt.Errorf("%s %q is not a YYYY-MM-DD date: %w", field, value, ErrValidation)
	}
	return nil
}

func requireName(field, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required: %w", field, ErrValidation)
	}
	return nil
}

func requireNonNegative(field string, value decimal.Decimal) error {
	if value.IsNegative() {
		return fmt.Errorf("%s cannot be negative, got %s: %w", field, value, ErrValidation)
	}
	return nil
}

func requirePositive(field string, value decimal.Decimal) error {
	if !value.IsPositive() {
		return fmt.Errorf("%s must be positive, got %s: %w", field, value, ErrValidation)
	}
	return nil
}

func (in MaterialInput) validate() error {
	if err := requireName("material name", in.Name); err != nil {
		return err
	}
	if err := requireNonNegative("quantity", in.Quantity); err != nil {
		return err
	}
	if err := requireNonNegative("price per unit", in.PricePerUnit); err != nil {
		return err
	}
	if err := requireNonNegative("low stock threshold", in.LowStockThreshold); err != nil {
		return err
	}
	return validateDate("purchase date", in.PurchaseDate)
}

func (p MaterialPatch) validate() error {
	if p.Name != nil {
		if err := requireName("material name", *p.Name); err != nil {
			return err
		}
	}
	if p.Quantity != nil {
		if err := requireNonNegative("quantity", *p.Quantity); err != nil {
			return err
		}
	}
	if p.PricePerUnit != nil {
		if err := requireNonNegative("price per unit", *p.PricePerUnit); err != nil {
			return err
		}
	}
	if p.LowStockThreshold != nil {
		if err := requireNonNegative("low stock threshold", *p.LowStockThreshold); err != nil {
			return err
		}
	}
	if p.PurchaseDate != nil {
		return validateDate("purchase date", *p.PurchaseDate)
	}
	return nil
}

func (in WorkerInput) validate() error {
	if err := requireName("worker name", in.Name); err != nil {
		return err
	}
	if err := requireNonNegative("daily wage", in.DailyWage); err != nil {
		return err
	}
	return validateDate("join date", in.JoinDate)
}

func (p WorkerPatch) validate() error {
	if p.Name != nil {
		if err := requireName("worker name", *p.Name); err != nil {
			return err
		}
	}
	if p.DailyWage != nil {
		if err := requireNonNegative("daily wage", *p.DailyWage); err != nil {
			return err
		}
	}
	if p.JoinDate != nil {
		return validateDate("join date", *p.JoinDate)
	}
	return nil
}

func validateBOM(bom []BOMLine) error {
	for _, line := range bom {
		if line.MaterialID == "" {
			return fmt.Errorf("bill-of-materials line is missing a material id: %w", ErrValidation)
		}
		if err := requirePositive("quantity per unit", line.QuantityPerUnit); err != nil {
			return err
		}
	}
	return nil
}

func (in FurnitureInput) validate() error {
	if err := requireName("furniture name", in.Name); err != nil {
		return err
	}
	if err := requireNonNegative("expected price", in.ExpectedPrice); err != nil {
		return err
	}
	if err := requireNonNegative("main worker rate", in.MainWorkerRate); err != nil {
		return err
	}
	if err := requireNonNegative("co-worker rate", in.CoWorkerRate); err != nil {
		return err
	}
	return validateBOM(in.Materials)
}

func (p FurniturePatch) validate() error {
	if p.Name != nil {
		if err := requireName("furniture name", *p.Name); err != nil {
			return err
		}
	}
	if p.ExpectedPrice != nil {
		if err := requireNonNegative("expected price", *p.ExpectedPrice); err != nil {
			return err
		}
	}
	if p.MainWorkerRate != nil {
		if err := requireNonNegative("main worker rate", *p.MainWorkerRate); err != nil {
			return err
		}
	}
	if p.CoWorkerRate != nil {
		if err := requireNonNegative("co-worker rate", *p.CoWorkerRate); err != nil {
			return err
		}
	}
	if p.Materials != nil {
		return validateBOM(*p.Materials)
	}
	return nil
}

func validProductionStatus(s ProductionStatus) bool {
	switch s {
	case ProductionPlanned, ProductionInProgress, ProductionCompleted, ProductionOnHold:
		return true
	}
	return false
}

func (in ProductionInput) validate() error {
	if in.FurnitureID == "" {
		return fmt.Errorf("production order requires a furniture id: %w", ErrValidation)
	}
	if err := requirePositive("production quantity", in.Quantity); err != nil {
		return err
	}
	if in.Status != "" && !validProductionStatus(in.Status) {
		return fmt.Errorf("unknown production status %q: %w", in.Status, ErrValidation)
	}
	for _, pw := range in.Workers {
		if pw.WorkerID == "" {
			return fmt.Errorf("assigned worker is missing an id: %w", ErrValidation)
		}
		if err := requireNonNegative("custom rate", pw.CustomRate); err != nil {
			return err
		}
	}
	return validateDate("production date", in.ProductionDate)
}

func (p ProductionPatch) validate() error {
	if p.Status != nil && !validProductionStatus(*p.Status) {
		return fmt.Errorf("unknown production status %q: %w", *p.Status, ErrValidation)
	}
	if p.ProductionDate != nil {
		return validateDate("production date", *p.ProductionDate)
	}
	return nil
}

func validPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentPartial, PaymentPaid:
		return true
	}
	return false
}

func validateSaleItems(items []SaleItem) error {
	if len(items) == 0 {
		return fmt.Errorf("sale requires at least one item: %w", ErrValidation)
	}
	for _, item := range items {
		if item.FurnitureID == "" {
			return fmt.Errorf("sale item is missing a furniture id: %w", ErrValidation)
		}
		if err := requirePositive("sale item quantity", item.Quantity); err != nil {
			return err
		}
		if err := requireNonNegative("selling price", item.SellingPrice); err != nil {
			return err
		}
	}
	return nil
}

func (in SaleInput) validate() error {
	if err := requireName("customer name", in.CustomerName); err != nil {
		return err
	}
	if err := validateSaleItems(in.Items); err != nil {
		return err
	}
	if err := requireNonNegative("paid amount", in.PaidAmount); err != nil {
		return err
	}
	if in.PaymentStatus != "" && !validPaymentStatus(in.PaymentStatus) {
		return fmt.Errorf("unknown payment status %q: %w", in.PaymentStatus, ErrValidation)
	}
	return validateDate("sale date", in.SaleDate)
}

func (p SalePatch) validate() error {
	if p.CustomerName != nil {
		if err := requireName("customer name", *p.CustomerName); err != nil {
			return err
		}
	}
	if p.Items != nil {
		if err := validateSaleItems(*p.Items); err != nil {
			return err
		}
	}
	if p.PaidAmount != nil {
		if err := requireNonNegative("paid amount", *p.PaidAmount); err != nil {
			return err
		}
	}
	if p.PaymentStatus != nil && !validPaymentStatus(*p.PaymentStatus) {
		return fmt.Errorf("unknown payment status %q: %w", *p.PaymentStatus, ErrValidation)
	}
	if p.SaleDate != nil {
		return validateDate("sale date", *p.SaleDate)
	}
	return nil
}

func (in LedgerInput) validate() error {
	switch in.Type {
	case LedgerWorker:
		if in.WorkerID == "" {
			return fmt.Errorf("worker ledger transaction requires a worker id: %w", ErrValidation)
		}
	case LedgerExpense:
	default:
		return fmt.Errorf("unknown ledger type %q: %w", in.Type, ErrValidation)
	}
	switch in.Status {
	case LedgerPaid, LedgerPending:
	default:
		return fmt.Errorf("unknown ledger status %q: %w", in.Status, ErrValidation)
	}
	if err := requirePositive("amount", in.Amount); err != nil {
		return err
	}
	return validateDate("date", in.Date)
}
