package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"workshop-manager/internal/ai"
	"workshop-manager/internal/core"
)

type appService struct {
	store *core.Store
	agent ai.AgentService
}

// NewAppService constructs an appService that satisfies ApplicationService.
// agent may be nil, which disables the proposal endpoints.
func NewAppService(store *core.Store, agent ai.AgentService) ApplicationService {
	return &appService{store: store, agent: agent}
}

// ── Materials ─────────────────────────────────────────────────────────────────

func (s *appService) ListMaterials(ctx context.Context) ([]core.Material, error) {
	return s.store.Materials(), nil
}

func (s *appService) GetMaterial(ctx context.Context, id string) (core.Material, error) {
	return s.store.Material(id)
}

func (s *appService) CreateMaterial(ctx context.Context, in core.MaterialInput) (core.Material, error) {
	return s.store.AddMaterial(ctx, in)
}

func (s *appService) UpdateMaterial(ctx context.Context, id string, patch core.MaterialPatch) (core.Material, error) {
	return s.store.UpdateMaterial(ctx, id, patch)
}

func (s *appService) DeleteMaterial(ctx context.Context, id string) error {
	return s.store.DeleteMaterial(ctx, id)
}

// ── Workers ───────────────────────────────────────────────────────────────────

func (s *appService) ListWorkers(ctx context.Context) ([]core.Worker, error) {
	return s.store.Workers(), nil
}

func (s *appService) GetWorker(ctx context.Context, id string) (core.Worker, error) {
	return s.store.Worker(id)
}

func (s *appService) CreateWorker(ctx context.Context, in core.WorkerInput) (core.Worker, error) {
	return s.store.AddWorker(ctx, in)
}

func (s *appService) UpdateWorker(ctx context.Context, id string, patch core.WorkerPatch) (core.Worker, error) {
	return s.store.UpdateWorker(ctx, id, patch)
}

func (s *appService) DeleteWorker(ctx context.Context, id string) error {
	return s.store.DeleteWorker(ctx, id)
}

// ── Furniture ─────────────────────────────────────────────────────────────────

func (s *appService) ListFurniture(ctx context.Context) ([]core.FurnitureItem, error) {
	return s.store.FurnitureItems(), nil
}

func (s *appService) GetFurniture(ctx context.Context, id string) (core.FurnitureItem, error) {
	return s.store.Furniture(id)
}

func (s *appService) CreateFurniture(ctx context.Context, in core.FurnitureInput) (core.FurnitureItem, error) {
	return s.store.AddFurniture(ctx, in)
}

func (s *appService) UpdateFurniture(ctx context.Context, id string, patch core.FurniturePatch) (core.FurnitureItem, error) {
	return s.store.UpdateFurniture(ctx, id, patch)
}

func (s *appService) DeleteFurniture(ctx context.Context, id string) error {
	return s.store.DeleteFurniture(ctx, id)
}

// ── Production ────────────────────────────────────────────────────────────────

func (s *appService) ListProductions(ctx context.Context) ([]core.ProductionOrder, error) {
	return s.store.Productions(), nil
}

func (s *appService) GetProduction(ctx context.Context, id string) (core.ProductionOrder, error) {
	return s.store.Production(id)
}

func (s *appService) CreateProduction(ctx context.Context, in core.ProductionInput) (core.ProductionOrder, []core.StockShortage, error) {
	return s.store.AddProduction(ctx, in)
}

func (s *appService) UpdateProduction(ctx context.Context, id string, patch core.ProductionPatch) (core.ProductionOrder, error) {
	return s.store.UpdateProduction(ctx, id, patch)
}

// ── Sales ─────────────────────────────────────────────────────────────────────

func (s *appService) ListSales(ctx context.Context) ([]core.Sale, error) {
	return s.store.Sales(), nil
}

func (s *appService) GetSale(ctx context.Context, id string) (core.Sale, error) {
	return s.store.Sale(id)
}

func (s *appService) CreateSale(ctx context.Context, in core.SaleInput) (core.Sale, error) {
	return s.store.AddSale(ctx, in)
}

func (s *appService) UpdateSale(ctx context.Context, id string, patch core.SalePatch) (core.Sale, error) {
	return s.store.UpdateSale(ctx, id, patch)
}

func (s *appService) DeleteSale(ctx context.Context, id string) error {
	return s.store.DeleteSale(ctx, id)
}

// ── Ledger ────────────────────────────────────────────────────────────────────

func (s *appService) ListLedgerTransactions(ctx context.Context) ([]core.LedgerTransaction, error) {
	return s.store.LedgerTransactions(), nil
}

func (s *appService) CreateLedgerTransaction(ctx context.Context, in core.LedgerInput) (core.LedgerTransaction, error) {
	return s.store.AddLedgerTransaction(ctx, in)
}

func (s *appService) UpdateLedgerStatus(ctx context.Context, id string, status core.LedgerStatus) (core.LedgerTransaction, error) {
	return s.store.UpdateLedgerStatus(ctx, id, status)
}

// ── Dashboard & snapshots ─────────────────────────────────────────────────────

func (s *appService) GetDashboard(ctx context.Context) (core.Dashboard, error) {
	return s.store.Dashboard(), nil
}

func (s *appService) ExportSnapshot(ctx context.Context) (core.Snapshot, error) {
	return s.store.ExportSnapshot(), nil
}

func (s *appService) ImportSnapshot(ctx context.Context, snap core.Snapshot) error {
	return s.store.ImportSnapshot(ctx, snap)
}

// ── AI proposals ──────────────────────────────────────────────────────────────

var errAgentDisabled = errors.New("AI agent is not configured (set OPENAI_API_KEY)")

// ProposeEntry sends a natural language event description to the AI agent,
// primed with the current catalog and roster so names resolve.
func (s *appService) ProposeEntry(ctx context.Context, text string) (*core.EntryProposal, error) {
	if s.agent == nil {
		return nil, errAgentDisabled
	}
	return s.agent.InterpretEvent(ctx, text, s.businessContext())
}

// businessContext renders the names the model needs to line its proposal up
// with existing records.
func (s *appService) businessContext() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Today's date: %s\n", time.Now().Format("2006-01-02"))

	b.WriteString("Furniture catalog (name, expected price):\n")
	for _, f := range s.store.FurnitureItems() {
		fmt.Fprintf(&b, "- %s, %s\n", f.Name, f.ExpectedPrice)
	}
	b.WriteString("Workers (name, role):\n")
	for _, w := range s.store.Workers() {
		fmt.Fprintf(&b, "- %s, %s\n", w.Name, w.Role)
	}
	b.WriteString("Materials (name, unit):\n")
	for _, m := range s.store.Materials() {
		fmt.Fprintf(&b, "- %s, %s\n", m.Name, m.Unit)
	}
	return b.String()
}

// ApplyProposal executes a reviewed proposal as the matching store mutation.
// The proposal is re-normalized and re-validated first, so callers may pass
// hand-edited proposals back in.
func (s *appService) ApplyProposal(ctx context.Context, proposal core.EntryProposal) (ApplyResult, error) {
	proposal.Normalize()
	if err := proposal.Validate(); err != nil {
		return ApplyResult{}, fmt.Errorf("%v: %w", err, core.ErrValidation)
	}

	switch proposal.Kind {
	case core.EntrySale:
		return s.applySale(ctx, proposal)
	case core.EntryUdhar:
		return s.applyUdhar(ctx, proposal)
	case core.EntryMaterial:
		return s.applyMaterial(ctx, proposal)
	}
	return ApplyResult{}, fmt.Errorf("unknown entry kind %q: %w", proposal.Kind, core.ErrValidation)
}

func (s *appService) applySale(ctx context.Context, p core.EntryProposal) (ApplyResult, error) {
	var item *core.FurnitureItem
	for _, f := range s.store.FurnitureItems() {
		if strings.EqualFold(f.Name, p.ItemName) {
			item = &f
			break
		}
	}
	if item == nil {
		return ApplyResult{}, fmt.Errorf("furniture %q: %w", p.ItemName, core.ErrNotFound)
	}

	qty, err := parseAmount("quantity", p.Quantity)
	if err != nil {
		return ApplyResult{}, err
	}
	amount, err := parseAmount("amount", p.Amount)
	if err != nil {
		return ApplyResult{}, err
	}
	paid := amount
	if p.PaidAmount != "" {
		if paid, err = parseAmount("paid amount", p.PaidAmount); err != nil {
			return ApplyResult{}, err
		}
	}
	status := core.PaymentPaid
	switch {
	case paid.IsZero():
		status = core.PaymentPending
	case paid.LessThan(amount):
		status = core.PaymentPartial
	}

	// The whole sale rides on one line, so the unit price is the stated total
	// divided at decimal's default 16-digit precision. For non-terminating
	// divisions the re-derived total can trail the stated amount in the last
	// digit.
	sale, err := s.store.AddSale(ctx, core.SaleInput{
		CustomerName: p.PartyName,
		Items: []core.SaleItem{
			{FurnitureID: item.ID, Quantity: qty, SellingPrice: amount.Div(qty)},
		},
		PaidAmount:    paid,
		PaymentStatus: status,
		SaleDate:      p.Date,
		Notes:         p.Notes,
	})
	if err != nil {
		return ApplyResult{}, err
	}
	return ApplyResult{Sale: &sale}, nil
}

func (s *appService) applyUdhar(ctx context.Context, p core.EntryProposal) (ApplyResult, error) {
	var worker *core.Worker
	for _, w := range s.store.Workers() {
		if strings.EqualFold(w.Name, p.PartyName) {
			worker = &w
			break
		}
	}
	if worker == nil {
		return ApplyResult{}, fmt.Errorf("worker %q: %w", p.PartyName, core.ErrNotFound)
	}

	amount, err := parseAmount("amount", p.Amount)
	if err != nil {
		return ApplyResult{}, err
	}
	txn, err := s.store.AddLedgerTransaction(ctx, core.LedgerInput{
		Type:        core.LedgerWorker,
		WorkerID:    worker.ID,
		Amount:      amount,
		Status:      core.LedgerStatus(p.LedgerStatus),
		Description: p.Notes,
		Date:        p.Date,
	})
	if err != nil {
		return ApplyResult{}, err
	}
	return ApplyResult{Ledger: &txn}, nil
}

func (s *appService) applyMaterial(ctx context.Context, p core.EntryProposal) (ApplyResult, error) {
	qty, err := parseAmount("quantity", p.Quantity)
	if err != nil {
		return ApplyResult{}, err
	}
	var price decimal.Decimal
	if p.UnitPrice != "" {
		if price, err = parseAmount("unit price", p.UnitPrice); err != nil {
			return ApplyResult{}, err
		}
	} else {
		amount, err := parseAmount("amount", p.Amount)
		if err != nil {
			return ApplyResult{}, err
		}
		price = amount.Div(qty)
	}

	m, err := s.store.AddMaterial(ctx, core.MaterialInput{
		Name:         p.ItemName,
		Quantity:     qty,
		PricePerUnit: price,
		Supplier:     p.PartyName,
		PurchaseDate: p.Date,
	})
	if err != nil {
		return ApplyResult{}, err
	}
	return ApplyResult{Material: &m}, nil
}

// parseAmount converts a proposal number field without panicking, so a
// hand-edited proposal with a malformed figure surfaces as a validation
// error rather than a crash.
func parseAmount(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s %q: %w", field, value, core.ErrValidation)
	}
	return d, nil
}
