package app

import (
	"context"

	"workshop-manager/internal/core"
)

// ApplicationService is the single interface all adapters (Web, CLI) call.
// It decouples presentation from business logic. Implementations must contain
// no fmt.Println, no ANSI codes, and no display logic of any kind.
type ApplicationService interface {
	// Materials.
	ListMaterials(ctx context.Context) ([]core.Material, error)
	GetMaterial(ctx context.Context, id string) (core.Material, error)
	CreateMaterial(ctx context.Context, in core.MaterialInput) (core.Material, error)
	UpdateMaterial(ctx context.Context, id string, patch core.MaterialPatch) (core.Material, error)
	DeleteMaterial(ctx context.Context, id string) error

	// Workers.
	ListWorkers(ctx context.Context) ([]core.Worker, error)
	GetWorker(ctx context.Context, id string) (core.Worker, error)
	CreateWorker(ctx context.Context, in core.WorkerInput) (core.Worker, error)
	UpdateWorker(ctx context.Context, id string, patch core.WorkerPatch) (core.Worker, error)
	DeleteWorker(ctx context.Context, id string) error

	// Furniture catalog.
	ListFurniture(ctx context.Context) ([]core.FurnitureItem, error)
	GetFurniture(ctx context.Context, id string) (core.FurnitureItem, error)
	CreateFurniture(ctx context.Context, in core.FurnitureInput) (core.FurnitureItem, error)
	UpdateFurniture(ctx context.Context, id string, patch core.FurniturePatch) (core.FurnitureItem, error)
	DeleteFurniture(ctx context.Context, id string) error

	// Production orders. CreateProduction also returns any stock shortages
	// the cascade ran into; the order is created either way.
	ListProductions(ctx context.Context) ([]core.ProductionOrder, error)
	GetProduction(ctx context.Context, id string) (core.ProductionOrder, error)
	CreateProduction(ctx context.Context, in core.ProductionInput) (core.ProductionOrder, []core.StockShortage, error)
	UpdateProduction(ctx context.Context, id string, patch core.ProductionPatch) (core.ProductionOrder, error)

	// Sales.
	ListSales(ctx context.Context) ([]core.Sale, error)
	GetSale(ctx context.Context, id string) (core.Sale, error)
	CreateSale(ctx context.Context, in core.SaleInput) (core.Sale, error)
	UpdateSale(ctx context.Context, id string, patch core.SalePatch) (core.Sale, error)
	DeleteSale(ctx context.Context, id string) error

	// Udhar ledger.
	ListLedgerTransactions(ctx context.Context) ([]core.LedgerTransaction, error)
	CreateLedgerTransaction(ctx context.Context, in core.LedgerInput) (core.LedgerTransaction, error)
	UpdateLedgerStatus(ctx context.Context, id string, status core.LedgerStatus) (core.LedgerTransaction, error)

	// Dashboard and whole-store snapshots.
	GetDashboard(ctx context.Context) (core.Dashboard, error)
	ExportSnapshot(ctx context.Context) (core.Snapshot, error)
	ImportSnapshot(ctx context.Context, snap core.Snapshot) error

	// ProposeEntry sends a natural language event description to the AI agent
	// and returns a structured entry proposal for human review.
	ProposeEntry(ctx context.Context, text string) (*core.EntryProposal, error)

	// ApplyProposal executes a reviewed proposal as the matching store
	// mutation, resolving party and item names against current records.
	ApplyProposal(ctx context.Context, proposal core.EntryProposal) (ApplyResult, error)
}

// ApplyResult reports what a confirmed proposal turned into. Exactly one of
// the entity fields is set, matching the proposal kind.
type ApplyResult struct {
	Sale     *core.Sale              `json:"sale,omitempty"`
	Ledger   *core.LedgerTransaction `json:"ledger,omitempty"`
	Material *core.Material          `json:"material,omitempty"`
}
