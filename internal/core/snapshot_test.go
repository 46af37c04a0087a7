package core_test

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"workshop-manager/internal/core"
	"workshop-manager/internal/persistence"
)

// seedWorkshop populates a store with a business month's worth of data.
func seedWorkshop(t *testing.T, s *core.Store, ctx context.Context) {
	t.Helper()
	_, worker, bed := seedCatalog(t, s, ctx, "100")

	if _, _, err := s.AddProduction(ctx, core.ProductionInput{
		FurnitureID:    bed.ID,
		Quantity:       dec(t, "3"),
		Workers:        []core.ProductionWorker{{WorkerID: worker.ID, Role: "main"}},
		ProductionDate: time.Now().Format("2006-01-02"),
	}); err != nil {
		t.Fatalf("AddProduction failed: %v", err)
	}
	if _, err := s.AddSale(ctx, core.SaleInput{
		CustomerName: "Farida",
		Items: []core.SaleItem{
			{FurnitureID: bed.ID, Quantity: dec(t, "1"), SellingPrice: dec(t, "14000")},
		},
		PaidAmount:    dec(t, "14000"),
		PaymentStatus: core.PaymentPaid,
		SaleDate:      "2026-08-15",
	}); err != nil {
		t.Fatalf("AddSale failed: %v", err)
	}
	if _, err := s.AddLedgerTransaction(ctx, core.LedgerInput{
		Type: core.LedgerWorker, WorkerID: worker.ID,
		Amount: dec(t, "800"), Status: core.LedgerPaid,
		Description: "bed frame work", Date: "2026-08-16",
	}); err != nil {
		t.Fatalf("AddLedgerTransaction failed: %v", err)
	}
}

func TestStore_ReloadsFromAdapter(t *testing.T) {
	ctx := context.Background()
	adapter := persistence.NewMemory()

	s, err := core.NewStore(ctx, adapter, zap.NewNop())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	seedWorkshop(t, s, ctx)
	before := s.ExportSnapshot()

	// A second store over the same adapter must see identical state,
	// derived fields included.
	reloaded, err := core.NewStore(ctx, adapter, zap.NewNop())
	if err != nil {
		t.Fatalf("NewStore (reload) failed: %v", err)
	}
	after := reloaded.ExportSnapshot()

	if len(after.Materials) != len(before.Materials) ||
		len(after.Workers) != len(before.Workers) ||
		len(after.Furniture) != len(before.Furniture) ||
		len(after.Productions) != len(before.Productions) ||
		len(after.Sales) != len(before.Sales) ||
		len(after.UdharTransactions) != len(before.UdharTransactions) {
		t.Fatal("reloaded collections differ in size from the originals")
	}
	assertDecimal(t, "reloaded material quantity", after.Materials[0].Quantity, before.Materials[0].Quantity)
	assertDecimal(t, "reloaded material total value", after.Materials[0].TotalValue, before.Materials[0].TotalValue)
	assertDecimal(t, "reloaded worker earnings", after.Workers[0].TotalEarnings, before.Workers[0].TotalEarnings)
	assertDecimal(t, "reloaded furniture material cost", after.Furniture[0].MaterialCost, before.Furniture[0].MaterialCost)
	assertDecimal(t, "reloaded production total cost", after.Productions[0].TotalCost, before.Productions[0].TotalCost)
	assertDecimal(t, "reloaded sale profit", after.Sales[0].Profit, before.Sales[0].Profit)
}

func TestStore_ToleratesCorruptBucket(t *testing.T) {
	ctx := context.Background()
	adapter := persistence.NewMemory()
	if err := adapter.Save(ctx, persistence.BucketMaterials, []byte("{not json")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	s, err := core.NewStore(ctx, adapter, zap.NewNop())
	if err != nil {
		t.Fatalf("NewStore should tolerate corrupt buckets, got %v", err)
	}
	if got := len(s.Materials()); got != 0 {
		t.Errorf("expected empty materials after corrupt bucket, got %d", got)
	}
}

func TestSnapshot_ExportImportRoundTrip(t *testing.T) {
	source, ctx := setupStore(t)
	seedWorkshop(t, source, ctx)
	snap := source.ExportSnapshot()
	if snap.ExportedAt.IsZero() {
		t.Error("expected export timestamp")
	}

	target, _ := setupStore(t)
	if err := target.ImportSnapshot(ctx, snap); err != nil {
		t.Fatalf("ImportSnapshot failed: %v", err)
	}
	reExported := target.ExportSnapshot()

	// Import trusts stored derived fields: nothing is re-derived, so the
	// cost snapshots survive the trip untouched.
	assertDecimal(t, "furniture material cost", reExported.Furniture[0].MaterialCost, snap.Furniture[0].MaterialCost)
	assertDecimal(t, "production labor cost", reExported.Productions[0].LaborCost, snap.Productions[0].LaborCost)
	assertDecimal(t, "sale total", reExported.Sales[0].TotalAmount, snap.Sales[0].TotalAmount)
	assertDecimal(t, "worker udhar balance", reExported.Workers[0].UdharBalance, snap.Workers[0].UdharBalance)
	if reExported.Materials[0].ID != snap.Materials[0].ID {
		t.Error("material identity changed across the round trip")
	}
}

func TestSnapshot_PartialImportLeavesOtherCollections(t *testing.T) {
	s, ctx := setupStore(t)
	seedWorkshop(t, s, ctx)
	workersBefore := s.Workers()

	// Importing only materials must not disturb the roster.
	if err := s.ImportSnapshot(ctx, core.Snapshot{
		Materials: []core.Material{{ID: "m-1", Name: "Imported Pine"}},
	}); err != nil {
		t.Fatalf("ImportSnapshot failed: %v", err)
	}
	materials := s.Materials()
	if len(materials) != 1 || materials[0].Name != "Imported Pine" {
		t.Fatalf("expected materials to be replaced, got %d", len(materials))
	}
	if got := len(s.Workers()); got != len(workersBefore) {
		t.Errorf("workers changed on a materials-only import: %d != %d", got, len(workersBefore))
	}
}

func TestDashboard_AggregatesAfterMutations(t *testing.T) {
	s, ctx := setupStore(t)
	seedWorkshop(t, s, ctx)

	d := s.Dashboard()
	assertDecimal(t, "TotalSales", d.TotalSales, dec(t, "14000"))
	// Sale cost: 5×600 material + 800 labor per bed = 3800.
	assertDecimal(t, "TotalProfit", d.TotalProfit, dec(t, "10200"))
	// Stock after producing 3 beds: 85 × 600.
	assertDecimal(t, "TotalMaterialValue", d.TotalMaterialValue, dec(t, "51000"))
	if d.LowStockCount != 0 {
		t.Errorf("LowStockCount = %d, want 0", d.LowStockCount)
	}
	if d.ActiveWorkerCount != 1 {
		t.Errorf("ActiveWorkerCount = %d, want 1", d.ActiveWorkerCount)
	}
	if d.PendingPaymentCount != 0 {
		t.Errorf("PendingPaymentCount = %d, want 0", d.PendingPaymentCount)
	}
	assertDecimal(t, "ThisMonthProductionQty", d.ThisMonthProductionQty, dec(t, "3"))
}

func TestDashboard_RecomputeIsIdempotent(t *testing.T) {
	s, ctx := setupStore(t)
	seedWorkshop(t, s, ctx)

	first := s.RecomputeDashboard()
	second := s.RecomputeDashboard()
	assertDecimal(t, "TotalSales", second.TotalSales, first.TotalSales)
	assertDecimal(t, "TotalProfit", second.TotalProfit, first.TotalProfit)
	assertDecimal(t, "TotalMaterialValue", second.TotalMaterialValue, first.TotalMaterialValue)
	assertDecimal(t, "ThisMonthProductionQty", second.ThisMonthProductionQty, first.ThisMonthProductionQty)
	if first.LowStockCount != second.LowStockCount ||
		first.ActiveWorkerCount != second.ActiveWorkerCount ||
		first.PendingPaymentCount != second.PendingPaymentCount {
		t.Error("counts changed across recomputes without mutations")
	}
}

func TestDashboard_CountsPendingAndLowStock(t *testing.T) {
	s, ctx := setupStore(t)
	_, _, bed := seedCatalog(t, s, ctx, "5") // below the threshold of 10

	if _, err := s.AddSale(ctx, core.SaleInput{
		CustomerName: "Iqbal",
		Items: []core.SaleItem{
			{FurnitureID: bed.ID, Quantity: dec(t, "1"), SellingPrice: dec(t, "13000")},
		},
		PaidAmount:    dec(t, "6000"),
		PaymentStatus: core.PaymentPartial,
		SaleDate:      "2026-08-18",
	}); err != nil {
		t.Fatalf("AddSale failed: %v", err)
	}

	d := s.Dashboard()
	if d.LowStockCount != 1 {
		t.Errorf("LowStockCount = %d, want 1", d.LowStockCount)
	}
	if d.PendingPaymentCount != 1 {
		t.Errorf("PendingPaymentCount = %d, want 1 (partial counts as pending)", d.PendingPaymentCount)
	}
}
