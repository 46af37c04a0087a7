package core

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"workshop-manager/internal/persistence"
)

// Store is the sole owner of the six entity collections. Every mutation runs
// to completion before returning: validate, mutate, apply cascades, recompute
// the dashboard, persist the affected buckets. A mutex serializes writers so
// the HTTP adapter can share the store, but there is no internal concurrency:
// cascades and persistence are synchronous side effects of the triggering
// operation and are never rolled back (single-writer, last-write-wins).
type Store struct {
	mu      sync.Mutex
	adapter persistence.Adapter
	logger  *zap.Logger

	materials   map[string]Material
	workers     map[string]Worker
	furniture   map[string]FurnitureItem
	productions map[string]ProductionOrder
	sales       map[string]Sale
	udhar       map[string]LedgerTransaction

	dashboard Dashboard
}

// NewStore hydrates a store from the adapter's snapshot. A missing or
// undecodable bucket degrades to an empty collection with a logged warning;
// startup never fails on corrupt state.
func NewStore(ctx context.Context, adapter persistence.Adapter, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		adapter:     adapter,
		logger:      logger,
		materials:   make(map[string]Material),
		workers:     make(map[string]Worker),
		furniture:   make(map[string]FurnitureItem),
		productions: make(map[string]ProductionOrder),
		sales:       make(map[string]Sale),
		udhar:       make(map[string]LedgerTransaction),
	}

	raw, err := adapter.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	for _, m := range decodeBucket[Material](logger, persistence.BucketMaterials, raw) {
		s.materials[m.ID] = m
	}
	for _, w := range decodeBucket[Worker](logger, persistence.BucketWorkers, raw) {
		s.workers[w.ID] = w
	}
	for _, f := range decodeBucket[FurnitureItem](logger, persistence.BucketFurniture, raw) {
		s.furniture[f.ID] = f
	}
	for _, p := range decodeBucket[ProductionOrder](logger, persistence.BucketProductions, raw) {
		s.productions[p.ID] = p
	}
	for _, sl := range decodeBucket[Sale](logger, persistence.BucketSales, raw) {
		s.sales[sl.ID] = sl
	}
	for _, t := range decodeBucket[LedgerTransaction](logger, persistence.BucketUdhar, raw) {
		s.udhar[t.ID] = t
	}

	s.dashboard = s.computeDashboard(time.Now())
	return s, nil
}

// decodeBucket unmarshals one collection bucket, tolerating absence and
// corruption (both yield an empty collection).
func decodeBucket[T any](logger *zap.Logger, bucket string, raw map[string][]byte) []T {
	payload, ok := raw[bucket]
	if !ok || len(payload) == 0 {
		return nil
	}
	var out []T
	if err := json.Unmarshal(payload, &out); err != nil {
		logger.Warn("discarding corrupt bucket, starting empty",
			zap.String("bucket", bucket), zap.Error(err))
		return nil
	}
	return out
}

func newID() string { return uuid.NewString() }

// persist writes the named buckets and refreshes the dashboard. Callers hold
// the lock. The in-memory mutation stands even if a write fails; the error is
// surfaced so the caller can retry the next mutation.
func (s *Store) persist(ctx context.Context, buckets ...string) error {
	s.dashboard = s.computeDashboard(time.Now())
	for _, bucket := range buckets {
		var (
			payload []byte
			err     error
		)
		switch bucket {
		case persistence.BucketMaterials:
			payload, err = json.Marshal(sortByCreation(s.materials))
		case persistence.BucketWorkers:
			payload, err = json.Marshal(sortByCreation(s.workers))
		case persistence.BucketFurniture:
			payload, err = json.Marshal(sortByCreation(s.furniture))
		case persistence.BucketProductions:
			payload, err = json.Marshal(sortByCreation(s.productions))
		case persistence.BucketSales:
			payload, err = json.Marshal(sortByCreation(s.sales))
		case persistence.BucketUdhar:
			payload, err = json.Marshal(sortByCreation(s.udhar))
		default:
			err = fmt.Errorf("unknown bucket %q", bucket)
		}
		if err != nil {
			return fmt.Errorf("encode %s: %w", bucket, err)
		}
		if err := s.adapter.Save(ctx, bucket, payload); err != nil {
			return fmt.Errorf("save %s: %w", bucket, err)
		}
	}
	return nil
}

// creationOrdered is satisfied by every entity; collections serialize and
// list in insertion order (creation time, id as tie-break).
type creationOrdered interface {
	creationKey() (time.Time, string)
}

func (m Material) creationKey() (time.Time, string)          { return m.CreatedAt, m.ID }
func (w Worker) creationKey() (time.Time, string)            { return w.CreatedAt, w.ID }
func (f FurnitureItem) creationKey() (time.Time, string)     { return f.CreatedAt, f.ID }
func (p ProductionOrder) creationKey() (time.Time, string)   { return p.CreatedAt, p.ID }
func (s Sale) creationKey() (time.Time, string)              { return s.CreatedAt, s.ID }
func (t LedgerTransaction) creationKey() (time.Time, string) { return t.CreatedAt, t.ID }

func sortByCreation[T creationOrdered](collection map[string]T) []T {
	out := make([]T, 0, len(collection))
	for _, v := range collection {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		ti, idi := out[i].creationKey()
		tj, idj := out[j].creationKey()
		if ti.Equal(tj) {
			return idi < idj
		}
		return ti.Before(tj)
	})
	return out
}

// ── Materials ─────────────────────────────────────────────────────────────────

func (s *Store) AddMaterial(ctx context.Context, in MaterialInput) (Material, error) {
	if err := in.validate(); err != nil {
		return Material{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	m := Material{
		ID:                newID(),
		Name:              in.Name,
		Subtype:           in.Subtype,
		Unit:              in.Unit,
		Quantity:          in.Quantity,
		PricePerUnit:      in.PricePerUnit,
		TotalValue:        materialTotalValue(in.Quantity, in.PricePerUnit),
		LowStockThreshold: in.LowStockThreshold,
		Supplier:          in.Supplier,
		PurchaseDate:      in.PurchaseDate,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	s.materials[m.ID] = m
	return m, s.persist(ctx, persistence.BucketMaterials)
}

func (s *Store) UpdateMaterial(ctx context.Context, id string, patch MaterialPatch) (Material, error) {
	if err := patch.validate(); err != nil {
		return Material{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.materials[id]
	if !ok {
		return Material{}, fmt.Errorf("material %s: %w", id, ErrNotFound)
	}
	if patch.Name != nil {
		m.Name = *patch.Name
	}
	if patch.Subtype != nil {
		m.Subtype = *patch.Subtype
	}
	if patch.Unit != nil {
		m.Unit = *patch.Unit
	}
	if patch.Quantity != nil {
		m.Quantity = *patch.Quantity
	}
	if patch.PricePerUnit != nil {
		m.PricePerUnit = *patch.PricePerUnit
	}
	if patch.LowStockThreshold != nil {
		m.LowStockThreshold = *patch.LowStockThreshold
	}
	if patch.Supplier != nil {
		m.Supplier = *patch.Supplier
	}
	if patch.PurchaseDate != nil {
		m.PurchaseDate = *patch.PurchaseDate
	}
	// TotalValue always derives from the post-merge quantity and price.
	m.TotalValue = materialTotalValue(m.Quantity, m.PricePerUnit)
	m.UpdatedAt = time.Now()
	s.materials[id] = m
	return m, s.persist(ctx, persistence.BucketMaterials)
}

func (s *Store) DeleteMaterial(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.materials[id]; !ok {
		return fmt.Errorf("material %s: %w", id, ErrNotFound)
	}
	// Unconditional: furniture bills-of-materials and production history may
	// keep dangling references.
	delete(s.materials, id)
	return s.persist(ctx, persistence.BucketMaterials)
}

func (s *Store) Material(id string) (Material, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.materials[id]
	if !ok {
		return Material{}, fmt.Errorf("material %s: %w", id, ErrNotFound)
	}
	return m, nil
}

func (s *Store) Materials() []Material {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortByCreation(s.materials)
}

// ── Workers ───────────────────────────────────────────────────────────────────

func (s *Store) AddWorker(ctx context.Context, in WorkerInput) (Worker, error) {
	if err := in.validate(); err != nil {
		return Worker{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	w := Worker{
		ID:            newID(),
		Name:          in.Name,
		Phone:         in.Phone,
		Role:          in.Role,
		DailyWage:     in.DailyWage,
		IsActive:      in.IsActive,
		TotalEarnings: decimal.Zero,
		UdharBalance:  decimal.Zero,
		JoinDate:      in.JoinDate,
		Address:       in.Address,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.workers[w.ID] = w
	return w, s.persist(ctx, persistence.BucketWorkers)
}

func (s *Store) UpdateWorker(ctx context.Context, id string, patch WorkerPatch) (Worker, error) {
	if err := patch.validate(); err != nil {
		return Worker{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.workers[id]
	if !ok {
		return Worker{}, fmt.Errorf("worker %s: %w", id, ErrNotFound)
	}
	if patch.Name != nil {
		w.Name = *patch.Name
	}
	if patch.Phone != nil {
		w.Phone = *patch.Phone
	}
	if patch.Role != nil {
		w.Role = *patch.Role
	}
	if patch.DailyWage != nil {
		w.DailyWage = *patch.DailyWage
	}
	if patch.IsActive != nil {
		w.IsActive = *patch.IsActive
	}
	if patch.JoinDate != nil {
		w.JoinDate = *patch.JoinDate
	}
	if patch.Address != nil {
		w.Address = *patch.Address
	}
	w.UpdatedAt = time.Now()
	s.workers[id] = w
	return w, s.persist(ctx, persistence.BucketWorkers)
}

func (s *Store) DeleteWorker(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.workers[id]; !ok {
		return fmt.Errorf("worker %s: %w", id, ErrNotFound)
	}
	delete(s.workers, id)
	return s.persist(ctx, persistence.BucketWorkers)
}

func (s *Store) Worker(id string) (Worker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.workers[id]
	if !ok {
		return Worker{}, fmt.Errorf("worker %s: %w", id, ErrNotFound)
	}
	return w, nil
}

func (s *Store) Workers() []Worker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortByCreation(s.workers)
}

// ── Furniture ─────────────────────────────────────────────────────────────────

func (s *Store) AddFurniture(ctx context.Context, in FurnitureInput) (FurnitureItem, error) {
	if err := in.validate(); err != nil {
		return FurnitureItem{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	materialCost, laborCost := furnitureCosts(s.materials, in.Materials, in.MainWorkerRate, in.CoWorkerRate)
	now := time.Now()
	f := FurnitureItem{
		ID:             newID(),
		Name:           in.Name,
		Category:       in.Category,
		ExpectedPrice:  in.ExpectedPrice,
		Materials:      append([]BOMLine(nil), in.Materials...),
		MaterialCost:   materialCost,
		LaborCost:      laborCost,
		MainWorkerRate: in.MainWorkerRate,
		CoWorkerRate:   in.CoWorkerRate,
		Description:    in.Description,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.furniture[f.ID] = f
	return f, s.persist(ctx, persistence.BucketFurniture)
}

func (s *Store) UpdateFurniture(ctx context.Context, id string, patch FurniturePatch) (FurnitureItem, error) {
	if err := patch.validate(); err != nil {
		return FurnitureItem{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.furniture[id]
	if !ok {
		return FurnitureItem{}, fmt.Errorf("furniture %s: %w", id, ErrNotFound)
	}
	if patch.Name != nil {
		f.Name = *patch.Name
	}
	if patch.Category != nil {
		f.Category = *patch.Category
	}
	if patch.ExpectedPrice != nil {
		f.ExpectedPrice = *patch.ExpectedPrice
	}
	if patch.Materials != nil {
		f.Materials = append([]BOMLine(nil), (*patch.Materials)...)
	}
	if patch.MainWorkerRate != nil {
		f.MainWorkerRate = *patch.MainWorkerRate
	}
	if patch.CoWorkerRate != nil {
		f.CoWorkerRate = *patch.CoWorkerRate
	}
	if patch.Description != nil {
		f.Description = *patch.Description
	}
	// Re-snapshot both costs from the post-merge bill and rates. Material
	// price changes between saves do not touch existing items; saving the
	// item again picks up current prices.
	f.MaterialCost, f.LaborCost = furnitureCosts(s.materials, f.Materials, f.MainWorkerRate, f.CoWorkerRate)
	f.UpdatedAt = time.Now()
	s.furniture[id] = f
	return f, s.persist(ctx, persistence.BucketFurniture)
}

func (s *Store) DeleteFurniture(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.furniture[id]; !ok {
		return fmt.Errorf("furniture %s: %w", id, ErrNotFound)
	}
	delete(s.furniture, id)
	return s.persist(ctx, persistence.BucketFurniture)
}

func (s *Store) Furniture(id string) (FurnitureItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.furniture[id]
	if !ok {
		return FurnitureItem{}, fmt.Errorf("furniture %s: %w", id, ErrNotFound)
	}
	return f, nil
}

func (s *Store) FurnitureItems() []FurnitureItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortByCreation(s.furniture)
}

// ── Production orders ─────────────────────────────────────────────────────────

// AddProduction creates the order and then deducts consumed stock from each
// bill-of-materials line. The order is created regardless of stock levels; a
// line whose material lacks sufficient stock is skipped and reported in the
// returned shortages (deduction is per-material, not atomic across the bill).
func (s *Store) AddProduction(ctx context.Context, in ProductionInput) (ProductionOrder, []StockShortage, error) {
	if err := in.validate(); err != nil {
		return ProductionOrder{}, nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.furniture[in.FurnitureID]
	if !ok {
		return ProductionOrder{}, nil, fmt.Errorf("furniture %s: %w", in.FurnitureID, ErrNotFound)
	}

	status := in.Status
	if status == "" {
		status = ProductionPlanned
	}
	materialCost, laborCost := productionCosts(item, in.Quantity, in.Workers, s.workers)
	now := time.Now()
	p := ProductionOrder{
		ID:             newID(),
		FurnitureID:    in.FurnitureID,
		Quantity:       in.Quantity,
		Workers:        append([]ProductionWorker(nil), in.Workers...),
		Status:         status,
		MaterialCost:   materialCost,
		LaborCost:      laborCost,
		TotalCost:      materialCost.Add(laborCost),
		ProductionDate: in.ProductionDate,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.productions[p.ID] = p

	shortages := s.deductStock(item, in.Quantity)
	return p, shortages, s.persist(ctx, persistence.BucketProductions, persistence.BucketMaterials)
}

// deductStock applies the production cascade against the bill-of-materials.
// Callers hold the lock.
func (s *Store) deductStock(item FurnitureItem, orderQty decimal.Decimal) []StockShortage {
	var shortages []StockShortage
	for _, line := range item.Materials {
		m, ok := s.materials[line.MaterialID]
		if !ok {
			// Dangling reference after a material delete; nothing to deduct.
			continue
		}
		required := line.QuantityPerUnit.Mul(orderQty)
		if m.Quantity.LessThan(required) {
			shortages = append(shortages, StockShortage{
				MaterialID:   m.ID,
				MaterialName: m.Name,
				Required:     required,
				Available:    m.Quantity,
			})
			s.logger.Warn("insufficient stock, skipping deduction",
				zap.String("material", m.Name),
				zap.String("required", required.String()),
				zap.String("available", m.Quantity.String()))
			continue
		}
		m.Quantity = m.Quantity.Sub(required)
		m.TotalValue = materialTotalValue(m.Quantity, m.PricePerUnit)
		m.UpdatedAt = time.Now()
		s.materials[m.ID] = m
	}
	return shortages
}

func (s *Store) UpdateProduction(ctx context.Context, id string, patch ProductionPatch) (ProductionOrder, error) {
	if err := patch.validate(); err != nil {
		return ProductionOrder{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.productions[id]
	if !ok {
		return ProductionOrder{}, fmt.Errorf("production %s: %w", id, ErrNotFound)
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.ProductionDate != nil {
		p.ProductionDate = *patch.ProductionDate
	}
	if patch.Notes != nil {
		p.Notes = *patch.Notes
	}
	p.UpdatedAt = time.Now()
	s.productions[id] = p
	return p, s.persist(ctx, persistence.BucketProductions)
}

func (s *Store) Production(id string) (ProductionOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.productions[id]
	if !ok {
		return ProductionOrder{}, fmt.Errorf("production %s: %w", id, ErrNotFound)
	}
	return p, nil
}

func (s *Store) Productions() []ProductionOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortByCreation(s.productions)
}

// ── Sales ─────────────────────────────────────────────────────────────────────

func (s *Store) AddSale(ctx context.Context, in SaleInput) (Sale, error) {
	if err := in.validate(); err != nil {
		return Sale{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	status := in.PaymentStatus
	if status == "" {
		status = PaymentPending
	}
	totalAmount, totalCost, profit := saleTotals(in.Items, s.furniture)
	now := time.Now()
	sale := Sale{
		ID:              newID(),
		CustomerName:    in.CustomerName,
		CustomerPhone:   in.CustomerPhone,
		CustomerAddress: in.CustomerAddress,
		Items:           append([]SaleItem(nil), in.Items...),
		TotalAmount:     totalAmount,
		TotalCost:       totalCost,
		Profit:          profit,
		PaidAmount:      in.PaidAmount,
		PaymentStatus:   status,
		SaleDate:        in.SaleDate,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.sales[sale.ID] = sale
	return sale, s.persist(ctx, persistence.BucketSales)
}

func (s *Store) UpdateSale(ctx context.Context, id string, patch SalePatch) (Sale, error) {
	if err := patch.validate(); err != nil {
		return Sale{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sale, ok := s.sales[id]
	if !ok {
		return Sale{}, fmt.Errorf("sale %s: %w", id, ErrNotFound)
	}
	if patch.CustomerName != nil {
		sale.CustomerName = *patch.CustomerName
	}
	if patch.CustomerPhone != nil {
		sale.CustomerPhone = *patch.CustomerPhone
	}
	if patch.CustomerAddress != nil {
		sale.CustomerAddress = *patch.CustomerAddress
	}
	if patch.Items != nil {
		sale.Items = append([]SaleItem(nil), (*patch.Items)...)
	}
	if patch.PaidAmount != nil {
		sale.PaidAmount = *patch.PaidAmount
	}
	if patch.PaymentStatus != nil {
		sale.PaymentStatus = *patch.PaymentStatus
	}
	if patch.SaleDate != nil {
		sale.SaleDate = *patch.SaleDate
	}
	if patch.Notes != nil {
		sale.Notes = *patch.Notes
	}
	// Totals derive from the post-merge items against current furniture cost
	// snapshots.
	sale.TotalAmount, sale.TotalCost, sale.Profit = saleTotals(sale.Items, s.furniture)
	sale.UpdatedAt = time.Now()
	s.sales[id] = sale
	return sale, s.persist(ctx, persistence.BucketSales)
}

func (s *Store) DeleteSale(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sales[id]; !ok {
		return fmt.Errorf("sale %s: %w", id, ErrNotFound)
	}
	delete(s.sales, id)
	return s.persist(ctx, persistence.BucketSales)
}

func (s *Store) Sale(id string) (Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sale, ok := s.sales[id]
	if !ok {
		return Sale{}, fmt.Errorf("sale %s: %w", id, ErrNotFound)
	}
	return sale, nil
}

func (s *Store) Sales() []Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortByCreation(s.sales)
}

// ── Udhar ledger ──────────────────────────────────────────────────────────────

// AddLedgerTransaction records a ledger entry and, for worker-typed entries,
// cascades into the worker's balance: paid entries reduce the udhar balance
// (clamped at zero) and add to total earnings; pending entries increase the
// balance. A worker id that no longer resolves skips the cascade silently;
// the entry itself is still recorded.
func (s *Store) AddLedgerTransaction(ctx context.Context, in LedgerInput) (LedgerTransaction, error) {
	if err := in.validate(); err != nil {
		return LedgerTransaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	t := LedgerTransaction{
		ID:          newID(),
		Type:        in.Type,
		WorkerID:    in.WorkerID,
		Amount:      in.Amount,
		Status:      in.Status,
		Description: in.Description,
		Date:        in.Date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	buckets := []string{persistence.BucketUdhar}
	if t.Type == LedgerWorker && s.applyLedgerEffect(&t) {
		buckets = append(buckets, persistence.BucketWorkers)
	}
	s.udhar[t.ID] = t
	return t, s.persist(ctx, buckets...)
}

// UpdateLedgerStatus re-points a transaction's status and re-runs the balance
// cascade: the old status effect is reversed before the new one is applied,
// so edits are idempotent-reapplicable rather than silently ignored.
func (s *Store) UpdateLedgerStatus(ctx context.Context, id string, status LedgerStatus) (LedgerTransaction, error) {
	switch status {
	case LedgerPaid, LedgerPending:
	default:
		return LedgerTransaction{}, fmt.Errorf("unknown ledger status %q: %w", status, ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.udhar[id]
	if !ok {
		return LedgerTransaction{}, fmt.Errorf("ledger transaction %s: %w", id, ErrNotFound)
	}
	if t.Status == status {
		return t, nil
	}

	buckets := []string{persistence.BucketUdhar}
	if t.Type == LedgerWorker {
		reversed := s.reverseLedgerEffect(&t)
		t.Status = status
		if s.applyLedgerEffect(&t) || reversed {
			buckets = append(buckets, persistence.BucketWorkers)
		}
	}
	t.Status = status
	t.UpdatedAt = time.Now()
	s.udhar[id] = t
	return t, s.persist(ctx, buckets...)
}

// applyLedgerEffect cascades a worker transaction into the worker's balance
// and records on the transaction how much of a paid amount was actually
// deducted. Returns false when the worker does not resolve. Callers hold the
// lock.
func (s *Store) applyLedgerEffect(t *LedgerTransaction) bool {
	w, ok := s.workers[t.WorkerID]
	if !ok {
		return false
	}
	switch t.Status {
	case LedgerPaid:
		t.BalanceDeducted = decimal.Min(t.Amount, w.UdharBalance)
		w.UdharBalance = w.UdharBalance.Sub(t.BalanceDeducted)
		w.TotalEarnings = w.TotalEarnings.Add(t.Amount)
	case LedgerPending:
		t.BalanceDeducted = decimal.Zero
		w.UdharBalance = w.UdharBalance.Add(t.Amount)
	}
	w.UpdatedAt = time.Now()
	s.workers[t.WorkerID] = w
	return true
}

// reverseLedgerEffect undoes a previously applied cascade. Paid entries add
// back the recorded deduction rather than the face amount, so the clamped
// portion is never invented on the way back.
func (s *Store) reverseLedgerEffect(t *LedgerTransaction) bool {
	w, ok := s.workers[t.WorkerID]
	if !ok {
		return false
	}
	switch t.Status {
	case LedgerPaid:
		w.UdharBalance = w.UdharBalance.Add(t.BalanceDeducted)
		w.TotalEarnings = clampZero(w.TotalEarnings.Sub(t.Amount))
		t.BalanceDeducted = decimal.Zero
	case LedgerPending:
		w.UdharBalance = clampZero(w.UdharBalance.Sub(t.Amount))
	}
	w.UpdatedAt = time.Now()
	s.workers[t.WorkerID] = w
	return true
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func (s *Store) LedgerTransactions() []LedgerTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortByCreation(s.udhar)
}

// ── Dashboard & snapshot ──────────────────────────────────────────────────────

// Dashboard returns the aggregate snapshot as of the last completed mutation.
func (s *Store) Dashboard() Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dashboard
}

// RecomputeDashboard forces a fresh recompute (the month boundary can move
// without a mutation).
func (s *Store) RecomputeDashboard() Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dashboard = s.computeDashboard(time.Now())
	return s.dashboard
}

// ExportSnapshot returns all six collections plus the export timestamp.
func (s *Store) ExportSnapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Materials:         sortByCreation(s.materials),
		Workers:           sortByCreation(s.workers),
		Furniture:         sortByCreation(s.furniture),
		Productions:       sortByCreation(s.productions),
		Sales:             sortByCreation(s.sales),
		UdharTransactions: sortByCreation(s.udhar),
		ExportedAt:        time.Now(),
	}
}

// ImportSnapshot replaces every provided (non-nil) collection wholesale.
// Stored derived fields are trusted as-is (re-deriving here would corrupt
// point-in-time cost snapshots) and no referential validation is performed.
func (s *Store) ImportSnapshot(ctx context.Context, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buckets []string
	if snap.Materials != nil {
		s.materials = make(map[string]Material, len(snap.Materials))
		for _, m := range snap.Materials {
			s.materials[m.ID] = m
		}
		buckets = append(buckets, persistence.BucketMaterials)
	}
	if snap.Workers != nil {
		s.workers = make(map[string]Worker, len(snap.Workers))
		for _, w := range snap.Workers {
			s.workers[w.ID] = w
		}
		buckets = append(buckets, persistence.BucketWorkers)
	}
	if snap.Furniture != nil {
		s.furniture = make(map[string]FurnitureItem, len(snap.Furniture))
		for _, f := range snap.Furniture {
			s.furniture[f.ID] = f
		}
		buckets = append(buckets, persistence.BucketFurniture)
	}
	if snap.Productions != nil {
		s.productions = make(map[string]ProductionOrder, len(snap.Productions))
		for _, p := range snap.Productions {
			s.productions[p.ID] = p
		}
		buckets = append(buckets, persistence.BucketProductions)
	}
	if snap.Sales != nil {
		s.sales = make(map[string]Sale, len(snap.Sales))
		for _, sale := range snap.Sales {
			s.sales[sale.ID] = sale
		}
		buckets = append(buckets, persistence.BucketSales)
	}
	if snap.UdharTransactions != nil {
		s.udhar = make(map[string]LedgerTransaction, len(snap.UdharTransactions))
		for _, t := range snap.UdharTransactions {
			s.udhar[t.ID] = t
		}
		buckets = append(buckets, persistence.BucketUdhar)
	}
	if len(buckets) == 0 {
		return nil
	}
	return s.persist(ctx, buckets...)
}
