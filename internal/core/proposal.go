package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind identifies which collection a proposed entry targets.
type EntryKind string

const (
	EntrySale     EntryKind = "sale"
	EntryUdhar    EntryKind = "udhar"
	EntryMaterial EntryKind = "material"
)

// EntryProposal is the structured output of the interpreter for a free-text
// business event ("sold 2 chairs to Ramesh for 9000, paid 5000"). Amounts are
// strings because model output is text; Validate parses them. Only the fields
// relevant to Kind are expected to be filled.
type EntryProposal struct {
	Kind         EntryKind `json:"kind" jsonschema_description:"The entry type: 'sale' for a customer sale, 'udhar' for a worker payment/advance ledger entry, 'material' for a stock purchase."`
	Date         string    `json:"date" jsonschema_description:"The event date in YYYY-MM-DD format. Extrapolate from context or use today's date if unspecified."`
	PartyName    string    `json:"party_name" jsonschema_description:"Customer name for sales, worker name for udhar entries, supplier name for material purchases."`
	ItemName     string    `json:"item_name" jsonschema_description:"Furniture item name for sales, material name for purchases. Empty for udhar entries."`
	Quantity     string    `json:"quantity" jsonschema_description:"Units sold or purchased, as a positive number string. Empty for udhar entries."`
	UnitPrice    string    `json:"unit_price" jsonschema_description:"Per-unit selling price or purchase price as a number string. Empty for udhar entries."`
	Amount       string    `json:"amount" jsonschema_description:"The total monetary amount of the event (always positive) as a number string."`
	PaidAmount   string    `json:"paid_amount" jsonschema_description:"Amount actually received or paid, for sales and udhar. Empty means equal to Amount."`
	LedgerStatus string    `json:"ledger_status" jsonschema_description:"For udhar entries: 'paid' or 'pending'. Empty otherwise."`
	Notes        string    `json:"notes" jsonschema_description:"Any remaining detail worth keeping on the record."`
	Confidence   float64   `json:"confidence" jsonschema_description:"Confidence score between 0.0 and 1.0"`
	Reasoning    string    `json:"reasoning" jsonschema_description:"Explanation for the proposed entry"`
}

// Normalize cleans up model output before validation: trims whitespace,
// lower-cases the enums, and turns "null"-ish amounts into usable defaults.
func (p *EntryProposal) Normalize() {
	p.Kind = EntryKind(strings.ToLower(strings.TrimSpace(string(p.Kind))))
	p.Date = strings.TrimSpace(p.Date)
	p.PartyName = strings.TrimSpace(p.PartyName)
	p.ItemName = strings.TrimSpace(p.ItemName)
	p.LedgerStatus = strings.ToLower(strings.TrimSpace(p.LedgerStatus))

	p.Quantity = normalizeNumber(p.Quantity, "")
	p.UnitPrice = normalizeNumber(p.UnitPrice, "")
	p.Amount = normalizeNumber(p.Amount, "")

	// A missing paid amount means fully settled.
	p.PaidAmount = normalizeNumber(p.PaidAmount, p.Amount)

	// A bare quantity with a unit price is enough to recover the total.
	if p.Amount == "" && p.Quantity != "" && p.UnitPrice != "" {
		qty, qerr := decimal.NewFromString(p.Quantity)
		price, perr := decimal.NewFromString(p.UnitPrice)
		if qerr == nil && perr == nil {
			p.Amount = qty.Mul(price).String()
			if p.PaidAmount == "" {
				p.PaidAmount = p.Amount
			}
		}
	}

	if p.Kind == EntryUdhar && p.LedgerStatus == "" {
		p.LedgerStatus = string(LedgerPaid)
	}
}

func normalizeNumber(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" || strings.ToLower(value) == "null" {
		return fallback
	}
	return value
}

// Validate rejects proposals that cannot be turned into a store entry.
func (p *EntryProposal) Validate() error {
	switch p.Kind {
	case EntrySale, EntryUdhar, EntryMaterial:
	default:
		return fmt.Errorf("unknown entry kind %q", p.Kind)
	}

	if p.Date == "" {
		return errors.New("proposal must specify a date")
	}
	if _, err := time.Parse("2006-01-02", p.Date); err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}

	if p.PartyName == "" {
		return errors.New("proposal must name the customer, worker or supplier")
	}

	amount, err := decimal.NewFromString(p.Amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %v", p.Amount, err)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("amount must be > 0, got %s", p.Amount)
	}

	switch p.Kind {
	case EntrySale, EntryMaterial:
		if p.ItemName == "" {
			return errors.New("proposal must name the item")
		}
		qty, err := decimal.NewFromString(p.Quantity)
		if err != nil {
			return fmt.Errorf("invalid quantity %q: %v", p.Quantity, err)
		}
		if !qty.IsPositive() {
			return fmt.Errorf("quantity must be > 0, got %s", p.Quantity)
		}
		if p.UnitPrice != "" {
			price, err := decimal.NewFromString(p.UnitPrice)
			if err != nil {
				return fmt.Errorf("invalid unit price %q: %v", p.UnitPrice, err)
			}
			if price.IsNegative() {
				return fmt.Errorf("unit price cannot be negative, got %s", p.UnitPrice)
			}
		}
	case EntryUdhar:
		switch LedgerStatus(p.LedgerStatus) {
		case LedgerPaid, LedgerPending:
		default:
			return fmt.Errorf("unknown ledger status %q", p.LedgerStatus)
		}
	}

	if p.PaidAmount != "" {
		paid, err := decimal.NewFromString(p.PaidAmount)
		if err != nil {
			return fmt.Errorf("invalid paid amount %q: %v", p.PaidAmount, err)
		}
		if paid.IsNegative() {
			return fmt.Errorf("paid amount cannot be negative, got %s", p.PaidAmount)
		}
		if paid.GreaterThan(amount) {
			return fmt.Errorf("paid amount %s exceeds total %s", p.PaidAmount, p.Amount)
		}
	}

	return nil
}
