package entity

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func sampleInvoice() *Invoice {
	return &Invoice{
		ID:              uuid.New(),
		UserID:          uuid.New(),
		InvoiceNumber:   7,
		NameOfBuyer:     "buyers name",
		AddressOfBuyer:  "address of buyer",
		MobileNoOfBuyer: "1234567890",
		Items: InvoiceItems{
			{
				SerialNumber: 1,
				ItemName:     "riksha",
				Quantity:     1,
				Amount:       decimal.NewFromInt(100000),
				ChassisNo:    "CH-001",
			},
			{
				SerialNumber: 2,
				ItemName:     "loader",
				Quantity:     1,
				Amount:       decimal.NewFromInt(25000),
			},
		},
	}
}

func TestApplyPatchMergesFields(t *testing.T) {
	inv := sampleInvoice()

	err := inv.ApplyPatch(map[string]interface{}{
		"nameOfBuyer":   "new buyer",
		"hypothecation": "SBI BANK",
	})
	if err != nil {
		t.Fatalf("ApplyPatch: %v", err)
	}

	if inv.NameOfBuyer != "new buyer" {
		t.Errorf("NameOfBuyer = %q, want %q", inv.NameOfBuyer, "new buyer")
	}
	if inv.Hypothecation != "SBI BANK" {
		t.Errorf("Hypothecation = %q, want %q", inv.Hypothecation, "SBI BANK")
	}
	// Untouched fields survive the merge.
	if inv.AddressOfBuyer != "address of buyer" {
		t.Errorf("AddressOfBuyer changed: %q", inv.AddressOfBuyer)
	}
	if len(inv.Items) != 2 {
		t.Errorf("Items changed: %d entries", len(inv.Items))
	}
}

func TestApplyPatchIgnoresProtectedKeys(t *testing.T) {
	inv := sampleInvoice()
	origID, origUser, origNumber := inv.ID, inv.UserID, inv.InvoiceNumber

	err := inv.ApplyPatch(map[string]interface{}{
		"_id":           uuid.New().String(),
		"user":          uuid.New().String(),
		"invoiceNumber": 99,
		"nameOfBuyer":   "still applied",
	})
	if err != nil {
		t.Fatalf("ApplyPatch: %v", err)
	}

	if inv.ID != origID {
		t.Errorf("ID changed by patch")
	}
	if inv.UserID != origUser {
		t.Errorf("UserID changed by patch")
	}
	if inv.InvoiceNumber != origNumber {
		t.Errorf("InvoiceNumber changed by patch")
	}
	if inv.NameOfBuyer != "still applied" {
		t.Errorf("non-protected field not applied")
	}
}

func TestApplyPatchReplacesItems(t *testing.T) {
	inv := sampleInvoice()

	err := inv.ApplyPatch(map[string]interface{}{
		"items": []map[string]interface{}{
			{"serialNumber": 9, "itemName": "e-cart", "quantity": 2, "amount": 42000},
		},
	})
	if err != nil {
		t.Fatalf("ApplyPatch: %v", err)
	}

	if len(inv.Items) != 1 {
		t.Fatalf("Items = %d entries, want 1", len(inv.Items))
	}
	if inv.Items[0].ItemName != "e-cart" {
		t.Errorf("ItemName = %q", inv.Items[0].ItemName)
	}
	if !inv.Items[0].Amount.Equal(decimal.NewFromInt(42000)) {
		t.Errorf("Amount = %s", inv.Items[0].Amount)
	}
}

func TestInvoiceDeletesAreHard(t *testing.T) {
	// A gorm.DeletedAt field would turn deletes into soft deletes, and the
	// idx_invoices_user_number unique index would then reject re-creating a
	// deleted invoice number.
	typ := reflect.TypeOf(Invoice{})
	deletedAt := reflect.TypeOf(gorm.DeletedAt{})
	for i := 0; i < typ.NumField(); i++ {
		if typ.Field(i).Type == deletedAt {
			t.Errorf("Invoice.%s makes deletes soft; deleted invoice numbers must be reusable", typ.Field(i).Name)
		}
	}
}

func TestTotalAmount(t *testing.T) {
	inv := sampleInvoice()
	if got := inv.TotalAmount(); !got.Equal(decimal.NewFromInt(125000)) {
		t.Errorf("TotalAmount = %s, want 125000", got)
	}

	empty := &Invoice{}
	if got := empty.TotalAmount(); !got.Equal(decimal.Zero) {
		t.Errorf("TotalAmount of empty invoice = %s, want 0", got)
	}
}
