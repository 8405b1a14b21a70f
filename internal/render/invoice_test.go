package render

import (
	"strings"
	"testing"
	"time"

	"github.com/dealerdesk/dealerdesk-api/internal/domain/entity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func testInvoice() *entity.Invoice {
	return &entity.Invoice{
		ID:              uuid.New(),
		UserID:          uuid.New(),
		InvoiceNumber:   42,
		NameOfBuyer:     "Ravi Kumar",
		AddressOfBuyer:  "14 Market Road",
		MobileNoOfBuyer: "9876543210",
		Hypothecation:   "SBI BANK",
		CreatedAt:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Items: entity.InvoiceItems{
			{
				SerialNumber: 1,
				ItemName:     "E-Rickshaw",
				Quantity:     1,
				Amount:       decimal.NewFromInt(125000),
				ChassisNo:    "CH-9931",
				MakersName:   "Mahindra",
			},
		},
	}
}

func TestRenderContainsInvoiceDetails(t *testing.T) {
	r, err := NewInvoiceRenderer()
	if err != nil {
		t.Fatalf("NewInvoiceRenderer: %v", err)
	}

	markup, err := r.Render(testInvoice(), nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	for _, want := range []string{
		"Ravi Kumar",
		"14 Market Road",
		"SBI BANK",
		"Invoice No:</strong> 42",
		"15 Mar 2024",
		"E-Rickshaw",
		"CH-9931",
		"Mahindra",
		"125000",
	} {
		if !strings.Contains(markup, want) {
			t.Errorf("markup missing %q", want)
		}
	}
}

func TestRenderWithLetterhead(t *testing.T) {
	r, err := NewInvoiceRenderer()
	if err != nil {
		t.Fatalf("NewInvoiceRenderer: %v", err)
	}

	storeName := "Kumar Motors"
	storeAddress := "2 Station Road, Pune"
	owner := &entity.User{
		FirstName:    "Anand",
		LastName:     "Kumar",
		StoreName:    &storeName,
		StoreAddress: &storeAddress,
	}

	markup, err := r.Render(testInvoice(), owner)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(markup, "Kumar Motors") {
		t.Error("markup missing store name")
	}
	if !strings.Contains(markup, "2 Station Road, Pune") {
		t.Error("markup missing store address")
	}
}

func TestRenderFallsBackToOwnerName(t *testing.T) {
	r, err := NewInvoiceRenderer()
	if err != nil {
		t.Fatalf("NewInvoiceRenderer: %v", err)
	}

	owner := &entity.User{FirstName: "Anand", LastName: "Kumar"}
	markup, err := r.Render(testInvoice(), owner)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(markup, "Anand Kumar") {
		t.Error("markup missing owner name fallback")
	}
}

func TestRenderEscapesMarkup(t *testing.T) {
	r, err := NewInvoiceRenderer()
	if err != nil {
		t.Fatalf("NewInvoiceRenderer: %v", err)
	}

	inv := testInvoice()
	inv.NameOfBuyer = `<script>alert("x")</script>`

	markup, err := r.Render(inv, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(markup, "<script>") {
		t.Error("buyer name was not escaped")
	}
}
