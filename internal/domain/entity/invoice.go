package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// Legacy clients expect bare JSON numbers for money fields.
	decimal.MarshalJSONWithoutQuotes = true
}

// Invoice represents a vehicle-purchase invoice. The JSON tags reproduce the
// legacy wire format, spelling mistakes included, so existing clients keep
// working unchanged.
//
// Deletes are hard deletes on purpose: the (user, invoice number) pair must
// become reusable the moment the invoice is removed, and a soft-delete column
// would keep the unique index occupied by dead rows.
type Invoice struct {
	ID              uuid.UUID    `gorm:"type:uuid;primary_key" json:"_id"`
	UserID          uuid.UUID    `gorm:"type:uuid;not null;index;uniqueIndex:idx_invoices_user_number" json:"user"`
	InvoiceNumber   int          `gorm:"not null;uniqueIndex:idx_invoices_user_number" json:"invoiceNumber"`
	NameOfBuyer     string       `gorm:"size:255" json:"nameOfBuyer"`
	AddressOfBuyer  string       `gorm:"type:text" json:"addressOfBuyer"`
	MobileNoOfBuyer string       `gorm:"size:50" json:"mobileNoOfBuyer"`
	Description     string       `gorm:"type:text" json:"description"`
	Hypothecation   string       `gorm:"size:255" json:"hypothecation"`
	Items           InvoiceItems `gorm:"type:jsonb;serializer:json" json:"items"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// InvoiceItems is the ordered line-item payload, stored as a single JSONB
// document. The API treats it as opaque beyond "present".
type InvoiceItems []InvoiceItem

// InvoiceItem describes one vehicle on the invoice.
type InvoiceItem struct {
	SerialNumber           int             `json:"serialNumber"`
	ItemName               string          `json:"itemName"`
	Quantity               int             `json:"quantity"`
	Amount                 decimal.Decimal `json:"amount"`
	HirePurchaseWith       string          `json:"hirePurchase_or_Lease_or_hypothecationWith"`
	ClassOfVehicle         string          `json:"classOfVechile"`
	MakersName             string          `json:"makersName"`
	ChassisNo              string          `json:"chassisNo"`
	EngineNumber           json.Number     `json:"EngineNumber"`
	HorsePower             string          `json:"hoursePower"`
	FuelUsed               string          `json:"fuelUsed"`
	NumberOfBatteries      int             `json:"numberOfBatteries"`
	YearOfManufacture      string          `json:"yearOfManufacture"`
	SeatingCapacity        string          `json:"seatingCapacity"`
	UnladenWeight          int             `json:"unladenWeight"`
	MaxAxleWeight          AxleWeight      `json:"maximAxleWeight"`
	BodyColor              string          `json:"bodyColor"`
	GrossVehicleWeight     int             `json:"grossVehicleWeight"`
	TypeOfBody             string          `json:"typeOfBody"`
	BharatStage            string          `json:"bharatStage"`
	TradeCertificateNumber string          `json:"tradeCertificateNumber"`
	TankNumber             string          `json:"tankNumber"`
	VaporizerNumber        string          `json:"waporizerNumber"`
}

// AxleWeight is the per-axle weight breakdown of a vehicle.
type AxleWeight struct {
	FrontAxle    int `json:"frontAxle"`
	RearAxle     int `json:"rearAxle"`
	AnyOtherAxle int `json:"anyOtherAxle"`
	TandemAxle   int `json:"tandemAxle"`
}

// protectedPatchKeys are stripped from update payloads: identity and
// ownership are keyed by the filter, never by the body.
var protectedPatchKeys = []string{"_id", "id", "user", "user_id", "invoiceNumber"}

// ApplyPatch merges a partial-invoice document (keyed by the legacy wire
// field names) onto the invoice. Unknown keys are ignored; identity and
// ownership keys are never overwritten.
func (inv *Invoice) ApplyPatch(patch map[string]interface{}) error {
	for _, k := range protectedPatchKeys {
		delete(patch, k)
	}
	raw, err := json.Marshal(patch)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, inv)
}

// TotalAmount sums the line-item amounts.
func (inv *Invoice) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range inv.Items {
		total = total.Add(item.Amount)
	}
	return total
}

// BeforeCreate generates a UUID before creating a new invoice
func (inv *Invoice) BeforeCreate(tx *gorm.DB) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}
