// Package render turns an invoice record into the printable HTML document
// that the PDF pipeline consumes.
package render

import (
	"bytes"
	"html/template"

	"github.com/dealerdesk/dealerdesk-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// InvoiceRenderer renders invoices to self-contained A4 markup.
type InvoiceRenderer struct {
	tmpl *template.Template
}

// NewInvoiceRenderer parses the built-in invoice template.
func NewInvoiceRenderer() (*InvoiceRenderer, error) {
	tmpl, err := template.New("invoice").Parse(invoiceTemplate)
	if err != nil {
		return nil, err
	}
	return &InvoiceRenderer{tmpl: tmpl}, nil
}

type invoiceView struct {
	Invoice *entity.Invoice
	Owner   *entity.User
	Total   decimal.Decimal
}

// Render produces the markup for one invoice. Owner may be nil; the
// letterhead block is skipped in that case.
func (r *InvoiceRenderer) Render(invoice *entity.Invoice, owner *entity.User) (string, error) {
	var buf bytes.Buffer
	err := r.tmpl.Execute(&buf, invoiceView{
		Invoice: invoice,
		Owner:   owner,
		Total:   invoice.TotalAmount(),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; color: #111; margin: 24px; }
  h1 { font-size: 20px; margin: 0 0 2px 0; }
  .letterhead { border-bottom: 2px solid #111; padding-bottom: 8px; margin-bottom: 16px; }
  .letterhead p { margin: 1px 0; color: #444; }
  .meta { display: flex; justify-content: space-between; margin-bottom: 16px; }
  table { width: 100%; border-collapse: collapse; margin-bottom: 16px; }
  th, td { border: 1px solid #999; padding: 4px 6px; text-align: left; vertical-align: top; }
  th { background: #eee; }
  .attrs { font-size: 10px; color: #333; }
  .attrs span { display: inline-block; margin-right: 10px; }
  .total { text-align: right; font-size: 14px; font-weight: bold; }
  .note { margin-top: 24px; font-size: 10px; color: #555; }
</style>
</head>
<body>
{{- with .Owner}}
<div class="letterhead">
  <h1>{{if .StoreName}}{{.StoreName}}{{else}}{{.FirstName}} {{.LastName}}{{end}}</h1>
  {{if .StoreAddress}}<p>{{.StoreAddress}}</p>{{end}}
  {{if .StorePhone}}<p>Phone: {{.StorePhone}}</p>{{end}}
  {{if .StoreEmail}}<p>Email: {{.StoreEmail}}</p>{{end}}
</div>
{{- end}}

<div class="meta">
  <div>
    <p><strong>Buyer:</strong> {{.Invoice.NameOfBuyer}}</p>
    <p><strong>Address:</strong> {{.Invoice.AddressOfBuyer}}</p>
    <p><strong>Mobile:</strong> {{.Invoice.MobileNoOfBuyer}}</p>
    {{if .Invoice.Hypothecation}}<p><strong>Hypothecation:</strong> {{.Invoice.Hypothecation}}</p>{{end}}
  </div>
  <div>
    <p><strong>Invoice No:</strong> {{.Invoice.InvoiceNumber}}</p>
    <p><strong>Date:</strong> {{.Invoice.CreatedAt.Format "02 Jan 2006"}}</p>
  </div>
</div>

<table>
  <tr>
    <th>#</th>
    <th>Vehicle</th>
    <th>Qty</th>
    <th>Amount</th>
  </tr>
  {{- range .Invoice.Items}}
  <tr>
    <td>{{.SerialNumber}}</td>
    <td>
      <strong>{{.ItemName}}</strong>
      <div class="attrs">
        {{if .ClassOfVehicle}}<span>Class: {{.ClassOfVehicle}}</span>{{end}}
        {{if .MakersName}}<span>Maker: {{.MakersName}}</span>{{end}}
        {{if .ChassisNo}}<span>Chassis No: {{.ChassisNo}}</span>{{end}}
        {{if .EngineNumber}}<span>Engine No: {{.EngineNumber}}</span>{{end}}
        {{if .HorsePower}}<span>Power: {{.HorsePower}}</span>{{end}}
        {{if .FuelUsed}}<span>Fuel: {{.FuelUsed}}</span>{{end}}
        {{if .NumberOfBatteries}}<span>Batteries: {{.NumberOfBatteries}}</span>{{end}}
        {{if .YearOfManufacture}}<span>Year: {{.YearOfManufacture}}</span>{{end}}
        {{if .SeatingCapacity}}<span>Seating: {{.SeatingCapacity}}</span>{{end}}
        {{if .BodyColor}}<span>Color: {{.BodyColor}}</span>{{end}}
        {{if .TypeOfBody}}<span>Body: {{.TypeOfBody}}</span>{{end}}
        {{if .UnladenWeight}}<span>Unladen Wt: {{.UnladenWeight}} kg</span>{{end}}
        {{if .GrossVehicleWeight}}<span>Gross Wt: {{.GrossVehicleWeight}} kg</span>{{end}}
        {{if .BharatStage}}<span>Bharat Stage: {{.BharatStage}}</span>{{end}}
        {{if .TradeCertificateNumber}}<span>Trade Cert: {{.TradeCertificateNumber}}</span>{{end}}
        {{if .HirePurchaseWith}}<span>Hire/Lease/Hyp.: {{.HirePurchaseWith}}</span>{{end}}
        <span>Axle Wt (F/R/O/T): {{.MaxAxleWeight.FrontAxle}}/{{.MaxAxleWeight.RearAxle}}/{{.MaxAxleWeight.AnyOtherAxle}}/{{.MaxAxleWeight.TandemAxle}}</span>
      </div>
    </td>
    <td>{{.Quantity}}</td>
    <td>{{.Amount}}</td>
  </tr>
  {{- end}}
</table>

<p class="total">Total: {{.Total}}</p>

{{if .Invoice.Description}}<p class="note">{{.Invoice.Description}}</p>{{end}}
</body>
</html>`
