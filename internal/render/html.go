package render

import (
	"fmt"
	"html/template"
	"io"
)

var invoiceTemplate = template.Must(template.New("invoice").Parse(invoiceHTML))

// WriteHTML writes doc as a standalone HTML page. All text goes through
// html/template's contextual escaping.
func WriteHTML(w io.Writer, doc *Document) error {
	if err := invoiceTemplate.Execute(w, doc); err != nil {
		return fmt.Errorf("failed to render invoice html: %w", err)
	}
	return nil
}

const invoiceHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}} {{.Number}}</title>
<style>
  body { margin: 0; background: #fff; }
  .invoice-pdf { width: {{.Page.WidthPx}}px; min-height: {{.Page.MinHeightPx}}px; padding: {{.Page.PaddingPx}}px; box-sizing: border-box; color: #333; font-family: Helvetica, Arial, sans-serif; font-size: 14px; }
  .invoice-header { display: flex; justify-content: space-between; align-items: flex-start; margin-bottom: 32px; }
  .invoice-title { font-size: 32px; font-weight: bold; letter-spacing: 2px; }
  .invoice-meta { text-align: right; line-height: 1.6; }
  .invoice-addresses { display: flex; justify-content: space-between; margin-bottom: 24px; }
  .invoice-addresses > div { width: 48%; line-height: 1.5; }
  .address-label { font-weight: bold; text-transform: uppercase; font-size: 12px; color: #777; }
  .address-name { font-weight: bold; }
  .invoice-case-info { margin-bottom: 24px; }
  table { width: 100%; border-collapse: collapse; }
  th { text-align: left; border-bottom: 2px solid #333; padding: 6px 0; }
  td { border-bottom: 1px solid #ddd; padding: 6px 0; }
  .col-total { text-align: right; }
  .invoice-total { text-align: right; margin-top: 16px; font-size: 16px; }
  .total-amount { font-weight: bold; margin-left: 12px; }
  .invoice-payment { margin-top: 24px; }
</style>
</head>
<body>
<div class="invoice-pdf">
  <div class="invoice-header">
    <div class="invoice-title">{{.Title}}</div>
    <div class="invoice-meta">
      <div><strong>Invoice #:</strong> <span>{{.Number}}</span></div>
      <div><strong>Date:</strong> <span>{{.DateText}}</span></div>
    </div>
  </div>
  <div class="invoice-addresses">
    {{template "address" .From}}
    {{template "address" .To}}
  </div>
  {{- if .CaseInfo}}
  <div class="invoice-case-info"><strong>Case Information:</strong> {{range $i, $l := .CaseInfo}}{{if $i}}<br>{{end}}{{$l}}{{end}}</div>
  {{- end}}
  <table class="invoice-items-table">
    <thead><tr><th class="col-desc">Description</th><th class="col-total">Total</th></tr></thead>
    <tbody>
    {{- range .Rows}}
      <tr><td>{{.Description}}</td><td class="col-total">{{.TotalText}}</td></tr>
    {{- end}}
    </tbody>
  </table>
  <div class="invoice-footer">
    <div class="invoice-total"><span class="total-label">Balance Due:</span><span class="total-amount">{{.TotalText}}</span></div>
    <div class="invoice-payment"><strong>Payment Instructions:</strong> {{.PaymentInstructions}}</div>
  </div>
</div>
</body>
</html>
{{define "address"}}<div>
      <div class="address-label">{{.Label}}</div>
      <div class="address-name">{{.Name}}</div>
      {{- if .Company}}
      <div class="address-company">{{.Company}}</div>
      {{- end}}
      <div class="address-details">{{range $i, $l := .Lines}}{{if $i}}<br>{{end}}{{$l}}{{end}}</div>
      {{- if .HasContact}}
      <div class="address-contact">
        {{- if .Phone}}<div>Phone: {{.Phone}}</div>{{end}}
        {{- if .Email}}<div>Email: {{.Email}}</div>{{end}}
      </div>
      {{- end}}
    </div>{{end}}`
