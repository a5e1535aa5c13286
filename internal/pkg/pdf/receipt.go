// internal/pkg/pdf/receipt.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/stripe/stripe-go/v80"

	"github.com/your-org/petstore-backend/internal/config"
	"github.com/your-org/petstore-backend/internal/domain/order"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// GenerateReceipt generates a PDF receipt for a completed order
func (s *Service) GenerateReceipt(ord *order.Order, session *stripe.CheckoutSession, lineItems []*stripe.LineItem) (*bytes.Buffer, error) {
	data := s.buildReceiptData(ord, session, lineItems)

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

func (s *Service) buildReceiptData(ord *order.Order, session *stripe.CheckoutSession, lineItems []*stripe.LineItem) ReceiptData {
	data := ReceiptData{
		ReceiptNumber: fmt.Sprintf("RCP-%d", ord.ID),
		ReceiptDate:   ord.CreatedAt.Format("January 2, 2006"),
		StoreName:     s.config.App.Name,
	}

	if session != nil {
		data.PaymentStatus = string(session.PaymentStatus)
		data.AmountSubtotal = formatMinorUnits(session.AmountSubtotal)
		data.AmountTotal = formatMinorUnits(session.AmountTotal)
		if session.CustomerDetails != nil {
			data.CustomerEmail = session.CustomerDetails.Email
		}
		if session.TotalDetails != nil {
			data.AmountShipping = formatMinorUnits(session.TotalDetails.AmountShipping)
			data.AmountTax = formatMinorUnits(session.TotalDetails.AmountTax)
		}
	}

	for _, li := range lineItems {
		data.Items = append(data.Items, ReceiptItem{
			Name:     li.Description,
			Quantity: li.Quantity,
			Amount:   formatMinorUnits(li.AmountTotal),
		})
	}
	return data
}

func formatMinorUnits(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}

// generateHTML generates HTML content from template
func (s *Service) generateHTML(data ReceiptData) (string, error) {
	tmpl := template.Must(template.New("receipt").Parse(receiptTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// ReceiptData represents the data passed to the receipt template
type ReceiptData struct {
	ReceiptNumber  string        `json:"receipt_number"`
	ReceiptDate    string        `json:"receipt_date"`
	StoreName      string        `json:"store_name"`
	CustomerEmail  string        `json:"customer_email"`
	PaymentStatus  string        `json:"payment_status"`
	Items          []ReceiptItem `json:"items"`
	AmountSubtotal string        `json:"amount_subtotal"`
	AmountShipping string        `json:"amount_shipping"`
	AmountTax      string        `json:"amount_tax"`
	AmountTotal    string        `json:"amount_total"`
}

// ReceiptItem is a single purchased line on the receipt
type ReceiptItem struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
	Amount   string `json:"amount"`
}

// Receipt HTML template
const receiptTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.ReceiptNumber}}</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            color: #333;
        }
        .header {
            display: flex;
            justify-content: space-between;
            margin-bottom: 30px;
            border-bottom: 2px solid #eee;
            padding-bottom: 20px;
        }
        .receipt-title {
            font-size: 28px;
            font-weight: bold;
            color: #2563eb;
            margin-bottom: 10px;
        }
        .items-table {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 30px;
        }
        .items-table th,
        .items-table td {
            border: 1px solid #ddd;
            padding: 12px 8px;
            text-align: left;
        }
        .items-table th {
            background-color: #f8f9fa;
            font-weight: bold;
        }
        .items-table .qty-col,
        .items-table .amount-col {
            text-align: right;
            width: 100px;
        }
        .totals {
            float: right;
            width: 300px;
        }
        .totals table {
            width: 100%;
            border-collapse: collapse;
        }
        .totals td {
            padding: 8px;
            border-bottom: 1px solid #eee;
        }
        .totals .label {
            text-align: right;
            font-weight: bold;
        }
        .totals .amount {
            text-align: right;
            width: 100px;
        }
        .total-row {
            font-size: 18px;
            font-weight: bold;
            border-top: 2px solid #333 !important;
        }
        .status-badge {
            display: inline-block;
            padding: 4px 8px;
            border-radius: 4px;
            font-size: 12px;
            font-weight: bold;
            text-transform: uppercase;
            background-color: #dcfce7;
            color: #166534;
        }
        .footer {
            margin-top: 50px;
            padding-top: 20px;
            border-top: 1px solid #eee;
            text-align: center;
            color: #666;
            font-size: 12px;
        }
    </style>
</head>
<body>
    <div class="header">
        <div>
            <h1>{{.StoreName}}</h1>
            {{if .CustomerEmail}}<p>Billed to: {{.CustomerEmail}}</p>{{end}}
        </div>
        <div>
            <div class="receipt-title">RECEIPT</div>
            <p><strong>Receipt #:</strong> {{.ReceiptNumber}}</p>
            <p><strong>Date:</strong> {{.ReceiptDate}}</p>
            {{if .PaymentStatus}}<p><span class="status-badge">{{.PaymentStatus}}</span></p>{{end}}
        </div>
    </div>

    <table class="items-table">
        <thead>
            <tr>
                <th>Item</th>
                <th class="qty-col">Qty</th>
                <th class="amount-col">Amount</th>
            </tr>
        </thead>
        <tbody>
            {{range .Items}}
            <tr>
                <td>{{.Name}}</td>
                <td class="qty-col">{{.Quantity}}</td>
                <td class="amount-col">{{.Amount}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <div class="totals">
        <table>
            <tr>
                <td class="label">Subtotal:</td>
                <td class="amount">{{.AmountSubtotal}}</td>
            </tr>
            {{if .AmountShipping}}
            <tr>
                <td class="label">Shipping:</td>
                <td class="amount">{{.AmountShipping}}</td>
            </tr>
            {{end}}
            {{if .AmountTax}}
            <tr>
                <td class="label">Tax:</td>
                <td class="amount">{{.AmountTax}}</td>
            </tr>
            {{end}}
            <tr class="total-row">
                <td class="label">Total:</td>
                <td class="amount">{{.AmountTotal}}</td>
            </tr>
        </table>
    </div>

    <div style="clear: both;"></div>

    <div class="footer">
        <p>Thank you for shopping with {{.StoreName}}!</p>
    </div>
</body>
</html>
`
