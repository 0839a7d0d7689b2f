package utils

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"freshmarket_back_end/internal/models"
	"freshmarket_back_end/internal/pricing"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	qrcode "github.com/skip2/go-qrcode"
)

// InvoiceHTML renders a printable invoice for an order.
func InvoiceHTML(order *models.Order, buyer *models.User) string {
	var rows strings.Builder
	for _, l := range order.Lines {
		fmt.Fprintf(&rows, `
			<tr>
				<td>%s</td><td>%d</td><td>%s</td><td>%s</td>
			</tr>`,
			l.ProductName, l.Quantity,
			pricing.FormatCents(l.UnitPriceCents),
			pricing.FormatCents(l.UnitPriceCents*int64(l.Quantity)))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Invoice %s</title>
<style>
	body { font-family: Arial, sans-serif; margin: 40px; color: #222; }
	h1 { color: #2e7d32; }
	table { width: 100%%; border-collapse: collapse; margin: 24px 0; }
	th, td { border: 1px solid #ccc; padding: 8px; text-align: left; }
	th { background: #f0f0f0; }
	.totals { text-align: right; }
</style>
</head>
<body>
	<h1>FreshMarket</h1>
	<p><strong>Invoice %s</strong><br>Date: %s<br>Billed to: %s &lt;%s&gt;</p>
	<table>
		<thead><tr><th>Product</th><th>Qty</th><th>Unit price</th><th>Total</th></tr></thead>
		<tbody>%s</tbody>
	</table>
	<p class="totals">
		Subtotal: %s<br>
		Tax (8%%): %s<br>
		Shipping: %s<br>
		<strong>Total: %s</strong><br>
		Payment: %s (%s)
	</p>
</body>
</html>`,
		order.Number, order.Number,
		order.CreatedAt.Format("January 2, 2006"),
		buyer.Name, buyer.Email,
		rows.String(),
		pricing.FormatCents(order.SubtotalCents),
		pricing.FormatCents(order.TaxCents),
		pricing.FormatCents(order.ShippingCents),
		pricing.FormatCents(order.TotalCents),
		order.PaymentStatus, order.PaymentRef)
}

// RenderPDF prints an HTML document to PDF through headless Chrome.
func RenderPDF(parent context.Context, html string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(parent)
	defer cancel()

	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	dataURL := "data:text/html," + url.PathEscape(html)

	var pdf []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate(dataURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdf, nil
}

// PickupQR encodes an order's pickup payload as a PNG QR code.
func PickupQR(orderNumber string) ([]byte, error) {
	return qrcode.Encode("freshmarket:order:"+orderNumber, qrcode.Medium, 256)
}
