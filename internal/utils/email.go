package utils

import (
	"bytes"
	"fmt"
	"strings"

	"freshmarket_back_end/internal/config"
	"freshmarket_back_end/internal/models"
	"freshmarket_back_end/internal/pricing"

	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"
)

// Mailer sends transactional mail over SMTP. A zero-host mailer is a
// no-op so checkout keeps working on boxes without SMTP credentials.
type Mailer struct {
	cfg config.SMTP
}

func NewMailer(cfg config.SMTP) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) Send(to, subject, htmlBody string, attachment []byte, attachmentName string) error {
	if m == nil || m.cfg.Host == "" {
		log.Debug().Str("to", to).Str("subject", subject).Msg("smtp not configured, mail skipped")
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if attachment != nil {
		msg.AttachReader(attachmentName, bytes.NewReader(attachment))
	}

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Info().Str("to", to).Str("subject", subject).Msg("sending mail")
	return client.DialAndSend(msg)
}

// OrderConfirmationHTML builds the order confirmation body.
func OrderConfirmationHTML(order *models.Order) string {
	var rows strings.Builder
	for _, l := range order.Lines {
		fmt.Fprintf(&rows, `
			<tr>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%d</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td>
			</tr>`,
			l.ProductName, l.Quantity,
			pricing.FormatCents(l.UnitPriceCents),
			pricing.FormatCents(l.UnitPriceCents*int64(l.Quantity)))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Order confirmed</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f4f8f4; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #2e7d32;">Thanks for your FreshMarket order!</h2>
		<p>Order <strong>%s</strong> is confirmed and paid.</p>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Product</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Qty</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Unit price</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
		</table>
		<p>Subtotal: %s<br>Tax: %s<br>Shipping: %s<br><strong>Total: %s</strong></p>
		<p style="color: #777;">Show the pickup code from your order page when collecting.</p>
	</div>
</body>
</html>`,
		order.Number, rows.String(),
		pricing.FormatCents(order.SubtotalCents),
		pricing.FormatCents(order.TaxCents),
		pricing.FormatCents(order.ShippingCents),
		pricing.FormatCents(order.TotalCents))
}

// VerificationEmailHTML builds the address-verification body.
func VerificationEmailHTML(link string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Verify your email</title></head>
<body style="font-family: Arial, sans-serif; padding: 20px;">
	<div style="max-width: 600px; margin: auto;">
		<h2>Welcome to FreshMarket</h2>
		<p>Confirm your email address to finish setting up your account:</p>
		<p><a href="%s" style="background: #2e7d32; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">Verify email</a></p>
		<p style="color: #777;">The link expires in 24 hours. If you didn't sign up, ignore this message.</p>
	</div>
</body>
</html>`, link)
}
