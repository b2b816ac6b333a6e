package utils

import (
	"bytes"
	"fmt"
	"log"
	"strconv"

	"github.com/wneessen/go-mail"

	"servimarket_bff/internal/config"
	"servimarket_bff/internal/models"
)

// SendConfirmationEmail envía la confirmación de compra con el recibo PDF
// adjunto cuando está disponible
func SendConfirmationEmail(to, subject, htmlBody string, pdfAttachment []byte) error {
	msg := mail.NewMsg()

	if err := msg.From(config.Get("SMTP_FROM", "noreply@servimarket.co")); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if pdfAttachment != nil {
		msg.AttachReader("recibo_servimarket.pdf", bytes.NewReader(pdfAttachment))
	}

	port, err := strconv.Atoi(config.Get("SMTP_PORT", "587"))
	if err != nil {
		port = 587
	}

	client, err := mail.NewClient(config.Get("SMTP_HOST", "localhost"),
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(config.Get("SMTP_USERNAME", "")),
		mail.WithPassword(config.Get("SMTP_PASSWORD", "")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Enviando confirmación de compra a", to)
	return client.DialAndSend(msg)
}

// GenerateOrderConfirmationHTML arma el HTML de confirmación de la orden
func GenerateOrderConfirmationHTML(order models.Order) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>$%s</td>
				<td>$%s</td>
			</tr>`, item.ServiceName, item.Quantity, FormatCOP(item.Price), FormatCOP(item.Price*int64(item.Quantity)))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="es">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Confirmación de compra</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">¡Gracias por tu compra!</h2>
		<p>Hola %s,</p>
		<p>Tu orden <strong>#%s</strong> fue confirmada con éxito.</p>

		<h3>Detalle de la orden</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Servicio</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Cantidad</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Precio unitario</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Subtotal</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right; font-weight: bold;">Total:</td>
					<td style="padding: 10px; font-weight: bold;">$%s</td>
				</tr>
			</tfoot>
		</table>

		<p style="margin-top: 30px; color: #555;">
			Cordialmente,<br>
			<strong>El equipo de ServiMarket</strong>
		</p>
	</div>
</body>
</html>`, order.UserName, order.OrderNumber, itemsHTML, FormatCOP(order.Total))
}

// FormatCOP formatea pesos colombianos con separador de miles (89900 → 89.900)
func FormatCOP(amount int64) string {
	digits := strconv.FormatInt(amount, 10)
	negative := false
	if len(digits) > 0 && digits[0] == '-' {
		negative = true
		digits = digits[1:]
	}

	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}

	if negative {
		return "-" + string(out)
	}
	return string(out)
}
