package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/skip2/go-qrcode"

	"servimarket_bff/internal/config"
)

// receiptURL es la vista de recibo del frontend. El bearer token nunca viaja
// en la URL (los logs de acceso y el historial de Chrome la retienen); va
// como header de la navegación.
func receiptURL(orderID int64) string {
	return fmt.Sprintf("%s/dashboard/ordenes/%d?print=1", config.FrontendURL(), orderID)
}

// RenderReceiptPDF carga la vista de recibo del frontend y la imprime a PDF
// con Chrome headless.
func RenderReceiptPDF(orderID int64, token string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdfBuf []byte
	err := chromedp.Run(ctx,
		network.Enable(),
		network.SetExtraHTTPHeaders(network.Headers{"Authorization": "Bearer " + token}),
		chromedp.Navigate(receiptURL(orderID)),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("error renderizando recibo de la orden %d: %w", orderID, err)
	}

	return pdfBuf, nil
}

// GeneratePaymentQR codifica la referencia de pago en efectivo como PNG.
// El código se presenta en puntos autorizados (Efecty, Baloto, Su Red).
func GeneratePaymentQR(reference string, amount int64) ([]byte, error) {
	payload := fmt.Sprintf("SERVIMARKET\nPAGO\n%s\nCOP%d", reference, amount)
	return qrcode.Encode(payload, qrcode.Medium, 256)
}
