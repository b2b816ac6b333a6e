package checkout

import (
	"regexp"
	"strings"

	"servimarket_bff/internal/models"
)

var expirationPattern = regexp.MustCompile(`^\d{2}/\d{2}$`)

// Mensajes de validación que ve el usuario
const (
	MsgCardFieldsMissing = "Por favor completa todos los campos de la tarjeta"
	MsgCardNumberInvalid = "Número de tarjeta inválido"
	MsgExpirationInvalid = "Fecha de expiración inválida (formato MM/AA)"
	MsgCVVInvalid        = "CVV inválido"
)

// ValidateCard valida localmente los datos de tarjeta antes de tocar la red.
// Devuelve errores por campo; mapa vacío significa válido. PSE y efectivo no
// exigen tarjeta.
func ValidateCard(method models.PaymentMethod, card models.CardDetails) map[string]string {
	errs := make(map[string]string)
	if !method.IsCard() {
		return errs
	}

	if card.Number == "" {
		errs["cardNumber"] = MsgCardFieldsMissing
	}
	if card.HolderName == "" {
		errs["cardHolderName"] = MsgCardFieldsMissing
	}
	if card.ExpirationDate == "" {
		errs["expirationDate"] = MsgCardFieldsMissing
	}
	if card.CVV == "" {
		errs["cvv"] = MsgCardFieldsMissing
	}
	if len(errs) > 0 {
		return errs
	}

	if len(strings.ReplaceAll(card.Number, " ", "")) < 13 {
		errs["cardNumber"] = MsgCardNumberInvalid
	}
	if !expirationPattern.MatchString(card.ExpirationDate) {
		errs["expirationDate"] = MsgExpirationInvalid
	}
	if len(card.CVV) < 3 || len(card.CVV) > 4 {
		errs["cvv"] = MsgCVVInvalid
	}

	return errs
}
