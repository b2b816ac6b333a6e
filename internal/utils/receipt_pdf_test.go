package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptURLCarriesNoCredentials(t *testing.T) {
	t.Setenv("FRONTEND_URL", "http://localhost:3000")

	url := receiptURL(42)

	assert.Equal(t, "http://localhost:3000/dashboard/ordenes/42?print=1", url)
	assert.NotContains(t, url, "token")
}

func TestGeneratePaymentQR(t *testing.T) {
	png, err := GeneratePaymentQR("PAGO-42-9", 280000)
	require.NoError(t, err)

	// Firma PNG
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestFormatCOP(t *testing.T) {
	assert.Equal(t, "0", FormatCOP(0))
	assert.Equal(t, "950", FormatCOP(950))
	assert.Equal(t, "89.900", FormatCOP(89900))
	assert.Equal(t, "1.250.000", FormatCOP(1250000))
	assert.Equal(t, "-89.900", FormatCOP(-89900))
}
