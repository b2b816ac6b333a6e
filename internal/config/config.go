package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  No se encontró archivo .env, se usan las variables de entorno del sistema")
	} else {
		log.Println("✅ Archivo .env cargado")
	}
}

// Get devuelve una variable de entorno con valor por defecto
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetDuration lee una duración en milisegundos desde el entorno
func GetDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms < 0 {
		log.Printf("⚠️  Valor inválido para %s: %q, se usa el valor por defecto", key, v)
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}

// MarketAPIURL es la URL base del backend del marketplace (órdenes, pagos, catálogo)
func MarketAPIURL() string {
	return Get("MARKET_API_URL", "http://localhost:8080")
}

// FrontendURL es la URL base del frontend (usada para renderizar recibos en PDF)
func FrontendURL() string {
	return Get("FRONTEND_URL", "http://localhost:3000")
}

func JWTSecret() []byte {
	return []byte(Get("JWT_SECRET", "super_secret"))
}

// HTTPTimeout es el timeout por petición hacia el backend
func HTTPTimeout() time.Duration {
	return GetDuration("UPSTREAM_TIMEOUT_MS", 5*time.Second)
}

// Delays de redirección después del pago. Son una cortesía de UX para que el
// front alcance a mostrar la confirmación, no una espera de consistencia.
func SuccessRedirectDelay() time.Duration {
	return GetDuration("CHECKOUT_REDIRECT_DELAY_MS", 1500*time.Millisecond)
}

func PendingRedirectDelay() time.Duration {
	return GetDuration("CHECKOUT_PENDING_REDIRECT_DELAY_MS", 2000*time.Millisecond)
}
