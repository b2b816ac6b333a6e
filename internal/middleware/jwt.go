package middleware

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"servimarket_bff/internal/config"
)

// AuthRequired valida el bearer JWT emitido por el servicio de auth del
// marketplace (HS256, secreto compartido) y deja user_id, email, role y el
// token crudo en el contexto. Sin sesión válida no se renderiza nada
// protegido: 401 con destino de redirección.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "Token faltante")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthorized(c, "Formato de Authorization inválido")
			return
		}

		tokenString := parts[1]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("método de firma inesperado: %v", token.Header["alg"])
			}
			return config.JWTSecret(), nil
		})
		if err != nil || !token.Valid {
			log.Printf("❌ Error validando JWT: %v", err)
			unauthorized(c, "Token inválido")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			unauthorized(c, "Token inválido")
			return
		}

		if exp, ok := claims["exp"].(float64); ok {
			if time.Now().Unix() > int64(exp) {
				unauthorized(c, "Token expirado")
				return
			}
		}

		userID := claimString(claims, "user_id")
		if userID == "" {
			// Tokens viejos del auth traen solo "sub" con el email
			userID = claimString(claims, "sub")
		}
		if userID == "" {
			unauthorized(c, "Token inválido")
			return
		}

		c.Set("user_id", userID)
		c.Set("email", claimString(claims, "email"))
		c.Set("role", claimString(claims, "role"))
		c.Set("token", tokenString)

		c.Next()
	}
}

// unauthorized responde la violación de guarda: el front redirige a la
// entrada en vez de mostrar contenido protegido
func unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": msg, "redirect": "/"})
	c.Abort()
}

func claimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
