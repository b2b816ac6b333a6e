package utils

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"servimarket_bff/internal/database"
	"servimarket_bff/internal/models"
)

// Acciones de auditoría del flujo de compra
const (
	ActionCheckoutSubmit    = "checkout.submit"
	ActionCheckoutSucceeded = "checkout.succeeded"
	ActionCheckoutPending   = "checkout.pending"
	ActionCheckoutFailed    = "checkout.failed"
	ActionOrderCreate       = "order.create"
	ActionCartClear         = "cart.clear"

	ResourceCheckout = "checkout"
	ResourceOrder    = "order"
	ResourceCart     = "cart"
)

// LogAction registra una acción del flujo de compra en la tabla audit_logs.
// Es fire-and-forget: un fallo de auditoría jamás afecta la venta.
func LogAction(c *gin.Context, action, resource, resourceID, attemptID string, success bool, errorMsg string) {
	if database.Scylla == nil {
		return
	}

	entry := models.AuditLog{
		ID:         gocql.TimeUUID(),
		UserID:     c.GetString("user_id"),
		UserEmail:  c.GetString("email"),
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.GetHeader("User-Agent"),
		Success:    success,
		ErrorMsg:   errorMsg,
		Timestamp:  time.Now(),
		AttemptID:  attemptID,
	}

	go func() {
		if err := insertAuditLog(entry); err != nil {
			log.Printf("❌ Error registrando log de auditoría: %v", err)
		}
	}()
}

func insertAuditLog(entry models.AuditLog) error {
	query := `
		INSERT INTO audit_logs (
			id, user_id, user_email, action, resource, resource_id,
			ip_address, user_agent, success, error_msg, timestamp, attempt_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	return database.Scylla.Query(query,
		entry.ID, entry.UserID, entry.UserEmail, entry.Action,
		entry.Resource, entry.ResourceID, entry.IPAddress, entry.UserAgent,
		entry.Success, entry.ErrorMsg, entry.Timestamp, entry.AttemptID,
	).Exec()
}
