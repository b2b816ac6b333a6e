package models

import (
	"time"

	"github.com/gocql/gocql"
)

// AuditLog es una fila de la tabla audit_logs (ScyllaDB)
type AuditLog struct {
	ID         gocql.UUID
	UserID     string
	UserEmail  string
	Action     string
	Resource   string
	ResourceID string
	IPAddress  string
	UserAgent  string
	Success    bool
	ErrorMsg   string
	Timestamp  time.Time
	AttemptID  string
}
