package models

import "time"

type ServiceType string

const (
	ServiceTypeProduct ServiceType = "PRODUCT"
	ServiceTypeService ServiceType = "SERVICE"
)

// Service es un servicio del catálogo del marketplace (propiedad del backend)
type Service struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       int64       `json:"price"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	Type        ServiceType `json:"type"`
	Available   bool        `json:"available"`
	CategoryID  int         `json:"categoryId"`
	AllianceID  *int        `json:"allianceId,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
