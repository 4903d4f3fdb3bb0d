package models

import "time"

// Форматы накладной: перечень материалов либо отработанные часы.
const (
	FormatMaterial = "material"
	FormatHours    = "hours"
)

// Worker - строка "работник/часы" в накладной формата hours.
type Worker struct {
	Name  string  `json:"name" validate:"required"`
	Hours float64 `json:"hours" validate:"required,gt=0"`
}

// DeliveryNote представляет накладную. Создаётся с pending=true и ровно один
// раз переходит в подписанное состояние, после чего неизменяема.
type DeliveryNote struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	ClientID    string    `json:"clientId"`
	ProjectID   string    `json:"projectId"`
	Format      string    `json:"format"` // material | hours
	Materials   []string  `json:"material"`
	Workers     []Worker  `json:"workers"`
	Description string    `json:"description,omitempty"`
	WorkDate    string    `json:"workdate,omitempty"`
	Pending     bool      `json:"pending"`
	SignURL     string    `json:"signUrl,omitempty"`
	PDFURL      string    `json:"pdfUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DeliveryNoteInput используется для приёма данных накладной из JSON-запроса.
// Соответствие payload и format проверяется бизнес-логикой при создании,
// позже не перепроверяется: накладные не редактируются.
type DeliveryNoteInput struct {
	ClientID    string   `json:"clientId" validate:"required,uuid"`
	ProjectID   string   `json:"projectId" validate:"required,uuid"`
	Format      string   `json:"format" validate:"required,oneof=material hours"`
	Materials   []string `json:"material"`
	Workers     []Worker `json:"workers" validate:"omitempty,dive"`
	Description string   `json:"description"`
	WorkDate    string   `json:"workdate"`
}
