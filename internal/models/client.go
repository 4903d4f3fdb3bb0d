package models

import "time"

// Address - почтовый адрес клиента или проекта, хранится вложенными
// колонками, отдельной сущности нет.
type Address struct {
	Street   string `json:"street" validate:"required"`
	Number   int    `json:"number" validate:"required,gt=0"`
	Postal   int    `json:"postal" validate:"required"`
	City     string `json:"city" validate:"required"`
	Province string `json:"province" validate:"required"`
}

// Client представляет клиента, принадлежащего пользователю или компании.
// Счётчики проектов и накладных денормализованы и обновляются при записи
// связанных сущностей, без транзакций.
type Client struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	CIF                  string    `json:"cif"`
	Address              Address   `json:"address"`
	LogoURL              string    `json:"logoUrl,omitempty"`
	UserID               string    `json:"userId"`              // Владелец
	CompanyID            string    `json:"companyId,omitempty"` // Пустой, если клиент личный
	Archived             bool      `json:"archived"`
	ActiveProjects       int       `json:"activeProjects"`
	PendingDeliveryNotes int       `json:"pendingDeliveryNotes"`
	ArchivedProjects     int       `json:"archivedProjects"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// ClientInput используется для приёма данных клиента из JSON-запроса.
type ClientInput struct {
	Name    string  `json:"name" validate:"required"`
	CIF     string  `json:"cif" validate:"required"`
	Address Address `json:"address" validate:"required"`
}
