package models

import "time"

// Project представляет проект, привязанный к клиенту.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ProjectCode string    `json:"projectCode"`
	Code        string    `json:"code"` // Внутренний код
	Email       string    `json:"email,omitempty"`
	Address     Address   `json:"address"`
	Notes       string    `json:"notes,omitempty"`
	Begin       string    `json:"begin,omitempty"`
	End         string    `json:"end,omitempty"`
	UserID      string    `json:"userId"`
	ClientID    string    `json:"clientId"`
	CompanyID   string    `json:"companyId,omitempty"`
	Archived    bool      `json:"archived"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProjectInput используется для приёма данных проекта из JSON-запроса.
type ProjectInput struct {
	Name        string  `json:"name" validate:"required"`
	ProjectCode string  `json:"projectCode" validate:"required"`
	Code        string  `json:"code" validate:"required"`
	Email       string  `json:"email" validate:"omitempty,email"`
	ClientID    string  `json:"clientId" validate:"required,uuid"`
	Address     Address `json:"address" validate:"required"`
	Notes       string  `json:"notes"`
	Begin       string  `json:"begin"`
	End         string  `json:"end"`
}
