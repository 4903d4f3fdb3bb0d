// Package models содержит доменные структуры сервиса: пользователей,
// клиентов, проекты и накладные, а также вспомогательные типы для приёма
// данных из JSON-запросов.
package models

import "time"

// Статусы учётной записи пользователя.
const (
	StatusPending  = "pending"
	StatusVerified = "verified"
	StatusInactive = "inactive"
)

// Роли пользователя. RoleGuest даёт доступ к чужим накладным на чтение PDF.
const (
	RoleUser  = "user"
	RoleGuest = "guest"
)

// Persona - личные данные пользователя, вложенная структура без
// собственного жизненного цикла.
type Persona struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	NIF     string `json:"nif"`
}

// Company - данные компании пользователя.
type Company struct {
	CompanyName string `json:"company_name"`
	CIF         string `json:"cif"`
	Address     string `json:"address"`
	Number      int    `json:"number"`
	Postal      int    `json:"postal"`
	City        string `json:"city"`
	Province    string `json:"province"`
}

// User представляет зарегистрированного пользователя системы.
// Хэш пароля и код подтверждения наружу не сериализуются.
type User struct {
	ID                   string    `json:"id"`     // Уникальный идентификатор (uuid)
	Email                string    `json:"email"`  // Электронная почта (уникальная)
	PasswordHash         string    `json:"-"`      // bcrypt-хэш пароля
	Status               string    `json:"status"` // pending | verified | inactive
	Role                 string    `json:"role"`   // Роль пользователя
	VerificationCode     string    `json:"-"`      // 6-значный код подтверждения почты
	VerificationAttempts int       `json:"-"`      // Оставшиеся попытки ввода кода
	IsAutonomous         bool      `json:"isAutonomous"` // Самозанятый: данные компании берутся из persona
	CompanyID            string    `json:"companyId,omitempty"`
	Persona              Persona   `json:"persona"`
	Company              Company   `json:"company"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}
