package models

import "errors"

// Единая таксономия доменных ошибок. Сервисы возвращают эти значения
// (возможно обёрнутыми через %w), HTTP-слой отображает их в статусы в одном
// месте - response.Write.
var (
	// ErrNotFound - сущность не найдена или недоступна вызывающему.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken - email уже занят при регистрации.
	ErrEmailTaken = errors.New("email is already in use")
	// ErrDuplicate - дубликат (name, owner, archived=false).
	ErrDuplicate = errors.New("already exists")
	// ErrInvalidCredentials - неизвестный email или неверный пароль.
	ErrInvalidCredentials = errors.New("incorrect credentials")
	// ErrInvalidCode - код подтверждения не совпал.
	ErrInvalidCode = errors.New("incorrect validation code")
	// ErrAttemptsExhausted - попытки ввода кода исчерпаны.
	ErrAttemptsExhausted = errors.New("verification attempts exhausted")
	// ErrAlreadySigned - накладная уже подписана.
	ErrAlreadySigned = errors.New("already signed")
	// ErrSignedImmutable - подписанную накладную нельзя удалить.
	ErrSignedImmutable = errors.New("signed delivery note cannot be deleted")
	// ErrForbidden - вызывающему не хватает прав на операцию.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidPayload - payload накладной не соответствует её формату.
	ErrInvalidPayload = errors.New("payload does not match format")
)
