package models

import "time"

// StoredFile - запись о бинарном файле, выгруженном в контентное хранилище
// (логотип компании и т.п.).
type StoredFile struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// EmailMessage - сообщение для очереди исходящей почты.
type EmailMessage struct {
	From    string `json:"from" validate:"required,email"`
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Text    string `json:"text" validate:"required"`
}
