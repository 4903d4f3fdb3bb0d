// Package pdf рендерит документ накладной в PDF.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/albaranes-app/delivery-notes/internal/models"
)

// NotAvailable подставляется вместо отсутствующих данных связанных сущностей:
// рендеринг не падает из-за удалённого клиента или проекта.
const NotAvailable = "Not available"

// NoteDocument - плоские данные накладной для рендеринга.
type NoteDocument struct {
	UserEmail   string
	ClientName  string
	ProjectName string
	Description string
	Format      string
	WorkDate    string
	Materials   []string
	Workers     []models.Worker
}

// Renderer создаёт PDF-документы накладных.
type Renderer struct{}

// NewRenderer возвращает Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render возвращает байты PDF-документа накладной. Раскладка строк
// фиксирована: заголовок, атрибуты, строка "Signed: Yes" и нумерованный
// перечень материалов либо работников с часами.
func (r *Renderer) Render(doc NoteDocument) ([]byte, error) {
	const op = "pdf.Render"

	p := fpdf.New("P", "mm", "A4", "")
	p.AddPage()

	// Базовые шрифты кодируются в cp1252, текст нужно перекодировать из UTF-8.
	tr := p.UnicodeTranslatorFromDescriptor("")

	p.SetFont("Helvetica", "B", 16)
	p.CellFormat(0, 10, "DELIVERY NOTE", "", 1, "C", false, 0, "")
	p.Ln(4)

	p.SetFont("Helvetica", "", 12)
	line := func(s string) {
		p.CellFormat(0, 7, tr(s), "", 1, "L", false, 0, "")
	}

	line("User: " + orNotAvailable(doc.UserEmail))
	line("Client: " + orNotAvailable(doc.ClientName))
	line("Project: " + orNotAvailable(doc.ProjectName))
	line("Description: " + doc.Description)
	line("Format: " + doc.Format)
	line("Work date: " + orNotAvailable(doc.WorkDate))
	line("Signed: Yes")

	switch doc.Format {
	case models.FormatMaterial:
		line("Materials:")
		for i, mat := range doc.Materials {
			line(fmt.Sprintf("  %d. %s", i+1, mat))
		}
	case models.FormatHours:
		line("Workers (hours)")
		for i, w := range doc.Workers {
			line(fmt.Sprintf("  %d. %s → %v hours", i+1, w.Name, w.Hours))
		}
	}

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return buf.Bytes(), nil
}

func orNotAvailable(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}
