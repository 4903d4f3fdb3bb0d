// Package deliverynote содержит бизнес-логику накладных: создание, списки,
// процесс подписания с рендерингом PDF и контроль неизменяемости после
// подписи.
package deliverynote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/albaranes-app/delivery-notes/internal/contentstore"
	"github.com/albaranes-app/delivery-notes/internal/lib/sl"
	"github.com/albaranes-app/delivery-notes/internal/models"
	"github.com/albaranes-app/delivery-notes/internal/pdf"
)

// NoteRepository определяет методы для работы с накладными в хранилище.
type NoteRepository interface {
	// CreateDeliveryNote сохраняет новую накладную и возвращает её ID.
	CreateDeliveryNote(ctx context.Context, n models.DeliveryNote) (string, error)
	// ListDeliveryNotes возвращает накладные владельца, signedOnly оставляет
	// только подписанные.
	ListDeliveryNotes(ctx context.Context, userID string, signedOnly bool) ([]*models.DeliveryNote, error)
	// GetDeliveryNote возвращает накладную по ID или models.ErrNotFound.
	GetDeliveryNote(ctx context.Context, id string) (*models.DeliveryNote, error)
	// MarkDeliveryNoteSigned снимает pending одним условным UPDATE,
	// false означает проигрыш конкурирующему подписанию.
	MarkDeliveryNoteSigned(ctx context.Context, id, signURL, pdfURL string) (bool, error)
	// DeleteDeliveryNote удаляет накладную безвозвратно.
	DeleteDeliveryNote(ctx context.Context, id string) error
}

// RelatedRepository - чтение связанных сущностей для полей PDF и счётчиков.
type RelatedRepository interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetClientByID(ctx context.Context, id string) (*models.Client, error)
	GetProjectByID(ctx context.Context, id string) (*models.Project, error)
	AdjustClientCounters(ctx context.Context, id string, activeProjects, pendingNotes, archivedProjects int) error
}

// Service реализует бизнес-логику накладных.
type Service struct {
	notes    NoteRepository
	related  RelatedRepository
	store    contentstore.Uploader
	renderer *pdf.Renderer
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(notes NoteRepository, related RelatedRepository, store contentstore.Uploader, renderer *pdf.Renderer, log *slog.Logger) *Service {
	return &Service{
		notes:    notes,
		related:  related,
		store:    store,
		renderer: renderer,
		log:      log,
	}
}

// Create создает накладную в состоянии pending. Payload обязан
// соответствовать формату: material требует непустой перечень материалов,
// hours - непустой список работников. Позже соответствие не перепроверяется.
func (s *Service) Create(ctx context.Context, userID string, in models.DeliveryNoteInput) (*models.DeliveryNote, error) {
	const op = "services.deliverynote.Create"

	switch in.Format {
	case models.FormatMaterial:
		if len(in.Materials) == 0 {
			return nil, models.ErrInvalidPayload
		}
	case models.FormatHours:
		if len(in.Workers) == 0 {
			return nil, models.ErrInvalidPayload
		}
	default:
		return nil, models.ErrInvalidPayload
	}

	if _, err := s.related.GetClientByID(ctx, in.ClientID); err != nil {
		return nil, err
	}
	if _, err := s.related.GetProjectByID(ctx, in.ProjectID); err != nil {
		return nil, err
	}

	n := models.DeliveryNote{
		UserID:      userID,
		ClientID:    in.ClientID,
		ProjectID:   in.ProjectID,
		Format:      in.Format,
		Materials:   in.Materials,
		Workers:     in.Workers,
		Description: in.Description,
		WorkDate:    in.WorkDate,
	}
	id, err := s.notes.CreateDeliveryNote(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.related.AdjustClientCounters(ctx, in.ClientID, 0, 1, 0); err != nil {
		s.log.Warn("failed to adjust client counters", sl.Err(err))
	}
	return s.notes.GetDeliveryNote(ctx, id)
}

// List возвращает накладные владельца; signedOnly оставляет подписанные.
func (s *Service) List(ctx context.Context, userID string, signedOnly bool) ([]*models.DeliveryNote, error) {
	return s.notes.ListDeliveryNotes(ctx, userID, signedOnly)
}

// Read возвращает накладную по ID.
func (s *Service) Read(ctx context.Context, id string) (*models.DeliveryNote, error) {
	return s.notes.GetDeliveryNote(ctx, id)
}

// Sign подписывает накладную: выгружает изображение подписи, собирает данные
// связанных сущностей, рендерит PDF, выгружает его и условным UPDATE снимает
// pending. При гонке побеждает ровно один запрос, проигравший получает
// models.ErrAlreadySigned. Осиротевшие объекты в хранилище при проигрыше
// не удаляются: ключи контент-адресуемые и безвредны.
func (s *Service) Sign(ctx context.Context, id string, signature []byte, filename string) (*models.DeliveryNote, error) {
	const op = "services.deliverynote.Sign"

	note, err := s.notes.GetDeliveryNote(ctx, id)
	if err != nil {
		return nil, err
	}
	if !note.Pending {
		return nil, models.ErrAlreadySigned
	}

	_, signURL, err := s.store.Upload(ctx, signature, filename)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	doc := s.buildDocument(ctx, note)
	pdfBytes, err := s.renderer.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	_, pdfURL, err := s.store.Upload(ctx, pdfBytes, fmt.Sprintf("deliverynote-%s.pdf", note.ID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	won, err := s.notes.MarkDeliveryNoteSigned(ctx, id, signURL, pdfURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !won {
		return nil, models.ErrAlreadySigned
	}
	if err := s.related.AdjustClientCounters(ctx, note.ClientID, 0, -1, 0); err != nil {
		s.log.Warn("failed to adjust client counters", sl.Err(err))
	}

	note.Pending = false
	note.SignURL = signURL
	note.PDFURL = pdfURL
	return note, nil
}

// buildDocument собирает данные для PDF. Отказ чтения связанной сущности
// не прерывает подписание, поле остаётся пустым и рендерится как
// "Not available".
func (s *Service) buildDocument(ctx context.Context, note *models.DeliveryNote) pdf.NoteDocument {
	doc := pdf.NoteDocument{
		Description: note.Description,
		Format:      note.Format,
		WorkDate:    note.WorkDate,
		Materials:   note.Materials,
		Workers:     note.Workers,
	}
	if owner, err := s.related.GetUser(ctx, note.UserID); err == nil {
		doc.UserEmail = owner.Email
	} else {
		s.log.Warn("note owner unavailable for pdf", sl.Err(err))
	}
	if c, err := s.related.GetClientByID(ctx, note.ClientID); err == nil {
		doc.ClientName = c.Name
	} else {
		s.log.Warn("note client unavailable for pdf", sl.Err(err))
	}
	if p, err := s.related.GetProjectByID(ctx, note.ProjectID); err == nil {
		doc.ProjectName = p.Name
	} else {
		s.log.Warn("note project unavailable for pdf", sl.Err(err))
	}
	return doc
}

// StreamPDF возвращает поток PDF подписанной накладной. Доступ имеют
// владелец накладной и гостевая роль.
func (s *Service) StreamPDF(ctx context.Context, id, callerID, callerRole string) (io.ReadCloser, string, error) {
	const op = "services.deliverynote.StreamPDF"

	note, err := s.notes.GetDeliveryNote(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if note.PDFURL == "" {
		return nil, "", models.ErrNotFound
	}
	if note.UserID != callerID && callerRole != models.RoleGuest {
		return nil, "", models.ErrForbidden
	}

	body, contentType, err := s.store.Fetch(ctx, s.store.KeyFromURL(note.PDFURL))
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return body, contentType, nil
}

// Delete удаляет накладную. Подписанная накладная неизменяема и не удаляется.
func (s *Service) Delete(ctx context.Context, id string) error {
	const op = "services.deliverynote.Delete"

	note, err := s.notes.GetDeliveryNote(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if !note.Pending {
		return models.ErrSignedImmutable
	}
	if err := s.notes.DeleteDeliveryNote(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.related.AdjustClientCounters(ctx, note.ClientID, 0, -1, 0); err != nil {
		s.log.Warn("failed to adjust client counters", sl.Err(err))
	}
	return nil
}
