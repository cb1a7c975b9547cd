package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ashdowne/daybook/internal/dto"
	apperrors "github.com/ashdowne/daybook/internal/errors"
	"github.com/ashdowne/daybook/internal/model"
	"github.com/ashdowne/daybook/internal/store"
	"github.com/ashdowne/daybook/pkg/cache"
	ctxutil "github.com/ashdowne/daybook/pkg/context"
	"github.com/ashdowne/daybook/pkg/crypt"
	"github.com/ashdowne/daybook/pkg/logger"
	"github.com/google/uuid"
)

// EntryService manages journal entries and the thread lifecycle they drive:
// creating the first entry for a date creates the thread, deleting the last
// one deletes it. This is also the encryption boundary - markdown is
// encrypted before the store sees it and decrypted only into response
// projections, never back into tracked models.
type EntryService struct {
	entries  *store.Store[model.Entry]
	threads  *store.Store[model.Thread]
	journal  *store.JournalQueries
	codec    *crypt.Codec
	calendar *cache.CalendarCache
}

func NewEntryService(
	entries *store.Store[model.Entry],
	threads *store.Store[model.Thread],
	journal *store.JournalQueries,
	codec *crypt.Codec,
	calendar *cache.CalendarCache,
) *EntryService {
	return &EntryService{
		entries:  entries,
		threads:  threads,
		journal:  journal,
		codec:    codec,
		calendar: calendar,
	}
}

func (s *EntryService) decrypt(ctx context.Context, entryID uuid.UUID, ciphertext *string) (*string, error) {
	plaintext, err := s.codec.Decrypt(ciphertext)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to decrypt entry markdown").
			String("entry_id", entryID.String()).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return plaintext, nil
}

func (s *EntryService) List(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, page dto.PageQuery, sort dto.SortQuery) ([]dto.EntryResponse, int64, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "ListEntries")

	rows, total, err := s.entries.ListPaginated(ctx, ids, page.ToStore(), sort.ToStore(), ownViaThread("entries", userID))
	if err != nil {
		return nil, 0, err
	}

	out := make([]dto.EntryResponse, 0, len(rows))
	for _, row := range rows {
		plaintext, err := s.decrypt(ctx, row.ID, row.EncryptedMarkdown)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, dto.NewEntryResponse(row, plaintext))
	}
	return out, total, nil
}

func (s *EntryService) Create(ctx context.Context, userID uuid.UUID, reqs []dto.CreateEntryRequest) ([]dto.EntryResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "CreateEntries")

	threadIDs := make([]uuid.UUID, 0, len(reqs))
	for _, req := range reqs {
		threadIDs = append(threadIDs, req.ThreadID)
	}
	if _, err := requireOwnedThreads(ctx, s.threads, threadIDs, userID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entities := make([]*model.Entry, 0, len(reqs))
	plaintexts := make([]*string, 0, len(reqs))
	for _, req := range reqs {
		ciphertext, err := s.codec.Encrypt(req.RawMarkdown)
		if err != nil {
			logger.ErrorWithContext(ctx, "Failed to encrypt entry markdown").
				Err(err).
				Log()
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}

		writtenAt := now
		if req.WrittenAt != nil {
			writtenAt = req.WrittenAt.UTC()
		}
		entities = append(entities, &model.Entry{
			ThreadID:          req.ThreadID,
			EncryptedMarkdown: ciphertext,
			WrittenAt:         writtenAt,
		})
		plaintexts = append(plaintexts, req.RawMarkdown)
	}

	created, err := s.entries.Create(ctx, entities)
	if err != nil {
		return nil, err
	}
	s.calendar.InvalidateUser(ctx, userID)

	out := make([]dto.EntryResponse, 0, len(created))
	for i, row := range created {
		out = append(out, dto.NewEntryResponse(*row, plaintexts[i]))
	}
	return out, nil
}

// Patch applies partial updates to entries. The API field raw_markdown is
// translated to its encrypted column before the store sees the patch, so the
// explicit-null-clears semantic carries through to the ciphertext.
func (s *EntryService) Patch(ctx context.Context, userID uuid.UUID, items []map[string]any) ([]dto.EntryResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "PatchEntries")

	patches, err := dto.ParsePatchPayloads(items)
	if err != nil {
		return nil, err
	}

	entryIDs := make([]uuid.UUID, 0, len(patches))
	var targetThreadIDs []uuid.UUID
	for _, p := range patches {
		entryIDs = append(entryIDs, p.ID)

		if raw, ok := p.Changes["raw_markdown"]; ok {
			delete(p.Changes, "raw_markdown")
			if raw == nil {
				p.Changes["encrypted_markdown"] = nil
			} else {
				text, isString := raw.(string)
				if !isString {
					return nil, apperrors.Validation("raw_markdown must be a string or null")
				}
				ciphertext, err := s.codec.Encrypt(&text)
				if err != nil {
					logger.ErrorWithContext(ctx, "Failed to encrypt entry markdown").
						Err(err).
						Log()
					return nil, apperrors.WrapError(apperrors.ErrInternal, err)
				}
				p.Changes["encrypted_markdown"] = *ciphertext
			}
		}

		if raw, ok := p.Changes["thread_id"]; ok {
			target, err := uuidFromPatchValue("thread_id", raw)
			if err != nil {
				return nil, err
			}
			targetThreadIDs = append(targetThreadIDs, target)
		}
	}

	if err := s.requireOwnedEntries(ctx, entryIDs, userID); err != nil {
		return nil, err
	}
	if len(targetThreadIDs) > 0 {
		if _, err := requireOwnedThreads(ctx, s.threads, targetThreadIDs, userID); err != nil {
			return nil, err
		}
	}

	updated, err := s.entries.PatchByIDs(ctx, patches, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	s.calendar.InvalidateUser(ctx, userID)

	out := make([]dto.EntryResponse, 0, len(updated))
	for _, row := range updated {
		plaintext, err := s.decrypt(ctx, row.ID, row.EncryptedMarkdown)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.NewEntryResponse(row, plaintext))
	}
	return out, nil
}

func (s *EntryService) Delete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	ctx = ctxutil.WithOperation(ctx, "service", "DeleteEntries")

	if err := s.requireOwnedEntries(ctx, ids, userID); err != nil {
		if !apperrors.IsCode(err, apperrors.CodeNotFound) {
			return err
		}
	}

	if err := s.entries.DeleteByIDs(ctx, ids); err != nil {
		return err
	}
	s.calendar.InvalidateUser(ctx, userID)
	return nil
}

// requireOwnedEntries verifies the entries exist and their threads belong to
// userID.
func (s *EntryService) requireOwnedEntries(ctx context.Context, entryIDs []uuid.UUID, userID uuid.UUID) error {
	rows, err := s.entries.GetManyByIDs(ctx, entryIDs)
	if err != nil {
		return err
	}

	found := make(map[uuid.UUID]bool, len(rows))
	threadIDs := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		found[row.ID] = true
		threadIDs = append(threadIDs, row.ThreadID)
	}

	var missing []string
	for _, id := range entryIDs {
		if !found[id] {
			missing = append(missing, id.String())
		}
	}
	if len(missing) > 0 {
		return apperrors.NotFound(fmt.Sprintf("entries not found for ids: %v", missing))
	}

	_, err = requireOwnedThreads(ctx, s.threads, threadIDs, userID)
	return err
}

// CreateForDate creates an entry for a calendar date, creating or reusing the
// (user, date) thread via upsert. Exactly one thread and one entry must
// result; anything else is an internal-consistency failure.
func (s *EntryService) CreateForDate(ctx context.Context, userID uuid.UUID, req dto.CreateEntryWithDateRequest) (*dto.EntryWithDateResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "CreateEntryForDate")

	if req.UserID != userID {
		return nil, apperrors.ErrForbidden
	}

	now := time.Now().UTC()
	threadRow := map[string]any{"user_id": userID, "date": req.Date.Time}
	threads, err := s.threads.Upsert(ctx, []map[string]any{threadRow},
		[]string{"user_id", "date"}, []string{"id", "created_at"}, now)
	if err != nil {
		return nil, err
	}
	if len(threads) != 1 {
		return nil, apperrors.Internal(fmt.Sprintf(
			"expected exactly one thread from upsert, got %d", len(threads)))
	}
	thread := threads[0]

	ciphertext, err := s.codec.Encrypt(req.RawMarkdown)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to encrypt entry markdown").
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	writtenAt := now
	if req.WrittenAt != nil {
		writtenAt = req.WrittenAt.UTC()
	}
	created, err := s.entries.Create(ctx, []*model.Entry{{
		ThreadID:          thread.ID,
		EncryptedMarkdown: ciphertext,
		WrittenAt:         writtenAt,
	}})
	if err != nil {
		return nil, err
	}
	if len(created) != 1 {
		return nil, apperrors.Internal(fmt.Sprintf(
			"expected exactly one entry from create, got %d", len(created)))
	}
	entry := created[0]
	s.calendar.InvalidateUser(ctx, userID)

	logger.InfoWithContext(ctx, "Entry created with thread").
		String("user_id", userID.String()).
		String("thread_id", thread.ID.String()).
		String("entry_id", entry.ID.String()).
		Log()

	return &dto.EntryWithDateResponse{
		ID:          entry.ID,
		ThreadID:    entry.ThreadID,
		RawMarkdown: req.RawMarkdown,
		Date:        dto.NewDate(thread.Date),
		WrittenAt:   entry.WrittenAt,
		CreatedAt:   entry.CreatedAt,
		UpdatedAt:   entry.UpdatedAt,
	}, nil
}

// DeleteWithThreadCleanup deletes one entry and, when it was the thread's
// last entry, the thread as well. The count runs after the entry delete so it
// reflects post-delete state.
func (s *EntryService) DeleteWithThreadCleanup(ctx context.Context, userID uuid.UUID, entryID uuid.UUID) error {
	ctx = ctxutil.WithOperation(ctx, "service", "DeleteEntryWithCleanup")

	entry, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		return err
	}
	if entry == nil {
		return apperrors.NotFound(fmt.Sprintf("entry not found for id %s", entryID))
	}

	if _, err := requireOwnedThreads(ctx, s.threads, []uuid.UUID{entry.ThreadID}, userID); err != nil {
		return err
	}

	if err := s.entries.DeleteByIDs(ctx, []uuid.UUID{entryID}); err != nil {
		return err
	}

	remaining, err := s.entries.CountByColumn(ctx, "thread_id", entry.ThreadID)
	if err != nil {
		return err
	}
	if remaining == 0 {
		if err := s.threads.DeleteByIDs(ctx, []uuid.UUID{entry.ThreadID}); err != nil {
			return err
		}
		logger.InfoWithContext(ctx, "Thread deleted with its last entry").
			String("thread_id", entry.ThreadID.String()).
			Log()
	}
	s.calendar.InvalidateUser(ctx, userID)

	return nil
}

// GetWithThread returns one entry joined to its thread's date.
func (s *EntryService) GetWithThread(ctx context.Context, userID uuid.UUID, entryID uuid.UUID) (*dto.EntryWithDateResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "GetEntryWithThread")

	entry, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperrors.NotFound(fmt.Sprintf("entry not found for id %s", entryID))
	}

	threads, err := requireOwnedThreads(ctx, s.threads, []uuid.UUID{entry.ThreadID}, userID)
	if err != nil {
		return nil, err
	}
	thread := threads[entry.ThreadID]

	plaintext, err := s.decrypt(ctx, entry.ID, entry.EncryptedMarkdown)
	if err != nil {
		return nil, err
	}

	return &dto.EntryWithDateResponse{
		ID:          entry.ID,
		ThreadID:    entry.ThreadID,
		RawMarkdown: plaintext,
		Date:        dto.NewDate(thread.Date),
		WrittenAt:   entry.WrittenAt,
		CreatedAt:   entry.CreatedAt,
		UpdatedAt:   entry.UpdatedAt,
	}, nil
}

// ByDate returns all of a user's entries for one calendar date, oldest first.
func (s *EntryService) ByDate(ctx context.Context, userID uuid.UUID, requestedUserID uuid.UUID, date dto.Date) ([]dto.EntryWithDateResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "EntriesByDate")

	if requestedUserID != userID {
		return nil, apperrors.ErrForbidden
	}

	rows, err := s.journal.EntriesByDate(ctx, userID, date.Time)
	if err != nil {
		return nil, err
	}

	out := make([]dto.EntryWithDateResponse, 0, len(rows))
	for _, row := range rows {
		plaintext, err := s.decrypt(ctx, row.ID, row.EncryptedMarkdown)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.EntryWithDateResponse{
			ID:          row.ID,
			ThreadID:    row.ThreadID,
			RawMarkdown: plaintext,
			Date:        dto.NewDate(row.Date),
			WrittenAt:   row.WrittenAt,
			CreatedAt:   row.CreatedAt,
			UpdatedAt:   row.UpdatedAt,
		})
	}
	return out, nil
}

// Calendar reports entry presence for every date in an inclusive range.
func (s *EntryService) Calendar(ctx context.Context, userID uuid.UUID, requestedUserID uuid.UUID, start, end dto.Date) ([]dto.CalendarDay, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "Calendar")

	if requestedUserID != userID {
		return nil, apperrors.ErrForbidden
	}
	if start.After(end) {
		return nil, apperrors.Validation("start_date must be less than or equal to end_date")
	}

	var daySet map[string]bool
	if cached, hit := s.calendar.GetDays(ctx, userID, start.String(), end.String()); hit {
		daySet = make(map[string]bool, len(cached))
		for _, d := range cached {
			daySet[d] = true
		}
	} else {
		dates, err := s.journal.DaysWithEntries(ctx, userID, start.Time, end.Time)
		if err != nil {
			return nil, err
		}
		daySet = make(map[string]bool, len(dates))
		days := make([]string, 0, len(dates))
		for _, d := range dates {
			key := dto.NewDate(d).String()
			daySet[key] = true
			days = append(days, key)
		}
		s.calendar.SetDays(ctx, userID, start.String(), end.String(), days)
	}

	var out []dto.CalendarDay
	for day := start; !day.After(end); day = day.AddDays(1) {
		out = append(out, dto.CalendarDay{
			Date:     day,
			HasEntry: daySet[day.String()],
		})
	}
	return out, nil
}
