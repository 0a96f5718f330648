package usecase

import (
	"context"
	"fmt"
	"strings"

	"pomoterm/internal/modules/session/domain"
	"pomoterm/internal/modules/session/dto"
	"pomoterm/internal/modules/session/service"
	"pomoterm/internal/platform/clock"
	apperrors "pomoterm/internal/platform/errors"
	"pomoterm/internal/platform/id"
)

// SessionUsecase fronts the session log. It validates inputs, assigns ids,
// and runs the trash retention sweep before every read so expired records
// never surface.
type SessionUsecase struct {
	clock         clock.Clock
	ids           id.Generator
	sessions      *service.SessionService
	retentionDays int
}

func NewSessionUsecase(clk clock.Clock, ids id.Generator, sessions *service.SessionService, retentionDays int) *SessionUsecase {
	if retentionDays < 1 {
		retentionDays = domain.DefaultTrashRetentionDays
	}
	return &SessionUsecase{clock: clk, ids: ids, sessions: sessions, retentionDays: retentionDays}
}

func (u *SessionUsecase) Record(ctx context.Context, input dto.RecordInput) (dto.SessionOutput, error) {
	session := domain.Session{
		ID:              u.ids.New(),
		Kind:            domain.Kind(input.Kind),
		StartTime:       input.StartTime,
		DurationSeconds: input.DurationSeconds,
		Goal:            strings.TrimSpace(input.Goal),
		Status:          domain.StatusActive,
	}
	if session.StartTime.IsZero() {
		session.StartTime = u.clock.Now()
	}
	if err := session.Validate(); err != nil {
		return dto.SessionOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := u.sessions.Append(ctx, session); err != nil {
		return dto.SessionOutput{}, err
	}
	return u.toOutput(session), nil
}

func (u *SessionUsecase) List(ctx context.Context, input dto.ListInput) (dto.ListOutput, error) {
	if input.Status != "" {
		if err := domain.Status(input.Status).Validate(); err != nil {
			return dto.ListOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
	}
	if _, err := u.sessions.PurgeExpiredTrash(ctx, u.retentionDays); err != nil {
		return dto.ListOutput{}, fmt.Errorf("retention sweep: %w", err)
	}
	sessions := u.sessions.List(ctx, domain.Status(input.Status))
	out := dto.ListOutput{Sessions: make([]dto.SessionOutput, 0, len(sessions))}
	for _, sess := range sessions {
		out.Sessions = append(out.Sessions, u.toOutput(sess))
	}
	return out, nil
}

// Edit applies a partial update. Unlike the bulk lifecycle operations, an
// edit names exactly one record, so a missing id is surfaced as an error
// rather than swallowed.
func (u *SessionUsecase) Edit(ctx context.Context, input dto.EditInput) (dto.SessionOutput, error) {
	if strings.TrimSpace(input.ID) == "" {
		return dto.SessionOutput{}, fmt.Errorf("%w: session id is required", apperrors.ErrInvalidInput)
	}
	if input.DurationSeconds != nil && *input.DurationSeconds < 1 {
		return dto.SessionOutput{}, apperrors.ErrInvalidDuration
	}
	if _, ok := u.sessions.Get(ctx, input.ID); !ok {
		return dto.SessionOutput{}, fmt.Errorf("%w: session %s", apperrors.ErrNotFound, input.ID)
	}
	patch := domain.Patch{
		StartTime:       input.StartTime,
		DurationSeconds: input.DurationSeconds,
	}
	if input.Goal != nil {
		trimmed := strings.TrimSpace(*input.Goal)
		patch.Goal = &trimmed
	}
	if err := u.sessions.Update(ctx, input.ID, patch); err != nil {
		return dto.SessionOutput{}, err
	}
	updated, ok := u.sessions.Get(ctx, input.ID)
	if !ok {
		return dto.SessionOutput{}, fmt.Errorf("%w: session %s", apperrors.ErrNotFound, input.ID)
	}
	return u.toOutput(updated), nil
}

func (u *SessionUsecase) Archive(ctx context.Context, ids []string) (dto.BulkOutput, error) {
	affected, err := u.sessions.BulkArchive(ctx, ids)
	return dto.BulkOutput{Affected: affected}, err
}

func (u *SessionUsecase) Trash(ctx context.Context, ids []string) (dto.BulkOutput, error) {
	affected, err := u.sessions.BulkTrash(ctx, ids)
	return dto.BulkOutput{Affected: affected}, err
}

func (u *SessionUsecase) Restore(ctx context.Context, ids []string) (dto.BulkOutput, error) {
	affected, err := u.sessions.BulkRestore(ctx, ids)
	return dto.BulkOutput{Affected: affected}, err
}

func (u *SessionUsecase) PermanentlyDelete(ctx context.Context, ids []string) (dto.BulkOutput, error) {
	affected, err := u.sessions.BulkRemove(ctx, ids)
	return dto.BulkOutput{Affected: affected}, err
}

func (u *SessionUsecase) PurgeExpiredTrash(ctx context.Context) (dto.PurgeOutput, error) {
	purged, err := u.sessions.PurgeExpiredTrash(ctx, u.retentionDays)
	return dto.PurgeOutput{PurgedIDs: purged}, err
}

// Reindex rebuilds the read-side index from the canonical log, for when the
// index file was deleted or has drifted from the JSON records.
func (u *SessionUsecase) Reindex(ctx context.Context) error {
	return u.sessions.ReprojectAll(ctx)
}

func (u *SessionUsecase) Stats(ctx context.Context) (dto.StatsOutput, error) {
	if _, err := u.sessions.PurgeExpiredTrash(ctx, u.retentionDays); err != nil {
		return dto.StatsOutput{}, fmt.Errorf("retention sweep: %w", err)
	}
	rows, err := u.sessions.Stats(ctx)
	if err != nil {
		return dto.StatsOutput{}, err
	}
	out := dto.StatsOutput{Kinds: make([]dto.KindStatsOutput, 0, len(rows))}
	for _, row := range rows {
		out.Kinds = append(out.Kinds, dto.KindStatsOutput{
			Kind:         string(row.Kind),
			Sessions:     row.Sessions,
			TotalSeconds: row.TotalSeconds,
		})
	}
	return out, nil
}

func (u *SessionUsecase) toOutput(sess domain.Session) dto.SessionOutput {
	return dto.SessionOutput{
		ID:                     sess.ID,
		Kind:                   string(sess.Kind),
		StartTime:              sess.StartTime,
		DurationSeconds:        sess.DurationSeconds,
		Goal:                   sess.Goal,
		Status:                 string(sess.Status),
		DeletedAt:              sess.DeletedAt,
		RemainingRetentionDays: sess.RemainingRetentionDays(u.clock.Now(), u.retentionDays),
	}
}
