package out

import (
	"context"
	"time"

	sessiondto "pomoterm/internal/modules/session/dto"
	sessionin "pomoterm/internal/modules/session/port/in"
	timerout "pomoterm/internal/modules/timer/port/out"
)

// SessionRecorderAdapter bridges completed intervals into the session log.
type SessionRecorderAdapter struct {
	sessions sessionin.Usecase
}

func NewSessionRecorderAdapter(sessions sessionin.Usecase) timerout.SessionRecorder {
	return &SessionRecorderAdapter{sessions: sessions}
}

func (a *SessionRecorderAdapter) RecordCompleted(ctx context.Context, kind string, start time.Time, durationSeconds int, goal string) (string, error) {
	out, err := a.sessions.Record(ctx, sessiondto.RecordInput{
		Kind:            kind,
		StartTime:       start,
		DurationSeconds: durationSeconds,
		Goal:            goal,
	})
	if err != nil {
		return "", err
	}
	return out.ID, nil
}
