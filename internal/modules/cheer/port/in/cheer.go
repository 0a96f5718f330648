package in

import (
	"context"

	"pomoterm/internal/modules/cheer/dto"
)

// Usecase is the chat popup's surface. AppendCompletion posts the
// celebration pair for a finished interval: the system banner plus one
// encouragement line.
type Usecase interface {
	Thread(ctx context.Context) (dto.ThreadOutput, error)
	AppendCompletion(ctx context.Context) (dto.ThreadOutput, error)
}
