package in

import (
	"context"

	historydto "pomoterm/internal/modules/history/dto"
	historyin "pomoterm/internal/modules/history/port/in"
)

type CLIHandler struct {
	usecase historyin.Usecase
}

func NewCLIHandler(usecase historyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Query(ctx context.Context, filter string) (historydto.QueryOutput, error) {
	return h.usecase.Query(ctx, historydto.QueryInput{Filter: filter})
}

func (h CLIHandler) Stats(ctx context.Context) (historydto.StatsOutput, error) {
	return h.usecase.Stats(ctx)
}

func (h CLIHandler) Export(ctx context.Context, dir, title string) (historydto.ExportOutput, error) {
	return h.usecase.Export(ctx, historydto.ExportInput{Dir: dir, Title: title})
}
