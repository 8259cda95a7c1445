package appointment

import (
	"context"

	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/appointease/internal/domain/appointment"
	"github.com/BruksfildServices01/appointease/internal/domain/meeting"
	"github.com/BruksfildServices01/appointease/internal/export"
)

type ExportWorkbook struct {
	Deps
	Meetings meeting.Repository
	Archive  export.Archiver
	Log      zerolog.Logger
}

func NewExportWorkbook(
	deps Deps,
	meetings meeting.Repository,
	archive export.Archiver,
	log zerolog.Logger,
) *ExportWorkbook {
	return &ExportWorkbook{Deps: deps, Meetings: meetings, Archive: archive, Log: log}
}

// Execute renders every appointment and meeting as XLSX. When an archiver is
// configured a copy is stored; a failed upload is logged and the download
// still succeeds.
func (uc *ExportWorkbook) Execute(ctx context.Context) ([]byte, error) {
	aps, err := NewListAppointments(uc.Deps).Execute(ctx, domain.ListFilter{})
	if err != nil {
		return nil, err
	}

	ms, err := uc.Meetings.List(ctx, "")
	if err != nil {
		return nil, err
	}

	data, err := export.Workbook(aps, meeting.Annotate(ms, uc.now()))
	if err != nil {
		return nil, err
	}

	if uc.Archive != nil {
		key, err := uc.Archive.Archive(ctx, uc.now().UTC(), data)
		if err != nil {
			uc.Log.Error().Err(err).Msg("archive export")
		} else {
			uc.Log.Info().Str("key", key).Msg("export archived")
		}
	}

	return data, nil
}
