package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/appointease/internal/export"
	"github.com/BruksfildServices01/appointease/internal/httperr"
	ucAppointment "github.com/BruksfildServices01/appointease/internal/usecase/appointment"
)

type ExportHandler struct {
	workbook *ucAppointment.ExportWorkbook
	log      zerolog.Logger
}

func NewExportHandler(workbook *ucAppointment.ExportWorkbook, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{workbook: workbook, log: log}
}

func (h *ExportHandler) Download(c *gin.Context) {
	data, err := h.workbook.Execute(c.Request.Context())
	if err != nil {
		httperr.FromError(c, h.log, err, "export_failed")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.FileName(time.Now())))
	c.Data(http.StatusOK, export.ContentType, data)
}
