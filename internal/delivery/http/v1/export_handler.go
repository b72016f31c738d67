package v1

import (
	"context"
	"fmt"
	"net/http"

	"go-jobtrack-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	exportUC domain.ExportUsecase
}

// NewExportHandler registers export routes
func NewExportHandler(r *gin.RouterGroup, exportUC domain.ExportUsecase) {
	handler := &ExportHandler{exportUC: exportUC}

	exports := r.Group("/exports")
	{
		exports.GET("/csv", handler.CSV)
		exports.GET("/pdf", handler.PDF)
		exports.GET("/xlsx", handler.XLSX)
	}
}

// CSV godoc
// @Summary      Export applications as CSV
// @Description  One row per application in serial order; the serial column is the 1-based row position
// @Tags         exports
// @Produce      text/csv
// @Success      200  {file}  file
// @Router       /exports/csv [get]
// @Security     BearerAuth
func (h *ExportHandler) CSV(c *gin.Context) {
	h.serve(c, "text/csv", h.exportUC.ExportCSV)
}

// PDF godoc
// @Summary      Export summary report as PDF
// @Description  Cover section with profile details followed by one block per application, three blocks per page
// @Tags         exports
// @Produce      application/pdf
// @Success      200  {file}  file
// @Router       /exports/pdf [get]
// @Security     BearerAuth
func (h *ExportHandler) PDF(c *gin.Context) {
	h.serve(c, "application/pdf", h.exportUC.ExportPDF)
}

// XLSX godoc
// @Summary      Export applications as a spreadsheet
// @Tags         exports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  file
// @Router       /exports/xlsx [get]
// @Security     BearerAuth
func (h *ExportHandler) XLSX(c *gin.Context) {
	h.serve(c, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", h.exportUC.ExportXLSX)
}

func (h *ExportHandler) serve(c *gin.Context, contentType string, export func(ctx context.Context, userID string) ([]byte, string, error)) {
	userID := c.GetString(string(domain.KeyUserID))

	data, filename, err := export(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, data)
}
