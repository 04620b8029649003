package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	csvContentType  = "text/csv; charset=utf-8"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// @Summary      Download CSV export
// @Description  Semicolon-delimited export with a sep=; first line; one section per panel in fixed order.
// @Tags         export
// @Produce      text/csv
// @Success      200  {string}  string  "CSV document"
// @Router       /api/v1/export/csv [get]
func (h *Handler) exportCSV(c *gin.Context) {
	body, filename := h.services.CSV(h.services.Snapshot())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, csvContentType, body)
}

// @Summary      Download spreadsheet export
// @Description  One sheet per panel, sheet names without the "Panel " prefix.
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {string}  string  "XLSX workbook"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/export/xlsx [get]
func (h *Handler) exportXLSX(c *gin.Context) {
	wb, filename, err := h.services.Workbook(h.services.Snapshot())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to build workbook", "export_xlsx_failed", err)
		return
	}

	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to serialize workbook", "export_xlsx_write_failed", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
