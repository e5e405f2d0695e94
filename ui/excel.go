package ui

import (
	"fmt"
	"net/http"
	"time"

	"mosaic/adapters/excel"

	"github.com/gin-gonic/gin"
)

// handleExport downloads the derived table for the selection in the query
// string as xlsx or csv. Incomplete selections export an empty table.
func (s *Server) handleExport(c *gin.Context) {
	format := c.Param("format")
	if format != "xlsx" && format != "csv" {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unsupported export format %q", format)})
		return
	}

	out, err := s.evaluateQuery(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	filename := fmt.Sprintf("analysis_%s.%s", time.Now().Format("20060102_150405"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))

	switch format {
	case "xlsx":
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Status(http.StatusOK)
		err = excel.WriteXLSX(c.Writer, out.Table())
	case "csv":
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Status(http.StatusOK)
		err = excel.WriteCSV(c.Writer, out.Table())
	}
	if err != nil {
		s.logger.Error("export %s failed for request %s: %v", format, requestIDOf(c), err)
	}
	s.logger.Debug("exported %d rows as %s", out.Table().Len(), format)
}
