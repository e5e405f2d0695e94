package ui

import (
	"net/http"

	"mosaic/internal/dashboard"
	"mosaic/internal/errors"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleIndex(c *gin.Context) {
	s.renderTemplate(c, "index.html", s.indexPage())
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "rows": s.app.Dataset().Len()})
}

func (s *Server) handleDatasetInfo(c *gin.Context) {
	c.JSON(http.StatusOK, s.app.Info())
}

func (s *Server) handleColumns(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"columns": s.app.Schema()})
}

// handleUpdate is the single callback behind all three inputs: every change
// posts the whole selection and gets the table, columns and figure back.
func (s *Server) handleUpdate(c *gin.Context) {
	sel, err := bindSelection(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": errors.CodeInvalidInput})
		return
	}

	out, err := s.app.Evaluate(sel)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state":   out.State,
		"data":    out.Rows,
		"columns": out.Columns,
		"chart":   out.Chart,
		"figure":  out.Figure(),
	})
}

// respondError maps analysis failures onto HTTP statuses
func (s *Server) respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatus(err)
	s.logger.Warn("request %s failed (%s): %v", requestIDOf(c), code, err)
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}

// evaluateQuery runs the controller for a selection given as query parameters
func (s *Server) evaluateQuery(c *gin.Context) (*dashboard.Output, error) {
	return s.app.Evaluate(selectionFromQuery(c))
}
