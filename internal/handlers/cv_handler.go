package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/Placement-Tracker/internal/export"
	"github.com/justsurfingit/Placement-Tracker/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type CVHandler struct {
	CV *services.CVService
}

func NewCVHandler(cv *services.CVService) *CVHandler {
	return &CVHandler{CV: cv}
}

// Get is GET /students/:id/cv. ?format=xlsx returns the printable workbook.
func (h *CVHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	doc, st, err := h.CV.Build(c.Request.Context(), id)
	if err != nil {
		fail(c, "build CV", err)
		return
	}

	if c.Query("format") != "xlsx" {
		c.JSON(http.StatusOK, doc)
		return
	}
	var buf bytes.Buffer
	if err := export.WriteCV(&buf, *doc); err != nil {
		fail(c, "export CV", err)
		return
	}
	name := fmt.Sprintf("cv_%d_%s_%s.xlsx", st.ID, st.FirstName, st.LastName)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
