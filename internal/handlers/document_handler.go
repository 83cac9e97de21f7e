package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/Placement-Tracker/internal/services"
)

const maxUploadSize = 20 << 20

type DocumentHandler struct {
	Documents *services.DocumentService
}

func NewDocumentHandler(docs *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{Documents: docs}
}

// Upload is POST /students/:id/documents (multipart field "file").
func (h *DocumentHandler) Upload(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file: " + err.Error()})
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, "read upload", err)
		return
	}
	defer f.Close()

	name := c.PostForm("name")
	if name == "" {
		name = fh.Filename
	}
	doc, err := h.Documents.Upload(c.Request.Context(), id, name, f)
	if err != nil {
		fail(c, "upload document", err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

func (h *DocumentHandler) List(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	docs, err := h.Documents.List(c.Request.Context(), id)
	if err != nil {
		fail(c, "list documents", err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// Open streams the file through the API.
func (h *DocumentHandler) Open(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	rc, err := h.Documents.Open(c.Request.Context(), id, c.Param("name"))
	if err != nil {
		fail(c, "open document", err)
		return
	}
	defer rc.Close()
	c.Header("Content-Disposition", "inline")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}

// URL is GET /students/:id/documents/:name/url?mode=download|preview.
func (h *DocumentHandler) URL(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	ctx, name := c.Request.Context(), c.Param("name")
	var (
		url string
		err error
		ttl = services.DownloadURLTTL
	)
	if c.Query("mode") == "preview" {
		ttl = services.PreviewURLTTL
		url, err = h.Documents.PreviewURL(ctx, id, name)
	} else {
		url, err = h.Documents.DownloadURL(ctx, id, name)
	}
	if err != nil {
		fail(c, "sign document url", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url, "expires_in": int(ttl.Seconds())})
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.Documents.Delete(c.Request.Context(), id, c.Param("name")); err != nil {
		fail(c, "delete document", err)
		return
	}
	c.Status(http.StatusNoContent)
}
