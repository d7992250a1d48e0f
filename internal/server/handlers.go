package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"docqa/internal/domain"
)

func (s *Server) handleUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "multipart field 'file' is required"})
		return
	}
	if s.cfg.MaxUploadBytes > 0 && fileHeader.Size > s.cfg.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: "file exceeds upload size limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "cannot read uploaded file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "cannot read uploaded file"})
		return
	}

	doc, err := s.ingest.Ingest(c.Request.Context(), fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, uploadResponse{Document: doc})
}

func (s *Server) handleQuery(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "document_id and question are required"})
		return
	}

	answer, err := s.query.Query(c.Request.Context(), req.DocumentID, req.Question)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}

func (s *Server) handleListDocuments(c *gin.Context) {
	c.JSON(http.StatusOK, listResponse{Documents: s.ingest.List()})
}

func (s *Server) handleGetDocument(c *gin.Context) {
	doc, err := s.ingest.Get(c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, uploadResponse{Document: doc})
}

func (s *Server) handleDeleteDocument(c *gin.Context) {
	if err := s.ingest.Delete(c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// writeError maps pipeline errors to HTTP statuses.
func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrUnsupportedFileType):
		status = http.StatusUnsupportedMediaType
	case errors.Is(err, domain.ErrEmptyDocument):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrExtractionFailure):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrEmbeddingFailure):
		status = http.StatusBadGateway
	case errors.Is(err, domain.ErrUnknownDocument):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrSynthesisFailure):
		status = http.StatusInternalServerError
	}
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "err", err)
	}
	c.JSON(status, errorResponse{Error: err.Error()})
}
