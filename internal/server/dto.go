package server

import "docqa/internal/domain"

type queryRequest struct {
	DocumentID string `json:"document_id" binding:"required"`
	Question   string `json:"question" binding:"required"`
}

type uploadResponse struct {
	Document domain.Document `json:"document"`
}

type listResponse struct {
	Documents []domain.Document `json:"documents"`
}

type errorResponse struct {
	Error string `json:"error"`
}
