// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package answers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// QueryRequest is the body of POST /v1/answers/query.
//
// Query may be empty: no-signal input is a valid query that yields the
// zero-results answer, not a 400.
type QueryRequest struct {
	Query string `json:"query"`
}

// ErrorResponse is the uniform error body for all answers endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Handlers holds the HTTP handlers for the answers service.
type Handlers struct {
	service *Service
}

// NewHandlers creates the handlers for the given service.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// getOrCreateRequestID returns the request's X-Request-ID header, minting a
// fresh UUID (and echoing it on the response) when the client sent none.
func getOrCreateRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)
	return requestID
}

// HandleQuery handles POST /v1/answers/query.
//
// Description:
//
//	Runs the full answer pipeline for the submitted query text and returns
//	the SynthesizedAnswer. Zero results is a 200: the answer's type field
//	distinguishes ZERO_RESULTS from content-bearing answers, so the UI can
//	tell "nothing found" from "search is down".
//
// Response:
//
//	200 OK: SynthesizedAnswer
//	400 Bad Request: Malformed JSON body
//	500 Internal Server Error: Template construction failed (data contract
//	    violation on the winning candidate)
//	503 Service Unavailable: Every queried search domain failed
//
// Thread Safety: This method is safe for concurrent use.
func (h *Handlers) HandleQuery(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleQuery")

	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "request body must be JSON with a string \"query\" field",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	answer, err := h.service.AnswerQuery(c.Request.Context(), req.Query)
	if err != nil {
		var retrievalErr *RetrievalError
		if errors.As(err, &retrievalErr) {
			logger.Error("Search unavailable: all domains failed",
				slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{
				Error: "search is temporarily unavailable",
				Code:  "SEARCH_UNAVAILABLE",
			})
			return
		}

		var synthesisErr *SynthesisError
		if errors.As(err, &synthesisErr) {
			logger.Error("Answer synthesis failed",
				slog.String("template", synthesisErr.Template),
				slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error: "answer could not be constructed",
				Code:  "SYNTHESIS_FAILED",
			})
			return
		}

		logger.Error("Query failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "internal error",
			Code:  "INTERNAL_ERROR",
		})
		return
	}

	c.JSON(http.StatusOK, answer)
}

// HandleHealth handles GET /v1/answers/health.
//
// Thread Safety: This method is safe for concurrent use.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// HandleReady handles GET /v1/answers/ready. Ready means the vocabulary
// index and classifier rules loaded; there is no warmup beyond that.
//
// Thread Safety: This method is safe for concurrent use.
func (h *Handlers) HandleReady(c *gin.Context) {
	if h.service == nil || h.service.vocab == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
