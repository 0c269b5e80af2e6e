package api

import (
	"errors"
	"net/http"

	"burnoutlab/app"
	"burnoutlab/domain/core"
	"burnoutlab/domain/dataset"
	"burnoutlab/domain/scoring"
	apperrors "burnoutlab/internal/errors"

	"github.com/gin-gonic/gin"
)

// assessRequest is one screening submission. The lifestyle fields reuse the
// scoring input layout; persist opts the record into the stored cohort.
type assessRequest struct {
	scoring.Input
	Persist bool `json:"persist"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleAssess(c *gin.Context) {
	var req assessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, apperrors.InvalidInput("invalid request body"))
		return
	}

	result, err := s.assessments.Assess(c.Request.Context(), app.AssessmentRequest{
		Input:   req.Input,
		Persist: req.Persist,
	})
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleAddRecord(c *gin.Context) {
	var obs dataset.Observation
	if err := c.ShouldBindJSON(&obs); err != nil {
		s.renderError(c, apperrors.InvalidInput("invalid request body"))
		return
	}

	stored, err := s.assessments.AddRecord(c.Request.Context(), obs)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, stored)
}

func (s *Server) handleGetRecord(c *gin.Context) {
	id, err := core.ParseRecordID(c.Param("id"))
	if err != nil {
		s.renderError(c, apperrors.InvalidInput(err.Error()))
		return
	}

	obs, err := s.assessments.GetRecord(c.Request.Context(), id)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, obs)
}

func (s *Server) handleStatistics(c *gin.Context) {
	summaries, err := s.analysis.Statistics(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"descriptives": summaries})
}

func (s *Server) handleReport(c *gin.Context) {
	report, err := s.analysis.Report(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	s.logger.Debug("analysis report generated over %d observations", report.SampleSize)
	c.JSON(http.StatusOK, report)
}

// renderError maps domain errors onto HTTP statuses: bad input is the
// caller's fault, degenerate or unconverged analysis is the cohort's, and
// everything else is ours. Structured app errors carry their own code.
func (s *Server) renderError(c *gin.Context, err error) {
	switch {
	case core.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrEmptyDataset):
		c.JSON(http.StatusConflict, gin.H{"error": "no cohort data available"})
	case core.IsDegenerateError(err), core.IsFitError(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case apperrors.IsAppError(err):
		switch apperrors.GetCode(err) {
		case apperrors.CodeNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case apperrors.CodeInvalidInput, apperrors.CodeValidationError:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			s.logger.Error("request failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
	default:
		s.logger.Error("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
