package server

import (
	"net/http"
	"strconv"

	"github.com/alexanderramin/studycal/internal/domain"
	"github.com/alexanderramin/studycal/internal/export"
	"github.com/gin-gonic/gin"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// GET /api/v1/plans?limit=N
func (s *Server) handleListPlans(c *gin.Context) {
	limit := defaultListLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(c, &domain.ParseError{Field: "limit", Value: v, Reason: "expected a positive integer"})
			return
		}
		limit = min(n, maxListLimit)
	}

	list, err := s.plans.List(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	OK(c, toPlanSummaryDTOs(list))
}

// GET /api/v1/plans/:id
func (s *Server) handleGetPlan(c *gin.Context) {
	p, err := s.plans.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	OK(c, toPlanDTO(p, true))
}

// GET /api/v1/plans/:id/export?format=ics|xlsx&group_by_day=true&place=...
func (s *Server) handleExportPlan(c *gin.Context) {
	f, err := export.ParseFormat(c.DefaultQuery("format", string(export.FormatICS)))
	if err != nil {
		writeError(c, err)
		return
	}
	groupByDay, err := formBool("group_by_day", c.Query("group_by_day"))
	if err != nil {
		writeError(c, err)
		return
	}

	p, err := s.plans.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	s.sendPlan(c, f, p, export.PlanOptions{GroupByDay: groupByDay, Place: c.Query("place")})
}

// DELETE /api/v1/plans/:id
func (s *Server) handleDeletePlan(c *gin.Context) {
	if err := s.plans.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
