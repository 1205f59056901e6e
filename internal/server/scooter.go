package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	scooterdomain "github.com/smallbiznis/scootfleet/internal/scooter/domain"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
)

func (s *Server) CreateScooter(c *gin.Context) {
	var req scooterdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.scooterSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListScooters(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Status        string `form:"status"`
		RentalPointID string `form:"rental_point_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.scooterSvc.List(c.Request.Context(), scooterdomain.ListRequest{
		Status:        scooterdomain.Status(strings.ToUpper(strings.TrimSpace(query.Status))),
		RentalPointID: query.RentalPointID,
		Pagination:    query.Pagination,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetScooterByID(c *gin.Context) {
	resp, err := s.scooterSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateScooter(c *gin.Context) {
	var req scooterdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.scooterSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteScooter(c *gin.Context) {
	if err := s.scooterSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) GetScooterPricingPlan(c *gin.Context) {
	resp, err := s.scooterSvc.GetPricingPlan(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isScooterValidationError(err error) bool {
	switch err {
	case scooterdomain.ErrInvalidID,
		scooterdomain.ErrInvalidModel,
		scooterdomain.ErrInvalidBattery,
		scooterdomain.ErrInvalidStatus,
		scooterdomain.ErrInvalidRentalPoint,
		scooterdomain.ErrInvalidPricingPlan:
		return true
	default:
		return false
	}
}
