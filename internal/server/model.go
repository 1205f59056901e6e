package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	modeldomain "github.com/smallbiznis/scootfleet/internal/model/domain"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
)

func (s *Server) CreateModel(c *gin.Context) {
	var req modeldomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.modelSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListModels(c *gin.Context) {
	var query pagination.Pagination
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.modelSvc.List(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetModelByID(c *gin.Context) {
	resp, err := s.modelSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateModel(c *gin.Context) {
	var req modeldomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.modelSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// DeleteModel answers 409 while scooters still reference the model.
func (s *Server) DeleteModel(c *gin.Context) {
	if err := s.modelSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func isModelValidationError(err error) bool {
	switch err {
	case modeldomain.ErrInvalidID,
		modeldomain.ErrInvalidName:
		return true
	default:
		return false
	}
}
