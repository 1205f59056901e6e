package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	rentalpointdomain "github.com/smallbiznis/scootfleet/internal/rentalpoint/domain"
	scooterdomain "github.com/smallbiznis/scootfleet/internal/scooter/domain"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
)

func (s *Server) CreateRentalPoint(c *gin.Context) {
	var req rentalpointdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.rentalPointSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListRentalPoints(c *gin.Context) {
	var query pagination.Pagination
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.rentalPointSvc.List(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// NearbyRentalPoints requires lat and lon; radius_km falls back to the configured default.
func (s *Server) NearbyRentalPoints(c *gin.Context) {
	lat, err := parseOptionalFloat(c.Query("lat"))
	if err != nil || lat == nil {
		AbortWithError(c, newValidationError("lat", "invalid_lat", "lat is required"))
		return
	}
	lon, err := parseOptionalFloat(c.Query("lon"))
	if err != nil || lon == nil {
		AbortWithError(c, newValidationError("lon", "invalid_lon", "lon is required"))
		return
	}
	radius, err := parseOptionalFloat(c.Query("radius_km"))
	if err != nil {
		AbortWithError(c, newValidationError("radius_km", "invalid_radius_km", "invalid radius_km"))
		return
	}

	req := rentalpointdomain.NearbyRequest{Latitude: *lat, Longitude: *lon}
	if radius != nil {
		req.RadiusKm = *radius
	}

	resp, err := s.rentalPointSvc.Nearby(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetRentalPointByID(c *gin.Context) {
	resp, err := s.rentalPointSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateRentalPoint(c *gin.Context) {
	var req rentalpointdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.rentalPointSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteRentalPoint(c *gin.Context) {
	if err := s.rentalPointSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) ListRentalPointScooters(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Status string `form:"status"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.rentalPointSvc.ScootersAt(c.Request.Context(), strings.TrimSpace(c.Param("id")), rentalpointdomain.ScootersRequest{
		Status:     scooterdomain.Status(strings.ToUpper(strings.TrimSpace(query.Status))),
		Pagination: query.Pagination,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isRentalPointValidationError(err error) bool {
	switch err {
	case rentalpointdomain.ErrInvalidID,
		rentalpointdomain.ErrInvalidName,
		rentalpointdomain.ErrInvalidCoordinates,
		rentalpointdomain.ErrInvalidRadius,
		rentalpointdomain.ErrInvalidManager:
		return true
	default:
		return false
	}
}
