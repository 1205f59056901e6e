package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/scootfleet/internal/authorization"
	rentaldomain "github.com/smallbiznis/scootfleet/internal/rental/domain"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
)

type startRentalRequest struct {
	UserID       string `json:"user_id"`
	ScooterID    string `json:"scooter_id"`
	RentalTypeID int64  `json:"rental_type_id"`
}

type endRentalRequest struct {
	RentalID string           `json:"rental_id"`
	Distance *decimal.Decimal `json:"distance"`
}

type listRentalsQuery struct {
	pagination.Pagination
	UserID    string `form:"user_id"`
	ScooterID string `form:"scooter_id"`
	Status    string `form:"status"`
}

// StartRental defaults the rider to the actor; starting for someone else needs start_any.
func (s *Server) StartRental(c *gin.Context) {
	start, err := s.bindStartRental(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if err := s.allowRentalStart(c, start.AccountID); err != nil {
		AbortWithError(c, err)
		return
	}

	rental, err := s.rentalSvc.StartRental(c.Request.Context(), start.AccountID, start.ScooterID, start.RentalTypeID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rental})
}

func (s *Server) bindStartRental(c *gin.Context) (rentaldomain.StartRequest, error) {
	var req startRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return rentaldomain.StartRequest{}, invalidRequestError()
	}

	actor, ok := actorFromContext(c)
	if !ok {
		return rentaldomain.StartRequest{}, ErrUnauthorized
	}

	accountID := actor.ID
	if strings.TrimSpace(req.UserID) != "" {
		parsed, err := parseUUIDParam(req.UserID, "user_id")
		if err != nil {
			return rentaldomain.StartRequest{}, err
		}
		accountID = parsed
	}
	scooterID, err := parseUUIDParam(req.ScooterID, "scooter_id")
	if err != nil {
		return rentaldomain.StartRequest{}, err
	}
	if err := s.authorizeOwner(c, authorization.ObjectRental, authorization.ActionRentalStartAny, accountID); err != nil {
		return rentaldomain.StartRequest{}, err
	}

	return rentaldomain.StartRequest{
		AccountID:    accountID,
		ScooterID:    scooterID,
		RentalTypeID: req.RentalTypeID,
	}, nil
}

// EndRental checks ownership, then ends the rental under the per-rental lock.
func (s *Server) EndRental(c *gin.Context) {
	var req endRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	rentalID, err := parseUUIDParam(req.RentalID, "rental_id")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if req.Distance == nil {
		AbortWithError(c, newValidationError("distance", "invalid_distance", "distance is required"))
		return
	}

	ctx := c.Request.Context()
	existing, err := s.rentalSvc.Get(ctx, rentalID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if err := s.authorizeOwner(c, authorization.ObjectRental, authorization.ActionRentalEndAny, existing.AccountID); err != nil {
		AbortWithError(c, err)
		return
	}

	release, err := s.lockRentalEnd(c, rentalID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	defer release()

	rental, err := s.rentalSvc.EndRental(ctx, rentalID, *req.Distance)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rental})
}

func (s *Server) ListRentals(c *gin.Context) {
	var query listRentalsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	accountID, err := parseOptionalUUID(query.UserID)
	if err != nil {
		AbortWithError(c, newValidationError("user_id", "invalid_user_id", "invalid user_id"))
		return
	}
	scooterID, err := parseOptionalUUID(query.ScooterID)
	if err != nil {
		AbortWithError(c, newValidationError("scooter_id", "invalid_scooter_id", "invalid scooter_id"))
		return
	}
	status, err := parseRentalStatus(query.Status)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.respondRentals(c, rentaldomain.ListRequest{
		AccountID:  accountID,
		ScooterID:  scooterID,
		Status:     status,
		Pagination: query.Pagination,
	})
}

func (s *Server) GetRental(c *gin.Context) {
	rental, ok := s.loadOwnRental(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rental})
}

func (s *Server) GetRentalReceipt(c *gin.Context) {
	rental, ok := s.loadOwnRental(c)
	if !ok {
		return
	}

	receipt, err := s.rentalSvc.Receipt(c.Request.Context(), rental.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=rental-%s.pdf", rental.ID))
	c.Data(http.StatusOK, "application/pdf", receipt)
}

func (s *Server) ListRentalsByUser(c *gin.Context) {
	accountID, err := parseUUIDParam(c.Param("userId"), "user_id")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if err := s.authorizeOwner(c, authorization.ObjectRental, authorization.ActionViewAny, accountID); err != nil {
		AbortWithError(c, err)
		return
	}

	var query listRentalsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	status, err := parseRentalStatus(query.Status)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.respondRentals(c, rentaldomain.ListRequest{
		AccountID:  &accountID,
		Status:     status,
		Pagination: query.Pagination,
	})
}

func (s *Server) ListRentalsByScooter(c *gin.Context) {
	scooterID, err := parseUUIDParam(c.Param("scooterId"), "scooter_id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var query listRentalsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	status, err := parseRentalStatus(query.Status)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.respondRentals(c, rentaldomain.ListRequest{
		ScooterID:  &scooterID,
		Status:     status,
		Pagination: query.Pagination,
	})
}

func (s *Server) ListRentalTypes(c *gin.Context) {
	types, err := s.rentalSvc.ListRentalTypes(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": types})
}

func (s *Server) respondRentals(c *gin.Context, req rentaldomain.ListRequest) {
	resp, err := s.rentalSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) loadOwnRental(c *gin.Context) (*rentaldomain.Rental, bool) {
	rentalID, err := parseUUIDParam(c.Param("id"), "id")
	if err != nil {
		AbortWithError(c, err)
		return nil, false
	}

	rental, err := s.rentalSvc.Get(c.Request.Context(), rentalID)
	if err != nil {
		AbortWithError(c, err)
		return nil, false
	}
	if err := s.authorizeOwner(c, authorization.ObjectRental, authorization.ActionViewAny, rental.AccountID); err != nil {
		AbortWithError(c, err)
		return nil, false
	}
	return rental, true
}

func parseRentalStatus(value string) (rentaldomain.Status, error) {
	status := rentaldomain.Status(strings.ToUpper(strings.TrimSpace(value)))
	switch status {
	case "", rentaldomain.StatusActive, rentaldomain.StatusCompleted:
		return status, nil
	default:
		return "", newValidationError("status", "invalid_status", "invalid status")
	}
}

func isRentalValidationError(err error) bool {
	switch err {
	case rentaldomain.ErrInvalidID,
		rentaldomain.ErrInvalidDistance,
		rentaldomain.ErrInvalidRentalType:
		return true
	default:
		return false
	}
}
