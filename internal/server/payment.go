package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/scootfleet/internal/authorization"
	paymentdomain "github.com/smallbiznis/scootfleet/internal/payment/domain"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
)

type makePaymentRequest struct {
	UserID   string          `json:"user_id"`
	Amount   decimal.Decimal `json:"amount"`
	Metadata map[string]any  `json:"metadata"`
}

// MakePayment tops up the actor's balance unless user_id names another account.
func (s *Server) MakePayment(c *gin.Context) {
	var req makePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	actor, ok := actorFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	accountID := actor.ID
	if strings.TrimSpace(req.UserID) != "" {
		parsed, err := parseUUIDParam(req.UserID, "user_id")
		if err != nil {
			AbortWithError(c, err)
			return
		}
		accountID = parsed
	}
	if err := s.authorizeOwner(c, authorization.ObjectPayment, authorization.ActionCreateAny, accountID); err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.paymentSvc.MakePayment(c.Request.Context(), paymentdomain.CreateRequest{
		AccountID: accountID,
		Amount:    req.Amount,
		Metadata:  req.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetPaymentByID(c *gin.Context) {
	resp, err := s.paymentSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if err := s.authorizeOwner(c, authorization.ObjectPayment, authorization.ActionViewAny, resp.AccountID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPaymentsByUser(c *gin.Context) {
	accountID, err := parseUUIDParam(c.Param("userId"), "user_id")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if err := s.authorizeOwner(c, authorization.ObjectPayment, authorization.ActionViewAny, accountID); err != nil {
		AbortWithError(c, err)
		return
	}

	var query pagination.Pagination
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.paymentSvc.ListByAccount(c.Request.Context(), accountID.String(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdatePaymentStatus(c *gin.Context) {
	var req paymentdomain.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	status := paymentdomain.Status(strings.ToUpper(strings.TrimSpace(string(req.Status))))
	resp, err := s.paymentSvc.UpdateStatus(c.Request.Context(), strings.TrimSpace(c.Param("id")), status)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isPaymentValidationError(err error) bool {
	switch err {
	case paymentdomain.ErrInvalidID,
		paymentdomain.ErrInvalidAmount,
		paymentdomain.ErrInvalidStatus:
		return true
	default:
		return false
	}
}
