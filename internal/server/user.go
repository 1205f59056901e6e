package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	accountdomain "github.com/smallbiznis/scootfleet/internal/account/domain"
	"github.com/smallbiznis/scootfleet/internal/authorization"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
)

// CreateUser needs assign_role for any role above user.
func (s *Server) CreateUser(c *gin.Context) {
	var req accountdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.Role != "" && req.Role != accountdomain.RoleUser {
		if err := s.authorizeAction(c, authorization.ObjectUser, authorization.ActionUserAssignRole); err != nil {
			AbortWithError(c, err)
			return
		}
	}

	resp, err := s.accountSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListUsers(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Role string `form:"role"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.accountSvc.List(c.Request.Context(), accountdomain.ListRequest{
		Role:       accountdomain.Role(strings.ToLower(strings.TrimSpace(query.Role))),
		Pagination: query.Pagination,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetUserByID(c *gin.Context) {
	userID, err := parseUUIDParam(c.Param("id"), "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if err := s.authorizeOwner(c, authorization.ObjectUser, authorization.ActionViewAny, userID); err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.accountSvc.Get(c.Request.Context(), userID.String())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateUser(c *gin.Context) {
	userID, err := parseUUIDParam(c.Param("id"), "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req accountdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if err := s.authorizeOwner(c, authorization.ObjectUser, authorization.ActionUpdateAny, userID); err != nil {
		AbortWithError(c, err)
		return
	}
	if req.Role != nil {
		if err := s.authorizeAction(c, authorization.ObjectUser, authorization.ActionUserAssignRole); err != nil {
			AbortWithError(c, err)
			return
		}
	}

	resp, err := s.accountSvc.Update(c.Request.Context(), userID.String(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteUser(c *gin.Context) {
	if err := s.accountSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func isAccountValidationError(err error) bool {
	switch err {
	case accountdomain.ErrInvalidID,
		accountdomain.ErrInvalidName,
		accountdomain.ErrInvalidEmail,
		accountdomain.ErrInvalidPassword,
		accountdomain.ErrInvalidRole:
		return true
	default:
		return false
	}
}
