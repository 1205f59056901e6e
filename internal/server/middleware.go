package server

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	accountdomain "github.com/smallbiznis/scootfleet/internal/account/domain"
	obscontext "github.com/smallbiznis/scootfleet/internal/observability/context"
)

const (
	HeaderUserID    = "X-User-Id"
	contextActorKey = "actor"
)

// ActorRequired resolves the calling account from the X-User-Id header.
func (s *Server) ActorRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(HeaderUserID))
		if raw == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if _, err := uuid.Parse(raw); err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		account, err := s.accountSvc.Get(c.Request.Context(), raw)
		if err != nil {
			if errors.Is(err, accountdomain.ErrNotFound) || errors.Is(err, accountdomain.ErrInvalidID) {
				AbortWithError(c, ErrUnauthorized)
				return
			}
			AbortWithError(c, err)
			return
		}

		actor := Actor{ID: account.ID, Role: string(account.Role)}
		c.Set(contextActorKey, actor)
		c.Request = c.Request.WithContext(obscontext.WithActor(c.Request.Context(), actor.Role, actor.ID.String()))
		c.Next()
	}
}
