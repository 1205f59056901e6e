package server

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Actor struct {
	ID   uuid.UUID
	Role string
}

// authorize gates a route on the actor's role holding (object, action).
func (s *Server) authorize(object string, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.authorizeAction(c, object, action); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

// authorizeOwner passes when the actor owns the record, otherwise the actor needs anyAction.
func (s *Server) authorizeOwner(c *gin.Context, object string, anyAction string, ownerID uuid.UUID) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return ErrUnauthorized
	}
	if ownerID == actor.ID {
		return nil
	}
	return s.authzSvc.Authorize(c.Request.Context(), actor.Role, object, anyAction)
}

func actorFromContext(c *gin.Context) (Actor, bool) {
	if c == nil {
		return Actor{}, false
	}
	value, ok := c.Get(contextActorKey)
	if !ok {
		return Actor{}, false
	}
	actor, ok := value.(Actor)
	if !ok || actor.ID == uuid.Nil {
		return Actor{}, false
	}
	return actor, true
}

func (s *Server) authorizeAction(c *gin.Context, object string, action string) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return ErrUnauthorized
	}
	return s.authzSvc.Authorize(c.Request.Context(), actor.Role, object, action)
}
