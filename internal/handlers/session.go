package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	apperrors "coldmail/job-application-helper/internal/errors"
	"coldmail/job-application-helper/internal/models"
	"coldmail/job-application-helper/internal/repositories"
)

const sessionLocalsKey = "session"

// SessionMiddleware resolves the caller's session from a uuid cookie and issues a
// fresh id when the cookie is missing or malformed.
func SessionMiddleware(sessions repositories.SessionRepository, cookieName string, ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Cookies(cookieName)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		sess, err := sessions.Get(c.UserContext(), id)
		if err != nil {
			return apperrors.NewInternal(err)
		}

		c.Cookie(&fiber.Cookie{
			Name:     cookieName,
			Value:    id,
			Path:     "/",
			Expires:  time.Now().Add(ttl),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		c.Locals(sessionLocalsKey, sess)

		return c.Next()
	}
}

func currentSession(c *fiber.Ctx) (*models.Session, error) {
	sess, ok := c.Locals(sessionLocalsKey).(*models.Session)
	if !ok || sess == nil {
		return nil, apperrors.NewInternal(nil)
	}
	return sess, nil
}

type SessionHandler struct {
	sessions   repositories.SessionRepository
	cookieName string
}

func NewSessionHandler(sessions repositories.SessionRepository, cookieName string) *SessionHandler {
	return &SessionHandler{
		sessions:   sessions,
		cookieName: cookieName,
	}
}

// HandleEnd drops the caller's history and expires the session cookie.
func (h *SessionHandler) HandleEnd(c *fiber.Ctx) error {
	id := c.Cookies(h.cookieName)
	if _, err := uuid.Parse(id); err == nil {
		if err := h.sessions.Delete(c.UserContext(), id); err != nil {
			return apperrors.NewInternal(fmt.Errorf("failed to delete session: %w", err))
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.SendStatus(fiber.StatusNoContent)
}
