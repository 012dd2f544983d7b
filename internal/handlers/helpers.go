package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/moviematch/backend/internal/services"
	"github.com/moviematch/backend/pkg/logger"
	"github.com/moviematch/backend/pkg/utils"
)

func parseUUID(value string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(value))
}

// serviceError translates the typed service errors into the status codes of
// the API contract. Anything unrecognized is reported as a generic 500 so no
// internal detail leaks.
func serviceError(c *fiber.Ctx, err error) error {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		return utils.Error(c, fiber.StatusBadRequest, validationErr.Error())
	}

	var conflictErr *services.ConflictError
	if errors.As(err, &conflictErr) {
		return utils.Error(c, fiber.StatusConflict, conflictErr.Error())
	}

	var authzErr *services.AuthorizationError
	if errors.As(err, &authzErr) {
		return utils.Error(c, fiber.StatusForbidden, authzErr.Error())
	}

	var notFoundErr *services.NotFoundError
	if errors.As(err, &notFoundErr) {
		return utils.Error(c, fiber.StatusNotFound, notFoundErr.Error())
	}

	var persistErr *services.PersistenceError
	if errors.As(err, &persistErr) {
		logger.Error("storage_failure", persistErr.Unwrap(), map[string]interface{}{
			"op":   persistErr.Op,
			"path": c.Path(),
		})
		return utils.Error(c, fiber.StatusInternalServerError, persistErr.Error())
	}

	logger.Error("unexpected_error", err, map[string]interface{}{"path": c.Path()})
	return utils.Error(c, fiber.StatusInternalServerError, "internal server error")
}
