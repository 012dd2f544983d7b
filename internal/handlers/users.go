package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/moviematch/backend/internal/middleware"
	"github.com/moviematch/backend/internal/services"
	"github.com/moviematch/backend/pkg/utils"
)

type UsersHandler struct {
	Social *services.SocialService
}

func NewUsersHandler(social *services.SocialService) *UsersHandler {
	return &UsersHandler{Social: social}
}

func (h *UsersHandler) Recommended(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	users, err := h.Social.RecommendedUsers(c.Context(), user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, users)
}

func (h *UsersHandler) Friends(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	friends, err := h.Social.Friends(c.Context(), user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, friends)
}

func (h *UsersHandler) SendFriendRequest(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	recipientID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid recipient id")
	}

	request, err := h.Social.SendFriendRequest(c.Context(), user.ID, recipientID)
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusCreated, request)
}

func (h *UsersHandler) AcceptFriendRequest(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	requestID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request id")
	}

	request, err := h.Social.AcceptFriendRequest(c.Context(), requestID, user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, request)
}

func (h *UsersHandler) FriendRequests(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	result, err := h.Social.FriendRequests(c.Context(), user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, result)
}

func (h *UsersHandler) OutgoingFriendRequests(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	requests, err := h.Social.OutgoingFriendRequests(c.Context(), user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, requests)
}
