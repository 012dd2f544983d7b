package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/moviematch/backend/internal/middleware"
	"github.com/moviematch/backend/internal/services"
	"github.com/moviematch/backend/pkg/utils"
)

type ReviewsHandler struct {
	Reviews *services.ReviewService
}

func NewReviewsHandler(reviews *services.ReviewService) *ReviewsHandler {
	return &ReviewsHandler{Reviews: reviews}
}

type createReviewRequest struct {
	MovieTitle string `json:"movieTitle"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

func (h *ReviewsHandler) Create(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req createReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	review, err := h.Reviews.Create(c.Context(), user.ID, services.CreateReviewInput{
		MovieTitle: req.MovieTitle,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusCreated, review)
}

func (h *ReviewsHandler) List(c *fiber.Ctx) error {
	reviews, err := h.Reviews.ListAll(c.Context())
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, reviews)
}

func (h *ReviewsHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := parseUUID(c.Params("userId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid user id")
	}

	reviews, err := h.Reviews.ListByUser(c.Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, reviews)
}
