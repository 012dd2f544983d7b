package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/moviematch/backend/internal/models"
	"github.com/moviematch/backend/pkg/logger"
	"gorm.io/gorm"
)

type ReviewService struct {
	DB *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{DB: db}
}

type CreateReviewInput struct {
	MovieTitle string
	Rating     int
	Comment    string
}

func (s *ReviewService) Create(ctx context.Context, authorID uuid.UUID, input CreateReviewInput) (*models.Review, error) {
	input.MovieTitle = strings.TrimSpace(input.MovieTitle)
	input.Comment = strings.TrimSpace(input.Comment)

	if input.MovieTitle == "" {
		return nil, &ValidationError{Field: "movieTitle", Message: "is required"}
	}
	if input.Comment == "" {
		return nil, &ValidationError{Field: "comment", Message: "is required"}
	}
	if input.Rating < 1 || input.Rating > 10 {
		return nil, &ValidationError{Field: "rating", Message: "must be between 1 and 10"}
	}

	review := models.Review{
		AuthorID:   authorID,
		MovieTitle: input.MovieTitle,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}

	if err := s.DB.WithContext(ctx).Create(&review).Error; err != nil {
		logger.ErrorWithUser(authorID.String(), "review_create_failed", err, map[string]interface{}{
			"movie_title": input.MovieTitle,
		})
		return nil, &PersistenceError{Op: "creating review", Err: err}
	}

	if err := s.DB.WithContext(ctx).Preload("Author").First(&review, "id = ?", review.ID).Error; err != nil {
		return nil, &PersistenceError{Op: "loading created review", Err: err}
	}

	logger.InfoWithUser(authorID.String(), "review_created", map[string]interface{}{
		"review_id":   review.ID.String(),
		"movie_title": review.MovieTitle,
		"rating":      review.Rating,
	})

	return &review, nil
}

// ListAll returns the full feed newest first with authors populated.
func (s *ReviewService) ListAll(ctx context.Context) ([]models.Review, error) {
	reviews := []models.Review{}
	err := s.DB.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, &PersistenceError{Op: "listing reviews", Err: err}
	}
	return reviews, nil
}

// ListByUser returns one author's reviews newest first. A user with no
// reviews yields an empty slice, not an error.
func (s *ReviewService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Review, error) {
	reviews := []models.Review{}
	err := s.DB.WithContext(ctx).
		Preload("Author").
		Where("author_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, &PersistenceError{Op: "listing user reviews", Err: err}
	}
	return reviews, nil
}
