package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/moviematch/backend/internal/models"
	"github.com/moviematch/backend/pkg/logger"
	"gorm.io/gorm"
)

type SocialService struct {
	DB *gorm.DB
}

func NewSocialService(db *gorm.DB) *SocialService {
	return &SocialService{DB: db}
}

// RecommendedUsers returns every onboarded user except the caller and the
// caller's existing friends. Ordering is not part of the contract; created_at
// just keeps it stable per call.
func (s *SocialService) RecommendedUsers(ctx context.Context, userID uuid.UUID) ([]models.User, error) {
	users := []models.User{}
	err := s.DB.WithContext(ctx).
		Where("id <> ?", userID).
		Where("is_onboarded = ?", true).
		Where("id NOT IN (?)", s.DB.Model(&models.Friendship{}).Select("friend_id").Where("user_id = ?", userID)).
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, &PersistenceError{Op: "listing recommended users", Err: err}
	}
	return users, nil
}

func (s *SocialService) Friends(ctx context.Context, userID uuid.UUID) ([]models.User, error) {
	friends := []models.User{}
	err := s.DB.WithContext(ctx).
		Joins("JOIN friendships ON friendships.friend_id = users.id AND friendships.user_id = ?", userID).
		Find(&friends).Error
	if err != nil {
		return nil, &PersistenceError{Op: "listing friends", Err: err}
	}
	return friends, nil
}

func (s *SocialService) SendFriendRequest(ctx context.Context, senderID, recipientID uuid.UUID) (*models.FriendRequest, error) {
	if senderID == recipientID {
		return nil, &ConflictError{Message: "cannot send a friend request to yourself"}
	}

	var recipient models.User
	if err := s.DB.WithContext(ctx).First(&recipient, "id = ?", recipientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "recipient"}
		}
		return nil, &PersistenceError{Op: "loading recipient", Err: err}
	}

	var friendCount int64
	err := s.DB.WithContext(ctx).Model(&models.Friendship{}).
		Where("user_id = ? AND friend_id = ?", senderID, recipientID).
		Count(&friendCount).Error
	if err != nil {
		return nil, &PersistenceError{Op: "checking friendship", Err: err}
	}
	if friendCount > 0 {
		return nil, &ConflictError{Message: "you are already friends with this user"}
	}

	var existingCount int64
	err = s.DB.WithContext(ctx).Model(&models.FriendRequest{}).
		Where("pair_key = ?", models.PairKey(senderID, recipientID)).
		Count(&existingCount).Error
	if err != nil {
		return nil, &PersistenceError{Op: "checking existing request", Err: err}
	}
	if existingCount > 0 {
		return nil, &ConflictError{Message: "a friend request already exists between you and this user"}
	}

	request := models.FriendRequest{
		SenderID:    senderID,
		RecipientID: recipientID,
		Status:      models.FriendRequestStatusPending,
	}
	if err := s.DB.WithContext(ctx).Create(&request).Error; err != nil {
		// Two concurrent sends race past the existence check; the unique
		// index on pair_key turns the loser into a conflict.
		if IsDuplicateKey(err) {
			return nil, &ConflictError{Message: "a friend request already exists between you and this user"}
		}
		return nil, &PersistenceError{Op: "creating friend request", Err: err}
	}

	logger.InfoWithUser(senderID.String(), "friend_request_sent", map[string]interface{}{
		"request_id":   request.ID.String(),
		"recipient_id": recipientID.String(),
	})

	return &request, nil
}

func (s *SocialService) AcceptFriendRequest(ctx context.Context, requestID, userID uuid.UUID) (*models.FriendRequest, error) {
	var request models.FriendRequest
	if err := s.DB.WithContext(ctx).First(&request, "id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "friend request"}
		}
		return nil, &PersistenceError{Op: "loading friend request", Err: err}
	}

	if request.RecipientID != userID {
		return nil, &AuthorizationError{Message: "only the recipient can accept this friend request"}
	}
	if request.Status == models.FriendRequestStatusAccepted {
		return nil, &ConflictError{Message: "friend request already accepted"}
	}

	// The status flip and both sides of the friendship land together or not
	// at all.
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&request).Update("status", models.FriendRequestStatusAccepted).Error; err != nil {
			return err
		}
		pairs := []models.Friendship{
			{UserID: request.SenderID, FriendID: request.RecipientID},
			{UserID: request.RecipientID, FriendID: request.SenderID},
		}
		for _, pair := range pairs {
			err := tx.Where("user_id = ? AND friend_id = ?", pair.UserID, pair.FriendID).
				FirstOrCreate(&models.Friendship{}, pair).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, &PersistenceError{Op: "accepting friend request", Err: err}
	}

	logger.InfoWithUser(userID.String(), "friend_request_accepted", map[string]interface{}{
		"request_id": request.ID.String(),
		"sender_id":  request.SenderID.String(),
	})

	if err := s.DB.WithContext(ctx).Preload("Sender").Preload("Recipient").First(&request, "id = ?", request.ID).Error; err != nil {
		return nil, &PersistenceError{Op: "loading accepted request", Err: err}
	}
	return &request, nil
}

type FriendRequestsResult struct {
	Incoming []models.FriendRequest `json:"incoming"`
	Accepted []models.FriendRequest `json:"accepted"`
}

// FriendRequests returns pending requests addressed to the user and accepted
// requests the user is a party to (the latter drive "new friend"
// notifications).
func (s *SocialService) FriendRequests(ctx context.Context, userID uuid.UUID) (*FriendRequestsResult, error) {
	result := &FriendRequestsResult{
		Incoming: []models.FriendRequest{},
		Accepted: []models.FriendRequest{},
	}

	err := s.DB.WithContext(ctx).
		Preload("Sender").
		Where("recipient_id = ? AND status = ?", userID, models.FriendRequestStatusPending).
		Order("created_at DESC").
		Find(&result.Incoming).Error
	if err != nil {
		return nil, &PersistenceError{Op: "listing incoming requests", Err: err}
	}

	err = s.DB.WithContext(ctx).
		Preload("Sender").
		Preload("Recipient").
		Where("(sender_id = ? OR recipient_id = ?) AND status = ?", userID, userID, models.FriendRequestStatusAccepted).
		Order("updated_at DESC").
		Find(&result.Accepted).Error
	if err != nil {
		return nil, &PersistenceError{Op: "listing accepted requests", Err: err}
	}

	return result, nil
}

func (s *SocialService) OutgoingFriendRequests(ctx context.Context, userID uuid.UUID) ([]models.FriendRequest, error) {
	requests := []models.FriendRequest{}
	err := s.DB.WithContext(ctx).
		Preload("Recipient").
		Where("sender_id = ? AND status = ?", userID, models.FriendRequestStatusPending).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, &PersistenceError{Op: "listing outgoing requests", Err: err}
	}
	return requests, nil
}
