package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FriendRequestStatus string

const (
	FriendRequestStatusPending  FriendRequestStatus = "pending"
	FriendRequestStatusAccepted FriendRequestStatus = "accepted"
)

// FriendRequest is a directed proposal from sender to recipient. PairKey is
// the canonical unordered encoding of the two user ids; its unique index is
// what guarantees at most one request per pair even under concurrent sends.
type FriendRequest struct {
	BaseModel
	SenderID    uuid.UUID           `json:"senderID" gorm:"type:uuid;not null;index"`
	RecipientID uuid.UUID           `json:"recipientID" gorm:"type:uuid;not null;index"`
	PairKey     string              `json:"-" gorm:"type:varchar(80);not null;uniqueIndex"`
	Status      FriendRequestStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`

	Sender    User `json:"sender,omitempty" gorm:"foreignKey:SenderID;references:ID"`
	Recipient User `json:"recipient,omitempty" gorm:"foreignKey:RecipientID;references:ID"`
}

func (r *FriendRequest) BeforeCreate(tx *gorm.DB) error {
	if err := r.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if r.PairKey == "" {
		r.PairKey = PairKey(r.SenderID, r.RecipientID)
	}
	return nil
}

func (FriendRequest) TableName() string {
	return "friend_requests"
}

// PairKey encodes an unordered user-id pair as "smaller:larger".
func PairKey(a, b uuid.UUID) string {
	first, second := a.String(), b.String()
	if second < first {
		first, second = second, first
	}
	return first + ":" + second
}

// Friendship is one direction of an accepted friendship; every acceptance
// writes two mirrored rows so each user's friend list is a plain lookup on
// user_id. The composite unique index makes the append idempotent.
type Friendship struct {
	BaseModel
	UserID   uuid.UUID `json:"userID" gorm:"type:uuid;not null;index;uniqueIndex:idx_friend_pair"`
	FriendID uuid.UUID `json:"friendID" gorm:"type:uuid;not null;index;uniqueIndex:idx_friend_pair"`

	Friend User `json:"friend,omitempty" gorm:"foreignKey:FriendID;references:ID"`
}

func (Friendship) TableName() string {
	return "friendships"
}
