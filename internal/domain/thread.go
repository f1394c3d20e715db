package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Thread is a community forum post.
type Thread struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	PostTitle       string             `bson:"postTitle" json:"postTitle" validate:"required"`
	PostDescription string             `bson:"postDescription" json:"postDescription" validate:"required"`
	AuthorName      string             `bson:"authorName,omitempty" json:"authorName,omitempty"`
	AuthorEmail     string             `bson:"authorEmail" json:"authorEmail" validate:"required"`
	AuthorImage     string             `bson:"authorImage,omitempty" json:"authorImage,omitempty"`
	Category        string             `bson:"category,omitempty" json:"category,omitempty"`
	LikedBy         []string           `bson:"likedBy" json:"likedBy"`
	LikesCount      int                `bson:"likesCount" json:"likesCount"`
	Comments        []Comment          `bson:"comments" json:"comments"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

type Comment struct {
	AuthorName  string    `bson:"authorName,omitempty" json:"authorName,omitempty"`
	AuthorEmail string    `bson:"authorEmail,omitempty" json:"authorEmail,omitempty"`
	AuthorImage string    `bson:"authorImage,omitempty" json:"authorImage,omitempty"`
	Text        string    `bson:"text" json:"text" validate:"required"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// HasLiked reports whether email is among the users who liked the thread.
func (t Thread) HasLiked(email string) bool {
	for _, e := range t.LikedBy {
		if e == email {
			return true
		}
	}
	return false
}
