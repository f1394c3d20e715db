package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dbakibillah/petVerse-server/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type threadRepository struct {
	collection Collection
}

func NewThreadRepository(db *mongo.Database) ThreadRepository {
	return &threadRepository{collection: db.Collection(ThreadsCollection)}
}

func (r threadRepository) ListThreads(ctx context.Context) ([]domain.Thread, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}

	threads := []domain.Thread{}
	if err := cursor.All(ctx, &threads); err != nil {
		return nil, fmt.Errorf("failed to decode threads: %w", err)
	}
	return threads, nil
}

func (r threadRepository) GetThread(ctx context.Context, id string) (*domain.Thread, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var thread domain.Thread
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&thread)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrThreadNotFound
		}
		return nil, fmt.Errorf("failed to get thread: %w", err)
	}
	return &thread, nil
}

func (r threadRepository) CreateThread(ctx context.Context, thread *domain.Thread) (string, error) {
	if thread.LikedBy == nil {
		thread.LikedBy = []string{}
	}
	if thread.Comments == nil {
		thread.Comments = []domain.Comment{}
	}

	res, err := r.collection.InsertOne(ctx, thread)
	if err != nil {
		return "", fmt.Errorf("failed to create thread: %w", err)
	}
	return insertedID(res), nil
}

func (r threadRepository) SetLike(ctx context.Context, id, email string, like bool) (bool, error) {
	oid, err := objectID(id)
	if err != nil {
		return false, err
	}

	// the likedBy condition makes the toggle a no-op when the state already holds
	var filter, update bson.M
	if like {
		filter = bson.M{"_id": oid, "likedBy": bson.M{"$ne": email}}
		update = bson.M{
			"$addToSet": bson.M{"likedBy": email},
			"$inc":      bson.M{"likesCount": 1},
		}
	} else {
		filter = bson.M{"_id": oid, "likedBy": email}
		update = bson.M{
			"$pull": bson.M{"likedBy": email},
			"$inc":  bson.M{"likesCount": -1},
		}
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to update likes: %w", err)
	}
	return result.ModifiedCount > 0, nil
}

func (r threadRepository) AddComment(ctx context.Context, id string, comment domain.Comment) (bool, error) {
	oid, err := objectID(id)
	if err != nil {
		return false, err
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$push": bson.M{"comments": comment}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to add comment: %w", err)
	}
	return result.ModifiedCount > 0, nil
}
