package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dbakibillah/petVerse-server/internal/domain"
	"github.com/dbakibillah/petVerse-server/internal/repository"
	"go.uber.org/zap"
)

type ThreadService struct {
	repo   repository.ThreadRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewThreadService(repo repository.ThreadRepository, logger *zap.Logger) *ThreadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ThreadService{repo: repo, logger: logger.Named("threads"), now: time.Now}
}

// LikeResult is the thread state after a like toggle.
type LikeResult struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`
}

func (s *ThreadService) ListThreads(ctx context.Context) ([]domain.Thread, error) {
	threads, err := s.repo.ListThreads(ctx)
	if err != nil {
		s.logger.Error("repo list threads error", zap.Error(err))
		return nil, storeFailure("failed to fetch threads", err)
	}
	return threads, nil
}

func (s *ThreadService) GetThread(ctx context.Context, id string) (*domain.Thread, error) {
	thread, err := s.repo.GetThread(ctx, id)
	if err != nil {
		return nil, s.threadError(err, id, "failed to fetch thread")
	}
	return thread, nil
}

func (s *ThreadService) CreateThread(ctx context.Context, thread *domain.Thread) (string, error) {
	if thread == nil {
		return "", invalid("Missing required fields", "postTitle", "postDescription", "authorEmail")
	}
	if err := validateStruct(thread, "Missing required fields"); err != nil {
		return "", err
	}
	thread.CreatedAt = s.now()
	thread.LikesCount = len(thread.LikedBy)

	id, err := s.repo.CreateThread(ctx, thread)
	if err != nil {
		s.logger.Error("repo create thread error", zap.Error(err))
		return "", storeFailure("failed to create thread", err)
	}
	return id, nil
}

// ToggleLike likes the thread for userEmail, or withdraws the like when the
// user already liked it.
func (s *ThreadService) ToggleLike(ctx context.Context, id, userEmail string) (*LikeResult, error) {
	userEmail = strings.TrimSpace(userEmail)
	if userEmail == "" {
		return nil, invalid("userEmail is required", "userEmail")
	}

	thread, err := s.repo.GetThread(ctx, id)
	if err != nil {
		return nil, s.threadError(err, id, "failed to fetch thread")
	}

	like := !thread.HasLiked(userEmail)
	changed, err := s.repo.SetLike(ctx, id, userEmail, like)
	if err != nil {
		return nil, s.threadError(err, id, "failed to update likes")
	}
	if !changed {
		// another request toggled the same pair in between
		return nil, conflict("Update failed", nil)
	}

	updated, err := s.repo.GetThread(ctx, id)
	if err != nil {
		return nil, s.threadError(err, id, "failed to fetch thread")
	}
	return &LikeResult{Liked: like, LikesCount: updated.LikesCount}, nil
}

// AddComment appends comment to the thread. The flag reports whether a
// thread was updated.
func (s *ThreadService) AddComment(ctx context.Context, id string, comment domain.Comment) (bool, error) {
	if err := validateStruct(comment, "Missing required fields"); err != nil {
		return false, err
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = s.now()
	}

	ok, err := s.repo.AddComment(ctx, id, comment)
	if err != nil {
		return false, s.threadError(err, id, "failed to add comment")
	}
	return ok, nil
}

func (s *ThreadService) threadError(err error, id, message string) error {
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		return invalid("Invalid thread ID", "id")
	case errors.Is(err, repository.ErrThreadNotFound):
		return notFound("Thread not found", err)
	}
	s.logger.Error(message, zap.String("id", id), zap.Error(err))
	return storeFailure(message, err)
}
