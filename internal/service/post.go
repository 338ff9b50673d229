package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"focushive/internal/domain"
	"focushive/internal/repository"
)

// PostService handles the post feed.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	if postRepo == nil || userRepo == nil {
		panic("repositories cannot be nil for PostService")
	}
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

// Create publishes a post by authorID.
func (s *PostService) Create(ctx context.Context, authorID uint, content string) (*domain.Post, error) {
	if content == "" {
		return nil, fmt.Errorf("post content is required")
	}
	post := &domain.Post{AuthorID: authorID, Content: content}
	if err := s.postRepo.Save(ctx, post); err != nil {
		logrus.WithError(err).WithField("author_id", authorID).Error("Failed to save post")
		return nil, ErrInternalServer
	}
	logrus.WithFields(logrus.Fields{"author_id": authorID, "post_id": post.ID}).Info("Post created")
	return post, nil
}

// List returns all posts, or only those by authorUsername when non-empty.
func (s *PostService) List(ctx context.Context, authorUsername string) ([]domain.Post, error) {
	if authorUsername == "" {
		posts, err := s.postRepo.FindAll(ctx)
		if err != nil {
			logrus.WithError(err).Error("Failed to list posts")
			return nil, ErrInternalServer
		}
		return posts, nil
	}

	author, err := s.userRepo.FindByUsername(ctx, authorUsername)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrInternalServer
	}
	posts, err := s.postRepo.FindByAuthor(ctx, author.ID)
	if err != nil {
		logrus.WithError(err).WithField("author_id", author.ID).Error("Failed to list posts by author")
		return nil, ErrInternalServer
	}
	return posts, nil
}

// Update changes the content of a post owned by userID.
func (s *PostService) Update(ctx context.Context, userID, postID uint, content string) (*domain.Post, error) {
	post, err := s.authorized(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	post.Content = content
	if err := s.postRepo.Save(ctx, post); err != nil {
		logrus.WithError(err).WithField("post_id", postID).Error("Failed to update post")
		return nil, ErrInternalServer
	}
	return post, nil
}

// Delete removes a post owned by userID.
func (s *PostService) Delete(ctx context.Context, userID, postID uint) error {
	if _, err := s.authorized(ctx, userID, postID); err != nil {
		return err
	}
	if err := s.postRepo.Delete(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return ErrPostNotFound
		}
		logrus.WithError(err).WithField("post_id", postID).Error("Failed to delete post")
		return ErrInternalServer
	}
	return nil
}

func (s *PostService) authorized(ctx context.Context, userID, postID uint) (*domain.Post, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		logrus.WithError(err).WithField("post_id", postID).Error("Failed to load post")
		return nil, ErrInternalServer
	}
	if post.AuthorID != userID {
		return nil, ErrNotPostAuthor
	}
	return post, nil
}
