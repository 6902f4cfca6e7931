package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"league-tracker/internal/constants"
	"league-tracker/internal/domain"
	"league-tracker/internal/repository"

	"github.com/rs/zerolog"
)

type BlogService struct {
	posts  *repository.BlogRepository
	logger zerolog.Logger
}

func NewBlogService(posts *repository.BlogRepository, logger zerolog.Logger) *BlogService {
	return &BlogService{posts: posts, logger: logger}
}

func (s *BlogService) List(ctx context.Context) ([]domain.BlogPost, error) {
	return s.posts.List(ctx)
}

// Add creates a post authored by the given player and prepends it so
// the collection stays newest-first.
func (s *BlogService) Add(ctx context.Context, author domain.Player, title, content, imageURL string) (*domain.BlogPost, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return nil, fmt.Errorf("%w: title and content are required", domain.ErrInvalidInput)
	}

	now := time.Now()
	post := domain.BlogPost{
		ID:          strconv.FormatInt(now.UnixMilli(), 10),
		Title:       title,
		Content:     content,
		ImageURL:    imageURL,
		AuthorEmail: author.Email,
		AuthorName:  author.Name,
		CreatedAt:   now.UTC(),
	}

	if err := s.posts.Prepend(ctx, post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete removes a post on behalf of the requester; only the author
// may delete their own post.
func (s *BlogService) Delete(ctx context.Context, requester domain.Player, id string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.posts.Delete(ctx, id, requester.Email)
}
