package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"league-tracker/internal/domain"

	"github.com/rs/zerolog"
)

const blogPostsKey = "blogPosts"

type BlogRepository struct {
	store  *Store
	logger zerolog.Logger
	mu     sync.Mutex
}

func NewBlogRepository(store *Store, logger zerolog.Logger) *BlogRepository {
	return &BlogRepository{store: store, logger: logger}
}

// List returns the posts newest first, as stored.
func (r *BlogRepository) List(ctx context.Context) ([]domain.BlogPost, error) {
	var posts []domain.BlogPost
	if _, err := r.store.GetJSON(ctx, blogPostsKey, &posts); err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []domain.BlogPost{}
	}
	return posts, nil
}

// Prepend adds a post at the head of the collection.
func (r *BlogRepository) Prepend(ctx context.Context, post domain.BlogPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	posts, err := r.List(ctx)
	if err != nil {
		return err
	}
	posts = append([]domain.BlogPost{post}, posts...)
	if err := r.store.PutJSON(ctx, blogPostsKey, posts); err != nil {
		return err
	}

	r.logger.Info().Str("id", post.ID).Str("author", post.AuthorEmail).Msg("blog post added")
	return nil
}

// Delete removes a post, enforcing that only its author may do so.
func (r *BlogRepository) Delete(ctx context.Context, id, authorEmail string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	posts, err := r.List(ctx)
	if err != nil {
		return err
	}

	for i, post := range posts {
		if post.ID != id {
			continue
		}
		if !strings.EqualFold(post.AuthorEmail, authorEmail) {
			return fmt.Errorf("%w: %s", domain.ErrNotPostAuthor, id)
		}
		posts = append(posts[:i], posts[i+1:]...)
		if err := r.store.PutJSON(ctx, blogPostsKey, posts); err != nil {
			return err
		}
		r.logger.Info().Str("id", id).Msg("blog post deleted")
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrPostNotFound, id)
}
