package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"league-tracker/internal/domain"

	"github.com/rs/zerolog"
)

func seedPost(id, author string) domain.BlogPost {
	return domain.BlogPost{
		ID:          id,
		Title:       "Post " + id,
		Content:     "content",
		AuthorEmail: author,
		AuthorName:  "Author",
		CreatedAt:   time.Now().UTC(),
	}
}

func TestBlogRepositoryPrependOrder(t *testing.T) {
	repo := NewBlogRepository(newTestStore(t), zerolog.Nop())
	ctx := context.Background()

	for _, id := range []string{"1", "2", "3"} {
		if err := repo.Prepend(ctx, seedPost(id, "ana@club.org")); err != nil {
			t.Fatalf("Prepend(%s): %v", id, err)
		}
	}

	posts, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(posts) != 3 || posts[0].ID != "3" || posts[2].ID != "1" {
		t.Errorf("posts not newest first: %v", posts)
	}
}

func TestBlogRepositoryDeleteEnforcesAuthor(t *testing.T) {
	repo := NewBlogRepository(newTestStore(t), zerolog.Nop())
	ctx := context.Background()

	if err := repo.Prepend(ctx, seedPost("1", "ana@club.org")); err != nil {
		t.Fatalf("Prepend: %v", err)
	}

	if err := repo.Delete(ctx, "1", "ben@club.org"); !errors.Is(err, domain.ErrNotPostAuthor) {
		t.Errorf("Delete by non-author = %v, want ErrNotPostAuthor", err)
	}
	if err := repo.Delete(ctx, "missing", "ana@club.org"); !errors.Is(err, domain.ErrPostNotFound) {
		t.Errorf("Delete missing post = %v, want ErrPostNotFound", err)
	}

	if err := repo.Delete(ctx, "1", "ANA@CLUB.ORG"); err != nil {
		t.Fatalf("Delete by author (case-insensitive): %v", err)
	}
	posts, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("post survived deletion: %v", posts)
	}
}
