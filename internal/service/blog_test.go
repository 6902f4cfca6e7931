package service

import (
	"context"
	"errors"
	"testing"

	"league-tracker/internal/domain"
)

func TestBlogServiceAdd(t *testing.T) {
	d := newTestDeps(t)
	ctx := context.Background()
	ana := domain.Player{Name: "Ana", Email: "ana@club.org"}

	post, err := d.blog.Add(ctx, ana, "  Season opener  ", "First matches this Saturday.", "/blobs/abc")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if post.ID == "" {
		t.Error("post has no id")
	}
	if post.Title != "Season opener" {
		t.Errorf("title not trimmed: %q", post.Title)
	}
	if post.AuthorEmail != "ana@club.org" || post.AuthorName != "Ana" {
		t.Errorf("author stamp = %q / %q", post.AuthorEmail, post.AuthorName)
	}

	if _, err := d.blog.Add(ctx, ana, "   ", "content", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("blank title accepted: %v", err)
	}
	if _, err := d.blog.Add(ctx, ana, "title", "", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("blank content accepted: %v", err)
	}
}

func TestBlogServiceDelete(t *testing.T) {
	d := newTestDeps(t)
	ctx := context.Background()
	ana := domain.Player{Name: "Ana", Email: "ana@club.org"}
	ben := domain.Player{Name: "Ben", Email: "ben@club.org"}

	post, err := d.blog.Add(ctx, ana, "Title", "Content", "")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := d.blog.Delete(ctx, ben, post.ID); !errors.Is(err, domain.ErrNotPostAuthor) {
		t.Errorf("Delete by non-author = %v, want ErrNotPostAuthor", err)
	}
	if err := d.blog.Delete(ctx, ana, post.ID); err != nil {
		t.Fatalf("Delete by author: %v", err)
	}

	posts, err := d.blog.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("post survived deletion: %v", posts)
	}
}
