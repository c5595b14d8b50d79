package service_test

import (
	"context"
	"testing"

	"github.com/postboard/backend/internal/service"
	"github.com/postboard/backend/internal/testutil"
)

func TestPostService_CreatePost(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("anonymous actor is sent to login", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		var authErr *service.AuthRequiredError
		_, err := f.writes.CreatePost(ctx, 0, service.PostInput{Text: "hi"})
		if !errorsAs(err, &authErr) {
			t.Errorf("CreatePost() error = %v, want AuthRequiredError", err)
		}
	})

	t.Run("empty text is a field error", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		author := testutil.SeedUser(t, f.db, "author")

		var valErr *service.ValidationError
		_, err := f.writes.CreatePost(ctx, author.ID, service.PostInput{Text: "   "})
		if !errorsAs(err, &valErr) {
			t.Fatalf("CreatePost() error = %v, want ValidationError", err)
		}
		if len(valErr.Fields) != 1 || valErr.Fields[0].Field != "text" {
			t.Errorf("fields = %+v, want text annotation", valErr.Fields)
		}
	})

	t.Run("unknown group is a field error", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		author := testutil.SeedUser(t, f.db, "author")

		missing := uint(404)
		var valErr *service.ValidationError
		_, err := f.writes.CreatePost(ctx, author.ID, service.PostInput{Text: "hi", GroupID: &missing})
		if !errorsAs(err, &valErr) {
			t.Fatalf("CreatePost() error = %v, want ValidationError", err)
		}
		if len(valErr.Fields) != 1 || valErr.Fields[0].Field != "group" {
			t.Errorf("fields = %+v, want group annotation", valErr.Fields)
		}
	})

	t.Run("image is stored and referenced", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		author := testutil.SeedUser(t, f.db, "author")

		post, err := f.writes.CreatePost(ctx, author.ID, service.PostInput{
			Text:      "with image",
			ImageName: "pic.png",
			ImageData: []byte{0x89, 0x50},
		})
		if err != nil {
			t.Fatalf("CreatePost() error = %v", err)
		}
		if post.Image == "" {
			t.Fatal("post has no image reference")
		}
		data, err := f.blobs.Open(ctx, post.Image)
		if err != nil {
			t.Fatalf("Open(%q) error = %v", post.Image, err)
		}
		if len(data) != 2 {
			t.Errorf("stored %d bytes, want 2", len(data))
		}
	})

	t.Run("text is trimmed", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		author := testutil.SeedUser(t, f.db, "author")

		post, err := f.writes.CreatePost(ctx, author.ID, service.PostInput{Text: "  hello  "})
		if err != nil {
			t.Fatalf("CreatePost() error = %v", err)
		}
		if post.Text != "hello" {
			t.Errorf("text = %q, want %q", post.Text, "hello")
		}
	})
}

func TestPostService_EditPost(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("author edits their post", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		author := testutil.SeedUser(t, f.db, "author")
		post := f.post(t, author, "before", nil)

		updated, err := f.writes.EditPost(ctx, author.ID, post.ID, service.PostInput{Text: "after"})
		if err != nil {
			t.Fatalf("EditPost() error = %v", err)
		}
		if updated.Text != "after" {
			t.Errorf("text = %q, want %q", updated.Text, "after")
		}
	})

	t.Run("non-author gets a silent redirect, post untouched", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		author := testutil.SeedUser(t, f.db, "author")
		intruder := testutil.SeedUser(t, f.db, "intruder")
		post := f.post(t, author, "original", nil)

		var forbidden *service.ForbiddenError
		_, err := f.writes.EditPost(ctx, intruder.ID, post.ID, service.PostInput{Text: "hijacked"})
		if !errorsAs(err, &forbidden) {
			t.Fatalf("EditPost() error = %v, want ForbiddenError", err)
		}
		if forbidden.RedirectTo == "" {
			t.Error("ForbiddenError carries no redirect destination")
		}

		detail, err := f.feeds.PostDetail(ctx, post.ID)
		if err != nil {
			t.Fatalf("PostDetail() error = %v", err)
		}
		if detail.Post.Text != "original" {
			t.Errorf("post changed by non-author: %q", detail.Post.Text)
		}
	})

	t.Run("missing post is not found", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		author := testutil.SeedUser(t, f.db, "author")

		if _, err := f.writes.EditPost(ctx, author.ID, 9999, service.PostInput{Text: "x"}); !service.IsNotFound(err) {
			t.Errorf("EditPost() error = %v, want NotFoundError", err)
		}
	})
}

func TestPostService_CreateComment(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("comment lands on the post", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		author := testutil.SeedUser(t, f.db, "author")
		reader := testutil.SeedUser(t, f.db, "reader")
		post := f.post(t, author, "a post", nil)

		comment, err := f.writes.CreateComment(ctx, reader.ID, post.ID, service.CommentInput{Text: "well said"})
		if err != nil {
			t.Fatalf("CreateComment() error = %v", err)
		}
		if comment.PostID != post.ID || comment.AuthorID != reader.ID {
			t.Errorf("comment wired wrong: %+v", comment)
		}
		if comment.Created.IsZero() {
			t.Error("store did not assign the comment timestamp")
		}
	})

	t.Run("anonymous actor is sent to login", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		author := testutil.SeedUser(t, f.db, "author")
		post := f.post(t, author, "a post", nil)

		var authErr *service.AuthRequiredError
		if _, err := f.writes.CreateComment(ctx, 0, post.ID, service.CommentInput{Text: "hi"}); !errorsAs(err, &authErr) {
			t.Errorf("CreateComment() error = %v, want AuthRequiredError", err)
		}
	})

	t.Run("missing post is not found", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		reader := testutil.SeedUser(t, f.db, "reader")

		if _, err := f.writes.CreateComment(ctx, reader.ID, 9999, service.CommentInput{Text: "hi"}); !service.IsNotFound(err) {
			t.Errorf("CreateComment() error = %v, want NotFoundError", err)
		}
	})

	t.Run("empty text is a field error", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		author := testutil.SeedUser(t, f.db, "author")
		reader := testutil.SeedUser(t, f.db, "reader")
		post := f.post(t, author, "a post", nil)

		var valErr *service.ValidationError
		if _, err := f.writes.CreateComment(ctx, reader.ID, post.ID, service.CommentInput{Text: " "}); !errorsAs(err, &valErr) {
			t.Errorf("CreateComment() error = %v, want ValidationError", err)
		}
	})
}
