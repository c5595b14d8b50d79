package repositories_test

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/postboard/backend/internal/models"
	"github.com/postboard/backend/internal/repositories"
	"github.com/postboard/backend/internal/testutil"
)

func TestPostgresGroupRepository_DeleteGroup(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	groups := repositories.NewPostgresGroupRepository(db)
	posts := repositories.NewPostgresPostRepository(db)

	author := testutil.SeedUser(t, db, "author")
	group := testutil.SeedGroup(t, db, "Temporary", "tmp")

	post := &models.Post{Text: "hello", AuthorID: author.ID, GroupID: &group.ID}
	if err := posts.CreatePost(post); err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	if err := groups.DeleteGroup(group.ID); err != nil {
		t.Fatalf("DeleteGroup() error = %v", err)
	}

	if _, err := groups.GetGroupBySlug("tmp"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("group still present after delete: err = %v", err)
	}

	// The post survives with its group reference cleared.
	got, err := posts.GetPostByID(post.ID)
	if err != nil {
		t.Fatalf("GetPostByID() after group delete error = %v", err)
	}
	if got.GroupID != nil {
		t.Errorf("got GroupID = %v, want nil", *got.GroupID)
	}
	if got.Text != "hello" {
		t.Errorf("post text changed: %q", got.Text)
	}
}

func TestPostgresGroupRepository_SlugUnique(t *testing.T) {
	t.Parallel()
	db := testutil.NewTestDB(t)
	groups := repositories.NewPostgresGroupRepository(db)

	if err := groups.CreateGroup(&models.Group{Title: "One", Slug: "same"}); err != nil {
		t.Fatalf("CreateGroup() error = %v", err)
	}
	if err := groups.CreateGroup(&models.Group{Title: "Two", Slug: "same"}); err == nil {
		t.Error("want unique violation for duplicate slug, got nil")
	}
}
