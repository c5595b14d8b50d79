package service_test

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/gorm"

	"github.com/postboard/backend/internal/models"
	"github.com/postboard/backend/internal/repositories"
	"github.com/postboard/backend/internal/service"
	"github.com/postboard/backend/internal/storage"
	"github.com/postboard/backend/internal/testutil"
)

type fixture struct {
	db      *gorm.DB
	posts   *repositories.PostgresPostRepository
	groups  *repositories.PostgresGroupRepository
	follows *repositories.PostgresFollowRepository
	users   *repositories.PostgresUserRepository
	feeds   *service.FeedService
	writes  *service.PostService
	social  *service.FollowService
	blobs   *storage.MemoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	posts := repositories.NewPostgresPostRepository(db)
	groups := repositories.NewPostgresGroupRepository(db)
	users := repositories.NewPostgresUserRepository(db)
	follows := repositories.NewPostgresFollowRepository(db)
	comments := repositories.NewPostgresCommentRepository(db)
	blobs := storage.NewMemoryStore()
	return &fixture{
		db:      db,
		posts:   posts,
		groups:  groups,
		follows: follows,
		users:   users,
		feeds:   service.NewFeedService(posts, groups, users, follows, comments, nil),
		writes:  service.NewPostService(posts, groups, comments, blobs, nil),
		social:  service.NewFollowService(follows, users),
		blobs:   blobs,
	}
}

func (f *fixture) post(t *testing.T, author *models.User, text string, groupID *uint) *models.Post {
	t.Helper()
	post := &models.Post{Text: text, AuthorID: author.ID, GroupID: groupID}
	if err := f.posts.CreatePost(post); err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}

func TestFeedService_GlobalFeed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	author := testutil.SeedUser(t, f.db, "author")

	for i := 0; i < 13; i++ {
		f.post(t, author, fmt.Sprintf("post %d", i), nil)
	}

	t.Run("newest first, fixed page size", func(t *testing.T) {
		page, err := f.feeds.GlobalFeed(ctx, 1)
		if err != nil {
			t.Fatalf("GlobalFeed() error = %v", err)
		}
		if len(page.Items) != 10 || page.TotalPages != 2 || page.TotalItems != 13 {
			t.Fatalf("page 1: %d items, %d pages, %d total", len(page.Items), page.TotalPages, page.TotalItems)
		}
		if page.Items[0].Text != "post 12" {
			t.Errorf("newest post first: got %q", page.Items[0].Text)
		}
	})

	t.Run("pages are disjoint and contiguous", func(t *testing.T) {
		one, err := f.feeds.GlobalFeed(ctx, 1)
		if err != nil {
			t.Fatalf("GlobalFeed(1) error = %v", err)
		}
		two, err := f.feeds.GlobalFeed(ctx, 2)
		if err != nil {
			t.Fatalf("GlobalFeed(2) error = %v", err)
		}
		if len(two.Items) != 3 {
			t.Fatalf("page 2 has %d items, want 3", len(two.Items))
		}
		seen := map[uint]bool{}
		for _, p := range one.Items {
			seen[p.ID] = true
		}
		for _, p := range two.Items {
			if seen[p.ID] {
				t.Fatalf("post %d appears on both pages", p.ID)
			}
		}
		if last, first := one.Items[len(one.Items)-1], two.Items[0]; first.PubDate.After(last.PubDate) {
			t.Error("pages not contiguous: page 2 starts newer than page 1 ends")
		}
	})

	t.Run("idempotent with no intervening writes", func(t *testing.T) {
		a, err := f.feeds.GlobalFeed(ctx, 1)
		if err != nil {
			t.Fatalf("GlobalFeed() error = %v", err)
		}
		b, err := f.feeds.GlobalFeed(ctx, 1)
		if err != nil {
			t.Fatalf("GlobalFeed() error = %v", err)
		}
		if len(a.Items) != len(b.Items) {
			t.Fatalf("repeat request: %d vs %d items", len(a.Items), len(b.Items))
		}
		for i := range a.Items {
			if a.Items[i].ID != b.Items[i].ID {
				t.Fatalf("repeat request differs at index %d", i)
			}
		}
	})

	t.Run("out-of-range page clamps to last", func(t *testing.T) {
		page, err := f.feeds.GlobalFeed(ctx, 50)
		if err != nil {
			t.Fatalf("GlobalFeed() error = %v", err)
		}
		if page.Number != 2 || len(page.Items) != 3 {
			t.Errorf("got page %d with %d items, want page 2 with 3", page.Number, len(page.Items))
		}
	})
}

func TestFeedService_GroupFeed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("group scenario: post, delete group, detail survives", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		author := testutil.SeedUser(t, f.db, "u1")
		group := testutil.SeedGroup(t, f.db, "Temporary", "tmp")

		post := f.post(t, author, "hello", &group.ID)

		feed, err := f.feeds.GroupFeed(ctx, "tmp", 1)
		if err != nil {
			t.Fatalf("GroupFeed() error = %v", err)
		}
		if len(feed.Page.Items) != 1 || feed.Page.Items[0].ID != post.ID {
			t.Fatalf("group feed should contain exactly the one post: %+v", feed.Page.Items)
		}

		if err := f.groups.DeleteGroup(group.ID); err != nil {
			t.Fatalf("DeleteGroup() error = %v", err)
		}

		detail, err := f.feeds.PostDetail(ctx, post.ID)
		if err != nil {
			t.Fatalf("PostDetail() after group delete error = %v", err)
		}
		if detail.Post.GroupID != nil {
			t.Errorf("post still references deleted group %d", *detail.Post.GroupID)
		}
	})

	t.Run("unknown slug is not found", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		if _, err := f.feeds.GroupFeed(ctx, "nope", 1); !service.IsNotFound(err) {
			t.Errorf("GroupFeed() error = %v, want NotFoundError", err)
		}
	})
}

func TestFeedService_AuthorFeed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	author := testutil.SeedUser(t, f.db, "pushkin")
	fan := testutil.SeedUser(t, f.db, "mike")
	stranger := testutil.SeedUser(t, f.db, "conor")

	for i := 0; i < 13; i++ {
		f.post(t, author, fmt.Sprintf("post %d", i), nil)
	}
	if err := f.follows.CreateFollow(&models.Follow{FollowerID: fan.ID, FollowingID: author.ID}); err != nil {
		t.Fatalf("CreateFollow() error = %v", err)
	}

	t.Run("13 posts paginate 10 then 3", func(t *testing.T) {
		one, err := f.feeds.AuthorFeed(ctx, "pushkin", 0, 1)
		if err != nil {
			t.Fatalf("AuthorFeed() error = %v", err)
		}
		two, err := f.feeds.AuthorFeed(ctx, "pushkin", 0, 2)
		if err != nil {
			t.Fatalf("AuthorFeed() error = %v", err)
		}
		if len(one.Page.Items) != 10 || len(two.Page.Items) != 3 {
			t.Errorf("got %d then %d items, want 10 then 3", len(one.Page.Items), len(two.Page.Items))
		}
	})

	t.Run("viewer flags", func(t *testing.T) {
		own, err := f.feeds.AuthorFeed(ctx, "pushkin", author.ID, 1)
		if err != nil {
			t.Fatalf("AuthorFeed() error = %v", err)
		}
		if !own.IsOwnProfile || own.IsFollowing {
			t.Errorf("own profile: isOwn=%v isFollowing=%v", own.IsOwnProfile, own.IsFollowing)
		}

		fanView, err := f.feeds.AuthorFeed(ctx, "pushkin", fan.ID, 1)
		if err != nil {
			t.Fatalf("AuthorFeed() error = %v", err)
		}
		if fanView.IsOwnProfile || !fanView.IsFollowing {
			t.Errorf("follower view: isOwn=%v isFollowing=%v", fanView.IsOwnProfile, fanView.IsFollowing)
		}

		strangerView, err := f.feeds.AuthorFeed(ctx, "pushkin", stranger.ID, 1)
		if err != nil {
			t.Fatalf("AuthorFeed() error = %v", err)
		}
		if strangerView.IsOwnProfile || strangerView.IsFollowing {
			t.Errorf("stranger view: isOwn=%v isFollowing=%v", strangerView.IsOwnProfile, strangerView.IsFollowing)
		}

		anon, err := f.feeds.AuthorFeed(ctx, "pushkin", 0, 1)
		if err != nil {
			t.Fatalf("AuthorFeed() error = %v", err)
		}
		if anon.IsOwnProfile || anon.IsFollowing {
			t.Errorf("anonymous view: isOwn=%v isFollowing=%v", anon.IsOwnProfile, anon.IsFollowing)
		}
	})

	t.Run("unknown username is not found", func(t *testing.T) {
		if _, err := f.feeds.AuthorFeed(ctx, "ghost", 0, 1); !service.IsNotFound(err) {
			t.Errorf("AuthorFeed() error = %v, want NotFoundError", err)
		}
	})
}

func TestFeedService_FollowedFeed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	author := testutil.SeedUser(t, f.db, "u1")
	fan := testutil.SeedUser(t, f.db, "u2")
	outsider := testutil.SeedUser(t, f.db, "u3")

	if err := f.social.Follow(ctx, fan.ID, "u1"); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}
	post := f.post(t, author, "for followers", nil)

	t.Run("follower sees the post", func(t *testing.T) {
		page, err := f.feeds.FollowedFeed(ctx, fan.ID, 1)
		if err != nil {
			t.Fatalf("FollowedFeed() error = %v", err)
		}
		if len(page.Items) != 1 || page.Items[0].ID != post.ID {
			t.Errorf("follower feed = %+v, want the single post", page.Items)
		}
	})

	t.Run("non-follower does not", func(t *testing.T) {
		page, err := f.feeds.FollowedFeed(ctx, outsider.ID, 1)
		if err != nil {
			t.Fatalf("FollowedFeed() error = %v", err)
		}
		if len(page.Items) != 0 {
			t.Errorf("non-follower feed not empty: %+v", page.Items)
		}
	})

	t.Run("anonymous viewer must authenticate", func(t *testing.T) {
		var authErr *service.AuthRequiredError
		if _, err := f.feeds.FollowedFeed(ctx, 0, 1); !errorsAs(err, &authErr) {
			t.Errorf("FollowedFeed() error = %v, want AuthRequiredError", err)
		}
	})

	t.Run("author delete empties the feed", func(t *testing.T) {
		if err := f.users.DeleteUser(author.ID); err != nil {
			t.Fatalf("DeleteUser() error = %v", err)
		}
		page, err := f.feeds.FollowedFeed(ctx, fan.ID, 1)
		if err != nil {
			t.Fatalf("FollowedFeed() after author delete error = %v", err)
		}
		if len(page.Items) != 0 {
			t.Errorf("deleted author's post still served: %+v", page.Items)
		}
		global, err := f.feeds.GlobalFeed(ctx, 1)
		if err != nil {
			t.Fatalf("GlobalFeed() error = %v", err)
		}
		if len(global.Items) != 0 {
			t.Errorf("deleted author's post still in global feed: %+v", global.Items)
		}
	})
}

func TestFeedService_PostDetail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	author := testutil.SeedUser(t, f.db, "author")
	reader := testutil.SeedUser(t, f.db, "reader")

	first := f.post(t, author, "first", nil)
	f.post(t, author, "second", nil)

	for _, text := range []string{"one", "two", "three"} {
		if _, err := f.writes.CreateComment(ctx, reader.ID, first.ID, service.CommentInput{Text: text}); err != nil {
			t.Fatalf("CreateComment() error = %v", err)
		}
	}

	t.Run("comments oldest first, author post count", func(t *testing.T) {
		detail, err := f.feeds.PostDetail(ctx, first.ID)
		if err != nil {
			t.Fatalf("PostDetail() error = %v", err)
		}
		if detail.AuthorPostCount != 2 {
			t.Errorf("author post count = %d, want 2", detail.AuthorPostCount)
		}
		if len(detail.Comments) != 3 {
			t.Fatalf("got %d comments, want 3", len(detail.Comments))
		}
		want := []string{"one", "two", "three"}
		for i, c := range detail.Comments {
			if c.Text != want[i] {
				t.Errorf("comment %d = %q, want %q", i, c.Text, want[i])
			}
		}
	})

	t.Run("missing post is not found", func(t *testing.T) {
		if _, err := f.feeds.PostDetail(ctx, 9999); !service.IsNotFound(err) {
			t.Errorf("PostDetail() error = %v, want NotFoundError", err)
		}
	})
}
