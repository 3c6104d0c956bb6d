package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/bloglist/blog-api/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "bloglist.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func createUser(t *testing.T, st *Store, username string) *domain.User {
	t.Helper()
	u, err := st.Users.Create(context.Background(), &domain.User{
		Username:     username,
		Name:         "Name " + username,
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func TestUserLifecycle(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := createUser(t, st, "alice")
	if u.ID == "" || u.Username != "alice" || len(u.PostIDs) != 0 {
		t.Fatalf("unexpected user: %+v", u)
	}

	byName, err := st.Users.FindByUsername(ctx, "alice")
	if err != nil || byName.ID != u.ID {
		t.Fatalf("find by username: %+v %v", byName, err)
	}

	if _, err := st.Users.FindByUsername(ctx, "nobody"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := st.Users.FindByID(ctx, "not-a-uuid"); !errors.Is(err, domain.ErrMalformedID) {
		t.Fatalf("expected ErrMalformedID, got %v", err)
	}
	if _, err := st.Users.FindByID(ctx, newID()); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDuplicateUsername(t *testing.T) {
	st := newTestStore(t)
	createUser(t, st, "bob")

	_, err := st.Users.Create(context.Background(), &domain.User{Username: "bob", PasswordHash: "x", CreatedAt: time.Now()})
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	users, _ := st.Users.List(context.Background())
	if len(users) != 1 {
		t.Fatalf("expected exactly one user, got %d", len(users))
	}
}

func TestPostLifecycle(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	owner := createUser(t, st, "carol")

	p, err := st.Posts.Create(ctx, &domain.Post{
		Title:     "First",
		Content:   "Hello",
		Author:    "Carol",
		URL:       "https://example.com/1",
		UserID:    owner.ID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if err := st.Users.AppendPost(ctx, owner.ID, p.ID); err != nil {
		t.Fatalf("append post: %v", err)
	}

	got, err := st.Posts.FindByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("find post: %v", err)
	}
	if got.Title != "First" || got.UserID != owner.ID || got.Likes != 0 {
		t.Fatalf("unexpected post: %+v", got)
	}

	reloaded, _ := st.Users.FindByID(ctx, owner.ID)
	if !slices.Contains(reloaded.PostIDs, p.ID) {
		t.Fatalf("expected %s in %v", p.ID, reloaded.PostIDs)
	}

	updated, err := st.Posts.UpdateLikes(ctx, p.ID, 9)
	if err != nil || updated.Likes != 9 {
		t.Fatalf("update likes: %+v %v", updated, err)
	}

	if err := st.Posts.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := st.Users.RemovePost(ctx, owner.ID, p.ID); err != nil {
		t.Fatalf("remove post: %v", err)
	}
	if _, err := st.Posts.FindByID(ctx, p.ID); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
	if err := st.Posts.Delete(ctx, p.ID); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound on second delete, got %v", err)
	}
	reloaded, _ = st.Users.FindByID(ctx, owner.ID)
	if len(reloaded.PostIDs) != 0 {
		t.Fatalf("expected no linked posts, got %v", reloaded.PostIDs)
	}
}

func TestListOrderAndBatchLookup(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	alice := createUser(t, st, "alice")
	bob := createUser(t, st, "bob")

	var ids []string
	for _, title := range []string{"a", "b", "c"} {
		p, err := st.Posts.Create(ctx, &domain.Post{Title: title, Author: "x", UserID: alice.ID, CreatedAt: time.Now()})
		if err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
		_ = st.Users.AppendPost(ctx, alice.ID, p.ID)
		ids = append(ids, p.ID)
	}

	posts, err := st.Posts.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(posts) != 3 || posts[0].Title != "a" || posts[2].Title != "c" {
		t.Fatalf("unexpected order: %+v", posts)
	}

	batch, err := st.Posts.FindByIDs(ctx, []string{ids[2], "garbage", ids[0]})
	if err != nil {
		t.Fatalf("find by ids: %v", err)
	}
	if len(batch) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(batch))
	}

	users, err := st.Users.List(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 2 || users[0].ID != alice.ID || users[1].ID != bob.ID {
		t.Fatalf("unexpected users: %+v", users)
	}
	if len(users[0].PostIDs) != 3 || users[0].PostIDs[0] != ids[0] {
		t.Fatalf("unexpected post ids: %v", users[0].PostIDs)
	}
	if len(users[1].PostIDs) != 0 {
		t.Fatalf("expected bob without posts")
	}
}

func TestUnownedPost(t *testing.T) {
	st := newTestStore(t)
	p, err := st.Posts.Create(context.Background(), &domain.Post{Title: "legacy", Author: domain.DefaultAuthor, CreatedAt: time.Now()})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, _ := st.Posts.FindByID(context.Background(), p.ID)
	if got.UserID != "" {
		t.Fatalf("expected no owner, got %q", got.UserID)
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	st, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	_ = st.Close()

	st, err = Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer st.Close()
	if err := st.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
