package mongo

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bloglist/blog-api/internal/core/domain"
)

func TestPostDocument_RoundTrip(t *testing.T) {
	owner := primitive.NewObjectID()
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	doc, err := fromDomainPost(&domain.Post{
		Title:     "Go",
		Content:   "body",
		Author:    "Alice",
		URL:       "https://example.com",
		Likes:     3,
		UserID:    owner.Hex(),
		CreatedAt: created,
	})
	if err != nil {
		t.Fatalf("fromDomainPost: %v", err)
	}
	doc.ID = primitive.NewObjectID()

	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := m["_id"]; !ok {
		t.Fatalf("expected _id in stored document")
	}
	if m["user"] != owner {
		t.Fatalf("expected user reference %v, got %v", owner, m["user"])
	}

	p := doc.toDomain()
	if p.ID != doc.ID.Hex() || p.UserID != owner.Hex() || p.Likes != 3 || !p.CreatedAt.Equal(created) {
		t.Fatalf("unexpected domain post: %+v", p)
	}
}

func TestPostDocument_Unowned(t *testing.T) {
	doc, err := fromDomainPost(&domain.Post{Title: "legacy"})
	if err != nil {
		t.Fatalf("fromDomainPost: %v", err)
	}
	raw, _ := bson.Marshal(doc)
	var m bson.M
	_ = bson.Unmarshal(raw, &m)
	if _, ok := m["user"]; ok {
		t.Fatalf("expected user to be omitted for unowned post")
	}
	if doc.toDomain().UserID != "" {
		t.Fatalf("expected empty owner")
	}
}

func TestPostDocument_BadOwner(t *testing.T) {
	if _, err := fromDomainPost(&domain.Post{Title: "x", UserID: "nope"}); !errors.Is(err, domain.ErrMalformedID) {
		t.Fatalf("expected ErrMalformedID, got %v", err)
	}
}

func TestObjectIDs_SkipsMalformed(t *testing.T) {
	good := primitive.NewObjectID()
	out := objectIDs([]string{good.Hex(), "bad", ""})
	if len(out) != 1 || out[0] != good {
		t.Fatalf("unexpected ids: %v", out)
	}
	if hex := hexIDs(out); len(hex) != 1 || hex[0] != good.Hex() {
		t.Fatalf("unexpected hex ids: %v", hex)
	}
}
