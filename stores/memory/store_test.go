package memory

import (
	"context"
	"testing"
	"time"

	"github.com/Nubit3/trex-art/core"
)

func TestAddAndList(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, name := range []string{"c.png", "a.png", "b.gif"} {
		if _, err := store.Add(ctx, &core.GalleryImage{
			Collection: "art",
			Name:       name,
			ModTime:    base.Add(time.Duration(2-i) * time.Minute),
		}); err != nil {
			t.Fatalf("Add(%s) failed: %v", name, err)
		}
	}
	if _, err := store.Add(ctx, &core.GalleryImage{Collection: "comics", Name: "strip.png"}); err != nil {
		t.Fatal(err)
	}

	images, err := store.List(ctx, "art")
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	want := []string{"/art/b.gif", "/art/a.png", "/art/c.png"}
	if len(images) != len(want) {
		t.Fatalf("List() length mismatch: got %d, want %d", len(images), len(want))
	}
	for i, img := range images {
		if img.URL != want[i] {
			t.Errorf("URL mismatch at %d: got %s, want %s", i, img.URL, want[i])
		}
		if img.ID == "" {
			t.Error("expected a generated id")
		}
	}
}

func TestAdd_Idempotent(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	id1, err := store.Add(ctx, &core.GalleryImage{Collection: "art", Name: "rex.png"})
	if err != nil {
		t.Fatal(err)
	}
	id2, err := store.Add(ctx, &core.GalleryImage{Collection: "art", Name: "rex.png", ModTime: time.Now()})
	if err != nil {
		t.Fatal(err)
	}
	if id1 != id2 {
		t.Errorf("id mismatch on re-add: got %s, want %s", id2, id1)
	}
	images, _ := store.List(ctx, "art")
	if len(images) != 1 {
		t.Errorf("List() length mismatch: got %d, want 1", len(images))
	}
}

func TestAdd_Validation(t *testing.T) {
	store := NewStore()
	if _, err := store.Add(context.Background(), &core.GalleryImage{Name: "rex.png"}); err == nil {
		t.Error("expected an error without a collection")
	}
}

func TestList_UnknownCollection(t *testing.T) {
	images, err := NewStore().List(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if images == nil || len(images) != 0 {
		t.Errorf("expected an empty non-nil list, got %v", images)
	}
}
