package seeder

import (
	"encoding/hex"
	"strings"
	"testing"
	"time"
)

func TestPost(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	gen := NewDataGenerator(PostOptions{AuthorID: 2, PostType: "product", GUIDBase: "https://eklix.tk/proizvod/"}).WithSeed(7)
	gen.now = func() time.Time { return fixed }

	post := gen.Post()

	if post.Author != 2 {
		t.Errorf("Author = %d, want 2", post.Author)
	}
	for name, ts := range map[string]time.Time{
		"Date": post.Date, "DateGMT": post.DateGMT, "Modified": post.Modified, "ModifiedGMT": post.ModifiedGMT,
	} {
		if !ts.Equal(fixed) {
			t.Errorf("%s = %v, want %v", name, ts, fixed)
		}
	}

	if !strings.HasPrefix(post.Title, FakePrefix) || len(post.Title) > len(FakePrefix)+titleChars {
		t.Errorf("unexpected title %q", post.Title)
	}
	if !strings.HasPrefix(post.Content, FakePrefix) || len(post.Content) > len(FakePrefix)+contentChars {
		t.Errorf("unexpected content %q", post.Content)
	}
	if post.ContentFiltered != post.Content {
		t.Error("ContentFiltered must mirror Content")
	}

	if len(post.Name) != 32 {
		t.Errorf("Name %q is not an md5 hex digest", post.Name)
	}
	if _, err := hex.DecodeString(post.Name); err != nil {
		t.Errorf("Name %q is not hex: %v", post.Name, err)
	}
	if post.GUID != "https://eklix.tk/proizvod/"+post.Name {
		t.Errorf("GUID = %q", post.GUID)
	}

	if post.Status != "publish" || post.CommentStatus != "open" || post.PingStatus != "open" {
		t.Errorf("unexpected statuses %q/%q/%q", post.Status, post.CommentStatus, post.PingStatus)
	}
	if post.Type != "product" {
		t.Errorf("Type = %q, want product", post.Type)
	}
	if post.Parent != 0 || post.MenuOrder != 0 || post.CommentCount != 0 {
		t.Error("ordering fields must be zero")
	}
	if post.Excerpt != "" || post.ToPing != "" || post.Pinged != "" || post.MimeType != "" || post.Password != "" {
		t.Error("empty text fields must stay empty")
	}

	if len(post.Columns()) != len(post.Values()) {
		t.Errorf("%d columns but %d values", len(post.Columns()), len(post.Values()))
	}
}

func TestText(t *testing.T) {
	gen := NewDataGenerator(PostOptions{}).WithSeed(1)

	for _, limit := range []int{2, 5, 20, 100, 200} {
		for i := 0; i < 50; i++ {
			text := gen.Text(limit)
			if len(text) > limit {
				t.Fatalf("Text(%d) = %q exceeds limit", limit, text)
			}
			if !strings.HasSuffix(text, ".") {
				t.Fatalf("Text(%d) = %q does not end with a period", limit, text)
			}
			if len(text) < 2 {
				t.Fatalf("Text(%d) = %q is empty", limit, text)
			}
		}
	}

	if got := gen.Text(1); got != "." {
		t.Errorf("Text(1) = %q", got)
	}
}

func TestHashIsFresh(t *testing.T) {
	gen := NewDataGenerator(PostOptions{})

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		h := gen.Hash()
		if seen[h] {
			t.Fatalf("hash %s repeated after %d draws", h, i)
		}
		seen[h] = true
	}
}
