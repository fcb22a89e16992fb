package seeder

import (
	"context"
	"database/sql"
	"testing"

	"go.uber.org/zap/zaptest"
	_ "modernc.org/sqlite"
)

const postsTable = `CREATE TABLE wp_posts (
	ID INTEGER PRIMARY KEY AUTOINCREMENT,
	post_author INTEGER NOT NULL DEFAULT 0,
	post_date DATETIME NOT NULL,
	post_date_gmt DATETIME NOT NULL,
	post_content TEXT NOT NULL,
	post_title TEXT NOT NULL,
	post_excerpt TEXT NOT NULL,
	post_status VARCHAR(20) NOT NULL DEFAULT 'publish',
	comment_status VARCHAR(20) NOT NULL DEFAULT 'open',
	ping_status VARCHAR(20) NOT NULL DEFAULT 'open',
	post_password VARCHAR(255) NOT NULL DEFAULT '',
	post_name VARCHAR(200) NOT NULL DEFAULT '',
	to_ping TEXT NOT NULL,
	pinged TEXT NOT NULL,
	post_modified DATETIME NOT NULL,
	post_modified_gmt DATETIME NOT NULL,
	post_content_filtered TEXT NOT NULL,
	post_parent INTEGER NOT NULL DEFAULT 0,
	guid VARCHAR(255) NOT NULL DEFAULT '',
	menu_order INTEGER NOT NULL DEFAULT 0,
	post_type VARCHAR(20) NOT NULL DEFAULT 'post',
	post_mime_type VARCHAR(100) NOT NULL DEFAULT '',
	comment_count INTEGER NOT NULL DEFAULT 0
)`

func openPostsDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(postsTable); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	return db
}

func countPosts(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM wp_posts").Scan(&n); err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return n
}

func TestSeedAgainstSQLite(t *testing.T) {
	ctx := context.Background()
	db := openPostsDB(t)

	if _, err := db.Exec(`INSERT INTO wp_posts (post_date, post_date_gmt, post_content, post_title, post_excerpt,
		to_ping, pinged, post_modified, post_modified_gmt, post_content_filtered)
		VALUES ('2020-01-01', '2020-01-01', 'old', 'old', '', '', '', '2020-01-01', '2020-01-01', 'old')`); err != nil {
		t.Fatalf("failed to insert existing row: %v", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("BeginTx() error = %v", err)
	}

	gen := NewDataGenerator(PostOptions{AuthorID: 2, PostType: "product", GUIDBase: "https://eklix.tk/proizvod/"})
	s, err := New(tx, gen, "wp_posts", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	report, err := s.Seed(ctx, SeedConfig{Rows: 5, Clean: true})
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if report.Deleted != 1 || report.Inserted != 5 || report.Failed != 0 {
		t.Errorf("unexpected report %+v", report)
	}

	if got := countPosts(t, db); got != 5 {
		t.Errorf("expected 5 rows after seeding, got %d", got)
	}

	var fakeTitles int
	if err := db.QueryRow("SELECT COUNT(*) FROM wp_posts WHERE post_title LIKE 'FAKE: %' AND post_type = 'product'").Scan(&fakeTitles); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if fakeTitles != 5 {
		t.Errorf("expected 5 fake product rows, got %d", fakeTitles)
	}

	var guid, name string
	if err := db.QueryRow("SELECT guid, post_name FROM wp_posts LIMIT 1").Scan(&guid, &name); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if guid != "https://eklix.tk/proizvod/"+name {
		t.Errorf("guid %q does not end with post_name %q", guid, name)
	}
}

func TestSeedAgainstSQLiteKeepsRowsWithoutClean(t *testing.T) {
	ctx := context.Background()
	db := openPostsDB(t)

	for run := 0; run < 2; run++ {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			t.Fatalf("BeginTx() error = %v", err)
		}
		s, err := New(tx, NewDataGenerator(PostOptions{AuthorID: 2, PostType: "product"}), "wp_posts", zaptest.NewLogger(t))
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if _, err := s.Seed(ctx, SeedConfig{Rows: 3}); err != nil {
			t.Fatalf("Seed() error = %v", err)
		}
	}

	if got := countPosts(t, db); got != 6 {
		t.Errorf("expected 6 rows after two runs, got %d", got)
	}
}
