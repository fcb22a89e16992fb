package seeder

import "time"

type SeedConfig struct {
	Rows  int  // Number of rows to insert
	Clean bool // Delete existing rows before seeding
}

// Report summarizes one seeding run.
type Report struct {
	Requested int
	Inserted  int
	Failed    int
	Cleaned   bool
	Deleted   int64
	Duration  time.Duration
}

func (r *Report) Attempted() int {
	return r.Inserted + r.Failed
}

// Post is one row of a WordPress style posts table.
type Post struct {
	Author          int64
	Date            time.Time
	DateGMT         time.Time
	Content         string
	Title           string
	Status          string
	CommentStatus   string
	PingStatus      string
	Name            string
	Modified        time.Time
	ModifiedGMT     time.Time
	Parent          int64
	GUID            string
	MenuOrder       int
	Type            string
	Excerpt         string
	ToPing          string
	Pinged          string
	ContentFiltered string
	CommentCount    int64
	MimeType        string
	Password        string
}

var postColumns = []string{
	"post_author", "post_date", "post_date_gmt", "post_content", "post_title",
	"post_status", "comment_status", "ping_status", "post_name", "post_modified",
	"post_modified_gmt", "post_parent", "guid", "menu_order", "post_type",
	"post_excerpt", "to_ping", "pinged", "post_content_filtered", "comment_count",
	"post_mime_type", "post_password",
}

// Columns returns the column names in the order Values uses.
func (p Post) Columns() []string {
	return postColumns
}

func (p Post) Values() []interface{} {
	return []interface{}{
		p.Author, p.Date, p.DateGMT, p.Content, p.Title,
		p.Status, p.CommentStatus, p.PingStatus, p.Name, p.Modified,
		p.ModifiedGMT, p.Parent, p.GUID, p.MenuOrder, p.Type,
		p.Excerpt, p.ToPing, p.Pinged, p.ContentFiltered, p.CommentCount,
		p.MimeType, p.Password,
	}
}
