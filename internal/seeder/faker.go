package seeder

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// FakePrefix marks every generated title and body so seeded rows are easy to
// find and remove.
const FakePrefix = "FAKE: "

const (
	contentChars = 100
	titleChars   = 20
)

type PostOptions struct {
	AuthorID int64
	PostType string
	GUIDBase string
}

type DataGenerator struct {
	faker *gofakeit.Faker
	now   func() time.Time
	opts  PostOptions
}

func NewDataGenerator(opts PostOptions) *DataGenerator {
	return &DataGenerator{
		faker: gofakeit.New(0),
		now:   time.Now,
		opts:  opts,
	}
}

// WithSeed makes the generated text reproducible.
func (g *DataGenerator) WithSeed(seed uint64) *DataGenerator {
	g.faker = gofakeit.New(seed)
	return g
}

func (g *DataGenerator) Post() Post {
	now := g.now()
	content := FakePrefix + g.Text(contentChars)
	name := g.Hash()

	return Post{
		Author:          g.opts.AuthorID,
		Date:            now,
		DateGMT:         now,
		Content:         content,
		Title:           FakePrefix + g.Text(titleChars),
		Status:          "publish",
		CommentStatus:   "open",
		PingStatus:      "open",
		Name:            name,
		Modified:        now,
		ModifiedGMT:     now,
		GUID:            g.opts.GUIDBase + name,
		Type:            g.opts.PostType,
		ContentFiltered: content,
	}
}

// Text returns a capitalized sentence of at most maxChars characters ending
// with a period.
func (g *DataGenerator) Text(maxChars int) string {
	if maxChars < 2 {
		return "."
	}
	limit := maxChars - 1

	var b strings.Builder
	for {
		word := g.faker.Word()
		if word == "" {
			continue
		}
		if b.Len() == 0 {
			if len(word) > limit {
				word = word[:limit]
			}
			b.WriteString(strings.ToUpper(word[:1]) + word[1:])
			continue
		}
		if b.Len()+1+len(word) > limit {
			break
		}
		b.WriteByte(' ')
		b.WriteString(word)
	}
	b.WriteByte('.')
	return b.String()
}

// Hash returns the hex MD5 of a freshly generated random value.
func (g *DataGenerator) Hash() string {
	sum := md5.Sum([]byte(g.faker.UUID()))
	return hex.EncodeToString(sum[:])
}
