package blog

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 15, 22, 30, 0, 0, time.UTC)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Hello World":          "hello-world",
		"  Go -- is _ fun!  ":  "go-is-fun",
		"Привет, Мир":          "привет-мир",
		"100% Pure":            "100-pure",
		"!!!":                  "",
		"Already-a-slug_value": "already-a-slug-value",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}

	long := Slugify(strings.Repeat("a ", 300))
	assert.LessOrEqual(t, len([]rune(long)), MaxSlugLength)
	assert.False(t, strings.HasSuffix(long, "-"))
}

func TestValidSlug(t *testing.T) {
	assert.True(t, ValidSlug("hello-world_2"))
	assert.True(t, ValidSlug("привет"))
	assert.False(t, ValidSlug(""))
	assert.False(t, ValidSlug("has space"))
	assert.False(t, ValidSlug("a/b"))
	assert.False(t, ValidSlug(strings.Repeat("a", MaxSlugLength+1)))
}

func TestNewPost(t *testing.T) {
	p, err := NewPost(PostFields{Title: "Hello World", AuthorID: 1}, now)
	require.NoError(t, err)
	assert.Equal(t, "hello-world", p.Slug)
	assert.Equal(t, PostStatusDraft, p.Status)
	assert.Equal(t, now, p.Publish)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), p.PublishDate)
	assert.Equal(t, "Hello World", p.String())
	assert.False(t, p.IsPublished())

	_, err = NewPost(PostFields{Title: "x", Slug: "bad slug", AuthorID: 1}, now)
	assert.Error(t, err)
	_, err = NewPost(PostFields{Title: "x", AuthorID: 1, Status: "archived"}, now)
	assert.Error(t, err)
	_, err = NewPost(PostFields{Title: "", AuthorID: 1}, now)
	assert.Error(t, err)
}

func TestPost_PublishDateFollowsPublishInUTC(t *testing.T) {
	msk := time.FixedZone("MSK", 3*60*60)
	p, err := NewPost(PostFields{Title: "t", AuthorID: 1, Publish: time.Date(2024, 3, 16, 1, 0, 0, 0, msk)}, now)
	require.NoError(t, err)
	assert.Equal(t, 15, p.PublishDate.Day())
	assert.Equal(t, "/api/v1/blog/posts/2024/3/15/t", p.URLPath())
}

func TestPublishDateOf(t *testing.T) {
	d, ok := PublishDateOf(2024, 2, 29)
	require.True(t, ok)
	assert.Equal(t, time.February, d.Month())

	for _, c := range [][3]int{{2024, 13, 1}, {2023, 2, 29}, {2024, 4, 31}, {2024, 0, 10}} {
		_, ok := PublishDateOf(c[0], c[1], c[2])
		assert.False(t, ok, c)
	}
}

func TestMarkChanged(t *testing.T) {
	p, err := NewPost(PostFields{Title: "Hello", AuthorID: 1, Status: PostStatusPublished}, now)
	require.NoError(t, err)
	p.ID = 9

	p.MarkChanged(ActionSaved)
	events := p.GetDomainEvents()
	require.Len(t, events, 1)
	ev := events[0].(*PostChangedEvent)
	assert.Equal(t, EventTypePostChanged, ev.EventType())
	assert.Equal(t, int64(9), ev.AggregateID())
	assert.True(t, ev.Published)

	p.ClearDomainEvents()
	assert.Empty(t, p.GetDomainEvents())
}

func TestPostStatusChoices(t *testing.T) {
	choices := PostStatusChoices()
	require.Len(t, choices, 2)
	assert.Equal(t, "Опубликовано", choices[1].Label)
}
