package blog

import "github.com/shopadmin/backend/internal/domain/shared"

// PostStatus is the publication state of a post
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

var postStatusLabels = map[PostStatus]string{
	PostStatusDraft:     "Черновик",
	PostStatusPublished: "Опубликовано",
}

// PostStatuses lists the statuses in display order
var PostStatuses = []PostStatus{PostStatusDraft, PostStatusPublished}

// IsValid reports whether s is a known status
func (s PostStatus) IsValid() bool {
	_, ok := postStatusLabels[s]
	return ok
}

// Label returns the display label
func (s PostStatus) Label() string {
	if l, ok := postStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

func (s PostStatus) String() string {
	return string(s)
}

// PostStatusChoices returns the statuses with their labels
func PostStatusChoices() []shared.Choice {
	out := make([]shared.Choice, 0, len(PostStatuses))
	for _, s := range PostStatuses {
		out = append(out, shared.Choice{Value: string(s), Label: s.Label()})
	}
	return out
}
