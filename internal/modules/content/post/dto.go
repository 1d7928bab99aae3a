package post

// ProductTagInput is one product attached to a post, optionally anchored to a
// point in the video.
type ProductTagInput struct {
	ProductID string `json:"productId" binding:"required"`
	Timestamp *int   `json:"timestamp"`
	Position  int    `json:"position"`
}

type CreatePostDTO struct {
	Title         string            `json:"title" binding:"required,min=1,max=200"`
	Slug          string            `json:"slug"`
	Content       string            `json:"content"`
	VideoURL      string            `json:"videoUrl"`
	VideoPlatform string            `json:"videoPlatform"`
	IsPublished   bool              `json:"isPublished"`
	Products      []ProductTagInput `json:"products"`
}

type UpdatePostDTO struct {
	Title         *string `json:"title"`
	Slug          *string `json:"slug"`
	Content       *string `json:"content"`
	VideoURL      *string `json:"videoUrl"`
	VideoPlatform *string `json:"videoPlatform"`
	IsPublished   *bool   `json:"isPublished"`

	// Products replaces the full tag set when present. nil leaves tags alone.
	Products []ProductTagInput `json:"products"`
}

type ListQuery struct {
	Published      *bool
	IncludeDeleted bool
}
