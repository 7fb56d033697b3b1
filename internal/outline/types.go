package outline

import "time"

// Document mirrors the document payload of the wiki API.
type Document struct {
	ID           string     `json:"id" yaml:"id"`
	URLID        string     `json:"urlId" yaml:"urlId"`
	Title        string     `json:"title" yaml:"title"`
	Text         string     `json:"text" yaml:"text"`
	CollectionID string     `json:"collectionId" yaml:"collectionId"`
	UpdatedAt    time.Time  `json:"updatedAt" yaml:"updatedAt"`
	PublishedAt  *time.Time `json:"publishedAt" yaml:"publishedAt"`
	ArchivedAt   *time.Time `json:"archivedAt" yaml:"archivedAt"`
	DeletedAt    *time.Time `json:"deletedAt" yaml:"deletedAt"`
}

// IsPublished reports whether the document has left draft state.
func (d Document) IsPublished() bool { return d.PublishedAt != nil && !d.PublishedAt.IsZero() }

// IsArchived reports whether the document was archived.
func (d Document) IsArchived() bool { return d.ArchivedAt != nil && !d.ArchivedAt.IsZero() }

// IsDeleted reports whether the document is in the trash.
func (d Document) IsDeleted() bool { return d.DeletedAt != nil && !d.DeletedAt.IsZero() }

// Collection mirrors the collection payload of the wiki API.
type Collection struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Color       string `json:"color" yaml:"color"`
}

// Pagination is the paging envelope returned by list endpoints.
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ListRequest is the body of a list call.
type ListRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// DocumentListResponse mirrors /api/documents.list.
type DocumentListResponse struct {
	Data       []Document `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// CollectionListResponse mirrors /api/collections.list.
type CollectionListResponse struct {
	Data       []Collection `json:"data"`
	Pagination Pagination   `json:"pagination"`
}

// CollectionName returns the name of the collection with id, or "" when it is
// not in the list.
func CollectionName(collections []Collection, id string) string {
	for _, c := range collections {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}
