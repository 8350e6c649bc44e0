package dto

// Tag is the DTO representation of a tag.
type Tag struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

// TagCreateRequest is the payload for creating a tag.
type TagCreateRequest struct {
	Name  string `json:"name" binding:"required" validate:"required,max=200"`
	Color string `json:"color" binding:"required" validate:"required,hexcolor,len=7"`
	Slug  string `json:"slug" binding:"required" validate:"required,max=200,slug"`
}

// TagUpdateRequest is the payload for patching a tag.
type TagUpdateRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Color *string `json:"color,omitempty" validate:"omitempty,hexcolor,len=7"`
	Slug  *string `json:"slug,omitempty" validate:"omitempty,max=200,slug"`
}

// TagListResponse is the response for listing tags.
type TagListResponse struct {
	Tags []Tag `json:"tags"`
}
