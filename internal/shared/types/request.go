package types

// CreateDirectoryRequest creates a directory under a parent
type CreateDirectoryRequest struct {
	Name     string `json:"name" binding:"required"`
	ParentID string `json:"parent_id" binding:"required"`
}

// CreateFileRequest creates a file under a parent
type CreateFileRequest struct {
	Name     string `json:"name" binding:"required"`
	ParentID string `json:"parent_id" binding:"required"`
	Content  string `json:"content"`
	MimeType string `json:"mime_type"`
}

// CreateLinkRequest creates a link under a parent
type CreateLinkRequest struct {
	Name       string         `json:"name" binding:"required"`
	ParentID   string         `json:"parent_id" binding:"required"`
	TargetType LinkTargetType `json:"target_type" binding:"required"`
	Target     string         `json:"target" binding:"required"`
}

// UpdateLinkRequest partially updates a link
type UpdateLinkRequest struct {
	Name       *string         `json:"name,omitempty"`
	TargetType *LinkTargetType `json:"target_type,omitempty"`
	Target     *string         `json:"target,omitempty"`
}

// RenameRequest renames an entity
type RenameRequest struct {
	Name string `json:"name" binding:"required"`
}

// MoveRequest moves an entity to a new parent
type MoveRequest struct {
	ParentID string `json:"parent_id" binding:"required"`
}

// ContentRequest replaces a file's content
type ContentRequest struct {
	Content string `json:"content"`
}

// OpenRequest opens an entity by id or path
type OpenRequest struct {
	EntityID string `json:"entity_id,omitempty"`
	Path     string `json:"path,omitempty"`
}

// ViewportRequest updates the desktop viewport dimensions
type ViewportRequest struct {
	Width  int `json:"width" binding:"required"`
	Height int `json:"height" binding:"required"`
}

// MinimizeRequest minimizes a window with optional animation target
type MinimizeRequest struct {
	Target    *Position `json:"target_position,omitempty"`
	Thumbnail string    `json:"thumbnail,omitempty"`
}

// GeometryRequest updates window position or size during drag/resize
type GeometryRequest struct {
	X      *int `json:"x,omitempty"`
	Y      *int `json:"y,omitempty"`
	Width  *int `json:"width,omitempty"`
	Height *int `json:"height,omitempty"`
}
