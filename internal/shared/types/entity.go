package types

import (
	"strings"
	"time"
)

// EntityType discriminates the kinds of file-system entities
type EntityType string

const (
	EntityFile      EntityType = "file"
	EntityDirectory EntityType = "directory"
	EntityLink      EntityType = "link"
	// EntityApplication is a legacy variant kept for old persisted trees.
	// New code paths create links with LinkTargetApplication instead.
	EntityApplication EntityType = "application"
)

// IsValid reports whether the entity type is recognized
func (t EntityType) IsValid() bool {
	switch t {
	case EntityFile, EntityDirectory, EntityLink, EntityApplication:
		return true
	}
	return false
}

// LinkTargetType discriminates what a link points at
type LinkTargetType string

const (
	LinkTargetApplication LinkTargetType = "application"
	LinkTargetDirectory   LinkTargetType = "directory"
	LinkTargetFile        LinkTargetType = "file"
	LinkTargetURL         LinkTargetType = "url"
)

// IsValid reports whether the link target type is recognized
func (t LinkTargetType) IsValid() bool {
	switch t {
	case LinkTargetApplication, LinkTargetDirectory, LinkTargetFile, LinkTargetURL:
		return true
	}
	return false
}

// LinkSuffix is carried by link names and stripped for presentation
const LinkSuffix = ".lnk"

// Entity represents a node in the virtual file system.
// Type discriminates the variant; File, directory and link fields are
// only meaningful for their respective types.
type Entity struct {
	ID         string                 `json:"id"`
	Name       string                 `json:"name"`
	Type       EntityType             `json:"type"`
	ParentID   *string                `json:"parent_id,omitempty"` // nil only for the root directory
	CreatedAt  time.Time              `json:"created_at"`
	ModifiedAt time.Time              `json:"modified_at"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`

	// File fields
	Content  string `json:"content,omitempty"`
	MimeType string `json:"mime_type,omitempty"`

	// Link fields. Target holds an application id, an entity id, or a URL
	// depending on TargetType; entity targets are always ids, never paths.
	TargetType LinkTargetType `json:"target_type,omitempty"`
	Target     string         `json:"target,omitempty"`

	// Legacy application variant
	AppID string `json:"app_id,omitempty"`
}

// NewDirectory creates a directory entity
func NewDirectory(id, name string, parentID *string) *Entity {
	now := time.Now()
	return &Entity{
		ID:         id,
		Name:       name,
		Type:       EntityDirectory,
		ParentID:   parentID,
		CreatedAt:  now,
		ModifiedAt: now,
		Metadata:   map[string]interface{}{},
	}
}

// NewFile creates a file entity
func NewFile(id, name string, parentID *string, content, mimeType string) *Entity {
	now := time.Now()
	return &Entity{
		ID:         id,
		Name:       name,
		Type:       EntityFile,
		ParentID:   parentID,
		CreatedAt:  now,
		ModifiedAt: now,
		Metadata:   map[string]interface{}{},
		Content:    content,
		MimeType:   mimeType,
	}
}

// NewLink creates a link entity. The name is normalized to carry LinkSuffix.
func NewLink(id, name string, parentID *string, targetType LinkTargetType, target string) *Entity {
	now := time.Now()
	return &Entity{
		ID:         id,
		Name:       NormalizeLinkName(name),
		Type:       EntityLink,
		ParentID:   parentID,
		CreatedAt:  now,
		ModifiedAt: now,
		Metadata:   map[string]interface{}{},
		TargetType: targetType,
		Target:     target,
	}
}

// NormalizeLinkName ensures a link name carries the link suffix exactly once
func NormalizeLinkName(name string) string {
	if strings.HasSuffix(name, LinkSuffix) {
		return name
	}
	return name + LinkSuffix
}

// DisplayName returns the presentation name, with the link suffix stripped
func (e *Entity) DisplayName() string {
	if e.Type == EntityLink {
		return strings.TrimSuffix(e.Name, LinkSuffix)
	}
	return e.Name
}

// IsDir reports whether the entity is a directory
func (e *Entity) IsDir() bool {
	return e.Type == EntityDirectory
}

// IsRoot reports whether the entity is the file-system root
func (e *Entity) IsRoot() bool {
	return e.ParentID == nil
}

// Clone returns a deep copy safe to hand to callers
func (e *Entity) Clone() *Entity {
	c := *e
	if e.ParentID != nil {
		pid := *e.ParentID
		c.ParentID = &pid
	}
	if e.Metadata != nil {
		c.Metadata = make(map[string]interface{}, len(e.Metadata))
		for k, v := range e.Metadata {
			c.Metadata[k] = v
		}
	}
	return &c
}

// State is the persisted file-system aggregate: the root id. The full
// entity lookup lives in the store itself, keyed by id and parent id.
type State struct {
	RootID  string    `json:"root_id"`
	SavedAt time.Time `json:"saved_at"`
}

// FSStats contains file-system statistics
type FSStats struct {
	TotalEntities int            `json:"total_entities"`
	ByType        map[string]int `json:"by_type"`
	RootID        string         `json:"root_id"`
}
