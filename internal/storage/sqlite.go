package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/carlhannes/hannes-os/internal/shared/types"
)

// entityRecord is the row shape for entities. Metadata is JSON-encoded
// so the open string-keyed map survives the round trip unchanged.
type entityRecord struct {
	ID         string  `gorm:"primaryKey"`
	Name       string  `gorm:"index:idx_entities_parent_name"`
	Type       string  `gorm:"not null"`
	ParentID   *string `gorm:"index:idx_entities_parent_name"`
	CreatedAt  time.Time
	ModifiedAt time.Time
	Metadata   string
	Content    string
	MimeType   string
	TargetType string
	Target     string
	AppID      string
}

func (entityRecord) TableName() string { return "entities" }

// stateRecord is the single-slot aggregate state row
type stateRecord struct {
	ID      uint `gorm:"primaryKey"`
	RootID  string
	SavedAt time.Time
}

func (stateRecord) TableName() string { return "fs_state" }

const stateSlot = 1

// SQLite is a gorm-backed Store over the pure-Go sqlite driver
type SQLite struct {
	db *gorm.DB
}

// NewSQLite opens (or creates) the database at path and migrates the schema
func NewSQLite(path string) (*SQLite, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite store: %w", err)
	}

	if err := db.AutoMigrate(&entityRecord{}, &stateRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate sqlite store: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Put inserts or replaces an entity by id
func (s *SQLite) Put(ctx context.Context, entity *types.Entity) error {
	record, err := toRecord(entity)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Save(record).Error
}

// Get retrieves an entity by id
func (s *SQLite) Get(ctx context.Context, id string) (*types.Entity, error) {
	var record entityRecord
	err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromRecord(&record)
}

// Delete removes an entity by id
func (s *SQLite) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&entityRecord{}, "id = ?", id).Error
}

// ListByParent returns all entities whose ParentID equals parentID
func (s *SQLite) ListByParent(ctx context.Context, parentID string) ([]*types.Entity, error) {
	var records []entityRecord
	if err := s.db.WithContext(ctx).Find(&records, "parent_id = ?", parentID).Error; err != nil {
		return nil, err
	}

	out := make([]*types.Entity, 0, len(records))
	for i := range records {
		entity, err := fromRecord(&records[i])
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, nil
}

// Count returns the total number of stored entities
func (s *SQLite) Count(ctx context.Context) (int, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&entityRecord{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

// SaveState persists the single-slot aggregate state
func (s *SQLite) SaveState(ctx context.Context, state *types.State) error {
	record := stateRecord{
		ID:      stateSlot,
		RootID:  state.RootID,
		SavedAt: state.SavedAt,
	}
	return s.db.WithContext(ctx).Save(&record).Error
}

// LoadState retrieves the aggregate state
func (s *SQLite) LoadState(ctx context.Context) (*types.State, error) {
	var record stateRecord
	err := s.db.WithContext(ctx).First(&record, "id = ?", stateSlot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &types.State{RootID: record.RootID, SavedAt: record.SavedAt}, nil
}

// Close releases the underlying database handle
func (s *SQLite) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

func toRecord(entity *types.Entity) (*entityRecord, error) {
	metadata := "{}"
	if len(entity.Metadata) > 0 {
		data, err := json.Marshal(entity.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to encode metadata: %w", err)
		}
		metadata = string(data)
	}

	return &entityRecord{
		ID:         entity.ID,
		Name:       entity.Name,
		Type:       string(entity.Type),
		ParentID:   entity.ParentID,
		CreatedAt:  entity.CreatedAt,
		ModifiedAt: entity.ModifiedAt,
		Metadata:   metadata,
		Content:    entity.Content,
		MimeType:   entity.MimeType,
		TargetType: string(entity.TargetType),
		Target:     entity.Target,
		AppID:      entity.AppID,
	}, nil
}

func fromRecord(record *entityRecord) (*types.Entity, error) {
	metadata := map[string]interface{}{}
	if record.Metadata != "" {
		if err := json.Unmarshal([]byte(record.Metadata), &metadata); err != nil {
			return nil, fmt.Errorf("failed to decode metadata: %w", err)
		}
	}

	return &types.Entity{
		ID:         record.ID,
		Name:       record.Name,
		Type:       types.EntityType(record.Type),
		ParentID:   record.ParentID,
		CreatedAt:  record.CreatedAt,
		ModifiedAt: record.ModifiedAt,
		Metadata:   metadata,
		Content:    record.Content,
		MimeType:   record.MimeType,
		TargetType: types.LinkTargetType(record.TargetType),
		Target:     record.Target,
		AppID:      record.AppID,
	}, nil
}
