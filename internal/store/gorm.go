package store

import (
	"context"

	"gorm.io/gorm"
)

// GormStore persists each collection as one row in entity_collections,
// keeping the full-collection read-modify-write semantics of the original
// design while giving it a durable home.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var row struct {
		Data []byte
	}
	err := s.db.WithContext(ctx).Raw(`
		SELECT data FROM entity_collections WHERE key = ? LIMIT 1
	`, key).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	// data is NOT NULL, so a nil payload means the key has no row yet.
	return row.Data, nil
}

func (s *GormStore) Set(ctx context.Context, key string, data []byte) error {
	return s.db.WithContext(ctx).Exec(`
		INSERT INTO entity_collections (key, data, updated_at)
		VALUES (?, ?, NOW())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
	`, key, data).Error
}
