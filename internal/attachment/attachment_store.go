package attachment

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attachment_store.go -destination=mock/attachment_store_mock.go -package=mock
type Store interface {
	// Put stores a blob under its id.
	Put(ctx context.Context, att *Attachment) error
	// Get returns the blob or attachmenterrors.ErrProofBlobNotFound. A
	// missing blob is a reportable condition, never fatal: record
	// metadata and blob content are kept in separate stores without a
	// transaction spanning both.
	Get(ctx context.Context, id string) (*Attachment, error)
	// Delete removes the blob. Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
}

type store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &store{db: db}
}

func (s *store) Put(ctx context.Context, att *Attachment) error {
	return mapStoreError(s.db.WithContext(ctx).Create(att).Error)
}

func (s *store) Get(ctx context.Context, id string) (*Attachment, error) {
	var att Attachment
	err := s.db.WithContext(ctx).First(&att, "id = ?", id).Error
	if err != nil {
		return nil, mapStoreError(err)
	}
	return &att, nil
}

func (s *store) Delete(ctx context.Context, id string) error {
	return mapStoreError(
		s.db.WithContext(ctx).Delete(&Attachment{}, "id = ?", id).Error,
	)
}
