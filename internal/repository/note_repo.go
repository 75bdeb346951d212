package repository

import (
	"context"
	"errors"
	"time"

	"backend/internal/model"
	"backend/pkg/listing"

	"gorm.io/gorm"
)

var noteFields = listing.FieldMap{
	"id":             {Column: "id", Kind: listing.ID},
	"created_at":     {Column: "created_at", Kind: listing.Text},
	"updated_at":     {Column: "updated_at", Kind: listing.Text},
	"text":           {Column: "text", Kind: listing.Text},
	"created_after":  {Column: "created_at", Kind: listing.DateAfter},
	"created_before": {Column: "created_at", Kind: listing.DateBefore},
	"updated_after":  {Column: "updated_at", Kind: listing.DateAfter},
	"updated_before": {Column: "updated_at", Kind: listing.DateBefore},
}

type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) error
	FindByID(ctx context.Context, id int64) (*model.Note, error)
	UpdateText(ctx context.Context, id int64, text string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, q listing.Query) (listing.Page[model.Note], error)
}

type noteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *model.Note) error {
	return GetDB(ctx, r.db).Create(note).Error
}

func (r *noteRepository) FindByID(ctx context.Context, id int64) (*model.Note, error) {
	var note model.Note
	if err := GetDB(ctx, r.db).First(&note, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}

// UpdateText touches updated_at explicitly so the auto-touch contract holds
// even on stores without an ON UPDATE trigger.
func (r *noteRepository) UpdateText(ctx context.Context, id int64, text string) error {
	return GetDB(ctx, r.db).Model(&model.Note{}).Where("id = ?", id).
		Updates(map[string]any{"text": text, "updated_at": time.Now().UTC()}).Error
}

func (r *noteRepository) Delete(ctx context.Context, id int64) error {
	return GetDB(ctx, r.db).Delete(&model.Note{}, "id = ?", id).Error
}

func (r *noteRepository) List(ctx context.Context, q listing.Query) (listing.Page[model.Note], error) {
	db := GetDB(ctx, r.db)
	return listing.Find[model.Note](func() *gorm.DB {
		return db.Model(&model.Note{})
	}, noteFields, q)
}
