package service

import (
	"context"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/listing"
)

type NoteRequest struct {
	Text string `json:"text" binding:"required"`
}

type NoteService interface {
	ListNotes(ctx context.Context, q listing.Query) (listing.Page[model.Note], error)
	GetNoteByID(ctx context.Context, id int64) (*model.Note, error)
	CreateNote(ctx context.Context, req NoteRequest) (*model.Note, error)
	UpdateNote(ctx context.Context, id int64, req NoteRequest) (*model.Note, error)
	DeleteNote(ctx context.Context, id int64) (bool, error)
}

type noteService struct {
	noteRepo repository.NoteRepository
}

func NewNoteService(noteRepo repository.NoteRepository) NoteService {
	return &noteService{noteRepo: noteRepo}
}

func (s *noteService) ListNotes(ctx context.Context, q listing.Query) (listing.Page[model.Note], error) {
	return s.noteRepo.List(ctx, q)
}

func (s *noteService) GetNoteByID(ctx context.Context, id int64) (*model.Note, error) {
	return s.noteRepo.FindByID(ctx, id)
}

func (s *noteService) CreateNote(ctx context.Context, req NoteRequest) (*model.Note, error) {
	note := &model.Note{Text: req.Text}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *noteService) UpdateNote(ctx context.Context, id int64, req NoteRequest) (*model.Note, error) {
	note, err := s.noteRepo.FindByID(ctx, id)
	if err != nil || note == nil {
		return nil, err
	}
	if err := s.noteRepo.UpdateText(ctx, id, req.Text); err != nil {
		return nil, err
	}
	return s.noteRepo.FindByID(ctx, id)
}

func (s *noteService) DeleteNote(ctx context.Context, id int64) (bool, error) {
	note, err := s.noteRepo.FindByID(ctx, id)
	if err != nil || note == nil {
		return false, err
	}
	if err := s.noteRepo.Delete(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}
