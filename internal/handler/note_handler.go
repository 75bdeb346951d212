package handler

import (
	"net/http"

	"backend/internal/service"
	"backend/pkg/listing"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type NoteHandler struct {
	noteService service.NoteService
}

func NewNoteHandler(noteService service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

func (h *NoteHandler) RegisterRoutes(router *gin.RouterGroup) {
	notes := router.Group("/api/notes")
	{
		notes.POST("", h.CreateNote)
		notes.POST("/list", h.ListNotes)
		notes.GET("/:id", h.GetNote)
		notes.PATCH("/:id", h.UpdateNote)
		notes.DELETE("/:id", h.DeleteNote)
	}
}

func (h *NoteHandler) ListNotes(c *gin.Context) {
	var q listing.Query
	if err := c.ShouldBindJSON(&q); err != nil {
		respondBadRequest(c, err)
		return
	}

	page, err := h.noteService.ListNotes(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, page))
}

func (h *NoteHandler) GetNote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	note, err := h.noteService.GetNoteByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if note == nil {
		respondNotFound(c, "note", id)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, note))
}

func (h *NoteHandler) CreateNote(c *gin.Context) {
	var req service.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	note, err := h.noteService.CreateNote(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, note))
}

func (h *NoteHandler) UpdateNote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	note, err := h.noteService.UpdateNote(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	if note == nil {
		respondNotFound(c, "note", id)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, note))
}

func (h *NoteHandler) DeleteNote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := h.noteService.DeleteNote(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		respondNotFound(c, "note", id)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"id": id}))
}
