package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/docsage/docsage/internal/ingest"
	"github.com/docsage/docsage/internal/model"
	"github.com/docsage/docsage/internal/store"
)

// historyWindow is how many prior turns are loaded for follow-up questions.
// The prompt builder narrows this further; the window just bounds the read.
const historyWindow = 10

type askRequest struct {
	DocumentID string `json:"document_id"`
	Question   string `json:"question"`
}

type challengeRequest struct {
	DocumentID string `json:"document_id"`
	Count      int    `json:"count"`
}

type evaluateRequest struct {
	DocumentID    string `json:"document_id"`
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
}

type uploadResponse struct {
	Status     model.Status `json:"status"`
	DocumentID string       `json:"document_id"`
	Filename   string       `json:"filename"`
	FileType   string       `json:"file_type"`
	WordCount  int          `json:"word_count"`
	CharCount  int          `json:"char_count"`
	Summary    string       `json:"summary"`
}

type challengeResponse struct {
	DocumentID string                    `json:"document_id"`
	Questions  []model.ChallengeQuestion `json:"questions"`
	Status     model.Status              `json:"status"`
	Error      string                    `json:"error,omitempty"`
}

type errorResponse struct {
	Status  model.Status `json:"status"`
	Message string       `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("server: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Status: model.StatusError, Message: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, ingest.MaxFileSize+4096)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "file too large")
		return
	}

	doc, err := ingest.Process(content, header.Filename)
	if err != nil {
		switch {
		case errors.Is(err, ingest.ErrTooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "file exceeds maximum size")
		case errors.Is(err, ingest.ErrUnsupportedType):
			writeError(w, http.StatusBadRequest, "unsupported file type")
		case errors.Is(err, ingest.ErrEmptyDocument):
			writeError(w, http.StatusBadRequest, "document contains no text")
		default:
			writeError(w, http.StatusInternalServerError, "failed to process file")
		}
		return
	}

	// A failed summary does not fail the upload; its placeholder is stored.
	sum := s.svc.Summarize(r.Context(), doc.Text, 0)
	doc.Summary = sum.Summary

	if err := s.store.PutDocument(r.Context(), doc); err != nil {
		zap.L().Error("server: put document", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to store document")
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Status:     model.StatusSuccess,
		DocumentID: doc.ID,
		Filename:   doc.Filename,
		FileType:   doc.FileType,
		WordCount:  doc.WordCount,
		CharCount:  doc.CharCount,
		Summary:    doc.Summary,
	})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.DocumentID == "" || req.Question == "" {
		writeError(w, http.StatusBadRequest, "document_id and question are required")
		return
	}

	doc, ok := s.lookupDocument(w, r, req.DocumentID)
	if !ok {
		return
	}

	history, err := s.store.RecentTurns(r.Context(), doc.ID, historyWindow)
	if err != nil {
		zap.L().Error("server: load history", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load conversation history")
		return
	}

	res := s.svc.Answer(r.Context(), req.Question, doc.Text, history)
	if res.Status != model.StatusSuccess {
		writeJSON(w, http.StatusInternalServerError, res)
		return
	}

	// History is best-effort; a failed write degrades follow-up context
	// but not this answer.
	if err := s.store.AppendTurn(r.Context(), model.ConversationTurn{
		DocumentID:    doc.ID,
		Question:      req.Question,
		Answer:        res.Answer,
		Justification: res.Justification,
		CreatedAt:     time.Now().UTC(),
	}); err != nil {
		zap.L().Warn("server: append turn", zap.Error(err))
	}

	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleChallenge(w http.ResponseWriter, r *http.Request) {
	var req challengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.DocumentID == "" {
		writeError(w, http.StatusBadRequest, "document_id is required")
		return
	}

	doc, ok := s.lookupDocument(w, r, req.DocumentID)
	if !ok {
		return
	}

	res := s.svc.GenerateChallenge(r.Context(), doc.Text, req.Count)
	status := http.StatusOK
	if res.Status != model.StatusSuccess {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, challengeResponse{
		DocumentID: doc.ID,
		Questions:  res.Questions,
		Status:     res.Status,
		Error:      res.Error,
	})
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.DocumentID == "" || req.Question == "" || req.UserAnswer == "" || req.CorrectAnswer == "" {
		writeError(w, http.StatusBadRequest, "document_id, question, user_answer and correct_answer are required")
		return
	}

	doc, ok := s.lookupDocument(w, r, req.DocumentID)
	if !ok {
		return
	}

	res := s.svc.Evaluate(r.Context(), req.Question, req.UserAnswer, req.CorrectAnswer, doc.Text)
	status := http.StatusOK
	if res.Status != model.StatusSuccess {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, res)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.ListDocuments(r.Context(), store.DocumentFilter{})
	if err != nil {
		zap.L().Error("server: list documents", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list documents")
		return
	}
	if docs == nil {
		docs = []model.DocumentInfo{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.lookupDocument(w, r, chi.URLParam(r, "documentID"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, doc.Info())
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "documentID")
	if err := s.store.DeleteDocument(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "document not found")
			return
		}
		zap.L().Error("server: delete document", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to delete document")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "document deleted"})
}

// lookupDocument fetches a document and writes the error response itself
// when the lookup fails.
func (s *Server) lookupDocument(w http.ResponseWriter, r *http.Request, id string) (*model.Document, bool) {
	doc, err := s.store.GetDocument(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "document not found")
			return nil, false
		}
		zap.L().Error("server: get document", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load document")
		return nil, false
	}
	return doc, true
}
