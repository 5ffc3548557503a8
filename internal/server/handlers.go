package server

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"ecdhsim/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

type sendRequest struct {
	Content string `json:"content"`
}

type encryptRequest struct {
	Plaintext string `json:"plaintext"`
}

type decryptRequest struct {
	Ciphertext string `json:"ciphertext,omitempty"`
	IV         string `json:"iv,omitempty"`
}

type tamperRequest struct {
	Index int `json:"index"`
}

// playgroundView renders playground bytes as hex for inspection.
type playgroundView struct {
	Plaintext     string            `json:"plaintext"`
	IV            string            `json:"iv,omitempty"`
	Ciphertext    string            `json:"ciphertext,omitempty"`
	DecryptedText *string           `json:"decrypted_text,omitempty"`
	Error         string            `json:"error,omitempty"`
	SelectedID    *domain.MessageID `json:"selected_id,omitempty"`
}

func newPlaygroundView(st domain.PlaygroundState) playgroundView {
	return playgroundView{
		Plaintext:     st.Plaintext,
		IV:            hex.EncodeToString(st.IV),
		Ciphertext:    hex.EncodeToString(st.Ciphertext),
		DecryptedText: st.DecryptedText,
		Error:         st.Error,
		SelectedID:    st.SelectedID,
	}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sim.Snapshot())
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sim.Logs())
}

// step adapts a simulation action to a handler returning the new snapshot.
func (s *Server) step(action func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := action(r.Context()); err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s.sim.Snapshot())
	}
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.sim.Reset(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	s.pg.Reset()
	writeJSON(w, http.StatusOK, s.sim.Snapshot())
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	peer := domain.PeerLabel(strings.ToUpper(chi.URLParam(r, "peer")))
	if !peer.Valid() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown peer"})
		return
	}
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	msg, err := s.sim.SendMessage(r.Context(), peer, req.Content)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sim.Messages())
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := messageID(w, r)
	if !ok {
		return
	}
	msg, err := s.sim.Message(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

func (s *Server) handlePlaygroundState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newPlaygroundView(s.pg.State()))
}

func (s *Server) handleEncrypt(w http.ResponseWriter, r *http.Request) {
	var req encryptRequest
	if !decodeOptional(w, r, &req) {
		return
	}
	st, err := s.pg.Encrypt(req.Plaintext)
	s.writePlayground(w, st, err)
}

func (s *Server) handleDecrypt(w http.ResponseWriter, r *http.Request) {
	var req decryptRequest
	if !decodeOptional(w, r, &req) {
		return
	}
	var ct, iv []byte
	var err error
	if req.Ciphertext != "" {
		if ct, err = hex.DecodeString(req.Ciphertext); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "ciphertext must be hex"})
			return
		}
	}
	if req.IV != "" {
		if iv, err = hex.DecodeString(req.IV); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "iv must be hex"})
			return
		}
	}
	st, err := s.pg.Decrypt(ct, iv)
	s.writePlayground(w, st, err)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	id, ok := messageID(w, r)
	if !ok {
		return
	}
	st, err := s.pg.Select(id)
	s.writePlayground(w, st, err)
}

func (s *Server) handleTamper(w http.ResponseWriter, r *http.Request) {
	var req tamperRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	st, err := s.pg.Tamper(req.Index)
	if err != nil && statusFor(err) == http.StatusInternalServerError {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	s.writePlayground(w, st, err)
}

// handleLivenessCheck provides a simple health check to verify the server is running.
func (s *Server) handleLivenessCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// handleReadinessCheck reports whether the server is accepting requests.
func (s *Server) handleReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if !s.isReady.Load() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) writePlayground(w http.ResponseWriter, st domain.PlaygroundState, err error) {
	view := newPlaygroundView(st)
	if err == nil {
		writeJSON(w, http.StatusOK, view)
		return
	}
	if view.Error == "" {
		view.Error = err.Error()
	}
	writeJSON(w, statusFor(err), view)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("Simulation action failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrPrecondition):
		return http.StatusConflict
	case errors.Is(err, domain.ErrAuthentication):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrMessageNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownPeer), errors.Is(err, domain.ErrEmptyMessage):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func messageID(w http.ResponseWriter, r *http.Request) (domain.MessageID, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid message id"})
		return 0, false
	}
	return domain.MessageID(id), true
}

// decodeOptional decodes a JSON body if one was sent.
func decodeOptional(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.ContentLength == 0 {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
