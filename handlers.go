package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gorilla/mux"
)

const (
	maxBodySize  = 1 << 20
	staticPrefix = "/app/"

	welcomeText     = "Welcome to the Help Center API!"
	msgCardNotFound = "Card not found"
	msgRequired     = "Title and description are required"
	msgInvalidJSON  = "Invalid JSON body"
	msgNoRoute      = "Route not found"
	msgServerFault  = "Something went wrong on the server"
)

type errorBody struct {
	Error string `json:"error"`
}

type cardHandlers struct {
	store  *CardStore
	logger *slog.Logger
}

// newRouter builds the HTTP surface over store. Unknown routes and methods
// answer 404, panics answer 500.
func newRouter(store *CardStore, logger *slog.Logger, staticDir string) http.Handler {
	h := &cardHandlers{store: store, logger: logger}
	r := mux.NewRouter().UseEncodedPath()

	r.HandleFunc("/", h.welcome).Methods(http.MethodGet)
	r.HandleFunc("/cards", h.list).Methods(http.MethodGet)
	r.HandleFunc("/cards", h.create).Methods(http.MethodPost)
	r.HandleFunc("/cards/{title}", h.getByTitle).Methods(http.MethodGet)
	r.HandleFunc("/cards/{id}", h.update).Methods(http.MethodPut)
	r.HandleFunc("/cards/{id}", h.delete).Methods(http.MethodDelete)

	if staticDir != "" {
		r.PathPrefix(staticPrefix).Handler(http.StripPrefix(staticPrefix, http.FileServer(http.Dir(staticDir))))
	}

	r.NotFoundHandler = http.HandlerFunc(routeNotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(routeNotFound)

	return logRequests(logger, recoverFaults(logger, trimTrailingSlash(r)))
}

func (h *cardHandlers) welcome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(welcomeText))
}

func (h *cardHandlers) list(w http.ResponseWriter, r *http.Request) {
	cards := h.store.List()
	h.logger.Debug("cards listed", "count", len(cards))
	writeJSON(w, http.StatusOK, cards)
}

func (h *cardHandlers) getByTitle(w http.ResponseWriter, r *http.Request) {
	title, ok := pathVar(w, r, "title")
	if !ok {
		return
	}
	card, err := h.store.GetByTitle(title)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (h *cardHandlers) create(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeCardInput(w, r)
	if !ok {
		return
	}
	card, err := h.store.Create(in.Title, in.Description)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.logger.Info("card created", "id", card.ID, "title", card.Title)
	writeJSON(w, http.StatusCreated, card)
}

// update answers 404 for an unknown id before looking at the body.
func (h *cardHandlers) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathVar(w, r, "id")
	if !ok {
		return
	}
	if !h.store.Has(id) {
		h.writeStoreError(w, fmt.Errorf("id %q: %w", id, ErrCardNotFound))
		return
	}
	in, ok := decodeCardInput(w, r)
	if !ok {
		return
	}
	card, err := h.store.Update(id, in.Title, in.Description)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.logger.Info("card updated", "id", id)
	writeJSON(w, http.StatusOK, card)
}

func (h *cardHandlers) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathVar(w, r, "id")
	if !ok {
		return
	}
	if err := h.store.Delete(id); err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.logger.Info("card deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// writeStoreError maps store errors onto HTTP replies.
func (h *cardHandlers) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrCardNotFound):
		h.logger.Debug("card lookup failed", "err", err)
		writeError(w, http.StatusNotFound, msgCardNotFound)
	case errors.Is(err, ErrValidation):
		writeError(w, http.StatusBadRequest, msgRequired)
	default:
		h.logger.Error("store failure", "err", err)
		writeError(w, http.StatusInternalServerError, msgServerFault)
	}
}

func decodeCardInput(w http.ResponseWriter, r *http.Request) (cardInput, bool) {
	var in cardInput
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	defer r.Body.Close()
	// An empty body decodes as a card with empty fields.
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return cardInput{}, false
	}
	return in, true
}

// pathVar returns the decoded route variable name. The router matches on the
// escaped path so that titles and ids may contain a slash.
func pathVar(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v, err := url.PathUnescape(mux.Vars(r)[name])
	if err != nil {
		writeError(w, http.StatusNotFound, msgNoRoute)
		return "", false
	}
	return v, true
}

// trimTrailingSlash serves "/cards/" as "/cards". Static files keep their
// path untouched.
func trimTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.Path
		if len(p) > 1 && strings.HasSuffix(p, "/") && !strings.HasPrefix(p, staticPrefix) {
			r = r.Clone(r.Context())
			r.URL.Path = strings.TrimSuffix(p, "/")
			r.URL.RawPath = strings.TrimSuffix(r.URL.RawPath, "/")
		}
		next.ServeHTTP(w, r)
	})
}

func routeNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, msgNoRoute)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// recoverFaults turns a handler panic into a generic 500. The panic value
// and stack go to the log only.
func recoverFaults(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.Error("request fault",
				"method", r.Method,
				"path", r.URL.Path,
				"panic", rec,
				"stack", string(debug.Stack()),
			)
			writeError(w, http.StatusInternalServerError, msgServerFault)
		}()
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func logRequests(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
