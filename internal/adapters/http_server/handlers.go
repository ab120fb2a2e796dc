package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"asili_experiences/internal/app"
	"asili_experiences/internal/booking"
	"asili_experiences/internal/domain"
)

type Handlers struct {
	Q *app.QueryService
	B *app.BookingService
	H *app.HandoffService
	A *app.Assistant
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/experiences", h.listExperiences)
	s.mux.Get("/v1/experiences/{id}", h.getExperience)
	s.mux.Get("/v1/experiences/{id}/quote", h.quote)
	s.mux.Put("/v1/sessions/{sid}/selection", h.saveSelection)
	s.mux.Get("/v1/sessions/{sid}/selection", h.loadSelection)
	s.mux.Delete("/v1/sessions/{sid}/selection", h.clearSelection)
	s.mux.Post("/v1/bookings", h.createBooking)
	s.mux.Get("/v1/bookings/{reference}", h.getBooking)
	s.mux.Get("/v1/partners/{id}/payouts", h.partnerPayouts)
	s.mux.Post("/v1/assistant", h.assistant)
}

var (
	supportedLangs = []string{"en", "fr", "sw"}
	langMatcher    = language.NewMatcher([]language.Tag{
		language.English,
		language.French,
		language.Swahili,
	})
)

func selectLang(al string) string {
	tags, _, err := language.ParseAcceptLanguage(al)
	if err != nil || len(tags) == 0 {
		return "en"
	}
	_, idx, _ := langMatcher.Match(tags...)
	return supportedLangs[idx]
}

func reqLang(r *http.Request) string {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		for _, l := range supportedLangs {
			if lang == l {
				return l
			}
		}
	}
	return selectLang(r.Header.Get("Accept-Language"))
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func (h *Handlers) getExperience(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	lang := reqLang(r)
	resp, err := h.Q.GetExperience(r.Context(), id, lang)
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "experience not found")
		return
	}

	etag, body := calcETagAndBody(resp)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Language", resp.Language)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write getExperience body")
	}
}

func (h *Handlers) listExperiences(w http.ResponseWriter, r *http.Request) {
	q := domain.ExperiencesQuery{Lang: reqLang(r), Limit: 50}
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		q.Limit = l
	}
	if c := r.URL.Query().Get("country"); c != "" {
		q.Country = &c
	}

	out, err := h.Q.ListExperiences(r.Context(), q)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal", "could not list experiences")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// quote validates and prices the selection carried in the query string. It
// is a read: the client calls it on every form change.
func (h *Handlers) quote(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	sel := booking.ParseSelection(id, r.URL.Query())
	out, err := h.Q.QuoteSelection(r.Context(), id, reqLang(r), sel)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "experience not found")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Internal", "could not compute quote")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) saveSelection(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "sid")
	var sel booking.Selection
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "selection JSON expected")
		return
	}
	if sel.Option != booking.OptionPremium {
		sel.Option = booking.OptionStandard
	}
	// A failed write never blocks the traveler; the query string still carries the selection.
	h.H.Save(r.Context(), sid, sel)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) loadSelection(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "sid")
	expID, err := strconv.ParseInt(r.URL.Query().Get("experience"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid experience", "experience query parameter must be a number")
		return
	}
	sel, fromStore := h.H.Load(r.Context(), sid, expID, r.URL.Query())
	writeJSON(w, http.StatusOK, map[string]any{
		"selection":  sel,
		"from_store": fromStore,
	})
}

func (h *Handlers) clearSelection(w http.ResponseWriter, r *http.Request) {
	h.H.Clear(r.Context(), chi.URLParam(r, "sid"))
	w.WriteHeader(http.StatusNoContent)
}

type createBookingBody struct {
	SessionID     string            `json:"session_id"`
	Selection     booking.Selection `json:"selection"`
	CustomerName  string            `json:"customer_name"`
	CustomerEmail string            `json:"customer_email"`
	CustomerPhone *string           `json:"customer_phone,omitempty"`
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var body createBookingBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "booking JSON expected")
		return
	}
	b, res, err := h.B.Create(r.Context(), app.BookingRequest{
		SessionID:     body.SessionID,
		Selection:     body.Selection,
		CustomerName:  body.CustomerName,
		CustomerEmail: body.CustomerEmail,
		CustomerPhone: body.CustomerPhone,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "experience not found")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Internal", "could not create booking")
		return
	}
	if !res.OK() {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": res.Errors})
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.B.Get(r.Context(), chi.URLParam(r, "reference"))
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "booking not found")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handlers) partnerPayouts(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	sum, err := h.B.PartnerPayouts(r.Context(), id)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal", "could not load payouts")
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

type assistantBody struct {
	Message string `json:"message"`
}

func (h *Handlers) assistant(w http.ResponseWriter, r *http.Request) {
	var body assistantBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Message == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "message is required")
		return
	}
	reply, err := h.A.Ask(r.Context(), body.Message)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal", "assistant unavailable")
		return
	}
	writeJSON(w, http.StatusOK, reply)
}
