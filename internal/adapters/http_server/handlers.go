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

	"drivent_booking/internal/app"
	"drivent_booking/internal/domain"
)

type Handlers struct {
	Q *app.QueryService
	B *app.BookingService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers, auth func(http.Handler) http.Handler) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Group(func(g chi.Router) {
		g.Use(auth)
		g.Get("/hotels", h.listHotels)
		g.Get("/hotels/{hotelId}", h.getHotelRooms)
		g.Get("/booking", h.getBooking)
		g.Post("/booking", h.createBooking)
		g.Put("/booking/{bookingId}", h.changeBooking)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps the domain error taxonomy onto fixed status codes.
// Anything unrecognized is a 500; nothing is retried or recovered here.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrPaymentRequired):
		writeProblem(w, http.StatusPaymentRequired, "Payment Required", err.Error())
	case errors.Is(err, domain.ErrBookingForbidden), errors.Is(err, domain.ErrRoomUnavailable):
		writeProblem(w, http.StatusForbidden, "Forbidden", err.Error())
	default:
		log.Error().Err(err).Msg("unhandled service error")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
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

// writeCachedJSON serves an idempotent read with an ETag so clients can
// revalidate the catalog cheaply.
func writeCachedJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.Q.ListHotels(r.Context(), UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeCachedJSON(w, r, app.MapHotels(hotels))
}

func (h *Handlers) getHotelRooms(w http.ResponseWriter, r *http.Request) {
	hotelID, err := strconv.ParseInt(chi.URLParam(r, "hotelId"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "hotelId must be a number")
		return
	}
	hr, err := h.Q.HotelRooms(r.Context(), UserID(r.Context()), hotelID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCachedJSON(w, r, app.MapHotelRooms(hr))
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.Q.Booking(r.Context(), UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app.MapBooking(b))
}

type bookingRequest struct {
	RoomID int64 `json:"roomId"`
}

// decodeRoomID rejects a missing or non-positive roomId before any
// lookup happens.
func decodeRoomID(r *http.Request) (int64, bool) {
	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RoomID <= 0 {
		return 0, false
	}
	return req.RoomID, true
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	roomID, ok := decodeRoomID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "roomId is required")
		return
	}
	id, err := h.B.AssignBooking(r.Context(), UserID(r.Context()), roomID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"bookingId": id})
}

func (h *Handlers) changeBooking(w http.ResponseWriter, r *http.Request) {
	roomID, ok := decodeRoomID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "roomId is required")
		return
	}
	bookingID, err := strconv.ParseInt(chi.URLParam(r, "bookingId"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "bookingId must be a number")
		return
	}
	id, err := h.B.ChangeBooking(r.Context(), UserID(r.Context()), bookingID, roomID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"bookingId": id})
}
