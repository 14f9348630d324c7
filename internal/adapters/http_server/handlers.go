// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_console/internal/app"
	"hotel_console/internal/domain"
)

// Handlers serve reads from Hotels; each request works on one published Hotel.
type Handlers struct {
	Hotels  *app.LiveHotel
	Reports *app.ReportService
	Gate    *app.AdminGate
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type roomsResponse struct {
	Rooms []domain.RoomView `json:"rooms"`
}

type recommendationResponse struct {
	Customer domain.CustomerView `json:"customer"`
	Room     domain.RoomView     `json:"room"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Group(func(r chi.Router) {
		r.Use(AdminKey(h.Gate))
		r.Get("/v1/reports/summary", h.summary)
		r.Get("/v1/rooms", h.listRooms)
		r.Get("/v1/rooms/available", h.availableRooms)
		r.Get("/v1/customers/{email}/recommendation", h.recommendation)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
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

// writeJSON answers 304 when the client already holds this version.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
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
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

func (h *Handlers) summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.Reports.Summary(r.Context())
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "summary unavailable")
		return
	}
	writeJSON(w, r, s)
}

func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	hotel := h.Hotels.Current(r.Context())
	writeJSON(w, r, roomViews(hotel, hotel.Rooms()))
}

func (h *Handlers) availableRooms(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in, err := domain.ParseDate(q.Get("check_in"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid check_in", "check_in must be YYYY-MM-DD")
		return
	}
	out, err := domain.ParseDate(q.Get("check_out"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid check_out", "check_out must be YYYY-MM-DD")
		return
	}
	if !out.After(in) {
		writeProblem(w, http.StatusBadRequest, "Invalid range", "check_out must be after check_in")
		return
	}
	hotel := h.Hotels.Current(r.Context())
	writeJSON(w, r, roomViews(hotel, hotel.SearchAvailableRooms(in, out)))
}

func (h *Handlers) recommendation(w http.ResponseWriter, r *http.Request) {
	email, err := url.PathUnescape(chi.URLParam(r, "email"))
	if err != nil || email == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid email", "email path segment is malformed")
		return
	}
	hotel := h.Hotels.Current(r.Context())
	room, err := hotel.Recommend(email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "customer not found")
		return
	case errors.Is(err, domain.ErrNoSuitableRoom):
		writeProblem(w, http.StatusConflict, "No Suitable Room", "no clean room matches the customer's history")
		return
	case err != nil:
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	writeJSON(w, r, recommendationResponse{
		Customer: domain.NewCustomerView(hotel.FindCustomerByEmail(email)),
		Room:     domain.NewRoomView(room, hotel.Now()),
	})
}

func roomViews(hotel *app.Hotel, rooms []*domain.Room) roomsResponse {
	now := hotel.Now()
	out := roomsResponse{Rooms: make([]domain.RoomView, 0, len(rooms))}
	for _, rm := range rooms {
		out.Rooms = append(out.Rooms, domain.NewRoomView(rm, now))
	}
	return out
}
