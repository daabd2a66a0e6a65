package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/PabloGalante/neogiator-agent/internal/app/negotiation"
	"github.com/PabloGalante/neogiator-agent/internal/app/profile"
	"github.com/PabloGalante/neogiator-agent/internal/domain"
	"github.com/PabloGalante/neogiator-agent/internal/observability"
)

const maxUploadBytes = 10 << 20

type Server struct {
	svc *negotiation.Service
}

func NewServer(svc *negotiation.Service) http.Handler {
	s := &Server{svc: svc}
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/strategies", s.handleStrategies)
	mux.HandleFunc("/profiles", s.handleProfiles)

	// /negotiations              → POST: create
	// /negotiations/{id}          → GET: status snapshot
	// /negotiations/{id}/messages → POST: submit company message
	// /negotiations/{id}/strategy → PUT: change strategy
	// /negotiations/{id}/leverage → POST: add leverage point
	mux.HandleFunc("/negotiations", s.handleNegotiations)
	mux.HandleFunc("/negotiations/", s.handleNegotiationWithID)

	return chainMiddlewares(mux, withRequestID, withLogging, withCORS)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type createNegotiationRequest struct {
	CompanyName string                    `json:"company_name"`
	Position    string                    `json:"position"`
	Profile     domain.CandidateProfile   `json:"profile"`
	Targets     domain.NegotiationTargets `json:"targets"`
}

type createNegotiationResponse struct {
	ID          string          `json:"id"`
	Negotiation domain.Snapshot `json:"negotiation"`
}

type storedProfileRequest struct {
	ObjectKey string `json:"object_key"`
	Kind      string `json:"kind,omitempty"`
}

type submitMessageRequest struct {
	Text         string        `json:"text"`
	OfferDetails *domain.Offer `json:"offer_details,omitempty"`
}

type submitMessageResponse struct {
	Reply      string        `json:"reply"`
	TemplateID string        `json:"template_id,omitempty"`
	Generated  bool          `json:"generated"`
	Offer      *domain.Offer `json:"offer,omitempty"`
	Status     domain.Status `json:"status"`
}

type updateStrategyRequest struct {
	Strategy string `json:"strategy"`
}

type addLeverageRequest struct {
	Tag string `json:"tag"`
}

type leverageResponse struct {
	LeveragePoints []string `json:"leverage_points"`
}

// ─────────────────────────────────────────────
// Basic routing
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStrategies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"strategies": s.svc.ListStrategies()})
}

func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		s.handleStoredProfile(w, r)
		return
	}
	s.handleUploadProfile(w, r)
}

// /negotiations
func (s *Server) handleNegotiations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateNegotiation(w, r)
	default:
		methodNotAllowed(w)
	}
}

// /negotiations/{id}[/messages|/strategy|/leverage]
func (s *Server) handleNegotiationWithID(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/negotiations/"), "/")
	if path == "" {
		http.NotFound(w, r)
		return
	}

	parts := strings.Split(path, "/")
	id := domain.ContextID(parts[0])

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			s.handleGetNegotiation(w, r, id)
		default:
			methodNotAllowed(w)
		}
		return
	}
	if len(parts) != 2 {
		http.NotFound(w, r)
		return
	}

	switch {
	case parts[1] == "messages" && r.Method == http.MethodPost:
		s.handleSubmitMessage(w, r, id)
	case parts[1] == "strategy" && r.Method == http.MethodPut:
		s.handleUpdateStrategy(w, r, id)
	case parts[1] == "leverage" && r.Method == http.MethodPost:
		s.handleAddLeverage(w, r, id)
	case parts[1] == "messages" || parts[1] == "strategy" || parts[1] == "leverage":
		methodNotAllowed(w)
	default:
		http.NotFound(w, r)
	}
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleUploadProfile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		badRequest(w, "expected a multipart form with a file field")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		badRequest(w, "file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		badRequest(w, "could not read uploaded file")
		return
	}

	kind := r.FormValue("kind")
	if kind == "" {
		fk, err := profile.KindFromFilename(header.Filename)
		if err != nil {
			writeError(w, r, err)
			return
		}
		kind = string(fk)
	}

	p, err := s.svc.ExtractProfile(r.Context(), data, kind)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile": p})
}

func (s *Server) handleStoredProfile(w http.ResponseWriter, r *http.Request) {
	var req storedProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	p, err := s.svc.ExtractStoredProfile(r.Context(), req.ObjectKey, req.Kind)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile": p})
}

func (s *Server) handleCreateNegotiation(w http.ResponseWriter, r *http.Request) {
	var req createNegotiationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	id, err := s.svc.Create(r.Context(), negotiation.CreateInput{
		CompanyName: req.CompanyName,
		Position:    req.Position,
		Profile:     req.Profile,
		Targets:     req.Targets,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	snap, err := s.svc.Status(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createNegotiationResponse{ID: string(id), Negotiation: snap})
}

func (s *Server) handleGetNegotiation(w http.ResponseWriter, r *http.Request, id domain.ContextID) {
	snap, err := s.svc.Status(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleSubmitMessage(w http.ResponseWriter, r *http.Request, id domain.ContextID) {
	var req submitMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	out, err := s.svc.SubmitMessageWithOffer(r.Context(), id, req.Text, req.OfferDetails)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, submitMessageResponse{
		Reply:      out.Reply,
		TemplateID: out.TemplateID,
		Generated:  out.Generated,
		Offer:      out.Offer,
		Status:     out.Status,
	})
}

func (s *Server) handleUpdateStrategy(w http.ResponseWriter, r *http.Request, id domain.ContextID) {
	var req updateStrategyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	if err := s.svc.UpdateStrategy(r.Context(), id, req.Strategy); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"strategy": req.Strategy})
}

func (s *Server) handleAddLeverage(w http.ResponseWriter, r *http.Request, id domain.ContextID) {
	var req addLeverageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	if err := s.svc.AddLeveragePoint(r.Context(), id, req.Tag); err != nil {
		writeError(w, r, err)
		return
	}
	snap, err := s.svc.Status(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, leverageResponse{LeveragePoints: snap.LeveragePoints})
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to status codes. Unknown errors are logged and
// reported as a bare 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidStrategy),
		errors.Is(err, domain.ErrUnsupportedFormat):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownContext):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrStoreClosed):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		observability.LoggerFromContext(r.Context()).Error("request failed", "error", err)
		writeJSON(w, status, map[string]string{
			"error":      "internal server error",
			"request_id": observability.RequestID(r.Context()),
		})
		return
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}
