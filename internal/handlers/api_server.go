// internal/handlers/api_server.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/draftden/draftden/internal/cards"
	"github.com/draftden/draftden/internal/database"
	"github.com/draftden/draftden/internal/engine"
	"github.com/draftden/draftden/internal/middleware"
	"github.com/draftden/draftden/internal/rng"
	"github.com/draftden/draftden/internal/service"
)

// ApiServer exposes the draft engine over a JSON API. All game-state edits
// flow through the service's optimistic-concurrency loop; handlers stay thin.
type ApiServer struct {
	svc      *service.DraftService
	resolver cards.Resolver
	rng      rng.RNG
	log      *logrus.Logger
	router   chi.Router
}

// NewApiServer wires the router.
func NewApiServer(svc *service.DraftService, resolver cards.Resolver, r rng.RNG, log *logrus.Logger) *ApiServer {
	s := &ApiServer{svc: svc, resolver: resolver, rng: r, log: log, router: chi.NewRouter()}
	s.setupRoutes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *ApiServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *ApiServer) setupRoutes() {
	s.router.Use(middleware.LogMiddleware(s.log))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	s.router.Route("/draft", func(r chi.Router) {
		r.Post("/create", s.handleCreate)
		r.Route("/{draftID}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Post("/join", s.handleJoin)
			r.Post("/leave", s.handleLeave)
			r.Post("/confirm", s.handleConfirm)
			r.Post("/start", s.handleStart)
			r.Post("/pick", s.handlePick)
			r.Post("/queue", s.handleQueueCard)
			r.Post("/pass", s.handlePassPacks)
			r.Post("/autopick", s.handleAutoPick)
			r.Get("/timer", s.handleTimer)
			r.Route("/winston", func(r chi.Router) {
				r.Get("/look", s.handleWinstonLook)
				r.Post("/take", s.handleWinstonTake)
				r.Post("/pass", s.handleWinstonPass)
			})
			r.Route("/deck", func(r chi.Router) {
				r.Post("/move", s.handleDeckMove)
				r.Post("/lands", s.handleDeckLands)
				r.Post("/submit", s.handleDeckSubmit)
				r.Post("/unsubmit", s.handleDeckUnsubmit)
			})
			r.Get("/export/text", s.handleExportText)
			r.Get("/export/xml", s.handleExportXML)
		})
	})
}

// writeJSON renders a JSON response body.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// domainErrs maps each engine sentinel to a conflict response rather than a
// server error.
var domainErrs = []error{
	engine.ErrWrongStatus, engine.ErrNotYourTurn, engine.ErrAlreadySeated,
	engine.ErrDraftFull, engine.ErrNotEnoughPlayers, engine.ErrNotEnoughPacks,
	engine.ErrSeatNotFound, engine.ErrNoCurrentPack, engine.ErrCardNotInPack,
	engine.ErrCardNotInZone, engine.ErrWrongPile,
	engine.ErrInvalidPlayerCount, engine.ErrInvalidConfig, engine.ErrTooFewCards,
}

// writeError maps domain failures onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, database.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	for _, target := range domainErrs {
		if errors.Is(err, target) {
			status = http.StatusConflict
			break
		}
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
