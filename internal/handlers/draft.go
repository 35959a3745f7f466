// internal/handlers/draft.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/draftden/draftden/internal/booster"
	"github.com/draftden/draftden/internal/engine"
	"github.com/draftden/draftden/internal/export"
	"github.com/draftden/draftden/internal/models"
	"github.com/draftden/draftden/internal/service"
)

func draftID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "draftID"))
}

func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding request body: %w", err)
	}
	return nil
}

type createRequest struct {
	Format models.DraftFormat `json:"format"`
	Config models.DraftConfig `json:"config"`
}

func (s *ApiServer) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	d, err := s.svc.CreateDraft(r.Context(), req.Format, req.Config)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (s *ApiServer) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := draftID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid draft id"})
		return
	}
	d, err := s.svc.GetDraft(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

type joinRequest struct {
	PlayerID    uuid.UUID `json:"playerId"`
	DisplayName string    `json:"displayName"`
	Bot         bool      `json:"bot,omitempty"`
}

func (s *ApiServer) handleJoin(w http.ResponseWriter, r *http.Request) {
	id, err := draftID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid draft id"})
		return
	}
	var req joinRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s.apply(w, r, id, func(d *models.Draft) (*models.Draft, error) {
		if req.Bot {
			return engine.AddBot(d, req.DisplayName)
		}
		return engine.AddPlayer(d, req.PlayerID, req.DisplayName)
	})
}

func (s *ApiServer) handleLeave(w http.ResponseWriter, r *http.Request) {
	id, err := draftID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid draft id"})
		return
	}
	var req joinRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s.apply(w, r, id, func(d *models.Draft) (*models.Draft, error) {
		return engine.RemovePlayer(d, req.PlayerID)
	})
}

func (s *ApiServer) handleConfirm(w http.ResponseWriter, r *http.Request) {
	id, err := draftID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid draft id"})
		return
	}
	s.apply(w, r, id, engine.ConfirmDraft)
}

type startRequest struct {
	// CardIDs is the drafting pool: a cube list or a set's cards, in the
	// resolver's identifier form.
	CardIDs []string `json:"cardIds"`

	// ReleasedAt selects the booster template era for the configured set.
	ReleasedAt time.Time `json:"releasedAt"`
}

func (s *ApiServer) handleStart(w http.ResponseWriter, r *http.Request) {
	id, err := draftID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid draft id"})
		return
	}
	var req startRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	resolved, err := s.resolver.Resolve(r.Context(), req.CardIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	// Fixed iteration order keeps generation replayable for a seeded RNG.
	ids := make([]string, 0, len(resolved))
	for id := range resolved {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	cardPool := make([]models.CardReference, 0, len(ids))
	for _, id := range ids {
		cardPool = append(cardPool, resolved[id])
	}

	s.apply(w, r, id, func(d *models.Draft) (*models.Draft, error) {
		now := s.svc.Now()
		if d.Format == models.FormatWinston {
			next, err := engine.StartDraft(d, nil, now)
			if err != nil {
				return nil, err
			}
			return engine.InitializeWinston(next, cardPool, s.rng)
		}

		pool := booster.NewCardPool(cardPool)
		tpl := booster.SelectTemplate(d.Config.SetCode, req.ReleasedAt, nil)
		generated := booster.GenerateAllPacks(pool, tpl, s.rng, d.Config.PlayerCount, d.Config.PacksPerPlayer)
		packs := make([]models.PackState, 0, len(generated))
		for _, cards := range generated {
			pid, err := uuid.NewV7()
			if err != nil {
				return nil, err
			}
			packs = append(packs, models.PackState{ID: pid, Cards: cards})
		}
		return engine.StartDraft(d, packs, now)
	})
}

type seatCardRequest struct {
	Seat   int    `json:"seat"`
	CardID string `json:"cardId"`
}

func (s *ApiServer) handlePick(w http.ResponseWriter, r *http.Request) {
	id, err := draftID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid draft id"})
		return
	}
	var req seatCardRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	d, err := s.svc.Pick(r.Context(), id, req.Seat, req.CardID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *ApiServer) handleQueueCard(w http.ResponseWriter, r *http.Request) {
	id, err := draftID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid draft id"})
		return
	}
	var req seatCardRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s.apply(w, r, id, func(d *models.Draft) (*models.Draft, error) {
		return engine.SetQueuedCard(d, req.Seat, req.CardID)
	})
}

func (s *ApiServer) handlePassPacks(w http.ResponseWriter, r *http.Request) {
	id, err := draftID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid draft id"})
		return
	}
	s.apply(w, r, id, func(d *models.Draft) (*models.Draft, error) {
		return engine.PassCurrentPacks(d, s.svc.Now())
	})
}

type seatRequest struct {
	Seat int `json:"seat"`
}

func (s *ApiServer) handleAutoPick(w http.ResponseWriter, r *http.Request) {
	id, err := draftID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid draft id"})
		return
	}
	var req seatRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	d, err := s.svc.AutoPick(r.Context(), id, req.Seat)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *ApiServer) handleTimer(w http.ResponseWriter, r *http.Request) {
	id, err := draftID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid draft id"})
		return
	}
	seat, err := strconv.Atoi(r.URL.Query().Get("seat"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid seat"})
		return
	}
	d, err := s.svc.GetDraft(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if seat < 0 || seat >= len(d.Seats) || d.Seats[seat].CurrentPack == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"bounded": false})
		return
	}
	secs, bounded := engine.PickTimeSeconds(len(d.Seats[seat].CurrentPack.Cards), d.Config.TimerPreset)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"seconds":    secs,
		"bounded":    bounded,
		"receivedAt": d.Seats[seat].PackReceivedAt,
	})
}

func (s *ApiServer) handleWinstonLook(w http.ResponseWriter, r *http.Request) {
	id, err := draftID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid draft id"})
		return
	}
	seat, _ := strconv.Atoi(r.URL.Query().Get("seat"))
	pile, err := strconv.Atoi(r.URL.Query().Get("pile"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid pile"})
		return
	}
	d, err := s.svc.GetDraft(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	cards, err := engine.WinstonLook(d, seat, pile)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"pile": pile, "cards": cards})
}

func (s *ApiServer) handleWinstonTake(w http.ResponseWriter, r *http.Request) {
	s.winstonMove(w, r, engine.WinstonTake)
}

func (s *ApiServer) handleWinstonPass(w http.ResponseWriter, r *http.Request) {
	s.winstonMove(w, r, engine.WinstonPass)
}

func (s *ApiServer) winstonMove(w http.ResponseWriter, r *http.Request, move func(*models.Draft, int, time.Time) (*models.Draft, error)) {
	id, err := draftID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid draft id"})
		return
	}
	var req seatRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s.apply(w, r, id, func(d *models.Draft) (*models.Draft, error) {
		return move(d, req.Seat, s.svc.Now())
	})
}

type deckMoveRequest struct {
	Seat        int    `json:"seat"`
	CardID      string `json:"cardId"`
	ToSideboard bool   `json:"toSideboard"`
}

func (s *ApiServer) handleDeckMove(w http.ResponseWriter, r *http.Request) {
	id, err := draftID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid draft id"})
		return
	}
	var req deckMoveRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s.apply(w, r, id, func(d *models.Draft) (*models.Draft, error) {
		return engine.MoveCard(d, req.Seat, req.CardID, req.ToSideboard)
	})
}

type deckLandsRequest struct {
	Seat  int               `json:"seat"`
	Lands models.BasicLands `json:"lands"`
}

func (s *ApiServer) handleDeckLands(w http.ResponseWriter, r *http.Request) {
	id, err := draftID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid draft id"})
		return
	}
	var req deckLandsRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s.apply(w, r, id, func(d *models.Draft) (*models.Draft, error) {
		return engine.SetBasicLands(d, req.Seat, req.Lands)
	})
}

func (s *ApiServer) handleDeckSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := draftID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid draft id"})
		return
	}
	var req seatRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s.apply(w, r, id, func(d *models.Draft) (*models.Draft, error) {
		return engine.SubmitDeck(d, req.Seat, s.svc.Now())
	})
}

func (s *ApiServer) handleDeckUnsubmit(w http.ResponseWriter, r *http.Request) {
	id, err := draftID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid draft id"})
		return
	}
	var req seatRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s.apply(w, r, id, func(d *models.Draft) (*models.Draft, error) {
		return engine.UnsubmitDeck(d, req.Seat)
	})
}

func (s *ApiServer) handleExportText(w http.ResponseWriter, r *http.Request) {
	seat, d, ok := s.exportSeat(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(export.DecklistText(&d.Seats[seat])))
}

func (s *ApiServer) handleExportXML(w http.ResponseWriter, r *http.Request) {
	seat, d, ok := s.exportSeat(w, r)
	if !ok {
		return
	}
	name := fmt.Sprintf("%s draft deck", d.Seats[seat].DisplayName)
	out, err := export.DeckXML(&d.Seats[seat], name)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	_, _ = w.Write(out)
}

func (s *ApiServer) exportSeat(w http.ResponseWriter, r *http.Request) (int, *models.Draft, bool) {
	id, err := draftID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid draft id"})
		return 0, nil, false
	}
	seat, err := strconv.Atoi(r.URL.Query().Get("seat"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid seat"})
		return 0, nil, false
	}
	d, err := s.svc.GetDraft(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return 0, nil, false
	}
	if seat < 0 || seat >= len(d.Seats) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid seat"})
		return 0, nil, false
	}
	return seat, d, true
}

// apply funnels an engine reduction through the service and renders the
// updated snapshot.
func (s *ApiServer) apply(w http.ResponseWriter, r *http.Request, id uuid.UUID, action service.Action) {
	d, err := s.svc.Apply(r.Context(), id, action)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
