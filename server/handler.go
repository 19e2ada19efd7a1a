package server

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/ruteri/geopsi/grid"
	"github.com/ruteri/geopsi/psi"
	"github.com/ruteri/geopsi/store"
	"github.com/ruteri/geopsi/wire"
)

type handler struct {
	cfg Config
}

type unitRequest struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type psiRequest struct {
	BobUnits   []unitRequest `json:"bob_units"`
	AliceUnits []unitRequest `json:"alice_units"`
}

type timingsResponse struct {
	BobSetup      float64 `json:"bob_setup"`
	AliceSetup    float64 `json:"alice_setup"`
	BobResponse   float64 `json:"bob_response"`
	AliceFinalize float64 `json:"alice_finalize"`
}

type psiResponse struct {
	BobMessage   json.RawMessage `json:"bob_message"`
	AliceMessage json.RawMessage `json:"alice_message"`
	BobResponse  json.RawMessage `json:"bob_response"`
	Decrypted    []string        `json:"decrypted"`
	TimingsMS    timingsResponse `json:"timings_ms"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toUnits(req []unitRequest) []grid.Unit {
	units := make([]grid.Unit, len(req))
	for i, u := range req {
		units[i] = grid.Unit{ID: u.ID, X: u.X, Y: u.Y}
	}
	return units
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
}

func (h *handler) handlePSI(w http.ResponseWriter, r *http.Request) {
	var req psiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decoding request body: %w", err))
		return
	}

	format := wire.JSONFormat
	if h.cfg.TextFormat {
		format = wire.TextFormat
	}

	bobUnits := toUnits(req.BobUnits)
	aliceUnits := toUnits(req.AliceUnits)

	started := time.Now()
	start := started
	bobState, msgB, err := psi.BobInit(bobUnits, format)
	bobSetup := time.Since(start)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("bob_init: %w", err))
		return
	}

	start = time.Now()
	aliceState, msgA, err := psi.AliceBlind(msgB, aliceUnits, format)
	aliceSetup := time.Since(start)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("alice_blind: %w", err))
		return
	}

	start = time.Now()
	msgR, err := psi.BobTransform(msgA, bobState, format)
	bobResponse := time.Since(start)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("bob_transform: %w", err))
		return
	}

	start = time.Now()
	decrypted, err := psi.AliceFinalize(msgR, aliceState, format)
	aliceFinalize := time.Since(start)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("alice_finalize: %w", err))
		return
	}

	positions := make([]string, len(decrypted))
	for i, u := range decrypted {
		positions[i] = u.Position
	}

	resp := psiResponse{
		BobMessage:   json.RawMessage(rawOrQuoted(msgB, format)),
		AliceMessage: json.RawMessage(rawOrQuoted(msgA, format)),
		BobResponse:  json.RawMessage(rawOrQuoted(msgR, format)),
		Decrypted:    positions,
		TimingsMS: timingsResponse{
			BobSetup:      millis(bobSetup),
			AliceSetup:    millis(aliceSetup),
			BobResponse:   millis(bobResponse),
			AliceFinalize: millis(aliceFinalize),
		},
	}

	rec := store.SessionRecord{
		SessionID:    sessionID(),
		StartedAt:    started,
		BobSetSize:   len(bobUnits),
		AliceSetSize: len(aliceUnits),
		MatchCount:   len(decrypted),
		Timings: store.Timings{
			BobSetupMS:      millis(bobSetup),
			AliceSetupMS:    millis(aliceSetup),
			BobResponseMS:   millis(bobResponse),
			AliceFinalizeMS: millis(aliceFinalize),
		},
	}
	if err := h.cfg.Store.RecordSession(r.Context(), rec); err != nil {
		h.cfg.Log.Error("recording session", "err", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// rawOrQuoted embeds a JSON-format wire message verbatim, or wraps a
// text-format one as a JSON string, so either codec can fill the same
// response field.
func rawOrQuoted(msg []byte, format wire.Format) []byte {
	if format == wire.JSONFormat {
		return msg
	}
	quoted, _ := json.Marshal(string(msg))
	return quoted
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func sessionID() string {
	const alphabet = "0123456789abcdef"
	b := make([]byte, 16)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}
