package game

import (
	"context"
	"sync"
	"time"

	"sealed_rps/internal/domain"
	"sealed_rps/internal/logger"
	"sealed_rps/internal/oracle"
	"sealed_rps/internal/repository"
	"sealed_rps/internal/seal"
)

type playerKey struct {
	gameID uint64
	player PlayerID
}

// Registry owns all live game state: the game map, the per-(game,player)
// ledger, the id counter and the reveal request index. Every mutating
// operation takes the registry lock for its whole duration, which gives the
// serialized all-or-nothing transaction model the protocol assumes: guards
// run first, state is written only once every guard has passed.
type Registry struct {
	mu       sync.Mutex
	games    map[uint64]*Game
	players  map[playerKey]*PlayerState
	nextID   uint64
	requests map[uint64]uint64 // reveal request id -> game id, deleted on accepted callback

	verifier  seal.Verifier
	decryptor oracle.Decryptor
	checker   oracle.ProofChecker

	// Optional collaborators, nil-safe.
	Emitter Emitter
	Matches *repository.MatchRepository
}

func NewRegistry(verifier seal.Verifier, decryptor oracle.Decryptor, checker oracle.ProofChecker) *Registry {
	return &Registry{
		games:     make(map[uint64]*Game),
		players:   make(map[playerKey]*PlayerState),
		requests:  make(map[uint64]uint64),
		verifier:  verifier,
		decryptor: decryptor,
		checker:   checker,
	}
}

// CreateGame allocates the next game id and opens a game with the caller as
// host and first player.
func (r *Registry) CreateGame(host PlayerID, maxPlayers int) (uint64, error) {
	if maxPlayers < 2 || maxPlayers > 4 {
		return 0, ErrInvalidMaxPlayers
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++

	g := &Game{
		ID:         id,
		Host:       host,
		MaxPlayers: maxPlayers,
		State:      StateOpen,
		Players:    []PlayerID{host},
	}
	r.games[id] = g
	r.players[playerKey{id, host}] = &PlayerState{Joined: true}

	gamesCreated.Inc()
	logger.Info("game created", "game_id", id, "host", string(host), "max_players", maxPlayers)
	r.emit(Event{Type: EventGameCreated, GameID: id, Payload: map[string]any{
		"host":        host,
		"max_players": maxPlayers,
	}})

	return id, nil
}

// JoinGame appends the caller to an open game. Filling the last seat flips
// the game to StateReady.
func (r *Registry) JoinGame(p PlayerID, gameID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.games[gameID]
	if !ok {
		return ErrGameNotFound
	}
	if g.State != StateOpen {
		return &StateError{Op: "join", Expected: StateOpen, Actual: g.State}
	}
	if g.joined(p) {
		return ErrAlreadyJoined
	}
	if len(g.Players) >= g.MaxPlayers {
		return ErrGameFull
	}

	g.Players = append(g.Players, p)
	r.players[playerKey{gameID, p}] = &PlayerState{Joined: true}

	r.emit(Event{Type: EventPlayerJoined, GameID: gameID, Payload: map[string]any{
		"player":  p,
		"players": len(g.Players),
	}})

	if len(g.Players) == g.MaxPlayers {
		g.State = StateReady
		r.emit(Event{Type: EventGameReady, GameID: gameID, Payload: nil})
	}

	return nil
}

// StartGame moves a full game into the move submission phase. Host only.
func (r *Registry) StartGame(p PlayerID, gameID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.games[gameID]
	if !ok {
		return ErrGameNotFound
	}
	if g.State != StateReady {
		return &StateError{Op: "start", Expected: StateReady, Actual: g.State}
	}
	if g.Host != p {
		return ErrNotHost
	}

	g.State = StateStarted
	r.emit(Event{Type: EventGameStarted, GameID: gameID, Payload: nil})
	return nil
}

// SubmitMove verifies and records one player's encrypted move. The N-th
// submission triggers the reveal request in the same atomic step, so there
// is no window in which a second request could be issued and no separate
// "request reveal" call for a majority to withhold.
func (r *Registry) SubmitMove(p PlayerID, gameID uint64, ciphertext []byte, proof []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.games[gameID]
	if !ok {
		return ErrGameNotFound
	}
	if g.State != StateStarted {
		return &StateError{Op: "submit", Expected: StateStarted, Actual: g.State}
	}

	ps, ok := r.players[playerKey{gameID, p}]
	if !ok || !ps.Joined {
		return ErrNotJoined
	}
	if ps.MoveSubmitted {
		return ErrAlreadySubmitted
	}

	handle, err := r.verifier.Sealed(ciphertext, proof)
	if err != nil {
		return wrap(ErrBadCiphertext, err)
	}

	// Issue the reveal request before committing anything, so a failed
	// request leaves the whole submission untouched.
	last := g.MovesSubmitted+1 == g.MaxPlayers
	var requestID uint64
	if last {
		handles := make([]seal.Handle, 0, g.MaxPlayers)
		for _, id := range g.Players {
			if id == p {
				handles = append(handles, handle)
				continue
			}
			handles = append(handles, r.players[playerKey{gameID, id}].EncryptedMove)
		}
		requestID, err = r.decryptor.RequestDecryption(handles)
		if err != nil {
			return err
		}
	}

	r.verifier.Allow(handle, string(p))
	ps.EncryptedMove = handle
	ps.MoveSubmitted = true
	g.MovesSubmitted++

	r.emit(Event{Type: EventMoveSubmitted, GameID: gameID, Payload: map[string]any{
		"player":          p,
		"moves_submitted": g.MovesSubmitted,
	}})

	if last {
		g.State = StateRevealing
		g.RevealRequestID = requestID
		g.revealRequestedAt = time.Now()
		r.requests[requestID] = gameID

		logger.Info("reveal requested", "game_id", gameID, "request_id", requestID)
		r.emit(Event{Type: EventRevealRequested, GameID: gameID, Payload: map[string]any{
			"request_id": requestID,
		}})
	}

	return nil
}

// Game returns a snapshot of one game.
func (r *Registry) Game(gameID uint64) (Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.games[gameID]
	if !ok {
		return Game{}, ErrGameNotFound
	}
	return g.snapshot(), nil
}

// PlayerState returns the ledger entry for one (game, player) pair. A player
// that never joined reads as the zero entry.
func (r *Registry) PlayerState(gameID uint64, p PlayerID) (PlayerState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.games[gameID]; !ok {
		return PlayerState{}, ErrGameNotFound
	}
	ps, ok := r.players[playerKey{gameID, p}]
	if !ok {
		return PlayerState{}, nil
	}
	return *ps, nil
}

// TotalGames returns the count of games ever created.
func (r *Registry) TotalGames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nextID
}

// StartStallWatch exports and logs the number of games sitting in
// StateRevealing longer than maxAge. The state machine itself has no
// recovery path for a silent oracle; this keeps the gap observable.
func (r *Registry) StartStallWatch(maxAge, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			stalled := r.countStalled(maxAge)
			revealingStalled.Set(float64(stalled))
			if stalled > 0 {
				logger.Warn("games stalled in revealing", "count", stalled, "older_than", maxAge.String())
			}
		}
	}()
}

func (r *Registry) countStalled(maxAge time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	n := 0
	for _, g := range r.games {
		if g.State == StateRevealing && g.revealRequestedAt.Before(cutoff) {
			n++
		}
	}
	return n
}

func (r *Registry) recordMatch(g *Game) {
	if r.Matches == nil {
		return
	}

	m := &domain.Match{
		GameID:          int64(g.ID),
		WinningMove:     int16(winningMove(g)),
		RevealRequestID: int64(g.RevealRequestID),
	}
	for _, p := range g.Players {
		m.Players = append(m.Players, string(p))
	}
	for _, mv := range g.RevealedMoves {
		m.Moves = append(m.Moves, int16(mv))
	}
	for _, w := range g.Winners {
		m.Winners = append(m.Winners, string(w))
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.Matches.Create(ctx, m); err != nil {
			logger.Error("match store failed", "game_id", m.GameID, "error", err)
		}
	}()
}
