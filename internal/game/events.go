package game

const (
	EventGameCreated     = "game_created"
	EventPlayerJoined    = "player_joined"
	EventGameReady       = "game_ready"
	EventGameStarted     = "game_started"
	EventMoveSubmitted   = "move_submitted"
	EventRevealRequested = "reveal_requested"
	EventGameRevealed    = "game_revealed"
)

// Event - notification emitted on each successful state transition
type Event struct {
	Type    string         `json:"type"`
	GameID  uint64         `json:"game_id"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Emitter receives events. Emit is called while the registry lock is held
// and must not block.
type Emitter interface {
	Emit(ev Event)
}

func (r *Registry) emit(ev Event) {
	if r.Emitter != nil {
		r.Emitter.Emit(ev)
	}
}
