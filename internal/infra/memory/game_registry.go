package memory

import (
	"sync"

	"quizroom-service/internal/app"
	"quizroom-service/internal/domain"
)

// GameRegistry is an in-memory implementation of app.GameRegistry: a table of
// live games keyed by PIN plus a secondary index from connection identifier to
// PIN. Each game guards its own state, so the registry lock is held only for
// table lookups, never across game mutations.
type GameRegistry struct {
	mu          sync.RWMutex
	games       map[string]*app.Game
	connections map[string]string
}

func NewGameRegistry() *GameRegistry {
	return &GameRegistry{
		games:       make(map[string]*app.Game),
		connections: make(map[string]string),
	}
}

// Register stores a game under its PIN. A PIN held by a finished game may be
// reused; one held by a live game may not.
func (r *GameRegistry) Register(game *app.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.games[game.Pin()]; ok && !existing.Finished() {
		return domain.ErrPinInUse
	}
	r.games[game.Pin()] = game
	return nil
}

func (r *GameRegistry) Get(pin string) (*app.Game, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	game, ok := r.games[pin]
	return game, ok
}

func (r *GameRegistry) Bind(connectionID, pin string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connections[connectionID] = pin
}

func (r *GameRegistry) Resolve(connectionID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pin, ok := r.connections[connectionID]
	return pin, ok
}

func (r *GameRegistry) Unbind(connectionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.connections, connectionID)
}
