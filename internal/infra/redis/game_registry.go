package redis

import (
	"context"
	"sync"
	"time"

	"quizroom-service/internal/app"
	"quizroom-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// GameRegistry is a Redis-aware implementation of app.GameRegistry.
// Notes:
//   - Live games stay in a local map; the single process owns each session's
//     state and the in-process broadcast path.
//   - Redis marks room liveness keyed by PIN, which also guards PIN reuse
//     across restarts within the TTL window (and could be extended to route
//     cross-instance pub/sub).
type GameRegistry struct {
	client *redis.Client
	ttl    time.Duration

	mu          sync.RWMutex
	games       map[string]*app.Game
	connections map[string]string
}

func NewGameRegistry(client *redis.Client, ttl time.Duration) *GameRegistry {
	return &GameRegistry{
		client:      client,
		ttl:         ttl,
		games:       make(map[string]*app.Game),
		connections: make(map[string]string),
	}
}

func (r *GameRegistry) Register(game *app.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.games[game.Pin()]; ok && !existing.Finished() {
		return domain.ErrPinInUse
	}
	// SETNX so a PIN claimed by another instance within the TTL stays unique.
	ok, err := r.client.SetNX(context.Background(), r.key(game.Pin()), "1", r.ttl).Result()
	if err == nil && !ok {
		if _, held := r.games[game.Pin()]; !held {
			return domain.ErrPinInUse
		}
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

// Release drops the liveness marker once a game has finished.
func (r *GameRegistry) Release(pin string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	game, ok := r.games[pin]
	if !ok || !game.Finished() {
		return
	}
	_ = r.client.Del(context.Background(), r.key(pin)).Err()
}

func (r *GameRegistry) key(pin string) string {
	return "game:live:" + pin
}
