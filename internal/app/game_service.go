package app

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"quizroom-service/internal/domain"
)

const pinAttempts = 100

// GameRegistry abstracts how live games are stored and how transport-level
// connection identifiers map back to rooms (in-memory, Redis-marked, etc).
type GameRegistry interface {
	// Register stores a game under its PIN. It fails if the PIN is held by a
	// game that has not finished yet.
	Register(game *Game) error
	Get(pin string) (*Game, bool)
	// Bind records connectionID -> PIN for O(1) disconnect handling.
	Bind(connectionID, pin string)
	// Resolve returns the PIN a connection belongs to.
	Resolve(connectionID string) (string, bool)
	Unbind(connectionID string)
}

// QuizRepository loads quiz content (from cache/backing store).
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
}

// Broadcaster delivers events to a room's connection holders. The host channel
// is a distinct group so host-only progress never reaches players.
type Broadcaster interface {
	ToRoom(pin string, event domain.Event)
	ToHost(pin string, event domain.Event)
	ToConnection(connectionID string, event domain.Event)
}

// ResultStore persists final results for retrieval after a game ends.
type ResultStore interface {
	SaveResult(ctx context.Context, result domain.GameResult) error
}

// QuizStats receives fire-and-forget aggregate updates at game finish.
type QuizStats interface {
	RecordQuizPlayed(ctx context.Context, quizID string, averageScore float64, participantCount int) error
}

// GameService contains the live session use cases: lifecycle, presence,
// answer scoring, timers, and leaderboards.
type GameService struct {
	registry GameRegistry
	quizzes  QuizRepository
	bus      Broadcaster
	results  ResultStore
	stats    QuizStats

	defaults domain.Settings

	// One logical countdown per room; the fire handler re-checks the live
	// question index, so a stale fire is a no-op.
	timerMu sync.Mutex
	timers  map[string]*time.Timer
}

func NewGameService(registry GameRegistry, quizzes QuizRepository, bus Broadcaster) *GameService {
	return &GameService{
		registry: registry,
		quizzes:  quizzes,
		bus:      bus,
		defaults: domain.DefaultSettings(),
		timers:   make(map[string]*time.Timer),
	}
}

// WithDefaultSettings overrides the room defaults applied when a host
// creates a game without explicit settings.
func (s *GameService) WithDefaultSettings(settings domain.Settings) *GameService {
	s.defaults = settings
	return s
}

// WithResultStore wires final-result persistence.
func (s *GameService) WithResultStore(store ResultStore) *GameService {
	s.results = store
	return s
}

// WithQuizStats wires aggregate stat updates at game finish.
func (s *GameService) WithQuizStats(stats QuizStats) *GameService {
	s.stats = stats
	return s
}

// CreateGame loads the quiz, verifies the host may use it (public or owned),
// allocates a unique PIN, and registers a waiting game.
func (s *GameService) CreateGame(ctx context.Context, quizID, hostID string, settings *domain.Settings) (*Game, error) {
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if !quiz.IsPublic && quiz.OwnerID != hostID {
		return nil, domain.ErrUnauthorized
	}

	effective := s.defaults
	if settings != nil {
		effective = *settings
		if effective.MaxPlayers < 1 {
			effective.MaxPlayers = 1
		}
		if effective.MaxPlayers > 200 {
			effective.MaxPlayers = 200
		}
	}

	for attempt := 0; attempt < pinAttempts; attempt++ {
		game := NewGame(generatePin(), quiz, hostID, effective)
		if err := s.registry.Register(game); err == nil {
			return game, nil
		}
	}
	return nil, fmt.Errorf("could not allocate a unique game pin")
}

// generatePin produces a 6-digit room code; the registry enforces uniqueness
// among non-finished games via collision retry in CreateGame.
func generatePin() string {
	return fmt.Sprintf("%06d", 100000+rand.Intn(900000))
}

// GameInfo returns the public lobby view for a PIN.
func (s *GameService) GameInfo(pin string) (domain.GameInfo, error) {
	game, ok := s.registry.Get(pin)
	if !ok {
		return domain.GameInfo{}, domain.ErrGameNotFound
	}
	return game.Info(), nil
}

// UpdateSettings changes room settings; host-only and only while waiting.
func (s *GameService) UpdateSettings(pin, requesterID string, settings domain.Settings) error {
	game, ok := s.registry.Get(pin)
	if !ok {
		return domain.ErrGameNotFound
	}
	return game.UpdateSettings(requesterID, settings)
}

// Join adds a player connection to a room and announces it.
func (s *GameService) Join(_ context.Context, pin, connectionID, nickname, userID string) (domain.JoinedOKPayload, error) {
	game, ok := s.registry.Get(pin)
	if !ok {
		return domain.JoinedOKPayload{}, domain.ErrGameNotFound
	}

	joined, welcome, err := game.Join(connectionID, nickname, userID)
	if err != nil {
		return domain.JoinedOKPayload{}, err
	}
	s.registry.Bind(connectionID, pin)
	s.bus.ToRoom(pin, domain.Event{Name: domain.EventPlayerJoined, Payload: joined})
	return welcome, nil
}

// JoinAsHost registers the privileged host channel for a room.
func (s *GameService) JoinAsHost(_ context.Context, pin, connectionID, userID string) (domain.HostJoinedPayload, error) {
	game, ok := s.registry.Get(pin)
	if !ok {
		return domain.HostJoinedPayload{}, domain.ErrGameNotFound
	}
	view, err := game.HostView(userID)
	if err != nil {
		return domain.HostJoinedPayload{}, err
	}
	s.registry.Bind(connectionID, pin)
	return view, nil
}

// Reconnect reattaches a known player to a new connection and replays the
// current session snapshot to them.
func (s *GameService) Reconnect(_ context.Context, pin, connectionID, nickname string) (domain.Snapshot, error) {
	game, ok := s.registry.Get(pin)
	if !ok {
		return domain.Snapshot{}, domain.ErrGameNotFound
	}
	payload, snapshot, err := game.Reconnect(connectionID, nickname)
	if err != nil {
		return domain.Snapshot{}, err
	}
	s.registry.Bind(connectionID, pin)
	s.bus.ToRoom(pin, domain.Event{Name: domain.EventPlayerReconnected, Payload: payload})
	return snapshot, nil
}

// Disconnect handles a transport-driven connection drop. It is not an error;
// the player record and score are retained for reconnection and final results.
func (s *GameService) Disconnect(connectionID string) {
	pin, ok := s.registry.Resolve(connectionID)
	if !ok {
		return
	}
	s.registry.Unbind(connectionID)

	game, ok := s.registry.Get(pin)
	if !ok {
		return
	}
	if payload, changed := game.Disconnect(connectionID); changed {
		s.bus.ToRoom(pin, domain.Event{Name: domain.EventPlayerLeft, Payload: payload})
	}
}

// StartGame transitions waiting -> active, opens question 0, and arms its timer.
func (s *GameService) StartGame(_ context.Context, pin, requesterID string) error {
	game, ok := s.registry.Get(pin)
	if !ok {
		return domain.ErrGameNotFound
	}
	res, err := game.Start(requesterID)
	if err != nil {
		return err
	}

	s.bus.ToRoom(pin, domain.Event{Name: domain.EventGameStarted, Payload: domain.GameStartedPayload{
		QuestionData:   res.view,
		TotalQuestions: res.total,
	}})
	s.armTimer(pin, res.index, res.duration)
	return nil
}

// AdvanceQuestion moves the room to the next question, finalizing the game
// when the quiz is exhausted.
func (s *GameService) AdvanceQuestion(ctx context.Context, pin, requesterID string) error {
	game, ok := s.registry.Get(pin)
	if !ok {
		return domain.ErrGameNotFound
	}
	res, lastDone, err := game.Advance(requesterID)
	if err != nil {
		return err
	}
	if lastDone {
		return s.finalize(ctx, game)
	}

	s.bus.ToRoom(pin, domain.Event{Name: domain.EventNextQuestion, Payload: domain.NextQuestionPayload{
		QuestionData:    res.view,
		CurrentQuestion: res.index + 1,
		TotalQuestions:  res.total,
	}})
	s.armTimer(pin, res.index, res.duration)
	return nil
}

// PauseGame freezes the countdown along with the game.
func (s *GameService) PauseGame(pin, requesterID string) error {
	game, ok := s.registry.Get(pin)
	if !ok {
		return domain.ErrGameNotFound
	}
	if _, err := game.Pause(requesterID); err != nil {
		return err
	}
	s.stopTimer(pin)
	s.bus.ToRoom(pin, domain.Event{Name: domain.EventGamePaused})
	return nil
}

// ResumeGame re-arms the countdown with whatever time was left at pause.
func (s *GameService) ResumeGame(pin, requesterID string) error {
	game, ok := s.registry.Get(pin)
	if !ok {
		return domain.ErrGameNotFound
	}
	remaining, err := game.Resume(requesterID)
	if err != nil {
		return err
	}
	s.bus.ToRoom(pin, domain.Event{Name: domain.EventGameResumed})
	s.armTimerForCurrent(pin, game, remaining)
	return nil
}

// EndGame lets the host finish early, skipping remaining questions.
func (s *GameService) EndGame(ctx context.Context, pin, requesterID string) error {
	game, ok := s.registry.Get(pin)
	if !ok {
		return domain.ErrGameNotFound
	}
	if _, err := game.HostView(requesterID); err != nil {
		return err
	}
	return s.finalize(ctx, game)
}

// SubmitAnswer records one player's answer and notifies the answering
// connection plus the host progress channel. Other players learn nothing.
func (s *GameService) SubmitAnswer(_ context.Context, pin, connectionID string, questionIndex, selectedOption int, timeToAnswerMs int64) (domain.AnswerSubmittedPayload, error) {
	game, ok := s.registry.Get(pin)
	if !ok {
		return domain.AnswerSubmittedPayload{}, domain.ErrGameNotFound
	}
	result, progress, err := game.SubmitAnswer(connectionID, questionIndex, selectedOption, timeToAnswerMs)
	if err != nil {
		return domain.AnswerSubmittedPayload{}, err
	}

	s.bus.ToConnection(connectionID, domain.Event{Name: domain.EventAnswerSubmitted, Payload: result})
	s.bus.ToHost(pin, domain.Event{Name: domain.EventPlayerAnswered, Payload: progress})
	return result, nil
}

// ShowResults broadcasts the answer distribution and current leaderboard for
// a question the room has seen.
func (s *GameService) ShowResults(pin string, questionIndex int) error {
	game, ok := s.registry.Get(pin)
	if !ok {
		return domain.ErrGameNotFound
	}
	payload, err := game.QuestionResults(questionIndex)
	if err != nil {
		return err
	}
	s.bus.ToRoom(pin, domain.Event{Name: domain.EventQuestionResults, Payload: payload})
	return nil
}

// finalize seals the game, broadcasts the final leaderboard, persists the
// result, and fires the quiz stat update.
func (s *GameService) finalize(ctx context.Context, game *Game) error {
	s.stopTimer(game.Pin())

	ended, err := game.Finalize()
	if err != nil {
		return err
	}
	// Registries that mark PINs live externally free the marker on finish.
	if r, ok := s.registry.(interface{ Release(pin string) }); ok {
		r.Release(game.Pin())
	}
	s.bus.ToRoom(game.Pin(), domain.Event{Name: domain.EventGameEnded, Payload: ended})

	if s.results != nil {
		result := domain.GameResult{
			Pin:         game.Pin(),
			QuizID:      game.QuizID(),
			FinishedAt:  time.Now(),
			Leaderboard: ended.Leaderboard,
			Stats:       ended.GameStats,
		}
		if err := s.results.SaveResult(ctx, result); err != nil {
			log.Printf("save result for game %s: %v", game.Pin(), err)
		}
	}
	if s.stats != nil && game.ParticipantCount() > 0 {
		go func(quizID string, avg float64, count int) {
			if err := s.stats.RecordQuizPlayed(context.Background(), quizID, avg, count); err != nil {
				log.Printf("record quiz stats for %s: %v", quizID, err)
			}
		}(game.QuizID(), ended.GameStats.AverageScore, game.ParticipantCount())
	}
	return nil
}

// armTimer schedules the question-timeout broadcast. The captured index is
// compared against the live one at fire time; the timer never advances the
// question, that stays a host action.
func (s *GameService) armTimer(pin string, questionIndex int, d time.Duration) {
	s.timerMu.Lock()
	defer s.timerMu.Unlock()

	if t, ok := s.timers[pin]; ok {
		t.Stop()
	}
	s.timers[pin] = time.AfterFunc(d, func() {
		s.fireTimeout(pin, questionIndex)
	})
}

func (s *GameService) armTimerForCurrent(pin string, game *Game, remaining time.Duration) {
	game.mu.Lock()
	index := game.currentQuestion
	game.mu.Unlock()
	s.armTimer(pin, index, remaining)
}

func (s *GameService) stopTimer(pin string) {
	s.timerMu.Lock()
	defer s.timerMu.Unlock()
	if t, ok := s.timers[pin]; ok {
		t.Stop()
		delete(s.timers, pin)
	}
}

// fireTimeout runs on the timer goroutine. Errors here are logged and
// swallowed; many independent timers run concurrently across rooms and none
// may crash the scheduling facility.
func (s *GameService) fireTimeout(pin string, questionIndex int) {
	game, ok := s.registry.Get(pin)
	if !ok {
		log.Printf("timer fired for vanished game %s", pin)
		return
	}
	payload, live := game.TimeoutInfo(questionIndex)
	if !live {
		return
	}
	s.bus.ToRoom(pin, domain.Event{Name: domain.EventQuestionTimeout, Payload: payload})
}
