package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"quizroom-service/internal/app"
	"quizroom-service/internal/domain"
	"quizroom-service/internal/infra/memory"
)

func TestCreateGameAllocatesUniquePins(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		game, err := service.CreateGame(ctx, "quiz-1", "host-1", nil)
		if err != nil {
			t.Fatalf("create game %d: %v", i, err)
		}
		pin := game.Pin()
		if len(pin) != 6 {
			t.Fatalf("expected 6-digit pin, got %q", pin)
		}
		if seen[pin] {
			t.Fatalf("pin %s allocated twice among live games", pin)
		}
		seen[pin] = true
	}
}

func TestCreateGameRequiresQuizAccess(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	if _, err := service.CreateGame(ctx, "quiz-private", "someone-else", nil); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for private quiz, got %v", err)
	}
	if _, err := service.CreateGame(ctx, "quiz-private", "owner-1", nil); err != nil {
		t.Fatalf("owner should host their private quiz: %v", err)
	}
	if _, err := service.CreateGame(ctx, "no-such-quiz", "host-1", nil); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected quiz not found, got %v", err)
	}
}

func TestJoinCapacityAndStart(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	game := mustCreate(t, service, &domain.Settings{MaxPlayers: 2, AllowLateJoin: true})
	pin := game.Pin()

	if _, err := service.Join(ctx, pin, "c-alice", "Alice", ""); err != nil {
		t.Fatalf("join alice: %v", err)
	}
	if _, err := service.Join(ctx, pin, "c-bob", "Bob", ""); err != nil {
		t.Fatalf("join bob: %v", err)
	}
	if _, err := service.Join(ctx, pin, "c-carol", "Carol", ""); !errors.Is(err, domain.ErrGameFull) {
		t.Fatalf("expected game full for carol, got %v", err)
	}

	if err := service.StartGame(ctx, pin, "not-the-host"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized start, got %v", err)
	}
	if err := service.StartGame(ctx, pin, "host-1"); err != nil {
		t.Fatalf("start: %v", err)
	}

	info, err := service.GameInfo(pin)
	if err != nil {
		t.Fatalf("game info: %v", err)
	}
	if info.Status != domain.StatusActive {
		t.Fatalf("expected active, got %s", info.Status)
	}
	if err := service.StartGame(ctx, pin, "host-1"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition on double start, got %v", err)
	}
}

func TestTimeDecayedScoring(t *testing.T) {
	service, bus := newTestService()
	ctx := context.Background()

	pin := startedGame(t, service, "c-alice", "c-bob")

	// Question 0: 30s limit, 1000 points, correct option index 1.
	result, err := service.SubmitAnswer(ctx, pin, "c-alice", 0, 1, 3000)
	if err != nil {
		t.Fatalf("alice submit: %v", err)
	}
	if !result.IsCorrect || result.PointsEarned != 950 {
		t.Fatalf("expected correct 950 points at 3000ms, got %+v", result)
	}
	if result.CurrentScore != 950 {
		t.Fatalf("expected running score 950, got %d", result.CurrentScore)
	}

	result, err = service.SubmitAnswer(ctx, pin, "c-bob", 0, 0, 1000)
	if err != nil {
		t.Fatalf("bob submit: %v", err)
	}
	if result.IsCorrect || result.PointsEarned != 0 {
		t.Fatalf("expected incorrect 0 points, got %+v", result)
	}

	progress := bus.lastHostEvent(t, domain.EventPlayerAnswered).Payload.(domain.PlayerAnsweredPayload)
	if progress.AnsweredCount != 2 || progress.TotalPlayers != 2 {
		t.Fatalf("expected 2/2 answered, got %+v", progress)
	}
}

func TestScoringBounds(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	pin := startedGame(t, service, "c-instant", "c-wire", "c-late")

	instant, err := service.SubmitAnswer(ctx, pin, "c-instant", 0, 1, 0)
	if err != nil {
		t.Fatalf("instant submit: %v", err)
	}
	if instant.PointsEarned != 1000 {
		t.Fatalf("instant answer should earn face value, got %d", instant.PointsEarned)
	}

	wire, err := service.SubmitAnswer(ctx, pin, "c-wire", 0, 1, 30000)
	if err != nil {
		t.Fatalf("wire submit: %v", err)
	}
	if wire.PointsEarned != 500 {
		t.Fatalf("answer at the wire should earn half, got %d", wire.PointsEarned)
	}

	// Client-reported time past the limit still never zeroes a correct answer.
	late, err := service.SubmitAnswer(ctx, pin, "c-late", 0, 1, 45000)
	if err != nil {
		t.Fatalf("late submit: %v", err)
	}
	if late.PointsEarned != 500 {
		t.Fatalf("overdue correct answer floors at half, got %d", late.PointsEarned)
	}
}

func TestDuplicateAnswerRejected(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	pin := startedGame(t, service, "c-alice")

	first, err := service.SubmitAnswer(ctx, pin, "c-alice", 0, 1, 3000)
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := service.SubmitAnswer(ctx, pin, "c-alice", 0, 0, 100); !errors.Is(err, domain.ErrDuplicateAnswer) {
		t.Fatalf("expected duplicate answer, got %v", err)
	}
	if _, err := service.SubmitAnswer(ctx, pin, "c-alice", 1, 1, 100); !errors.Is(err, domain.ErrStaleQuestion) {
		t.Fatalf("expected stale rejection for future question, got %v", err)
	}

	// Rejections must not have altered the running score.
	if err := service.AdvanceQuestion(ctx, pin, "host-1"); err != nil {
		t.Fatalf("advance: %v", err)
	}
	next, err := service.SubmitAnswer(ctx, pin, "c-alice", 1, 1, 0)
	if err != nil {
		t.Fatalf("submit q1: %v", err)
	}
	if next.CurrentScore != first.CurrentScore+next.PointsEarned {
		t.Fatalf("running score drifted: %d != %d+%d", next.CurrentScore, first.CurrentScore, next.PointsEarned)
	}
}

func TestAnswerRejectionLadder(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	game := mustCreate(t, service, nil)
	pin := game.Pin()
	if _, err := service.Join(ctx, pin, "c-alice", "Alice", ""); err != nil {
		t.Fatalf("join: %v", err)
	}

	if _, err := service.SubmitAnswer(ctx, pin, "c-ghost", 0, 0, 100); !errors.Is(err, domain.ErrPlayerNotFound) {
		t.Fatalf("expected player not found, got %v", err)
	}
	if _, err := service.SubmitAnswer(ctx, pin, "c-alice", 0, 0, 100); !errors.Is(err, domain.ErrGameNotActive) {
		t.Fatalf("expected game not active before start, got %v", err)
	}

	if err := service.StartGame(ctx, pin, "host-1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := service.SubmitAnswer(ctx, pin, "c-alice", 1, 0, 100); !errors.Is(err, domain.ErrStaleQuestion) {
		t.Fatalf("expected stale question, got %v", err)
	}
	if _, err := service.SubmitAnswer(ctx, pin, "c-alice", 0, 99, 100); !errors.Is(err, domain.ErrInvalidOption) {
		t.Fatalf("expected invalid option, got %v", err)
	}
	if _, err := service.SubmitAnswer(ctx, "000000", "c-alice", 0, 0, 100); !errors.Is(err, domain.ErrGameNotFound) {
		t.Fatalf("expected game not found, got %v", err)
	}
}

func TestAdvanceThroughGameFinalizes(t *testing.T) {
	service, bus := newTestService()
	ctx := context.Background()

	pin := startedGame(t, service, "c-alice", "c-bob")

	if _, err := service.SubmitAnswer(ctx, pin, "c-alice", 0, 1, 3000); err != nil {
		t.Fatalf("alice q0: %v", err)
	}
	if _, err := service.SubmitAnswer(ctx, pin, "c-bob", 0, 0, 1000); err != nil {
		t.Fatalf("bob q0: %v", err)
	}

	if err := service.AdvanceQuestion(ctx, pin, "c-alice"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("player should not advance, got %v", err)
	}
	if err := service.AdvanceQuestion(ctx, pin, "host-1"); err != nil {
		t.Fatalf("advance to q1: %v", err)
	}
	if err := service.AdvanceQuestion(ctx, pin, "host-1"); err != nil {
		t.Fatalf("advance to q2: %v", err)
	}
	// Advancing past the last question finalizes the game.
	if err := service.AdvanceQuestion(ctx, pin, "host-1"); err != nil {
		t.Fatalf("final advance: %v", err)
	}

	info, _ := service.GameInfo(pin)
	if info.Status != domain.StatusFinished {
		t.Fatalf("expected finished, got %s", info.Status)
	}

	ended := bus.lastRoomEvent(t, domain.EventGameEnded).Payload.(domain.GameEndedPayload)
	if len(ended.Leaderboard) != 2 {
		t.Fatalf("expected 2 participants, got %+v", ended.Leaderboard)
	}
	if ended.Leaderboard[0].Nickname != "Alice" || ended.Leaderboard[0].Position != 1 {
		t.Fatalf("expected Alice first, got %+v", ended.Leaderboard[0])
	}
	if ended.Leaderboard[1].Nickname != "Bob" || ended.Leaderboard[1].Position != 2 {
		t.Fatalf("expected Bob second, got %+v", ended.Leaderboard[1])
	}
	if ended.GameStats.TotalQuestions != 3 || ended.GameStats.HighestScore != 950 {
		t.Fatalf("unexpected game stats %+v", ended.GameStats)
	}

	// finished is terminal.
	if err := service.StartGame(ctx, pin, "host-1"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("start after finish: %v", err)
	}
	if err := service.AdvanceQuestion(ctx, pin, "host-1"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("advance after finish: %v", err)
	}
	if err := service.PauseGame(pin, "host-1"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("pause after finish: %v", err)
	}
	if _, err := service.Join(ctx, pin, "c-late", "Dave", ""); !errors.Is(err, domain.ErrGameFinished) {
		t.Fatalf("join after finish: %v", err)
	}
}

func TestLeaderboardExcludesSilentPlayers(t *testing.T) {
	service, bus := newTestService()
	ctx := context.Background()

	pin := startedGame(t, service, "c-alice", "c-quiet")

	if _, err := service.SubmitAnswer(ctx, pin, "c-alice", 0, 1, 3000); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := service.EndGame(ctx, pin, "host-1"); err != nil {
		t.Fatalf("end game: %v", err)
	}

	ended := bus.lastRoomEvent(t, domain.EventGameEnded).Payload.(domain.GameEndedPayload)
	if len(ended.Leaderboard) != 1 {
		t.Fatalf("player with zero answers must not rank, got %+v", ended.Leaderboard)
	}
	if ended.GameStats.CompletionRate != 0.5 {
		t.Fatalf("expected completion rate 0.5, got %v", ended.GameStats.CompletionRate)
	}
}

func TestDisconnectAndReconnect(t *testing.T) {
	service, bus := newTestService()
	ctx := context.Background()

	pin := startedGame(t, service, "c-alice", "c-bob")

	if _, err := service.SubmitAnswer(ctx, pin, "c-bob", 0, 1, 6000); err != nil {
		t.Fatalf("bob submit: %v", err)
	}

	service.Disconnect("c-bob")
	left := bus.lastRoomEvent(t, domain.EventPlayerLeft).Payload.(domain.PlayerLeftPayload)
	if left.PlayerCount != 1 {
		t.Fatalf("expected 1 connected after drop, got %d", left.PlayerCount)
	}

	// Same nickname reclaims the record, score intact.
	snapshot, err := service.Reconnect(ctx, pin, "c-bob-2", "Bob")
	if err != nil {
		t.Fatalf("reconnect: %v", err)
	}
	if snapshot.Score != 900 {
		t.Fatalf("expected replayed score 900, got %d", snapshot.Score)
	}
	if snapshot.Status != domain.StatusActive || snapshot.CurrentQuestion != 0 {
		t.Fatalf("snapshot should mirror live state, got %+v", snapshot)
	}
	if snapshot.PlayerCount != 2 {
		t.Fatalf("expected 2 connected after reconnect, got %d", snapshot.PlayerCount)
	}

	// The new connection answers under the reclaimed identity.
	if _, err := service.SubmitAnswer(ctx, pin, "c-bob-2", 0, 1, 100); !errors.Is(err, domain.ErrDuplicateAnswer) {
		t.Fatalf("reclaimed player should keep answer history, got %v", err)
	}

	if _, err := service.Reconnect(ctx, pin, "c-x", "Nobody"); !errors.Is(err, domain.ErrPlayerNotFound) {
		t.Fatalf("expected player not found, got %v", err)
	}
}

func TestNicknamePolicy(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	game := mustCreate(t, service, nil)
	pin := game.Pin()

	if _, err := service.Join(ctx, pin, "c-0", "   ", ""); !errors.Is(err, domain.ErrInvalidNickname) {
		t.Fatalf("expected whitespace-only nickname rejected, got %v", err)
	}
	if _, err := service.Join(ctx, pin, "c-1", "  Alice  ", ""); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := service.Join(ctx, pin, "c-2", "alice", ""); !errors.Is(err, domain.ErrNicknameTaken) {
		t.Fatalf("expected case-insensitive collision, got %v", err)
	}

	// Nickname uniqueness only binds connected players.
	service.Disconnect("c-1")
	if _, err := service.Join(ctx, pin, "c-3", "ALICE", ""); err != nil {
		t.Fatalf("disconnected nickname should be joinable, got %v", err)
	}
}

func TestLateJoinPolicy(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	game := mustCreate(t, service, &domain.Settings{MaxPlayers: 10, AllowLateJoin: false})
	pin := game.Pin()
	if _, err := service.Join(ctx, pin, "c-early", "Early", ""); err != nil {
		t.Fatalf("join before start: %v", err)
	}
	if err := service.StartGame(ctx, pin, "host-1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := service.Join(ctx, pin, "c-late", "Late", ""); !errors.Is(err, domain.ErrLateJoinDisabled) {
		t.Fatalf("expected late join disabled, got %v", err)
	}
}

func TestQuestionResultsSnapshot(t *testing.T) {
	service, bus := newTestService()
	ctx := context.Background()

	pin := startedGame(t, service, "c-alice", "c-bob", "c-carol")

	if _, err := service.SubmitAnswer(ctx, pin, "c-alice", 0, 1, 3000); err != nil {
		t.Fatalf("alice: %v", err)
	}
	if _, err := service.SubmitAnswer(ctx, pin, "c-bob", 0, 0, 2000); err != nil {
		t.Fatalf("bob: %v", err)
	}
	if _, err := service.SubmitAnswer(ctx, pin, "c-carol", 0, 1, 3000); err != nil {
		t.Fatalf("carol: %v", err)
	}

	if err := service.ShowResults(pin, 0); err != nil {
		t.Fatalf("show results: %v", err)
	}
	results := bus.lastRoomEvent(t, domain.EventQuestionResults).Payload.(domain.QuestionResultsPayload)
	if results.CorrectOptionIndex != 1 {
		t.Fatalf("expected correct option 1, got %d", results.CorrectOptionIndex)
	}
	if results.CorrectAnswers != 2 || results.TotalAnswers != 3 {
		t.Fatalf("expected 2/3 correct, got %+v", results)
	}
	if results.OptionStats[1].Count != 2 || results.OptionStats[0].Count != 1 {
		t.Fatalf("unexpected option distribution %+v", results.OptionStats)
	}

	// Alice and Carol tie at 950; Alice joined earlier so ranks above.
	if results.Leaderboard[0].Nickname != "Alice" || results.Leaderboard[1].Nickname != "Carol" {
		t.Fatalf("tie should break by join order, got %+v", results.Leaderboard)
	}
}

func TestPauseAndResumeBroadcasts(t *testing.T) {
	service, bus := newTestService()
	ctx := context.Background()

	pin := startedGame(t, service, "c-alice")

	if err := service.PauseGame(pin, "host-1"); err != nil {
		t.Fatalf("pause: %v", err)
	}
	bus.lastRoomEvent(t, domain.EventGamePaused)

	if _, err := service.SubmitAnswer(ctx, pin, "c-alice", 0, 1, 100); !errors.Is(err, domain.ErrGameNotActive) {
		t.Fatalf("expected rejection while paused, got %v", err)
	}
	if err := service.PauseGame(pin, "host-1"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("double pause should fail, got %v", err)
	}

	if err := service.ResumeGame(pin, "host-1"); err != nil {
		t.Fatalf("resume: %v", err)
	}
	bus.lastRoomEvent(t, domain.EventGameResumed)
	if _, err := service.SubmitAnswer(ctx, pin, "c-alice", 0, 1, 100); err != nil {
		t.Fatalf("submit after resume: %v", err)
	}
}

func TestQuestionTimeoutBroadcast(t *testing.T) {
	service, bus := newTestService()
	ctx := context.Background()

	// quiz-fast question 0 has a 1 second limit.
	game, err := service.CreateGame(ctx, "quiz-fast", "host-1", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	pin := game.Pin()
	if _, err := service.Join(ctx, pin, "c-alice", "Alice", ""); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := service.StartGame(ctx, pin, "host-1"); err != nil {
		t.Fatalf("start: %v", err)
	}

	deadline := time.After(3 * time.Second)
	for {
		if ev, ok := bus.findRoomEvent(domain.EventQuestionTimeout); ok {
			payload := ev.Payload.(domain.QuestionTimeoutPayload)
			if payload.CorrectOptionIndex != 1 {
				t.Fatalf("expected correct option 1 in timeout, got %+v", payload)
			}
			return
		}
		select {
		case <-deadline:
			t.Fatal("question-timeout never fired")
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func TestConcurrentSubmissionsStaySerialized(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	pin := startedGame(t, service, "c-racer")

	var wg sync.WaitGroup
	accepted := make(chan domain.AnswerSubmittedPayload, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if result, err := service.SubmitAnswer(ctx, pin, "c-racer", 0, 1, 1000); err == nil {
				accepted <- result
			}
		}()
	}
	wg.Wait()
	close(accepted)

	count := 0
	for range accepted {
		count++
	}
	if count != 1 {
		t.Fatalf("exactly one racing submission may win, got %d", count)
	}
}

// --- helpers ---

func newTestService() (*app.GameService, *recordingBus) {
	bus := &recordingBus{}
	registry := memory.NewGameRegistry()
	quizzes := memory.NewQuizRepository(memory.NewStaticQuizLoader(testQuizzes()), 5*time.Minute)
	return app.NewGameService(registry, quizzes, bus), bus
}

func mustCreate(t *testing.T, service *app.GameService, settings *domain.Settings) *app.Game {
	t.Helper()
	game, err := service.CreateGame(context.Background(), "quiz-1", "host-1", settings)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	return game
}

// startedGame creates quiz-1, joins the given connections as Alice, Bob,
// Carol, ... and starts the game.
func startedGame(t *testing.T, service *app.GameService, conns ...string) string {
	t.Helper()
	names := []string{"Alice", "Bob", "Carol", "Dave", "Erin"}
	game := mustCreate(t, service, nil)
	for i, conn := range conns {
		if _, err := service.Join(context.Background(), game.Pin(), conn, names[i], ""); err != nil {
			t.Fatalf("join %s: %v", conn, err)
		}
	}
	if err := service.StartGame(context.Background(), game.Pin(), "host-1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	return game.Pin()
}

func testQuizzes() map[string]domain.Quiz {
	return map[string]domain.Quiz{
		"quiz-1": {
			ID:       "quiz-1",
			Title:    "Trivia Night",
			OwnerID:  "host-1",
			IsPublic: true,
			Questions: []domain.Question{
				{
					Text: "What is 2 + 2?",
					Options: []domain.Option{
						{Text: "3"},
						{Text: "4", IsCorrect: true},
						{Text: "5"},
					},
					TimeLimitSeconds: 30,
					Points:           1000,
				},
				{
					Text: "Largest ocean?",
					Options: []domain.Option{
						{Text: "Atlantic"},
						{Text: "Pacific", IsCorrect: true},
					},
					TimeLimitSeconds: 20,
					Points:           1000,
				},
				{
					Text: "Capital of France?",
					Options: []domain.Option{
						{Text: "Paris", IsCorrect: true},
						{Text: "Lyon"},
					},
					TimeLimitSeconds: 15,
					Points:           500,
				},
			},
		},
		"quiz-fast": {
			ID:       "quiz-fast",
			Title:    "Speed Round",
			OwnerID:  "host-1",
			IsPublic: true,
			Questions: []domain.Question{
				{
					Text: "Quick: 1 + 1?",
					Options: []domain.Option{
						{Text: "1"},
						{Text: "2", IsCorrect: true},
					},
					TimeLimitSeconds: 1,
					Points:           100,
				},
			},
		},
		"quiz-private": {
			ID:      "quiz-private",
			Title:   "Owners Only",
			OwnerID: "owner-1",
			Questions: []domain.Question{
				{
					Text: "Secret question",
					Options: []domain.Option{
						{Text: "A", IsCorrect: true},
						{Text: "B"},
					},
				},
			},
		},
	}
}

// recordingBus captures emitted events per audience for assertions.
type recordingBus struct {
	mu     sync.Mutex
	room   []domain.Event
	host   []domain.Event
	direct []domain.Event
}

func (b *recordingBus) ToRoom(_ string, event domain.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.room = append(b.room, event)
}

func (b *recordingBus) ToHost(_ string, event domain.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.host = append(b.host, event)
}

func (b *recordingBus) ToConnection(_ string, event domain.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.direct = append(b.direct, event)
}

func (b *recordingBus) lastRoomEvent(t *testing.T, name string) domain.Event {
	t.Helper()
	if ev, ok := b.findRoomEvent(name); ok {
		return ev
	}
	t.Fatalf("no %s event broadcast to room", name)
	return domain.Event{}
}

func (b *recordingBus) findRoomEvent(name string) (domain.Event, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.room) - 1; i >= 0; i-- {
		if b.room[i].Name == name {
			return b.room[i], true
		}
	}
	return domain.Event{}, false
}

func (b *recordingBus) lastHostEvent(t *testing.T, name string) domain.Event {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.host) - 1; i >= 0; i-- {
		if b.host[i].Name == name {
			return b.host[i]
		}
	}
	t.Fatalf("no %s event sent to host", name)
	return domain.Event{}
}
