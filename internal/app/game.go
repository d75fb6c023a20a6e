package app

import (
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"quizroom-service/internal/domain"
)

const (
	defaultTimeLimitSeconds = 30
	defaultQuestionPoints   = 1000
	leaderboardTopN         = 10
)

// Game is the in-memory aggregate for one live session. All state behind the
// mutex; every exported operation either fully applies or leaves the game
// untouched. The quiz is snapshotted at creation so later edits to the source
// quiz never affect an in-flight game.
type Game struct {
	mu sync.Mutex

	pin    string
	quiz   domain.Quiz
	hostID string

	status            domain.GameStatus
	currentQuestion   int
	questionStartedAt time.Time
	pausedRemaining   time.Duration // countdown left when the game was paused

	settings domain.Settings
	players  []*domain.Player
	results  *domain.GameStats

	createdAt time.Time
	now       func() time.Time
}

// NewGame builds a waiting game around a snapshot of the quiz.
func NewGame(pin string, quiz domain.Quiz, hostID string, settings domain.Settings) *Game {
	return NewGameWithClock(pin, quiz, hostID, settings, time.Now)
}

// NewGameWithClock is test-only for deterministic timestamps.
func NewGameWithClock(pin string, quiz domain.Quiz, hostID string, settings domain.Settings, now func() time.Time) *Game {
	g := &Game{
		pin:             pin,
		quiz:            snapshotQuiz(quiz),
		hostID:          hostID,
		status:          domain.StatusWaiting,
		currentQuestion: -1,
		settings:        settings,
		createdAt:       now(),
		now:             now,
	}
	return g
}

// snapshotQuiz deep-copies the question list so the game owns its questions.
func snapshotQuiz(quiz domain.Quiz) domain.Quiz {
	questions := make([]domain.Question, len(quiz.Questions))
	for i, q := range quiz.Questions {
		questions[i] = q
		questions[i].Options = append([]domain.Option(nil), q.Options...)
	}
	quiz.Questions = questions
	return quiz
}

// Pin returns the room code.
func (g *Game) Pin() string { return g.pin }

// QuizID returns the snapshotted quiz identifier.
func (g *Game) QuizID() string { return g.quiz.ID }

// Status returns the current lifecycle state.
func (g *Game) Status() domain.GameStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

// Finished reports whether the game reached its terminal state.
func (g *Game) Finished() bool {
	return g.Status() == domain.StatusFinished
}

// Info returns the public lobby view.
func (g *Game) Info() domain.GameInfo {
	g.mu.Lock()
	defer g.mu.Unlock()
	return domain.GameInfo{
		Pin:           g.pin,
		QuizTitle:     g.quiz.Title,
		QuestionCount: len(g.quiz.Questions),
		Status:        g.status,
		PlayerCount:   g.connectedCountLocked(),
		MaxPlayers:    g.settings.MaxPlayers,
		AllowLateJoin: g.settings.AllowLateJoin,
		IsPrivate:     g.settings.IsPrivate,
	}
}

// UpdateSettings replaces the settings while the game is still waiting.
func (g *Game) UpdateSettings(requesterID string, settings domain.Settings) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if requesterID != g.hostID {
		return domain.ErrUnauthorized
	}
	if g.status != domain.StatusWaiting {
		return domain.ErrInvalidTransition
	}
	if settings.MaxPlayers < 1 {
		settings.MaxPlayers = 1
	}
	if settings.MaxPlayers > 200 {
		settings.MaxPlayers = 200
	}
	g.settings = settings
	return nil
}

// Join adds a new player. Rejections follow the room policy: finished games,
// full rooms, disabled late join, blank nicknames, and connected-nickname
// collisions.
func (g *Game) Join(connectionID, nickname, userID string) (domain.PlayerJoinedPayload, domain.JoinedOKPayload, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status == domain.StatusFinished {
		return domain.PlayerJoinedPayload{}, domain.JoinedOKPayload{}, domain.ErrGameFinished
	}
	if g.status != domain.StatusWaiting && !g.settings.AllowLateJoin {
		return domain.PlayerJoinedPayload{}, domain.JoinedOKPayload{}, domain.ErrLateJoinDisabled
	}
	if g.connectedCountLocked() >= g.settings.MaxPlayers {
		return domain.PlayerJoinedPayload{}, domain.JoinedOKPayload{}, domain.ErrGameFull
	}

	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return domain.PlayerJoinedPayload{}, domain.JoinedOKPayload{}, domain.ErrInvalidNickname
	}
	if len(nickname) > 20 {
		nickname = nickname[:20]
	}
	for _, p := range g.players {
		if p.IsConnected && strings.EqualFold(p.Nickname, nickname) {
			return domain.PlayerJoinedPayload{}, domain.JoinedOKPayload{}, domain.ErrNicknameTaken
		}
	}

	player := &domain.Player{
		ConnectionID: connectionID,
		UserID:       userID,
		Nickname:     nickname,
		IsConnected:  true,
		JoinedAt:     g.now(),
	}
	g.players = append(g.players, player)

	count := g.connectedCountLocked()
	joined := domain.PlayerJoinedPayload{
		Player:      domain.PlayerRef{Nickname: nickname, ConnectionID: connectionID},
		PlayerCount: count,
	}
	ok := domain.JoinedOKPayload{
		Pin:         g.pin,
		QuizTitle:   g.quiz.Title,
		PlayerCount: count,
		Status:      g.status,
	}
	return joined, ok, nil
}

// HostView authorizes a host connection and returns the privileged view.
func (g *Game) HostView(userID string) (domain.HostJoinedPayload, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if userID != g.hostID {
		return domain.HostJoinedPayload{}, domain.ErrUnauthorized
	}
	refs := make([]domain.PlayerRef, 0, len(g.players))
	for _, p := range g.players {
		if p.IsConnected {
			refs = append(refs, domain.PlayerRef{Nickname: p.Nickname, ConnectionID: p.ConnectionID})
		}
	}
	return domain.HostJoinedPayload{
		Pin:             g.pin,
		Status:          g.status,
		CurrentQuestion: g.currentQuestion,
		TotalQuestions:  len(g.quiz.Questions),
		Players:         refs,
		Settings:        g.settings,
	}, nil
}

// Reconnect reattaches an existing (possibly disconnected) player by nickname
// and returns the session snapshot to replay to the client.
func (g *Game) Reconnect(connectionID, nickname string) (domain.PlayerReconnectedPayload, domain.Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status == domain.StatusFinished {
		return domain.PlayerReconnectedPayload{}, domain.Snapshot{}, domain.ErrGameFinished
	}

	var player *domain.Player
	for _, p := range g.players {
		if strings.EqualFold(p.Nickname, nickname) {
			player = p
			break
		}
	}
	if player == nil {
		return domain.PlayerReconnectedPayload{}, domain.Snapshot{}, domain.ErrPlayerNotFound
	}

	player.ConnectionID = connectionID
	player.IsConnected = true
	player.DisconnectedAt = nil

	count := g.connectedCountLocked()
	names := make([]string, 0, count)
	for _, p := range g.players {
		if p.IsConnected {
			names = append(names, p.Nickname)
		}
	}
	payload := domain.PlayerReconnectedPayload{
		Player:      domain.PlayerRef{Nickname: player.Nickname, ConnectionID: connectionID},
		PlayerCount: count,
	}
	snapshot := domain.Snapshot{
		Pin:             g.pin,
		Status:          g.status,
		CurrentQuestion: g.currentQuestion,
		TotalQuestions:  len(g.quiz.Questions),
		PlayerCount:     count,
		Players:         names,
		Score:           player.Score,
	}
	return payload, snapshot, nil
}

// Disconnect flips the player offline and retains score and answers.
func (g *Game) Disconnect(connectionID string) (domain.PlayerLeftPayload, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, p := range g.players {
		if p.ConnectionID == connectionID && p.IsConnected {
			now := g.now()
			p.IsConnected = false
			p.DisconnectedAt = &now
			return domain.PlayerLeftPayload{
				ConnectionID: connectionID,
				PlayerCount:  g.connectedCountLocked(),
			}, true
		}
	}
	return domain.PlayerLeftPayload{}, false
}

// startResult carries what the service needs after a successful transition.
type startResult struct {
	view     domain.QuestionView
	total    int
	duration time.Duration
	index    int
}

// Start transitions waiting -> active and opens question 0.
func (g *Game) Start(requesterID string) (startResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if requesterID != g.hostID {
		return startResult{}, domain.ErrUnauthorized
	}
	if g.status != domain.StatusWaiting {
		return startResult{}, domain.ErrInvalidTransition
	}
	if len(g.quiz.Questions) == 0 {
		return startResult{}, domain.ErrQuizNotFound
	}

	if g.settings.RandomizePlayerOrder {
		rand.Shuffle(len(g.players), func(i, j int) {
			g.players[i], g.players[j] = g.players[j], g.players[i]
		})
	}

	g.status = domain.StatusActive
	g.currentQuestion = 0
	g.questionStartedAt = g.now()

	return startResult{
		view:     g.questionViewLocked(0),
		total:    len(g.quiz.Questions),
		duration: g.questionDurationLocked(0),
		index:    0,
	}, nil
}

// Advance moves to the next question, or reports that the quiz is exhausted
// (lastDone=true) so the caller can finalize. Valid from active or paused.
func (g *Game) Advance(requesterID string) (res startResult, lastDone bool, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if requesterID != g.hostID {
		return startResult{}, false, domain.ErrUnauthorized
	}
	if g.status != domain.StatusActive && g.status != domain.StatusPaused {
		return startResult{}, false, domain.ErrInvalidTransition
	}

	next := g.currentQuestion + 1
	if next >= len(g.quiz.Questions) {
		return startResult{}, true, nil
	}

	g.status = domain.StatusActive
	g.currentQuestion = next
	g.questionStartedAt = g.now()
	g.pausedRemaining = 0

	return startResult{
		view:     g.questionViewLocked(next),
		total:    len(g.quiz.Questions),
		duration: g.questionDurationLocked(next),
		index:    next,
	}, false, nil
}

// Pause freezes the game and records how much countdown is left so Resume can
// re-arm the timer with the remainder.
func (g *Game) Pause(requesterID string) (time.Duration, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if requesterID != g.hostID {
		return 0, domain.ErrUnauthorized
	}
	if g.status != domain.StatusActive {
		return 0, domain.ErrInvalidTransition
	}

	deadline := g.questionStartedAt.Add(g.questionDurationLocked(g.currentQuestion))
	remaining := deadline.Sub(g.now())
	if remaining < 0 {
		remaining = 0
	}
	g.pausedRemaining = remaining
	g.status = domain.StatusPaused
	return remaining, nil
}

// Resume restarts the frozen countdown.
func (g *Game) Resume(requesterID string) (time.Duration, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if requesterID != g.hostID {
		return 0, domain.ErrUnauthorized
	}
	if g.status != domain.StatusPaused {
		return 0, domain.ErrInvalidTransition
	}

	remaining := g.pausedRemaining
	g.status = domain.StatusActive
	// Shift the question start so elapsed time stays consistent.
	g.questionStartedAt = g.now().Add(remaining - g.questionDurationLocked(g.currentQuestion))
	g.pausedRemaining = 0
	return remaining, nil
}

// SubmitAnswer validates and applies one player's answer. The check against
// the live question index happens here, under the lock, so a submission racing
// an Advance is deterministically accepted or rejected.
func (g *Game) SubmitAnswer(connectionID string, questionIndex, selectedOption int, timeToAnswerMs int64) (domain.AnswerSubmittedPayload, domain.PlayerAnsweredPayload, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var player *domain.Player
	for _, p := range g.players {
		if p.ConnectionID == connectionID {
			player = p
			break
		}
	}
	if player == nil {
		return domain.AnswerSubmittedPayload{}, domain.PlayerAnsweredPayload{}, domain.ErrPlayerNotFound
	}
	if g.status != domain.StatusActive {
		return domain.AnswerSubmittedPayload{}, domain.PlayerAnsweredPayload{}, domain.ErrGameNotActive
	}
	for _, a := range player.Answers {
		if a.QuestionIndex == questionIndex {
			return domain.AnswerSubmittedPayload{}, domain.PlayerAnsweredPayload{}, domain.ErrDuplicateAnswer
		}
	}
	if questionIndex != g.currentQuestion {
		return domain.AnswerSubmittedPayload{}, domain.PlayerAnsweredPayload{}, domain.ErrStaleQuestion
	}

	question := g.quiz.Questions[questionIndex]
	if selectedOption < 0 || selectedOption >= len(question.Options) {
		return domain.AnswerSubmittedPayload{}, domain.PlayerAnsweredPayload{}, domain.ErrInvalidOption
	}

	isCorrect := question.Options[selectedOption].IsCorrect
	points := 0
	if isCorrect {
		points = scoreAnswer(questionPoints(question), questionLimitMs(question), timeToAnswerMs)
	}

	player.Answers = append(player.Answers, domain.Answer{
		QuestionIndex:  questionIndex,
		SelectedOption: selectedOption,
		IsCorrect:      isCorrect,
		TimeToAnswerMs: timeToAnswerMs,
		PointsEarned:   points,
	})
	player.Score += points

	answered := 0
	for _, p := range g.players {
		for _, a := range p.Answers {
			if a.QuestionIndex == questionIndex {
				answered++
				break
			}
		}
	}

	result := domain.AnswerSubmittedPayload{
		IsCorrect:    isCorrect,
		PointsEarned: points,
		CurrentScore: player.Score,
	}
	progress := domain.PlayerAnsweredPayload{
		PlayerNickname: player.Nickname,
		AnsweredCount:  answered,
		TotalPlayers:   g.connectedCountLocked(),
	}
	return result, progress, nil
}

// scoreAnswer rewards speed within a 50-100% band of the question's face
// value: instant answers earn full points, answers at the wire earn half.
func scoreAnswer(points int, limitMs, timeMs int64) int {
	bonus := float64(limitMs-timeMs) / float64(limitMs)
	if bonus < 0 {
		bonus = 0
	}
	if bonus > 1 {
		bonus = 1
	}
	return int(math.Round(float64(points) * (0.5 + 0.5*bonus)))
}

// TimeoutInfo reports whether a timer fired for the question that is still
// live; stale fires (game advanced, paused, or finished) are no-ops.
func (g *Game) TimeoutInfo(questionIndex int) (domain.QuestionTimeoutPayload, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status != domain.StatusActive || g.currentQuestion != questionIndex {
		return domain.QuestionTimeoutPayload{}, false
	}
	return domain.QuestionTimeoutPayload{
		CorrectOptionIndex: g.correctOptionLocked(questionIndex),
		Message:            "Time's up!",
	}, true
}

// QuestionResults computes the mid-game snapshot for one question: option
// distribution, correct totals, and the current top-10 leaderboard.
func (g *Game) QuestionResults(questionIndex int) (domain.QuestionResultsPayload, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if questionIndex < 0 || questionIndex >= len(g.quiz.Questions) {
		return domain.QuestionResultsPayload{}, domain.ErrStaleQuestion
	}
	question := g.quiz.Questions[questionIndex]

	stats := make([]domain.OptionStat, len(question.Options))
	for i, opt := range question.Options {
		stats[i] = domain.OptionStat{Text: opt.Text, IsCorrect: opt.IsCorrect}
	}
	correct, total := 0, 0
	for _, p := range g.players {
		for _, a := range p.Answers {
			if a.QuestionIndex != questionIndex {
				continue
			}
			total++
			if a.SelectedOption >= 0 && a.SelectedOption < len(stats) {
				stats[a.SelectedOption].Count++
			}
			if a.IsCorrect {
				correct++
			}
		}
	}

	return domain.QuestionResultsPayload{
		QuestionIndex:      questionIndex,
		CorrectOptionIndex: g.correctOptionLocked(questionIndex),
		OptionStats:        stats,
		CorrectAnswers:     correct,
		TotalAnswers:       total,
		Leaderboard:        g.leaderboardLocked(leaderboardTopN, false),
	}, nil
}

// Finalize computes final ranking and aggregate stats and seals the game.
// finished is terminal; a second call returns ErrInvalidTransition.
func (g *Game) Finalize() (domain.GameEndedPayload, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status == domain.StatusFinished {
		return domain.GameEndedPayload{}, domain.ErrInvalidTransition
	}

	participants := g.participantsLocked()
	sort.SliceStable(participants, func(i, j int) bool {
		return participants[i].Score > participants[j].Score
	})
	for i, p := range participants {
		p.Position = i + 1
	}

	totalQuestions := len(g.quiz.Questions)
	sum, highest := 0, 0
	for _, p := range participants {
		sum += p.Score
		if p.Score > highest {
			highest = p.Score
		}
	}
	avg := 0.0
	if len(participants) > 0 {
		avg = float64(sum) / float64(len(participants))
	}
	roster := len(g.players)
	if roster == 0 {
		roster = 1
	}

	questionStats := make([]domain.QuestionStat, 0, totalQuestions)
	for i := 0; i < totalQuestions; i++ {
		stat := domain.QuestionStat{QuestionIndex: i}
		var timeSum int64
		count := 0
		for _, p := range participants {
			for _, a := range p.Answers {
				if a.QuestionIndex != i {
					continue
				}
				count++
				timeSum += a.TimeToAnswerMs
				if a.IsCorrect {
					stat.CorrectAnswers++
				} else {
					stat.IncorrectAnswers++
				}
			}
		}
		if count > 0 {
			stat.AverageTimeMs = float64(timeSum) / float64(count)
		}
		questionStats = append(questionStats, stat)
	}

	g.results = &domain.GameStats{
		TotalQuestions: totalQuestions,
		AverageScore:   avg,
		HighestScore:   highest,
		CompletionRate: float64(len(participants)) / float64(roster),
		QuestionStats:  questionStats,
	}
	g.status = domain.StatusFinished

	return domain.GameEndedPayload{
		Leaderboard: g.leaderboardLocked(0, true),
		GameStats:   *g.results,
	}, nil
}

// Results returns the final stats, present only after Finalize.
func (g *Game) Results() (domain.GameStats, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.results == nil {
		return domain.GameStats{}, false
	}
	return *g.results, true
}

// ParticipantCount counts players with at least one answer.
func (g *Game) ParticipantCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.participantsLocked())
}

func (g *Game) connectedCountLocked() int {
	count := 0
	for _, p := range g.players {
		if p.IsConnected {
			count++
		}
	}
	return count
}

// participantsLocked filters the roster to players with at least one answer;
// a player who never answered is excluded from ranking.
func (g *Game) participantsLocked() []*domain.Player {
	participants := make([]*domain.Player, 0, len(g.players))
	for _, p := range g.players {
		if len(p.Answers) > 0 {
			participants = append(participants, p)
		}
	}
	return participants
}

// leaderboardLocked ranks participants by score descending. Stable sort keeps
// join order as the tie-break; ties still get sequential positions. topN of 0
// means no cap; detail adds per-player correct/total answer counts.
func (g *Game) leaderboardLocked(topN int, detail bool) []domain.LeaderboardEntry {
	participants := g.participantsLocked()
	sort.SliceStable(participants, func(i, j int) bool {
		return participants[i].Score > participants[j].Score
	})
	if topN > 0 && len(participants) > topN {
		participants = participants[:topN]
	}

	entries := make([]domain.LeaderboardEntry, 0, len(participants))
	for i, p := range participants {
		entry := domain.LeaderboardEntry{
			Position: i + 1,
			Nickname: p.Nickname,
			Score:    p.Score,
		}
		if detail {
			for _, a := range p.Answers {
				entry.TotalAnswers++
				if a.IsCorrect {
					entry.CorrectAnswers++
				}
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

func (g *Game) questionViewLocked(index int) domain.QuestionView {
	q := g.quiz.Questions[index]
	options := make([]string, len(q.Options))
	for i, opt := range q.Options {
		options[i] = opt.Text
	}
	return domain.QuestionView{
		QuestionIndex: index,
		Text:          q.Text,
		Options:       options,
		TimeLimit:     questionLimitSeconds(q),
		Points:        questionPoints(q),
	}
}

func (g *Game) questionDurationLocked(index int) time.Duration {
	return time.Duration(questionLimitSeconds(g.quiz.Questions[index])) * time.Second
}

func (g *Game) correctOptionLocked(index int) int {
	for i, opt := range g.quiz.Questions[index].Options {
		if opt.IsCorrect {
			return i
		}
	}
	return -1
}

func questionLimitSeconds(q domain.Question) int {
	if q.TimeLimitSeconds <= 0 {
		return defaultTimeLimitSeconds
	}
	return q.TimeLimitSeconds
}

func questionLimitMs(q domain.Question) int64 {
	return int64(questionLimitSeconds(q)) * 1000
}

func questionPoints(q domain.Question) int {
	if q.Points <= 0 {
		return defaultQuestionPoints
	}
	return q.Points
}
