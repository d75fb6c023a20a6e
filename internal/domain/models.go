package domain

import "time"

// GameStatus is the lifecycle state of a game session.
type GameStatus string

const (
	StatusWaiting  GameStatus = "waiting"
	StatusActive   GameStatus = "active"
	StatusPaused   GameStatus = "paused"
	StatusFinished GameStatus = "finished"
)

// Option represents a possible answer for a question.
type Option struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// Question models an MCQ question with a per-question time limit and face value.
type Question struct {
	Text             string   `json:"text"`
	Options          []Option `json:"options"`
	TimeLimitSeconds int      `json:"timeLimitSeconds"` // defaults to 30 if zero
	Points           int      `json:"points"`           // defaults to 1000 if zero
}

// Quiz is the immutable question list a game session is built from.
type Quiz struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	OwnerID   string     `json:"ownerId"`
	IsPublic  bool       `json:"isPublic"`
	Questions []Question `json:"questions"`
}

// Settings control room capacity and join policy. Mutable only while waiting.
type Settings struct {
	MaxPlayers           int  `json:"maxPlayers"`
	IsPrivate            bool `json:"isPrivate"`
	AllowLateJoin        bool `json:"allowLateJoin"`
	ShowLeaderboard      bool `json:"showLeaderboard"`
	RandomizePlayerOrder bool `json:"randomizePlayerOrder"`
}

// DefaultSettings mirrors the defaults a host gets without overrides.
func DefaultSettings() Settings {
	return Settings{
		MaxPlayers:      50,
		AllowLateJoin:   true,
		ShowLeaderboard: true,
	}
}

// Answer records one player's response to one question. IsCorrect and
// PointsEarned are fixed at submission time and never recomputed.
type Answer struct {
	QuestionIndex  int   `json:"questionIndex"`
	SelectedOption int   `json:"selectedOption"`
	IsCorrect      bool  `json:"isCorrect"`
	TimeToAnswerMs int64 `json:"timeToAnswerMs"`
	PointsEarned   int   `json:"pointsEarned"`
}

// Player is one participant's presence in one game session. The record is
// never deleted; disconnection only flips IsConnected.
type Player struct {
	ConnectionID   string     `json:"connectionId"`
	UserID         string     `json:"userId,omitempty"`
	Nickname       string     `json:"nickname"`
	Score          int        `json:"score"`
	Answers        []Answer   `json:"answers"`
	IsConnected    bool       `json:"isConnected"`
	DisconnectedAt *time.Time `json:"disconnectedAt,omitempty"`
	Position       int        `json:"position"` // final rank, assigned at game end
	JoinedAt       time.Time  `json:"joinedAt"`
}

// LeaderboardEntry is a ranked view of one player.
type LeaderboardEntry struct {
	Position       int    `json:"position"`
	Nickname       string `json:"nickname"`
	Score          int    `json:"score"`
	CorrectAnswers int    `json:"correctAnswers,omitempty"`
	TotalAnswers   int    `json:"totalAnswers,omitempty"`
}

// OptionStat is the per-option answer distribution for one question.
type OptionStat struct {
	Text      string `json:"text"`
	Count     int    `json:"count"`
	IsCorrect bool   `json:"isCorrect"`
}

// QuestionStat aggregates answers to one question across the whole game.
type QuestionStat struct {
	QuestionIndex    int     `json:"questionIndex"`
	CorrectAnswers   int     `json:"correctAnswers"`
	IncorrectAnswers int     `json:"incorrectAnswers"`
	AverageTimeMs    float64 `json:"averageTime"`
}

// GameStats are the aggregate results computed when a game finishes.
type GameStats struct {
	TotalQuestions int            `json:"totalQuestions"`
	AverageScore   float64        `json:"averageScore"`
	HighestScore   int            `json:"highestScore"`
	CompletionRate float64        `json:"completionRate"`
	QuestionStats  []QuestionStat `json:"questionStats"`
}

// GameInfo is the public lobby view of a game, safe to show before joining.
type GameInfo struct {
	Pin           string     `json:"gamePin"`
	QuizTitle     string     `json:"quizTitle"`
	QuestionCount int        `json:"questionCount"`
	Status        GameStatus `json:"status"`
	PlayerCount   int        `json:"playerCount"`
	MaxPlayers    int        `json:"maxPlayers"`
	AllowLateJoin bool       `json:"allowLateJoin"`
	IsPrivate     bool       `json:"isPrivate"`
}

// QuestionView is the sanitized question payload sent to players. Correctness
// flags are stripped until results for the question are revealed.
type QuestionView struct {
	QuestionIndex int      `json:"questionIndex"`
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	TimeLimit     int      `json:"timeLimit"`
	Points        int      `json:"points"`
}

// GameResult is the persisted record of a finished game.
type GameResult struct {
	Pin         string             `json:"gamePin"`
	QuizID      string             `json:"quizId"`
	FinishedAt  time.Time          `json:"finishedAt"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	Stats       GameStats          `json:"gameStats"`
}

// Snapshot is the session-state replay sent to a reconnecting client.
type Snapshot struct {
	Pin             string     `json:"gamePin"`
	Status          GameStatus `json:"status"`
	CurrentQuestion int        `json:"currentQuestion"`
	TotalQuestions  int        `json:"totalQuestions"`
	PlayerCount     int        `json:"playerCount"`
	Players         []string   `json:"players"`
	Score           int        `json:"score"`
}
