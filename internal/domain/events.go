package domain

// Event names emitted by the session core. Payload shapes live next to each
// name; the transport wraps them in a {type,payload} envelope.
const (
	EventPlayerJoined      = "player-joined"
	EventJoinedOK          = "joined-successfully"
	EventHostJoined        = "host-joined"
	EventGameStarted       = "game-started"
	EventNextQuestion      = "next-question"
	EventAnswerSubmitted   = "answer-submitted"
	EventPlayerAnswered    = "player-answered"
	EventQuestionResults   = "question-results"
	EventQuestionTimeout   = "question-timeout"
	EventGamePaused        = "game-paused"
	EventGameResumed       = "game-resumed"
	EventGameEnded         = "game-ended"
	EventPlayerLeft        = "player-left"
	EventPlayerReconnected = "player-reconnected"
	EventSessionSnapshot   = "session-snapshot"
	EventError             = "error"
)

// Event is a named payload addressed to one of the room's broadcast groups.
type Event struct {
	Name    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type PlayerJoinedPayload struct {
	Player      PlayerRef `json:"player"`
	PlayerCount int       `json:"playerCount"`
}

// PlayerRef identifies a player to other clients without exposing answers.
type PlayerRef struct {
	Nickname     string `json:"nickname"`
	ConnectionID string `json:"connectionId"`
}

type JoinedOKPayload struct {
	Pin         string     `json:"gamePin"`
	QuizTitle   string     `json:"quizTitle"`
	PlayerCount int        `json:"playerCount"`
	Status      GameStatus `json:"status"`
}

type HostJoinedPayload struct {
	Pin             string      `json:"gamePin"`
	Status          GameStatus  `json:"status"`
	CurrentQuestion int         `json:"currentQuestion"`
	TotalQuestions  int         `json:"totalQuestions"`
	Players         []PlayerRef `json:"players"`
	Settings        Settings    `json:"settings"`
}

type GameStartedPayload struct {
	QuestionData   QuestionView `json:"questionData"`
	TotalQuestions int          `json:"totalQuestions"`
}

type NextQuestionPayload struct {
	QuestionData    QuestionView `json:"questionData"`
	CurrentQuestion int          `json:"currentQuestion"` // 1-based, for display
	TotalQuestions  int          `json:"totalQuestions"`
}

type AnswerSubmittedPayload struct {
	IsCorrect    bool `json:"isCorrect"`
	PointsEarned int  `json:"pointsEarned"`
	CurrentScore int  `json:"currentScore"`
}

type PlayerAnsweredPayload struct {
	PlayerNickname string `json:"playerNickname"`
	AnsweredCount  int    `json:"answeredCount"`
	TotalPlayers   int    `json:"totalPlayers"`
}

type QuestionResultsPayload struct {
	QuestionIndex      int                `json:"questionIndex"`
	CorrectOptionIndex int                `json:"correctOptionIndex"`
	OptionStats        []OptionStat       `json:"optionStats"`
	CorrectAnswers     int                `json:"correctAnswers"`
	TotalAnswers       int                `json:"totalAnswers"`
	Leaderboard        []LeaderboardEntry `json:"leaderboard"`
}

type QuestionTimeoutPayload struct {
	CorrectOptionIndex int    `json:"correctOptionIndex"`
	Message            string `json:"message"`
}

type GameEndedPayload struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	GameStats   GameStats          `json:"gameStats"`
}

type PlayerLeftPayload struct {
	ConnectionID string `json:"connectionId"`
	PlayerCount  int    `json:"playerCount"`
}

type PlayerReconnectedPayload struct {
	Player      PlayerRef `json:"player"`
	PlayerCount int       `json:"playerCount"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
