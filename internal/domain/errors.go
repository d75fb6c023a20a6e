package domain

import "errors"

var (
	// ErrGameNotFound is returned when no live session owns the given PIN.
	ErrGameNotFound = errors.New("game not found")
	// ErrPinInUse signals a PIN collision with a not-yet-finished game;
	// callers retry with a fresh PIN.
	ErrPinInUse = errors.New("game pin already in use")
	// ErrQuizNotFound indicates the quiz content could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrPlayerNotFound is returned when a connection is not part of a game.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrUnauthorized is returned when a non-host attempts a host-only action.
	ErrUnauthorized = errors.New("not authorized")
	// ErrInvalidTransition is returned for lifecycle commands the current
	// status disallows, including anything attempted on a finished game.
	ErrInvalidTransition = errors.New("invalid game state transition")
	// ErrGameFull is returned when the connected player count is at capacity.
	ErrGameFull = errors.New("game is full")
	// ErrGameFinished is returned when joining a finished game.
	ErrGameFinished = errors.New("game has already finished")
	// ErrLateJoinDisabled is returned when joining a started game that forbids it.
	ErrLateJoinDisabled = errors.New("late join is not allowed")
	// ErrNicknameTaken is returned on a case-insensitive nickname collision
	// among currently connected players.
	ErrNicknameTaken = errors.New("nickname already taken")
	// ErrInvalidNickname is returned when a nickname is empty after trimming.
	ErrInvalidNickname = errors.New("nickname must not be empty")
	// ErrDuplicateAnswer is returned when a player resubmits for a question.
	ErrDuplicateAnswer = errors.New("already answered this question")
	// ErrStaleQuestion is returned when the submitted index is not the live one.
	ErrStaleQuestion = errors.New("question is no longer active")
	// ErrInvalidOption is returned for an out-of-range option index.
	ErrInvalidOption = errors.New("option not found")
	// ErrGameNotActive is returned when answering outside an active question.
	ErrGameNotActive = errors.New("game is not active")
)
