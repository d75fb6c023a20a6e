package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"quizroom-service/internal/app"
	"quizroom-service/internal/domain"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	service  *app.GameService
	hub      *Hub
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.GameService, hub *Hub) *WSHandler {
	return &WSHandler{
		service: service,
		hub:     hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type submitAnswerPayload struct {
	QuestionIndex  int   `json:"questionIndex"`
	SelectedOption int   `json:"selectedOption"`
	TimeToAnswer   int64 `json:"timeToAnswer"`
}

type showResultsPayload struct {
	QuestionIndex int `json:"questionIndex"`
}

// ServePlayerWS upgrades a player connection and wires it into the room. A
// reconnecting player passes reconnect=true to reclaim their record by
// nickname instead of joining fresh.
func (h *WSHandler) ServePlayerWS(w http.ResponseWriter, r *http.Request) {
	pin := r.URL.Query().Get("pin")
	nickname := r.URL.Query().Get("nickname")
	userID := r.URL.Query().Get("userId")
	reconnect := r.URL.Query().Get("reconnect") == "true"
	if pin == "" || nickname == "" {
		http.Error(w, "missing pin or nickname", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	connectionID := newConnectionID()
	events := h.hub.Add(connectionID)
	writerDone := startWritePump(conn, events)
	defer func() {
		h.service.Disconnect(connectionID)
		h.hub.Remove(connectionID)
		<-writerDone
	}()

	if reconnect {
		snapshot, err := h.service.Reconnect(r.Context(), pin, connectionID, nickname)
		if err != nil {
			h.hub.ToConnection(connectionID, errorEvent(err))
			return
		}
		h.hub.JoinRoom(connectionID, pin, false)
		h.hub.ToConnection(connectionID, domain.Event{Name: domain.EventSessionSnapshot, Payload: snapshot})
	} else {
		welcome, err := h.service.Join(r.Context(), pin, connectionID, nickname, userID)
		if err != nil {
			h.hub.ToConnection(connectionID, errorEvent(err))
			return
		}
		h.hub.JoinRoom(connectionID, pin, false)
		h.hub.ToConnection(connectionID, domain.Event{Name: domain.EventJoinedOK, Payload: welcome})
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}
		switch inbound.Type {
		case "submit-answer":
			var payload submitAnswerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.hub.ToConnection(connectionID, errorEvent(errInvalidPayload))
				continue
			}
			// answer-submitted / player-answered are emitted by the service.
			if _, err := h.service.SubmitAnswer(r.Context(), pin, connectionID,
				payload.QuestionIndex, payload.SelectedOption, payload.TimeToAnswer); err != nil {
				h.hub.ToConnection(connectionID, errorEvent(err))
			}
		default:
			h.hub.ToConnection(connectionID, errorEvent(errUnsupportedType))
		}
	}
}

// ServeHostWS upgrades the host's privileged connection. Lifecycle commands
// arrive here and nowhere else.
func (h *WSHandler) ServeHostWS(w http.ResponseWriter, r *http.Request) {
	pin := r.URL.Query().Get("pin")
	userID := r.URL.Query().Get("userId")
	if pin == "" || userID == "" {
		http.Error(w, "missing pin or userId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	connectionID := newConnectionID()
	events := h.hub.Add(connectionID)
	writerDone := startWritePump(conn, events)
	defer func() {
		h.service.Disconnect(connectionID)
		h.hub.Remove(connectionID)
		<-writerDone
	}()

	view, err := h.service.JoinAsHost(r.Context(), pin, connectionID, userID)
	if err != nil {
		h.hub.ToConnection(connectionID, errorEvent(err))
		return
	}
	h.hub.JoinRoom(connectionID, pin, true)
	h.hub.ToConnection(connectionID, domain.Event{Name: domain.EventHostJoined, Payload: view})

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}

		var cmdErr error
		switch inbound.Type {
		case "start-game":
			cmdErr = h.service.StartGame(r.Context(), pin, userID)
		case "next-question":
			cmdErr = h.service.AdvanceQuestion(r.Context(), pin, userID)
		case "show-results":
			var payload showResultsPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				cmdErr = errInvalidPayload
				break
			}
			cmdErr = h.service.ShowResults(pin, payload.QuestionIndex)
		case "pause-game":
			cmdErr = h.service.PauseGame(pin, userID)
		case "resume-game":
			cmdErr = h.service.ResumeGame(pin, userID)
		case "end-game":
			cmdErr = h.service.EndGame(r.Context(), pin, userID)
		case "update-settings":
			var settings domain.Settings
			if err := json.Unmarshal(inbound.Payload, &settings); err != nil {
				cmdErr = errInvalidPayload
				break
			}
			cmdErr = h.service.UpdateSettings(pin, userID, settings)
		default:
			cmdErr = errUnsupportedType
		}
		if cmdErr != nil {
			h.hub.ToConnection(connectionID, errorEvent(cmdErr))
		}
	}
}

type createGameRequest struct {
	QuizID   string           `json:"quizId"`
	HostID   string           `json:"hostId"`
	Settings *domain.Settings `json:"settings,omitempty"`
}

// ServeCreateGame allocates a room for a quiz and returns its PIN. The host
// then opens the privileged socket against that PIN.
func (h *WSHandler) ServeCreateGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.QuizID == "" || req.HostID == "" {
		http.Error(w, "missing quizId or hostId", http.StatusBadRequest)
		return
	}

	game, err := h.service.CreateGame(r.Context(), req.QuizID, req.HostID, req.Settings)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrQuizNotFound):
			status = http.StatusNotFound
		case errors.Is(err, domain.ErrUnauthorized):
			status = http.StatusForbidden
		}
		http.Error(w, err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(game.Info())
}

// ServeGameInfo is the lobby lookup players hit before opening a socket.
func (h *WSHandler) ServeGameInfo(w http.ResponseWriter, r *http.Request) {
	pin := r.URL.Query().Get("pin")
	if pin == "" {
		http.Error(w, "missing pin", http.StatusBadRequest)
		return
	}
	info, err := h.service.GameInfo(pin)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(info)
}

// startWritePump serializes all websocket writes for one connection through
// its event channel; gorilla connections do not allow concurrent writers.
func startWritePump(conn *websocket.Conn, events <-chan domain.Event) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for event := range events {
			if err := conn.WriteJSON(event); err != nil {
				log.Printf("ws write error: %v", err)
				// Drain so hub sends never back up on a dead socket.
				for range events {
				}
				return
			}
		}
	}()
	return done
}

func errorEvent(err error) domain.Event {
	return domain.Event{Name: domain.EventError, Payload: domain.ErrorPayload{Message: err.Error()}}
}
