package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/domain"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/engine"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/pkg/api"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/pkg/logger"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512

	// Имя в таблице рекордов, если игрок не представился
	anonymousName = "anonymous"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и GameService.
// Одно соединение - одна сессия: закрытие сокета закрывает партию.
type Client struct {
	Game      *engine.GameService
	Conn      *websocket.Conn
	Send      chan api.ServerResponse
	SessionID string

	// quit закрывает writePump, когда писать в сокет больше нельзя
	quit chan struct{}
}

func NewClient(game *engine.GameService, conn *websocket.Conn) *Client {
	return &Client{
		Game: game,
		Conn: conn,
		Send: make(chan api.ServerResponse, 256),
		quit: make(chan struct{}),
	}
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	log := logger.Log.WithField("component", "ws_client")

	// forwarding - Send закроет горутина пересылки из хаба, иначе закрываем сами
	forwarding := false
	defer func() {
		if c.SessionID != "" {
			c.Game.Hub.Unregister(c.SessionID)
			if err := c.Game.CloseSession(c.SessionID); err != nil && !errors.Is(err, engine.ErrSessionNotFound) {
				log.WithError(err).Warn("failed to close session")
			}
			log.WithField("session_id", c.SessionID).Info("Client disconnected")
		}
		if !forwarding {
			// writePump допишет ошибку и закроет соединение сам
			close(c.Send)
			return
		}
		if err := c.Conn.Close(); err != nil {
			log.WithError(err).Debug("failed to close websocket connection")
		}
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	// 1. HANDSHAKE (LOGIN)
	login, err := c.readLogin()
	if err != nil {
		log.WithError(err).Warn("Handshake failed")
		c.sendError("", err.Error())
		return
	}

	// 2. НОВАЯ ПАРТИЯ
	session, err := c.Game.CreateSession(login.Name, login.Seed)
	if err != nil {
		log.WithError(err).Warn("Failed to create session")
		c.sendError("", err.Error())
		return
	}
	c.SessionID = session.ID

	log.WithFields(logrus.Fields{
		"session_id": c.SessionID,
		"name":       login.Name,
		"seed":       session.Seed,
	}).Info("Client logged in")

	// 3. ПОДПИСКА НА ОБНОВЛЕНИЯ
	gameUpdates := c.Game.Hub.Register(c.SessionID)
	forwarding = true

	// Пересылка из Hub в writePump. Если writePump уже вышел,
	// дочитываем хаб до Unregister, чтобы не держать рассылку.
	go func() {
		defer close(c.Send)
		for msg := range gameUpdates {
			select {
			case c.Send <- msg:
			case <-c.quit:
			}
		}
	}()

	// INIT - триггер первой отрисовки
	if err := c.Game.ProcessCommand(api.ClientCommand{Action: "INIT", Token: c.SessionID}); err != nil {
		log.WithError(err).Warn("Failed to queue INIT")
	}

	// 4. ЦИКЛ ЧТЕНИЯ КОМАНД
	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.WithError(err).Error("WS Error")
			}
			break
		}

		cmd, err := api.DecodeCommand(data)
		if err != nil {
			c.sendError(c.SessionID, err.Error())
			continue
		}

		// Токен берем из соединения: чужой сессией управлять нельзя
		cmd.Token = c.SessionID
		if err := c.Game.ProcessCommand(cmd); err != nil {
			log.WithError(err).WithField("action", cmd.Action).Debug("Command rejected")
			c.sendError(c.SessionID, err.Error())
		}
	}
}

// readLogin ждет первое сообщение. Это должен быть LOGIN с валидным payload.
func (c *Client) readLogin() (api.LoginPayload, error) {
	var login api.LoginPayload

	_, data, err := c.Conn.ReadMessage()
	if err != nil {
		return login, err
	}
	cmd, err := api.DecodeCommand(data)
	if err != nil {
		return login, err
	}
	if domain.ParseAction(cmd.Action) != domain.ActionLogin {
		return login, errors.New("first message must be LOGIN")
	}
	if len(cmd.Payload) > 0 {
		if err := json.Unmarshal(cmd.Payload, &login); err != nil {
			return login, err
		}
	}
	if err := login.Validate(); err != nil {
		return login, err
	}

	login.Name = strings.TrimSpace(login.Name)
	if login.Name == "" {
		login.Name = anonymousName
	}
	return login, nil
}

// sendError кладет ERROR в очередь отправки, не блокируясь.
func (c *Client) sendError(sessionID, text string) {
	now := time.Now()
	resp := api.ServerResponse{
		Type:      domain.ResponseError,
		SessionID: sessionID,
		Logs: []api.LogEntry{{
			ID:        "client_" + now.Format("150405.000000"),
			Text:      text,
			Type:      domain.LogError,
			Timestamp: now.UnixMilli(),
		}},
	}
	select {
	case c.Send <- resp:
	default:
		logger.Log.WithField("session_id", sessionID).Warn("Client send buffer full, error dropped")
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	log := logger.Log.WithField("component", "ws_client")
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(c.quit)
		if err := c.Conn.Close(); err != nil {
			log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
