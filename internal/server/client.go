package server

import (
	"net/http"
	"time"

	"wander-server/internal/engine"
	"wander-server/pkg/api"
	"wander-server/pkg/logger"
	"wander-server/pkg/utils"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между WebSocket и Service.
// Все зрители видят одну комнату, у клиента только свой ID для адресных ответов.
type Client struct {
	Sim  *engine.Service
	Conn *websocket.Conn
	Send chan api.ServerResponse
	ID   string

	done chan struct{} // Закрывается, когда writePump завершился

	log *logrus.Entry
}

func NewClient(sim *engine.Service, conn *websocket.Conn) *Client {
	id := utils.GenerateID()
	return &Client{
		Sim:  sim,
		Conn: conn,
		Send: make(chan api.ServerResponse, 256),
		ID:   id,
		done: make(chan struct{}),
		log:  logger.Log.WithField("client_id", id),
	}
}

// readPump подписывает клиента и читает его команды
func (c *Client) readPump() {
	// Подписываемся до первой команды, чтобы не потерять ответ на INIT
	updates := c.Sim.Hub.Register(c.ID)
	go func() {
		for msg := range updates {
			select {
			case c.Send <- msg:
			case <-c.done:
				// Писать некому, дочитываем до Unregister
			}
		}
		close(c.Send)
	}()

	defer func() {
		c.Sim.Hub.Unregister(c.ID)
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection")
		}
		c.log.Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			c.log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	c.log.Info("Client connected")

	// Первый кадр с геометрией комнаты
	if err := c.Sim.ProcessCommand(api.ClientCommand{Action: "INIT", Token: c.ID}); err != nil {
		c.log.WithError(err).Warn("INIT rejected")
	}

	for {
		var cmd api.ClientCommand
		err := c.Conn.ReadJSON(&cmd)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Error("WS Error")
			}
			break
		}

		// Клиент не может действовать от чужого имени
		cmd.Token = c.ID
		if err := c.Sim.ProcessCommand(cmd); err != nil {
			c.Sim.Hub.SendTo(c.ID, api.ServerResponse{Type: api.TypeError, Error: err.Error()})
		}
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(c.done)
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				c.log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
