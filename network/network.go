package network

import (
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"graphio/game"
	"graphio/protocol"
	"graphio/room"
)

const (
	writeWait      = 10 * time.Second
	readWait       = 60 * time.Second
	pingInterval   = 25 * time.Second
	maxMessageSize = 1 << 12
	sendBuffer     = 64
)

var ErrSendBufferFull = errors.New("send buffer full")

type Config struct {
	Logger        *log.Logger
	ClickRate     float64 // frames per second per connection
	ClickBurst    int
	AllowedOrigin string // empty allows every origin
}

// Server upgrades HTTP requests to websocket sessions attached to one room.
type Server struct {
	room     *room.Room
	logger   *log.Logger
	cfg      Config
	upgrader websocket.Upgrader
}

func NewServer(r *room.Room, cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	if cfg.ClickRate <= 0 {
		cfg.ClickRate = 30
	}
	if cfg.ClickBurst <= 0 {
		cfg.ClickBurst = 10
	}
	s := &Server{room: r, logger: logger, cfg: cfg}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

// Handler routes /ws and /status.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/status", s.handleStatus)
	return mux
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if s.cfg.AllowedOrigin == "" {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == s.cfg.AllowedOrigin || origin == s.cfg.AllowedOrigin
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st, err := s.room.Status(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(st)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	codec, err := protocol.CodecByName(r.URL.Query().Get("enc"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Upgrade HTTP -> WebSocket
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Println("upgrade:", err)
		return
	}

	c := &client{
		conn:    conn,
		codec:   codec,
		session: uuid.NewString(),
		send:    make(chan []byte, sendBuffer),
		limiter: rate.NewLimiter(rate.Limit(s.cfg.ClickRate), s.cfg.ClickBurst),
	}
	go c.writePump(s.logger)

	reply := make(chan room.JoinResult, 1)
	select {
	case s.room.Inbox <- room.Join{Conn: c, Session: c.session, Reply: reply}:
	case <-s.room.Done():
		_ = c.Close()
		return
	}
	var id game.PlayerID
	select {
	case res := <-reply:
		id = res.PlayerID
	case <-s.room.Done():
		_ = c.Close()
		return
	}

	s.readPump(c, id)
}

// readPump forwards clicks into the room until the connection fails, then
// reports the player as gone. Malformed or unknown frames are dropped.
func (s *Server) readPump(c *client, id game.PlayerID) {
	defer func() {
		select {
		case s.room.Inbox <- room.Leave{PlayerID: id}:
		case <-s.room.Done():
		}
		_ = c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(readWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(readWait))
		return nil
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Printf("read [%s]: %v", c.session, err)
			}
			return
		}
		env, err := c.codec.DecodeEnvelope(msg)
		if err != nil || env.T != protocol.MsgClick {
			continue
		}
		click, err := protocol.DecodePayload[protocol.Click](c.codec, env)
		if err == nil {
			err = click.Validate()
		}
		if err != nil {
			s.logger.Printf("dropping click from player %d [%s]: %v", id, c.session, err)
			continue
		}
		if !c.limiter.Allow() {
			s.logger.Printf("click from player %d [%s] rate limited", id, c.session)
			continue
		}
		select {
		case s.room.Inbox <- room.Click{PlayerID: id, Click: click}:
		case <-s.room.Done():
			return
		}
	}
}

type client struct {
	conn    *websocket.Conn
	codec   protocol.Codec
	session string
	limiter *rate.Limiter

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

// Send queues b without blocking. A full queue means the peer is not keeping
// up and the room should drop it.
func (c *client) Send(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return net.ErrClosed
	}
	select {
	case c.send <- b:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// Close stops the write pump; queued frames are flushed first.
func (c *client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
	return nil
}

func (c *client) Codec() protocol.Codec {
	return c.codec
}

func (c *client) writePump(logger *log.Logger) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	msgType := websocket.TextMessage
	if c.codec.Binary() {
		msgType = websocket.BinaryMessage
	}
	for {
		select {
		case b, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(msgType, b); err != nil {
				logger.Printf("write [%s]: %v", c.session, err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
