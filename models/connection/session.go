package connection

import (
	"errors"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/saeidalz13/seabattle/internal/logger"
)

const writeWait time.Duration = time.Second * 5

const (
	MessageTypeBytes uint8 = iota
	MessageTypeJSON
)

type ConnectionHandler interface {
	writeToConn(msg interface{}, msgType uint8) error
	onConnErr(err error)
}

// Session is one spectator connection. Writes come from both the
// session's own read loop and the broadcaster, so they are serialized.
type Session struct {
	id        string
	conn      *websocket.Conn
	writeMu   sync.Mutex
	createdAt time.Time
	logger    zerolog.Logger
}

func NewSession(id string, conn *websocket.Conn) *Session {
	return &Session{
		id:        id,
		conn:      conn,
		createdAt: time.Now(),
		logger:    logger.ForSession(id),
	}
}

func (s *Session) Id() string {
	return s.id
}

func (s *Session) Conn() *websocket.Conn {
	return s.conn
}

// Logs a failed read or write at a level matching its cause. Any such
// error is final for a gorilla connection, so the session ends anyway.
func (s *Session) onConnErr(err error) {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		s.logger.Warn().Err(err).Msg("timeout error")
		return
	}

	if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
		s.logger.Debug().Err(err).Msg("close error")
		return
	}

	if websocket.IsCloseError(err, websocket.CloseProtocolError, websocket.CloseInternalServerErr, websocket.CloseTLSHandshake, websocket.CloseMandatoryExtension) {
		s.logger.Error().Err(err).Msg("critical error")
		return
	}

	/*
		Spectators only send small JSON signals. Binary frames, invalid
		UTF-8 or oversized messages mean the client is not one of ours.
	*/
	if websocket.IsCloseError(err, websocket.CloseInvalidFramePayloadData, websocket.CloseUnsupportedData, websocket.CloseMessageTooBig, websocket.ClosePolicyViolation, websocket.CloseServiceRestart, websocket.CloseTryAgainLater, websocket.CloseNoStatusReceived) {
		s.logger.Warn().Err(err).Msg("non-critical error")
		return
	}

	s.logger.Debug().Err(err).Msg("unexpected error")
}

// Writes msg with a deadline. A failed write breaks the session.
func (s *Session) writeToConn(msg interface{}, msgType uint8) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var err error
	switch msgType {
	case MessageTypeJSON:
		_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
		err = s.conn.WriteJSON(msg)

	case MessageTypeBytes:
		respBytes, ok := msg.([]byte)
		if !ok {
			return NewConnErr(ConnInvalidMsgType).AddDesc("msg type expected: []byte got invalid")
		}
		_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
		err = s.conn.WriteMessage(websocket.TextMessage, respBytes)

	default:
		return NewConnErr(ConnInvalidMsgType).AddDesc("invalid message type to write")
	}

	if err != nil {
		s.onConnErr(err)
		return NewConnErr(ConnLoopBreak).AddDesc("breaking write loop due to: " + err.Error())
	}
	return nil
}

func (s *Session) close() {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_ = s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	_ = s.conn.Close()
}

var _ ConnectionHandler = (*Session)(nil)
