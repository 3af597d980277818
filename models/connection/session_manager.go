package connection

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	cerr "github.com/saeidalz13/seabattle/internal/error"
)

const defaultOutboxSize = 64

type SessionManager interface {
	GenerateNewSession(conn *websocket.Conn) *Session
	FindSession(sessionId string) (*Session, error)
	TerminateSession(session *Session)
	Count() int

	Enqueue(msg SessionMessage) bool
	ManageCommunication(ctx context.Context)
	CleanupPeriodically(ctx context.Context)

	WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error
	ReadFromSessionConn(session *Session) (int, []byte, error)
}

type BattleshipSessionManager struct {
	cleanupInterval time.Duration
	sessions        map[string]*Session
	outbox          chan SessionMessage
	mu              sync.RWMutex
}

type SessionManagerOption func(*BattleshipSessionManager)

func WithCleanupInterval(d time.Duration) SessionManagerOption {
	return func(bsm *BattleshipSessionManager) {
		bsm.cleanupInterval = d
	}
}

func WithOutboxSize(size int) SessionManagerOption {
	return func(bsm *BattleshipSessionManager) {
		bsm.outbox = make(chan SessionMessage, size)
	}
}

func NewBattleshipSessionManager(optFuncs ...SessionManagerOption) *BattleshipSessionManager {
	initMapSize := 10

	bsm := &BattleshipSessionManager{
		sessions:        make(map[string]*Session, initMapSize),
		outbox:          make(chan SessionMessage, defaultOutboxSize),
		cleanupInterval: time.Minute * 20,
	}
	for _, optFunc := range optFuncs {
		optFunc(bsm)
	}
	return bsm
}

var _ SessionManager = (*BattleshipSessionManager)(nil)

func (bsm *BattleshipSessionManager) GenerateNewSession(conn *websocket.Conn) *Session {
	sessionId := base64.RawURLEncoding.EncodeToString([]byte(uuid.New().String()))
	session := NewSession(sessionId, conn)

	bsm.mu.Lock()
	bsm.sessions[sessionId] = session
	bsm.mu.Unlock()

	return session
}

func (bsm *BattleshipSessionManager) FindSession(sessionId string) (*Session, error) {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()

	session, prs := bsm.sessions[sessionId]
	if !prs || session == nil {
		return nil, cerr.ErrSessionNotExist(sessionId)
	}
	return session, nil
}

func (bsm *BattleshipSessionManager) TerminateSession(session *Session) {
	bsm.mu.Lock()
	_, prs := bsm.sessions[session.id]
	delete(bsm.sessions, session.id)
	bsm.mu.Unlock()

	if prs {
		session.close()
		log.Debug().Str("session", session.id).Msg("session terminated")
	}
}

func (bsm *BattleshipSessionManager) Count() int {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()
	return len(bsm.sessions)
}

// Enqueue never blocks the caller. Game goroutines feed the outbox,
// so a full outbox drops the message instead of stalling play.
func (bsm *BattleshipSessionManager) Enqueue(msg SessionMessage) bool {
	select {
	case bsm.outbox <- msg:
		return true
	default:
		log.Warn().Str("game", msg.GameUuid).Msg("outbox full; message dropped")
		return false
	}
}

// ManageCommunication delivers queued messages until ctx is done.
func (bsm *BattleshipSessionManager) ManageCommunication(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case msg := <-bsm.outbox:
			if msg.ReceiverID != "" {
				bsm.communicate(msg)
				continue
			}
			bsm.broadcast(msg)
		}
	}
}

func (bsm *BattleshipSessionManager) communicate(msg SessionMessage) {
	receiver, err := bsm.FindSession(msg.ReceiverID)
	if err != nil {
		log.Debug().Err(err).Msg("receiver gone")
		return
	}
	if err := bsm.WriteToSessionConn(receiver, msg.Payload, msg.PayloadType); err != nil {
		bsm.TerminateSession(receiver)
	}
}

func (bsm *BattleshipSessionManager) broadcast(msg SessionMessage) {
	bsm.mu.RLock()
	receivers := make([]*Session, 0, len(bsm.sessions))
	for _, session := range bsm.sessions {
		receivers = append(receivers, session)
	}
	bsm.mu.RUnlock()

	for _, session := range receivers {
		if err := bsm.WriteToSessionConn(session, msg.Payload, msg.PayloadType); err != nil {
			bsm.TerminateSession(session)
		}
	}
}

// To ensure that there is no dangling connections,
// server session manager marks the connections with a
// lifetime of more than the cleanup interval as stale and deletes them.
func (bsm *BattleshipSessionManager) CleanupPeriodically(ctx context.Context) {
	ticker := time.NewTicker(bsm.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			bsm.mu.RLock()
			stale := make([]*Session, 0)
			for _, session := range bsm.sessions {
				if time.Since(session.createdAt) > bsm.cleanupInterval {
					stale = append(stale, session)
				}
			}
			bsm.mu.RUnlock()

			for _, session := range stale {
				bsm.TerminateSession(session)
			}
			log.Debug().Int("removed", len(stale)).Msg("clean up sessions")
		}
	}
}

func (bsm *BattleshipSessionManager) WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error {
	err := session.writeToConn(msg, msgType)
	if err == nil {
		return nil
	}

	var connErr ConnErr
	if errors.As(err, &connErr) {
		log.Debug().Str("session", session.id).Uint8("code", connErr.Code()).Msg("write failed")
	}
	return err
}

// A failed read leaves the websocket unusable, so the first error is
// returned as is.
func (bsm *BattleshipSessionManager) ReadFromSessionConn(session *Session) (int, []byte, error) {
	messageType, payload, err := session.conn.ReadMessage()
	if err != nil {
		session.onConnErr(err)
		return -1, []byte{}, err
	}
	return messageType, payload, nil
}

// FetchCodeFromMsg returns CodeSignalAbsent when the payload is JSON
// without a code field.
func FetchCodeFromMsg(payload []byte) (uint8, error) {
	var signal struct {
		Code *uint8 `json:"code"`
	}

	if err := json.Unmarshal(payload, &signal); err != nil {
		return CodeInvalidSignal, err
	}
	if signal.Code == nil {
		return CodeSignalAbsent, nil
	}
	return *signal.Code, nil
}
