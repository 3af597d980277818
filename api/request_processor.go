package api

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	mc "github.com/saeidalz13/seabattle/models/connection"
)

type RequestProcessor struct {
	sessionManager mc.SessionManager
	spectator      *Spectator
	upgrader       websocket.Upgrader
}

func NewRequestProcessor(sessionManager mc.SessionManager, spectator *Spectator, upgrader websocket.Upgrader) RequestProcessor {
	return RequestProcessor{
		sessionManager: sessionManager,
		spectator:      spectator,
		upgrader:       upgrader,
	}
}

func (rp RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// use Upgrade method to make a websocket connection
	conn, err := rp.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client
		log.Debug().Err(err).Msg("could not open websocket connection")
		return
	}

	log.Debug().Str("remote", conn.RemoteAddr().String()).Msg("a new connection established")
	rp.processSessionRequests(rp.sessionManager.GenerateNewSession(conn))
}

// Spectators can only ask for the current snapshot. Everything about
// the game itself is pushed by the broadcaster.
func (rp RequestProcessor) processSessionRequests(session *mc.Session) {
	defer rp.sessionManager.TerminateSession(session)

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: session.Id()})
	if err := rp.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
		return
	}
	if err := rp.sessionManager.WriteToSessionConn(session, rp.spectator.Snapshot(), mc.MessageTypeJSON); err != nil {
		return
	}

sessionLoop:
	for {
		// A WebSocket frame can be one of 6 types: text=1, binary=2, ping=9, pong=10, close=8 and continuation=0
		// https://www.rfc-editor.org/rfc/rfc6455.html#section-11.8
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			break sessionLoop
		}

		code, err := mc.FetchCodeFromMsg(payload)
		if err != nil {
			log.Debug().Err(err).Str("session", session.Id()).Msg("malformed signal")
		}

		var respMsg interface{}
		switch code {
		case mc.CodeRequestSnapshot:
			respMsg = rp.spectator.Snapshot()

		case mc.CodeSignalAbsent:
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError("incoming req payload must contain 'code' field", "")
			respMsg = msg

		default:
			msg := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			msg.AddError("", "invalid code in the incoming payload")
			respMsg = msg
		}

		if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
			break sessionLoop
		}
	}
}
