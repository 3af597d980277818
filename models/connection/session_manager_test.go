package connection

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	cerr "github.com/saeidalz13/seabattle/internal/error"
)

func TestFetchCodeFromMsg(t *testing.T) {
	tests := []struct {
		name         string
		payload      string
		expectedCode uint8
		expectErr    bool
	}{
		{name: "valid code", payload: `{"code":2}`, expectedCode: CodeRequestSnapshot},
		{name: "code absent", payload: `{"foo":"bar"}`, expectedCode: CodeSignalAbsent},
		{name: "invalid json", payload: `{code`, expectedCode: CodeInvalidSignal, expectErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			code, err := FetchCodeFromMsg([]byte(test.payload))
			if test.expectErr != (err != nil) {
				t.Fatalf("unexpected error: %v", err)
			}
			if code != test.expectedCode {
				t.Fatalf("expected code: %d\tgot: %d", test.expectedCode, code)
			}
		})
	}
}

func TestFindSessionMissing(t *testing.T) {
	bsm := NewBattleshipSessionManager()

	if _, err := bsm.FindSession("missing"); !errors.Is(err, cerr.ErrSessionNotFound) {
		t.Fatalf("expected error: %v\tgot: %v", cerr.ErrSessionNotFound, err)
	}
}

func TestEnqueueDropsWhenFull(t *testing.T) {
	bsm := NewBattleshipSessionManager(WithOutboxSize(1))

	if !bsm.Enqueue(NewBroadcastJSON("g", NewSignal(CodeShot))) {
		t.Fatal("first message should be queued")
	}
	if bsm.Enqueue(NewBroadcastJSON("g", NewSignal(CodeShot))) {
		t.Fatal("second message should be dropped")
	}
}

// Accepts a single websocket and hands the server side to the manager.
func newSessionPair(t *testing.T, bsm *BattleshipSessionManager) (*Session, *websocket.Conn) {
	t.Helper()

	sessions := make(chan *Session, 1)
	upgrader := websocket.Upgrader{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		sessions <- bsm.GenerateNewSession(conn)
	}))
	t.Cleanup(ts.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = client.Close() })

	select {
	case session := <-sessions:
		return session, client
	case <-time.After(5 * time.Second):
		t.Fatal("session was not created")
		return nil, nil
	}
}

func TestBroadcastAndTerminate(t *testing.T) {
	bsm := NewBattleshipSessionManager()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go bsm.ManageCommunication(ctx)

	session, client := newSessionPair(t, bsm)
	if bsm.Count() != 1 {
		t.Fatalf("expected sessions: 1\tgot: %d", bsm.Count())
	}

	bsm.Enqueue(NewBroadcastJSON("g", NewSignal(CodeShot)))
	bsm.Enqueue(NewSessionMessageJSON(session.Id(), "g", NewSignal(CodeEndGame)))

	_ = client.SetReadDeadline(time.Now().Add(5 * time.Second))
	for _, expected := range []uint8{CodeShot, CodeEndGame} {
		var signal Signal
		if err := client.ReadJSON(&signal); err != nil {
			t.Fatal(err)
		}
		if signal.Code != expected {
			t.Fatalf("expected code: %d\tgot: %d", expected, signal.Code)
		}
	}

	bsm.TerminateSession(session)
	if bsm.Count() != 0 {
		t.Fatalf("expected sessions: 0\tgot: %d", bsm.Count())
	}
	if _, err := bsm.FindSession(session.Id()); err == nil {
		t.Fatal("terminated session still registered")
	}
}

func TestWriteInvalidMessageType(t *testing.T) {
	bsm := NewBattleshipSessionManager()
	session, _ := newSessionPair(t, bsm)

	err := bsm.WriteToSessionConn(session, "not bytes", MessageTypeBytes)
	var connErr ConnErr
	if !errors.As(err, &connErr) || connErr.Code() != ConnInvalidMsgType {
		t.Fatalf("expected invalid message type error\tgot: %v", err)
	}
}

func TestReadFailsOnFirstError(t *testing.T) {
	bsm := NewBattleshipSessionManager()
	session, _ := newSessionPair(t, bsm)

	// an expired deadline makes the read time out at once
	_ = session.Conn().SetReadDeadline(time.Now())

	start := time.Now()
	if _, _, err := bsm.ReadFromSessionConn(session); err == nil {
		t.Fatal("expected read error")
	}
	if elapsed := time.Since(start); elapsed > 250*time.Millisecond {
		t.Fatalf("read should not back off\tgot: %s", elapsed)
	}
}

func TestReadAfterClientClose(t *testing.T) {
	bsm := NewBattleshipSessionManager()
	session, client := newSessionPair(t, bsm)

	_ = client.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = client.Close()

	_ = session.Conn().SetReadDeadline(time.Now().Add(5 * time.Second))
	_, _, err := bsm.ReadFromSessionConn(session)
	if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Fatalf("expected normal closure\tgot: %v", err)
	}
}
