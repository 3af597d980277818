package api

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/saeidalz13/seabattle/internal/config"
	mb "github.com/saeidalz13/seabattle/models/battleship"
	mc "github.com/saeidalz13/seabattle/models/connection"
)

var dialer = websocket.Dialer{
	HandshakeTimeout: 5 * time.Second,
}

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()

	server, err := NewServer(WithStage(config.StageDev))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go server.sessionManager.ManageCommunication(ctx)

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	return server, "ws" + strings.TrimPrefix(ts.URL, "http") + WatchPath
}

func dialSpectator(t *testing.T, wsUrl string) *websocket.Conn {
	t.Helper()

	conn, _, err := dialer.Dial(wsUrl, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var respSessionId mc.Message[mc.RespSessionId]
	if err := conn.ReadJSON(&respSessionId); err != nil {
		t.Fatal(err)
	}
	if respSessionId.Code != mc.CodeSessionID || respSessionId.Payload.SessionID == "" {
		t.Fatalf("expected session id\tgot: %+v", respSessionId)
	}
	return conn
}

func TestNewServerInvalidStage(t *testing.T) {
	if _, err := NewServer(WithStage("staging")); err == nil {
		t.Fatal("expected invalid stage error")
	}
}

func TestSpectatorSignals(t *testing.T) {
	_, wsUrl := newTestServer(t)
	conn := dialSpectator(t, wsUrl)

	var initial mc.Message[mc.NoPayload]
	if err := conn.ReadJSON(&initial); err != nil {
		t.Fatal(err)
	}
	if initial.Code != mc.CodeNoGame {
		t.Fatalf("expected code: %d\tgot: %d", mc.CodeNoGame, initial.Code)
	}

	tests := []struct {
		name         string
		reqPayload   string
		expectedCode uint8
		expectErr    bool
	}{
		{name: "snapshot without game", reqPayload: `{"code":2}`, expectedCode: mc.CodeNoGame},
		{name: "random invalid code", reqPayload: `{"code":255}`, expectedCode: mc.CodeInvalidSignal, expectErr: true},
		{name: "code absent", reqPayload: `{"payload":1}`, expectedCode: mc.CodeSignalAbsent, expectErr: true},
		{name: "not json", reqPayload: `hello`, expectedCode: mc.CodeInvalidSignal, expectErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(test.reqPayload)); err != nil {
				t.Fatal(err)
			}

			var resp mc.Message[mc.NoPayload]
			if err := conn.ReadJSON(&resp); err != nil {
				t.Fatal(err)
			}
			if resp.Code != test.expectedCode {
				t.Fatalf("expected code: %d\tgot: %d", test.expectedCode, resp.Code)
			}
			if test.expectErr != (resp.Error != nil) {
				t.Fatalf("unexpected error field: %+v", resp.Error)
			}
		})
	}
}

func newWatchedGame(t *testing.T) *mb.Game {
	t.Helper()

	hostBoard, joinBoard := mb.NewBoard(), mb.NewBoard()
	if err := hostBoard.AddShip(mb.NewShip(mb.NewCoordinates(0, 0), 1, mb.OrientationHorizontal)); err != nil {
		t.Fatal(err)
	}
	if err := joinBoard.AddShip(mb.NewShip(mb.NewCoordinates(0, 5), 1, mb.OrientationHorizontal)); err != nil {
		t.Fatal(err)
	}
	for _, b := range []*mb.Board{hostBoard, joinBoard} {
		if err := b.FinalizePlacement(); err != nil {
			t.Fatal(err)
		}
	}
	joinBoard.SetVisible(false)

	game, err := mb.NewGame(hostBoard, joinBoard, mb.FixedTargets(mb.NewCoordinates(0, 5)), mb.FixedTargets())
	if err != nil {
		t.Fatal(err)
	}
	return game
}

func TestSpectatorFeed(t *testing.T) {
	server, wsUrl := newTestServer(t)
	conn := dialSpectator(t, wsUrl)

	var initial mc.Message[mc.NoPayload]
	if err := conn.ReadJSON(&initial); err != nil {
		t.Fatal(err)
	}

	game := newWatchedGame(t)
	server.Spectator().Watch(game)

	var snapshot mc.Message[mc.RespSnapshot]
	if err := conn.ReadJSON(&snapshot); err != nil {
		t.Fatal(err)
	}
	if snapshot.Code != mc.CodeSnapshot || snapshot.Payload.GameUuid != game.Uuid() {
		t.Fatalf("unexpected snapshot: %+v", snapshot)
	}
	if strings.Contains(snapshot.Payload.JoinBoard, "■") {
		t.Fatal("join ships must stay hidden")
	}
	if !strings.Contains(snapshot.Payload.HostBoard, "■") {
		t.Fatal("host ships must be visible")
	}

	if _, err := game.RunToCompletion(context.Background()); err != nil {
		t.Fatal(err)
	}

	var shot mc.Message[mc.RespShot]
	if err := conn.ReadJSON(&shot); err != nil {
		t.Fatal(err)
	}
	if shot.Code != mc.CodeShot || shot.Payload.Outcome != "sunk" || shot.Payload.Target != mb.NewCoordinates(0, 5) {
		t.Fatalf("unexpected shot: %+v", shot)
	}
	if shot.Payload.SunkenShipsJoin != 1 {
		t.Fatalf("expected sunken join ships: 1\tgot: %d", shot.Payload.SunkenShipsJoin)
	}

	var endGame mc.Message[mc.RespEndGame]
	if err := conn.ReadJSON(&endGame); err != nil {
		t.Fatal(err)
	}
	if endGame.Code != mc.CodeEndGame || endGame.Payload.WinnerSide != uint8(mb.SideHost) || endGame.Payload.TotalShots != 1 {
		t.Fatalf("unexpected end game: %+v", endGame)
	}
	if endGame.Payload.JoinLayoutCommitment != game.Player(mb.SideJoin).Board().LayoutCommitmentHex() {
		t.Fatal("commitment mismatch")
	}

	// the cached snapshot follows the game
	if err := conn.WriteJSON(mc.NewSignal(mc.CodeRequestSnapshot)); err != nil {
		t.Fatal(err)
	}
	if err := conn.ReadJSON(&snapshot); err != nil {
		t.Fatal(err)
	}
	if snapshot.Payload.TotalShots != 1 || snapshot.Payload.SunkenShipsJoin != 1 {
		t.Fatalf("stale snapshot: %+v", snapshot.Payload)
	}
}
