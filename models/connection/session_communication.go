package connection

// SessionMessage is queued for delivery. An empty ReceiverID means
// every session.
type SessionMessage struct {
	PayloadType uint8
	ReceiverID  string
	GameUuid    string
	Payload     interface{}
}

func NewSessionMessageJSON(receiverId string, gameUuid string, p interface{}) SessionMessage {
	return SessionMessage{
		PayloadType: MessageTypeJSON,
		ReceiverID:  receiverId,
		GameUuid:    gameUuid,
		Payload:     p,
	}
}

func NewBroadcastJSON(gameUuid string, p interface{}) SessionMessage {
	return NewSessionMessageJSON("", gameUuid, p)
}
