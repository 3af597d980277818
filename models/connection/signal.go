package connection

const (
	CodeSessionID uint8 = iota

	// Full picture of the current game
	CodeSnapshot
	CodeRequestSnapshot
	CodeShot
	CodeEndGame
	CodeNoGame
	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent
)

type Signal struct {
	Code uint8 `json:"code"`
}

func NewSignal(code uint8) Signal {
	return Signal{Code: code}
}
