package connection

import (
	mb "github.com/saeidalz13/seabattle/models/battleship"
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

// Boards are rendered text; the join board keeps its ships hidden.
type RespSnapshot struct {
	GameUuid        string `json:"game_uuid"`
	HostBoard       string `json:"host_board"`
	JoinBoard       string `json:"join_board"`
	ActiveSide      uint8  `json:"active_side"`
	SunkenShipsHost int    `json:"sunken_ships_host"`
	SunkenShipsJoin int    `json:"sunken_ships_join"`
	TotalShots      int    `json:"total_shots"`
}

type RespShot struct {
	GameUuid        string         `json:"game_uuid"`
	Side            uint8          `json:"side"`
	Target          mb.Coordinates `json:"target"`
	Outcome         string         `json:"outcome"`
	NextSide        uint8          `json:"next_side"`
	SunkenShipsHost int            `json:"sunken_ships_host"`
	SunkenShipsJoin int            `json:"sunken_ships_join"`
}

type RespEndGame struct {
	GameUuid             string `json:"game_uuid"`
	WinnerSide           uint8  `json:"winner_side"`
	TotalShots           int    `json:"total_shots"`
	HostLayoutCommitment string `json:"host_layout_commitment"`
	JoinLayoutCommitment string `json:"join_layout_commitment"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
