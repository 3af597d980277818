package sqlc

import (
	"context"
	"encoding/json"
	"errors"
	"net"

	"github.com/rs/zerolog/log"
	"github.com/sqlc-dev/pqtype"

	mb "github.com/saeidalz13/seabattle/models/battleship"
)

type AnalyticsManager struct {
	queries  Querier
	serverIp pqtype.Inet
}

func NewAnalyticsManager(queries Querier, serverIpNet net.IPNet) *AnalyticsManager {
	return &AnalyticsManager{
		queries:  queries,
		serverIp: pqtype.Inet{IPNet: serverIpNet, Valid: true},
	}
}

func (a *AnalyticsManager) ServerIp() pqtype.Inet {
	return a.serverIp
}

func (a *AnalyticsManager) IncrementGamesCreatedCount(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()
	return a.queries.IncrementGamesCreatedCount(ctx, a.serverIp)
}

func (a *AnalyticsManager) GetGamesCreatedCount(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()
	return a.queries.GetGamesCreatedCount(ctx, a.serverIp)
}

// RecordMatch stores the outcome of a finished game with both layout
// commitments and the full shot history.
func (a *AnalyticsManager) RecordMatch(ctx context.Context, game *mb.Game) (int64, error) {
	winner, over := game.Winner()
	if !over {
		return 0, errors.New("game is not over: " + game.Uuid())
	}

	history, err := json.Marshal(game.History())
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()

	return a.queries.InsertMatchResult(ctx, InsertMatchResultParams{
		GameUuid:       game.Uuid(),
		ServerIp:       a.serverIp,
		WinnerSide:     int16(winner),
		TotalShots:     int32(game.TotalShots()),
		HostCommitment: game.Player(mb.SideHost).Board().LayoutCommitmentHex(),
		JoinCommitment: game.Player(mb.SideJoin).Board().LayoutCommitmentHex(),
		History:        pqtype.NullRawMessage{RawMessage: history, Valid: true},
	})
}

func (a *AnalyticsManager) WinsBySide(ctx context.Context) (map[mb.Side]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()

	rows, err := a.queries.CountWinsBySide(ctx, a.serverIp)
	if err != nil {
		return nil, err
	}

	wins := make(map[mb.Side]int64, len(rows))
	for _, row := range rows {
		wins[mb.Side(row.WinnerSide)] = row.Wins
	}
	return wins, nil
}

// ResolveServerIpNet returns the first non-loopback IPv4 network of an
// up interface, or the loopback network when there is none.
func ResolveServerIpNet() (net.IPNet, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return net.IPNet{}, err
	}

	for _, iface := range ifaces {
		// If the flag is down
		if iface.Flags&net.FlagUp == 0 {
			continue
		}

		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			return net.IPNet{}, err
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}

			if ip := ipnet.IP.To4(); ip != nil && !ip.IsLoopback() {
				return net.IPNet{IP: ip, Mask: net.CIDRMask(32, 32)}, nil
			}
		}
	}

	log.Warn().Msg("no external ipv4 address found; using loopback")
	return net.IPNet{IP: net.IPv4(127, 0, 0, 1).To4(), Mask: net.CIDRMask(32, 32)}, nil
}
