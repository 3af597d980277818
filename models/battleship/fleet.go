package battleship

import (
	"strconv"
	"strings"

	cerr "github.com/saeidalz13/seabattle/internal/error"
)

// Fleet is the ordered list of ship lengths placed on one board.
type Fleet []int

// One 3-length, two 2-length and four 1-length ships.
var DefaultFleet = Fleet{3, 2, 2, 1, 1, 1, 1}

func (f Fleet) Validate() error {
	if len(f) == 0 {
		return cerr.ErrFleetEmpty()
	}

	cells := 0
	for i, length := range f {
		if length < MinShipLength || length > MaxShipLength {
			return cerr.ErrFleetShipLength(i, length)
		}
		cells += length
	}

	if capacity := GridSize * GridSize; cells > capacity {
		return cerr.ErrFleetTooLarge(cells, capacity)
	}
	return nil
}

func (f Fleet) String() string {
	parts := make([]string, len(f))
	for i, length := range f {
		parts[i] = strconv.Itoa(length)
	}
	return strings.Join(parts, ",")
}

// ParseFleet reads comma separated lengths such as "3,2,2,1".
func ParseFleet(s string) (Fleet, error) {
	fields := strings.Split(s, ",")
	fleet := make(Fleet, 0, len(fields))

	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		length, err := strconv.Atoi(field)
		if err != nil {
			return nil, cerr.ErrFleetFormat(field)
		}
		fleet = append(fleet, length)
	}

	if err := fleet.Validate(); err != nil {
		return nil, err
	}
	return fleet, nil
}
