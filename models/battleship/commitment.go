package battleship

import (
	"encoding/hex"

	bnmimc "github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
)

// Each cell is written as a 32-byte big-endian field element.
const fieldElementSize = 32

// LayoutCommitment hashes where the ships are, cell by cell in row-major
// order (1 for a ship cell, 0 for water), with MiMC over the BN254
// scalar field. It is derived from the fleet and not the grid, so shots
// do not change it.
func (b *Board) LayoutCommitment() []byte {
	var layout [GridSize][GridSize]bool
	for _, ship := range b.ships {
		for _, c := range ship.OccupiedCells() {
			layout[c.Row][c.Col] = true
		}
	}

	h := bnmimc.NewMiMC()
	element := make([]byte, fieldElementSize)
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			element[fieldElementSize-1] = 0
			if layout[row][col] {
				element[fieldElementSize-1] = 1
			}
			h.Write(element)
		}
	}
	return h.Sum(nil)
}

func (b *Board) LayoutCommitmentHex() string {
	return "0x" + hex.EncodeToString(b.LayoutCommitment())
}
