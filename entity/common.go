package entity

import (
	"fmt"
	"io"

	"github.com/bwmarrin/snowflake"
)

const (
	ModuleName = "blackjack"

	DefaultDeckCount = 6
	DealerStandPoint = 17
)

var SnowlakeNode, _ = snowflake.NewNode(1)

// IDGenerator mints identifiers for dealt cards and rounds. *snowflake.Node satisfies it.
type IDGenerator interface {
	Generate() snowflake.ID
}

// maxRandomRange keeps the rejection space within 7 bytes of uint64 arithmetic.
const maxRandomRange = 1 << 48

// RandomIndex returns a uniform integer in [0, n) read from r.
// It draws k bytes, where 256^k is the smallest power of 256 >= n, and rejects
// values at or above the largest multiple of n in that space, so the result has
// no modulo bias.
func RandomIndex(r io.Reader, n int) (int, error) {
	if n <= 0 || n > maxRandomRange {
		return 0, fmt.Errorf("random.index.invalid-range: %d", n)
	}
	if n == 1 {
		return 0, nil
	}
	k := 1
	space := uint64(256)
	for space < uint64(n) {
		k++
		space <<= 8
	}
	limit := space - space%uint64(n)
	buf := make([]byte, k)
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return 0, fmt.Errorf("random.index.read: %w", err)
		}
		var v uint64
		for _, b := range buf {
			v = v<<8 | uint64(b)
		}
		if v < limit {
			return int(v % uint64(n)), nil
		}
	}
}
