// internal/tracking/generator.go
package tracking

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// Prefix is the fixed alphabetic prefix on every tracking number.
const Prefix = "SHP"

const randomSuffixLen = 4

const base36Digits = "0123456789abcdefghijklmnopqrstuvwxyz"

// Generator produces collision-resistant public tracking numbers of
// the form SHP + base36(nanosecond timestamp) + 4 random base36 chars,
// uppercased. Two calls inside the same nanosecond still diverge on
// the random suffix; the store's uniqueness constraint remains the
// real arbiter, the generator only makes collisions improbable.
type Generator struct {
	now func() time.Time // injectable clock for tests
}

func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// Next returns a fresh candidate tracking number.
func (g *Generator) Next() string {
	ts := strconv.FormatInt(g.now().UnixNano(), 36)

	var sb strings.Builder
	sb.Grow(len(Prefix) + len(ts) + randomSuffixLen)
	sb.WriteString(Prefix)
	sb.WriteString(ts)
	for i := 0; i < randomSuffixLen; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(base36Digits))))
		if err != nil {
			// crypto/rand failing means the platform entropy source is
			// broken; fall back to the clock rather than crash.
			n = big.NewInt(g.now().UnixNano() % int64(len(base36Digits)))
		}
		sb.WriteByte(base36Digits[n.Int64()])
	}
	return strings.ToUpper(sb.String())
}
