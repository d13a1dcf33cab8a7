package challenge

import (
	"crypto/rand"
	"fmt"
)

// CodeLength is the number of decimal digits in a one-time code. The
// metadata codec assumes this width, so it is a package constant rather
// than runtime configuration.
const CodeLength = 6

// Generator mints uniformly random numeric one-time codes.
type Generator struct {
	length int
}

func NewGenerator() *Generator {
	return &Generator{length: CodeLength}
}

// Generate returns a string of random decimal digits. Bytes above the
// largest multiple of ten are rejected so every digit is equally likely.
func (g *Generator) Generate() (string, error) {
	out := make([]byte, g.length)
	buf := make([]byte, g.length*2)
	filled := 0
	for filled < g.length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		for _, b := range buf {
			if b >= 250 {
				continue
			}
			out[filled] = '0' + b%10
			filled++
			if filled == g.length {
				break
			}
		}
	}
	return string(out), nil
}
