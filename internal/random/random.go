package random

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

const idBytes = 6

var ErrShortRead = fmt.Errorf("short read from entropy source")

// IDs hands out short identifiers used to tag a connection in logs.
type IDs interface {
	Next() (string, error)
}

type ids struct {
	reader io.Reader
}

func New() IDs {
	return &ids{reader: rand.Reader}
}

func (g *ids) Next() (string, error) {
	b := make([]byte, idBytes)
	n, err := io.ReadFull(g.reader, b)
	if err != nil {
		if n > 0 {
			return "", fmt.Errorf("%w: %d of %d bytes", ErrShortRead, n, idBytes)
		}
		return "", err
	}
	return hex.EncodeToString(b), nil
}
