package dictionary

import (
	"errors"
	"fmt"

	"morphja/bytecodec"
)

// header holds the forward and backward dimensions ahead of the matrix.
const header = 2

var (
	// ErrConnectionOverflow signals a cost lookup outside the matrix, which
	// means the loaded files disagree about the context id space.
	ErrConnectionOverflow = errors.New("dictionary: connection costs buffer overflow")
	// ErrDimension is returned for dimensions that cannot be stored.
	ErrDimension = errors.New("dictionary: invalid connection cost dimension")
)

// ConnectionCosts is the row-major matrix of transition costs indexed by the
// right id of the left word and the left id of the right word.
type ConnectionCosts struct {
	forward  int
	backward int
	buf      []int16
}

// NewConnectionCosts returns a zeroed forward x backward matrix.
func NewConnectionCosts(forward, backward int) (*ConnectionCosts, error) {
	if forward < 0 || backward < 0 || forward > 0x7FFF || backward > 0x7FFF {
		return nil, fmt.Errorf("%w: %dx%d", ErrDimension, forward, backward)
	}
	buf := make([]int16, forward*backward+header)
	buf[0], buf[1] = int16(forward), int16(backward)
	return &ConnectionCosts{forward: forward, backward: backward, buf: buf}, nil
}

// LoadConnectionCosts parses a persisted matrix: two int16 dimensions
// followed by forward*backward int16 costs.
func LoadConnectionCosts(b []byte) (*ConnectionCosts, error) {
	src := bytecodec.Wrap(b)
	buf := make([]int16, len(b)/2)
	for i := range buf {
		buf[i] = src.Int16At(i * 2)
	}
	if len(buf) < header {
		return nil, fmt.Errorf("%w: buffer of %d bytes has no header", ErrDimension, len(b))
	}
	forward, backward := int(buf[0]), int(buf[1])
	if forward < 0 || backward < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrDimension, forward, backward)
	}
	return &ConnectionCosts{forward: forward, backward: backward, buf: buf}, nil
}

func (c *ConnectionCosts) index(forwardID, backwardID int) (int, error) {
	i := forwardID*c.backward + backwardID + header
	if i < header || i >= len(c.buf) {
		return 0, fmt.Errorf("%w: (%d, %d) in %dx%d",
			ErrConnectionOverflow, forwardID, backwardID, c.forward, c.backward)
	}
	return i, nil
}

// Put stores one cost.
func (c *ConnectionCosts) Put(forwardID, backwardID int, cost int16) error {
	i, err := c.index(forwardID, backwardID)
	if err != nil {
		return err
	}
	c.buf[i] = cost
	return nil
}

// Get returns one cost. An index outside the matrix is dictionary corruption
// and panics with an error wrapping ErrConnectionOverflow.
func (c *ConnectionCosts) Get(forwardID, backwardID int) int16 {
	i, err := c.index(forwardID, backwardID)
	if err != nil {
		panic(err)
	}
	return c.buf[i]
}

// Dimensions returns the forward and backward sizes.
func (c *ConnectionCosts) Dimensions() (forward, backward int) {
	return c.forward, c.backward
}

// Bytes returns the matrix in persisted form.
func (c *ConnectionCosts) Bytes() []byte {
	buf := bytecodec.NewBuffer(len(c.buf)*2 + 1)
	for _, v := range c.buf {
		_ = buf.PutInt16(int(uint16(v)))
	}
	return buf.Shrink()
}
