package luxtronik

import (
	"encoding/binary"
	"fmt"
	"net"
	"time"
)

// protocol commands
const (
	cmdWriteParameter   = 3002
	cmdReadParameters   = 3003
	cmdReadCalculations = 3004
	cmdReadVisibilities = 3005
)

// DefaultPort is the TCP port the control unit listens on.
const DefaultPort = 8889

// Instrument receives per-operation wire timings.
type Instrument struct {
	RecordTime func(opName string, wireTime time.Duration)
}

// Client speaks the Luxtronik socket protocol: big-endian int32 words
// over a single TCP connection. It is not safe for concurrent use; the
// Controller serializes access to it.
type Client struct {
	host    string
	port    uint16
	timeout time.Duration

	conn       net.Conn
	instrument []Instrument

	Parameters   *ParameterVector
	Calculations *CalculationVector
	Visibilities *VisibilityVector
}

// NewClient builds a disconnected client. safe restricts parameter writes
// to slots marked writable.
func NewClient(host string, port uint16, safe bool, timeout time.Duration, instrument []Instrument) *Client {
	if port == 0 {
		port = DefaultPort
	}
	return &Client{
		host:         host,
		port:         port,
		timeout:      timeout,
		instrument:   instrument,
		Parameters:   newParameterVector(safe),
		Calculations: newCalculationVector(),
		Visibilities: newVisibilityVector(),
	}
}

func (c *Client) Connect() error {
	if c.conn != nil {
		return nil
	}
	conn, err := net.DialTimeout("tcp", fmt.Sprintf("%s:%d", c.host, c.port), c.timeout)
	if err != nil {
		return fmt.Errorf("luxtronik: connect %s:%d: %w", c.host, c.port, err)
	}
	c.conn = conn
	return nil
}

func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// Read refreshes all three data vectors from the device.
func (c *Client) Read() error {
	if err := c.readParameters(); err != nil {
		return err
	}
	if err := c.readCalculations(); err != nil {
		return err
	}
	return c.readVisibilities()
}

// Write flushes all queued parameter changes. Each write is acknowledged
// by the device echoing the slot index.
func (c *Client) Write() error {
	defer c.recordTimer("Write")()
	for index, raw := range c.Parameters.drainPending() {
		if err := c.sendWords(cmdWriteParameter, int32(index), raw); err != nil {
			return err
		}
		ack, err := c.expectCommand(cmdWriteParameter)
		if err != nil {
			return err
		}
		if ack != int32(index) {
			return fmt.Errorf("luxtronik: write ack mismatch: slot %d, ack %d", index, ack)
		}
	}
	return nil
}

func (c *Client) readParameters() error {
	defer c.recordTimer("ReadParameters")()
	if err := c.sendWords(cmdReadParameters, 0); err != nil {
		return err
	}
	length, err := c.expectCommand(cmdReadParameters)
	if err != nil {
		return err
	}
	raw, err := c.readWords(int(length))
	if err != nil {
		return err
	}
	c.Parameters.load(raw)
	return nil
}

func (c *Client) readCalculations() error {
	defer c.recordTimer("ReadCalculations")()
	if err := c.sendWords(cmdReadCalculations, 0); err != nil {
		return err
	}
	// the calculation response carries an extra status word before the length
	if _, err := c.expectCommand(cmdReadCalculations); err != nil {
		return err
	}
	length, err := c.readWord()
	if err != nil {
		return err
	}
	raw, err := c.readWords(int(length))
	if err != nil {
		return err
	}
	c.Calculations.load(raw)
	return nil
}

func (c *Client) readVisibilities() error {
	defer c.recordTimer("ReadVisibilities")()
	if err := c.sendWords(cmdReadVisibilities, 0); err != nil {
		return err
	}
	length, err := c.expectCommand(cmdReadVisibilities)
	if err != nil {
		return err
	}
	if length < 0 || length > 1<<16 {
		return fmt.Errorf("luxtronik: implausible vector length %d", length)
	}
	// visibility flags are sent as one byte per slot
	buf := make([]byte, int(length))
	if err := c.readFull(buf); err != nil {
		return err
	}
	raw := make([]int32, len(buf))
	for i, b := range buf {
		raw[i] = int32(b)
	}
	c.Visibilities.load(raw)
	return nil
}

func (c *Client) sendWords(words ...int32) error {
	if c.conn == nil {
		return fmt.Errorf("luxtronik: not connected")
	}
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		return err
	}
	buf := make([]byte, 4*len(words))
	for i, w := range words {
		binary.BigEndian.PutUint32(buf[4*i:], uint32(w))
	}
	_, err := c.conn.Write(buf)
	return err
}

// expectCommand validates the echoed command word and returns the word
// that follows (length or ack depending on the command).
func (c *Client) expectCommand(cmd int32) (int32, error) {
	echo, err := c.readWord()
	if err != nil {
		return 0, err
	}
	if echo != cmd {
		return 0, fmt.Errorf("luxtronik: command echo mismatch: sent %d, got %d", cmd, echo)
	}
	return c.readWord()
}

func (c *Client) readWord() (int32, error) {
	var buf [4]byte
	if err := c.readFull(buf[:]); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(buf[:])), nil
}

func (c *Client) readWords(n int) ([]int32, error) {
	if n < 0 || n > 1<<16 {
		return nil, fmt.Errorf("luxtronik: implausible vector length %d", n)
	}
	buf := make([]byte, 4*n)
	if err := c.readFull(buf); err != nil {
		return nil, err
	}
	words := make([]int32, n)
	for i := range words {
		words[i] = int32(binary.BigEndian.Uint32(buf[4*i:]))
	}
	return words, nil
}

func (c *Client) readFull(buf []byte) error {
	if c.conn == nil {
		return fmt.Errorf("luxtronik: not connected")
	}
	if err := c.conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return err
	}
	for read := 0; read < len(buf); {
		n, err := c.conn.Read(buf[read:])
		if err != nil {
			return err
		}
		read += n
	}
	return nil
}

func (c *Client) recordTimer(name string) func() {
	if c.instrument == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		duration := time.Since(start)
		for i := range c.instrument {
			c.instrument[i].RecordTime(name, duration)
		}
	}
}
