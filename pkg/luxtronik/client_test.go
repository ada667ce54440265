package luxtronik

import (
	"encoding/binary"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHeatpump serves the socket protocol from in-memory vectors.
type fakeHeatpump struct {
	listener net.Listener

	mu               sync.Mutex
	parameters       []int32
	calculations     []int32
	visibilities     []byte
	visibilityLength *int32
	writes           map[int32]int32
}

func newFakeHeatpump(t *testing.T) *fakeHeatpump {
	t.Helper()

	hp := &fakeHeatpump{
		parameters:   make([]int32, 1100),
		calculations: make([]int32, 260),
		visibilities: make([]byte, 200),
		writes:       make(map[int32]int32),
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	hp.listener = listener
	t.Cleanup(func() { _ = listener.Close() })

	go hp.serve()
	return hp
}

func (hp *fakeHeatpump) addr() (string, uint16) {
	addr := hp.listener.Addr().(*net.TCPAddr)
	return addr.IP.String(), uint16(addr.Port)
}

func (hp *fakeHeatpump) setCalculation(index int, value int32) {
	hp.mu.Lock()
	defer hp.mu.Unlock()
	hp.calculations[index] = value
}

func (hp *fakeHeatpump) setParameter(index int, value int32) {
	hp.mu.Lock()
	defer hp.mu.Unlock()
	hp.parameters[index] = value
}

func (hp *fakeHeatpump) setVisibility(index int, value byte) {
	hp.mu.Lock()
	defer hp.mu.Unlock()
	hp.visibilities[index] = value
}

// forceVisibilityLength makes the visibility response announce the given
// length without sending a matching payload.
func (hp *fakeHeatpump) forceVisibilityLength(length int32) {
	hp.mu.Lock()
	defer hp.mu.Unlock()
	hp.visibilityLength = &length
}

func (hp *fakeHeatpump) writtenValue(index int32) (int32, bool) {
	hp.mu.Lock()
	defer hp.mu.Unlock()
	v, ok := hp.writes[index]
	return v, ok
}

func (hp *fakeHeatpump) serve() {
	for {
		conn, err := hp.listener.Accept()
		if err != nil {
			return
		}
		go hp.handle(conn)
	}
}

func (hp *fakeHeatpump) handle(conn net.Conn) {
	defer conn.Close()
	for {
		cmd, err := readWord(conn)
		if err != nil {
			return
		}
		arg, err := readWord(conn)
		if err != nil {
			return
		}
		hp.mu.Lock()
		switch cmd {
		case cmdReadParameters:
			writeWords(conn, cmdReadParameters, int32(len(hp.parameters)))
			writeWords(conn, hp.parameters...)
		case cmdReadCalculations:
			writeWords(conn, cmdReadCalculations, 0, int32(len(hp.calculations)))
			writeWords(conn, hp.calculations...)
		case cmdReadVisibilities:
			if hp.visibilityLength != nil {
				writeWords(conn, cmdReadVisibilities, *hp.visibilityLength)
				break
			}
			writeWords(conn, cmdReadVisibilities, int32(len(hp.visibilities)))
			_, _ = conn.Write(hp.visibilities)
		case cmdWriteParameter:
			value, err := readWord(conn)
			if err != nil {
				hp.mu.Unlock()
				return
			}
			hp.writes[arg] = value
			hp.parameters[arg] = value
			writeWords(conn, cmdWriteParameter, arg)
		}
		hp.mu.Unlock()
	}
}

func readWord(conn net.Conn) (int32, error) {
	var buf [4]byte
	for read := 0; read < 4; {
		n, err := conn.Read(buf[read:])
		if err != nil {
			return 0, err
		}
		read += n
	}
	return int32(binary.BigEndian.Uint32(buf[:])), nil
}

func writeWords(conn net.Conn, words ...int32) {
	buf := make([]byte, 4*len(words))
	for i, w := range words {
		binary.BigEndian.PutUint32(buf[4*i:], uint32(w))
	}
	_, _ = conn.Write(buf)
}

func testClient(t *testing.T, hp *fakeHeatpump, safe bool) *Client {
	t.Helper()
	host, port := hp.addr()
	client := NewClient(host, port, safe, 2*time.Second, nil)
	require.NoError(t, client.Connect())
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestClientRead(t *testing.T) {
	hp := newFakeHeatpump(t)
	hp.setCalculation(10, 321)  // flow 32.1 C
	hp.setCalculation(15, -52)  // outside -5.2 C
	hp.setCalculation(80, 1)    // hot water
	hp.setParameter(2, 500)     // hot water setpoint 50.0 C
	hp.setVisibility(3, 1)

	client := testClient(t, hp, true)
	require.NoError(t, client.Read())

	flow, ok := client.Calculations.Get("ID_WEB_Temperatur_TVL")
	require.True(t, ok)
	assert.Equal(t, 32.1, flow.Float())

	outside, ok := client.Calculations.Get("ID_WEB_Temperatur_TA")
	require.True(t, ok)
	assert.Equal(t, -5.2, outside.Float())

	mode, ok := client.Calculations.Get("ID_WEB_WP_BZ_akt")
	require.True(t, ok)
	assert.Equal(t, "hot_water", mode.String())

	setpoint, ok := client.Parameters.Get("ID_Einst_BWS_akt")
	require.True(t, ok)
	assert.Equal(t, 50.0, setpoint.Float())

	visible, ok := client.Visibilities.Get("ID_Visi_Temp_Vorlauf")
	require.True(t, ok)
	assert.True(t, visible.Bool())
}

func TestClientReadFirmwareVersion(t *testing.T) {
	hp := newFakeHeatpump(t)
	for i, ch := range []byte("V2.88.1") {
		hp.setCalculation(firmwareFirstSlot+i, int32(ch))
	}

	client := testClient(t, hp, true)
	require.NoError(t, client.Read())

	assert.Equal(t, "V2.88.1", client.Calculations.FirmwareVersion())
}

func TestClientReadRejectsImplausibleVisibilityLength(t *testing.T) {
	hp := newFakeHeatpump(t)
	hp.forceVisibilityLength(-5)

	client := testClient(t, hp, true)
	err := client.Read()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "implausible vector length")
}

func TestClientWrite(t *testing.T) {
	hp := newFakeHeatpump(t)
	client := testClient(t, hp, true)

	require.NoError(t, client.Parameters.Set("ID_Einst_BWS_akt", "52.5"))
	require.NoError(t, client.Write())

	written, ok := hp.writtenValue(2)
	require.True(t, ok)
	assert.Equal(t, int32(525), written)

	// the queue must be drained, a second flush writes nothing
	require.NoError(t, client.Write())
}

func TestClientWriteSafeMode(t *testing.T) {
	hp := newFakeHeatpump(t)

	safeClient := testClient(t, hp, true)
	err := safeClient.Parameters.Set("ID_Ba_Al_akt", "off")
	assert.ErrorContains(t, err, "not writable")

	unsafeClient := testClient(t, hp, false)
	require.NoError(t, unsafeClient.Parameters.Set("ID_Ba_Al_akt", "off"))
	require.NoError(t, unsafeClient.Write())

	written, ok := hp.writtenValue(5)
	require.True(t, ok)
	assert.Equal(t, int32(AccessModeOff), written)
}

func TestClientWriteUnknownParameter(t *testing.T) {
	hp := newFakeHeatpump(t)
	client := testClient(t, hp, true)

	err := client.Parameters.Set("ID_Does_Not_Exist", "1")
	assert.ErrorContains(t, err, "unknown parameter")
}

func TestClientUnknownIndexDecodesRaw(t *testing.T) {
	hp := newFakeHeatpump(t)
	hp.setCalculation(200, 4242)

	client := testClient(t, hp, true)
	require.NoError(t, client.Read())

	value, ok := client.Calculations.GetIndex(200)
	require.True(t, ok)
	assert.Equal(t, KindUnknown, value.Kind)
	assert.Equal(t, int32(4242), value.Raw)
}
