package luxtronik

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testController(t *testing.T, hp *fakeHeatpump, opts ControllerOptions) *Controller {
	t.Helper()
	host, port := hp.addr()
	client := NewClient(host, port, true, 2*time.Second, nil)
	ctrl := NewController(client, host, opts, zap.NewNop())
	require.NoError(t, ctrl.Open())
	t.Cleanup(func() { _ = ctrl.Close() })
	return ctrl
}

func TestControllerOpenTakesInitialSnapshot(t *testing.T) {
	hp := newFakeHeatpump(t)
	hp.setCalculation(10, 321)

	ctrl := testController(t, hp, ControllerOptions{})

	snap := ctrl.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, 32.1, snap.Calculations["ID_WEB_Temperatur_TVL"].Float())
}

func TestControllerOpenLockTimeoutFails(t *testing.T) {
	hp := newFakeHeatpump(t)
	host, port := hp.addr()
	client := NewClient(host, port, true, 2*time.Second, nil)
	ctrl := NewController(client, host, ControllerOptions{LockTimeout: 20 * time.Millisecond}, zap.NewNop())

	ctrl.sem <- struct{}{}
	defer func() { <-ctrl.sem }()

	err := ctrl.Open()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lock timeout")
}

func TestControllerUpdateThrottled(t *testing.T) {
	hp := newFakeHeatpump(t)
	hp.setCalculation(10, 321)

	ctrl := testController(t, hp, ControllerOptions{MinUpdateInterval: time.Hour})
	first := ctrl.Snapshot()

	// within the minimum interval the device must not be read again
	hp.setCalculation(10, 999)
	require.NoError(t, ctrl.Update())
	assert.Equal(t, first.Taken, ctrl.Snapshot().Taken)

	value, ok := ctrl.GetValue("calculations.ID_WEB_Temperatur_TVL")
	require.True(t, ok)
	assert.Equal(t, 32.1, value.Float())
}

func TestControllerUpdateAfterInterval(t *testing.T) {
	hp := newFakeHeatpump(t)
	hp.setCalculation(10, 321)

	ctrl := testController(t, hp, ControllerOptions{MinUpdateInterval: 30 * time.Millisecond})

	hp.setCalculation(10, 335)
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, ctrl.Update())

	value, ok := ctrl.GetValue("calculations.ID_WEB_Temperatur_TVL")
	require.True(t, ok)
	assert.Equal(t, 33.5, value.Float())
}

func TestControllerUpdateLockTimeoutSkips(t *testing.T) {
	hp := newFakeHeatpump(t)
	ctrl := testController(t, hp, ControllerOptions{
		LockTimeout:       20 * time.Millisecond,
		MinUpdateInterval: time.Nanosecond,
	})

	// hold the lock so the update cannot acquire it
	ctrl.sem <- struct{}{}
	defer func() { <-ctrl.sem }()

	done := make(chan error, 1)
	go func() { done <- ctrl.Update() }()

	select {
	case err := <-done:
		// skipped, not failed
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("update blocked past the lock timeout")
	}
}

func TestControllerWriteLockTimeoutSkips(t *testing.T) {
	hp := newFakeHeatpump(t)
	ctrl := testController(t, hp, ControllerOptions{LockTimeout: 20 * time.Millisecond})

	ctrl.sem <- struct{}{}
	defer func() { <-ctrl.sem }()

	require.NoError(t, ctrl.Write("ID_Einst_BWS_akt", "51.0", false))

	_, ok := hp.writtenValue(2)
	assert.False(t, ok, "write must be skipped on lock timeout")
}

func TestControllerWrite(t *testing.T) {
	hp := newFakeHeatpump(t)
	ctrl := testController(t, hp, ControllerOptions{MinUpdateInterval: time.Hour})

	require.NoError(t, ctrl.Write("ID_Einst_BWS_akt", "51.0", true))

	written, ok := hp.writtenValue(2)
	require.True(t, ok)
	assert.Equal(t, int32(510), written)

	// updateImmediately bypasses the throttle window
	value, ok := ctrl.GetValue("parameters.ID_Einst_BWS_akt")
	require.True(t, ok)
	assert.Equal(t, 51.0, value.Float())
}

func TestControllerWriteRejectsUnknownParameter(t *testing.T) {
	hp := newFakeHeatpump(t)
	ctrl := testController(t, hp, ControllerOptions{})

	err := ctrl.Write("ID_Nope", "1", false)
	assert.ErrorContains(t, err, "unknown parameter")
}

func TestControllerGetValue(t *testing.T) {
	hp := newFakeHeatpump(t)
	hp.setVisibility(3, 1)
	ctrl := testController(t, hp, ControllerOptions{})

	value, ok := ctrl.GetValue("visibilities.ID_Visi_Temp_Vorlauf")
	require.True(t, ok)
	assert.True(t, value.Bool())

	_, ok = ctrl.GetValue("calculations.ID_Not_A_Sensor")
	assert.False(t, ok)

	_, ok = ctrl.GetValue("wrong_group.ID_WEB_Temperatur_TVL")
	assert.False(t, ok)

	_, ok = ctrl.GetValue("no_dot_at_all")
	assert.False(t, ok)
}

func TestControllerInfo(t *testing.T) {
	hp := newFakeHeatpump(t)
	for i, ch := range []byte("V2.88.1") {
		hp.setCalculation(firmwareFirstSlot+i, int32(ch))
	}
	hp.setCalculation(91, -1062731454) // 192.168.1.66
	ctrl := testController(t, hp, ControllerOptions{})

	info, err := ctrl.Info()
	require.NoError(t, err)
	assert.Equal(t, "V2.88.1", info.FirmwareVersion)
	assert.Equal(t, "192.168.1.66", info.IPAddress)
}

func TestParseID(t *testing.T) {
	group, sensor, err := ParseID("calculations.ID_WEB_Temperatur_TVL")
	require.NoError(t, err)
	assert.Equal(t, GroupCalculations, group)
	assert.Equal(t, "ID_WEB_Temperatur_TVL", sensor)

	_, _, err = ParseID("calculations")
	assert.Error(t, err)

	_, _, err = ParseID("settings.ID_WEB_Temperatur_TVL")
	assert.Error(t, err)
}

func TestParseRaw(t *testing.T) {
	raw, err := ParseRaw(KindCelsius, "50.5")
	require.NoError(t, err)
	assert.Equal(t, int32(505), raw)

	raw, err = ParseRaw(KindCelsius, "-5.2")
	require.NoError(t, err)
	assert.Equal(t, int32(-52), raw)

	raw, err = ParseRaw(KindBool, "on")
	require.NoError(t, err)
	assert.Equal(t, int32(1), raw)

	raw, err = ParseRaw(KindAccessMode, "holidays")
	require.NoError(t, err)
	assert.Equal(t, int32(AccessModeHolidays), raw)

	_, err = ParseRaw(KindAccessMode, "7")
	assert.Error(t, err)
}
