package luxtronik

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultLockTimeout       = 30 * time.Second
	DefaultMinUpdateInterval = 60 * time.Second
)

// Snapshot is the decoded state of the three data vectors as of the last
// successful refresh. Readers get the whole struct at once; a concurrent
// refresh swaps in a new one instead of mutating it.
type Snapshot struct {
	Parameters      map[string]Value
	Calculations    map[string]Value
	Visibilities    map[string]Value
	FirmwareVersion string
	Taken           time.Time
}

// ControllerInfo identifies the control unit for entity discovery.
type ControllerInfo struct {
	Address         string
	FirmwareVersion string
	IPAddress       string
	OperationMode   string
}

// HeatpumpController is the device handle the bridge actors talk to.
type HeatpumpController interface {
	Open() error
	Close() error
	Update() error
	Write(parameter, value string, updateImmediately bool) error
	GetValue(id string) (Value, bool)
	Snapshot() *Snapshot
	Info() (*ControllerInfo, error)
}

// Controller serializes all protocol operations against one Client
// behind a single lock with an acquisition timeout. A caller that cannot
// get the lock within the timeout skips its operation with a logged
// warning instead of blocking or failing.
type Controller struct {
	client      *Client
	address     string
	lockTimeout time.Duration
	minInterval time.Duration

	sem        chan struct{}
	throttleMu sync.Mutex
	lastUpdate time.Time
	snapshot   atomic.Pointer[Snapshot]

	logger *zap.Logger
}

// ControllerOptions tune the access wrapper; zero values fall back to the
// defaults (30s lock timeout, 60s minimum refresh interval).
type ControllerOptions struct {
	LockTimeout       time.Duration
	MinUpdateInterval time.Duration
}

func NewController(client *Client, address string, opts ControllerOptions, logger *zap.Logger) *Controller {
	if opts.LockTimeout <= 0 {
		opts.LockTimeout = DefaultLockTimeout
	}
	if opts.MinUpdateInterval <= 0 {
		opts.MinUpdateInterval = DefaultMinUpdateInterval
	}
	return &Controller{
		client:      client,
		address:     address,
		lockTimeout: opts.LockTimeout,
		minInterval: opts.MinUpdateInterval,
		sem:         make(chan struct{}, 1),
		logger:      logger,
	}
}

// Open connects and performs the initial, unthrottled refresh. Unlike
// Update and Write, a lock timeout here is an error; the lock is freshly
// created, so contention at Open means the controller is already broken.
func (c *Controller) Open() error {
	if !c.acquire() {
		return fmt.Errorf("luxtronik: lock timeout after %s while opening connection to %s",
			c.lockTimeout, c.address)
	}
	defer c.release()

	if err := c.client.Connect(); err != nil {
		return err
	}
	c.markUpdate()
	return c.refreshLocked()
}

func (c *Controller) Close() error {
	if !c.acquire() {
		// close regardless, the connection is going away
		return c.client.Close()
	}
	defer c.release()
	return c.client.Close()
}

// Update refreshes the snapshot from the device. Calls arriving within
// the minimum interval of the previous one are silent no-ops; a lock
// timeout degrades to a skipped refresh plus a warning.
func (c *Controller) Update() error {
	if !c.markUpdate() {
		return nil
	}
	if !c.acquire() {
		c.logger.Warn("couldn't read heatpump data because of lock timeout",
			zap.Duration("lock_timeout", c.lockTimeout))
		return nil
	}
	defer c.release()
	return c.refreshLocked()
}

// Write sets a named parameter and flushes it to the device, optionally
// refreshing the snapshot right away. A lock timeout skips the write with
// a warning.
func (c *Controller) Write(parameter, value string, updateImmediately bool) error {
	if !c.acquire() {
		c.logger.Warn("couldn't write heatpump parameter because of lock timeout",
			zap.String("parameter", parameter),
			zap.String("value", value),
			zap.Duration("lock_timeout", c.lockTimeout))
		return nil
	}
	defer c.release()

	if err := c.client.Parameters.Set(parameter, value); err != nil {
		return err
	}
	if err := c.client.Write(); err != nil {
		return err
	}
	if updateImmediately {
		return c.refreshLocked()
	}
	return nil
}

// GetValue resolves a dotted "group.sensor" identifier against the last
// snapshot. It never touches the device and never blocks; the snapshot
// may trail a refresh that is running at the same time.
func (c *Controller) GetValue(id string) (Value, bool) {
	snap := c.snapshot.Load()
	if snap == nil {
		return Value{}, false
	}
	group, sensor, err := ParseID(id)
	if err != nil {
		return Value{}, false
	}
	var table map[string]Value
	switch group {
	case GroupParameters:
		table = snap.Parameters
	case GroupCalculations:
		table = snap.Calculations
	case GroupVisibilities:
		table = snap.Visibilities
	}
	value, ok := table[sensor]
	return value, ok
}

// Snapshot returns the last refreshed state, or nil before the first
// successful refresh.
func (c *Controller) Snapshot() *Snapshot {
	return c.snapshot.Load()
}

func (c *Controller) Info() (*ControllerInfo, error) {
	snap := c.snapshot.Load()
	if snap == nil {
		return nil, fmt.Errorf("luxtronik: no data read from %s yet", c.address)
	}
	info := &ControllerInfo{
		Address:         c.address,
		FirmwareVersion: snap.FirmwareVersion,
	}
	if ip, ok := snap.Calculations["ID_WEB_AdresseIP_akt"]; ok {
		info.IPAddress = ip.String()
	}
	if mode, ok := snap.Calculations["ID_WEB_WP_BZ_akt"]; ok {
		info.OperationMode = mode.String()
	}
	return info, nil
}

// refreshLocked reads all vectors and swaps in a new snapshot. Caller
// must hold the lock.
func (c *Controller) refreshLocked() error {
	if err := c.client.Read(); err != nil {
		return err
	}
	c.snapshot.Store(&Snapshot{
		Parameters:      c.client.Parameters.decode(),
		Calculations:    c.client.Calculations.decode(),
		Visibilities:    c.client.Visibilities.decode(),
		FirmwareVersion: c.client.Calculations.FirmwareVersion(),
		Taken:           time.Now(),
	})
	return nil
}

// markUpdate reports whether a refresh is due and, if so, starts a new
// throttle window. The window opens at the attempt, not its completion,
// matching how the polling layer expects the rate limit to behave.
func (c *Controller) markUpdate() bool {
	c.throttleMu.Lock()
	defer c.throttleMu.Unlock()
	if time.Since(c.lastUpdate) < c.minInterval {
		return false
	}
	c.lastUpdate = time.Now()
	return true
}

func (c *Controller) acquire() bool {
	select {
	case c.sem <- struct{}{}:
		return true
	case <-time.After(c.lockTimeout):
		return false
	}
}

func (c *Controller) release() {
	<-c.sem
}

var _ HeatpumpController = (*Controller)(nil)
