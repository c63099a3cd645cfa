package client

import (
	"sync/atomic"
	"time"

	enc "github.com/named-data/ndnd-client-core/std/encoding"
	"github.com/named-data/ndnd-client-core/std/log"
	"github.com/named-data/ndnd-client-core/std/ndn"
	"github.com/named-data/ndnd-client-core/std/ndn/legacy"
)

// tickInterval is the periodic timer's period (spec.md §4.5, §6: "Periodic
// timer interval equals 100 ms").
const tickInterval = 100 * time.Millisecond

// Node is the client-core façade (spec.md §4.8): a single-threaded reactor
// owning the PIT, the RPT, a transport, and a 100 ms periodic timer,
// grounded in the teacher's basic.Engine run loop
// (std/engine/basic/engine.go's Start/Stop/Post/onPacket).
type Node struct {
	transport ndn.Transport
	timer     ndn.Timer

	pit *pit
	rpt *rpt

	ndndID      []byte
	probing     bool
	pendingRegs []pendingRegistration

	inQueue   chan []byte
	taskQueue chan func()
	closeCh   chan struct{}
	running   atomic.Bool

	tickCancel func() error

	// OnFaceDown, if set, is invoked when the transport reports a
	// disconnect while the event loop is running (SPEC_FULL.md §13's
	// allowable extension over spec.md §5's silent-abandon shutdown).
	OnFaceDown func(err error)
}

// New constructs a Node over the given transport and timer, with an empty
// RPT, empty PIT, and empty ndnd-ID (spec.md §4.8). The periodic timer is
// not armed until processEvents/Run starts the loop, so construction never
// schedules a callback that could outlive the Node.
func New(transport ndn.Transport, timer ndn.Timer) *Node {
	return &Node{
		transport: transport,
		timer:     timer,
		pit:       newPIT(),
		rpt:       newRPT(),
		inQueue:   make(chan []byte, 256),
		taskQueue: make(chan func(), 512),
		closeCh:   make(chan struct{}),
	}
}

// String renders the Node for log messages.
func (n *Node) String() string {
	return "client-node"
}

// IsRunning reports whether the event loop is active.
func (n *Node) IsRunning() bool {
	return n.running.Load()
}

// ExpressInterest inserts interest into the PIT and sends it over the
// transport (spec.md §4.8), connecting the transport first if needed. It
// returns the new PIT id, or an error if the transport connect/send fails
// — in which case no table insertion is performed (spec.md §7,
// TransportError).
func (n *Node) ExpressInterest(interest *legacy.Interest, onData OnDataFunc, onTimeout OnTimeoutFunc) (uint64, error) {
	if err := n.ensureConnected(); err != nil {
		return 0, err
	}
	id := n.pit.insert(n.timer.Now(), interest, onData, onTimeout)
	if err := n.transport.Send(legacy.EncodeInterest(interest).Join()); err != nil {
		n.pit.removeByID(id)
		return 0, err
	}
	log.Trace(n, "interest sent", "name", interest.Name)
	return id, nil
}

// expressInterestLow is the internal express path used by the registration
// protocol's ndnd-ID probe; it assumes the transport is already connected,
// and a send failure is only logged (the entry stays in the PIT until its
// deadline). Timeouts are not scheduled per entry: the single
// periodic tick (armTick) sweeps the PIT for expired deadlines every
// 100 ms (spec.md §4.5).
func (n *Node) expressInterestLow(interest *legacy.Interest, onData OnDataFunc, onTimeout OnTimeoutFunc) uint64 {
	id := n.pit.insert(n.timer.Now(), interest, onData, onTimeout)

	if err := n.transport.Send(legacy.EncodeInterest(interest).Join()); err != nil {
		log.Error(n, "failed to send interest", "err", err, "name", interest.Name)
	} else {
		log.Trace(n, "interest sent", "name", interest.Name)
	}
	return id
}

// sendInterest sends a one-off Interest (the self-registration Interest)
// without a PIT entry: spec.md §4.7 step 6 awaits no confirmation Data.
func (n *Node) sendInterest(interest *legacy.Interest) {
	if err := n.transport.Send(legacy.EncodeInterest(interest).Join()); err != nil {
		log.Error(n, "failed to send registration interest", "err", err, "name", interest.Name)
	}
}

// RemovePendingInterest delegates to the PIT; idempotent (spec.md §5).
func (n *Node) RemovePendingInterest(id uint64) {
	n.pit.removeByID(id)
}

// RegisterPrefix implements the two-phase registration protocol (spec.md
// §4.7), returning the RPT id immediately.
func (n *Node) RegisterPrefix(prefix enc.Name, onInterest OnInterestFunc, onFailed OnRegisterFailedFunc, flags uint64) (uint64, error) {
	if err := n.ensureConnected(); err != nil {
		return 0, err
	}
	return n.registerPrefix(prefix, onInterest, onFailed, flags), nil
}

// RemoveRegisteredPrefix delegates to the RPT.
func (n *Node) RemoveRegisteredPrefix(id uint64) {
	n.rpt.removeByID(id)
}

// ensureConnected connects the transport, wiring its receive sink into the
// inbound queue, if it is not already connected (spec.md §4.8).
func (n *Node) ensureConnected() error {
	if n.transport.IsConnected() {
		return nil
	}
	return n.transport.Connect(func(frame []byte) {
		frameCopy := make([]byte, len(frame))
		copy(frameCopy, frame)
		n.inQueue <- frameCopy
	})
}

// Post schedules task for execution on the event-loop goroutine, mirroring
// the teacher's Engine.Post (std/engine/basic/engine.go): app callbacks may
// re-enter the Node safely because every mutation happens on this one
// goroutine.
func (n *Node) Post(task func()) {
	select {
	case n.taskQueue <- task:
	default:
		go func() { n.taskQueue <- task }()
	}
}

// Run starts the single-threaded event loop (spec.md §4.8's processEvents):
// it connects the transport if needed, arms the periodic timer, and blocks
// draining the inbound queue and the task queue (which also carries each
// periodic tick, posted by armTick) until
// Shutdown is called. A second concurrent call fails with
// ndn.ErrAlreadyRunning.
func (n *Node) Run() error {
	if n.running.Swap(true) {
		return ndn.ErrAlreadyRunning
	}

	if err := n.ensureConnected(); err != nil {
		n.running.Store(false)
		return err
	}

	if downer, ok := n.transport.(interface{ OnDown(func(error)) }); ok {
		downer.OnDown(func(err error) {
			n.Post(func() {
				if n.OnFaceDown != nil {
					n.OnFaceDown(err)
				}
			})
		})
	}

	n.armTick()

	for {
		select {
		case frame := <-n.inQueue:
			n.dispatch(frame)
		case task := <-n.taskQueue:
			task()
		case <-n.closeCh:
			n.running.Store(false)
			return nil
		}
	}
}

// armTick schedules the recurring 100 ms sweep (spec.md §4.5): on fire it
// sweeps expired PIT entries and re-arms, until the Node is shut down.
func (n *Node) armTick() {
	var tick func()
	tick = func() {
		n.Post(func() {
			if !n.IsRunning() {
				return
			}
			n.sweepTimeouts()
			n.tickCancel = n.timer.Schedule(tickInterval, tick)
		})
	}
	n.tickCancel = n.timer.Schedule(tickInterval, tick)
}

// sweepTimeouts calls PIT.sweepExpired and invokes each entry's onTimeout,
// then re-reads now and sweeps again after each batch of callbacks, so
// entries that expire while slow callbacks run are still fired in this
// tick (spec.md §4.3).
func (n *Node) sweepTimeouts() {
	for {
		now := n.timer.Now()
		expired := n.pit.sweepExpired(now)
		if len(expired) == 0 {
			return
		}
		for _, e := range expired {
			n.fireTimeout(e)
		}
	}
}

func (n *Node) fireTimeout(e *pendingInterest) {
	defer func() {
		if r := recover(); r != nil {
			log.Error(n, "app callback panicked on timeout", "recover", r)
		}
	}()
	if e.onTimeout != nil {
		e.onTimeout(e.interest)
	}
}

// Shutdown closes the transport and stops the event loop (spec.md §4.8).
// Pending Interests are abandoned with no callbacks fired, matching the
// source behavior spec.md §5 calls out explicitly; drain, if true, instead
// fires onTimeout for every outstanding entry before stopping (the
// allowable extension spec.md §5 and §9 permit).
//
// The tick cancellation, the drain sweep, and the transport close all touch
// state (n.tickCancel, the PIT) that armTick/dispatch mutate only on the
// event-loop goroutine, so Shutdown posts them as a single task rather than
// performing them itself: spec.md §5's single-thread guarantee for PIT
// mutations and app callbacks must hold on the shutdown path too, and
// Shutdown is documented to be called from a goroutine other than the one
// blocked in Run.
func (n *Node) Shutdown(drain bool) error {
	if !n.IsRunning() {
		return ndn.ErrNotRunning
	}

	stopped := make(chan struct{})
	n.Post(func() {
		defer close(stopped)

		if n.tickCancel != nil {
			n.tickCancel()
		}
		if drain {
			n.drainPending()
		}
		_ = n.transport.Close()
		n.running.Store(false)
	})
	<-stopped

	n.closeCh <- struct{}{}
	return nil
}

// drainPending fires onTimeout for every still-pending PIT entry and empties
// the table. Must run on the event-loop goroutine.
func (n *Node) drainPending() {
	for _, e := range n.pit.entries {
		n.fireTimeout(e)
	}
	n.pit.entries = nil
	n.pit.byHead = nil
	n.pit.headless = nil
}
