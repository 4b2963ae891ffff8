package timer

// Events receives timer notifications. Calls happen on the scheduler's
// goroutine, after the tick has been applied. Nothing from a tick is
// delivered once Stop or Start has returned, except a call that was already
// in progress on the scheduler goroutine.
type Events interface {
	ElapsedUpdated(seconds int)
	TargetReached(seconds int)
}

// Nop discards all notifications
type Nop struct{}

func (Nop) ElapsedUpdated(int) {}
func (Nop) TargetReached(int) {}

// Funcs adapts plain functions to Events; nil fields are skipped
type Funcs struct {
	OnElapsed func(seconds int)
	OnReached func(seconds int)
}

func (f Funcs) ElapsedUpdated(seconds int) {
	if f.OnElapsed != nil {
		f.OnElapsed(seconds)
	}
}

func (f Funcs) TargetReached(seconds int) {
	if f.OnReached != nil {
		f.OnReached(seconds)
	}
}

// EventKind names a timer notification
type EventKind int

const (
	ElapsedUpdated EventKind = iota
	TargetReached
)

func (k EventKind) String() string {
	if k == TargetReached {
		return "target reached"
	}
	return "elapsed updated"
}

// Event is the typed payload delivered by ChanSink
type Event struct {
	Kind    EventKind
	Seconds int
}

// ChanSink forwards notifications onto a channel. Sends block, so the
// channel should be buffered and drained.
type ChanSink chan Event

// NewChanSink creates a sink with the given buffer size
func NewChanSink(buffer int) ChanSink {
	return make(ChanSink, buffer)
}

func (c ChanSink) ElapsedUpdated(seconds int) {
	c <- Event{Kind: ElapsedUpdated, Seconds: seconds}
}

func (c ChanSink) TargetReached(seconds int) {
	c <- Event{Kind: TargetReached, Seconds: seconds}
}
