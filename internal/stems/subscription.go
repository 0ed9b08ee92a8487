package stems

const eventBufferSize = 32

// Subscription provides event channels for a subscriber. Sends never block
// the session: events are dropped when a buffer is full.
type Subscription struct {
	Status         <-chan Status
	StateChanged   <-chan StateChange
	TracksReplaced <-chan TracksReplaced
	TrackLoaded    <-chan TrackLoaded
	GainChanged    <-chan GainChange
	Warnings       <-chan PartialFailure
	Done           <-chan struct{}

	statusCh   chan Status
	stateCh    chan StateChange
	replacedCh chan TracksReplaced
	loadedCh   chan TrackLoaded
	gainCh     chan GainChange
	warningCh  chan PartialFailure
	doneCh     chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		statusCh:   make(chan Status, eventBufferSize),
		stateCh:    make(chan StateChange, eventBufferSize),
		replacedCh: make(chan TracksReplaced, eventBufferSize),
		loadedCh:   make(chan TrackLoaded, eventBufferSize),
		gainCh:     make(chan GainChange, eventBufferSize),
		warningCh:  make(chan PartialFailure, eventBufferSize),
		doneCh:     make(chan struct{}),
	}
	s.Status = s.statusCh
	s.StateChanged = s.stateCh
	s.TracksReplaced = s.replacedCh
	s.TrackLoaded = s.loadedCh
	s.GainChanged = s.gainCh
	s.Warnings = s.warningCh
	s.Done = s.doneCh
	return s
}

func (s *Subscription) close() {
	close(s.doneCh)
}

func send[T any](ch chan T, e T) {
	select {
	case ch <- e:
	default:
		// Drop if buffer full
	}
}
