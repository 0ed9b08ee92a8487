package stems

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"

	"github.com/llehouerou/stems/internal/audio"
	"github.com/llehouerou/stems/internal/provider"
)

const testRate = beep.SampleRate(1000)

// testClip returns a clip of n samples of constant value v.
func testClip(t *testing.T, n int, v float64) *audio.Clip {
	t.Helper()
	left := n
	s := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if left <= 0 {
			return 0, false
		}
		k := min(len(samples), left)
		for i := 0; i < k; i++ {
			samples[i] = [2]float64{v, v}
		}
		left -= k
		return k, true
	})
	format := beep.Format{SampleRate: testRate, NumChannels: 2, Precision: 2}
	clip, err := audio.NewClip(s, format, testRate, int64(n*4))
	if err != nil {
		t.Fatalf("NewClip() error = %v", err)
	}
	return clip
}

// advance pulls n samples through the deck, as the audio thread would.
func advance(d *audio.Deck, n int) [][2]float64 {
	buf := make([][2]float64, n)
	d.Stream(buf)
	return buf
}

type loadReply struct {
	clip *audio.Clip
	err  error
}

// fakeLoader blocks each Load until the test releases its location.
type fakeLoader struct {
	mu      sync.Mutex
	replies map[string]chan loadReply
	started chan string

	// ignoreCancel keeps loads blocked after their context is canceled,
	// like a fetch that does not observe cancellation.
	ignoreCancel bool
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{
		replies: make(map[string]chan loadReply),
		started: make(chan string, 64),
	}
}

func (f *fakeLoader) reply(location string) chan loadReply {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.replies[location]
	if !ok {
		ch = make(chan loadReply, 1)
		f.replies[location] = ch
	}
	return ch
}

func (f *fakeLoader) Load(ctx context.Context, location string) (*audio.Clip, error) {
	ch := f.reply(location)
	f.started <- location
	if f.ignoreCancel {
		r := <-ch
		return r.clip, r.err
	}
	select {
	case r := <-ch:
		return r.clip, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *fakeLoader) succeed(location string, clip *audio.Clip) {
	f.reply(location) <- loadReply{clip: clip}
}

func (f *fakeLoader) fail(location string, err error) {
	f.reply(location) <- loadReply{err: err}
}

// fakeProvider answers per source once the test releases it.
type fakeProvider struct {
	mu      sync.Mutex
	replies map[string]chan providerReply
	calls   []string
}

type providerReply struct {
	res provider.Result
	err error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{replies: make(map[string]chan providerReply)}
}

func (p *fakeProvider) reply(source string) chan providerReply {
	p.mu.Lock()
	defer p.mu.Unlock()
	ch, ok := p.replies[source]
	if !ok {
		ch = make(chan providerReply, 1)
		p.replies[source] = ch
	}
	return ch
}

func (p *fakeProvider) Stems(ctx context.Context, source string) (provider.Result, error) {
	p.mu.Lock()
	p.calls = append(p.calls, source)
	p.mu.Unlock()

	select {
	case r := <-p.reply(source):
		return r.res, r.err
	case <-ctx.Done():
		return provider.Result{}, ctx.Err()
	}
}

func (p *fakeProvider) answer(source string, stems ...provider.Stem) {
	p.reply(source) <- providerReply{res: provider.Result{Stems: stems}}
}

func (p *fakeProvider) failWith(source string, err error) {
	p.reply(source) <- providerReply{err: err}
}

func (p *fakeProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

func stem(name string) provider.Stem {
	return provider.Stem{Name: name, Location: "mem://" + name}
}

// testSession wires a session to fakes and reports every processed load
// completion, applied or dropped, on processed.
type testSession struct {
	*Session
	deck      *audio.Deck
	provider  *fakeProvider
	loader    *fakeLoader
	processed chan LoadResult
	sub       *Subscription
}

func newTestSession(t *testing.T) *testSession {
	t.Helper()
	deck := audio.NewDeck(testRate)
	p := newFakeProvider()
	l := newFakeLoader()
	s := New(deck, p, l)

	ts := &testSession{
		Session:   s,
		deck:      deck,
		provider:  p,
		loader:    l,
		processed: make(chan LoadResult, 64),
	}
	s.registry.notify = func(res LoadResult) {
		s.onTrackLoaded(res)
		ts.processed <- res
	}
	ts.sub = s.Subscribe()
	t.Cleanup(func() { _ = s.Close() })
	return ts
}

// load runs a successful Load of source with the given stems.
func (ts *testSession) load(t *testing.T, source string, stems ...provider.Stem) {
	t.Helper()
	ts.provider.answer(source, stems...)
	if err := ts.Load(context.Background(), source); err != nil {
		t.Fatalf("Load(%q) error = %v", source, err)
	}
}

// settle releases every named stem with a clip of n samples and waits for
// the completions to be processed.
func (ts *testSession) settle(t *testing.T, n int, names ...string) {
	t.Helper()
	for _, name := range names {
		ts.loader.succeed("mem://"+name, testClip(t, n, 0.5))
	}
	ts.waitProcessed(t, len(names))
}

func (ts *testSession) waitProcessed(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-ts.processed:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for load completion %d/%d", i+1, n)
		}
	}
}

// lastStatus drains the status channel and returns the last message.
func lastStatus(sub *Subscription) Status {
	var last Status
	for {
		select {
		case st := <-sub.Status:
			last = st
		default:
			return last
		}
	}
}
