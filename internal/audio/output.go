package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep/v2/speaker"
)

// Output drives a Deck: either through the sound card, or, when headless,
// through a wall-clock pump so positions advance exactly as they would on a
// device.
type Output struct {
	deck     *Deck
	headless bool
	stop     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

// OpenOutput starts pulling samples from deck.
func OpenOutput(deck *Deck, buffer time.Duration, headless bool) (*Output, error) {
	o := &Output{deck: deck, headless: headless, stop: make(chan struct{})}

	if headless {
		o.wg.Add(1)
		go o.pump(buffer)
		return o, nil
	}

	rate := deck.SampleRate()
	if err := speaker.Init(rate, rate.N(buffer)); err != nil {
		return nil, err
	}
	speaker.Play(deck)
	return o, nil
}

// Headless reports whether the output runs without a sound card.
func (o *Output) Headless() bool { return o.headless }

// Close stops pulling samples and releases the device.
func (o *Output) Close() {
	o.once.Do(func() {
		close(o.stop)
		o.wg.Wait()
		if !o.headless {
			speaker.Clear()
			speaker.Close()
		}
	})
}

func (o *Output) pump(buffer time.Duration) {
	defer o.wg.Done()

	rate := o.deck.SampleRate()
	ticker := time.NewTicker(buffer)
	defer ticker.Stop()

	buf := make([][2]float64, rate.N(buffer))
	last := time.Now()
	carry := time.Duration(0)
	for {
		select {
		case <-o.stop:
			return
		case now := <-ticker.C:
			// Pull exactly the elapsed time so the clock does not drift with ticker jitter.
			elapsed := now.Sub(last) + carry
			last = now
			n := rate.N(elapsed)
			carry = elapsed - rate.D(n)
			for n > 0 {
				chunk := min(n, len(buf))
				o.deck.Stream(buf[:chunk])
				n -= chunk
			}
		}
	}
}
