//go:build !windows

// Package stderr captures output that C libraries (ALSA, oto backends) write
// directly to file descriptor 2, bypassing Go's os.Stderr.
// Captured lines are handed to a sink instead of corrupting the TUI layout.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"sync"

	"golang.org/x/sys/unix"
)

// Capture redirects fd 2 into a pipe until Stop is called.
type Capture struct {
	mu         sync.Mutex
	origStderr int
	pipeRead   *os.File
	pipeWrite  *os.File
	wg         sync.WaitGroup
	stopped    bool
}

// Start begins capturing stderr and calls sink for every non-empty line.
// Must be called before any audio backend is initialized.
// On error the program can continue without capture.
func Start(sink func(line string)) (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	fd := int(os.Stderr.Fd())
	orig, err := unix.Dup(fd)
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}

	if err := unix.Dup2(int(w.Fd()), fd); err != nil {
		unix.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{
		origStderr: orig,
		pipeRead:   r,
		pipeWrite:  w,
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" && sink != nil {
				sink(line)
			}
		}
	}()

	return c, nil
}

// WriteOriginal writes directly to the original stderr, bypassing capture.
// Useful for fatal errors that must be visible even if the TUI is running.
func (c *Capture) WriteOriginal(msg string) {
	if c == nil {
		_, _ = os.Stderr.WriteString(msg)
		return
	}
	_, _ = unix.Write(c.origStderr, []byte(msg))
}

// Stop restores the original stderr and waits for the reader to drain.
func (c *Capture) Stop() {
	if c == nil {
		return
	}
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	c.mu.Unlock()

	_ = unix.Dup2(c.origStderr, int(os.Stderr.Fd()))
	_ = unix.Close(c.origStderr)

	// Closing the write end ends the scanner loop.
	c.pipeWrite.Close()
	c.wg.Wait()
	c.pipeRead.Close()
}
