//go:build windows || plan9 || js || wasip1

package pager

import (
	"errors"
	"os"
)

// startKeyReader reads the input with blocking reads. Without select(2) the
// goroutine cannot be woken early, so one byte typed after the session ends
// may still be consumed here.
func startKeyReader(input *os.File, done <-chan struct{}) (<-chan byte, <-chan error, func()) {
	bytesCh := make(chan byte, 64)
	errCh := make(chan error, 1)
	if input == nil {
		errCh <- errors.New("no pager input available")
		return bytesCh, errCh, func() {}
	}
	go func() {
		buf := make([]byte, 64)
		for {
			n, err := input.Read(buf)
			for _, b := range buf[:n] {
				select {
				case <-done:
					return
				case bytesCh <- b:
				}
			}
			if err != nil {
				select {
				case errCh <- err:
				default:
				}
				return
			}
		}
	}()
	return bytesCh, errCh, func() {}
}
