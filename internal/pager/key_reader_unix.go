//go:build !windows && !plan9 && !js && !wasip1

package pager

import (
	"errors"
	"io"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

// startKeyReader feeds raw input bytes to a channel until done closes. The
// reader waits in select(2) on the input and a cancel pipe, so once the
// session ends it stops before reading anything meant for the caller.
func startKeyReader(input *os.File, done <-chan struct{}) (<-chan byte, <-chan error, func()) {
	bytesCh := make(chan byte, 64)
	errCh := make(chan error, 1)
	if input == nil {
		errCh <- errors.New("no pager input available")
		return bytesCh, errCh, func() {}
	}
	cancelR, cancelW, err := os.Pipe()
	if err != nil {
		errCh <- err
		return bytesCh, errCh, func() {}
	}

	stopped := make(chan struct{})
	var once sync.Once
	stop := func() {
		once.Do(func() {
			close(stopped)
			_, _ = cancelW.Write([]byte{1})
			_ = cancelW.Close()
		})
	}

	go func() {
		defer func() {
			_ = cancelR.Close()
		}()
		inputFd := int(input.Fd())
		cancelFd := int(cancelR.Fd())
		buf := make([]byte, 64)
		for {
			var readfds unix.FdSet
			fdSetAdd(&readfds, inputFd)
			fdSetAdd(&readfds, cancelFd)
			maxfd := max(inputFd, cancelFd)
			n, err := unix.Select(maxfd+1, &readfds, nil, nil, nil)
			if err == unix.EINTR {
				continue
			}
			if err != nil {
				sendErr(errCh, err)
				return
			}
			if n == 0 {
				continue
			}
			if fdSetHas(&readfds, cancelFd) {
				return
			}
			if !fdSetHas(&readfds, inputFd) {
				continue
			}
			count, err := unix.Read(inputFd, buf)
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			if err != nil {
				sendErr(errCh, err)
				return
			}
			if count == 0 {
				sendErr(errCh, io.EOF)
				return
			}
			for _, b := range buf[:count] {
				select {
				case <-done:
					return
				case bytesCh <- b:
				}
			}
		}
	}()

	go func() {
		select {
		case <-done:
		case <-stopped:
			return
		}
		stop()
	}()

	return bytesCh, errCh, stop
}

func sendErr(errCh chan<- error, err error) {
	select {
	case errCh <- err:
	default:
	}
}

func fdSetAdd(set *unix.FdSet, fd int) {
	if fd < 0 {
		return
	}
	set.Bits[fd/64] |= 1 << (uint(fd) % 64)
}

func fdSetHas(set *unix.FdSet, fd int) bool {
	if fd < 0 {
		return false
	}
	return set.Bits[fd/64]&(1<<(uint(fd)%64)) != 0
}
