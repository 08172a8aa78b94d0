package goroutine

import (
	"runtime/debug"

	"github.com/tokenmart/goapi/base/log"
)

var (
	logger = log.Log()
)

type PanicEvent struct {
	Panic interface{}
	Stack []byte
}

// RecoverableGo runs f on a new goroutine, recovering and logging panics.
// The returned channel delivers the panic event, or closes when f returns.
func RecoverableGo(f func()) chan *PanicEvent {
	panicChan := make(chan *PanicEvent, 1)

	go func() {
		defer func() {
			if p := recover(); p != nil {
				stack := debug.Stack()
				logger.WithFields(log.Fields{
					"err":   p,
					"stack": string(stack),
				}).Error("panic")
				panicChan <- &PanicEvent{p, stack}
			} else {
				close(panicChan)
			}
		}()

		f()
	}()

	return panicChan
}
