package panel

import (
	"os"
	"os/signal"
)

// ListenForShutdown returns a channel that receives exactly one value after
// the first of sigs arrives. The listener goroutine stops watching signals
// and exits once it has forwarded that value.
func ListenForShutdown(sigs ...os.Signal) <-chan struct{} {
	// Both channels are buffered so neither the runtime nor the listener
	// blocks if the receiver is busy rendering.
	done := make(chan struct{}, 1)
	caught := make(chan os.Signal, 1)
	signal.Notify(caught, sigs...)

	go func() {
		<-caught
		signal.Stop(caught)
		done <- struct{}{}
	}()

	return done
}
