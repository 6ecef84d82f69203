package goroutine

import (
	"context"
	"runtime/debug"
	"sync"

	"github.com/sirupsen/logrus"
)

// Group запускает горутины с перехватом panic и позволяет дождаться их при остановке сервера.
type Group struct {
	log logrus.FieldLogger
	wg  sync.WaitGroup
}

func NewGroup(log logrus.FieldLogger) *Group {
	return &Group{log: log}
}

// Go запускает fn в отдельной горутине. Panic логируется вместе со стеком и не роняет процесс.
func (g *Group) Go(ctx context.Context, name string, fn func(context.Context)) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				g.log.WithFields(logrus.Fields{
					"task":  name,
					"panic": r,
					"stack": string(debug.Stack()),
				}).Error("goroutine: panic recovered")
			}
		}()
		fn(ctx)
	}()
}

// Wait ждет завершения запущенных горутин или отмены ctx.
func (g *Group) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
