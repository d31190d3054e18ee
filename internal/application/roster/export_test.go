package roster

import (
	"context"
	"time"
)

func (d *Dispatcher) SetSleep(sleep func(ctx context.Context, wait time.Duration) bool) {
	d.sleep = sleep
}
