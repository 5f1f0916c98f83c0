package metrics

import (
	"context"
	"time"

	"github.com/freightops/loadmatch/core/events"
	coremetrics "github.com/freightops/loadmatch/core/metrics"
	"github.com/freightops/loadmatch/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records metrics for
// events. It stops when the context is canceled.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.OutreachSink) {
	if bus == nil || sink == nil {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				switch e := ev.(type) {
				case events.MatchEvent:
					if r, ok := sink.(coremetrics.MatchPassRecorder); ok {
						_ = r.RecordMatchPass(coremetrics.MatchPass{
							LoadID:     e.LoadID,
							PoolSize:   e.PoolSize,
							Candidates: e.Candidates,
							TopScore:   e.TopScore,
							MeanScore:  e.MeanScore,
							Time:       time.Now(),
						})
					}
				}
			}
		}
	}()
}
