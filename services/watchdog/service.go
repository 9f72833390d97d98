package watchdog

import (
	"context"
	"sync"
	"time"

	"wdtgroom/bus"
	"wdtgroom/services/config"
	"wdtgroom/types"
	"wdtgroom/x/conv"
)

// Service is the periodic source for the groomers. Each groomer runs in its
// own goroutine and is the only code touching its handle; the dispatcher
// only signals them.
type Service struct {
	groomers []*Groomer
	period   time.Duration
	groom    bool

	// Log receives diagnostic lines; nil logs with println.
	Log func(string)
}

// NewService builds a service over groomers using cfg's period and groom
// switch. cfg should already be normalised.
func NewService(groomers []*Groomer, cfg types.WatchdogConfig) *Service {
	return &Service{
		groomers: groomers,
		period:   config.Period(cfg),
		groom:    cfg.Groom,
	}
}

// Start the watchdog service.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.serviceLoop(ctx, conn)
	return nil
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(config.TopicWatchdog)
	defer conn.Unsubscribe(cfgSub)

	var wg sync.WaitGroup
	kicks := make([]chan struct{}, len(s.groomers))
	for i, g := range s.groomers {
		kick := make(chan struct{}, 1)
		kicks[i] = kick
		g := g
		wg.Add(1)
		go func() {
			defer wg.Done()
			runGroomer(ctx, conn, g, kick)
		}()
	}
	defer wg.Wait()

	tick := time.NewTicker(s.period)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log("[watchdog] service stopping")
			return
		case <-tick.C:
			if !s.groom {
				continue
			}
			for _, k := range kicks {
				// A groomer still busy with the previous period keeps its
				// pending signal.
				select {
				case k <- struct{}{}:
				default:
				}
			}
		case msg := <-cfgSub.Channel():
			if s.applyConfig(msg.Payload) {
				tick.Reset(s.period)
			}
		}
	}
}

// applyConfig reports whether the period changed.
func (s *Service) applyConfig(payload any) bool {
	c, ok := config.FromPayload(payload)
	if !ok {
		s.log("[watchdog] ignoring config payload")
		return false
	}
	c, err := config.Normalize(c)
	if err != nil {
		s.log("[watchdog] bad config: " + err.Error())
		return false
	}
	if c.Handles != len(s.groomers) {
		s.log("[watchdog] handle count is fixed at activation, keeping " + conv.I(len(s.groomers)))
	}
	if c.Groom != s.groom {
		s.groom = c.Groom
		if s.groom {
			s.log("[watchdog] grooming resumed")
		} else {
			s.log("[watchdog] grooming stopped, expect a watchdog reset")
		}
	}
	p := config.Period(c)
	if p == s.period {
		return false
	}
	s.period = p
	s.log("[watchdog] groom period set to " + conv.I(c.PeriodMs) + " ms")
	return true
}

func runGroomer(ctx context.Context, conn *bus.Connection, g *Groomer, kick <-chan struct{}) {
	topic := TopicHealth(g.Index())
	for {
		select {
		case <-ctx.Done():
			return
		case <-kick:
			h := g.Groom()
			conn.Publish(conn.NewMessage(topic, h, true))
		}
	}
}

func (s *Service) log(msg string) {
	if s.Log != nil {
		s.Log(msg)
		return
	}
	println(msg)
}
