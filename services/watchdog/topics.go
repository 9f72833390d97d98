package watchdog

import "wdtgroom/bus"

const (
	tokHAL      = "hal"
	tokWatchdog = "watchdog"
	tokBoot     = "boot"
	tokHealth   = "health"
)

// TopicBoot carries the retained types.BootReport.
var TopicBoot = bus.T(tokHAL, tokWatchdog, tokBoot)

// TopicHealth is where groomer i publishes its retained types.HandleHealth.
func TopicHealth(i int) bus.Topic { return bus.T(tokHAL, tokWatchdog, i, tokHealth) }

// TopicHealthAll matches every groomer's health topic.
var TopicHealthAll = bus.T(tokHAL, tokWatchdog, bus.Single, tokHealth)
