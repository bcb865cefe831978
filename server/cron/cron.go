package cron

import (
	"time"

	"github.com/go-co-op/gocron"
)

// NewScheduler returns a gocron scheduler in the given timezone, falling
// back to UTC when the zone is empty or unknown.
func NewScheduler(timeZone string) *gocron.Scheduler {
	location, err := time.LoadLocation(timeZone)
	if err != nil {
		location = time.UTC
	}

	scheduler := gocron.NewScheduler(location)
	scheduler.TagsUnique()

	return scheduler
}
