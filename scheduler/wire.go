package scheduler

import (
	"Fundoo/service"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewDispatcher,
	NewScheduler,
	wire.Bind(new(service.ReminderScheduler), new(*Scheduler)),
)
