//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"medreminder/internal"
	"medreminder/internal/controllers"
	"medreminder/internal/notify"
	notifyIfaces "medreminder/internal/notify/interfaces"
	"medreminder/internal/providers"
	"medreminder/internal/reminder"
	"medreminder/internal/services"
	"medreminder/internal/storage"
	"medreminder/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		storage.NewCompressor,
		storage.NewFileStore,
		storage.NewHistoryArchive,

		notify.NewBackend,
		notify.NewPlayer,
		notify.NewGate,
		wire.Bind(new(notifyIfaces.SinkInterface), new(*notify.Gate)),
		wire.Bind(new(notifyIfaces.PermissionInterface), new(*notify.Gate)),

		reminder.NewSystemClock,
		reminder.NewScheduler,
		services.NewMedicationService,
		services.NewHistoryService,
		reminder.NewMaintenance,

		controllers.NewMedicationController,
		controllers.NewHistoryController,
		controllers.NewScheduleController,
		controllers.NewNotificationController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
