package internal

import (
	"medreminder/internal/controllers"
	"medreminder/internal/providers"
	"net/http"
)

func InitRoutes(medications *controllers.MedicationController, history *controllers.HistoryController, schedule *controllers.ScheduleController, notifications *controllers.NotificationController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Handle("/medications", map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(medications.List),
		http.MethodPost: http.HandlerFunc(medications.Create),
	})
	routers.Handle("/medication", map[string]http.Handler{
		http.MethodGet:    http.HandlerFunc(medications.Get),
		http.MethodPut:    http.HandlerFunc(medications.Update),
		http.MethodDelete: http.HandlerFunc(medications.Delete),
	})
	routers.Post("/medication/log", http.HandlerFunc(medications.Log))
	routers.Get("/history", http.HandlerFunc(history.Recent))
	routers.Get("/history/archive", http.HandlerFunc(history.Archive))
	routers.Get("/schedule", http.HandlerFunc(schedule.Pending))
	routers.Handle("/notifications/permission", map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(notifications.GetPermission),
		http.MethodPut: http.HandlerFunc(notifications.SetPermission),
	})
	return routers
}
