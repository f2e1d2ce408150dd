package domain

import (
	"github.com/akeren/daredash-waitlist/config"
	"github.com/akeren/daredash-waitlist/domain/landing"
	"github.com/akeren/daredash-waitlist/domain/monitoring"
	"github.com/akeren/daredash-waitlist/domain/waitlist"
)

func SetupCoreDomain(appConfig *config.ApplicationConfig) {
	rs := appConfig.RouterService

	waitlistFactory := waitlist.NewWaitlistServiceFactory(appConfig.DB, appConfig.Logger, waitlist.ServiceConfig{
		DuplicateCheck: waitlist.DuplicateCheck(appConfig.Config.DuplicateCheck),
		Metrics:        waitlist.NewSubmissionMetrics(rs.MetricsRegisterer()),
	})

	rs.MountController(monitoring.NewMonitoringControllerFactory(appConfig.DB, appConfig.Logger).CreateController())
	rs.MountController(waitlistFactory.CreateController())
	rs.MountController(landing.NewLandingControllerFactory(waitlistFactory.CreateService()).CreateController())
}
