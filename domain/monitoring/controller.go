package monitoring

import (
	"context"
	"net/http"
	"time"

	"github.com/akeren/daredash-waitlist/config/router"
	"github.com/akeren/daredash-waitlist/internal/log"
	"github.com/akeren/daredash-waitlist/internal/models"
	"gorm.io/gorm"
)

const healthCheckTimeout = 2 * time.Second

type HealthStatus struct {
	Database int `json:"database"` // 1 = reachable, 0 = unreachable
	Schema   int `json:"schema"`   // 1 = waitlist table present
	Uptime   int `json:"uptime"`   // seconds
}

func (s HealthStatus) healthy() bool {
	return s.Database == 1 && s.Schema == 1
}

type MonitoringController struct {
	db        *gorm.DB
	logger    *log.Logger
	startTime time.Time
}

func NewMonitoringController(db *gorm.DB, logger *log.Logger) *router.RESTController {
	ctrl := &MonitoringController{
		db:        db,
		logger:    logger,
		startTime: time.Now(),
	}

	return router.NewRESTController(
		"MonitoringController",
		"/",
		func(routerService *router.RouterService, controller *router.RESTController) {
			routerService.AddGetHandler(controller, "health", func(c *router.RequestContext) *router.ServiceResult {
				return ctrl.healthCheck(routerService, c)
			})
		},
	)
}

func (ctrl *MonitoringController) healthCheck(
	routerService *router.RouterService,
	c *router.RequestContext,
) *router.ServiceResult {
	logger := routerService.GetLogger(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status := ctrl.performHealthChecks(ctx, logger)
	if !status.healthy() {
		return router.ErrorResult(http.StatusServiceUnavailable, "daredash-waitlist is unhealthy", status)
	}

	return router.OKResult(status, "daredash-waitlist health check completed")
}

func (ctrl *MonitoringController) performHealthChecks(ctx context.Context, logger *log.Logger) HealthStatus {
	status := HealthStatus{
		Uptime: int(time.Since(ctrl.startTime).Seconds()),
	}

	if !ctrl.checkDatabase(ctx) {
		logger.Error("Database health check failed")
		return status
	}
	status.Database = 1

	if ctrl.db.WithContext(ctx).Migrator().HasTable(&models.WaitlistEntry{}) {
		status.Schema = 1
	} else {
		logger.Error("Waitlist table missing; run migrations")
	}

	return status
}

func (ctrl *MonitoringController) checkDatabase(ctx context.Context) bool {
	if ctrl.db == nil {
		return false
	}

	sqlDB, err := ctrl.db.DB()
	if err != nil {
		return false
	}

	return sqlDB.PingContext(ctx) == nil
}
