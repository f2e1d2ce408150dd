package monitoring

import (
	"github.com/akeren/daredash-waitlist/config/router"
	"github.com/akeren/daredash-waitlist/internal/log"
	"gorm.io/gorm"
)

type MonitoringControllerFactory interface {
	CreateController() *router.RESTController
}

type DefaultMonitoringControllerFactory struct {
	db     *gorm.DB
	logger *log.Logger
}

func NewMonitoringControllerFactory(db *gorm.DB, logger *log.Logger) MonitoringControllerFactory {
	return &DefaultMonitoringControllerFactory{
		db:     db,
		logger: logger,
	}
}

func (f *DefaultMonitoringControllerFactory) CreateController() *router.RESTController {
	return NewMonitoringController(f.db, f.logger)
}
