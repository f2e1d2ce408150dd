package waitlist

import (
	"github.com/akeren/daredash-waitlist/config/router"
	"github.com/akeren/daredash-waitlist/internal/log"
	"gorm.io/gorm"
)

type WaitlistServiceFactory interface {
	CreateService() WaitlistService
	CreateController() *router.RESTController
}

type DefaultWaitlistServiceFactory struct {
	db      *gorm.DB
	logger  *log.Logger
	config  ServiceConfig
	service WaitlistService
}

func NewWaitlistServiceFactory(db *gorm.DB, logger *log.Logger, config ServiceConfig) WaitlistServiceFactory {
	return &DefaultWaitlistServiceFactory{
		db:     db,
		logger: logger,
		config: config,
	}
}

// CreateService returns the same service on every call so the JSON endpoint
// and the landing form share one repository and one set of counters.
func (f *DefaultWaitlistServiceFactory) CreateService() WaitlistService {
	if f.service == nil {
		f.service = NewWaitlistService(f.logger, NewWaitlistRepository(f.db), f.config)
	}
	return f.service
}

func (f *DefaultWaitlistServiceFactory) CreateController() *router.RESTController {
	return NewWaitlistController(f.CreateService())
}
