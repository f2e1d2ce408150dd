package landing

import (
	"github.com/akeren/daredash-waitlist/config/router"
	"github.com/akeren/daredash-waitlist/domain/waitlist"
)

type LandingControllerFactory interface {
	CreateController() *router.RESTController
}

type DefaultLandingControllerFactory struct {
	service waitlist.WaitlistService
}

func NewLandingControllerFactory(service waitlist.WaitlistService) LandingControllerFactory {
	return &DefaultLandingControllerFactory{service: service}
}

func (f *DefaultLandingControllerFactory) CreateController() *router.RESTController {
	return NewLandingController(f.service)
}
