package router

import (
	"fmt"
	"net/http"
	"strings"
)

func normalizePath(controller *RESTController, relativePath string) string {
	path := controller.mountPoint
	if relativePath != "" {
		path = path + "/" + relativePath
	}

	path = strings.ReplaceAll(path, "//", "/")
	if path == "" || path[0] != '/' {
		path = "/" + path
	}

	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	return path
}

func (routerService *RouterService) keyForPathAndMethod(path, method string) string {
	return fmt.Sprintf("%s-%s", method, path)
}

func (controller *RESTController) bindHandlerToController(routerService *RouterService, path, method string) {
	key := routerService.keyForPathAndMethod(path, method)

	otherController, foundPrevious := routerService.handlerToControllerMap[key]
	if foundPrevious {
		panic(fmt.Sprintf("A handler is already registered for %s '%s' by controller '%s'", method, path, otherController.name))
	}

	routerService.handlerToControllerMap[key] = controller
}

func createHandler(handler HandlerFunction) MiddlewareFunc {
	return func(c *RequestContext) {
		result := handler(c)
		if result == nil {
			GetLogger(c).Error("Handler returned a nil result", "path", c.FullPath())
			c.JSON(http.StatusInternalServerError, InternalServerErrorResult().ToJSON())
			return
		}

		if result.IsPage() {
			c.HTML(result.StatusCode, result.Template, result.Data)
			return
		}

		c.JSON(result.StatusCode, result.ToJSON())
	}
}

func NewRESTController(name, mountPoint string, prepare func(*RouterService, *RESTController)) *RESTController {
	mountPoint = strings.ReplaceAll("/"+mountPoint, "//", "/")

	return &RESTController{
		name:       name,
		mountPoint: mountPoint,
		prepare:    prepare,
	}
}

func (routerService *RouterService) addHandler(
	method string,
	controller *RESTController,
	path string,
	handler HandlerFunction,
	middlewares ...MiddlewareFunc,
) {
	controller.handlerCount++
	mountPoint := normalizePath(controller, path)
	controller.bindHandlerToController(routerService, mountPoint, method)
	routerService.engine.Handle(method, mountPoint, append(middlewares, createHandler(handler))...)
	routerService.logger.Debug("Handler registered", "method", method, "path", mountPoint)
}

func (routerService *RouterService) AddPostHandler(
	controller *RESTController,
	path string,
	handler HandlerFunction,
	middlewares ...MiddlewareFunc,
) {
	routerService.addHandler(http.MethodPost, controller, path, handler, middlewares...)
}

func (routerService *RouterService) AddGetHandler(
	controller *RESTController,
	path string,
	handler HandlerFunction,
	middlewares ...MiddlewareFunc,
) {
	routerService.addHandler(http.MethodGet, controller, path, handler, middlewares...)
}
