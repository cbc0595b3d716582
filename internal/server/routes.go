package server

import "github.com/zoodb/zoodb/pkg/router"

// Route names of the zoo application views.
const (
	RouteHome     = "home"
	RouteHabitats = "habitats"
	RouteHabitat  = "habitat"
	RouteAnimal   = "animal"
	RouteCart     = "cart"
	RouteSignup   = "signup"
	RouteLogin    = "login"
)

// AppRoutes returns the view routes of the zoo application, in match order.
func AppRoutes() *router.Table {
	return router.NewTable().
		Handle(RouteHome, "/").
		Handle(RouteHabitats, "/habitats").
		Handle(RouteHabitat, "/habitats/:id").
		Handle(RouteAnimal, "/animals/:id").
		Handle(RouteCart, "/cart").
		Handle(RouteSignup, "/signup").
		Handle(RouteLogin, "/login")
}
