package cli

import "github.com/dkrasnova/brandkit/internal/client/guard"

// registerRoutes builds the route table. Auth screens reject signed-in
// users; everything behind sign-in additionally requires finished
// onboarding, except the onboarding wizard itself.
func (a *App) registerRoutes() {
	noAuth := guard.RequireNoAuth(a.ids, "/cards")
	authed := guard.RequireAuth(a.ids, "/login")
	onboarded := guard.Chain(authed, guard.RequireOnboarding(a.profiles))

	a.router.Handle("/login", noAuth)
	a.router.Handle("/register", noAuth)
	a.router.Handle("/password-reset", noAuth)

	for step := 1; step <= 4; step++ {
		a.router.Handle(guard.StepTarget(step), authed)
	}

	a.router.Handle("/cards", onboarded)
	a.router.Handle("/scheduled", onboarded)
	a.router.Handle("/settings", onboarded)
}
