// Package nav resolves navigation attempts against the route table. Each
// attempt runs the target's guard chain, follows redirects until a guard
// allows, and only then commits the new current path. A navigation that is
// redirected or abandoned leaves the committed path untouched.
package nav

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkrasnova/brandkit/internal/client/guard"
	"github.com/dkrasnova/brandkit/internal/client/signal"
	"github.com/dkrasnova/brandkit/internal/observe"
)

// maxRedirects bounds a resolution chain. Well-formed guard sets settle in
// two or three hops; anything longer is a guard cycle.
const maxRedirects = 10

var (
	// ErrRedirectLoop marks a guard cycle that never settled.
	ErrRedirectLoop = errors.New("navigation redirect loop")

	// ErrCancelled marks a navigation abandoned at the user's request
	// (unsaved changes kept).
	ErrCancelled = errors.New("navigation cancelled")
)

type route struct {
	guard guard.Guard
}

// Router is the navigation pipeline: route table, guard evaluation, and the
// committed current path.
type Router struct {
	routes   map[string]route
	fallback string
	confirm  func(message string) bool
	log      observe.Logger

	current *signal.Cell[string]
	active  any
}

// NewRouter builds an empty router. Unknown paths resolve to fallback;
// confirm is consulted when leaving a view with unsaved changes (nil means
// always leave).
func NewRouter(fallback string, confirm func(message string) bool, log observe.Logger) *Router {
	if log == nil {
		log = observe.NewNop()
	}
	return &Router{
		routes:   make(map[string]route),
		fallback: fallback,
		confirm:  confirm,
		log:      log,
		current:  signal.NewCell(""),
	}
}

// Handle registers a path with its guard. A nil guard means the route is
// always allowed.
func (r *Router) Handle(path string, g guard.Guard) {
	r.routes[path] = route{guard: g}
}

// Current is the committed path; empty until the first navigation lands.
func (r *Router) Current() signal.Signal[string] { return signal.ReadOnly(r.current) }

// SetActive records the view occupying the current route so its unsaved
// state can veto the next navigation.
func (r *Router) SetActive(view any) { r.active = view }

// Navigate resolves path and commits the destination, returning the path
// actually landed on. Guards may redirect any number of times up to the
// loop cap. The error return carries ErrCancelled, ErrRedirectLoop, or a
// context cancellation; the committed path never changes on error.
func (r *Router) Navigate(ctx context.Context, path string) (string, error) {
	if r.confirm != nil && !guard.ConfirmLeave(r.active, r.confirm) {
		return r.current.Get(), ErrCancelled
	}

	for hops := 0; hops <= maxRedirects; hops++ {
		rt, ok := r.routes[path]
		if !ok {
			r.log.Debug(ctx, "unknown path, using fallback", "path", path)
			path = r.fallback
			continue
		}

		if rt.guard != nil {
			d, err := rt.guard(ctx)
			if err != nil {
				return r.current.Get(), err
			}
			if !d.OK {
				r.log.Debug(ctx, "navigation redirected", "from", path, "to", d.Target)
				path = d.Target
				continue
			}
		}

		r.current.Set(path)
		r.active = nil
		r.log.Info(ctx, "navigation committed", "path", path)
		return path, nil
	}

	return r.current.Get(), fmt.Errorf("resolving %s: %w", path, ErrRedirectLoop)
}
