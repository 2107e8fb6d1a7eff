package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dkrasnova/brandkit/internal/observe"
	"github.com/dkrasnova/brandkit/internal/server/services"
)

// Server bundles the services behind the REST handlers.
type Server struct {
	accounts *services.AccountService
	profiles *services.ProfileService
	cards    *services.CardService
	log      observe.Logger
}

func NewServer(accounts *services.AccountService, profiles *services.ProfileService, cards *services.CardService, log observe.Logger) *Server {
	if log == nil {
		log = observe.NewNop()
	}
	return &Server{accounts: accounts, profiles: profiles, cards: cards, log: log}
}

// Routes assembles the full REST surface.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Recovery(s.log))
	r.Use(Logging(s.log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeData(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/api/auth/register", s.handleRegister)
	r.Post("/api/auth/login", s.handleLogin)
	r.Post("/api/auth/refresh", s.handleRefresh)
	r.Post("/api/auth/logout", s.handleLogout)
	r.Post("/api/auth/password-reset", s.handlePasswordReset)

	r.Group(func(r chi.Router) {
		r.Use(Authenticate(s.parseToken))

		r.Route("/api/profile", func(r chi.Router) {
			r.Get("/", s.handleGetProfile)
			r.Patch("/", s.handleUpdateProfile)
			r.Post("/onboard", s.handleOnboard)
			r.Post("/ai-instructions", s.handleGenerateInstructions)
		})

		r.Route("/api/cards", func(r chi.Router) {
			r.Get("/", s.handleListCards)
			r.Post("/generate", s.handleGenerateCards)
			r.Post("/{cardID}/regenerate", s.handleRegenerateCard)
			r.Patch("/{cardID}", s.handleUpdateCard)
		})

		r.Get("/api/auth/linkedin/status", s.handleLinkedInStatus)
		r.Post("/api/auth/linkedin/callback", s.handleLinkedInCallback)
		r.Delete("/api/auth/linkedin", s.handleLinkedInDisconnect)
	})

	return r
}

func (s *Server) parseToken(tokenString string) (uid, email string, err error) {
	claims, err := s.accounts.ParseAccessToken(tokenString)
	if err != nil {
		return "", "", err
	}
	return claims.UserID, claims.Email, nil
}
