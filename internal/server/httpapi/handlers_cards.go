package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dkrasnova/brandkit/internal/server/services"
)

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	list, err := s.cards.List(r.Context(), callerUID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, list)
}

func (s *Server) handleGenerateCards(w http.ResponseWriter, r *http.Request) {
	list, err := s.cards.Generate(r.Context(), callerUID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, list)
}

func (s *Server) handleRegenerateCard(w http.ResponseWriter, r *http.Request) {
	card, err := s.cards.Regenerate(r.Context(), callerUID(r.Context()), chi.URLParam(r, "cardID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, card)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	var patch services.CardPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeServiceError(w, err)
		return
	}

	card, err := s.cards.Update(r.Context(), callerUID(r.Context()), chi.URLParam(r, "cardID"), patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, card)
}
