package httpapi

import (
	"net/http"

	"github.com/dkrasnova/brandkit/internal/server/models"
	"github.com/dkrasnova/brandkit/internal/server/services"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.profiles.Get(r.Context(), callerUID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var patch services.ProfilePatch
	if err := decodeJSON(r, &patch); err != nil {
		writeServiceError(w, err)
		return
	}

	p, err := s.profiles.Update(r.Context(), callerUID(r.Context()), patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

type onboardRequest struct {
	Step int             `json:"step"`
	Data *models.Profile `json:"data"`
}

func (s *Server) handleOnboard(w http.ResponseWriter, r *http.Request) {
	var req onboardRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}

	p, err := s.profiles.Onboard(r.Context(), callerUID(r.Context()), req.Step, req.Data)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

func (s *Server) handleGenerateInstructions(w http.ResponseWriter, r *http.Request) {
	p, err := s.profiles.GenerateInstructions(r.Context(), callerUID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

func (s *Server) handleLinkedInStatus(w http.ResponseWriter, r *http.Request) {
	connected, err := s.profiles.LinkedInStatus(r.Context(), callerUID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"connected": connected})
}

type linkedInCallbackRequest struct {
	Code  string `json:"code"`
	State string `json:"state"`
}

func (s *Server) handleLinkedInCallback(w http.ResponseWriter, r *http.Request) {
	var req linkedInCallbackRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}

	if err := s.profiles.LinkedInConnect(r.Context(), callerUID(r.Context()), req.Code, req.State); err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"connected": true})
}

func (s *Server) handleLinkedInDisconnect(w http.ResponseWriter, r *http.Request) {
	if err := s.profiles.LinkedInDisconnect(r.Context(), callerUID(r.Context())); err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"connected": false})
}
