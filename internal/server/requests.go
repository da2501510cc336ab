package server

import (
	"encoding/json"
	"net/http"

	"aidconnect/internal/aid"

	"github.com/alexedwards/flow"
)

const maxUploadBytes = 10 << 20

func (s *Service) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid multipart payload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "No file received")
		return
	}
	defer file.Close()

	request, err := s.aid.Submit(r.Context(), aid.SubmitInput{
		Name:        r.FormValue("name"),
		Location:    r.FormValue("location"),
		Description: r.FormValue("description"),
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		File:        file,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"message": "File uploaded successfully",
		"id":      request.ID,
		"url":     request.ImageURL,
	})
}

func (s *Service) handleListUploads(w http.ResponseWriter, r *http.Request) {
	session, err := s.sessionFromContext(r.Context())
	if err != nil {
		s.writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	requests, err := s.aid.ListFor(r.Context(), session.Username)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, requests)
}

type claimRequest struct {
	NGOName string `json:"ngoName"`
}

func (s *Service) handleClaimUpload(w http.ResponseWriter, r *http.Request) {
	id := flow.Param(r.Context(), "id")

	var body claimRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid json payload")
		return
	}

	if err := s.aid.Claim(r.Context(), id, body.NGOName); err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"message": "claimed"})
}

func (s *Service) handleMarkHelped(w http.ResponseWriter, r *http.Request) {
	id := flow.Param(r.Context(), "id")

	if err := s.aid.MarkHelped(r.Context(), id); err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"message": "helped"})
}

func (s *Service) handleProfile(w http.ResponseWriter, r *http.Request) {
	session, err := s.sessionFromContext(r.Context())
	if err != nil {
		s.writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	profile, err := s.accounts.Profile(r.Context(), session.Username)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	claimed, err := s.aid.ClaimedBy(r.Context(), session.Username)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"ngo":      profile,
		"requests": claimed,
	})
}
