package server

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/alexedwards/flow"
)

func (s *Service) handleListNGOs(w http.ResponseWriter, r *http.Request) {
	ngos, err := s.accounts.All(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, ngos)
}

func (s *Service) handleListAllUploads(w http.ResponseWriter, r *http.Request) {
	requests, err := s.aid.All(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, requests)
}

func (s *Service) handleDeleteNGOAt(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(flow.Param(r.Context(), "index"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid index")
		return
	}

	if err := s.accounts.DeleteAt(r.Context(), index); err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

func (s *Service) handleDeletePostAt(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(flow.Param(r.Context(), "index"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid index")
		return
	}

	if err := s.aid.DeleteAt(r.Context(), index); err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

func (s *Service) handleDeleteNGO(w http.ResponseWriter, r *http.Request) {
	username := flow.Param(r.Context(), "username")

	if err := s.accounts.DeleteByUsername(r.Context(), username); err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

func (s *Service) handleDeleteRequest(w http.ResponseWriter, r *http.Request) {
	id := flow.Param(r.Context(), "id")

	if err := s.aid.DeleteByID(r.Context(), id); err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

func (s *Service) handleExportNGOs(w http.ResponseWriter, r *http.Request) {
	ngos, err := s.accounts.All(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="ngo_users.csv"`)

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"fullname", "organization", "email", "username"}); err != nil {
		s.logger.WithError(err).Error("failed to write csv header")
		return
	}

	for _, ngo := range ngos {
		row := []string{ngo.Fullname, ngo.Organization, ngo.Email, ngo.Username}
		if err := cw.Write(row); err != nil {
			s.logger.WithError(err).Error("failed to write csv row")
			return
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		s.logger.WithError(err).Error("failed to flush csv")
	}
}

func (s *Service) handleExportUploads(w http.ResponseWriter, r *http.Request) {
	requests, err := s.aid.All(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="aid_uploads.csv"`)

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "location", "description", "timestamp", "status", "helpedBy"}); err != nil {
		s.logger.WithError(err).Error("failed to write csv header")
		return
	}

	for _, request := range requests {
		row := []string{
			request.Name,
			request.Location,
			request.Description,
			request.Timestamp.Format(time.RFC3339),
			string(request.Status),
			request.HelpedBy,
		}
		if err := cw.Write(row); err != nil {
			s.logger.WithError(err).Error("failed to write csv row")
			return
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		s.logger.WithError(err).Error("failed to flush csv")
	}
}
