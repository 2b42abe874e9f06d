package httpserver

import (
	"net/http"

	"github.com/and161185/dev-diary/internal/convert"
	"github.com/and161185/dev-diary/internal/model"
)

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	ps, err := s.projects.List(r.Context(), currentUserID(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToProjectResponses(ps))
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var in convert.ProjectRequest
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	var name string
	if in.Name != nil {
		name = *in.Name
	}
	p, err := s.projects.Create(r.Context(), currentUserID(r), name, in.Description)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, convert.ToProjectResponse(*p))
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.projects.Get(r.Context(), currentUserID(r), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToProjectResponse(*p))
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var in convert.ProjectRequest
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.projects.Update(r.Context(), currentUserID(r), id, model.ProjectPatch{
		Name:        in.Name,
		Description: in.Description,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToProjectResponse(*p))
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.projects.Delete(r.Context(), currentUserID(r), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.MessageResponse{Message: "Project deleted successfully"})
}

// --- tags ---

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	ts, err := s.tags.List(r.Context(), currentUserID(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToTagResponses(ts))
}

func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	var in convert.TagRequest
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	t, err := s.tags.Create(r.Context(), currentUserID(r), in.Name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, convert.TagResponse{ID: t.ID, Name: t.Name})
}

func (s *Server) handleDeleteTag(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.tags.Delete(r.Context(), currentUserID(r), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.MessageResponse{Message: "Tag deleted successfully"})
}
