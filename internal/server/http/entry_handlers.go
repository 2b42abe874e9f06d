package httpserver

import (
	"net/http"
	"strings"

	"github.com/and161185/dev-diary/internal/convert"
	"github.com/and161185/dev-diary/internal/model"
	"github.com/go-chi/chi/v5"
)

func currentUserID(r *http.Request) int64 {
	u, _ := UserFromCtx(r.Context())
	return u.ID
}

func pathID(r *http.Request) (int64, error) {
	return convert.ParseID(chi.URLParam(r, "id"))
}

func entryFilter(r *http.Request) (model.EntryFilter, error) {
	q := r.URL.Query()
	var f model.EntryFilter
	if v := q.Get("project_id"); v != "" {
		id, err := convert.ParseID(v)
		if err != nil {
			return f, err
		}
		f.ProjectID = &id
	}
	f.Tag = strings.TrimSpace(q.Get("tag"))
	f.Search = strings.TrimSpace(q.Get("search"))
	if v := q.Get("date_from"); v != "" {
		d, err := convert.ParseDate(v)
		if err != nil {
			return f, err
		}
		f.DateFrom = &d
	}
	if v := q.Get("date_to"); v != "" {
		d, err := convert.ParseDate(v)
		if err != nil {
			return f, err
		}
		f.DateTo = &d
	}
	return f, nil
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	f, err := entryFilter(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	es, err := s.entries.List(r.Context(), currentUserID(r), f)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToEntryResponses(es))
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var in convert.EntryCreateRequest
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	ne, err := convert.FromEntryCreate(in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	e, err := s.entries.Create(r.Context(), currentUserID(r), ne)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, convert.ToEntryResponse(*e))
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	e, err := s.entries.Get(r.Context(), currentUserID(r), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToEntryResponse(*e))
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var in convert.EntryUpdateRequest
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := convert.FromEntryUpdate(in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	e, err := s.entries.Update(r.Context(), currentUserID(r), id, p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToEntryResponse(*e))
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.entries.Delete(r.Context(), currentUserID(r), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.MessageResponse{Message: "Entry deleted successfully"})
}
