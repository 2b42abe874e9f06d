package httpserver

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/and161185/dev-diary/internal/convert"
	"github.com/and161185/dev-diary/internal/errs"
	"github.com/and161185/dev-diary/internal/service"
)

func queryInt(r *http.Request, name string, def int, required bool) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		if required {
			return 0, errs.Validationf("%s is required", name)
		}
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errs.Validationf("%s must be an integer", name)
	}
	return n, nil
}

func (s *Server) handleCalendarMonth(w http.ResponseWriter, r *http.Request) {
	year, err := queryInt(r, "year", 0, true)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	month, err := queryInt(r, "month", 0, true)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var projectID *int64
	if v := r.URL.Query().Get("project_id"); v != "" {
		id, err := convert.ParseID(v)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		projectID = &id
	}
	tag := strings.TrimSpace(r.URL.Query().Get("tag"))

	stats, err := s.insights.CalendarMonth(r.Context(), currentUserID(r), year, month, projectID, tag)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	days := service.FillMonth(year, time.Month(month), stats)
	writeJSON(w, http.StatusOK, convert.ToCalendarMonthResponse(year, month, days))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.insights.Summary(r.Context(), currentUserID(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToSummaryResponse(sum))
}

func (s *Server) handleMoodTrend(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days", service.DefaultTrendDays, false)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	stats, err := s.insights.MoodTrend(r.Context(), currentUserID(r), days)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToDayStatResponses(stats))
}
