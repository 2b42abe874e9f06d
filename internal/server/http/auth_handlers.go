package httpserver

import (
	"errors"
	"net/http"

	"github.com/and161185/dev-diary/internal/convert"
	"github.com/and161185/dev-diary/internal/errs"
	"go.uber.org/zap"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in convert.Credentials
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	u, err := s.auth.Register(r.Context(), in.Email, in.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, convert.ToUserResponse(*u))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in convert.Credentials
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	tok, u, err := s.auth.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.cookies.Set(w, r, tok.RefreshToken); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Info("login", zap.Int64("user_id", u.ID))
	writeJSON(w, http.StatusOK, convert.ToTokenResponse(tok))
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	raw, ok, err := s.cookies.Get(r)
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Refresh token not found")
		return
	}
	if err != nil || raw == "" {
		writeDetail(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}
	tok, err := s.auth.Refresh(r.Context(), raw)
	switch {
	case errors.Is(err, errs.ErrInvalidToken):
		writeDetail(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	case errors.Is(err, errs.ErrUserNotFound):
		writeDetail(w, http.StatusUnauthorized, "User not found")
		return
	case err != nil:
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.ToTokenResponse(tok))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.cookies.Clear(w, r); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, convert.MessageResponse{Message: "Logged out successfully"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromCtx(r.Context())
	writeJSON(w, http.StatusOK, convert.ToUserResponse(*u))
}
