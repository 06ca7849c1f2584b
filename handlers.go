package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"velorace/internal/engine"
	"velorace/internal/model"
)

func (s *Server) opContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), s.timeout)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeResult answers with the operation result, using failStatus when the
// engine refused it.
func writeResult(w http.ResponseWriter, res engine.Result, failStatus int) {
	status := http.StatusOK
	if !res.Success {
		status = failStatus
	}
	writeJSON(w, status, res)
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	s.log.WithError(err).WithField("operation", op).Error("Operation failed")
	if errors.Is(err, engine.ErrInvariant) {
		http.Error(w, "Operation rejected", http.StatusConflict)
		return
	}
	http.Error(w, "Internal error", http.StatusInternalServerError)
}

// sessionUser returns the logged-in user, writing 401 when there is none.
func (s *Server) sessionUser(w http.ResponseWriter) *model.User {
	doc, err := s.engine.Snapshot()
	if err != nil {
		s.fail(w, "snapshot", err)
		return nil
	}
	u := doc.CurrentUser()
	if u == nil {
		http.Error(w, "Not logged in", http.StatusUnauthorized)
		return nil
	}
	return u
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	doc, err := s.engine.Snapshot()
	if err != nil {
		s.fail(w, "snapshot", err)
		return
	}
	for _, u := range doc.Users {
		u.Password = ""
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleGetCravings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Cravings())
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ctx, cancel := s.opContext(r)
	defer cancel()
	res, err := s.engine.Login(ctx, credentials.Identifier, credentials.Password)
	if err != nil {
		s.fail(w, "login", err)
		return
	}
	writeResult(w, res, http.StatusUnauthorized)
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var form struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		Location  string `json:"location"`
		PaceLevel string `json:"paceLevel"`
	}
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if form.Username == "" || form.Email == "" || form.Password == "" {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	ctx, cancel := s.opContext(r)
	defer cancel()
	res, err := s.engine.Signup(ctx, engine.SignupRequest{
		Username:  form.Username,
		Email:     form.Email,
		Password:  form.Password,
		Location:  form.Location,
		PaceLevel: form.PaceLevel,
	})
	if err != nil {
		s.fail(w, "signup", err)
		return
	}
	writeResult(w, res, http.StatusConflict)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.opContext(r)
	defer cancel()
	if err := s.engine.Logout(ctx); err != nil {
		s.fail(w, "logout", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddActivity(w http.ResponseWriter, r *http.Request) {
	var form struct {
		Date     string  `json:"date"`
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Type     string  `json:"type"`
		Notes    string  `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	u := s.sessionUser(w)
	if u == nil {
		return
	}

	ctx, cancel := s.opContext(r)
	defer cancel()
	act, err := s.engine.AddActivity(ctx, engine.NewActivity{
		UserID:   u.ID,
		Date:     form.Date,
		Distance: form.Distance,
		Duration: form.Duration,
		Type:     form.Type,
		Notes:    form.Notes,
	})
	if err != nil {
		s.fail(w, "addActivity", err)
		return
	}
	if act == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, act)
}

func (s *Server) handleDeleteActivity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.opContext(r)
	defer cancel()
	if err := s.engine.DeleteActivity(ctx, mux.Vars(r)["id"]); err != nil {
		s.fail(w, "deleteActivity", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePurchaseCraving(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.opContext(r)
	defer cancel()
	res, err := s.engine.PurchaseCraving(ctx, mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, "purchaseCraving", err)
		return
	}
	writeResult(w, res, http.StatusBadRequest)
}

func (s *Server) handleJoinEvent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.opContext(r)
	defer cancel()
	res, err := s.engine.JoinEvent(ctx, mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, "joinEvent", err)
		return
	}
	writeResult(w, res, http.StatusBadRequest)
}

func (s *Server) handleToggleFollow(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.opContext(r)
	defer cancel()
	if err := s.engine.ToggleFollow(ctx, mux.Vars(r)["id"]); err != nil {
		s.fail(w, "toggleFollow", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateGoals(w http.ResponseWriter, r *http.Request) {
	var goals model.Goals
	if err := json.NewDecoder(r.Body).Decode(&goals); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ctx, cancel := s.opContext(r)
	defer cancel()
	if err := s.engine.UpdateGoals(ctx, goals.WeeklyDistance, goals.MonthlyDistance); err != nil {
		s.fail(w, "updateGoals", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateShowcase(w http.ResponseWriter, r *http.Request) {
	var form struct {
		BadgeIDs []string `json:"badgeIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ctx, cancel := s.opContext(r)
	defer cancel()
	if err := s.engine.UpdateShowcase(ctx, form.BadgeIDs); err != nil {
		s.fail(w, "updateShowcase", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var form struct {
		RecipientID string `json:"recipientId"`
		Text        string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if form.RecipientID == "" || form.Text == "" {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	u := s.sessionUser(w)
	if u == nil {
		return
	}

	ctx, cancel := s.opContext(r)
	defer cancel()
	if err := s.engine.SendDirectMessage(ctx, u.ID, form.RecipientID, form.Text); err != nil {
		s.fail(w, "sendDirectMessage", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLikeFeedItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.opContext(r)
	defer cancel()
	if err := s.engine.LikeFeedItem(ctx, mux.Vars(r)["id"]); err != nil {
		s.fail(w, "likeFeedItem", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDismissNotification(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.opContext(r)
	defer cancel()
	if err := s.engine.DismissNotification(ctx, mux.Vars(r)["id"]); err != nil {
		s.fail(w, "dismissNotification", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMarkNotificationsRead(w http.ResponseWriter, r *http.Request) {
	u := s.sessionUser(w)
	if u == nil {
		return
	}

	ctx, cancel := s.opContext(r)
	defer cancel()
	if err := s.engine.MarkNotificationsRead(ctx, u.ID); err != nil {
		s.fail(w, "markNotificationsRead", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
