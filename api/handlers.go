package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"surveybot/db"
	"surveybot/survey"
	"surveybot/utils"
)

// ActiveQuestion is a question of the open survey, without tallies.
type ActiveQuestion struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// ActiveSurvey describes the survey currently holding the community slot.
type ActiveSurvey struct {
	ID           string           `json:"id"`
	State        survey.State     `json:"state"`
	CreatorName  string           `json:"creator_name,omitempty"`
	Questions    []ActiveQuestion `json:"questions"`
	Participants int              `json:"participants"`
	Submitted    int              `json:"submitted"`
	Deadline     *time.Time       `json:"deadline,omitempty"`
}

// HealthHandler reports liveness and community size.
func (a *App) HealthHandler(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"members": a.community.Size(),
	})
}

// ActiveSurveyHandler returns the active survey or 404.
func (a *App) ActiveSurveyHandler(w http.ResponseWriter, r *http.Request) {
	s := a.community.Active()
	if s == nil {
		utils.ErrorJSON(w, http.StatusNotFound, "no active survey")
		return
	}

	view := ActiveSurvey{
		ID:           s.ID,
		State:        s.State(),
		Participants: len(s.Participants()),
		Submitted:    s.SubmittedCount(),
	}
	if s.Creator != nil {
		view.CreatorName = s.Creator.Name
	}
	for _, q := range s.Questions {
		view.Questions = append(view.Questions, ActiveQuestion{Text: q.Text, Options: q.Options})
	}
	if d := s.Deadline(); !d.IsZero() {
		view.Deadline = &d
	}
	utils.JSON(w, http.StatusOK, view)
}

// ListSurveysHandler lists archived surveys, newest first.
func (a *App) ListSurveysHandler(w http.ResponseWriter, r *http.Request) {
	if a.archive == nil {
		utils.ErrorJSON(w, http.StatusServiceUnavailable, "archive disabled")
		return
	}
	list, err := a.archive.Recent(r.Context(), parseLimit(r.URL.Query().Get("limit")))
	if err != nil {
		a.logger.Error("list surveys failed", zap.Error(err))
		utils.ErrorJSON(w, http.StatusInternalServerError, "failed to list surveys")
		return
	}
	if list == nil {
		list = []db.Summary{}
	}
	utils.JSON(w, http.StatusOK, list)
}

// GetSurveyHandler returns one archived result.
func (a *App) GetSurveyHandler(w http.ResponseWriter, r *http.Request) {
	if a.archive == nil {
		utils.ErrorJSON(w, http.StatusServiceUnavailable, "archive disabled")
		return
	}
	id := chi.URLParam(r, "id")
	res, err := a.archive.Result(r.Context(), id)
	if err != nil {
		a.logger.Error("load survey failed", zap.String("survey_id", id), zap.Error(err))
		utils.ErrorJSON(w, http.StatusInternalServerError, "failed to load survey")
		return
	}
	if res == nil {
		utils.ErrorJSON(w, http.StatusNotFound, "survey not found")
		return
	}
	utils.JSON(w, http.StatusOK, res)
}
