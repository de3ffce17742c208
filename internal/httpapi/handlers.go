package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/PoluyanbIch/GoQuizBot/internal/service"
)

type Server struct {
	quiz      *service.Quiz
	assetsDir string
	sessions  *sessionStore
}

// NewServer serves quiz over JSON. Media files are served from assetsDir;
// with an empty assetsDir questions carry their media kind but no URL.
func NewServer(quiz *service.Quiz, assetsDir string) *Server {
	return &Server{
		quiz:      quiz,
		assetsDir: assetsDir,
		sessions:  newSessionStore(defaultSessionTTL, defaultMaxSessions),
	}
}

type mediaView struct {
	Kind string `json:"kind"`
	URL  string `json:"url,omitempty"`
}

type questionView struct {
	ID      int        `json:"id"`
	Text    string     `json:"text"`
	Media   *mediaView `json:"media,omitempty"`
	Options []string   `json:"options"`
}

type quizView struct {
	Title              string         `json:"title"`
	GateOnCompleteness bool           `json:"gate_on_completeness"`
	MessagePolicy      string         `json:"message_policy"`
	Questions          []questionView `json:"questions"`
}

type sessionView struct {
	ID         string            `json:"id"`
	State      string            `json:"state"`
	Selections map[string]string `json:"selections"`
	Unanswered []int             `json:"unanswered"`
	Complete   bool              `json:"complete"`
}

type resultView struct {
	service.ScoreResult
	Message string `json:"message"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// getQuiz lists the questions for rendering; the answer key stays private.
func (s *Server) getQuiz(w http.ResponseWriter, r *http.Request) {
	questions := s.quiz.Bank.All()
	out := quizView{
		Title:              s.quiz.Title,
		GateOnCompleteness: s.quiz.Settings.GateOnCompleteness,
		MessagePolicy:      service.PolicyName(s.quiz.Settings.Messages),
		Questions:          make([]questionView, 0, len(questions)),
	}
	for _, q := range questions {
		qv := questionView{ID: q.ID, Text: q.Text, Options: q.Options}
		if !q.Media.IsZero() {
			qv.Media = &mediaView{Kind: q.Media.Kind.String()}
			if s.assetsDir != "" {
				qv.Media.URL = "/media/" + q.Media.Ref
			}
		}
		out.Questions = append(out.Questions, qv)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	sess := s.quiz.NewSession()
	s.sessions.add(sess)
	writeJSON(w, http.StatusCreated, viewOf(sess))
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	var out sessionView
	if !s.sessions.with(chi.URLParam(r, "id"), func(sess *service.QuizSession) {
		out = viewOf(sess)
	}) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.remove(chi.URLParam(r, "id")) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) recordAnswer(w http.ResponseWriter, r *http.Request) {
	questionID, err := strconv.Atoi(chi.URLParam(r, "questionID"))
	if err != nil {
		http.Error(w, "bad question id", http.StatusBadRequest)
		return
	}
	var in struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	var (
		out       sessionView
		recordErr error
	)
	if !s.sessions.with(chi.URLParam(r, "id"), func(sess *service.QuizSession) {
		recordErr = sess.RecordAnswer(questionID, in.Answer)
		out = viewOf(sess)
	}) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	var (
		notFound *service.NotFoundError
		invalid  *service.InvalidAnswerError
	)
	switch {
	case recordErr == nil:
		writeJSON(w, http.StatusOK, out)
	case errors.As(recordErr, &notFound):
		writeJSON(w, http.StatusNotFound, map[string]any{"error": recordErr.Error()})
	case errors.As(recordErr, &invalid):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": recordErr.Error()})
	case errors.Is(recordErr, service.ErrSessionSubmitted):
		writeJSON(w, http.StatusConflict, map[string]any{"error": recordErr.Error()})
	default:
		http.Error(w, recordErr.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	var (
		result   service.ScoreResult
		scoreErr error
	)
	if !s.sessions.with(chi.URLParam(r, "id"), func(sess *service.QuizSession) {
		result, scoreErr = sess.Score()
	}) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	var incomplete *service.IncompleteSubmissionError
	if errors.As(scoreErr, &incomplete) {
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":      "answer all questions before submitting",
			"unanswered": incomplete.Unanswered,
		})
		return
	}
	if scoreErr != nil {
		http.Error(w, scoreErr.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, resultView{ScoreResult: result, Message: s.quiz.Message(result)})
}

func viewOf(sess *service.QuizSession) sessionView {
	sel := make(map[string]string)
	for id, a := range sess.Selections() {
		sel[strconv.Itoa(id)] = a
	}
	unanswered := sess.Unanswered()
	if unanswered == nil {
		unanswered = []int{}
	}
	return sessionView{
		ID:         sess.ID,
		State:      sess.State().String(),
		Selections: sel,
		Unanswered: unanswered,
		Complete:   sess.IsComplete(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
