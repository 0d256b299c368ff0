package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/learnpath/internal/practice"
	"github.com/abhisek/learnpath/internal/session"
)

// sessionView hides answers and explanations while a session is open.
func sessionView(s *session.Session) *session.Session {
	if s.Closed() {
		return s
	}
	out := *s
	out.Questions = make([]practice.Question, len(s.Questions))
	for i, q := range s.Questions {
		q.CorrectAnswer = ""
		q.Explanation = ""
		out.Questions[i] = q
	}
	return &out
}

// POST /v1/students/:id/practice
//
// The body is optional; omitted fields keep the server defaults.
func (h *Handler) StartPractice(c *gin.Context) {
	cfg := h.svc.PracticeConfig()
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&cfg); err != nil {
			badRequest(c, err)
			return
		}
	}
	sess, err := h.svc.StartPractice(c.Request.Context(), c.Param("id"), cfg)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, sessionView(sess))
}

// GET /v1/students/:id/sessions
func (h *Handler) ListSessions(c *gin.Context) {
	limit, err := queryLimit(c, 20)
	if err != nil {
		badRequest(c, err)
		return
	}
	list, err := h.svc.Sessions(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	views := make([]*session.Session, len(list))
	for i, s := range list {
		views[i] = sessionView(s)
	}
	RespondOK(c, gin.H{"sessions": views})
}

// GET /v1/sessions/:id
func (h *Handler) GetSession(c *gin.Context) {
	sess, err := h.svc.Session(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	RespondOK(c, sessionView(sess))
}

type answerRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
	Answer     string `json:"answer"`
}

// POST /v1/sessions/:id/answers
func (h *Handler) SubmitAnswer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.svc.SubmitAnswer(c.Request.Context(), c.Param("id"), req.QuestionID, req.Answer)
	if err != nil {
		h.fail(c, err)
		return
	}
	RespondOK(c, res)
}

// POST /v1/sessions/:id/finish
func (h *Handler) FinishPractice(c *gin.Context) {
	eval, err := h.svc.FinishPractice(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	RespondOK(c, eval)
}
