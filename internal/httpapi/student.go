package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/learnpath/internal/engagement"
	"github.com/abhisek/learnpath/internal/mastery"
	"github.com/abhisek/learnpath/internal/recommend"
	"github.com/abhisek/learnpath/internal/vark"
)

type recordMasteryRequest struct {
	ConceptID   string         `json:"conceptId" binding:"required"`
	ConceptName string         `json:"conceptName"`
	Inputs      mastery.Inputs `json:"inputs"`
}

// POST /v1/students/:id/mastery
func (h *Handler) RecordMastery(c *gin.Context) {
	var req recordMasteryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	rec, err := h.svc.RecordMastery(c.Request.Context(), c.Param("id"), req.ConceptID, req.ConceptName, req.Inputs)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"conceptId":   rec.ConceptID,
		"conceptName": rec.ConceptName,
		"score":       rec.Score,
		"band":        mastery.BandFor(rec.Score),
		"recordedAt":  rec.RecordedAt,
	})
}

// POST /v1/students/:id/engagement
func (h *Handler) RecordEngagement(c *gin.Context) {
	var in engagement.Inputs
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.svc.RecordEngagement(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, engagementResponse{Result: res, Label: engagement.Label(res.Score)})
}

// GET /v1/students/:id/profile
func (h *Handler) GetProfile(c *gin.Context) {
	p, err := h.svc.Profile(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	RespondOK(c, newProfileResponse(p))
}

// POST /v1/students/:id/profile
func (h *Handler) ApplyLearningEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ev, err := req.event()
	if err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.svc.ApplyLearningEvent(c.Request.Context(), c.Param("id"), ev)
	if err != nil {
		h.fail(c, err)
		return
	}
	RespondOK(c, newProfileResponse(p))
}

// GET /v1/students/:id/profile/history
func (h *Handler) ProfileHistory(c *gin.Context) {
	limit, err := queryLimit(c, 50)
	if err != nil {
		badRequest(c, err)
		return
	}
	events, err := h.svc.ProfileHistory(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	RespondOK(c, gin.H{"events": events})
}

type surveyRequest struct {
	Answers vark.Answers `json:"answers" binding:"required"`
}

// POST /v1/students/:id/profile/survey
func (h *Handler) SubmitSurvey(c *gin.Context) {
	var req surveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.svc.SetProfileFromSurvey(c.Request.Context(), c.Param("id"), req.Answers)
	if err != nil {
		h.fail(c, err)
		return
	}
	RespondOK(c, res)
}

type feedRequest struct {
	ConceptID string              `json:"conceptId" binding:"required"`
	Contents  []recommend.Content `json:"contents"`
	Limit     int                 `json:"limit"`
}

// POST /v1/students/:id/feed
func (h *Handler) Feed(c *gin.Context) {
	var req feedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ranked, err := h.svc.Feed(c.Request.Context(), c.Param("id"), req.ConceptID, req.Contents)
	if err != nil {
		h.fail(c, err)
		return
	}
	RespondOK(c, gin.H{"items": recommend.Top(ranked, req.Limit)})
}

// POST /v1/students/:id/content/:contentId/seen
func (h *Handler) MarkSeen(c *gin.Context) {
	if err := h.svc.MarkSeen(c.Request.Context(), c.Param("id"), c.Param("contentId")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /v1/students/:id/gaps
func (h *Handler) Gaps(c *gin.Context) {
	list, err := h.svc.Gaps(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	RespondOK(c, gin.H{"gaps": list})
}
