package httpapi

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/learnpath/internal/engagement"
	"github.com/abhisek/learnpath/internal/logger"
	"github.com/abhisek/learnpath/internal/mastery"
	"github.com/abhisek/learnpath/internal/personalize"
	"github.com/abhisek/learnpath/internal/vark"
)

type Handler struct {
	log *logger.Logger
	svc *personalize.Service
}

func NewHandler(log *logger.Logger, svc *personalize.Service) *Handler {
	return &Handler{
		log: log.With("handler", "personalize"),
		svc: svc,
	}
}

// queryLimit parses ?limit=, returning def when it is absent.
func queryLimit(c *gin.Context, def int) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid limit %q", raw)
	}
	return n, nil
}

type masteryResponse struct {
	Score int          `json:"score"`
	Band  mastery.Band `json:"band"`
}

// POST /v1/mastery/score
func (h *Handler) ScoreMastery(c *gin.Context) {
	var in mastery.Inputs
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	score := mastery.Score(in)
	RespondOK(c, masteryResponse{Score: score, Band: mastery.BandFor(score)})
}

type engagementResponse struct {
	engagement.Result
	Label string `json:"label"`
}

// POST /v1/engagement/score
func (h *Handler) ScoreEngagement(c *gin.Context) {
	var in engagement.Inputs
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	res := engagement.Score(in)
	RespondOK(c, engagementResponse{Result: res, Label: engagement.Label(res.Score)})
}

type eventRequest struct {
	LearningMode   string  `json:"learningMode" binding:"required"`
	MasteryGain    float64 `json:"masteryGain"`
	EngagementGain float64 `json:"engagementGain"`
}

func (r eventRequest) event() (vark.Event, error) {
	mode, err := vark.ParseMode(r.LearningMode)
	if err != nil {
		return vark.Event{}, err
	}
	return vark.Event{Mode: mode, MasteryGain: r.MasteryGain, EngagementGain: r.EngagementGain}, nil
}

type varkUpdateRequest struct {
	// Profile defaults to the uniform profile.
	Profile *vark.Profile `json:"profile"`
	Event   eventRequest  `json:"event" binding:"required"`
}

type profileResponse struct {
	vark.Profile
	Dominant  vark.Mode `json:"dominant"`
	Secondary vark.Mode `json:"secondary"`
}

func newProfileResponse(p vark.Profile) profileResponse {
	primary, secondary := p.Dominant()
	return profileResponse{Profile: p, Dominant: primary, Secondary: secondary}
}

// POST /v1/vark/update
func (h *Handler) UpdateVARK(c *gin.Context) {
	var req varkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ev, err := req.Event.event()
	if err != nil {
		badRequest(c, err)
		return
	}
	current := vark.Default()
	if req.Profile != nil {
		current = *req.Profile
	}
	RespondOK(c, newProfileResponse(vark.Update(current, ev)))
}

// GET /v1/vark/survey
func (h *Handler) SurveyQuestions(c *gin.Context) {
	RespondOK(c, gin.H{"questions": vark.SurveyQuestions()})
}
