package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/neurobridge-profiling/internal/http/response"
	"github.com/yungbote/neurobridge-profiling/internal/pkg/dbctx"
	perrors "github.com/yungbote/neurobridge-profiling/internal/pkg/errors"
	"github.com/yungbote/neurobridge-profiling/internal/services"
)

type ProfilingHandler struct {
	profiling services.ProfilingService
}

func NewProfilingHandler(profiling services.ProfilingService) *ProfilingHandler {
	return &ProfilingHandler{profiling: profiling}
}

type submitReflectionRequest struct {
	Why  string `json:"why"`
	Goal string `json:"goal"`
}

type verifyDifficultyRequest struct {
	Difficulty string `json:"difficulty" binding:"required"`
}

// POST /api/profiling/sessions
func (h *ProfilingHandler) CreateSession(c *gin.Context) {
	view, err := h.profiling.CreateSession(dbctx.Context{Ctx: c.Request.Context()})
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, view)
}

// GET /api/profiling/sessions
func (h *ProfilingHandler) ListSessions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	views, err := h.profiling.ListSessions(dbctx.Context{Ctx: c.Request.Context()}, limit)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"sessions": views})
}

// GET /api/profiling/sessions/:id
func (h *ProfilingHandler) GetSession(c *gin.Context) {
	id, ok := sessionIDParam(c)
	if !ok {
		return
	}
	view, err := h.profiling.GetSession(dbctx.Context{Ctx: c.Request.Context()}, id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, view)
}

// GET /api/profiling/questions
func (h *ProfilingHandler) ListQuestions(c *gin.Context) {
	response.RespondOK(c, gin.H{"questions": h.profiling.Questions()})
}

// GET /api/profiling/questions/:id
func (h *ProfilingHandler) GetQuestion(c *gin.Context) {
	q, err := h.profiling.Question(c.Param("id"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, q)
}

// GET /api/profiling/modules/:module/questions
func (h *ProfilingHandler) ListModuleQuestions(c *gin.Context) {
	qs, err := h.profiling.QuestionsByModule(c.Param("module"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"module": c.Param("module"), "questions": qs})
}

// POST /api/profiling/sessions/:id/responses
func (h *ProfilingHandler) SubmitResponse(c *gin.Context) {
	id, ok := sessionIDParam(c)
	if !ok {
		return
	}
	var req services.SubmitResponseInput
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.profiling.SubmitResponse(dbctx.Context{Ctx: c.Request.Context()}, id, req)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /api/profiling/sessions/:id/reflection
func (h *ProfilingHandler) SubmitReflection(c *gin.Context) {
	id, ok := sessionIDParam(c)
	if !ok {
		return
	}
	var req submitReflectionRequest
	if !bindJSON(c, &req) {
		return
	}
	accepted, err := h.profiling.SubmitReflection(dbctx.Context{Ctx: c.Request.Context()}, id, req.Why, req.Goal)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"accepted": accepted})
}

// GET /api/profiling/sessions/:id/progress
func (h *ProfilingHandler) Progress(c *gin.Context) {
	id, ok := sessionIDParam(c)
	if !ok {
		return
	}
	rep, err := h.profiling.Progress(dbctx.Context{Ctx: c.Request.Context()}, id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, rep)
}

// POST /api/profiling/sessions/:id/difficulty
func (h *ProfilingHandler) VerifyDifficulty(c *gin.Context) {
	id, ok := sessionIDParam(c)
	if !ok {
		return
	}
	var req verifyDifficultyRequest
	if !bindJSON(c, &req) {
		return
	}
	v, err := h.profiling.VerifyDifficulty(dbctx.Context{Ctx: c.Request.Context()}, id, req.Difficulty)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, v)
}

// POST /api/profiling/sessions/:id/complete
func (h *ProfilingHandler) Complete(c *gin.Context) {
	id, ok := sessionIDParam(c)
	if !ok {
		return
	}
	res, err := h.profiling.Complete(dbctx.Context{Ctx: c.Request.Context()}, id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, res)
}

// GET /api/profiling/sessions/:id/blueprint
func (h *ProfilingHandler) Blueprint(c *gin.Context) {
	id, ok := sessionIDParam(c)
	if !ok {
		return
	}
	bp, err := h.profiling.Blueprint(dbctx.Context{Ctx: c.Request.Context()}, id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, bp)
}

func sessionIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_session_id", fmt.Errorf("session id %q: %w", c.Param("id"), perrors.ErrInvalidArgument))
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("request body required")
		}
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return false
	}
	return true
}
