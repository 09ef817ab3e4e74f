package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/klasurapp/backend/internal/model"
	"github.com/klasurapp/backend/internal/response"
	"github.com/klasurapp/backend/internal/service"
	"github.com/klasurapp/backend/internal/validator"
)

type AnswerHandler struct {
	answerService *service.AnswerService
}

func NewAnswerHandler(answerService *service.AnswerService) *AnswerHandler {
	return &AnswerHandler{answerService: answerService}
}

// Submit godoc
// POST /api/v1/answers
func (h *AnswerHandler) Submit(c *gin.Context) {
	var req model.SubmitAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	answer := req.ToAnswer()
	if err := h.answerService.Submit(c.Request.Context(), answer); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"answer": model.NewAnswerPayload(answer)})
}

// GetByID godoc
// GET /api/v1/answers/:id
func (h *AnswerHandler) GetByID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	answer, err := h.answerService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"answer": model.NewAnswerPayload(answer)})
}

// GetByTask godoc
// GET /api/v1/tasks/:id/answers
func (h *AnswerHandler) GetByTask(c *gin.Context) {
	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	answers, err := h.answerService.ListByTask(c.Request.Context(), taskID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"answers": answerPayloads(answers)})
}

// GetByUser godoc
// GET /api/v1/users/:id/answers
func (h *AnswerHandler) GetByUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	answers, err := h.answerService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"answers": answerPayloads(answers)})
}

// Grade godoc
// POST /api/v1/answers/:id/grade
func (h *AnswerHandler) Grade(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req model.GradeAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	answer, err := h.answerService.Grade(c.Request.Context(), id, req.Score, req.Feedback)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"answer": model.NewAnswerPayload(answer)})
}

// Evaluate godoc
// GET /api/v1/answers/:id/evaluation
func (h *AnswerHandler) Evaluate(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	correct, err := h.answerService.Evaluate(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"correct": correct})
}

// Delete godoc
// DELETE /api/v1/answers/:id
func (h *AnswerHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	deleted, err := h.answerService.Delete(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": deleted})
}

func answerPayloads(answers []model.Answer) []model.AnswerPayload {
	payloads := make([]model.AnswerPayload, 0, len(answers))
	for _, a := range answers {
		payloads = append(payloads, model.NewAnswerPayload(a))
	}
	return payloads
}
