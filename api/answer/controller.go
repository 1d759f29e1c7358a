package answer

import (
	"net/http"

	"forum/api/ctxutil"
	"forum/api/httputil"
	"forum/api/response"
	answerapp "forum/application/answer"
	"forum/domain/shared"
	"forum/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller 回答控制器
type Controller struct {
	answerService *answerapp.ApplicationService
}

// NewController 创建回答控制器
func NewController(answerService *answerapp.ApplicationService) *Controller {
	return &Controller{
		answerService: answerService,
	}
}

// RegisterRoutes 注册回答路由
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/questions/:id/answers", c.AnswerQuestion)
	router.GET("/questions/:id/answers", c.FetchQuestionAnswers)

	answerGroup := router.Group("/answers")
	{
		answerGroup.PUT("/:id", c.EditAnswer)
		answerGroup.DELETE("/:id", c.DeleteAnswer)
	}
}

// AnswerQuestion 回答提问
// POST /api/v1/questions/:id/answers
func (c *Controller) AnswerQuestion(ctx *gin.Context) {
	var req answerapp.AnswerQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	req.QuestionID = ctx.Param("id")
	req.InstructorID = httputil.ActorID(ctx, req.InstructorID)
	if req.InstructorID == "" {
		missingActor(ctx)
		return
	}

	resp, err := c.answerService.AnswerQuestion(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, answerapp.ToDTO(resp.Answer), "answer created successfully")
}

// FetchQuestionAnswers 提问下的回答
// GET /api/v1/questions/:id/answers?page=1
func (c *Controller) FetchQuestionAnswers(ctx *gin.Context) {
	page, err := httputil.Page(ctx)
	if err != nil {
		response.HandleError(ctx, err, "page must be a number", http.StatusBadRequest)
		return
	}

	resp, err := c.answerService.FetchQuestionAnswers(ctxutil.WithRequestID(ctx), answerapp.FetchQuestionAnswersRequest{
		QuestionID: ctx.Param("id"),
		Page:       page,
	})
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, answerapp.ToDTOs(resp.Answers), response.Pagination{
		Page:     resp.Page,
		PageSize: shared.PageSize,
		Count:    len(resp.Answers),
	}, "answers retrieved successfully")
}

// EditAnswer 作者修改回答
// PUT /api/v1/answers/:id
func (c *Controller) EditAnswer(ctx *gin.Context) {
	var req answerapp.EditAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	req.AnswerID = ctx.Param("id")
	req.AuthorID = httputil.ActorID(ctx, req.AuthorID)
	if req.AuthorID == "" {
		missingActor(ctx)
		return
	}

	resp, err := c.answerService.EditAnswer(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, answerapp.ToDTO(resp.Answer), "answer updated successfully")
}

// DeleteAnswer 作者删除回答
// DELETE /api/v1/answers/:id
func (c *Controller) DeleteAnswer(ctx *gin.Context) {
	authorID := httputil.ActorID(ctx, "")
	if authorID == "" {
		missingActor(ctx)
		return
	}

	err := c.answerService.DeleteAnswer(ctxutil.WithRequestID(ctx), answerapp.DeleteAnswerRequest{
		AnswerID: ctx.Param("id"),
		AuthorID: authorID,
	})
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleNoContent(ctx)
}

func missingActor(ctx *gin.Context) {
	response.HandleError(ctx, errors.BadRequest("author is required"), "author is required", http.StatusBadRequest)
}
