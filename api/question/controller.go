/*
Package question - 提问 API 控制器

参数绑定错误用 response.HandleError 返回 400；
用例错误交给 response.HandleAppError，由 errors.FromDomainError 映射状态码。
*/
package question

import (
	"net/http"

	"forum/api/ctxutil"
	"forum/api/httputil"
	"forum/api/response"
	questionapp "forum/application/question"
	"forum/domain/shared"
	"forum/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller 提问控制器
type Controller struct {
	questionService *questionapp.ApplicationService
}

// NewController 创建提问控制器
func NewController(questionService *questionapp.ApplicationService) *Controller {
	return &Controller{
		questionService: questionService,
	}
}

// RegisterRoutes 注册提问路由
// gin 要求同一位置的通配符同名，所以按 slug 查询也用 :id
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	questionGroup := router.Group("/questions")
	{
		questionGroup.POST("", c.CreateQuestion)
		questionGroup.GET("", c.FetchRecentQuestions)
		questionGroup.GET("/:id", c.GetQuestionBySlug)
		questionGroup.PUT("/:id", c.EditQuestion)
		questionGroup.DELETE("/:id", c.DeleteQuestion)
		questionGroup.PATCH("/:id/best-answer", c.ChooseBestAnswer)
	}
}

// CreateQuestion 创建提问
// POST /api/v1/questions
func (c *Controller) CreateQuestion(ctx *gin.Context) {
	var req questionapp.CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	req.AuthorID = httputil.ActorID(ctx, req.AuthorID)
	if req.AuthorID == "" {
		missingActor(ctx)
		return
	}

	resp, err := c.questionService.CreateQuestion(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, questionapp.ToDTO(resp.Question), "question created successfully")
}

// FetchRecentQuestions 最新提问
// GET /api/v1/questions?page=1
func (c *Controller) FetchRecentQuestions(ctx *gin.Context) {
	page, err := httputil.Page(ctx)
	if err != nil {
		response.HandleError(ctx, err, "page must be a number", http.StatusBadRequest)
		return
	}

	resp, err := c.questionService.FetchRecentQuestions(ctxutil.WithRequestID(ctx), questionapp.FetchRecentQuestionsRequest{Page: page})
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, questionapp.ToDTOs(resp.Questions), response.Pagination{
		Page:     resp.Page,
		PageSize: shared.PageSize,
		Count:    len(resp.Questions),
	}, "questions retrieved successfully")
}

// GetQuestionBySlug 按 slug 查询
// GET /api/v1/questions/:slug
func (c *Controller) GetQuestionBySlug(ctx *gin.Context) {
	resp, err := c.questionService.GetQuestionBySlug(ctxutil.WithRequestID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, questionapp.ToDTO(resp.Question), "question retrieved successfully")
}

// EditQuestion 作者修改提问
// PUT /api/v1/questions/:id
func (c *Controller) EditQuestion(ctx *gin.Context) {
	var req questionapp.EditQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	req.QuestionID = ctx.Param("id")
	req.AuthorID = httputil.ActorID(ctx, req.AuthorID)
	if req.AuthorID == "" {
		missingActor(ctx)
		return
	}

	resp, err := c.questionService.EditQuestion(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, questionapp.ToDTO(resp.Question), "question updated successfully")
}

// DeleteQuestion 删除提问
// DELETE /api/v1/questions/:id，调用者由 X-User-ID 指定
func (c *Controller) DeleteQuestion(ctx *gin.Context) {
	authorID := httputil.ActorID(ctx, "")
	if authorID == "" {
		missingActor(ctx)
		return
	}

	err := c.questionService.DeleteQuestion(ctxutil.WithRequestID(ctx), questionapp.DeleteQuestionRequest{
		QuestionID: ctx.Param("id"),
		AuthorID:   authorID,
	})
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleNoContent(ctx)
}

// ChooseBestAnswer 提问作者选择最佳回答
// PATCH /api/v1/questions/:id/best-answer
func (c *Controller) ChooseBestAnswer(ctx *gin.Context) {
	var req questionapp.ChooseBestAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	req.QuestionID = ctx.Param("id")
	req.AuthorID = httputil.ActorID(ctx, req.AuthorID)
	if req.AuthorID == "" {
		missingActor(ctx)
		return
	}

	resp, err := c.questionService.ChooseBestAnswer(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, questionapp.ToDTO(resp.Question), "best answer chosen")
}

func missingActor(ctx *gin.Context) {
	response.HandleError(ctx, errors.BadRequest("author is required"), "author is required", http.StatusBadRequest)
}
