/*
Package question Application Layer - 提问相关用例编排

用例只负责构造或修改聚合并调用仓储，不直接接触事件调度器：
事件由仓储在写入提交之后调度。
*/
package question

import (
	"context"
	"strings"

	"forum/domain/answer"
	"forum/domain/question"
	"forum/domain/shared"
)

// ApplicationService 提问应用服务
type ApplicationService struct {
	questionRepo question.Repository
	answerRepo   answer.Repository
	uow          shared.UnitOfWork
}

// NewApplicationService 创建提问应用服务
func NewApplicationService(
	questionRepo question.Repository,
	answerRepo answer.Repository,
	uow shared.UnitOfWork,
) *ApplicationService {
	return &ApplicationService{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		uow:          uow,
	}
}

// CreateQuestion 创建提问
func (s *ApplicationService) CreateQuestion(ctx context.Context, req CreateQuestionRequest) (*QuestionResponse, error) {
	q := question.NewQuestion(question.Props{
		AuthorID: shared.UniqueEntityID(req.AuthorID),
		Title:    req.Title,
		Content:  req.Content,
	}, "")

	if err := s.uow.Execute(ctx, func(ctx context.Context) error {
		return s.questionRepo.Create(ctx, q)
	}); err != nil {
		return nil, err
	}

	return &QuestionResponse{Question: q}, nil
}

// ChooseBestAnswer 提问作者选择最佳回答
func (s *ApplicationService) ChooseBestAnswer(ctx context.Context, req ChooseBestAnswerRequest) (*QuestionResponse, error) {
	var q *question.Question

	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		questionID := shared.UniqueEntityID(req.QuestionID)
		answerID := shared.UniqueEntityID(req.AnswerID)

		var err error
		q, err = s.questionRepo.FindByID(ctx, questionID)
		if err != nil {
			return err
		}
		if q == nil {
			return shared.NewNotFoundError(question.EntityName, questionID)
		}
		if !q.IsAuthor(shared.UniqueEntityID(req.AuthorID)) {
			return question.NewNotAuthorError(questionID)
		}

		a, err := s.answerRepo.FindByID(ctx, answerID)
		if err != nil {
			return err
		}
		if a == nil {
			return shared.NewNotFoundError(answer.EntityName, answerID)
		}
		if !a.QuestionID().Equals(questionID) {
			return question.NewAnswerOfAnotherQuestionError(questionID, answerID)
		}

		q.ChooseBestAnswer(answerID)
		return s.questionRepo.Save(ctx, q)
	})
	if err != nil {
		return nil, err
	}

	return &QuestionResponse{Question: q}, nil
}

// EditQuestion 作者修改标题或内容；标题变化时 Slug 随之更新
func (s *ApplicationService) EditQuestion(ctx context.Context, req EditQuestionRequest) (*QuestionResponse, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" && content == "" {
		return nil, shared.NewValidationError(question.EntityName, "title", "title or content is required")
	}

	var q *question.Question
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		questionID := shared.UniqueEntityID(req.QuestionID)

		var err error
		q, err = s.questionRepo.FindByID(ctx, questionID)
		if err != nil {
			return err
		}
		if q == nil {
			return shared.NewNotFoundError(question.EntityName, questionID)
		}
		if !q.IsAuthor(shared.UniqueEntityID(req.AuthorID)) {
			return question.NewNotAuthorError(questionID)
		}

		if title != "" {
			q.SetTitle(title)
		}
		if content != "" {
			q.SetContent(content)
		}
		return s.questionRepo.Save(ctx, q)
	})
	if err != nil {
		return nil, err
	}

	return &QuestionResponse{Question: q}, nil
}

// DeleteQuestion 作者删除提问，附件由仓储级联删除
func (s *ApplicationService) DeleteQuestion(ctx context.Context, req DeleteQuestionRequest) error {
	return s.uow.Execute(ctx, func(ctx context.Context) error {
		questionID := shared.UniqueEntityID(req.QuestionID)

		q, err := s.questionRepo.FindByID(ctx, questionID)
		if err != nil {
			return err
		}
		if q == nil {
			return shared.NewNotFoundError(question.EntityName, questionID)
		}
		if !q.IsAuthor(shared.UniqueEntityID(req.AuthorID)) {
			return question.NewNotAuthorError(questionID)
		}

		return s.questionRepo.Delete(ctx, q)
	})
}

// GetQuestionBySlug 按 Slug 查询提问
func (s *ApplicationService) GetQuestionBySlug(ctx context.Context, slug string) (*QuestionResponse, error) {
	q, err := s.questionRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, shared.NewNotFoundError(question.EntityName, shared.UniqueEntityID(slug))
	}
	return &QuestionResponse{Question: q}, nil
}

// FetchRecentQuestions 最新提问，每页 shared.PageSize 条
func (s *ApplicationService) FetchRecentQuestions(ctx context.Context, req FetchRecentQuestionsRequest) (*QuestionListResponse, error) {
	questions, err := s.questionRepo.FindManyRecent(ctx, shared.PaginationParams{Page: req.Page})
	if err != nil {
		return nil, err
	}
	return &QuestionListResponse{Questions: questions, Page: req.Page}, nil
}
