/*
Package answer Application Layer - 回答相关用例编排
*/
package answer

import (
	"context"

	"forum/domain/answer"
	"forum/domain/shared"
)

// ApplicationService 回答应用服务
type ApplicationService struct {
	answerRepo answer.Repository
	uow        shared.UnitOfWork
}

// NewApplicationService 创建回答应用服务
func NewApplicationService(answerRepo answer.Repository, uow shared.UnitOfWork) *ApplicationService {
	return &ApplicationService{
		answerRepo: answerRepo,
		uow:        uow,
	}
}

// AnswerQuestion 回答提问
// 新回答记录 answer.created，仓储写入成功后调度
func (s *ApplicationService) AnswerQuestion(ctx context.Context, req AnswerQuestionRequest) (*AnswerResponse, error) {
	a := answer.NewAnswer(answer.Props{
		AuthorID:   shared.UniqueEntityID(req.InstructorID),
		QuestionID: shared.UniqueEntityID(req.QuestionID),
		Content:    req.Content,
	}, "")

	if err := s.uow.Execute(ctx, func(ctx context.Context) error {
		return s.answerRepo.Create(ctx, a)
	}); err != nil {
		return nil, err
	}

	return &AnswerResponse{Answer: a}, nil
}

// EditAnswer 作者修改回答
func (s *ApplicationService) EditAnswer(ctx context.Context, req EditAnswerRequest) (*AnswerResponse, error) {
	var a *answer.Answer

	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		a, err = s.findOwned(ctx, req.AnswerID, req.AuthorID)
		if err != nil {
			return err
		}

		a.Edit(req.Content)
		return s.answerRepo.Save(ctx, a)
	})
	if err != nil {
		return nil, err
	}

	return &AnswerResponse{Answer: a}, nil
}

// DeleteAnswer 作者删除回答，附件由仓储级联删除
func (s *ApplicationService) DeleteAnswer(ctx context.Context, req DeleteAnswerRequest) error {
	return s.uow.Execute(ctx, func(ctx context.Context) error {
		a, err := s.findOwned(ctx, req.AnswerID, req.AuthorID)
		if err != nil {
			return err
		}
		return s.answerRepo.Delete(ctx, a)
	})
}

// FetchQuestionAnswers 提问的回答，按回答顺序分页
func (s *ApplicationService) FetchQuestionAnswers(ctx context.Context, req FetchQuestionAnswersRequest) (*AnswerListResponse, error) {
	answers, err := s.answerRepo.FindManyByQuestionID(ctx,
		shared.UniqueEntityID(req.QuestionID),
		shared.PaginationParams{Page: req.Page},
	)
	if err != nil {
		return nil, err
	}
	return &AnswerListResponse{Answers: answers, Page: req.Page}, nil
}

func (s *ApplicationService) findOwned(ctx context.Context, answerID, authorID string) (*answer.Answer, error) {
	id := shared.UniqueEntityID(answerID)

	a, err := s.answerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, shared.NewNotFoundError(answer.EntityName, id)
	}
	if !a.IsAuthor(shared.UniqueEntityID(authorID)) {
		return nil, answer.NewNotAuthorError(id)
	}
	return a, nil
}
