package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/prtitle/internal/models"
)

type (
	MockVCSClient struct {
		mock.Mock
	}

	MockTextGenerator struct {
		mock.Mock
	}

	MockProposer struct {
		mock.Mock
	}
)

func (m *MockVCSClient) GetPRContext(ctx context.Context, prNumber int) (models.PRContext, error) {
	args := m.Called(ctx, prNumber)
	return args.Get(0).(models.PRContext), args.Error(1)
}

func (m *MockVCSClient) UpdatePRTitle(ctx context.Context, prNumber int, title string) error {
	args := m.Called(ctx, prNumber, title)
	return args.Error(0)
}

func (m *MockVCSClient) CreateComment(ctx context.Context, prNumber int, body string) error {
	args := m.Called(ctx, prNumber, body)
	return args.Error(0)
}

func (m *MockTextGenerator) Generate(ctx context.Context, prompt string) (string, *models.TokenUsage, error) {
	args := m.Called(ctx, prompt)
	var usage *models.TokenUsage
	if u := args.Get(1); u != nil {
		usage = u.(*models.TokenUsage)
	}
	return args.String(0), usage, args.Error(2)
}

func (m *MockProposer) Propose(ctx context.Context, prCtx models.PRContext) (models.TitleProposal, error) {
	args := m.Called(ctx, prCtx)
	return args.Get(0).(models.TitleProposal), args.Error(1)
}
