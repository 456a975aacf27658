package github

import (
	"context"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/mock"
)

type MockPRService struct {
	mock.Mock
}

func (m *MockPRService) Edit(ctx context.Context, owner, repo string, number int, pr *github.PullRequest) (*github.PullRequest, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, pr)
	return args.Get(0).(*github.PullRequest), responseArg(args, 1), args.Error(2)
}

func (m *MockPRService) Get(ctx context.Context, owner, repo string, number int) (*github.PullRequest, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number)
	return args.Get(0).(*github.PullRequest), responseArg(args, 1), args.Error(2)
}

func (m *MockPRService) ListCommits(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.RepositoryCommit, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, opts)
	return args.Get(0).([]*github.RepositoryCommit), responseArg(args, 1), args.Error(2)
}

func (m *MockPRService) GetRaw(ctx context.Context, owner, repo string, number int, opts github.RawOptions) (string, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, opts)
	return args.String(0), responseArg(args, 1), args.Error(2)
}

type MockIssuesService struct {
	mock.Mock
}

func (m *MockIssuesService) CreateComment(ctx context.Context, owner, repo string, number int, comment *github.IssueComment) (*github.IssueComment, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, comment)
	return args.Get(0).(*github.IssueComment), responseArg(args, 1), args.Error(2)
}

type MockRepoService struct {
	mock.Mock
}

func (m *MockRepoService) GetCommit(ctx context.Context, owner, repo, sha string, opts *github.ListOptions) (*github.RepositoryCommit, *github.Response, error) {
	args := m.Called(ctx, owner, repo, sha, opts)
	return args.Get(0).(*github.RepositoryCommit), responseArg(args, 1), args.Error(2)
}

func responseArg(args mock.Arguments, index int) *github.Response {
	if args.Get(index) == nil {
		return nil
	}
	return args.Get(index).(*github.Response)
}
