package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v80/github"
	domainErrors "github.com/thomas-vilte/prtitle/internal/errors"
	"github.com/thomas-vilte/prtitle/internal/logger"
	"github.com/thomas-vilte/prtitle/internal/models"
	"github.com/thomas-vilte/prtitle/internal/regex"
	"github.com/thomas-vilte/prtitle/internal/vcs"
	"golang.org/x/oauth2"
)

var _ vcs.VCSClient = (*GitHubClient)(nil)

const commitsPerPage = 100

type PullRequestsService interface {
	Get(ctx context.Context, owner, repo string, number int) (*github.PullRequest, *github.Response, error)
	ListCommits(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.RepositoryCommit, *github.Response, error)
	GetRaw(ctx context.Context, owner, repo string, number int, opts github.RawOptions) (string, *github.Response, error)
	Edit(ctx context.Context, owner, repo string, number int, pr *github.PullRequest) (*github.PullRequest, *github.Response, error)
}

type IssuesService interface {
	CreateComment(ctx context.Context, owner, repo string, number int, comment *github.IssueComment) (*github.IssueComment, *github.Response, error)
}

type RepositoriesService interface {
	GetCommit(ctx context.Context, owner, repo, sha string, opts *github.ListOptions) (*github.RepositoryCommit, *github.Response, error)
}

type GitHubClient struct {
	prService     PullRequestsService
	issuesService IssuesService
	repoService   RepositoriesService
	owner         string
	repo          string
}

func NewGitHubClient(owner, repo, token string) *GitHubClient {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	return NewGitHubClientWithServices(
		client.PullRequests,
		client.Issues,
		client.Repositories,
		owner,
		repo,
	)
}

func NewGitHubClientWithServices(
	prService PullRequestsService,
	issuesService IssuesService,
	repoService RepositoriesService,
	owner string,
	repo string,
) *GitHubClient {
	return &GitHubClient{
		prService:     prService,
		issuesService: issuesService,
		repoService:   repoService,
		owner:         owner,
		repo:          repo,
	}
}

func (ghc *GitHubClient) GetPRContext(ctx context.Context, prNumber int) (models.PRContext, error) {
	log := logger.FromContext(ctx)

	log.Debug("fetching github pull request",
		"owner", ghc.owner,
		"repo", ghc.repo,
		"pr_number", prNumber)

	pr, resp, err := ghc.prService.Get(ctx, ghc.owner, ghc.repo, prNumber)
	if err != nil {
		log.Error("failed to fetch github PR",
			"error", err,
			"owner", ghc.owner,
			"repo", ghc.repo,
			"pr_number", prNumber)
		return models.PRContext{}, ghc.mapError(resp, err, "get PR", prNumber, domainErrors.ErrReadPR)
	}

	commits, err := ghc.listCommits(ctx, prNumber)
	if err != nil {
		return models.PRContext{}, err
	}

	messages := make([]string, 0, len(commits))
	for _, commit := range commits {
		messages = append(messages, commit.GetCommit().GetMessage())
	}

	diff, resp, err := ghc.prService.GetRaw(ctx, ghc.owner, ghc.repo, prNumber, github.RawOptions{Type: github.Diff})
	if err != nil {
		// If 406 error (diff too large), use fallback commit by commit
		if resp != nil && resp.StatusCode == http.StatusNotAcceptable {
			log.Warn("PR diff too large, fetching diffs commit by commit",
				"pr_number", prNumber,
				"commits_count", len(commits))
			diff, err = ghc.getDiffFromCommits(ctx, commits)
			if err != nil {
				return models.PRContext{}, err
			}
		} else {
			return models.PRContext{}, ghc.mapError(resp, err, "get PR diff", prNumber, domainErrors.ErrReadPR)
		}
	}

	prContext := models.PRContext{
		Number:         prNumber,
		CurrentTitle:   pr.GetTitle(),
		CommitMessages: messages,
		DiffSummary:    diff,
		Description:    pr.GetBody(),
		Author:         pr.GetUser().GetLogin(),
		BranchName:     pr.GetHead().GetRef(),
		ChangedFiles:   changedFiles(diff),
	}

	log.Debug("github PR fetched successfully",
		"pr_number", prNumber,
		"title", prContext.CurrentTitle,
		"commits_count", len(messages),
		"files_count", len(prContext.ChangedFiles),
		"diff_size", len(diff))

	return prContext, nil
}

func (ghc *GitHubClient) listCommits(ctx context.Context, prNumber int) ([]*github.RepositoryCommit, error) {
	var all []*github.RepositoryCommit
	opts := &github.ListOptions{PerPage: commitsPerPage}

	for {
		commits, resp, err := ghc.prService.ListCommits(ctx, ghc.owner, ghc.repo, prNumber, opts)
		if err != nil {
			return nil, ghc.mapError(resp, err, "list PR commits", prNumber, domainErrors.ErrReadPR)
		}
		all = append(all, commits...)

		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

func (ghc *GitHubClient) UpdatePRTitle(ctx context.Context, prNumber int, title string) error {
	log := logger.FromContext(ctx)

	pr := &github.PullRequest{
		Title: github.Ptr(title),
	}

	_, resp, err := ghc.prService.Edit(ctx, ghc.owner, ghc.repo, prNumber, pr)
	if err != nil {
		log.Error("failed to update PR title",
			"error", err,
			"pr_number", prNumber)
		return ghc.mapError(resp, err, "update PR title", prNumber, domainErrors.ErrUpdateTitle)
	}

	log.Info("PR title updated",
		"pr_number", prNumber,
		"title", title)
	return nil
}

func (ghc *GitHubClient) CreateComment(ctx context.Context, prNumber int, body string) error {
	log := logger.FromContext(ctx)

	comment := &github.IssueComment{
		Body: github.Ptr(body),
	}

	created, resp, err := ghc.issuesService.CreateComment(ctx, ghc.owner, ghc.repo, prNumber, comment)
	if err != nil {
		log.Error("failed to create PR comment",
			"error", err,
			"pr_number", prNumber)
		return ghc.mapError(resp, err, "create comment", prNumber, domainErrors.ErrCreateComment)
	}

	log.Info("PR comment created",
		"pr_number", prNumber,
		"url", created.GetHTMLURL())
	return nil
}

func (ghc *GitHubClient) getDiffFromCommits(ctx context.Context, commits []*github.RepositoryCommit) (string, error) {
	log := logger.FromContext(ctx)
	var combinedDiff strings.Builder

	log.Info("fetching diffs from commits",
		"commits_count", len(commits),
		"owner", ghc.owner,
		"repo", ghc.repo)

	for i, commit := range commits {
		sha := commit.GetSHA()
		log.Debug("processing commit",
			"current", i+1,
			"total", len(commits),
			"sha", shortSHA(sha))
		fullCommit, resp, err := ghc.repoService.GetCommit(ctx, ghc.owner, ghc.repo, sha, nil)
		if err != nil {
			return "", ghc.mapError(resp, err, "get commit "+shortSHA(sha), 0, domainErrors.ErrReadPR)
		}

		if fullCommit.GetStats().GetTotal() > 0 {
			combinedDiff.WriteString(fmt.Sprintf("\n# Commit: %s\n", shortSHA(sha)))
			combinedDiff.WriteString(fmt.Sprintf("# Message: %s\n\n", strings.Split(commit.GetCommit().GetMessage(), "\n")[0]))

			for _, file := range fullCommit.Files {
				if file.Patch != nil {
					combinedDiff.WriteString(fmt.Sprintf("diff --git a/%s b/%s\n", file.GetFilename(), file.GetFilename()))
					combinedDiff.WriteString(file.GetPatch())
					combinedDiff.WriteString("\n")
				}
			}
		}
	}

	return combinedDiff.String(), nil
}

// mapError turns a go-github failure into a typed error. fallback is used
// when the status code does not identify a more specific cause.
func (ghc *GitHubClient) mapError(resp *github.Response, err error, operation string, prNumber int, fallback *domainErrors.AppError) error {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError

	status := 0
	if resp != nil && resp.Response != nil {
		status = resp.StatusCode
	}

	var mapped *domainErrors.AppError
	switch {
	case errors.As(err, &rateErr), errors.As(err, &abuseErr), status == http.StatusTooManyRequests:
		mapped = domainErrors.ErrGitHubRateLimit
		if resp != nil && resp.Response != nil {
			mapped = mapped.WithContext("retry_after", resp.Header.Get("Retry-After"))
		}
	case status == http.StatusUnauthorized:
		mapped = domainErrors.ErrGitHubTokenInvalid
	case status == http.StatusForbidden:
		mapped = domainErrors.ErrGitHubInsufficientPerms
	case status == http.StatusNotFound:
		mapped = domainErrors.ErrPullRequestNotFound
	default:
		mapped = fallback
	}

	mapped = mapped.
		WithContext("operation", operation).
		WithContext("repo", fmt.Sprintf("%s/%s", ghc.owner, ghc.repo))
	if prNumber != 0 {
		mapped = mapped.WithContext("pr_number", prNumber)
	}
	if status != 0 {
		mapped = mapped.WithContext("status", status)
	}
	return mapped.WithError(err)
}

// changedFiles lists the files touched by a unified diff, in order of appearance.
func changedFiles(diff string) []string {
	var files []string
	seen := make(map[string]bool)

	for _, line := range strings.Split(diff, "\n") {
		m := regex.DiffFileHeader.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := m[2]
		if !seen[name] {
			seen[name] = true
			files = append(files, name)
		}
	}
	return files
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
