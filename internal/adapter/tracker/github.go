// Package tracker provides work-tracking collaborators behind the
// domain.WorkTracker interface: a GitHub Issues implementation and a
// simulation implementation for local runs and tests.
package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"chained-agents/internal/domain"
)

const (
	defaultAPIBase  = "https://api.github.com"
	defaultTimeout  = 30 * time.Second
	maxResponseSize = 256 * 1024 // 256KB
)

// GitHubTracker creates tracked work as GitHub issues.
type GitHubTracker struct {
	client  *http.Client
	apiBase string
	owner   string
	repo    string
	token   string
	logger  *slog.Logger
}

// GitHubOptions configures a GitHubTracker.
type GitHubOptions struct {
	Owner   string
	Repo    string
	Token   string
	APIBase string        // empty means the public GitHub API
	Timeout time.Duration // zero means 30s
}

// NewGitHub creates a GitHub-backed work tracker.
func NewGitHub(opts GitHubOptions, logger *slog.Logger) *GitHubTracker {
	apiBase := opts.APIBase
	if apiBase == "" {
		apiBase = defaultAPIBase
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &GitHubTracker{
		client:  &http.Client{Timeout: timeout},
		apiBase: strings.TrimRight(apiBase, "/"),
		owner:   opts.Owner,
		repo:    opts.Repo,
		token:   opts.Token,
		logger:  logger,
	}
}

func (g *GitHubTracker) Name() string { return "github" }

// issueRequest models the GitHub create-issue request body.
type issueRequest struct {
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Assignees []string `json:"assignees,omitempty"`
	Labels    []string `json:"labels,omitempty"`
}

// issueResponse models the relevant portion of the GitHub issue response.
type issueResponse struct {
	Number  int    `json:"number"`
	HTMLURL string `json:"html_url"`
}

// CreateTask opens an issue assigned to the agent and returns its receipt.
func (g *GitHubTracker) CreateTask(ctx context.Context, req domain.TaskRequest) (*domain.TaskReceipt, error) {
	payload, err := json.Marshal(issueRequest{
		Title:     req.Title,
		Body:      req.Body,
		Assignees: assignees(req.Assignee),
		Labels:    []string{"agent-task"},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal issue: %w", err)
	}

	url := fmt.Sprintf("%s/repos/%s/%s/issues", g.apiBase, g.owner, g.repo)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/vnd.github+json")
	httpReq.Header.Set("Content-Type", "application/json")
	if g.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, domain.NewDomainError("GitHubTracker.CreateTask", domain.ErrTrackerFault, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, domain.NewDomainError("GitHubTracker.CreateTask", domain.ErrTrackerFault, err.Error())
	}

	if resp.StatusCode != http.StatusCreated {
		g.logger.Warn("issue creation rejected", "status", resp.StatusCode, "body", string(body))
		detail := fmt.Sprintf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		return nil, domain.NewDomainError("GitHubTracker.CreateTask", domain.ErrTrackerFault, detail)
	}

	var issue issueResponse
	if err := json.Unmarshal(body, &issue); err != nil {
		return nil, domain.NewDomainError("GitHubTracker.CreateTask", domain.ErrTrackerFault, "parse response: "+err.Error())
	}

	g.logger.Info("tracked work created", "issue", issue.Number, "assignee", req.Assignee)
	return &domain.TaskReceipt{Number: issue.Number, URL: issue.HTMLURL}, nil
}

func assignees(assignee string) []string {
	if assignee == "" {
		return nil
	}
	return []string{assignee}
}
