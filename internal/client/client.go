// Package client talks to the task manager HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/adanyl0v/go-task-manager/internal/models"
)

var ErrNotAuthenticated = errors.New("not signed in")

// APIError is a non-2xx response. Message is the server's error text,
// or a fallback naming the failed operation when the body carried none.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func New(baseURL string, session *Session, opts ...Option) *Client {
	if session == nil {
		session = &Session{}
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		session:    session,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Session() *Session {
	return c.session
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	body := map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}
	user := new(models.User)
	err := c.do(ctx, http.MethodPost, "/api/users/register", body, user, false, "Registration failed")
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login signs the session in on success.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	var resp struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/api/users/login", body, &resp, false, "Login failed")
	if err != nil {
		return err
	}
	if resp.Token == "" {
		return &APIError{StatusCode: http.StatusOK, Message: "No token returned from server"}
	}

	c.session.SignIn(resp.Token)
	return nil
}

func (c *Client) Logout() {
	c.session.SignOut()
}

func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	user := new(models.User)
	err := c.do(ctx, http.MethodGet, "/api/users/profile", nil, user, true, "Failed to load profile")
	if err != nil {
		return nil, err
	}
	return user, nil
}

type ProjectInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type ProjectPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func (c *Client) CreateProject(ctx context.Context, input ProjectInput) (*models.Project, error) {
	project := new(models.Project)
	err := c.do(ctx, http.MethodPost, "/api/projects", input, project, true, "Failed to create project")
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (c *Client) Projects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := c.do(ctx, http.MethodGet, "/api/projects", nil, &projects, true, "Failed to load projects")
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *Client) UpdateProject(ctx context.Context, id string, patch ProjectPatch) (*models.Project, error) {
	project := new(models.Project)
	err := c.do(ctx, http.MethodPut, "/api/projects/"+url.PathEscape(id), patch, project, true, "Failed to update project")
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (c *Client) DeleteProject(ctx context.Context, id string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	err := c.do(ctx, http.MethodDelete, "/api/projects/"+url.PathEscape(id), nil, &resp, true, "Failed to delete project")
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

type TaskInput struct {
	Project     string     `json:"project"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

type TaskPatch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// Task routes are reachable without a credential unless the server
// scopes them, so the token is sent when present but not required.

func (c *Client) CreateTask(ctx context.Context, input TaskInput) (*models.Task, error) {
	task := new(models.Task)
	err := c.do(ctx, http.MethodPost, "/api/tasks", input, task, false, "Failed to create task")
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Tasks lists a project's tasks. An empty status returns all of them.
func (c *Client) Tasks(ctx context.Context, projectID, status string) ([]models.Task, error) {
	path := "/api/tasks/" + url.PathEscape(projectID)
	if status != "" {
		path += "?" + url.Values{"status": {status}}.Encode()
	}

	var tasks []models.Task
	err := c.do(ctx, http.MethodGet, path, nil, &tasks, false, "Failed to load tasks")
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, patch TaskPatch) (*models.Task, error) {
	task := new(models.Task)
	err := c.do(ctx, http.MethodPut, "/api/tasks/"+url.PathEscape(id), patch, task, false, "Failed to update task")
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	err := c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil, &resp, false, "Failed to delete task")
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) do(
	ctx context.Context,
	method, path string,
	in, out any,
	requireAuth bool,
	fallback string,
) error {
	if requireAuth && !c.session.Authenticated() {
		return ErrNotAuthenticated
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session.Authenticated() {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", fallback, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: fallback}
		var errBody struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &errBody) == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	err = json.Unmarshal(data, out)
	if err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
