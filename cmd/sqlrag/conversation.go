package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperjump/sqlrag/internal/chat"
	"github.com/hyperjump/sqlrag/internal/models"
)

// conversation is one chat, either in-process or on a running server.
type conversation interface {
	Ask(ctx context.Context, query string) (*models.QueryResponse, error)
	Reset(ctx context.Context) ([]models.ChatMessage, error)
	History(ctx context.Context) ([]models.ChatMessage, error)
}

type localConversation struct {
	engine  *chat.Engine
	session *chat.Session
}

func (c *localConversation) Ask(ctx context.Context, query string) (*models.QueryResponse, error) {
	return c.engine.Ask(ctx, c.session, query)
}

func (c *localConversation) Reset(context.Context) ([]models.ChatMessage, error) {
	c.session.Reset()
	return c.session.History(), nil
}

func (c *localConversation) History(context.Context) ([]models.ChatMessage, error) {
	return c.session.History(), nil
}

// apiClient talks to the sqlrag HTTP API.
type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(serverURL string) *apiClient {
	return &apiClient{baseURL: strings.TrimRight(serverURL, "/"), http: http.DefaultClient}
}

// do sends a request and decodes a 2xx JSON response into out.
func (c *apiClient) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(resp.Body)
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(b, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *apiClient) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, body, contentType, out)
}

func (c *apiClient) createSession(ctx context.Context) (*chat.Snapshot, error) {
	var snap chat.Snapshot
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/sessions", nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// ingest uploads files as one multipart request.
func (c *apiClient) ingest(ctx context.Context, paths []string) (*models.IngestReport, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		part, err := mw.CreateFormFile("files", filepath.Base(p))
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(content); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	var report models.IngestReport
	if err := c.do(ctx, http.MethodPost, "/api/v1/documents", &buf, mw.FormDataContentType(), &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *apiClient) status(ctx context.Context) (*statusResponse, error) {
	var s statusResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/status", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

type remoteConversation struct {
	client *apiClient
	id     string
}

func newRemoteConversation(ctx context.Context, client *apiClient) (*remoteConversation, []models.ChatMessage, error) {
	snap, err := client.createSession(ctx)
	if err != nil {
		return nil, nil, err
	}
	return &remoteConversation{client: client, id: snap.ID}, snap.History, nil
}

func (c *remoteConversation) Ask(ctx context.Context, query string) (*models.QueryResponse, error) {
	var resp models.QueryResponse
	err := c.client.doJSON(ctx, http.MethodPost, "/api/v1/sessions/"+c.id+"/messages", models.QueryRequest{Query: query}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *remoteConversation) Reset(ctx context.Context) ([]models.ChatMessage, error) {
	var snap chat.Snapshot
	if err := c.client.doJSON(ctx, http.MethodPost, "/api/v1/sessions/"+c.id+"/reset", nil, &snap); err != nil {
		return nil, err
	}
	return snap.History, nil
}

func (c *remoteConversation) History(ctx context.Context) ([]models.ChatMessage, error) {
	var snap chat.Snapshot
	if err := c.client.doJSON(ctx, http.MethodGet, "/api/v1/sessions/"+c.id, nil, &snap); err != nil {
		return nil, err
	}
	return snap.History, nil
}

// Close removes the server-side session.
func (c *remoteConversation) Close(ctx context.Context) error {
	return c.client.doJSON(ctx, http.MethodDelete, "/api/v1/sessions/"+c.id, nil, nil)
}
