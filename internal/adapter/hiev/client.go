// Package hiev is a client for the HIEv research data repository upload API.
package hiev

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Dataset types accepted by HIEv.
const (
	TypeRaw       = "RAW"
	TypeProcessed = "PROCESSED"
)

// Metadata describes one file for the HIEv record created on upload.
type Metadata struct {
	ExperimentID     int
	Type             string // TypeRaw or TypeProcessed
	Description      string
	CreatorEmail     string
	LabelNames       string
	RelatedWebsites  string
	ContributorNames []string
	ParentFilenames  []string
	StartTime        time.Time
	EndTime          time.Time
}

// Client uploads files to HIEv using a pre-issued API token.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a HIEv client. The API key is passed explicitly; the
// client never reads it from the environment itself.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Upload posts one file with its metadata to the HIEv record-creation
// endpoint. Any non-2xx response is an error carrying the response body.
func (c *Client) Upload(ctx context.Context, filePath string, md Metadata) error {
	body, contentType, err := buildMultipartBody(filePath, c.apiKey, md)
	if err != nil {
		return err
	}

	u := c.baseURL + "/data_files/api_create.json"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, body)
	if err != nil {
		return fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload %s: %w", filepath.Base(filePath), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("hiev API error: status %d: %s", resp.StatusCode, respBody)
	}

	c.logger.Info("uploaded to hiev", "file", filepath.Base(filePath), "type", md.Type)
	return nil
}

// timeFormat is the timestamp layout the HIEv API expects.
const timeFormat = "2006-01-02 15:04:05"

func buildMultipartBody(filePath, apiKey string, md Metadata) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"auth_token":       apiKey,
		"experiment_id":    strconv.Itoa(md.ExperimentID),
		"type":             md.Type,
		"description":      md.Description,
		"creator_email":    md.CreatorEmail,
		"label_names":      md.LabelNames,
		"related_websites": md.RelatedWebsites,
		"start_time":       md.StartTime.Format(timeFormat),
		"end_time":         md.EndTime.Format(timeFormat),
	}
	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}
	for _, name := range md.ContributorNames {
		if err := w.WriteField("contributor_names[]", name); err != nil {
			return nil, "", fmt.Errorf("write contributor name: %w", err)
		}
	}
	for _, name := range md.ParentFilenames {
		if err := w.WriteField("parent_filenames[]", name); err != nil {
			return nil, "", fmt.Errorf("write parent filename: %w", err)
		}
	}

	f, err := os.Open(filePath)
	if err != nil {
		return nil, "", fmt.Errorf("open upload file: %w", err)
	}
	defer f.Close()

	part, err := w.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("copy upload file: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finalize multipart body: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}
