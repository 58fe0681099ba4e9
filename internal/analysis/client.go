// Package analysis uploads medical images to the remote analysis service.
// The service itself is external; this client only speaks its upload
// endpoint.
package analysis

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"

	"medreminder/internal/structures"
)

const analyzePath = "/api/analyze"

// Error is a non-2xx response from the analysis service.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("analysis failed (%d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("analysis failed (%d)", e.StatusCode)
}

// ProgressFunc receives upload progress in whole percent, 0..100.
type ProgressFunc func(percent int)

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(conf *structures.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(conf.Analysis.BaseURL, "/"),
		http:    &http.Client{Timeout: conf.Analysis.Timeout},
	}
}

// Analyze streams image as the "image" form field together with the
// "analysisType" label and decodes the JSON result. size is the image
// length in bytes and is only used for progress reporting.
func (c *Client) Analyze(ctx context.Context, filename string, image io.Reader, size int64, analysisType string, progress ProgressFunc) (map[string]any, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("analysis service url is not configured")
	}

	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeForm(form, filename, &progressReader{r: image, total: size, report: progress}, analysisType))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+analyzePath, pr)
	if err != nil {
		pr.Close()
		return nil, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", filename, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read analysis response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		var detail struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(body, &detail) == nil {
			apiErr.Detail = detail.Detail
		}
		return nil, apiErr
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode analysis response: %w", err)
	}
	return result, nil
}

func writeForm(form *multipart.Writer, filename string, image io.Reader, analysisType string) error {
	part, err := form.CreateFormFile("image", filepath.Base(filename))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, image); err != nil {
		return err
	}
	if err := form.WriteField("analysisType", analysisType); err != nil {
		return err
	}
	return form.Close()
}

type progressReader struct {
	r       io.Reader
	total   int64
	read    int64
	last    int
	report  ProgressFunc
	started bool
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)
	if p.report != nil && p.total > 0 {
		pct := int(p.read * 100 / p.total)
		if pct > 100 {
			pct = 100
		}
		if !p.started || pct != p.last {
			p.started = true
			p.last = pct
			p.report(pct)
		}
	}
	return n, err
}
