package vendors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/lawmasters-app/lawmasters/config"
	"github.com/lawmasters-app/lawmasters/log"
)

var (
	ecourtsClient     *ECourtsClient
	ecourtsClientOnce sync.Once
	ecourtsLogger     = log.GetLogger("ECourts")
)

// ECourtsClient wraps the eCourts gateway API
type ECourtsClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// CaseStatus represents a case status record from the eCourts gateway
type CaseStatus struct {
	CNR           string        `json:"cnr"`
	CaseTitle     string        `json:"case_title"`
	CourtName     string        `json:"court_name"`
	CaseType      string        `json:"case_type"`
	FilingNumber  string        `json:"filing_number,omitempty"`
	Stage         string        `json:"stage"`
	NextHearing   string        `json:"next_hearing,omitempty"` // ISO date
	Petitioners   []string      `json:"petitioners,omitempty"`
	Respondents   []string      `json:"respondents,omitempty"`
	HearingDates  []CaseHearing `json:"hearing_dates,omitempty"`
	Error         string        `json:"error,omitempty"`
}

// CaseHearing is a single entry in a case's hearing history
type CaseHearing struct {
	Date    string `json:"date"`
	Purpose string `json:"purpose"`
	Judge   string `json:"judge,omitempty"`
}

// GetECourtsClient returns the singleton eCourts client, nil when not configured
func GetECourtsClient() *ECourtsClient {
	ecourtsClientOnce.Do(func() {
		cfg := config.Get()

		if cfg.ECourtsBaseURL == "" {
			ecourtsLogger.Warn().Msg("ECOURTS_BASE_URL not configured, eCourts lookups disabled")
			return
		}

		ecourtsClient = &ECourtsClient{
			baseURL: cfg.ECourtsBaseURL,
			apiKey:  cfg.ECourtsAPIKey,
			httpClient: &http.Client{
				Timeout: 30 * time.Second,
			},
		}

		ecourtsLogger.Info().Str("baseURL", cfg.ECourtsBaseURL).Msg("eCourts client initialized")
	})

	return ecourtsClient
}

// CaseByCNR fetches the current status of a case by its CNR number
func (e *ECourtsClient) CaseByCNR(ctx context.Context, cnr string) (*CaseStatus, error) {
	if e == nil {
		return nil, fmt.Errorf("eCourts client not configured")
	}

	resp, err := e.get(ctx, "/api/v1/case/"+url.PathEscape(cnr))
	if err != nil {
		return nil, err
	}

	var result CaseStatus
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to decode eCourts response: %w", err)
	}

	if result.Error != "" {
		return nil, fmt.Errorf("eCourts error: %s", result.Error)
	}

	return &result, nil
}

func (e *ECourtsClient) get(ctx context.Context, endpoint string) ([]byte, error) {
	fullURL, err := url.JoinPath(e.baseURL, endpoint)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, err
	}

	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("eCourts request failed: %s: %s", resp.Status, string(body))
	}

	return body, nil
}

func (e *ECourtsClient) post(ctx context.Context, endpoint string, payload map[string]interface{}) ([]byte, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	fullURL, err := url.JoinPath(e.baseURL, endpoint)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("eCourts request failed: %s: %s", resp.Status, string(body))
	}

	return body, nil
}

// CauseList fetches the cause list for a court on a given date (YYYY-MM-DD)
func (e *ECourtsClient) CauseList(ctx context.Context, courtCode, date string) ([]CaseStatus, error) {
	if e == nil {
		return nil, fmt.Errorf("eCourts client not configured")
	}

	resp, err := e.post(ctx, "/api/v1/cause-list", map[string]interface{}{
		"court_code": courtCode,
		"date":       date,
	})
	if err != nil {
		return nil, err
	}

	var result struct {
		Cases []CaseStatus `json:"cases"`
		Error string       `json:"error,omitempty"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to decode eCourts response: %w", err)
	}

	if result.Error != "" {
		return nil, fmt.Errorf("eCourts error: %s", result.Error)
	}

	return result.Cases, nil
}
