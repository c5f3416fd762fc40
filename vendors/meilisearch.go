package vendors

import (
	"sync"

	"github.com/meilisearch/meilisearch-go"

	"github.com/lawmasters-app/lawmasters/config"
	"github.com/lawmasters-app/lawmasters/db"
	"github.com/lawmasters-app/lawmasters/log"
)

var (
	meiliClient     *MeiliClient
	meiliClientOnce sync.Once
	meiliLogger     = log.GetLogger("Meilisearch")
)

// MeiliClient wraps the Meilisearch client
type MeiliClient struct {
	client   meilisearch.ServiceManager
	index    meilisearch.IndexManager
	indexUID string
}

// MeiliSearchOptions holds search options
type MeiliSearchOptions struct {
	Limit        int
	Offset       int
	StatusFilter string
	CourtFilter  string
}

// MeiliSearchResult represents a search result
type MeiliSearchResult struct {
	Hits               []MeiliHit
	EstimatedTotalHits int
	Limit              int
	Offset             int
	Query              string
}

// MeiliHit represents a single matter search hit
type MeiliHit struct {
	MatterID   string
	CNR        string
	Title      string
	ClientName string
	Court      string
	Status     string
	Formatted  map[string]string
}

// GetMeiliClient returns the singleton Meilisearch client, nil when not configured
func GetMeiliClient() *MeiliClient {
	meiliClientOnce.Do(func() {
		cfg := config.Get()
		if cfg.MeiliHost == "" {
			meiliLogger.Warn().Msg("MEILI_HOST not configured, Meilisearch disabled")
			return
		}

		client := meilisearch.New(cfg.MeiliHost, meilisearch.WithAPIKey(cfg.MeiliAPIKey))

		// Verify connection
		if _, err := client.Health(); err != nil {
			meiliLogger.Error().Err(err).Msg("failed to connect to Meilisearch")
			return
		}

		index := client.Index(cfg.MeiliIndex)

		// status and court are the only filterable attributes the UI offers
		if _, err := index.UpdateFilterableAttributes(&[]string{"status", "court"}); err != nil {
			meiliLogger.Warn().Err(err).Msg("failed to configure filterable attributes")
		}

		meiliClient = &MeiliClient{
			client:   client,
			index:    index,
			indexUID: cfg.MeiliIndex,
		}

		meiliLogger.Info().Str("host", cfg.MeiliHost).Str("index", cfg.MeiliIndex).Msg("Meilisearch initialized")
	})

	return meiliClient
}

// Search queries the matters index
func (m *MeiliClient) Search(query string, opts MeiliSearchOptions) (*MeiliSearchResult, error) {
	if m == nil {
		return nil, nil
	}

	var filters []string
	if opts.StatusFilter != "" {
		filters = append(filters, "status = \""+escapeFilter(opts.StatusFilter)+"\"")
	}
	if opts.CourtFilter != "" {
		filters = append(filters, "court = \""+escapeFilter(opts.CourtFilter)+"\"")
	}

	filter := ""
	if len(filters) > 0 {
		filter = filters[0]
		for _, f := range filters[1:] {
			filter += " AND " + f
		}
	}

	searchReq := &meilisearch.SearchRequest{
		Limit:                 int64(opts.Limit),
		Offset:                int64(opts.Offset),
		AttributesToHighlight: []string{"title", "clientName", "cnr"},
		MatchingStrategy:      "all",
	}

	if filter != "" {
		searchReq.Filter = filter
	}

	resp, err := m.index.Search(query, searchReq)
	if err != nil {
		return nil, err
	}

	result := &MeiliSearchResult{
		EstimatedTotalHits: int(resp.EstimatedTotalHits),
		Limit:              opts.Limit,
		Offset:             opts.Offset,
		Query:              query,
	}

	for _, hit := range resp.Hits {
		h := hit.(map[string]interface{})

		meiliHit := MeiliHit{
			MatterID:   getString(h, "matterId"),
			CNR:        getString(h, "cnr"),
			Title:      getString(h, "title"),
			ClientName: getString(h, "clientName"),
			Court:      getString(h, "court"),
			Status:     getString(h, "status"),
		}

		// Get formatted (highlighted) fields
		if formatted, ok := h["_formatted"].(map[string]interface{}); ok {
			meiliHit.Formatted = make(map[string]string)
			for k, v := range formatted {
				if s, ok := v.(string); ok {
					meiliHit.Formatted[k] = s
				}
			}
		}

		result.Hits = append(result.Hits, meiliHit)
	}

	return result, nil
}

// IndexMatters pushes matter records into the index
func (m *MeiliClient) IndexMatters(matters []db.Matter) error {
	if m == nil {
		return nil
	}

	docs := make([]map[string]interface{}, 0, len(matters))
	for _, matter := range matters {
		cnr := ""
		if matter.CNR != nil {
			cnr = *matter.CNR
		}
		docs = append(docs, map[string]interface{}{
			"matterId":   matter.ID,
			"cnr":        cnr,
			"title":      matter.Title,
			"clientName": matter.ClientName,
			"matterType": matter.MatterType,
			"court":      matter.Court,
			"status":     matter.Status,
			"updatedAt":  matter.UpdatedAt,
		})
	}

	_, err := m.index.AddDocuments(docs, "matterId")
	return err
}

// DeleteMatter removes a matter from the index
func (m *MeiliClient) DeleteMatter(matterID string) error {
	if m == nil {
		return nil
	}

	_, err := m.index.DeleteDocument(matterID)
	return err
}

// Helper functions

func escapeFilter(value string) string {
	// Escape backslashes and quotes
	result := ""
	for _, c := range value {
		switch c {
		case '\\':
			result += "\\\\"
		case '"':
			result += "\\\""
		default:
			result += string(c)
		}
	}
	return result
}

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetMeilisearch returns the Meilisearch client (wrapper for workers)
func GetMeilisearch() *MeiliClient {
	return GetMeiliClient()
}
