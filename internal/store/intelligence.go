// internal/store/intelligence.go
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/beastaman/Sleft-Signal-sub000/internal/common/errors"
	"github.com/beastaman/Sleft-Signal-sub000/internal/models"
)

const DefaultIntelligenceIndex = "industry-intelligence"

// IntelligenceIndex stores scored articles per industry so repeated
// lookups skip the news provider. Writes are best effort; the caller
// may ignore errors.
type IntelligenceIndex struct {
	client *elasticsearch.Client
	index  string
}

func NewIntelligenceIndex(client *elasticsearch.Client, index string) *IntelligenceIndex {
	if index == "" {
		index = DefaultIntelligenceIndex
	}
	return &IntelligenceIndex{client: client, index: index}
}

type intelligenceDoc struct {
	Industry string             `json:"industry"`
	Article  models.NewsArticle `json:"article"`
}

// IndexArticles writes the articles under the given industry key.
func (x *IntelligenceIndex) IndexArticles(ctx context.Context, industry string, articles []models.NewsArticle) error {
	industry = strings.ToLower(strings.TrimSpace(industry))
	for _, article := range articles {
		doc := intelligenceDoc{Industry: industry, Article: article}
		payload, err := json.Marshal(doc)
		if err != nil {
			return errors.NewStoreUnavailableError("elasticsearch", err)
		}

		req := esapi.IndexRequest{
			Index:      x.index,
			DocumentID: docID(industry, article.URL),
			Body:       bytes.NewReader(payload),
		}
		res, err := req.Do(ctx, x.client)
		if err != nil {
			return errors.NewStoreUnavailableError("elasticsearch", err)
		}
		res.Body.Close()
		if res.IsError() {
			return errors.NewStoreUnavailableError("elasticsearch", fmt.Errorf("index article: %s", res.Status()))
		}
	}
	return nil
}

// SearchArticles returns indexed articles for an industry, optionally
// narrowed to one category, highest relevance first.
func (x *IntelligenceIndex) SearchArticles(ctx context.Context, industry, category string, limit int) ([]models.NewsArticle, error) {
	if limit <= 0 {
		limit = 20
	}

	must := []map[string]interface{}{
		{"term": map[string]interface{}{"industry": strings.ToLower(strings.TrimSpace(industry))}},
	}
	if category != "" {
		must = append(must, map[string]interface{}{
			"match": map[string]interface{}{"article.category": category},
		})
	}

	query := map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"must": must},
		},
		"sort": []map[string]interface{}{
			{"article.relevanceScore": map[string]interface{}{"order": "desc"}},
		},
	}
	payload, err := json.Marshal(query)
	if err != nil {
		return nil, errors.NewStoreUnavailableError("elasticsearch", err)
	}

	res, err := x.client.Search(
		x.client.Search.WithContext(ctx),
		x.client.Search.WithIndex(x.index),
		x.client.Search.WithBody(bytes.NewReader(payload)),
	)
	if err != nil {
		return nil, errors.NewStoreUnavailableError("elasticsearch", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, errors.NewStoreUnavailableError("elasticsearch", fmt.Errorf("search: %s", res.Status()))
	}

	var result struct {
		Hits struct {
			Hits []struct {
				Source intelligenceDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, errors.NewStoreUnavailableError("elasticsearch", err)
	}

	articles := make([]models.NewsArticle, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		articles = append(articles, hit.Source.Article)
	}
	return articles, nil
}

// docID keeps re-indexing the same article idempotent.
func docID(industry, url string) string {
	var b strings.Builder
	for _, r := range industry + ":" + url {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ':', r == '-', r == '.', r == '/':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
