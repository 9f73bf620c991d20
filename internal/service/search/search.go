package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/house_help/internal/es"
	"github.com/Skotchmaster/house_help/internal/models"
)

// IndexWorker upserts a worker directory document. The real phone is never
// written to the index; search results are always masked.
func IndexWorker(ctx context.Context, client *elasticsearch.Client, w *models.Worker) error {
	doc := map[string]interface{}{
		"id":              w.ID,
		"name":            w.Name,
		"category":        w.Category,
		"city":            w.City,
		"locality":        w.Locality,
		"expected_salary": w.ExpectedSalary,
		"languages":       w.Languages,
		"is_verified":     w.IsVerified,
		"rating_avg":      w.RatingAvg,
		"rating_count":    w.RatingCount,
		"is_active":       w.IsActive,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(doc); err != nil {
		return err
	}

	res, err := client.Index(
		es.WorkersIndex,
		&buf,
		client.Index.WithContext(ctx),
		client.Index.WithDocumentID(strconv.FormatUint(uint64(w.ID), 10)),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index worker: %s", res.Status())
	}
	return nil
}

type Hit struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	City        string  `json:"city"`
	Locality    *string `json:"locality"`
	Salary      int     `json:"expected_salary"`
	IsVerified  bool    `json:"is_verified"`
	RatingAvg   float64 `json:"rating_avg"`
	RatingCount int     `json:"rating_count"`
}

func Search(ctx context.Context, client *elasticsearch.Client, query string, from, size int) (int64, []Hit, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query":     query,
						"fields":    []string{"name^2", "category", "city", "locality", "languages"},
						"fuzziness": "AUTO",
					},
				},
				"filter": map[string]interface{}{
					"term": map[string]interface{}{"is_active": true},
				},
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, err
	}

	res, err := client.Search(
		client.Search.WithContext(ctx),
		client.Search.WithIndex(es.WorkersIndex),
		client.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search workers: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source Hit `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	hits := make([]Hit, len(r.Hits.Hits))
	for i, h := range r.Hits.Hits {
		hits[i] = h.Source
	}
	return r.Hits.Total.Value, hits, nil
}
