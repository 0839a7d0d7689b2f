package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"freshmarket_back_end/internal/database"
	"freshmarket_back_end/internal/models"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const productIndex = "products"

// IndexProduct pushes a product document into Elasticsearch. Indexing is
// best-effort: a missing or failing cluster never blocks catalog writes.
func IndexProduct(p models.Product) {
	if database.Elastic == nil {
		return
	}

	data, _ := json.Marshal(p)
	req := esapi.IndexRequest{
		Index:      productIndex,
		DocumentID: p.ID,
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}

	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		log.Warn().Err(err).Str("product", p.Name).Msg("elasticsearch index failed")
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Warn().Str("product", p.Name).Str("response", res.String()).
			Msg("elasticsearch rejected product")
	}
}

// RemoveProductFromIndex deletes a product document; best-effort.
func RemoveProductFromIndex(productID string) {
	if database.Elastic == nil {
		return
	}
	req := esapi.DeleteRequest{Index: productIndex, DocumentID: productID}
	if res, err := req.Do(context.Background(), database.Elastic); err == nil {
		res.Body.Close()
	}
}

// SearchProducts runs a multi_match over name, description and tags. When
// Elasticsearch is unavailable it falls back to a database LIKE query so
// search keeps working in development.
func SearchProducts(db *gorm.DB, query string) ([]models.Product, error) {
	if database.Elastic == nil {
		return searchProductsDB(db, query)
	}

	var buf bytes.Buffer
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{"name", "description", "tags"},
			},
		},
	}
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("encoding search query: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{productIndex},
		Body:  &buf,
	}
	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		log.Warn().Err(err).Msg("elasticsearch search failed, falling back to database")
		return searchProductsDB(db, query)
	}
	defer res.Body.Close()

	if res.IsError() {
		return searchProductsDB(db, query)
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	products := make([]models.Product, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		if hit.Source.IsActive {
			products = append(products, hit.Source)
		}
	}
	return products, nil
}

func searchProductsDB(db *gorm.DB, query string) ([]models.Product, error) {
	var products []models.Product
	pattern := "%" + query + "%"
	err := db.Where("is_active = ?", true).
		Where("name LIKE ? OR description LIKE ?", pattern, pattern).
		Limit(50).
		Find(&products).Error
	return products, err
}
