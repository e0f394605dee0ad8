package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/akarpov/product_api/internal/logging"
	"github.com/akarpov/product_api/internal/models"
	"github.com/akarpov/product_api/internal/mykafka"
	"github.com/akarpov/product_api/internal/repo"
	"github.com/akarpov/product_api/internal/service/search"
	"github.com/akarpov/product_api/internal/transport"
)

var ErrValidation = errors.New("validation failed")

type CatalogService struct {
	Products repo.ProductRepo
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.Products.ListProducts(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	return s.Products.GetProduct(ctx, id)
}

// CreateProduct requires all four fields to be present. Zero is a valid
// price and a valid stock; absence is what gets rejected.
func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if req.Name == nil || *req.Name == "" || req.Description == nil || *req.Description == "" ||
		req.Price == nil || req.Stock == nil {
		return nil, ErrMissingField
	}
	if *req.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}

	prod := models.Product{
		Name:        *req.Name,
		Description: *req.Description,
		Price:       *req.Price,
		Stock:       *req.Stock,
	}
	if err := s.Products.CreateProduct(ctx, &prod); err != nil {
		return nil, err
	}

	s.publish(ctx, map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	s.indexProduct(ctx, &prod)

	return &prod, nil
}

// UpdateProduct applies only the fields present in the request and returns
// the full updated record.
func (s *CatalogService) UpdateProduct(ctx context.Context, id int, req transport.PatchProductRequest) (*models.Product, error) {
	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}

	patch := repo.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	}
	prod, err := s.Products.UpdateProduct(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	s.indexProduct(ctx, prod)

	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int) error {
	if err := s.Products.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})
	if s.ES != nil {
		if err := search.DeleteProduct(ctx, s.ES, search.Index, id); err != nil {
			logging.FromContext(ctx).Error("search deindex error", "product_id", id, "error", err)
		}
	}
	return nil
}

func (s *CatalogService) SearchProducts(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	return search.Search(ctx, s.ES, search.Index, query, from, size)
}

func (s *CatalogService) SearchEnabled() bool {
	return s.ES != nil
}

func (s *CatalogService) publish(ctx context.Context, event map[string]any) {
	if err := s.Producer.PublishEvent(ctx, mykafka.TopicProductEvents, fmt.Sprint(event["productID"]), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "topic", mykafka.TopicProductEvents, "error", err)
	}
}

func (s *CatalogService) indexProduct(ctx context.Context, p *models.Product) {
	if s.ES == nil {
		return
	}
	if err := search.IndexProduct(ctx, s.ES, search.Index, p); err != nil {
		logging.FromContext(ctx).Error("search index error", "product_id", p.ID, "error", err)
	}
}
