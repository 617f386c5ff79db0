package api

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	"github.com/moodshopapp/moodshop-server/internal/domain"
	"github.com/moodshopapp/moodshop-server/internal/search"
)

func (s *Server) registerProductRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listProducts",
		Method:      http.MethodGet,
		Path:        "/api/v1/products",
		Summary:     "List products",
		Description: "Returns catalog products in import order, optionally filtered by mood tag",
		Tags:        []string{"Products"},
	}, s.handleListProducts)

	huma.Register(s.api, huma.Operation{
		OperationID: "getProduct",
		Method:      http.MethodGet,
		Path:        "/api/v1/products/{id}",
		Summary:     "Get product",
		Description: "Returns a single product by ID",
		Tags:        []string{"Products"},
	}, s.handleGetProduct)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchProducts",
		Method:      http.MethodGet,
		Path:        "/api/v1/products/search",
		Summary:     "Search products",
		Description: "Full-text catalog search with mood tag facets",
		Tags:        []string{"Products"},
	}, s.handleSearchProducts)

	// Direct chi route for image streaming
	s.router.Get("/products/{id}/image", s.handleServeProductImage)
}

// === DTOs ===

// ProductResponse contains product data in API responses.
type ProductResponse struct {
	ID        string    `json:"id" doc:"Product ID"`
	Name      string    `json:"name" doc:"Display name"`
	Price     float64   `json:"price" doc:"Price in the catalog currency"`
	MoodTags  []string  `json:"mood_tags" doc:"Normalized mood tag slugs, catalog order"`
	ImageURL  string    `json:"image_url,omitempty" doc:"Image location; locally ingested images are served from /products/{id}/image"`
	BlurHash  string    `json:"blur_hash,omitempty" doc:"BlurHash placeholder string"`
	CreatedAt time.Time `json:"created_at" doc:"First import time"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last import time"`
}

// ListProductsInput contains the product list request.
type ListProductsInput struct {
	Mood  string `query:"mood" validate:"omitempty,max=32" doc:"Mood label to filter by (unknown labels fall back to neutral)"`
	Limit int    `query:"limit" validate:"omitempty,gte=1,lte=100" doc:"Max products to return (default: all)"`
}

// ListProductsResponse contains the product list.
type ListProductsResponse struct {
	Products []ProductResponse `json:"products" doc:"Products in catalog order"`
	Total    int               `json:"total" doc:"Number of products returned"`
}

// ListProductsOutput wraps the product list for Huma.
type ListProductsOutput struct {
	Body ListProductsResponse
}

// GetProductInput contains the product detail request.
type GetProductInput struct {
	ID string `path:"id" doc:"Product ID"`
}

// ProductOutput wraps a single product for Huma.
type ProductOutput struct {
	Body ProductResponse
}

// SearchProductsInput contains the catalog search request.
type SearchProductsInput struct {
	Query    string  `query:"q" validate:"omitempty,max=200" doc:"Search query (empty matches everything)"`
	Mood     string  `query:"mood" validate:"omitempty,max=100" doc:"Comma-separated mood tag slugs to filter by"`
	MinPrice float64 `query:"minPrice" validate:"omitempty,gte=0" doc:"Minimum price"`
	MaxPrice float64 `query:"maxPrice" validate:"omitempty,gte=0" doc:"Maximum price"`
	Limit    int     `query:"limit" validate:"omitempty,gte=1,lte=100" doc:"Max results (default 20)"`
	Offset   int     `query:"offset" validate:"omitempty,gte=0" doc:"Pagination offset"`
	Facets   bool    `query:"facets" doc:"Include mood tag facets in response"`
}

// SearchProductsOutput wraps the search result for Huma.
type SearchProductsOutput struct {
	Body search.SearchResult
}

// === Handlers ===

func (s *Server) handleListProducts(ctx context.Context, input *ListProductsInput) (*ListProductsOutput, error) {
	products, err := s.services.Catalog.ListProducts(ctx, input.Mood, input.Limit)
	if err != nil {
		s.logger.Error("Failed to list products", "error", err, "mood", input.Mood)
		return nil, err
	}

	resp := ListProductsResponse{
		Products: toProductResponses(products),
		Total:    len(products),
	}
	return &ListProductsOutput{Body: resp}, nil
}

func (s *Server) handleGetProduct(ctx context.Context, input *GetProductInput) (*ProductOutput, error) {
	product, err := s.services.Catalog.GetProduct(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &ProductOutput{Body: toProductResponse(product)}, nil
}

func (s *Server) handleSearchProducts(ctx context.Context, input *SearchProductsInput) (*SearchProductsOutput, error) {
	params := search.DefaultSearchParams()
	params.Query = input.Query
	params.MinPrice = input.MinPrice
	params.MaxPrice = input.MaxPrice
	params.Offset = input.Offset
	params.IncludeFacets = input.Facets

	if input.Limit > 0 {
		params.Limit = input.Limit
	}

	// Mood filter - parse comma-separated slugs
	if input.Mood != "" {
		for tag := range strings.SplitSeq(input.Mood, ",") {
			tag = strings.TrimSpace(tag)
			if tag != "" {
				params.MoodTags = append(params.MoodTags, tag)
			}
		}
	}

	result, err := s.services.Catalog.SearchProducts(ctx, params)
	if err != nil {
		s.logger.Error("Product search failed", "error", err, "query", input.Query)
		return nil, err
	}

	return &SearchProductsOutput{Body: *result}, nil
}

// handleServeProductImage streams a locally ingested product image.
// GET /products/{id}/image
func (s *Server) handleServeProductImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "id required", http.StatusBadRequest)
		return
	}

	if !s.storage.Exists(id) {
		http.Error(w, "image not found", http.StatusNotFound)
		return
	}

	// File info for the Last-Modified header
	fileInfo, err := os.Stat(s.storage.Path(id))
	if err != nil {
		s.logger.Error("Failed to stat product image", "product_id", id, "error", err)
		http.Error(w, "failed to retrieve image", http.StatusInternalServerError)
		return
	}

	// ETag from content hash
	hash, err := s.storage.Hash(id)
	if err != nil {
		s.logger.Error("Failed to hash product image", "product_id", id, "error", err)
		http.Error(w, "failed to retrieve image", http.StatusInternalServerError)
		return
	}
	etag := `"` + hash + `"`

	// Cache validation
	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	data, err := s.storage.Get(id)
	if err != nil {
		s.logger.Error("Failed to read product image", "product_id", id, "error", err)
		http.Error(w, "failed to retrieve image", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", CacheOneWeek)
	w.Header().Set("ETag", etag)
	w.Header().Set("Last-Modified", fileInfo.ModTime().UTC().Format(http.TimeFormat))

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Error("Failed to write product image response", "product_id", id, "error", err)
	}
}

// toProductResponse converts a domain product to its API shape, resolving
// locally ingested images to the image route.
func toProductResponse(p *domain.Product) ProductResponse {
	resp := ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		MoodTags:  p.MoodTags,
		ImageURL:  p.ImageURL,
		BlurHash:  p.BlurHash,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.HasLocalImage() {
		resp.ImageURL = "/products/" + p.ID + "/image"
	}
	return resp
}

func toProductResponses(products []*domain.Product) []ProductResponse {
	resp := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResponse(p))
	}
	return resp
}
