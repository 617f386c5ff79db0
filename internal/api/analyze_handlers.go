package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/moodshopapp/moodshop-server/internal/domain"
	"github.com/moodshopapp/moodshop-server/internal/service"
)

func (s *Server) registerAnalyzeRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "analyzePhoto",
		Method:      http.MethodPost,
		Path:        "/api/v1/analyze",
		Summary:     "Analyze a photo",
		Description: "Classifies the dominant mood in an uploaded photo and returns matching products and playlists",
		Tags:        []string{"Analyze"},
		// Photos exceed huma's 1MB default body cap.
		MaxBodyBytes: s.config.Server.MaxUploadBytes,
	}, s.handleAnalyzePhoto)
}

// === DTOs ===

// AnalyzeInput accepts either a multipart form with a "photo" field or a
// raw image body (Content-Type image/jpeg, image/png, or image/webp).
type AnalyzeInput struct {
	ContentType string `header:"Content-Type" doc:"multipart/form-data or an image media type"`
	RawBody     []byte
}

// AnalyzeResponse contains the classified mood and matching recommendations.
type AnalyzeResponse struct {
	Analysis  *domain.Analysis     `json:"analysis" doc:"Mood classification result"`
	Products  []ProductResponse    `json:"products" doc:"Products matching the detected mood, catalog order"`
	Playlists *service.PlaylistSet `json:"playlists" doc:"Playlists matching the detected mood"`
}

// AnalyzeOutput wraps the analysis result for Huma.
type AnalyzeOutput struct {
	Body AnalyzeResponse
}

// === Handlers ===

// handleAnalyzePhoto classifies the uploaded photo and returns the mood plus
// recommendations. Classifier trouble is not an error: undecodable images
// come back as the fallback mood with a notice, still HTTP 200.
func (s *Server) handleAnalyzePhoto(ctx context.Context, input *AnalyzeInput) (*AnalyzeOutput, error) {
	imgData, err := extractPhoto(input.ContentType, input.RawBody, s.config.Server.MaxUploadBytes)
	if err != nil {
		return nil, err
	}

	result, err := s.services.Recommend.AnalyzeAndRecommend(ctx, imgData)
	if err != nil {
		return nil, err
	}

	resp := AnalyzeResponse{
		Analysis:  result.Analysis,
		Products:  toProductResponses(result.Products),
		Playlists: result.Playlists,
	}
	return &AnalyzeOutput{Body: resp}, nil
}

// extractPhoto pulls the image bytes out of the request body. Multipart
// bodies use the "photo" field ("file" is accepted as an alias); any
// image/* body is taken as-is.
func extractPhoto(contentType string, body []byte, maxBytes int64) ([]byte, error) {
	if int64(len(body)) > maxBytes {
		return nil, huma.Error400BadRequest(fmt.Sprintf("File too large. Maximum size is %d bytes", maxBytes))
	}
	if len(body) == 0 {
		return nil, huma.Error400BadRequest("Empty request body")
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid Content-Type header")
	}

	if mediaType == "multipart/form-data" {
		boundary := params["boundary"]
		if boundary == "" {
			return nil, huma.Error400BadRequest("Multipart body missing boundary")
		}
		return photoFromMultipart(bytes.NewReader(body), boundary)
	}

	if !strings.HasPrefix(mediaType, "image/") {
		return nil, huma.Error400BadRequest(
			fmt.Sprintf("Unsupported content type %q. Use multipart/form-data or an image body", mediaType),
		)
	}

	return body, nil
}

// photoFromMultipart scans the form parts for the uploaded photo. The whole
// body already passed the size cap, so parts are read without a limit.
func photoFromMultipart(r io.Reader, boundary string) ([]byte, error) {
	mr := multipart.NewReader(r, boundary)
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, huma.Error400BadRequest("Malformed multipart body")
		}

		name := part.FormName()
		if name != "photo" && name != "file" {
			continue
		}

		data, err := io.ReadAll(part)
		if err != nil {
			return nil, huma.Error400BadRequest("Failed to read uploaded file")
		}
		if len(data) == 0 {
			return nil, huma.Error400BadRequest("Uploaded file is empty")
		}
		return data, nil
	}

	return nil, huma.Error400BadRequest("No photo uploaded. Use 'photo' field in multipart form")
}
