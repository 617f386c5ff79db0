package api

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"
	"strconv"

	domainerrors "github.com/moodshopapp/moodshop-server/internal/errors"
	"github.com/moodshopapp/moodshop-server/internal/playlists"
	"github.com/moodshopapp/moodshop-server/internal/service"
)

//go:embed templates/*.html
var templates embed.FS

func (s *Server) registerWebRoutes() {
	s.router.Get("/", s.handleIndexPage)
	s.router.Post("/try", s.handleTryPage)
	s.router.Post("/feedback", s.handleFeedbackPage)
}

// indexPageData contains data for the upload form template.
type indexPageData struct {
	ServerName string
	Moods      []service.MoodInfo
	Error      string
}

// resultsPageData contains data for the results page template.
type resultsPageData struct {
	ServerName         string
	MoodSlug           string
	MoodLabel          string
	MoodEmoji          string
	ConfidencePct      int
	Confidence         float64
	ConfidenceLevel    string
	Fallback           bool
	Notice             string
	AnalysisID         string
	Products           []ProductResponse
	Playlists          []playlists.Playlist
	PlaylistsAvailable bool
}

// thanksPageData contains data for the thank-you page template.
type thanksPageData struct {
	ServerName string
	Rating     int
	Notice     string
	Error      string
}

// handleIndexPage serves the photo upload form.
// GET /
func (s *Server) handleIndexPage(w http.ResponseWriter, _ *http.Request) {
	s.renderPage(w, "index.html", http.StatusOK, indexPageData{
		ServerName: s.config.Server.Name,
		Moods:      s.services.Catalog.Moods(),
	})
}

// handleTryPage classifies an uploaded photo and renders the results page.
// Detection trouble is not an error: the page renders with the fallback
// mood and a notice instead.
// POST /try
func (s *Server) handleTryPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, s.config.Server.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.config.Server.MaxUploadBytes); err != nil {
		s.renderIndexError(w, "Could not read the upload. Photos are capped at "+
			strconv.FormatInt(s.config.Server.MaxUploadBytes>>20, 10)+" MB.")
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		s.renderIndexError(w, "Choose a photo first.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil || len(data) == 0 {
		s.renderIndexError(w, "The upload came through empty. Try another photo.")
		return
	}

	result, err := s.services.Recommend.AnalyzeAndRecommend(ctx, data)
	if err != nil {
		s.logger.Error("Photo analysis failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	s.renderPage(w, "results.html", http.StatusOK, newResultsPageData(s.config.Server.Name, result))
}

// handleFeedbackPage records a feedback form submission and renders the
// thank-you page.
// POST /feedback
func (s *Server) handleFeedbackPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Malformed form", http.StatusBadRequest)
		return
	}

	rating, _ := strconv.Atoi(r.PostFormValue("rating"))
	confidence, _ := strconv.ParseFloat(r.PostFormValue("confidence"), 64)
	recommended, _ := strconv.Atoi(r.PostFormValue("recommended"))

	input := &service.SubmitInput{
		Mood:        r.PostFormValue("mood"),
		Confidence:  confidence,
		Rating:      rating,
		Comment:     r.PostFormValue("comment"),
		ProductID:   r.PostFormValue("product_id"),
		AnalysisID:  r.PostFormValue("analysis_id"),
		Recommended: recommended,
	}

	result, err := s.services.Feedback.Submit(ctx, input)
	if err != nil {
		msg := "Your feedback could not be saved."
		status := http.StatusUnprocessableEntity
		var derr *domainerrors.Error
		if errors.As(err, &derr) {
			msg = derr.Message
			status = derr.HTTPStatus()
		}
		s.renderPage(w, "thanks.html", status, thanksPageData{
			ServerName: s.config.Server.Name,
			Error:      msg,
		})
		return
	}

	s.renderPage(w, "thanks.html", http.StatusOK, thanksPageData{
		ServerName: s.config.Server.Name,
		Rating:     result.Entry.Rating,
		Notice:     result.Notice,
	})
}

func newResultsPageData(serverName string, result *service.RecommendResult) resultsPageData {
	a := result.Analysis
	data := resultsPageData{
		ServerName:      serverName,
		MoodSlug:        a.Mood.String(),
		MoodLabel:       a.Mood.DisplayName(),
		MoodEmoji:       a.Mood.Emoji(),
		Confidence:      a.Confidence,
		ConfidencePct:   int(a.Confidence*100 + 0.5),
		ConfidenceLevel: a.ConfidenceLevel(),
		Fallback:        a.Fallback,
		Notice:          a.Notice,
		AnalysisID:      a.ID,
		Products:        toProductResponses(result.Products),
	}
	if result.Playlists != nil {
		data.PlaylistsAvailable = result.Playlists.Available
		data.Playlists = result.Playlists.Playlists
	}
	return data
}

func (s *Server) renderIndexError(w http.ResponseWriter, msg string) {
	s.renderPage(w, "index.html", http.StatusBadRequest, indexPageData{
		ServerName: s.config.Server.Name,
		Moods:      s.services.Catalog.Moods(),
		Error:      msg,
	})
}

// renderPage parses and executes one embedded template.
func (s *Server) renderPage(w http.ResponseWriter, name string, status int, data any) {
	tmpl, err := template.ParseFS(templates, "templates/"+name)
	if err != nil {
		s.logger.Error("Failed to parse template", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.Execute(w, data); err != nil {
		s.logger.Error("Failed to execute template", "template", name, "error", err)
	}
}
