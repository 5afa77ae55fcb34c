package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hszk-dev/gocatalog/internal/domain/model"
	"github.com/hszk-dev/gocatalog/internal/usecase"
)

// maxUploadMemory bounds the in-memory portion of multipart parsing; larger
// parts spill to temp files.
const maxUploadMemory = 32 << 20

// Request/Response types

type VideoPayload struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	YearLaunched int     `json:"year_launched"`
	Opened       bool    `json:"opened"`
	Published    bool    `json:"published"`
	Duration     float64 `json:"duration"`
	Rating       string  `json:"rating"`

	CategoryIDs   []string `json:"category_ids"`
	GenreIDs      []string `json:"genre_ids"`
	CastMemberIDs []string `json:"cast_member_ids"`
}

type MediaResponse struct {
	FilePath    string `json:"file_path"`
	EncodedPath string `json:"encoded_path,omitempty"`
	Status      string `json:"status"`
}

type VideoResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	YearLaunched int     `json:"year_launched"`
	Opened       bool    `json:"opened"`
	Published    bool    `json:"published"`
	Duration     float64 `json:"duration"`
	Rating       string  `json:"rating"`
	CreatedAt    string  `json:"created_at"`

	CategoryIDs   []string `json:"category_ids"`
	GenreIDs      []string `json:"genre_ids"`
	CastMemberIDs []string `json:"cast_member_ids"`

	ThumbPath     string `json:"thumb_path,omitempty"`
	ThumbHalfPath string `json:"thumb_half_path,omitempty"`
	BannerPath    string `json:"banner_path,omitempty"`

	Media   *MediaResponse `json:"media,omitempty"`
	Trailer *MediaResponse `json:"trailer,omitempty"`
}

type RelatedRefResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type UpdateVideoResponse struct {
	VideoResponse

	Categories []RelatedRefResponse `json:"categories,omitempty"`
	Genres     []RelatedRefResponse `json:"genres,omitempty"`
}

type DownloadURLResponse struct {
	URL string `json:"url"`
}

// VideoHandler handles video-related HTTP requests.
type VideoHandler struct {
	svc            usecase.VideoService
	downloadExpiry time.Duration
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(svc usecase.VideoService, downloadExpiry time.Duration) *VideoHandler {
	return &VideoHandler{svc: svc, downloadExpiry: downloadExpiry}
}

// Create handles POST /v1/videos
func (h *VideoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload VideoPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		Problem(w, http.StatusBadRequest, "Invalid request", "Invalid JSON body")
		return
	}

	input := usecase.CreateVideoInput{
		Title:        payload.Title,
		Description:  payload.Description,
		YearLaunched: payload.YearLaunched,
		Opened:       payload.Opened,
		Published:    payload.Published,
		Duration:     payload.Duration,
		Rating:       model.Rating(payload.Rating),
	}

	var err error
	if input.CategoryIDs, err = parseUUIDList(payload.CategoryIDs); err != nil {
		Problem(w, http.StatusBadRequest, "Invalid request", "Category IDs must be valid UUIDs")
		return
	}
	if input.GenreIDs, err = parseUUIDList(payload.GenreIDs); err != nil {
		Problem(w, http.StatusBadRequest, "Invalid request", "Genre IDs must be valid UUIDs")
		return
	}
	if input.CastMemberIDs, err = parseUUIDList(payload.CastMemberIDs); err != nil {
		Problem(w, http.StatusBadRequest, "Invalid request", "Cast member IDs must be valid UUIDs")
		return
	}

	video, err := h.svc.CreateVideo(r.Context(), input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	Data(w, http.StatusCreated, toVideoResponse(video))
}

// Get handles GET /v1/videos/{id}
func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Problem(w, http.StatusBadRequest, "Invalid request", "Video ID must be a valid UUID")
		return
	}

	video, err := h.svc.GetVideo(r.Context(), videoID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	Data(w, http.StatusOK, toVideoResponse(video))
}

// List handles GET /v1/videos
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListVideos(r.Context(), parseSearchQuery(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	items := make([]VideoResponse, 0, len(result.Items))
	for _, video := range result.Items {
		items = append(items, toVideoResponse(video))
	}
	Page(w, items, pageMeta(result))
}

// Update handles PUT /v1/videos/{id}.
// Accepts a JSON body, or multipart/form-data when image files ride along
// with the scalar fields.
func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Problem(w, http.StatusBadRequest, "Invalid request", "Video ID must be a valid UUID")
		return
	}

	input := usecase.UpdateVideoInput{VideoID: videoID}

	if isMultipart(r) {
		if err := h.fillUpdateFromMultipart(r, &input); err != nil {
			Problem(w, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
	} else {
		var payload VideoPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			Problem(w, http.StatusBadRequest, "Invalid request", "Invalid JSON body")
			return
		}
		if err := fillUpdateFromPayload(&input, payload); err != nil {
			Problem(w, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
	}

	output, err := h.svc.UpdateVideo(r.Context(), input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := UpdateVideoResponse{VideoResponse: toVideoResponse(output.Video)}
	for _, c := range output.Categories {
		resp.Categories = append(resp.Categories, RelatedRefResponse{ID: c.ID.String(), Name: c.Name})
	}
	for _, g := range output.Genres {
		resp.Genres = append(resp.Genres, RelatedRefResponse{ID: g.ID.String(), Name: g.Name})
	}

	Data(w, http.StatusOK, resp)
}

// Delete handles DELETE /v1/videos/{id}
func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Problem(w, http.StatusBadRequest, "Invalid request", "Video ID must be a valid UUID")
		return
	}

	if err := h.svc.DeleteVideo(r.Context(), videoID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadMedias handles POST /v1/videos/{id}/medias.
// Multipart form with optional "video_file" and "trailer_file" parts.
func (h *VideoHandler) UploadMedias(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Problem(w, http.StatusBadRequest, "Invalid request", "Video ID must be a valid UUID")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		Problem(w, http.StatusBadRequest, "Invalid request", "Expected multipart/form-data body")
		return
	}

	input := usecase.UploadMediasInput{VideoID: videoID}
	input.VideoFile = formFileInput(r, "video_file")
	input.TrailerFile = formFileInput(r, "trailer_file")

	if input.VideoFile == nil && input.TrailerFile == nil {
		Problem(w, http.StatusBadRequest, "Invalid request", "At least one of video_file or trailer_file is required")
		return
	}

	if err := h.svc.UploadMedias(r.Context(), input); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Download handles GET /v1/videos/{id}/medias/{field}/download
func (h *VideoHandler) Download(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Problem(w, http.StatusBadRequest, "Invalid request", "Video ID must be a valid UUID")
		return
	}

	url, err := h.svc.GetMediaDownloadURL(r.Context(), videoID, chi.URLParam(r, "field"), h.downloadExpiry)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	Data(w, http.StatusOK, DownloadURLResponse{URL: url})
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func fillUpdateFromPayload(input *usecase.UpdateVideoInput, payload VideoPayload) error {
	input.Title = payload.Title
	input.Description = payload.Description
	input.YearLaunched = payload.YearLaunched
	input.Opened = payload.Opened
	input.Published = payload.Published
	input.Duration = payload.Duration
	input.Rating = model.Rating(payload.Rating)

	var err error
	if input.CategoryIDs, err = parseUUIDList(payload.CategoryIDs); err != nil {
		return errors.New("category IDs must be valid UUIDs")
	}
	if input.GenreIDs, err = parseUUIDList(payload.GenreIDs); err != nil {
		return errors.New("genre IDs must be valid UUIDs")
	}
	if input.CastMemberIDs, err = parseUUIDList(payload.CastMemberIDs); err != nil {
		return errors.New("cast member IDs must be valid UUIDs")
	}
	return nil
}

// fillUpdateFromMultipart reads scalar fields, relation lists and optional
// image parts from a multipart form. An absent relation key means "leave
// unchanged"; a single empty value means "clear".
func (h *VideoHandler) fillUpdateFromMultipart(r *http.Request, input *usecase.UpdateVideoInput) error {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return errors.New("expected multipart/form-data body")
	}

	payload := VideoPayload{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Rating:      r.FormValue("rating"),
	}

	var err error
	if v := r.FormValue("year_launched"); v != "" {
		if payload.YearLaunched, err = strconv.Atoi(v); err != nil {
			return errors.New("year_launched must be an integer")
		}
	}
	if v := r.FormValue("opened"); v != "" {
		if payload.Opened, err = strconv.ParseBool(v); err != nil {
			return errors.New("opened must be a boolean")
		}
	}
	if v := r.FormValue("published"); v != "" {
		if payload.Published, err = strconv.ParseBool(v); err != nil {
			return errors.New("published must be a boolean")
		}
	}
	if v := r.FormValue("duration"); v != "" {
		if payload.Duration, err = strconv.ParseFloat(v, 64); err != nil {
			return errors.New("duration must be a number")
		}
	}

	payload.CategoryIDs = formIDList(r, "category_ids")
	payload.GenreIDs = formIDList(r, "genre_ids")
	payload.CastMemberIDs = formIDList(r, "cast_member_ids")

	if err := fillUpdateFromPayload(input, payload); err != nil {
		return err
	}

	input.Thumb = formFileInput(r, "thumb_file")
	input.Banner = formFileInput(r, "banner_file")
	input.ThumbHalf = formFileInput(r, "thumb_half_file")
	return nil
}

// formIDList preserves the three-valued relation contract over form
// encoding: absent key is nil, a single empty value is an empty list.
func formIDList(r *http.Request, key string) []string {
	values, ok := r.MultipartForm.Value[key]
	if !ok {
		return nil
	}
	if len(values) == 1 && values[0] == "" {
		return []string{}
	}
	return values
}

// formFileInput wraps an optional multipart file part as a use-case file
// input. The part is backed by the request and lives until the handler
// returns.
func formFileInput(r *http.Request, key string) *usecase.FileInput {
	file, header, err := r.FormFile(key)
	if err != nil {
		return nil
	}
	return &usecase.FileInput{
		Reader:      file,
		Extension:   filepath.Ext(header.Filename),
		ContentType: header.Header.Get("Content-Type"),
	}
}

func toVideoResponse(v *model.Video) VideoResponse {
	resp := VideoResponse{
		ID:           v.ID.String(),
		Title:        v.Title,
		Description:  v.Description,
		YearLaunched: v.YearLaunched,
		Opened:       v.Opened,
		Published:    v.Published,
		Duration:     v.Duration,
		Rating:       v.Rating.String(),
		CreatedAt:    v.CreatedAt.Format(time.RFC3339),

		CategoryIDs:   uuidStrings(v.CategoryIDs()),
		GenreIDs:      uuidStrings(v.GenreIDs()),
		CastMemberIDs: uuidStrings(v.CastMemberIDs()),
	}

	if v.Thumb != nil {
		resp.ThumbPath = v.Thumb.Path
	}
	if v.ThumbHalf != nil {
		resp.ThumbHalfPath = v.ThumbHalf.Path
	}
	if v.Banner != nil {
		resp.BannerPath = v.Banner.Path
	}
	if v.Media != nil {
		resp.Media = toMediaResponse(v.Media)
	}
	if v.Trailer != nil {
		resp.Trailer = toMediaResponse(v.Trailer)
	}

	return resp
}

func toMediaResponse(m *model.Media) *MediaResponse {
	return &MediaResponse{
		FilePath:    m.FilePath,
		EncodedPath: m.EncodedPath,
		Status:      m.Status.String(),
	}
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
