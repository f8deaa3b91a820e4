// Package publish implements the product publishing endpoint: one handler
// that persists a product image and a product record as files in the remote
// content store.
package publish

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/shoplight/publisher/internal/config"
	"github.com/shoplight/publisher/internal/response"
	"github.com/shoplight/publisher/internal/store"
)

// Handler holds the HTTP handler for the publish endpoint.
type Handler struct {
	cfg      *config.Config
	store    store.Store
	validate *validator.Validate
}

// NewHandler creates a new publish Handler.
func NewHandler(cfg *config.Config, st store.Store) *Handler {
	return &Handler{cfg: cfg, store: st, validate: validator.New()}
}

type uploadRequest struct {
	ProductID string `json:"productId" validate:"required" example:"abc123"`

	// ImageBase64 and ProductData stay raw so that a wrong JSON type can be
	// reported precisely instead of failing the whole decode, and so that
	// ProductData round-trips byte-for-byte (field order preserved) into the
	// stored file.
	ImageBase64 json.RawMessage `json:"imageBase64,omitempty" swaggertype:"string" example:"Zm9v"`
	ProductData json.RawMessage `json:"productData" validate:"required" swaggertype:"object"`
}

// Upload godoc
//
//	@Summary		Publish a product
//	@Description	Persists an optional product image and the product record as files in the configured GitHub repository. Existing files are updated with an optimistic SHA precondition; the image is written first and is not rolled back if the record write fails.
//	@Tags			publish
//	@Accept			json
//	@Produce		json
//	@Param			X-Upload-Secret	header		string			false	"Shared upload secret (when configured)"
//	@Param			request			body		uploadRequest	true	"Product payload"
//	@Success		200				{object}	response.ResultBody
//	@Failure		400				{object}	response.ErrorBody
//	@Failure		401				{object}	response.ErrorBody
//	@Failure		405				{object}	response.ErrorBody
//	@Failure		500				{object}	response.ErrorBody
//	@Router			/upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.cfg.GitHubToken == "" || !strings.Contains(h.cfg.GitHubRepo, "/") {
		log.Println("publish: GITHUB_TOKEN or GITHUB_REPO not configured")
		response.ServerError(w, "server configuration error")
		return
	}

	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(&req); err != nil || !present(req.ProductData) {
		response.BadRequest(w, "productId and productData are required")
		return
	}

	var imageB64 string
	if present(req.ImageBase64) {
		if err := json.Unmarshal(req.ImageBase64, &imageB64); err != nil {
			response.BadRequest(w, "imageBase64 must be a base64 string")
			return
		}
	}

	ctx := r.Context()

	// The image goes first; a failure here aborts the request and the record
	// write never starts. A record-write failure after a successful image
	// write leaves the image committed — there is no rollback.
	if imageB64 != "" {
		imagePath := "images/" + req.ProductID + ".jpg"
		if _, err := h.publishFile(ctx, imagePath, imageB64, "product image "+req.ProductID); err != nil {
			h.storeFailure(w, err)
			return
		}
	}

	pretty, err := json.MarshalIndent(req.ProductData, "", "  ")
	if err != nil {
		h.storeFailure(w, err)
		return
	}

	recordPath := "products/" + req.ProductID + ".json"
	recordB64 := base64.StdEncoding.EncodeToString(pretty)
	result, err := h.publishFile(ctx, recordPath, recordB64, "product "+req.ProductID)
	if err != nil {
		h.storeFailure(w, err)
		return
	}

	response.Result(w, result)
}

// publishFile looks up the current SHA for path and writes content there,
// attaching the SHA as an update precondition when the file already exists.
func (h *Handler) publishFile(ctx context.Context, path, contentB64, what string) (json.RawMessage, error) {
	sha, err := h.store.FileSHA(ctx, path)
	if err != nil {
		return nil, err
	}

	verb := "Add"
	if sha != "" {
		verb = "Update"
	}
	return h.store.PutFile(ctx, path, contentB64, verb+" "+what, sha)
}

func (h *Handler) storeFailure(w http.ResponseWriter, err error) {
	log.Printf("publish: %v", err)

	var storeErr *store.StoreError
	if errors.As(err, &storeErr) {
		response.UploadFailure(w, storeErr.Message)
		return
	}
	response.UploadFailure(w, err.Error())
}

// present reports whether a raw JSON field was supplied with a real value.
// JSON null counts as absent, matching how the frontend omits fields.
func present(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}
