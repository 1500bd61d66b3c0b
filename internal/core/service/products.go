package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/2loga/logbeauty/internal/core/domain"
	"github.com/2loga/logbeauty/internal/core/port"
	"github.com/google/uuid"
)

// imageKeyPrefix is the object-key namespace for uploaded product images.
const imageKeyPrefix = "images/"

// A ProductService validates and normalizes admin form input, optionally
// uploads an attached image, then issues create, update and delete
// mutations against the remote catalog store.
//
// Mutations are fire-and-forget with respect to the visible list: the
// synchronizer's next snapshot, not the mutation's return value, updates
// what is displayed. The return value only drives the busy flag and the
// form reset.
type ProductService struct {
	store     port.CatalogStore
	blobs     port.BlobStore
	confirmer port.Confirmer

	// busy is the client-side mutual-exclusion gate on the form: at most
	// one create or update submission is in flight. Delete is not gated.
	busy atomic.Bool

	mu        sync.Mutex
	editingID string
	form      domain.ProductForm
}

func NewProductService(
	store port.CatalogStore,
	blobs port.BlobStore,
	confirmer port.Confirmer,
) *ProductService {
	return &ProductService{store: store, blobs: blobs, confirmer: confirmer}
}

// Busy reports whether a create or update submission is in flight.
func (s *ProductService) Busy() bool {
	return s.busy.Load()
}

// StartEdit loads the target product into the form. Starting an edit
// while already editing replaces the target.
func (s *ProductService) StartEdit(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editingID = p.ID
	s.form = domain.FormFromProduct(p)
}

// CancelEdit resets the form and editing state.
func (s *ProductService) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editingID = ""
	s.form.Reset()
}

// Editing returns the current edit target, if any.
func (s *ProductService) Editing() (id string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingID, s.editingID != ""
}

// Form returns a snapshot of the current form state.
func (s *ProductService) Form() domain.ProductForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// Submit dispatches the form to Create or, when an edit is active, to
// Update against the edit target.
func (s *ProductService) Submit(ctx context.Context, form domain.ProductForm) error {
	if id, ok := s.Editing(); ok {
		return s.Update(ctx, id, form)
	}
	return s.Create(ctx, form)
}

// Create validates the form, resolves the image source and appends a new
// document to the catalog. The store assigns the id. Invalid input and
// upload failures abort before any store call.
func (s *ProductService) Create(ctx context.Context, form domain.ProductForm) error {
	const op = "ProductService.Create"

	if !s.busy.CompareAndSwap(false, true) {
		return fmt.Errorf("%s: %w", op, domain.ErrBusy)
	}
	defer s.busy.Store(false)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	pf, err := parseForm(form, true)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	fields, err := s.resolveFields(ctx, pf)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.store.Add(ctx, fields)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStore, err)
	}

	slog.Info("product created", "op", op, "id", id)
	s.resetForm()
	return nil
}

// Update validates the form and overwrites the target document's fields
// in place. The image source is optional: with neither a URL nor an
// attached file the stored image stays unchanged.
func (s *ProductService) Update(ctx context.Context, id string, form domain.ProductForm) error {
	const op = "ProductService.Update"

	if !s.busy.CompareAndSwap(false, true) {
		return fmt.Errorf("%s: %w", op, domain.ErrBusy)
	}
	defer s.busy.Store(false)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	pf, err := parseForm(form, false)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	fields, err := s.resolveFields(ctx, pf)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.store.Update(ctx, id, fields); err != nil {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStore, err)
	}

	slog.Info("product updated", "op", op, "id", id)
	s.resetForm()
	return nil
}

// Delete asks for confirmation, then issues a single document delete.
// Declined confirmation is a no-op. A store error leaves local state
// untouched: the next snapshot is the source of truth.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	const op = "ProductService.Delete"
	log := slog.With("op", op)

	if !s.confirmer.Confirm("Delete this product?") {
		log.Info("delete declined", "id", id)
		return nil
	}

	if err := s.store.Delete(ctx, id); err != nil {
		log.Error("failed to delete product", "id", id, "err", err)
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStore, err)
	}

	log.Info("product deleted", "id", id)
	return nil
}

func (s *ProductService) resetForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editingID = ""
	s.form.Reset()
}

// resolveFields turns validated input into a document payload. An
// attached image is uploaded first under a unique key; on upload failure
// the whole mutation is aborted and the store is never called.
func (s *ProductService) resolveFields(
	ctx context.Context, pf parsedForm,
) (domain.ProductFields, error) {
	fields := domain.ProductFields{
		"name":        pf.name,
		"description": pf.description,
		"price":       pf.price,
		"rating":      pf.rating,
		"isNew":       pf.isNew,
		"stock":       pf.stock,
	}

	imageURL := pf.imageURL
	if pf.image != nil {
		url, err := s.uploadImage(ctx, pf.image)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	// On update an absent image source keeps the stored value: the key
	// is omitted so the merge write leaves it untouched.
	if imageURL != "" {
		fields["imageUrl"] = imageURL
	}

	return fields, nil
}

func (s *ProductService) uploadImage(
	ctx context.Context, img *domain.ImageFile,
) (string, error) {
	key := imageKeyPrefix + img.Name + uuid.NewString()

	if err := s.blobs.Upload(ctx, key, img.Data); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrUpload, err)
	}

	url, err := s.blobs.URL(ctx, key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrUpload, err)
	}

	return url, nil
}

type parsedForm struct {
	name        string
	description string
	imageURL    string
	image       *domain.ImageFile
	price       float64
	rating      int
	stock       int
	isNew       bool
}

// parseForm validates and normalizes raw form input. requireImage is set
// for create: editing may keep the existing image unchanged.
func parseForm(f domain.ProductForm, requireImage bool) (parsedForm, error) {
	var pf parsedForm

	pf.name = strings.TrimSpace(f.Name)
	if pf.name == "" {
		return pf, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	pf.description = strings.TrimSpace(f.Description)
	if pf.description == "" {
		return pf, fmt.Errorf("%w: description is required", domain.ErrValidation)
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	if err != nil || price < 0 {
		return pf, fmt.Errorf("%w: price must be a non-negative number", domain.ErrValidation)
	}
	pf.price = price

	rating, err := strconv.Atoi(strings.TrimSpace(f.Rating))
	if err != nil || rating < 0 || rating > 5 {
		return pf, fmt.Errorf("%w: rating must be an integer in [0,5]", domain.ErrValidation)
	}
	pf.rating = rating

	stock, err := strconv.Atoi(strings.TrimSpace(f.Stock))
	if err != nil || stock < 0 {
		return pf, fmt.Errorf("%w: stock must be a non-negative integer", domain.ErrValidation)
	}
	pf.stock = stock

	pf.imageURL = strings.TrimSpace(f.ImageURL)
	pf.image = f.Image
	if requireImage && pf.imageURL == "" && pf.image == nil {
		return pf, fmt.Errorf("%w: image URL or file is required", domain.ErrValidation)
	}

	pf.isNew = f.IsNew
	return pf, nil
}
