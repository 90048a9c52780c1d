package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/entity"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/repository"
	"github.com/fedotiuk-dm/aksi-wizard-api/pkg/apperror"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

const (
	// MaxPhotosPerItem caps how many photos one item may carry.
	MaxPhotosPerItem = 5
	// MaxPhotoBytes caps the original upload size.
	MaxPhotoBytes = 5 << 20
	// MaxPhotoWidth and MaxPhotoHeight bound the stored image; uploads are
	// resampled down to fit, preserving aspect ratio.
	MaxPhotoWidth  = 1920
	MaxPhotoHeight = 1080

	jpegQuality = 85
)

// PhotoUpload is one file of a batch upload.
type PhotoUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// SkippedPhoto reports why a file of the batch was not stored.
type SkippedPhoto struct {
	FileName string `json:"file_name"`
	Reason   string `json:"reason"`
}

// PhotoBatchResult is the outcome of a batch upload.
type PhotoBatchResult struct {
	Accepted []entity.ItemPhoto `json:"accepted"`
	Skipped  []SkippedPhoto     `json:"skipped,omitempty"`
}

// ProgressFunc receives the batch compression progress as a percentage.
// Reported values are monotonically non-decreasing.
type ProgressFunc func(percent int)

// PhotoService stores item condition photos: it validates, resamples and
// re-encodes uploads sequentially, then records their metadata.
type PhotoService struct {
	photoRepo  repository.PhotoRepository
	storageDir string
	logger     *zap.Logger
}

// NewPhotoService creates a new photo service
func NewPhotoService(photoRepo repository.PhotoRepository, storageDir string, logger *zap.Logger) *PhotoService {
	return &PhotoService{photoRepo: photoRepo, storageDir: storageDir, logger: logger}
}

// AddPhotos processes a batch of uploads for an item. When only K slots
// remain, exactly the first K files of the batch are considered and the
// rest silently dropped. Files failing validation are skipped without
// aborting the batch. Files are compressed strictly one after another.
func (s *PhotoService) AddPhotos(ctx context.Context, orderItemID uuid.UUID, uploads []PhotoUpload, progress ProgressFunc) (*PhotoBatchResult, error) {
	existing, err := s.photoRepo.CountByItem(ctx, orderItemID)
	if err != nil {
		return nil, err
	}

	slots := MaxPhotosPerItem - int(existing)
	if slots < 0 {
		slots = 0
	}

	candidates := uploads
	if len(candidates) > slots {
		candidates = candidates[:slots]
	}

	result := &PhotoBatchResult{}
	total := len(uploads)
	report := func(processed int) {
		if progress != nil && total > 0 {
			progress(processed * 100 / total)
		}
	}

	for i, upload := range candidates {
		photo, reason := s.processUpload(ctx, orderItemID, &upload)
		if reason != "" {
			result.Skipped = append(result.Skipped, SkippedPhoto{FileName: upload.FileName, Reason: reason})
		} else {
			result.Accepted = append(result.Accepted, *photo)
		}
		report(i + 1)
	}
	// Dropped files beyond the slot limit count toward completion.
	report(total)

	s.logger.Info("photo batch processed",
		zap.String("order_item_id", orderItemID.String()),
		zap.Int("accepted", len(result.Accepted)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int("dropped", total-len(candidates)))
	return result, nil
}

// processUpload validates, resamples and stores one file. A non-empty
// reason means the file was skipped.
func (s *PhotoService) processUpload(ctx context.Context, orderItemID uuid.UUID, upload *PhotoUpload) (*entity.ItemPhoto, string) {
	if len(upload.Data) > MaxPhotoBytes {
		return nil, fmt.Sprintf("file exceeds %d bytes", MaxPhotoBytes)
	}

	switch upload.ContentType {
	case "image/jpeg", "image/png":
	default:
		return nil, "unsupported content type " + upload.ContentType
	}

	src, _, err := image.Decode(bytes.NewReader(upload.Data))
	if err != nil {
		return nil, "not a decodable image"
	}

	resized := resampleToFit(src, MaxPhotoWidth, MaxPhotoHeight)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, "failed to re-encode image"
	}

	photo := &entity.ItemPhoto{
		ID:          uuid.New(),
		OrderItemID: orderItemID,
		FileName:    upload.FileName,
		ContentType: "image/jpeg",
		SizeBytes:   int64(buf.Len()),
		Width:       resized.Bounds().Dx(),
		Height:      resized.Bounds().Dy(),
	}
	photo.Path = filepath.Join(s.storageDir, orderItemID.String(), photo.ID.String()+".jpg")

	if err := os.MkdirAll(filepath.Dir(photo.Path), 0o755); err != nil {
		return nil, "failed to prepare storage directory"
	}
	if err := os.WriteFile(photo.Path, buf.Bytes(), 0o644); err != nil {
		return nil, "failed to store image"
	}

	if err := s.photoRepo.Create(ctx, photo); err != nil {
		_ = os.Remove(photo.Path)
		return nil, "failed to record photo metadata"
	}
	return photo, ""
}

// resampleToFit scales the image down to fit within maxW x maxH keeping
// aspect ratio. Images already within bounds are returned unscaled.
func resampleToFit(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return src
	}

	scale := float64(maxW) / float64(w)
	if s := float64(maxH) / float64(h); s < scale {
		scale = s
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// ListPhotos returns the stored photos of an item.
func (s *PhotoService) ListPhotos(ctx context.Context, orderItemID uuid.UUID) ([]entity.ItemPhoto, error) {
	return s.photoRepo.ListByItem(ctx, orderItemID)
}

// ReadPhoto returns the stored image bytes for a photo record.
func (s *PhotoService) ReadPhoto(ctx context.Context, orderItemID, photoID uuid.UUID) ([]byte, *entity.ItemPhoto, error) {
	photos, err := s.photoRepo.ListByItem(ctx, orderItemID)
	if err != nil {
		return nil, nil, err
	}
	for i := range photos {
		if photos[i].ID == photoID {
			data, err := os.ReadFile(photos[i].Path)
			if err != nil {
				return nil, nil, apperror.NewNotFoundError("Photo file")
			}
			return data, &photos[i], nil
		}
	}
	return nil, nil, apperror.NewNotFoundError("Photo")
}

// DeletePhoto removes a photo record and its file.
func (s *PhotoService) DeletePhoto(ctx context.Context, orderItemID, photoID uuid.UUID) error {
	photos, err := s.photoRepo.ListByItem(ctx, orderItemID)
	if err != nil {
		return err
	}
	for i := range photos {
		if photos[i].ID == photoID {
			if err := s.photoRepo.Delete(ctx, photoID); err != nil {
				return err
			}
			if err := os.Remove(photos[i].Path); err != nil && !os.IsNotExist(err) {
				s.logger.Warn("failed to remove photo file",
					zap.String("path", photos[i].Path), zap.Error(err))
			}
			return nil
		}
	}
	return apperror.NewNotFoundError("Photo")
}
