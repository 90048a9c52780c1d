package service

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/google/uuid"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/entity"
	"go.uber.org/zap"
)

type fakePhotoRepo struct {
	photos map[uuid.UUID][]entity.ItemPhoto
}

func newFakePhotoRepo() *fakePhotoRepo {
	return &fakePhotoRepo{photos: make(map[uuid.UUID][]entity.ItemPhoto)}
}

func (r *fakePhotoRepo) Create(ctx context.Context, photo *entity.ItemPhoto) error {
	r.photos[photo.OrderItemID] = append(r.photos[photo.OrderItemID], *photo)
	return nil
}

func (r *fakePhotoRepo) ListByItem(ctx context.Context, orderItemID uuid.UUID) ([]entity.ItemPhoto, error) {
	return r.photos[orderItemID], nil
}

func (r *fakePhotoRepo) CountByItem(ctx context.Context, orderItemID uuid.UUID) (int64, error) {
	return int64(len(r.photos[orderItemID])), nil
}

func (r *fakePhotoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for itemID, list := range r.photos {
		for i, p := range list {
			if p.ID == id {
				r.photos[itemID] = append(list[:i], list[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newTestPhotoService(t *testing.T) (*PhotoService, *fakePhotoRepo) {
	t.Helper()
	repo := newFakePhotoRepo()
	return NewPhotoService(repo, t.TempDir(), zap.NewNop()), repo
}

func upload(name, contentType string, data []byte) PhotoUpload {
	return PhotoUpload{FileName: name, ContentType: contentType, Data: data}
}

func TestAddPhotosResamplesOversized(t *testing.T) {
	svc, _ := newTestPhotoService(t)
	itemID := uuid.New()

	result, err := svc.AddPhotos(context.Background(), itemID, []PhotoUpload{
		upload("big.jpg", "image/jpeg", testJPEG(t, 4000, 3000)),
	}, nil)
	if err != nil {
		t.Fatalf("AddPhotos: %v", err)
	}
	if len(result.Accepted) != 1 {
		t.Fatalf("accepted = %d, want 1 (skipped: %v)", len(result.Accepted), result.Skipped)
	}

	photo := result.Accepted[0]
	if photo.Width > MaxPhotoWidth || photo.Height > MaxPhotoHeight {
		t.Errorf("stored size %dx%d exceeds %dx%d", photo.Width, photo.Height, MaxPhotoWidth, MaxPhotoHeight)
	}
	// 4:3 source scaled to fit 1080 height keeps aspect ratio.
	if photo.Height != 1080 || photo.Width != 1440 {
		t.Errorf("stored size %dx%d, want 1440x1080", photo.Width, photo.Height)
	}
	if photo.ContentType != "image/jpeg" {
		t.Errorf("ContentType = %q, want image/jpeg", photo.ContentType)
	}
}

func TestAddPhotosSmallImageKeptAsIs(t *testing.T) {
	svc, _ := newTestPhotoService(t)

	result, err := svc.AddPhotos(context.Background(), uuid.New(), []PhotoUpload{
		upload("small.png", "image/png", testPNG(t, 640, 480)),
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Accepted) != 1 {
		t.Fatalf("accepted = %d, want 1", len(result.Accepted))
	}
	if p := result.Accepted[0]; p.Width != 640 || p.Height != 480 {
		t.Errorf("stored size %dx%d, want 640x480", p.Width, p.Height)
	}
}

func TestAddPhotosFillsOnlyRemainingSlots(t *testing.T) {
	svc, repo := newTestPhotoService(t)
	itemID := uuid.New()

	// Occupy 3 of the 5 slots.
	for i := 0; i < 3; i++ {
		repo.photos[itemID] = append(repo.photos[itemID], entity.ItemPhoto{ID: uuid.New(), OrderItemID: itemID})
	}

	batch := make([]PhotoUpload, 4)
	for i := range batch {
		batch[i] = upload("p.jpg", "image/jpeg", testJPEG(t, 100, 100))
	}

	result, err := svc.AddPhotos(context.Background(), itemID, batch, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Accepted) != 2 {
		t.Errorf("accepted = %d, want exactly the 2 free slots", len(result.Accepted))
	}
	if n, _ := repo.CountByItem(context.Background(), itemID); n != 5 {
		t.Errorf("stored photos = %d, want 5", n)
	}
}

func TestAddPhotosFullItemAddsNothing(t *testing.T) {
	svc, repo := newTestPhotoService(t)
	itemID := uuid.New()

	for i := 0; i < MaxPhotosPerItem; i++ {
		repo.photos[itemID] = append(repo.photos[itemID], entity.ItemPhoto{ID: uuid.New(), OrderItemID: itemID})
	}

	result, err := svc.AddPhotos(context.Background(), itemID, []PhotoUpload{
		upload("a.jpg", "image/jpeg", testJPEG(t, 100, 100)),
		upload("b.jpg", "image/jpeg", testJPEG(t, 100, 100)),
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Accepted) != 0 {
		t.Errorf("accepted = %d, want 0", len(result.Accepted))
	}
	if n, _ := repo.CountByItem(context.Background(), itemID); n != MaxPhotosPerItem {
		t.Errorf("stored photos = %d, want unchanged %d", n, MaxPhotosPerItem)
	}
}

func TestAddPhotosSkipsInvalidFilesWithoutAborting(t *testing.T) {
	svc, _ := newTestPhotoService(t)

	oversize := make([]byte, MaxPhotoBytes+1)
	result, err := svc.AddPhotos(context.Background(), uuid.New(), []PhotoUpload{
		upload("too-big.jpg", "image/jpeg", oversize),
		upload("wrong-type.gif", "image/gif", testPNG(t, 10, 10)),
		upload("garbage.jpg", "image/jpeg", []byte("not an image")),
		upload("good.jpg", "image/jpeg", testJPEG(t, 100, 100)),
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Accepted) != 1 {
		t.Errorf("accepted = %d, want 1", len(result.Accepted))
	}
	if len(result.Skipped) != 3 {
		t.Errorf("skipped = %d, want 3: %v", len(result.Skipped), result.Skipped)
	}
}

func TestAddPhotosProgressIsMonotonicAndComplete(t *testing.T) {
	svc, _ := newTestPhotoService(t)

	var reported []int
	batch := []PhotoUpload{
		upload("a.jpg", "image/jpeg", testJPEG(t, 100, 100)),
		upload("b.jpg", "image/jpeg", testJPEG(t, 100, 100)),
		upload("c.jpg", "image/jpeg", testJPEG(t, 100, 100)),
	}

	_, err := svc.AddPhotos(context.Background(), uuid.New(), batch, func(p int) {
		reported = append(reported, p)
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(reported) == 0 {
		t.Fatal("no progress reported")
	}
	for i := 1; i < len(reported); i++ {
		if reported[i] < reported[i-1] {
			t.Fatalf("progress not monotonic: %v", reported)
		}
	}
	if reported[len(reported)-1] != 100 {
		t.Errorf("final progress = %d, want 100", reported[len(reported)-1])
	}
}
