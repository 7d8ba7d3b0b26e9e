package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"luxestay/dto"
	"luxestay/errors"
	"luxestay/repository"
	"luxestay/services/logger"
	"luxestay/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUploader struct {
	uploaded []string
	err      error
}

func (u *stubUploader) Upload(ctx context.Context, file ImageFile) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	u.uploaded = append(u.uploaded, file.Name)
	return "https://cdn.test/" + file.Name, nil
}

func newHotelFixture(t *testing.T, uploader ImageUploader) *HotelService {
	t.Helper()
	store := repository.NewMemoryStore()
	seedHotel(t, store)
	return NewHotelService(store.Hotels, uploader, logger.Discard())
}

func TestGetHotelHidesInactive(t *testing.T) {
	svc := newHotelFixture(t, nil)
	ctx := context.Background()

	_, err := svc.GetHotel(ctx, "hotel-off", guest)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))

	hotel, err := svc.GetHotel(ctx, "hotel-off", admin)
	require.NoError(t, err)
	assert.Equal(t, "Closed Inn", hotel.Name)

	_, err = svc.GetHotel(ctx, "missing", admin)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}

func TestSearchSeesNewHotels(t *testing.T) {
	svc := newHotelFixture(t, nil)
	ctx := context.Background()

	res, err := svc.Search(ctx, SearchSpec{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total, "inactive hotels are not searchable")

	res, err = svc.Search(ctx, SearchSpec{City: "nha trang"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)

	_, err = svc.CreateHotel(ctx, dto.CreateHotelRequest{
		Name:        "Harbor View",
		Description: "Rooms facing the harbor",
		Location:    dto.LocationRequest{Address: "1 Bach Dang", City: "Da Nang"},
		Rooms:       []dto.RoomRequest{{Type: "standard", Name: "Standard", Price: 80, Capacity: dto.CapacityRequest{Adults: 2}}},
	})
	require.NoError(t, err)

	res, err = svc.Search(ctx, SearchSpec{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
}

func TestAddReview(t *testing.T) {
	svc := newHotelFixture(t, nil)
	ctx := context.Background()

	hotel, err := svc.AddReview(ctx, "hotel-1", guest, dto.ReviewRequest{Rating: 4, Comment: " lovely "})
	require.NoError(t, err)
	require.Len(t, hotel.Reviews, 1)
	assert.Equal(t, "lovely", hotel.Reviews[0].Comment)
	assert.Equal(t, 4.0, hotel.Rating.Average)

	_, err = svc.AddReview(ctx, "hotel-1", guest, dto.ReviewRequest{Rating: 5})
	assert.True(t, errors.HasCode(err, errors.ErrCodeAlreadyExists))

	_, err = svc.AddReview(ctx, "hotel-off", guest, dto.ReviewRequest{Rating: 5})
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))

	_, err = svc.AddReview(ctx, "hotel-1", types.Actor{}, dto.ReviewRequest{Rating: 5})
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnauthorized))
}

func TestUploadImages(t *testing.T) {
	ctx := context.Background()
	files := []ImageFile{{Name: "lobby.jpg", Reader: strings.NewReader("x")}, {Name: "pool.jpg", Reader: strings.NewReader("y")}}

	disabled := newHotelFixture(t, nil)
	_, err := disabled.UploadImages(ctx, "hotel-1", files)
	assert.True(t, errors.HasCode(err, errors.ErrCodeUploadFailed))

	uploader := &stubUploader{}
	svc := newHotelFixture(t, uploader)

	_, err = svc.UploadImages(ctx, "hotel-1", nil)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))

	hotel, err := svc.UploadImages(ctx, "hotel-1", files)
	require.NoError(t, err)
	require.Len(t, hotel.Images, 2)
	assert.Equal(t, "https://cdn.test/pool.jpg", hotel.Images[1].URL)
	assert.Equal(t, "Seaside Resort", hotel.Images[0].Alt)

	uploader.err = fmt.Errorf("quota exceeded")
	_, err = svc.UploadImages(ctx, "hotel-1", files)
	assert.True(t, errors.HasCode(err, errors.ErrCodeUploadFailed))
}
