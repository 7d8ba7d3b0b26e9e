package services

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ImageFile là một file ảnh nhận từ multipart form
type ImageFile struct {
	Name   string
	Reader io.Reader
}

// ImageUploader đẩy ảnh lên storage và trả về URL công khai
type ImageUploader interface {
	Upload(ctx context.Context, file ImageFile) (string, error)
}

type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryUploader(cld *cloudinary.Cloudinary, folder string) *CloudinaryUploader {
	return &CloudinaryUploader{cld: cld, folder: folder}
}

func (u *CloudinaryUploader) Upload(ctx context.Context, file ImageFile) (string, error) {
	res, err := u.cld.Upload.Upload(ctx, file.Reader, uploader.UploadParams{
		Folder: u.folder,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", file.Name, err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("upload %s: %s", file.Name, res.Error.Message)
	}
	return res.SecureURL, nil
}
