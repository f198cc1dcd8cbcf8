package helper

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

var ErrImageStoreNotConfigured = errors.New("image storage is not configured")

// ImageStore lưu ảnh của location, hotel, tour package, itinerary
type ImageStore interface {
	Upload(ctx context.Context, file io.Reader, folder string) (url string, publicID string, err error)
	Destroy(ctx context.Context, publicID string) error
	Sign(params map[string]string) (signature string, apiKey string, cloudName string)
}

type CloudinaryStore struct {
	cld       *cloudinary.Cloudinary
	cloudName string
	apiKey    string
	apiSecret string
	folder    string
}

func InitCloudinary(cloudName, apiKey, apiSecret, folder string) (*CloudinaryStore, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, ErrImageStoreNotConfigured
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryStore{cld: cld, cloudName: cloudName, apiKey: apiKey, apiSecret: apiSecret, folder: folder}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, file io.Reader, folder string) (string, string, error) {
	if folder == "" {
		folder = s.folder
	} else if s.folder != "" {
		folder = s.folder + "/" + folder
	}
	res, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       folder,
		ResourceType: "image",
	})
	if err != nil {
		return "", "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return "", "", fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	return res.SecureURL, res.PublicID, nil
}

func (s *CloudinaryStore) Destroy(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary destroy %s: %w", publicID, err)
	}
	return nil
}

func (s *CloudinaryStore) Sign(params map[string]string) (string, string, string) {
	return SignUploadParams(params, s.apiSecret), s.apiKey, s.cloudName
}

// SignUploadParams ký tham số upload phía client: sắp xếp key, nối bằng &, sha1 với secret
func SignUploadParams(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" || k == "file" || k == "api_key" || k == "resource_type" || k == "cloud_name" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+params[k])
	}

	h := sha1.New()
	h.Write([]byte(strings.Join(parts, "&") + secret))
	return hex.EncodeToString(h.Sum(nil))
}

// DestroyImagesAsync xoá ảnh cũ ở nền, lỗi chỉ ghi log
func DestroyImagesAsync(store ImageStore, publicIDs []string) {
	if store == nil || len(publicIDs) == 0 {
		return
	}
	go func() {
		for _, id := range publicIDs {
			if err := store.Destroy(context.Background(), id); err != nil {
				zap.L().Warn("destroy image failed", zap.String("publicId", id), zap.Error(err))
			}
		}
	}()
}
