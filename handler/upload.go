package handler

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"travel_manager/constants"
	"travel_manager/helper"
	"travel_manager/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// UploadImages nhận multipart field "files", trả về [{url, publicId}]
func UploadImages(c *fiber.Ctx) error {
	if deps.Images == nil {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, helper.ErrImageStoreNotConfigured.Error(), nil)
	}
	form, err := c.MultipartForm()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	files := form.File["files"]
	if len(files) == 0 {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("no file uploaded"), "files")
	}
	folder := strings.Trim(c.FormValue("folder"), "/ ")

	uploaded := make([]fiber.Map, 0, len(files))
	for _, fh := range files {
		if !allowedImageTypes[fh.Header.Get(fiber.HeaderContentType)] {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("unsupported image type: "+fh.Filename), "files")
		}
		file, err := fh.Open()
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.UPLOAD_FAILED, err)
		}
		url, publicID, err := deps.Images.Upload(c.UserContext(), file, folder)
		file.Close()
		if err != nil {
			log().Error("image upload failed", zap.String("file", fh.Filename), zap.Error(err))
			return utils.ErrorResponse(c, fiber.StatusBadGateway, constants.UPLOAD_FAILED, err)
		}
		uploaded = append(uploaded, fiber.Map{"url": url, "publicId": publicID})
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, uploaded)
}

// UploadSignature cho phép trình duyệt upload thẳng lên cloudinary
func UploadSignature(c *fiber.Ctx) error {
	if deps.Images == nil {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, helper.ErrImageStoreNotConfigured.Error(), nil)
	}
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	params := map[string]string{"timestamp": timestamp}
	if folder := c.Query("folder"); folder != "" {
		params["folder"] = folder
	}
	signature, apiKey, cloudName := deps.Images.Sign(params)
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"signature": signature,
		"timestamp": timestamp,
		"apiKey":    apiKey,
		"cloudName": cloudName,
		"folder":    params["folder"],
	})
}
