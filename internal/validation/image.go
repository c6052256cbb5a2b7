package validation

import (
	"errors"
	"fmt"
)

// ImageTypes are the accepted upload content types.
var ImageTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/webp", "image/gif"}

var (
	ErrImageType     = errors.New("invalid file type, supported formats: JPEG, PNG, WebP, GIF")
	ErrImageTooLarge = errors.New("file too large")
	ErrImageName     = errors.New("file type not allowed")
)

// Image describes an upload before it is downloaded.
type Image struct {
	FileName string `validate:"omitempty,safefilename"`
	MimeType string `validate:"required,oneof=image/jpeg image/jpg image/png image/webp image/gif"`
	Size     int64  `validate:"gte=0"`
}

// CheckImage validates an upload against a size limit in megabytes.
func CheckImage(img Image, maxSizeMB int) error {
	err := Struct(img)
	var verr *Error
	if errors.As(err, &verr) {
		switch verr.Field {
		case "MimeType":
			return ErrImageType
		case "FileName":
			return ErrImageName
		}
	}
	if err != nil {
		return err
	}
	if img.Size > int64(maxSizeMB)*1024*1024 {
		return fmt.Errorf("%w: maximum size %dMB", ErrImageTooLarge, maxSizeMB)
	}
	return nil
}
