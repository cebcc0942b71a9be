package video

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	// maxFormBytes caps the whole multipart request, banner included.
	maxFormBytes   = 12 << 20
	maxBannerBytes = 10 << 20

	bannerMaxWidth  = 1280
	bannerMaxHeight = 720
	bannerQuality   = 85
)

var (
	errBannerTooLarge = errors.New("banner must be 10 MB or smaller")
	errBannerNotImage = errors.New("banner must be a valid image file")
)

// processBannerUpload reads the banner file from the multipart form,
// scales it to fit within 1280x720, and re-encodes it as JPEG. It
// returns the generated storage key and the encoded bytes. An absent
// or empty file field returns ("", nil, nil) so callers can treat the
// banner as optional.
func processBannerUpload(r *http.Request) (string, []byte, error) {
	file, header, err := r.FormFile("banner")
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("read banner field: %w", err)
	}
	defer file.Close()

	if header.Filename == "" {
		return "", nil, nil
	}

	data, err := io.ReadAll(io.LimitReader(file, maxBannerBytes+1))
	if err != nil {
		return "", nil, fmt.Errorf("read banner: %w", err)
	}
	if len(data) > maxBannerBytes {
		return "", nil, errBannerTooLarge
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", nil, errBannerNotImage
	}

	img = imaging.Fit(img, bannerMaxWidth, bannerMaxHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(bannerQuality)); err != nil {
		return "", nil, fmt.Errorf("encode banner: %w", err)
	}

	return uuid.NewString() + ".jpg", buf.Bytes(), nil
}
