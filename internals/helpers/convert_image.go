package helper

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

const (
	maxAttachmentBytes = 10 << 20
	maxImageSide       = 1600
	webpQuality        = 80
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

// Hapus karakter selain huruf, angka, titik, dash, underscore
func sanitizeFilename(filename string) string {
	safe := unsafeFilenameChars.ReplaceAllString(filepath.Base(filename), "_")
	safe = strings.Trim(safe, "._")
	if safe == "" {
		safe = "file"
	}
	return safe
}

// GenerateUniqueFilename: <prefix>_<yyyymmdd_hhmmss>_<nama aman>
func GenerateUniqueFilename(prefix, originalFilename string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s", sanitizeFilename(prefix), now.Format("20060102_150405"), sanitizeFilename(originalFilename))
}

// SaveAttachment menyimpan file upload ke dir.
// Gambar (jpeg/png/webp) di-resize max 1600px lalu disimpan sebagai .webp,
// file lain (pdf, docx, ...) disimpan apa adanya. Return path relatif terhadap dir.
func SaveAttachment(dir, prefix string, fh *multipart.FileHeader, now time.Time) (string, error) {
	if fh == nil {
		return "", fmt.Errorf("no file")
	}
	if fh.Size > maxAttachmentBytes {
		return "", fmt.Errorf("file too large (%dKB), max %dKB", fh.Size/1024, maxAttachmentBytes/1024)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	all, err := io.ReadAll(io.LimitReader(src, maxAttachmentBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if len(all) == 0 {
		return "", fmt.Errorf("empty file")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := GenerateUniqueFilename(prefix, fh.Filename, now)
	data := all

	if img, ok := decodeImage(all); ok {
		out, err := encodeToWebP(downscaleIfNeeded(img, maxImageSide))
		if err != nil {
			return "", fmt.Errorf("encode webp: %w", err)
		}
		data = out
		name = strings.TrimSuffix(name, filepath.Ext(name)) + ".webp"
	}

	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return name, nil
}

// decodeImage: deteksi dari content sniffing, bukan ekstensi.
func decodeImage(all []byte) (image.Image, bool) {
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)

	var (
		img image.Image
		err error
	)
	switch {
	case strings.Contains(ct, "jpeg"):
		img, err = jpeg.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "png"):
		img, err = png.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "webp"):
		img, err = webp.Decode(bytes.NewReader(all))
	default:
		return nil, false
	}
	if err != nil {
		return nil, false
	}
	return img, true
}

func downscaleIfNeeded(src image.Image, maxSide int) image.Image {
	b := src.Bounds()
	if b.Dx() <= maxSide && b.Dy() <= maxSide {
		return src
	}
	return imaging.Fit(src, maxSide, maxSide, imaging.Lanczos)
}

func encodeToWebP(img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: webpQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
