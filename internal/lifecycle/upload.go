package lifecycle

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"ezygallery/internal/fileutil"
	"ezygallery/internal/listing"
	"ezygallery/internal/logging"
	"ezygallery/internal/services"
	"ezygallery/internal/store"
)

// aspectRatios is the closed set of supported aspect names. Ratios are
// long side over short side; classification picks the nearest.
var aspectRatios = []struct {
	name  string
	ratio float64
}{
	{"1x1", 1.0},
	{"4x5", 1.25},
	{"3x4", 4.0 / 3.0},
	{"2x3", 1.5},
	{"5x7", 7.0 / 5.0},
	{"9x16", 16.0 / 9.0},
}

// UploadResult describes an accepted upload awaiting analysis.
type UploadResult struct {
	UploadID string `json:"upload_id"`
	Base     string `json:"base"`
	Filename string `json:"filename"`
	Aspect   string `json:"aspect_ratio"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Bytes    int64  `json:"size_bytes"`
}

// qcSidecar is the QC metadata written next to each accepted upload.
type qcSidecar struct {
	UploadID         string `json:"upload_id"`
	OriginalFilename string `json:"original_filename"`
	Extension        string `json:"extension"`
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	AspectRatio      string `json:"aspect_ratio"`
	SizeBytes        int64  `json:"size_bytes"`
	UploadedAt       string `json:"uploaded_at"`
	User             string `json:"user,omitempty"`
	SessionID        string `json:"session_id,omitempty"`
}

// IngestUpload quality-checks one artwork file and stages it into the
// uploads temp directory under a slug+unique base name, together with a
// thumbnail, an analysis-sized copy, and a QC sidecar.
func (m *Manager) IngestUpload(ctx context.Context, path, user, sessionID string) (*UploadResult, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !m.cfg.AllowedExtension(ext) {
		return nil, services.Wrap(services.ErrValidation, "upload", "qc",
			fmt.Sprintf("extension %q is not allowed", ext), nil)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "upload", "qc", path, err)
	}
	if info.Size() > m.cfg.MaxUploadBytes() {
		return nil, services.Wrap(services.ErrValidation, "upload", "qc",
			fmt.Sprintf("file exceeds %d MB limit", m.cfg.Limits.MaxUploadMB), nil)
	}

	img, width, height, err := decodeImage(path)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "upload", "qc", "file is not a decodable image", err)
	}
	aspect := classifyAspect(width, height)

	uploadID := uuid.NewString()
	base := listing.Slugify(stemOf(path)) + "-" + shortID(uploadID)
	if err := os.MkdirAll(m.cfg.Paths.UploadsTempDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrIO, "upload", "stage", m.cfg.Paths.UploadsTempDir, err)
	}

	staged := filepath.Join(m.cfg.Paths.UploadsTempDir, base+ext)
	if err := fileutil.CopyFile(path, staged); err != nil {
		return nil, services.Wrap(services.ErrIO, "upload", "stage", staged, err)
	}

	thumbPath := filepath.Join(m.cfg.Paths.UploadsTempDir, store.ThumbImageName(base))
	if err := saveScaledJPEG(thumbPath, img, m.cfg.Limits.ThumbWidth, m.cfg.Limits.ThumbHeight); err != nil {
		return nil, services.Wrap(services.ErrIO, "upload", "thumbnail", thumbPath, err)
	}

	analysePath := filepath.Join(m.cfg.Paths.UploadsTempDir, store.AnalyseImageName(base))
	if err := saveScaledJPEG(analysePath, img, m.cfg.Limits.AnalyseMaxWidth, 0); err != nil {
		return nil, services.Wrap(services.ErrIO, "upload", "analyse copy", analysePath, err)
	}

	sidecar := qcSidecar{
		UploadID:         uploadID,
		OriginalFilename: filepath.Base(path),
		Extension:        ext,
		Width:            width,
		Height:           height,
		AspectRatio:      aspect,
		SizeBytes:        info.Size(),
		UploadedAt:       time.Now().UTC().Format(time.RFC3339),
		User:             user,
		SessionID:        sessionID,
	}
	sidecarPath := filepath.Join(m.cfg.Paths.UploadsTempDir, store.QCSidecarName(base))
	if err := writeSidecar(sidecarPath, sidecar); err != nil {
		return nil, err
	}

	if m.events != nil {
		if err := m.events.RecordUpload(ctx, uploadID, sidecar.OriginalFilename, user, sessionID); err != nil {
			m.logger.Warn("failed to record upload event", logging.Error(err))
		} else if err := m.events.MarkUploaded(ctx, uploadID); err != nil {
			m.logger.Warn("failed to mark upload event", logging.Error(err))
		}
		if err := m.events.Log(ctx, "info", "upload", "staged "+base, "", user, sessionID); err != nil {
			m.logger.Warn("failed to write activity log entry", logging.Error(err))
		}
	}

	m.logger.Info("upload staged",
		logging.String("base", base),
		logging.String("aspect", aspect),
		logging.Int("width", width),
		logging.Int("height", height))

	return &UploadResult{
		UploadID: uploadID,
		Base:     base,
		Filename: sidecar.OriginalFilename,
		Aspect:   aspect,
		Width:    width,
		Height:   height,
		Bytes:    info.Size(),
	}, nil
}

func writeSidecar(path string, sidecar qcSidecar) error {
	data, err := json.MarshalIndent(sidecar, "", "  ")
	if err != nil {
		return services.Wrap(services.ErrIO, "upload", "encode sidecar", path, err)
	}
	if err := fileutil.WriteFileAtomic(path, append(data, '\n'), 0o644); err != nil {
		return services.Wrap(services.ErrIO, "upload", "write sidecar", path, err)
	}
	return nil
}

func readSidecar(path string) (qcSidecar, error) {
	var sidecar qcSidecar
	data, err := os.ReadFile(path)
	if err != nil {
		return sidecar, services.Wrap(services.ErrNotFound, "upload", "read sidecar", path, err)
	}
	if err := json.Unmarshal(data, &sidecar); err != nil {
		return sidecar, services.Wrap(services.ErrIO, "upload", "parse sidecar", path, err)
	}
	return sidecar, nil
}

// classifyAspect maps pixel dimensions to the nearest supported aspect
// name, orientation-independent.
func classifyAspect(width, height int) string {
	if width <= 0 || height <= 0 {
		return aspectRatios[0].name
	}
	long, short := float64(width), float64(height)
	if short > long {
		long, short = short, long
	}
	ratio := long / short

	best := aspectRatios[0].name
	bestDelta := math.Inf(1)
	for _, candidate := range aspectRatios {
		delta := math.Abs(ratio - candidate.ratio)
		if delta < bestDelta {
			best = candidate.name
			bestDelta = delta
		}
	}
	return best
}

func decodeImage(path string) (image.Image, int, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, 0, 0, err
	}
	bounds := img.Bounds()
	return img, bounds.Dx(), bounds.Dy(), nil
}

// saveScaledJPEG writes img to path, downscaled to fit within maxW x maxH
// (either may be zero for unbounded). Images already within bounds are
// re-encoded at full size.
func saveScaledJPEG(path string, img image.Image, maxW, maxH int) error {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	scale := 1.0
	if maxW > 0 && w > maxW {
		scale = float64(maxW) / float64(w)
	}
	if maxH > 0 && h > maxH {
		if s := float64(maxH) / float64(h); s < scale {
			scale = s
		}
	}

	out := img
	if scale < 1.0 {
		dw := int(math.Round(float64(w) * scale))
		dh := int(math.Round(float64(h) * scale))
		if dw < 1 {
			dw = 1
		}
		if dh < 1 {
			dh = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		out = dst
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := jpeg.Encode(file, out, &jpeg.Options{Quality: 85}); err != nil {
		return err
	}
	return file.Close()
}

func stemOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// shortID is the 8-character prefix used in staged upload base names.
func shortID(id string) string {
	cleaned := strings.ReplaceAll(id, "-", "")
	if len(cleaned) > 8 {
		return cleaned[:8]
	}
	return cleaned
}
