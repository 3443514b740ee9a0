package lifecycle

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ezygallery/internal/fileutil"
	"ezygallery/internal/listing"
	"ezygallery/internal/logging"
	"ezygallery/internal/services"
	"ezygallery/internal/store"
)

// AnalyzeUpload runs the full analysis pipeline on a staged upload: the
// analyze command produces a listing document, a SKU is assigned, and
// the artwork moves from the uploads temp directory into its own folder
// under the processed root.
func (m *Manager) AnalyzeUpload(ctx context.Context, base string) (*listing.Listing, error) {
	tempDir := m.cfg.Paths.UploadsTempDir
	sidecar, err := readSidecar(filepath.Join(tempDir, store.QCSidecarName(base)))
	if err != nil {
		return nil, err
	}

	mainPath, err := stagedMainImage(tempDir, base)
	if err != nil {
		return nil, err
	}

	m.writeStatus(StepStarting, 0, base)
	if m.events != nil && sidecar.UploadID != "" {
		if err := m.events.MarkAnalysisStarted(ctx, sidecar.UploadID); err != nil {
			m.logger.Warn("failed to mark analysis started", logging.Error(err))
		}
	}

	l, err := m.runAnalyzer(ctx, base, mainPath)
	if err != nil {
		m.failAnalysis(ctx, base, sidecar.UploadID, err)
		return nil, err
	}

	m.writeStatus(StepGenerating, 60, base)

	if err := store.AssignOrGetSKU(l, m.sku, false); err != nil {
		m.failAnalysis(ctx, base, sidecar.UploadID, err)
		return nil, err
	}

	folder := processedFolderName(l, base)
	dir := filepath.Join(m.cfg.Paths.ProcessedDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		wrapped := services.Wrap(services.ErrIO, "analysis", "create folder", dir, err)
		m.failAnalysis(ctx, base, sidecar.UploadID, wrapped)
		return nil, wrapped
	}

	if err := m.moveStagedArtifacts(tempDir, base, dir, folder); err != nil {
		m.failAnalysis(ctx, base, sidecar.UploadID, err)
		return nil, err
	}

	loc := store.Location{
		Folder:      folder,
		Dir:         dir,
		ListingPath: filepath.Join(dir, store.ListingFilename(folder)),
	}
	m.fillListingPaths(l, loc, sidecar)
	if err := m.store.WriteListing(loc, l); err != nil {
		m.failAnalysis(ctx, base, sidecar.UploadID, err)
		return nil, err
	}

	m.generateComposites(ctx, dir)

	m.writeStatus(StepDone, 100, base)
	if m.events != nil && sidecar.UploadID != "" {
		if err := m.events.MarkAnalysisFinished(ctx, sidecar.UploadID); err != nil {
			m.logger.Warn("failed to mark analysis finished", logging.Error(err))
		}
	}

	m.logger.Info("analysis complete",
		logging.String("folder", folder),
		logging.String("sku", l.SKU))
	return l, nil
}

// Analyze re-runs analysis for an artwork already resolved by aspect and
// filename. The listing is rebuilt in place from the folder's main image.
func (m *Manager) Analyze(ctx context.Context, aspect, filename string) (*listing.Listing, error) {
	loc, err := m.store.Resolve(aspect, filename)
	if err != nil {
		return nil, err
	}
	if err := m.requireUnlocked("analyze", loc.ListingPath); err != nil {
		return nil, err
	}

	existing, err := m.store.ReadListing(loc)
	if err != nil {
		return nil, err
	}

	mainPath := filepath.Join(loc.Dir, store.MainImageName(loc.Folder))
	if _, err := os.Stat(mainPath); err != nil {
		return nil, services.Wrap(services.ErrNotFound, "analysis", "main image", mainPath, err)
	}

	m.writeStatus(StepStarting, 0, loc.Folder)
	fresh, err := m.runAnalyzer(ctx, loc.Folder, mainPath)
	if err != nil {
		m.writeStatus(StepFailed, 100, loc.Folder)
		return nil, err
	}
	m.writeStatus(StepGenerating, 60, loc.Folder)

	// Identity and placement survive a re-analysis; only the generated
	// copy fields are refreshed.
	existing.Title = fresh.Title
	existing.Description = fresh.Description
	existing.Tags = fresh.Tags
	existing.Materials = fresh.Materials
	existing.PrimaryColour = fresh.PrimaryColour
	existing.SecondaryColour = fresh.SecondaryColour
	existing.AIListing = fresh.AIListing
	if existing.Price == 0 {
		existing.Price = listing.TargetPrice
	}
	if err := m.store.WriteListing(loc, existing); err != nil {
		m.writeStatus(StepFailed, 100, loc.Folder)
		return nil, err
	}

	m.generateComposites(ctx, loc.Dir)
	m.writeStatus(StepDone, 100, loc.Folder)
	return existing, nil
}

// runAnalyzer shells out to the analyze command for imagePath and decodes
// the listing document it leaves beside the image.
func (m *Manager) runAnalyzer(ctx context.Context, name, imagePath string) (*listing.Listing, error) {
	m.writeStatus(StepOpenAICall, 20, name)

	logPath := filepath.Join(m.cfg.Paths.LogDir, "analyze_"+shortID(name)+".log")
	if err := m.analyzer.Analyze(ctx, imagePath, logPath); err != nil {
		return nil, err
	}

	stem := strings.TrimSuffix(imagePath, filepath.Ext(imagePath))
	listingPath := stem + "-listing.json"
	l, err := listing.Read(listingPath)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "analysis", "collect listing",
			"analyzer produced no listing document", err)
	}
	return l, nil
}

// generateComposites is best-effort: a failed mockup render leaves the
// listing analysed but without composites.
func (m *Manager) generateComposites(ctx context.Context, dir string) {
	if m.compositor == nil {
		return
	}
	logPath := filepath.Join(m.cfg.Paths.LogDir, "composite_gen_"+shortID(filepath.Base(dir))+".log")
	if err := m.compositor.Generate(ctx, dir, logPath); err != nil {
		m.logger.Warn("composite generation failed",
			logging.String("dir", dir),
			logging.Error(err))
	}
}

func (m *Manager) failAnalysis(ctx context.Context, base, uploadID string, cause error) {
	m.writeStatus(StepFailed, 100, base)
	if m.events != nil && uploadID != "" {
		if err := m.events.MarkAnalysisFailed(ctx, uploadID, cause.Error()); err != nil {
			m.logger.Warn("failed to mark analysis failed", logging.Error(err))
		}
	}
}

// processedFolderName derives the artwork folder from the SEO filename
// when the analyzer supplied one, otherwise builds the canonical form.
func processedFolderName(l *listing.Listing, base string) string {
	if seo := strings.TrimSpace(l.SeoFilename); seo != "" {
		return strings.TrimSuffix(seo, filepath.Ext(seo))
	}
	slug := listing.Slugify(strings.TrimSpace(l.Title))
	if slug == "" {
		slug = base
	}
	return fmt.Sprintf("%s-Artwork-by-Robin-Custance-%s", slug, l.SKU)
}

// moveStagedArtifacts renames the staged upload files into the artwork
// folder under their canonical template names. The first failed move
// aborts the pipeline.
func (m *Manager) moveStagedArtifacts(tempDir, base, dir, folder string) error {
	mainPath, err := stagedMainImage(tempDir, base)
	if err != nil {
		return err
	}

	moves := []struct{ src, dst string }{
		{mainPath, filepath.Join(dir, store.MainImageName(folder))},
		{filepath.Join(tempDir, store.ThumbImageName(base)), filepath.Join(dir, store.ThumbImageName(folder))},
		{filepath.Join(tempDir, store.AnalyseImageName(base)), filepath.Join(dir, store.AnalyseImageName(folder))},
		{filepath.Join(tempDir, store.QCSidecarName(base)), filepath.Join(dir, store.QCSidecarName(folder))},
	}
	for _, mv := range moves {
		if _, err := os.Stat(mv.src); err != nil {
			continue
		}
		if err := fileutil.MoveFile(mv.src, mv.dst); err != nil {
			return services.Wrap(services.ErrIO, "analysis", "move artifact", mv.dst, err)
		}
	}

	// The analyzer's listing document travels with the image.
	staged := stemOfPath(mainPath) + "-listing.json"
	if _, err := os.Stat(staged); err == nil {
		if err := fileutil.MoveFile(staged, filepath.Join(dir, store.ListingFilename(folder))); err != nil {
			return services.Wrap(services.ErrIO, "analysis", "move listing", folder, err)
		}
	}
	return nil
}

// fillListingPaths stamps identity and placement fields after the staged
// artifacts land in their folder.
func (m *Manager) fillListingPaths(l *listing.Listing, loc store.Location, sidecar qcSidecar) {
	l.Filename = sidecar.OriginalFilename
	if l.AspectRatio == "" {
		l.AspectRatio = sidecar.AspectRatio
	}
	l.ProcessedFolder = loc.Dir
	l.MainJPGPath = filepath.Join(loc.Dir, store.MainImageName(loc.Folder))
	l.ThumbJPGPath = filepath.Join(loc.Dir, store.ThumbImageName(loc.Folder))
	if l.OrigJPGPath == "" {
		l.OrigJPGPath = l.MainJPGPath
	}
	if l.Price == 0 {
		l.Price = listing.TargetPrice
	}
	if images, err := store.ImageFilesIn(loc.Dir); err == nil {
		l.Images = images
	}
	if l.SeoFilename == "" {
		l.SeoFilename = loc.Folder + ".jpg"
	}
}

// stagedMainImage finds the staged original for base, whichever allowed
// extension it was uploaded with.
func stagedMainImage(tempDir, base string) (string, error) {
	for _, ext := range []string{".jpg", ".jpeg", ".png"} {
		candidate := filepath.Join(tempDir, base+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", services.Wrap(services.ErrNotFound, "analysis", "staged image", base, nil)
}

func stemOfPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}
