package lifecycle

import (
	"encoding/json"
	"os"

	"ezygallery/internal/fileutil"
	"ezygallery/internal/logging"
	"ezygallery/internal/services"
)

// Analysis progress checkpoints, written to the status file as the
// pipeline advances.
const (
	StepIdle       = "idle"
	StepStarting   = "starting"
	StepOpenAICall = "openai_call"
	StepGenerating = "generating"
	StepDone       = "done"
	StepFailed     = "failed"
)

// Status is the analysis progress checkpoint document.
type Status struct {
	Step    string `json:"step"`
	Percent int    `json:"percent"`
	File    string `json:"file"`
}

// AnalysisStatus reads the current checkpoint. A missing status file
// reads as idle.
func (m *Manager) AnalysisStatus() (Status, error) {
	data, err := os.ReadFile(m.cfg.Paths.AnalysisStatusFile)
	if err != nil {
		if os.IsNotExist(err) {
			return Status{Step: StepIdle}, nil
		}
		return Status{}, services.Wrap(services.ErrIO, "lifecycle", "read status", m.cfg.Paths.AnalysisStatusFile, err)
	}
	var status Status
	if err := json.Unmarshal(data, &status); err != nil {
		return Status{}, services.Wrap(services.ErrIO, "lifecycle", "parse status", m.cfg.Paths.AnalysisStatusFile, err)
	}
	return status, nil
}

// writeStatus records a checkpoint. Status writes are best-effort; a
// failed checkpoint must not abort the analysis itself.
func (m *Manager) writeStatus(step string, percent int, file string) {
	data, err := json.Marshal(Status{Step: step, Percent: percent, File: file})
	if err != nil {
		return
	}
	if err := fileutil.WriteFileAtomic(m.cfg.Paths.AnalysisStatusFile, append(data, '\n'), 0o644); err != nil {
		m.logger.Warn("failed to write analysis status",
			logging.String("step", step),
			logging.Error(err))
	}
}
