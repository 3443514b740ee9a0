package config

const (
	defaultInputDir           = "~/.local/share/ezygallery/unanalysed-artwork"
	defaultUploadsTempDir     = "~/.local/share/ezygallery/uploads"
	defaultProcessedDir       = "~/.local/share/ezygallery/processed-artwork"
	defaultFinalisedDir       = "~/.local/share/ezygallery/finalised-artwork"
	defaultGenericTextsDir    = "~/.local/share/ezygallery/generic-texts"
	defaultMockupsDir         = "~/.local/share/ezygallery/mockups"
	defaultLogDir             = "~/.local/share/ezygallery/logs"
	defaultDataDir            = "~/.local/share/ezygallery/data"
	defaultSKUTracker         = "~/.local/share/ezygallery/data/sku_tracker.json"
	defaultSessionRegistry    = "~/.local/share/ezygallery/data/session_registry.json"
	defaultAnalysisStatusFile = "~/.local/share/ezygallery/data/analysis_status.json"
	defaultEventsDB           = "~/.local/share/ezygallery/data/events.db"
	defaultAnalyzeTimeout     = 300
	defaultGenerateTimeout    = 600
	defaultMaxUploadMB        = 32
	defaultMaxSessionsPerUser = 5
	defaultThumbWidth         = 400
	defaultThumbHeight        = 400
	defaultAnalyseMaxWidth    = 2000
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:           defaultInputDir,
			UploadsTempDir:     defaultUploadsTempDir,
			ProcessedDir:       defaultProcessedDir,
			FinalisedDir:       defaultFinalisedDir,
			GenericTextsDir:    defaultGenericTextsDir,
			MockupsDir:         defaultMockupsDir,
			LogDir:             defaultLogDir,
			DataDir:            defaultDataDir,
			SKUTracker:         defaultSKUTracker,
			SessionRegistry:    defaultSessionRegistry,
			AnalysisStatusFile: defaultAnalysisStatusFile,
			EventsDB:           defaultEventsDB,
		},
		Analysis: Analysis{
			AnalyzeCommand:  []string{"artwork-analyze"},
			GenerateCommand: []string{"artwork-composites"},
			AnalyzeTimeout:  defaultAnalyzeTimeout,
			GenerateTimeout: defaultGenerateTimeout,
		},
		Limits: Limits{
			MaxUploadMB:        defaultMaxUploadMB,
			AllowedExtensions:  []string{"jpg", "jpeg", "png"},
			MaxSessionsPerUser: defaultMaxSessionsPerUser,
			ThumbWidth:         defaultThumbWidth,
			ThumbHeight:        defaultThumbHeight,
			AnalyseMaxWidth:    defaultAnalyseMaxWidth,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
