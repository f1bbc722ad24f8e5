package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv = "NEWS_CLASSIFIER_CONFIG"
	datasetEnv    = "NEWS_DATASET_PATH"
	outputDirEnv  = "NEWS_OUTPUT_DIR"
)

// Config holds high-level settings required across the application.
type Config struct {
	Dataset Dataset `yaml:"dataset"`
	Text    Text    `yaml:"text"`
	PCA     PCA     `yaml:"pca"`
	Split   Split   `yaml:"split"`
	Forest  Forest  `yaml:"forest"`
	SVM     SVM     `yaml:"svm"`
	Output  Output  `yaml:"output"`
	Logging Logging `yaml:"logging"`
}

// Dataset describes the delimited input file.
type Dataset struct {
	Path string `yaml:"path"`
	// Delimiter is a one-character field separator; the source dataset
	// convention is semicolon, so that is the default, not comma.
	Delimiter string `yaml:"delimiter"`
	// StripMarkup removes HTML tags before character normalization.
	StripMarkup bool `yaml:"stripMarkup"`
}

// Text configures stop-word removal and stemming.
type Text struct {
	StopWords []string `yaml:"stopWords"`
	Stemmer   string   `yaml:"stemmer"`
}

// PCA enumerates the curated column subset fed into the reducer.
type PCA struct {
	// Tokens is the fixed list of discriminative stems selected offline;
	// the three scalar features are always prepended to it.
	Tokens     []string `yaml:"tokens"`
	Components int      `yaml:"components"`
}

// Split controls the train/test partition.
type Split struct {
	Fraction float64 `yaml:"fraction"`
	Seed     int64   `yaml:"seed"`
}

// Forest configures the random-forest trainers.
type Forest struct {
	Trees   int   `yaml:"trees"`
	MinLeaf int   `yaml:"minLeaf"`
	Seed    int64 `yaml:"seed"`
}

// SVM configures the support-vector trainers and the radial grid search.
type SVM struct {
	LinearCost      float64   `yaml:"linearCost"`
	Costs           []float64 `yaml:"costs"`
	Gammas          []float64 `yaml:"gammas"`
	HoldoutFraction float64   `yaml:"holdoutFraction"`
	MaxPasses       int       `yaml:"maxPasses"`
}

// Output describes where reports and plots land.
type Output struct {
	Dir string `yaml:"dir"`
}

// Logging mirrors the slog level knob.
type Logging struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(datasetEnv); v != "" {
		c.Dataset.Path = v
	}

	if v := os.Getenv(outputDirEnv); v != "" {
		c.Output.Dir = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Dataset.Path != "" {
		base.Dataset.Path = override.Dataset.Path
	}
	if override.Dataset.Delimiter != "" {
		base.Dataset.Delimiter = override.Dataset.Delimiter
	}
	if override.Dataset.StripMarkup {
		base.Dataset.StripMarkup = true
	}

	if len(override.Text.StopWords) > 0 {
		base.Text.StopWords = override.Text.StopWords
	}
	if override.Text.Stemmer != "" {
		base.Text.Stemmer = override.Text.Stemmer
	}

	if len(override.PCA.Tokens) > 0 {
		base.PCA.Tokens = override.PCA.Tokens
	}
	if override.PCA.Components > 0 {
		base.PCA.Components = override.PCA.Components
	}

	if override.Split.Fraction > 0 {
		base.Split.Fraction = override.Split.Fraction
	}
	if override.Split.Seed != 0 {
		base.Split.Seed = override.Split.Seed
	}

	if override.Forest.Trees > 0 {
		base.Forest.Trees = override.Forest.Trees
	}
	if override.Forest.MinLeaf > 0 {
		base.Forest.MinLeaf = override.Forest.MinLeaf
	}
	if override.Forest.Seed != 0 {
		base.Forest.Seed = override.Forest.Seed
	}

	if override.SVM.LinearCost > 0 {
		base.SVM.LinearCost = override.SVM.LinearCost
	}
	if len(override.SVM.Costs) > 0 {
		base.SVM.Costs = override.SVM.Costs
	}
	if len(override.SVM.Gammas) > 0 {
		base.SVM.Gammas = override.SVM.Gammas
	}
	if override.SVM.HoldoutFraction > 0 {
		base.SVM.HoldoutFraction = override.SVM.HoldoutFraction
	}
	if override.SVM.MaxPasses > 0 {
		base.SVM.MaxPasses = override.SVM.MaxPasses
	}

	if override.Output.Dir != "" {
		base.Output.Dir = override.Output.Dir
	}
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Dataset: Dataset{
			Path:      "data/news.csv",
			Delimiter: ";",
		},
		Text: Text{
			StopWords: DefaultStopWords(),
			Stemmer:   "english",
		},
		PCA: PCA{
			Tokens:     DefaultCuratedTokens(),
			Components: 8,
		},
		Split: Split{
			Fraction: 0.8,
			Seed:     1,
		},
		Forest: Forest{
			Trees:   200,
			MinLeaf: 1,
			Seed:    1,
		},
		SVM: SVM{
			LinearCost:      1,
			Costs:           []float64{1e-2, 1e-1, 1, 1e1, 1e2, 1e3, 1e4, 1e5},
			Gammas:          []float64{1e-5, 1e-4, 1e-3, 1e-2, 1e-1, 1, 1e1, 1e2},
			HoldoutFraction: 0.2,
			MaxPasses:       20,
		},
		Output: Output{
			Dir: "out",
		},
		Logging: Logging{
			Level: "info",
		},
	}
}
