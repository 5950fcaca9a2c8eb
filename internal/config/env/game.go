package env

import (
	"fmt"
	"lootbox_backend/internal/config"
	"lootbox_backend/internal/model"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultWindow       = 60 * time.Second
	defaultMaxDraws     = 50
	defaultMaxCredit    = 100000
	defaultFlagsToBlock = 3
	defaultExperience   = 10
)

// Базовые веса редкостей, в сумме 1
var defaultTierWeights = map[model.Rarity]float64{
	model.RarityCommon:    0.50,
	model.RarityRare:      0.30,
	model.RarityEpic:      0.15,
	model.RarityLegendary: 0.05,
}

type gameFile struct {
	Draw  drawSection  `yaml:"draw"`
	Abuse abuseSection `yaml:"abuse"`
}

type drawSection struct {
	TierWeights       map[string]float64 `yaml:"tier_weights"`
	SequenceMode      string             `yaml:"sequence_mode"`
	ExperiencePerDraw *int               `yaml:"experience_per_draw"`
}

type abuseSection struct {
	Window       string `yaml:"window"`
	MaxDraws     int    `yaml:"max_draws"`
	MaxCredit    int    `yaml:"max_credit"`
	FlagsToBlock int    `yaml:"flags_to_block"`
	Store        string `yaml:"store"`
}

func readGameFile(path string) (*gameFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f gameFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &f, nil
}

type drawConfig struct {
	tierWeights       map[model.Rarity]float64
	sequenceMode      string
	experiencePerDraw int
}

// NewDrawConfigFromYAML читает секцию draw. Отсутствующие значения берутся по умолчанию
func NewDrawConfigFromYAML(path string) (config.DrawConfig, error) {
	f, err := readGameFile(path)
	if err != nil {
		return nil, err
	}
	return newDrawConfig(f.Draw)
}

func newDrawConfig(s drawSection) (config.DrawConfig, error) {
	// Заданные веса переопределяют базовые, остальные редкости сохраняют вес по умолчанию
	weights := make(map[model.Rarity]float64, len(defaultTierWeights))
	for r, w := range defaultTierWeights {
		weights[r] = w
	}
	for name, w := range s.TierWeights {
		r := model.Rarity(name)
		if r.Rank() < 0 {
			return nil, fmt.Errorf("unknown rarity %q in tier_weights", name)
		}
		if w <= 0 {
			return nil, fmt.Errorf("tier weight for %q must be positive", name)
		}
		weights[r] = w
	}

	mode := s.SequenceMode
	switch mode {
	case "":
		mode = config.SequenceFixed
	case config.SequenceFixed, config.SequenceIncremental:
	default:
		return nil, fmt.Errorf("unknown sequence_mode %q", mode)
	}

	experience := defaultExperience
	if s.ExperiencePerDraw != nil {
		experience = *s.ExperiencePerDraw
	}
	if experience < 0 {
		return nil, fmt.Errorf("experience_per_draw must not be negative")
	}

	return &drawConfig{
		tierWeights:       weights,
		sequenceMode:      mode,
		experiencePerDraw: experience,
	}, nil
}

func (c *drawConfig) TierWeights() map[model.Rarity]float64 {
	out := make(map[model.Rarity]float64, len(c.tierWeights))
	for r, w := range c.tierWeights {
		out[r] = w
	}
	return out
}

func (c *drawConfig) SequenceMode() string {
	return c.sequenceMode
}

func (c *drawConfig) ExperiencePerDraw() int {
	return c.experiencePerDraw
}

type abuseConfig struct {
	window       time.Duration
	maxDraws     int
	maxCredit    int
	flagsToBlock int
	store        string
}

// NewAbuseConfigFromYAML читает секцию abuse
func NewAbuseConfigFromYAML(path string) (config.AbuseConfig, error) {
	f, err := readGameFile(path)
	if err != nil {
		return nil, err
	}
	return newAbuseConfig(f.Abuse)
}

func newAbuseConfig(s abuseSection) (config.AbuseConfig, error) {
	cfg := &abuseConfig{
		window:       defaultWindow,
		maxDraws:     defaultMaxDraws,
		maxCredit:    defaultMaxCredit,
		flagsToBlock: defaultFlagsToBlock,
		store:        config.AbuseStoreMemory,
	}

	if s.Window != "" {
		w, err := time.ParseDuration(s.Window)
		if err != nil {
			return nil, fmt.Errorf("invalid abuse window: %w", err)
		}
		if w <= 0 {
			return nil, fmt.Errorf("abuse window must be positive")
		}
		cfg.window = w
	}
	if s.MaxDraws < 0 || s.MaxCredit < 0 || s.FlagsToBlock < 0 {
		return nil, fmt.Errorf("abuse limits must not be negative")
	}
	if s.MaxDraws > 0 {
		cfg.maxDraws = s.MaxDraws
	}
	if s.MaxCredit > 0 {
		cfg.maxCredit = s.MaxCredit
	}
	if s.FlagsToBlock > 0 {
		cfg.flagsToBlock = s.FlagsToBlock
	}

	switch s.Store {
	case "":
	case config.AbuseStoreMemory, config.AbuseStoreRedis:
		cfg.store = s.Store
	default:
		return nil, fmt.Errorf("unknown abuse store %q", s.Store)
	}

	return cfg, nil
}

func (c *abuseConfig) Window() time.Duration { return c.window }
func (c *abuseConfig) MaxDraws() int         { return c.maxDraws }
func (c *abuseConfig) MaxCredit() int        { return c.maxCredit }
func (c *abuseConfig) FlagsToBlock() int     { return c.flagsToBlock }
func (c *abuseConfig) Store() string         { return c.store }
