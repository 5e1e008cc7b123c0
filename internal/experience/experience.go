// Package experience loads the deployment's scene layout, rewards, wheel,
// capture and quiz settings from a schema-checked JSON document.
package experience

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/osse101/MelodyQuest_Go/internal/capture"
	"github.com/osse101/MelodyQuest_Go/internal/domain"
	"github.com/osse101/MelodyQuest_Go/internal/progression"
	"github.com/osse101/MelodyQuest_Go/internal/validation"
	"github.com/osse101/MelodyQuest_Go/internal/wheel"
)

// SchemaName identifies the embedded experience schema
const SchemaName = "experience.schema.json"

//go:embed schema.json
var schemaJSON []byte

//go:embed default.json
var defaultJSON []byte

var (
	validatorOnce sync.Once
	validatorInst validation.SchemaValidator
	validatorErr  error
)

func schemaValidator() (validation.SchemaValidator, error) {
	validatorOnce.Do(func() {
		validatorInst = validation.NewSchemaValidator()
		validatorErr = validatorInst.Register(SchemaName, schemaJSON)
	})
	return validatorInst, validatorErr
}

// Experience is the full deployment definition
type Experience struct {
	SceneCount        int                  `json:"scene_count"`
	NavigationCeiling int                  `json:"navigation_ceiling"`
	BlockingScenes    []domain.SceneIndex  `json:"blocking_scenes"`
	SceneRewards      []domain.SceneReward `json:"scene_rewards"`
	LedgerPolicy      domain.LedgerPolicy  `json:"ledger_policy"`
	Wheel             WheelConfig          `json:"wheel"`
	Capture           CaptureConfig        `json:"capture"`
	Quizzes           []domain.Quiz        `json:"quizzes"`
}

// WheelConfig describes the spin wheel
type WheelConfig struct {
	Slices      int                  `json:"slices"`
	FirstCenter *float64             `json:"first_center"`
	Tokens      []domain.RewardToken `json:"tokens"`
}

// CaptureConfig describes the camera scan scenes
type CaptureConfig struct {
	Scenes          []domain.SceneIndex `json:"scenes"`
	CommitThreshold int                 `json:"commit_threshold"`
	ShortLinks      []capture.ShortLink `json:"short_links"`
}

// Load reads and parses the experience file at path
func Load(path string) (*Experience, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read experience file %s: %w", path, err)
	}
	exp, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("experience file %s: %w", path, err)
	}
	return exp, nil
}

// Default returns the built-in experience
func Default() *Experience {
	exp, err := Parse(defaultJSON)
	if err != nil {
		panic(fmt.Sprintf("built-in experience is invalid: %v", err))
	}
	return exp
}

// Parse validates data against the schema, applies defaults and checks
// cross-field consistency
func Parse(data []byte) (*Experience, error) {
	v, err := schemaValidator()
	if err != nil {
		return nil, err
	}
	if err := v.ValidateBytes(data, SchemaName); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	var exp Experience
	if err := json.Unmarshal(data, &exp); err != nil {
		return nil, fmt.Errorf("failed to decode experience: %w", err)
	}
	exp.applyDefaults()

	if err := exp.Validate(); err != nil {
		return nil, err
	}
	return &exp, nil
}

func (e *Experience) applyDefaults() {
	if e.LedgerPolicy == "" {
		e.LedgerPolicy = domain.LedgerPolicyUnique
	}
	if len(e.Wheel.Tokens) == 0 {
		e.Wheel.Tokens = wheel.DefaultLayout().Tokens
	}
	if e.Wheel.Slices == 0 {
		e.Wheel.Slices = len(e.Wheel.Tokens)
	}
	if e.Wheel.FirstCenter == nil {
		fc := wheel.DefaultFirstCenter
		e.Wheel.FirstCenter = &fc
	}
	if e.Capture.CommitThreshold == 0 {
		e.Capture.CommitThreshold = capture.DefaultCommitThreshold
	}
}

// Validate checks everything the schema cannot express
func (e *Experience) Validate() error {
	if e.Wheel.Slices != len(e.Wheel.Tokens) {
		return fmt.Errorf("%w: wheel has %d slices but %d tokens", domain.ErrInvalidInput, e.Wheel.Slices, len(e.Wheel.Tokens))
	}
	for _, s := range e.Capture.Scenes {
		if !s.Valid(e.SceneCount) {
			return fmt.Errorf("%w: capture scene %d", domain.ErrOutOfRangeScene, s)
		}
	}
	for _, l := range e.Capture.ShortLinks {
		if !l.Scene.Valid(e.SceneCount) {
			return fmt.Errorf("%w: short link %s%s targets scene %d", domain.ErrOutOfRangeScene, l.Host, l.Path, l.Scene)
		}
	}
	return e.Progression().Validate()
}

// Progression returns the controller configuration
func (e *Experience) Progression() progression.Config {
	layout := wheel.Layout{FirstCenter: wheel.DefaultFirstCenter, Tokens: e.Wheel.Tokens}
	if e.Wheel.FirstCenter != nil {
		layout.FirstCenter = *e.Wheel.FirstCenter
	}
	return progression.Config{
		SceneCount:        e.SceneCount,
		NavigationCeiling: e.NavigationCeiling,
		BlockingScenes:    e.BlockingScenes,
		SceneRewards:      e.SceneRewards,
		LedgerPolicy:      e.LedgerPolicy,
		Wheel:             layout,
		Quizzes:           e.Quizzes,
	}
}

// Resolver builds the scan-text resolver with this experience's short links
func (e *Experience) Resolver() *capture.Resolver {
	return capture.NewResolver(e.Capture.ShortLinks)
}
