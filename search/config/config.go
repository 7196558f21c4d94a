// Package config turns a preset name, a JSON or YAML file, or literal JSON
// text into a validated search.Config.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/twitter/lineup/common"
	"github.com/twitter/lineup/search"
)

// WorkerCount is an integer number of workers or "auto", which is stored
// as 0 and means one worker per available CPU.
type WorkerCount int

const autoWorkers = "auto"

// ParseWorkerCount reads a worker count flag or field value.
func ParseWorkerCount(s string) (WorkerCount, error) {
	s = strings.TrimSpace(s)
	if s == autoWorkers || s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("workerCount must be a non-negative integer or %q, got %q", autoWorkers, s)
	}
	return WorkerCount(n), nil
}

func (w *WorkerCount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		wc, err := ParseWorkerCount(s)
		*w = wc
		return err
	}
	wc, err := ParseWorkerCount(string(data))
	*w = wc
	return err
}

func (w WorkerCount) MarshalJSON() ([]byte, error) {
	if w == 0 {
		return json.Marshal(autoWorkers)
	}
	return json.Marshal(int(w))
}

func (w *WorkerCount) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: workerCount must be a scalar", value.Line)
	}
	wc, err := ParseWorkerCount(value.Value)
	*w = wc
	return err
}

func (w WorkerCount) String() string {
	if w == 0 {
		return autoWorkers
	}
	return strconv.Itoa(int(w))
}

// SearchJSONConfig is the file form of a search.Config. Unset fields take
// the value of the Preset it names, "default" when empty.
type SearchJSONConfig struct {
	Preset             string       `json:"preset" yaml:"preset"`
	Budget             *int         `json:"budget" yaml:"budget"`
	MinSpend           *int         `json:"minSpend" yaml:"minSpend"`
	MinAcceptableScore *float64     `json:"minAcceptableScore" yaml:"minAcceptableScore"`
	DiversityThreshold *int         `json:"diversityThreshold" yaml:"diversityThreshold"`
	TopK               *int         `json:"topK" yaml:"topK"`
	WorkerCount        *WorkerCount `json:"workerCount" yaml:"workerCount"`
	PoolSize           *int         `json:"poolSize" yaml:"poolSize"`
	MinCandidateScore  *float64     `json:"minCandidateScore" yaml:"minCandidateScore"`
	MinSlotReserve     *int         `json:"minSlotReserve" yaml:"minSlotReserve"`
	DisableScoreBound  *bool        `json:"disableScoreBound" yaml:"disableScoreBound"`
	MaxRankedRosters   *int         `json:"maxRankedRosters" yaml:"maxRankedRosters"`
	TimeBudget         string       `json:"timeBudget" yaml:"timeBudget"` // e.g. 90s, 0 for no limit
}

func (s SearchJSONConfig) String() string {
	b, _ := json.Marshal(s)
	return fmt.Sprintf("SearchJSONConfig: %s", b)
}

// Apply overlays the fields set in s on top of base.
func (s SearchJSONConfig) Apply(base search.Config) (search.Config, error) {
	c := base
	setInt(&c.Budget, s.Budget)
	setInt(&c.MinSpend, s.MinSpend)
	setFloat(&c.MinAcceptableScore, s.MinAcceptableScore)
	setInt(&c.DiversityThreshold, s.DiversityThreshold)
	setInt(&c.TopK, s.TopK)
	if s.WorkerCount != nil {
		c.WorkerCount = int(*s.WorkerCount)
	}
	setInt(&c.PoolSize, s.PoolSize)
	setFloat(&c.MinCandidateScore, s.MinCandidateScore)
	setInt(&c.MinSlotReserve, s.MinSlotReserve)
	if s.DisableScoreBound != nil {
		c.DisableScoreBound = *s.DisableScoreBound
	}
	setInt(&c.MaxRankedRosters, s.MaxRankedRosters)
	if s.TimeBudget != "" {
		d, err := time.ParseDuration(s.TimeBudget)
		if err != nil {
			return c, errors.Wrapf(err, "invalid timeBudget %q", s.TimeBudget)
		}
		c.TimeBudget = d
	}
	return c, nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// PresetNames returns the supported preset names, sorted.
func PresetNames() []string {
	keys := make([]string, 0, len(SearchConfigs))
	for k := range SearchConfigs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetConfig resolves configSelector, which is a preset name, the path of a
// .json, .yaml or .yml file, or literal JSON text, and validates the result.
func GetConfig(configSelector string) (search.Config, error) {
	if preset, ok := SearchConfigs[configSelector]; ok {
		log.Debugf("using preset %s", configSelector)
		return preset, preset.Validate()
	}

	jc, err := GetJSONConfig(configSelector)
	if err != nil {
		return search.Config{}, err
	}
	presetName := jc.Preset
	if presetName == "" {
		presetName = "default"
	}
	base, ok := SearchConfigs[presetName]
	if !ok {
		return search.Config{}, fmt.Errorf("invalid preset %s, supported values are %v", presetName, PresetNames())
	}
	log.Infof("using preset %s for unset fields", presetName)

	cfg, err := jc.Apply(base)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// ApplyOverrides sets the fields named in a "key=value,key=value" list, e.g.
// "budget=60000,workerCount=auto", on top of base. Keys are the file field
// names and the result is validated.
func ApplyOverrides(base search.Config, overrides string) (search.Config, error) {
	kv := common.SplitCommaSepToMap(overrides)
	if len(kv) == 0 {
		return base, fmt.Errorf("invalid overrides %q, expected key=value pairs", overrides)
	}
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var doc strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&doc, "%s: %s\n", k, kv[k])
	}
	jc, err := parseYAML([]byte(doc.String()))
	if err != nil {
		return base, errors.Wrapf(err, "invalid overrides %q", overrides)
	}
	if jc.Preset != "" {
		return base, fmt.Errorf("invalid overrides %q, preset can only be set through the config", overrides)
	}
	cfg, err := jc.Apply(base)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// GetJSONConfig parses configSelector as a file path or literal JSON text
// without merging presets.
func GetJSONConfig(configSelector string) (*SearchJSONConfig, error) {
	text := strings.TrimSpace(configSelector)
	if strings.HasPrefix(text, "{") {
		return parseJSON([]byte(text))
	}

	ext := strings.ToLower(filepath.Ext(configSelector))
	switch ext {
	case ".json", ".yaml", ".yml":
	default:
		return nil, fmt.Errorf("invalid configuration %s, supported values are %v, a .json/.yaml file or JSON text",
			configSelector, PresetNames())
	}

	data, err := os.ReadFile(configSelector)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't read config file %s", configSelector)
	}
	var jc *SearchJSONConfig
	if ext == ".json" {
		jc, err = parseJSON(data)
	} else {
		jc, err = parseYAML(data)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't parse config file %s", configSelector)
	}
	return jc, nil
}

func parseJSON(data []byte) (*SearchJSONConfig, error) {
	jc := &SearchJSONConfig{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(jc); err != nil {
		return nil, errors.Wrap(err, "couldn't parse JSON config")
	}
	return jc, nil
}

func parseYAML(data []byte) (*SearchJSONConfig, error) {
	jc := &SearchJSONConfig{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(jc); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "couldn't parse YAML config")
	}
	return jc, nil
}
