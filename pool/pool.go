// Package pool reads candidate pools from JSON, YAML and CSV files.
//
// JSON and YAML files hold either a list of candidates or an object with a
// "candidates" list. Each candidate gives its natural positions, which are
// expanded to every slot they may fill, or its exact roster slots:
//
//	- id: "1001"
//	  name: Some Guard
//	  team: BOS
//	  salary: 7400
//	  projectedScore: 41.5
//	  positions: PG/SG
//
// CSV files follow the DraftKings salary export: a header row naming at
// least ID, Salary and either Roster Position or Position. The projection
// comes from a Projection column when present, AvgPointsPerGame otherwise.
package pool

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/twitter/lineup/roster"
)

type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	CSV  Format = "csv"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".csv":
		return CSV, nil
	}
	return "", fmt.Errorf("unsupported pool file %s, expected .json, .yaml, .yml or .csv", path)
}

// record is the JSON and YAML form of a candidate.
type record struct {
	ID             string   `json:"id" yaml:"id"`
	Name           string   `json:"name" yaml:"name"`
	Team           string   `json:"team" yaml:"team"`
	Salary         *int     `json:"salary" yaml:"salary"`
	ProjectedScore *float64 `json:"projectedScore" yaml:"projectedScore"`
	// Natural positions, e.g. "PG/SG", expanded through the eligibility rules.
	Positions string `json:"positions" yaml:"positions"`
	// Exact slots, e.g. "PG/G/UTIL", taken as given.
	RosterPositions string `json:"rosterPositions" yaml:"rosterPositions"`
}

type document struct {
	Candidates []record `json:"candidates" yaml:"candidates"`
}

// candidate rejects records without a salary or projection, which would
// otherwise decode as zero.
func (r record) candidate() (roster.Candidate, error) {
	if r.Salary == nil {
		return roster.Candidate{}, errors.New("missing salary")
	}
	if r.ProjectedScore == nil {
		return roster.Candidate{}, errors.New("missing projectedScore")
	}
	c := roster.Candidate{
		ID:             strings.TrimSpace(r.ID),
		Name:           r.Name,
		Team:           r.Team,
		Salary:         *r.Salary,
		ProjectedScore: *r.ProjectedScore,
	}
	slots, err := eligibleSlots(r.Positions, r.RosterPositions)
	c.EligibleSlots = slots
	return c, err
}

// eligibleSlots prefers exact roster slots over natural positions. Both
// empty yields an empty set, which the search rejects with the candidate's
// index.
func eligibleSlots(positions, rosterPositions string) (roster.SlotSet, error) {
	if strings.TrimSpace(rosterPositions) != "" {
		var ss roster.SlotSet
		err := ss.UnmarshalText([]byte(rosterPositions))
		return ss, err
	}
	if strings.TrimSpace(positions) != "" {
		return roster.ParseSlots(positions)
	}
	return 0, nil
}

// Load reads the pool file at path, picking the format from its extension.
func Load(path string) ([]roster.Candidate, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't open pool file")
	}
	defer f.Close()

	cands, err := Read(f, format)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't load pool file %s", path)
	}
	log.WithFields(log.Fields{
		"path":       path,
		"format":     format,
		"candidates": len(cands),
	}).Info("Loaded candidate pool")
	return cands, nil
}

// Read decodes a pool in the given format.
func Read(r io.Reader, format Format) ([]roster.Candidate, error) {
	switch format {
	case JSON:
		return readJSON(r)
	case YAML:
		return readYAML(r)
	case CSV:
		return readCSV(r)
	}
	return nil, fmt.Errorf("unsupported pool format %q", format)
}

func fromRecords(records []record) ([]roster.Candidate, error) {
	cands := make([]roster.Candidate, 0, len(records))
	for i, r := range records {
		c, err := r.candidate()
		if err != nil {
			return nil, errors.Wrapf(err, "candidate %d (%q)", i, r.ID)
		}
		cands = append(cands, c)
	}
	return cands, nil
}

func readJSON(r io.Reader) ([]roster.Candidate, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	var records []record
	if len(data) > 0 && data[0] == '[' {
		err = json.Unmarshal(data, &records)
	} else {
		doc := document{}
		err = json.Unmarshal(data, &doc)
		records = doc.Candidates
	}
	if err != nil {
		return nil, errors.Wrap(err, "invalid JSON pool")
	}
	return fromRecords(records)
}

func readYAML(r io.Reader) ([]roster.Candidate, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if err == io.EOF {
			return []roster.Candidate{}, nil
		}
		return nil, errors.Wrap(err, "invalid YAML pool")
	}

	var records []record
	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	var err error
	switch node.Kind {
	case yaml.SequenceNode:
		err = node.Decode(&records)
	case yaml.MappingNode:
		doc := document{}
		err = node.Decode(&doc)
		records = doc.Candidates
	default:
		err = fmt.Errorf("line %d: expected a list of candidates or a candidates key", node.Line)
	}
	if err != nil {
		return nil, errors.Wrap(err, "invalid YAML pool")
	}
	return fromRecords(records)
}

// Header names understood in CSV files, matched case-insensitively. The
// first listed alias present wins.
var csvColumns = map[string][]string{
	"id":              {"id"},
	"name":            {"name"},
	"team":            {"teamabbrev", "team"},
	"salary":          {"salary"},
	"rosterPositions": {"roster position", "rosterpositions"},
	"positions":       {"position", "positions"},
	"projectedScore":  {"projection", "projectedscore", "avgpointspergame"},
}

func readCSV(r io.Reader) ([]roster.Candidate, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err == io.EOF {
		return []roster.Candidate{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	cols := map[string]int{}
	for field, aliases := range csvColumns {
		cols[field] = -1
		for _, a := range aliases {
			if i, ok := index[a]; ok {
				cols[field] = i
				break
			}
		}
	}
	for _, required := range []string{"id", "salary", "projectedScore"} {
		if cols[required] < 0 {
			return nil, fmt.Errorf("CSV header %v has no %s column", header, required)
		}
	}
	if cols["rosterPositions"] < 0 && cols["positions"] < 0 {
		return nil, fmt.Errorf("CSV header %v has no Roster Position or Position column", header)
	}

	var cands []roster.Candidate
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "invalid CSV row")
		}
		line, _ := cr.FieldPos(0)
		get := func(field string) string {
			if i := cols[field]; i >= 0 && i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}

		salary, err := strconv.Atoi(get("salary"))
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: invalid salary", line)
		}
		score, err := strconv.ParseFloat(get("projectedScore"), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: invalid projection", line)
		}
		c, err := record{
			ID:              get("id"),
			Name:            get("name"),
			Team:            get("team"),
			Salary:          &salary,
			ProjectedScore:  &score,
			Positions:       get("positions"),
			RosterPositions: get("rosterPositions"),
		}.candidate()
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		cands = append(cands, c)
	}
	return cands, nil
}
