package paycal

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// DefaultRecordsPath locates the payments array in a dataset.
const DefaultRecordsPath = "$.payments"

// Project is one financed property and its payoff configuration.
type Project struct {
	Key  string
	Name string
	// Settlement is the payoff strategy, FlatUnit when nil.
	Settlement SettlementStrategy
	// Categories eligible to the early payoff, Mortgage and Initial when empty.
	Categories []Category
}

// DisplayName is the name of the project, or its key.
func (p *Project) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Key
}

// Strategy returns the payoff strategy of the project.
func (p *Project) Strategy() SettlementStrategy {
	if p.Settlement == nil {
		return FlatUnit{}
	}
	return p.Settlement
}

// IsEligible reports whether records of category c are valued in the early payoff.
func (p *Project) IsEligible(c Category) bool {
	if len(p.Categories) == 0 {
		return c == Mortgage || c == Initial
	}
	return slices.Contains(p.Categories, c)
}

// settlementConfig is the dataset representation of a payoff strategy.
type settlementConfig struct {
	Strategy   string   `json:"strategy"`
	AnnualRate Number   `json:"annual_rate"`
	Categories []string `json:"categories"`
}

func (c *settlementConfig) strategy() (SettlementStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(c.Strategy)) {
	case "", StrategyFlat:
		return FlatUnit{}, nil
	case StrategyAmortization:
		rate, ok := c.AnnualRate.Decimal()
		if !ok || !rate.IsPositive() {
			return nil, fmt.Errorf("amortization strategy requires a positive annual_rate")
		}
		return AmortizationImplied{AnnualRate: rate}, nil
	default:
		return nil, fmt.Errorf("unknown settlement strategy %q", c.Strategy)
	}
}

// Dataset is the content of a project file.
type Dataset struct {
	Project *Project
	Records []*PaymentRecord
}

// DecodeDataset decodes a project dataset.
//
// The records are located by the JSONPath recordsPath (DefaultRecordsPath if
// empty). defaultKey is used when the dataset has no "project_key".
func DecodeDataset(r io.Reader, defaultKey, recordsPath string) (*Dataset, error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot decode dataset: %w", err)
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("dataset is not a JSON object")
	}

	if recordsPath == "" {
		recordsPath = DefaultRecordsPath
	}
	found, err := jsonpath.Get(recordsPath, doc)
	if err != nil {
		return nil, fmt.Errorf("cannot locate payments at %q: %w", recordsPath, err)
	}
	items, ok := found.([]any)
	if !ok {
		return nil, fmt.Errorf("payments at %q is not an array but %T", recordsPath, found)
	}

	p := &Project{Key: defaultKey}
	if key, _ := obj["project_key"].(string); key != "" {
		p.Key = key
	}
	if name, _ := obj["project_name"].(string); name != "" {
		p.Name = name
	}
	if p.Key == "" {
		p.Key = "default"
	}
	if raw, ok := obj["settlement"]; ok {
		var cfg settlementConfig
		if err := remarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("invalid settlement configuration: %w", err)
		}
		if p.Settlement, err = cfg.strategy(); err != nil {
			return nil, fmt.Errorf("project %q: %w", p.Key, err)
		}
		for _, c := range cfg.Categories {
			p.Categories = append(p.Categories, ParseCategory(c))
		}
	}

	ds := &Dataset{Project: p}
	for i, item := range items {
		rec := new(PaymentRecord)
		if err := remarshal(item, rec); err != nil {
			return nil, fmt.Errorf("invalid payment #%d of project %q: %w", i, p.Key, err)
		}
		if rec.ID == "" {
			rec.ID = strconv.Itoa(i)
		}
		rec.ProjectKey = p.Key
		rec.ProjectName = p.DisplayName()
		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}

func remarshal(v any, target any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

// Schedule is the immutable set of records of all projects.
type Schedule struct {
	projects    []*Project
	records     []*PaymentRecord
	index       map[string]*PaymentRecord
	defaultRate decimal.Decimal
}

// NewSchedule assembles datasets into a schedule.
//
// Records with no period at all are assigned to the earliest known year.
// Project keys must be unique.
func NewSchedule(datasets ...*Dataset) (*Schedule, error) {
	s := &Schedule{index: make(map[string]*PaymentRecord)}
	for _, ds := range datasets {
		if s.Project(ds.Project.Key) != nil {
			return nil, fmt.Errorf("duplicate project %q", ds.Project.Key)
		}
		s.projects = append(s.projects, ds.Project)
		for _, r := range ds.Records {
			if _, exists := s.index[r.Key()]; exists {
				return nil, fmt.Errorf("duplicate payment %q", r.Key())
			}
			s.records = append(s.records, r)
			s.index[r.Key()] = r
		}
	}

	fallbackYear := 0
	for _, r := range s.records {
		if y := r.Year(); y > 0 && (fallbackYear == 0 || y < fallbackYear) {
			fallbackYear = y
		}
	}
	if fallbackYear == 0 {
		fallbackYear = Today().Year()
	}
	for _, r := range s.records {
		if r.Year() == 0 {
			r.PeriodYear = fallbackYear
		}
	}

	s.defaultRate = DefaultRate(s.records)
	return s, nil
}

// LoadSchedule reads dataset files. The project key defaults to the file name.
func LoadSchedule(recordsPath string, files ...string) (*Schedule, error) {
	var datasets []*Dataset
	for _, file := range files {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("could not open dataset %q: %w", file, err)
		}
		key := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		ds, err := DecodeDataset(f, key, recordsPath)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("could not decode dataset %q: %w", file, err)
		}
		datasets = append(datasets, ds)
	}
	return NewSchedule(datasets...)
}

// Projects returns the projects in load order.
func (s *Schedule) Projects() []*Project { return s.projects }

// ProjectKeys returns the project keys in load order.
func (s *Schedule) ProjectKeys() []string {
	keys := make([]string, len(s.projects))
	for i, p := range s.projects {
		keys[i] = p.Key
	}
	return keys
}

// Project returns the project by key or nil.
func (s *Schedule) Project(key string) *Project {
	for _, p := range s.projects {
		if p.Key == key {
			return p
		}
	}
	return nil
}

// Records returns all records in load order.
func (s *Schedule) Records() []*PaymentRecord { return s.records }

// Record returns a record by key or nil.
func (s *Schedule) Record(key string) *PaymentRecord { return s.index[key] }

// DefaultRate is the rate computed at load time, see [DefaultRate].
func (s *Schedule) DefaultRate() decimal.Decimal { return s.defaultRate }

// Years returns the sorted distinct years of the schedule.
func (s *Schedule) Years() []int {
	var years []int
	for _, r := range s.records {
		if y := r.Year(); !slices.Contains(years, y) {
			years = append(years, y)
		}
	}
	slices.Sort(years)
	return years
}
