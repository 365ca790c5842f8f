// Package config loads, saves, and validates request configurations for the
// simulation and optimization pipeline. The core packages never validate
// inputs themselves; everything reaching them has passed Validate here.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/fxhedge/fxpath"
	"github.com/rustyeddy/fxhedge/hedge"
	"github.com/rustyeddy/fxhedge/optimizer"
	"github.com/rustyeddy/fxhedge/profit"
)

// Config represents one complete simulation/optimization request.
type Config struct {
	Firm       profit.FirmProfile `json:"firm" yaml:"firm"`
	Simulation fxpath.Config      `json:"simulation" yaml:"simulation"`
	Hedge      hedge.Config       `json:"hedge" yaml:"hedge"`
	Optimizer  optimizer.Options  `json:"optimizer" yaml:"optimizer"`
	Journal    JournalConfig      `json:"journal" yaml:"journal"`
}

// JournalConfig selects where run records go. An empty Type disables
// journaling.
type JournalConfig struct {
	Type         string `json:"type,omitempty" yaml:"type,omitempty"` // "csv" or "sqlite"
	RunsFile     string `json:"runs_file,omitempty" yaml:"runs_file,omitempty"`
	FrontierFile string `json:"frontier_file,omitempty" yaml:"frontier_file,omitempty"`
	DBPath       string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML first, JSON fallback)
// and validates it.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration as YAML (.yaml/.yml) or indented JSON.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks every invariant the core relies on.
func (c *Config) Validate() error {
	f := c.Firm
	if f.RevenueQ <= 0 {
		return fmt.Errorf("firm.revenue_q must be positive")
	}
	if f.CostQ <= 0 {
		return fmt.Errorf("firm.cost_q must be positive")
	}
	if f.CostQ >= f.RevenueQ {
		return fmt.Errorf("firm.cost_q must be below revenue_q (base profit would be negative)")
	}
	if f.Assets <= 0 {
		return fmt.Errorf("firm.assets must be positive")
	}
	if f.ExportShare < 0 || f.ExportShare > 1 {
		return fmt.Errorf("firm.export_share_theta must be between 0 and 1")
	}
	if f.ForeignCostShare < 0 || f.ForeignCostShare > 1 {
		return fmt.Errorf("firm.foreign_cost_share_kappa must be between 0 and 1")
	}
	if f.PassThrough < 0 || f.PassThrough > 1 {
		return fmt.Errorf("firm.pass_through_psi must be between 0 and 1")
	}

	s := c.Simulation
	if s.NPaths < 100 {
		return fmt.Errorf("simulation.n_paths must be at least 100")
	}
	if s.NPaths > 20000 {
		return fmt.Errorf("simulation.n_paths cannot exceed 20000")
	}
	if s.HorizonQuarters < 1 {
		return fmt.Errorf("simulation.horizon_quarters must be at least 1")
	}
	if s.SigmaAnnual <= 0 || s.SigmaAnnual > 0.5 {
		return fmt.Errorf("simulation.sigma_annual must be in (0, 0.5]")
	}
	if s.SpotRate <= 0 {
		return fmt.Errorf("simulation.spot_rate must be positive")
	}
	if s.TransactionCostBps < 0 || s.TransactionCostBps > 100 {
		return fmt.Errorf("simulation.transaction_cost_bps must be between 0 and 100")
	}

	h := c.Hedge
	if h.ForwardRatio < 0 || h.OptionRatio < 0 || h.NaturalRatio < 0 {
		return fmt.Errorf("hedge ratios cannot be negative")
	}
	if h.ForwardRatio > 1 || h.OptionRatio > 1 || h.NaturalRatio > 1 {
		return fmt.Errorf("hedge ratios cannot exceed 1")
	}
	if h.TotalRatio() > 1.5 {
		return fmt.Errorf("total hedge ratio %.2f exceeds the over-hedging limit 1.5", h.TotalRatio())
	}
	if h.TenorMonths <= 0 {
		return fmt.Errorf("hedge.tenor_months must be positive")
	}

	switch c.Journal.Type {
	case "", "csv", "sqlite":
	default:
		return fmt.Errorf("journal.type must be empty, 'csv', or 'sqlite'")
	}
	if c.Journal.Type == "csv" && (c.Journal.RunsFile == "" || c.Journal.FrontierFile == "") {
		return fmt.Errorf("journal runs_file and frontier_file required for CSV type")
	}
	if c.Journal.Type == "sqlite" && c.Journal.DBPath == "" {
		return fmt.Errorf("journal db_path required for SQLite type")
	}
	return nil
}

// Default returns a configuration with the reference INR/USD scenario.
func Default() *Config {
	return &Config{
		Firm: profit.FirmProfile{
			RevenueQ:         1000,
			CostQ:            800,
			Assets:           5000,
			ExportShare:      0.4,
			ForeignCostShare: 0.2,
			PassThrough:      0.3,
		},
		Simulation: fxpath.Config{
			Model:              fxpath.ModelGBM,
			NPaths:             5000,
			HorizonQuarters:    4,
			SigmaAnnual:        0.08,
			DriftMode:          fxpath.DriftHistorical,
			SpotRate:           83.0,
			DomesticRate:       0.065,
			ForeignRate:        0.05,
			TransactionCostBps: 10,
			Seed:               42,
		},
		Hedge: hedge.Config{
			ForwardRatio: 0.5,
			OptionRatio:  0.3,
			NaturalRatio: 0.2,
			TenorMonths:  3,
		},
		Optimizer: optimizer.Options{
			Objective:      optimizer.MaximizeNPM,
			TenorMonths:    3,
			Trials:         5,
			FrontierPoints: 20,
		},
		Journal: JournalConfig{
			Type:         "csv",
			RunsFile:     "./runs.csv",
			FrontierFile: "./frontier.csv",
		},
	}
}
