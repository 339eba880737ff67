package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// ReportConfig tunes the report windows. It is hot-reloaded from report.yml.
type ReportConfig struct {
	Timezone         string `mapstructure:"timezone"`
	RevenueMonths    int    `mapstructure:"revenueMonths"`
	CashFlowMonths   int    `mapstructure:"cashFlowMonths"`
	DashboardMonths  int    `mapstructure:"dashboardMonths"`
	PrintUsageMonths int    `mapstructure:"printUsageMonths"`
	EventMonths      int    `mapstructure:"eventMonths"`
	LookAheadDays    int    `mapstructure:"lookAheadDays"`
}

func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		Timezone:         "UTC",
		RevenueMonths:    12,
		CashFlowMonths:   6,
		DashboardMonths:  6,
		PrintUsageMonths: 12,
		EventMonths:      12,
		LookAheadDays:    7,
	}
}

// Location resolves the configured timezone, falling back to UTC.
func (c ReportConfig) Location() *time.Location {
	name := strings.TrimSpace(c.Timezone)
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

type ReportConfigHolder struct {
	current atomic.Value // holds ReportConfig
}

// NewStaticReportConfigHolder wraps a fixed config without file watching.
func NewStaticReportConfigHolder(cfg ReportConfig) *ReportConfigHolder {
	holder := &ReportConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func NewReportConfigHolder() (*ReportConfigHolder, error) {
	return NewReportConfigHolderFromPaths(
		"/var/lib/eventdesk/config", // Volume-mounted config
		"/etc/eventdesk",            // System config
		".",                         // Current directory (dev mode)
	)
}

func NewReportConfigHolderFromPaths(paths ...string) (*ReportConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("report")
	v.SetConfigType("yml")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	v.SetEnvPrefix("EVENTDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultReportConfig()
	v.SetDefault("report.timezone", defaults.Timezone)
	v.SetDefault("report.revenueMonths", defaults.RevenueMonths)
	v.SetDefault("report.cashFlowMonths", defaults.CashFlowMonths)
	v.SetDefault("report.dashboardMonths", defaults.DashboardMonths)
	v.SetDefault("report.printUsageMonths", defaults.PrintUsageMonths)
	v.SetDefault("report.eventMonths", defaults.EventMonths)
	v.SetDefault("report.lookAheadDays", defaults.LookAheadDays)

	fileLoaded := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		fileLoaded = false
	}

	cfg, err := decodeReportConfig(v)
	if err != nil {
		return nil, err
	}
	if err := validateReportConfig(cfg); err != nil {
		return nil, err
	}

	holder := &ReportConfigHolder{}
	holder.current.Store(cfg)

	if fileLoaded {
		v.WatchConfig()
		v.OnConfigChange(func(e fsnotify.Event) {
			updated, err := decodeReportConfig(v)
			if err != nil {
				log.Printf("[report-config] reload failed: %v", err)
				return
			}
			if err := validateReportConfig(updated); err != nil {
				log.Printf("[report-config] invalid config ignored: %v", err)
				return
			}
			holder.current.Store(updated)
			log.Printf("[report-config] reloaded from %s", e.Name)
		})
	}

	return holder, nil
}

// decodeReportConfig goes through AllSettings so nested defaults fill keys the file omits.
func decodeReportConfig(v *viper.Viper) (ReportConfig, error) {
	var wrapper struct {
		Report ReportConfig `mapstructure:"report"`
	}
	if err := v.Unmarshal(&wrapper); err != nil {
		return ReportConfig{}, err
	}
	return wrapper.Report, nil
}

func (h *ReportConfigHolder) Get() ReportConfig {
	if h == nil {
		return DefaultReportConfig()
	}
	cfg, ok := h.current.Load().(ReportConfig)
	if !ok {
		return DefaultReportConfig()
	}
	return cfg
}

func validateReportConfig(cfg ReportConfig) error {
	if cfg.RevenueMonths <= 0 || cfg.CashFlowMonths <= 0 || cfg.DashboardMonths <= 0 ||
		cfg.PrintUsageMonths <= 0 || cfg.EventMonths <= 0 {
		return errors.New("report windows must be positive")
	}
	if cfg.LookAheadDays < 0 {
		return errors.New("report.lookAheadDays cannot be negative")
	}
	if _, err := time.LoadLocation(strings.TrimSpace(cfg.Timezone)); err != nil {
		return errors.New("report.timezone is not a valid IANA location")
	}
	return nil
}
