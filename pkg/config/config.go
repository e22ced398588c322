package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/smscat"
	ConfigFileName    = "smscat.yml"

	DefaultModelPath = "sms_model.json"
)

// SmscatConfig holds all smscat configuration settings
type SmscatConfig struct {
	// ExtraMerchants is appended to the built-in merchant list
	ExtraMerchants []string `yaml:"extra_merchants" json:"extra_merchants"`

	// ConfidenceThreshold is the confidence below which a categorization is
	// flagged as low-confidence (0 disables flagging)
	ConfidenceThreshold float64 `yaml:"confidence_threshold" json:"confidence_threshold"`

	// MessageListLimitMax is the maximum number of results for message listing
	MessageListLimitMax int `yaml:"message_list_limit_max" json:"message_list_limit_max"`

	// TokenTTL is the TTL for service tokens in seconds
	TokenTTL int `yaml:"token_ttl" json:"token_ttl"`

	// AuthEnabled guards the authenticated API surface
	AuthEnabled bool `yaml:"auth_enabled" json:"auth_enabled"`

	// TrustedProxies is a list of CIDR ranges for trusted proxies
	TrustedProxies []string `yaml:"trusted_proxies" json:"trusted_proxies"`

	// ModelPath is the path of the model file
	ModelPath string `yaml:"model_path" json:"model_path"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *SmscatConfig
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *SmscatConfig {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			// Return defaults on error
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values
func newDefault() *SmscatConfig {
	return &SmscatConfig{
		ExtraMerchants:      []string{},
		ConfidenceThreshold: 0,
		MessageListLimitMax: 1000,
		TokenTTL:            28800,
		AuthEnabled:         true,
		TrustedProxies:      []string{},
		ModelPath:           DefaultModelPath,
		sources:             make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*SmscatConfig, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("SMSCAT_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var file fileConfig
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&file)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"extra_merchants", "confidence_threshold", "message_list_limit_max",
		"token_ttl", "auth_enabled", "trusted_proxies", "model_path",
	}
}

// fileConfig mirrors SmscatConfig for parsing smscat.yml. Pointer fields
// distinguish attributes missing from the file from explicit zero values,
// so auth_enabled: false and confidence_threshold: 0 apply.
type fileConfig struct {
	ExtraMerchants      []string `yaml:"extra_merchants"`
	ConfidenceThreshold *float64 `yaml:"confidence_threshold"`
	MessageListLimitMax *int     `yaml:"message_list_limit_max"`
	TokenTTL            *int     `yaml:"token_ttl"`
	AuthEnabled         *bool    `yaml:"auth_enabled"`
	TrustedProxies      []string `yaml:"trusted_proxies"`
	ModelPath           string   `yaml:"model_path"`
}

func (c *SmscatConfig) applyFileConfig(file *fileConfig) {
	if len(file.ExtraMerchants) > 0 {
		c.ExtraMerchants = file.ExtraMerchants
		c.sources["extra_merchants"] = "file"
	}
	if file.ConfidenceThreshold != nil {
		c.ConfidenceThreshold = *file.ConfidenceThreshold
		c.sources["confidence_threshold"] = "file"
	}
	if file.MessageListLimitMax != nil {
		c.MessageListLimitMax = *file.MessageListLimitMax
		c.sources["message_list_limit_max"] = "file"
	}
	if file.TokenTTL != nil {
		c.TokenTTL = *file.TokenTTL
		c.sources["token_ttl"] = "file"
	}
	if file.AuthEnabled != nil {
		c.AuthEnabled = *file.AuthEnabled
		c.sources["auth_enabled"] = "file"
	}
	if len(file.TrustedProxies) > 0 {
		c.TrustedProxies = file.TrustedProxies
		c.sources["trusted_proxies"] = "file"
	}
	if file.ModelPath != "" {
		c.ModelPath = file.ModelPath
		c.sources["model_path"] = "file"
	}
}

func (c *SmscatConfig) applyEnvConfig() {
	if val := os.Getenv("SMSCAT_EXTRA_MERCHANTS"); val != "" {
		c.ExtraMerchants = splitAndTrim(val)
		c.sources["extra_merchants"] = "environment"
	}
	if val := os.Getenv("SMSCAT_CONFIDENCE_THRESHOLD"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.ConfidenceThreshold = f
			c.sources["confidence_threshold"] = "environment"
		}
	}
	if val := os.Getenv("SMSCAT_MESSAGE_LIST_LIMIT_MAX"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.MessageListLimitMax = i
			c.sources["message_list_limit_max"] = "environment"
		}
	}
	if val := os.Getenv("SMSCAT_TOKEN_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.TokenTTL = i
			c.sources["token_ttl"] = "environment"
		}
	}
	if val := os.Getenv("SMSCAT_AUTH_ENABLED"); val != "" {
		c.AuthEnabled = val == "true" || val == "1"
		c.sources["auth_enabled"] = "environment"
	}
	if val := os.Getenv("SMSCAT_TRUSTED_PROXIES"); val != "" {
		c.TrustedProxies = splitAndTrim(val)
		c.sources["trusted_proxies"] = "environment"
	}
	if val := os.Getenv("SMSCAT_MODEL_PATH"); val != "" {
		c.ModelPath = val
		c.sources["model_path"] = "environment"
	}
}

// ConfigFilePath returns the path to the config file
func (c *SmscatConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *SmscatConfig) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// TokenTTLDuration returns the service token TTL as a duration
func (c *SmscatConfig) TokenTTLDuration() time.Duration {
	return time.Duration(c.TokenTTL) * time.Second
}

// IsTrustedProxy checks if an IP is from a trusted proxy
func (c *SmscatConfig) IsTrustedProxy(ip string) bool {
	if len(c.TrustedProxies) == 0 {
		return false
	}

	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return false
	}

	for _, cidr := range c.TrustedProxies {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			// Try as plain IP
			if net.ParseIP(cidr) != nil && cidr == ip {
				return true
			}
			continue
		}
		if network.Contains(parsedIP) {
			return true
		}
	}
	return false
}

// Validate validates the configuration
func (c *SmscatConfig) Validate() error {
	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence_threshold must be in [0, 1], got %v", c.ConfidenceThreshold)
	}

	if c.MessageListLimitMax <= 0 {
		return fmt.Errorf("message_list_limit_max must be positive, got %d", c.MessageListLimitMax)
	}

	for _, cidr := range c.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			if net.ParseIP(cidr) == nil {
				return fmt.Errorf("invalid trusted_proxies value: %s", cidr)
			}
		}
	}

	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *SmscatConfig) Attributes() []Attribute {
	return []Attribute{
		{Name: "extra_merchants", Value: strings.Join(c.ExtraMerchants, ","), Source: c.Source("extra_merchants")},
		{Name: "confidence_threshold", Value: strconv.FormatFloat(c.ConfidenceThreshold, 'f', -1, 64), Source: c.Source("confidence_threshold")},
		{Name: "message_list_limit_max", Value: strconv.Itoa(c.MessageListLimitMax), Source: c.Source("message_list_limit_max")},
		{Name: "token_ttl", Value: strconv.Itoa(c.TokenTTL), Source: c.Source("token_ttl")},
		{Name: "auth_enabled", Value: strconv.FormatBool(c.AuthEnabled), Source: c.Source("auth_enabled")},
		{Name: "trusted_proxies", Value: strings.Join(c.TrustedProxies, ","), Source: c.Source("trusted_proxies")},
		{Name: "model_path", Value: c.ModelPath, Source: c.Source("model_path")},
	}
}

// FormatText returns a text representation of the configuration
func (c *SmscatConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *SmscatConfig) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
