// Package config provides configuration management for smscat.
//
// Configuration is loaded from an optional YAML file and overridden by
// environment variables. The source of every attribute (default, file,
// environment) is tracked and surfaced through Attributes.
//
// # Key Configuration Options
//
//   - SMSCAT_CONFIG_PATH: directory containing smscat.yml
//   - SMSCAT_MODEL_PATH: path of the model file
//   - SMSCAT_TOKEN_KEY: base64 HMAC key for service tokens
//   - DATABASE_URL: PostgreSQL connection string
//   - PORT: server listen port
package config
