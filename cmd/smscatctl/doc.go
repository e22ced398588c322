// Package smscat provides an SMS transaction categorization service.
//
// The service classifies Indian bank and wallet transaction SMS into
// spending categories (Essentials, Emergency, Impulse) with a TF-IDF plus
// multinomial naive Bayes model, and extracts the rupee amount and merchant
// name from each message.
//
// # Architecture
//
// The server is organized into several packages:
//
//   - pkg/server: HTTP server and routing
//   - pkg/server/endpoints: REST API endpoint handlers
//   - pkg/classifier: Text preprocessing, TF-IDF vectorizer and naive Bayes model
//   - pkg/extract: Rupee amount and merchant extraction
//   - pkg/model: Database models
//   - pkg/db: Database connection utilities
//   - pkg/audit: Audit logging
//   - pkg/config: Configuration management
//
// # Quick Start
//
// The server is run via the smscatctl CLI:
//
//	# Generate a token-signing key
//	export SMSCAT_TOKEN_KEY=$(head -c 32 /dev/urandom | base64)
//
//	# Run database migrations
//	smscatctl db migrate
//
//	# Train the model from the seeded corpus
//	smscatctl model train
//
//	# Start the server
//	smscatctl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - SMSCAT_TOKEN_KEY: Base64-encoded HMAC key for service tokens
//   - SMSCAT_CONFIG_PATH: Directory holding smscat.yml
//   - SMSCAT_MODEL_PATH: Path of the model file
//   - SMSCAT_LOG_LEVEL: Log level (debug, info, warn, error)
//   - SMSCAT_AUDIT_ENABLED: Enable RFC 5424 audit logging
//   - AUDIT_DATABASE_URL: Optional database for audit events
//   - PORT: Server port (default: 8080)
package main
