// Package model defines the database models for smscat.
//
// This package contains GORM models that map to the smscat PostgreSQL schema.
//
// # Core Models
//
//   - Message: categorized SMS messages with amount and merchant details
//   - TrainingSample: labelled SMS texts the model is trained from
//   - Client: API clients with hashed API keys
//
// # Database Schema
//
//   - messages: categorization history
//   - training_samples: labelled training corpus (seeded by migration)
//   - clients: API credentials
package model
