// Package audit provides audit logging for smscat.
//
// Events are written to stdout in RFC5424 syslog format and, when
// AUDIT_DATABASE_URL is set, persisted to an audit database. Audit logging
// can be disabled with SMSCAT_AUDIT_ENABLED=false.
//
// # Events
//
//   - CategorizeEvent: an SMS was classified (or classification failed)
//   - TrainEvent: the model was retrained
//   - ReloadEvent: the model file was reloaded from disk
//   - AuthenticateEvent: a client exchanged an API key for a token
package audit
