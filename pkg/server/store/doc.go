// Package store provides storage abstractions for the smscat server.
//
// This package defines interfaces for database operations, allowing the
// server endpoints to be decoupled from the specific database implementation.
// This enables easier testing with mocks and potential support for different
// storage backends.
//
// # Available Stores
//
//   - MessagesStore: categorized message history (save, list, fetch)
//   - TrainingStore: training sample operations (add, list, count)
//   - ClientsStore: API client operations (create, delete, fetch)
//   - HealthStore: database connectivity checks
//
// # Usage
//
//	messages := gorm.NewMessagesStore(db)
//	msg, err := messages.GetMessage(42)
//	if err != nil {
//	    if errors.Is(err, store.ErrMessageNotFound) {
//	        // Handle not found
//	    }
//	}
package store
