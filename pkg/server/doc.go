// Package server provides the HTTP server for the smscat API.
//
// This package implements the core HTTP server that handles all smscat REST
// API requests. It uses gorilla/mux for routing and provides middleware for
// authentication and request handling.
//
// # Server Setup
//
//	srv := server.NewServer(server.Config{...})
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Endpoints
//
// API endpoints are registered via the endpoints subpackage:
//
//   - / - service status
//   - /categorize - SMS categorization
//   - /categorize/batch - batch categorization
//   - /test - canned sample classifications
//   - /authenticate - API key to token exchange
//   - /messages - categorization history
//   - /model - model metadata, reload, retrain
//   - /training/samples - training corpus management
package server
