package endpoints

import (
	"smscat/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterStatusEndpoints(srv)
	RegisterCategorizeEndpoints(srv)
	RegisterAuthenticateEndpoint(srv)
	RegisterMessagesEndpoints(srv)
	RegisterModelEndpoints(srv)
	RegisterTrainingEndpoints(srv)
	RegisterDocsEndpoint(srv)
}
