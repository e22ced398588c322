package server

import (
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"smscat/pkg/classifier"
	"smscat/pkg/config"
	"smscat/pkg/extract"
	"smscat/pkg/server/middleware"
	"smscat/pkg/server/store"
)

type Server struct {
	Router     *mux.Router
	DB         *gorm.DB
	Config     *config.SmscatConfig
	Classifier *classifier.Classifier
	Merchants  *extract.MerchantExtractor

	MessagesStore store.MessagesStore
	TrainingStore store.TrainingStore
	ClientsStore  store.ClientsStore
	HealthStore   store.HealthStore

	TokenAuthenticator *middleware.TokenAuthenticator

	srv *http.Server
}

// Config bundles the dependencies for NewServer.
type Config struct {
	DB         *gorm.DB
	AppConfig  *config.SmscatConfig
	Classifier *classifier.Classifier
	Merchants  *extract.MerchantExtractor

	MessagesStore store.MessagesStore
	TrainingStore store.TrainingStore
	ClientsStore  store.ClientsStore
	HealthStore   store.HealthStore

	TokenAuthenticator *middleware.TokenAuthenticator

	Host string
	Port string
}

func NewServer(cfg Config) *Server {
	router := mux.NewRouter().UseEncodedPath()

	// Permissive CORS so the mobile client can reach the API
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, cors(router)),
		Addr:    cfg.Host + ":" + cfg.Port,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Router:             router,
		DB:                 cfg.DB,
		Config:             cfg.AppConfig,
		Classifier:         cfg.Classifier,
		Merchants:          cfg.Merchants,
		MessagesStore:      cfg.MessagesStore,
		TrainingStore:      cfg.TrainingStore,
		ClientsStore:       cfg.ClientsStore,
		HealthStore:        cfg.HealthStore,
		TokenAuthenticator: cfg.TokenAuthenticator,
		srv:                srv,
	}
}

// ApplyConfig swaps in a new configuration and rebuilds the state derived
// from it, currently the merchant extractor. Used by the SIGHUP reload path.
func (s *Server) ApplyConfig(cfg *config.SmscatConfig) {
	s.Config = cfg
	s.Merchants = extract.NewMerchantExtractor(cfg.ExtraMerchants...)
}

// Authn returns the bearer token middleware for protected routes. When
// authentication is disabled in config the middleware is a pass-through.
func (s *Server) Authn() mux.MiddlewareFunc {
	if s.Config != nil && !s.Config.AuthEnabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return s.TokenAuthenticator.Middleware
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// StartWithListener serves on an existing listener. Used by tests that need
// to know the bound port before starting.
func (s *Server) StartWithListener(l net.Listener) error {
	return s.srv.Serve(l)
}
