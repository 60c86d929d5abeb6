package server

import (
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"reqwise/pkg/auth"
	"reqwise/pkg/authz"
	"reqwise/pkg/config"
	"reqwise/pkg/identity"
	"reqwise/pkg/server/store"
	gormstore "reqwise/pkg/server/store/gorm"
)

type Server struct {
	Router       *mux.Router
	DB           *gorm.DB
	Config       *config.Config
	Codec        *auth.Codec
	Resolver     *identity.Resolver
	Gate         *authz.Gate
	Users        store.UsersStore
	Projects     store.ProjectsStore
	Requirements store.RequirementsStore
	Health       store.HealthStore
	srv          *http.Server
}

func NewServer(
	db *gorm.DB,
	cfg *config.Config,
	codec *auth.Codec,
	users store.UsersStore,
	projects store.ProjectsStore,
	requirements store.RequirementsStore,
	host string,
	port string,
) *Server {

	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    host + ":" + port,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Router:       router,
		DB:           db,
		Config:       cfg,
		Codec:        codec,
		Resolver:     identity.NewResolver(codec, users),
		Gate:         authz.NewGate(projects),
		Users:        users,
		Projects:     projects,
		Requirements: requirements,
		Health:       gormstore.NewHealthStore(db),
		srv:          srv,
	}
}

func (s Server) Start() error {
	return s.srv.ListenAndServe()
}

// StartWithListener serves on an existing listener. Used by tests that need
// to know the bound port before the server starts.
func (s Server) StartWithListener(l net.Listener) error {
	return s.srv.Serve(l)
}
