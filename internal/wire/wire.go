package wire

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ticket-ledger/internal/adaptor"
	"ticket-ledger/internal/data/repository"
	"ticket-ledger/internal/token"
	"ticket-ledger/internal/usecase"
	"ticket-ledger/pkg/middleware"
	"ticket-ledger/pkg/utils"
)

// App holds the fully wired dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers, and routes
func Wiring(repo *repository.Repository, ledger token.Ledger, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, ledger, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireVenue(r, handler.Venue, logger)
	wirePurchase(r, handler.Purchase, logger)
	wireToken(r, handler.Token, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
