package api

import (
	"github.com/gin-gonic/gin"

	"tipbook/config"
	"tipbook/database"
	"tipbook/service"
)

// Services bundles everything the HTTP surface depends on
type Services struct {
	Predictions service.PredictionService
	Bankroll    service.BankrollService
	News        service.NewsService
	Users       service.UserService
}

// NewRouter assembles the gin engine with all handlers registered
func NewRouter(cfg *config.Config, db *database.DB, services Services) *gin.Engine {
	if cfg.Environment == "development" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(ViewerMiddleware(services.Users))

	healthHandler := &HealthHandler{DB: db}
	healthHandler.Register(engine)

	predictionHandler := &PredictionHandler{Predictions: services.Predictions}
	predictionHandler.Register(engine)

	bankrollHandler := &BankrollHandler{Bankroll: services.Bankroll}
	bankrollHandler.Register(engine)

	newsHandler := &NewsHandler{News: services.News}
	newsHandler.Register(engine)

	userHandler := &UserHandler{Users: services.Users}
	userHandler.Register(engine)

	return engine
}
