package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/avdeyev/shareit-backend/internal/booking"
	bookingHttp "github.com/avdeyev/shareit-backend/internal/booking/http"
	"github.com/avdeyev/shareit-backend/internal/item"
	itemHttp "github.com/avdeyev/shareit-backend/internal/item/http"
	"github.com/avdeyev/shareit-backend/internal/itemrequest"
	requestHttp "github.com/avdeyev/shareit-backend/internal/itemrequest/http"
	"github.com/avdeyev/shareit-backend/internal/photo"
	photoHttp "github.com/avdeyev/shareit-backend/internal/photo/http"
	"github.com/avdeyev/shareit-backend/internal/pkg/metrics"
	"github.com/avdeyev/shareit-backend/internal/sharer"
	"github.com/avdeyev/shareit-backend/internal/user"
	userHttp "github.com/avdeyev/shareit-backend/internal/user/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	Logger         zerolog.Logger
	UserService    user.Service
	ItemService    item.Service
	BookingService booking.Service
	RequestService itemrequest.Service
	PhotoService   photo.Service
}

// NewRouter initializes the HTTP router engine: recovery, request logging,
// CORS, metrics and the module routes under /v1.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(cfg.Logger))

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", sharer.Header}
	r.Use(cors.New(corsConfig))

	metrics.Register()
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	sharerMiddleware := sharer.Required()

	userHandler := userHttp.NewHandler(cfg.UserService)
	itemHandler := itemHttp.NewHandler(cfg.ItemService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	requestHandler := requestHttp.NewHandler(cfg.RequestService)
	photoHandler := photoHttp.NewHandler(cfg.PhotoService)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler)
		itemHttp.RegisterRoutes(v1, itemHandler, sharerMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, sharerMiddleware)
		requestHttp.RegisterRoutes(v1, requestHandler, sharerMiddleware)
		photoHttp.RegisterRoutes(v1, photoHandler, sharerMiddleware)
	}

	return r
}
