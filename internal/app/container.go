package app

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/avdeyev/shareit-backend/internal/api"
	"github.com/avdeyev/shareit-backend/internal/booking"
	"github.com/avdeyev/shareit-backend/internal/item"
	"github.com/avdeyev/shareit-backend/internal/itemrequest"
	"github.com/avdeyev/shareit-backend/internal/photo"
	"github.com/avdeyev/shareit-backend/internal/pkg/clock"
	"github.com/avdeyev/shareit-backend/internal/pkg/storage"
	"github.com/avdeyev/shareit-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction  bool
	ProdOrigins   string
	DBPool        *pgxpool.Pool
	Logger        zerolog.Logger
	StoragePath   string
	ThumbnailSize int
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router *gin.Engine
}

// NewContainer wires all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	clk := clock.System{}

	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo)

	// Item request module
	requestRepo := itemrequest.NewPgxRepository(cfg.DBPool)
	requestService := itemrequest.NewService(requestRepo, userRepo)

	// Booking module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)

	// Item module; booking views are served straight from the booking store.
	itemRepo := item.NewPgxRepository(cfg.DBPool)
	itemService := item.NewService(itemRepo, userRepo, requestRepo, booking.NewItemViews(bookingRepo), clk)

	bookingService := booking.NewService(bookingRepo, itemRepo, userRepo, clk)

	// Photo module
	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		return nil, err
	}
	photoRepo := photo.NewPgxRepository(cfg.DBPool)
	photoService := photo.NewService(photoRepo, store, itemRepo, cfg.ThumbnailSize)

	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		Logger:         cfg.Logger,
		UserService:    userService,
		ItemService:    itemService,
		BookingService: bookingService,
		RequestService: requestService,
		PhotoService:   photoService,
	})

	return &Container{Router: router}, nil
}
