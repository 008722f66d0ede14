package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nekogravitycat/meeting-room-backend/internal/api"
	"github.com/nekogravitycat/meeting-room-backend/internal/audit"
	"github.com/nekogravitycat/meeting-room-backend/internal/auth"
	"github.com/nekogravitycat/meeting-room-backend/internal/company"
	"github.com/nekogravitycat/meeting-room-backend/internal/file"
	"github.com/nekogravitycat/meeting-room-backend/internal/notification"
	"github.com/nekogravitycat/meeting-room-backend/internal/pkg/storage"
	"github.com/nekogravitycat/meeting-room-backend/internal/reservation"
	"github.com/nekogravitycat/meeting-room-backend/internal/room"
	"github.com/nekogravitycat/meeting-room-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	StoragePath  string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	// Audit module
	auditRepo := audit.NewPgxRepository(cfg.DBPool)
	auditService := audit.NewService(auditRepo)

	// Notification module
	notificationRepo := notification.NewPgxRepository(cfg.DBPool)
	notificationService := notification.NewService(notificationRepo)

	// Company module
	companyRepo := company.NewPgxRepository(cfg.DBPool)
	companyService := company.NewService(companyRepo)

	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, companyService, passwordHasher)

	// Room module
	roomRepo := room.NewPgxRepository(cfg.DBPool)
	roomService := room.NewService(roomRepo, companyService, auditService)

	// Reservation module
	reservationRepo := reservation.NewPgxRepository(cfg.DBPool)
	reservationConfigRepo := reservation.NewPgxConfigRepository(cfg.DBPool)
	reservationService := reservation.NewService(reservationRepo, reservationConfigRepo, roomService, notificationService, auditService)

	// File module (room photos)
	fileRepo := file.NewPgxRepository(cfg.DBPool)
	fileService := file.NewService(fileRepo, store, storage.NewImageProcessor())

	router := api.NewRouter(api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		UserService:         userService,
		CompanyService:      companyService,
		RoomService:         roomService,
		ReservationService:  reservationService,
		NotificationService: notificationService,
		FileService:         fileService,
		AuditService:        auditService,
		JWTManager:          jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
