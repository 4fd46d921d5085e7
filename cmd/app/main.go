package main

import (
	"fmt"
	"log/slog"
	"os"

	"orders/cmd"
	inhttp "orders/internal/adapters/in/http"
	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/adapters/out/postgres/outboxrepo"
	"orders/internal/adapters/out/rabbitmq"
	"orders/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Service stopped", "error", err)
		os.Exit(1)
	}
}

// run wires the application together and blocks serving HTTP. Keeping the
// lifecycle here lets the deferred cleanup execute before main exits.
func run(logger *slog.Logger) error {
	configs := getConfigs(logger)

	gormDB, err := openDatabase(configs)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	if err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&outboxrepo.MessageDTO{},
	); err != nil {
		return fmt.Errorf("migrate database schema: %w", err)
	}

	publisher, err := rabbitmq.NewPublisher(configs.MessageQueueURL)
	if err != nil {
		return fmt.Errorf("connect to message broker: %w", err)
	}
	defer publisher.Close()

	root := cmd.NewCompositionRoot(configs, gormDB, publisher, logger)

	jobManager := jobs.NewJobManager(root.CreateDispatchOutboxCommandHandler(), logger)
	if err := jobManager.StartAll(); err != nil {
		return fmt.Errorf("start background jobs: %w", err)
	}
	defer jobManager.StopAll()

	return startWebServer(&root, configs.HTTPPort, logger)
}

func getConfigs(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Info("No .env file found, relying on process environment")
	}

	return cmd.Config{
		HTTPPort:        os.Getenv("HTTP_PORT"),
		DBHost:          os.Getenv("DB_HOST"),
		DBPort:          os.Getenv("DB_PORT"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          os.Getenv("DB_NAME"),
		DBSslMode:       os.Getenv("DB_SSLMODE"),
		JWTSecretKey:    os.Getenv("JWT_SECRET_KEY"),
		MessageQueueURL: os.Getenv("MESSAGE_QUEUE_URL"),
		InventoryURL:    os.Getenv("INVENTORY_URL"),
	}
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

func startWebServer(root *cmd.CompositionRoot, port string, logger *slog.Logger) error {
	e := echo.New()
	e.HideBanner = true

	server := inhttp.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateCancelOrderCommandHandler(),
		root.CreateUpdateOrderStatusCommandHandler(),
		root.CreateGetOrderQueryHandler(),
		root.CreateGetAllOrdersQueryHandler(),
		root.CreateGetMyOrdersQueryHandler(),
		root.TokenVerifier(),
		root.Logger(),
	)
	server.RegisterRoutes(e)

	logger.Info("Starting HTTP server", "port", port)
	return e.Start(fmt.Sprintf("0.0.0.0:%s", port))
}
