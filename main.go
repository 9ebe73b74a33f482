package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/blogicum-backend/api"
	"github.com/rpupo63/blogicum-backend/config"
	"github.com/rpupo63/blogicum-backend/database"
	"github.com/rpupo63/blogicum-backend/storage"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()

	dsn := config.GetString(c, "DATABASE_DSN", "")
	if dsn == "" {
		fmt.Println("DATABASE_DSN is not set. Exiting...")
		os.Exit(1)
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := database.Open(dsn, config.GetString(c, "DB_REPLICA_DSN", ""), &gorm.Config{
		PrepareStmt: false,
		Logger:      gormLogger,
	})
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	if err := database.Migrate(db); err != nil {
		fmt.Printf("Error migrating database: %v\n", err)
		os.Exit(1)
	}

	currentDB := database.New(db)
	currentDB.PostRepo().SetPageSize(config.GetInt(c, "POSTS_PER_PAGE", database.DefaultPostsPerPage))

	store, err := newStore(c)
	if err != nil {
		fmt.Printf("Error initializing image storage: %v\n", err)
		os.Exit(1)
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB, store)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// newStore picks the image storage backend from config. Local disk is
// the default; STORAGE_BACKEND=s3 keeps images in a bucket instead.
func newStore(c map[string]string) (storage.Store, error) {
	switch config.GetString(c, "STORAGE_BACKEND", "disk") {
	case "s3":
		bucket := config.GetString(c, "S3_BUCKET", "")
		if bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET must be set when STORAGE_BACKEND is s3")
		}
		return storage.NewS3Store(context.Background(), bucket)
	default:
		return storage.NewDiskStore(config.GetString(c, "MEDIA_DIR", "media/post_images"))
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
