package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/promnight/promnight/internal/blobstore"
	"github.com/promnight/promnight/internal/handlers/httpapi"
	"github.com/promnight/promnight/internal/hub"
	boardRepo "github.com/promnight/promnight/internal/repositories/board"
	jukeboxRepo "github.com/promnight/promnight/internal/repositories/jukebox"
	photostripRepo "github.com/promnight/promnight/internal/repositories/photostrip"
	rosterRepo "github.com/promnight/promnight/internal/repositories/roster"
	suspicionRepo "github.com/promnight/promnight/internal/repositories/suspicion"
	walletRepo "github.com/promnight/promnight/internal/repositories/wallet"
	boardService "github.com/promnight/promnight/internal/services/board"
	jukeboxService "github.com/promnight/promnight/internal/services/jukebox"
	photoboothService "github.com/promnight/promnight/internal/services/photobooth"
	sessionService "github.com/promnight/promnight/internal/services/session"
	suspicionService "github.com/promnight/promnight/internal/services/suspicion"
	walletService "github.com/promnight/promnight/internal/services/wallet"
)

type config struct {
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	HTTPAddr      string `env:"HTTP_ADDR" envDefault:":5001"`

	SongDir    string `env:"SONG_DIR" envDefault:"./songs"`
	ThemeTrack string `env:"THEME_TRACK" envDefault:"Prom Theme.mp3"`

	// PhotoBackend selects where strips are stored: local or s3
	PhotoBackend      string `env:"PHOTO_BACKEND" envDefault:"local"`
	PhotoDir          string `env:"PHOTO_DIR" envDefault:"./photos"`
	S3AccountID       string `env:"S3_ACCOUNT_ID"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3AccessKeySecret string `env:"S3_ACCESS_KEY_SECRET"`
	S3Bucket          string `env:"S3_BUCKET"`
	S3BaseURL         string `env:"S3_BASE_URL"`

	JoinBaseURL    string        `env:"JOIN_BASE_URL"`
	AccuseCooldown time.Duration `env:"ACCUSE_COOLDOWN" envDefault:"300s"`
	SeedBalance    int           `env:"SEED_BALANCE" envDefault:"500"`
}

func main() {
	// Missing .env is fine; real deployments set the environment directly
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("Failed to parse environment: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	rosterRepository, err := rosterRepo.NewRedis(&rosterRepo.Config{RedisClient: redisClient})
	if err != nil {
		log.Fatalf("Failed to create roster repository: %v", err)
	}

	boardRepository, err := boardRepo.NewRedis(&boardRepo.Config{RedisClient: redisClient})
	if err != nil {
		log.Fatalf("Failed to create board repository: %v", err)
	}

	walletRepository, err := walletRepo.NewRedis(&walletRepo.Config{RedisClient: redisClient})
	if err != nil {
		log.Fatalf("Failed to create wallet repository: %v", err)
	}

	jukeboxRepository, err := jukeboxRepo.NewRedis(&jukeboxRepo.Config{RedisClient: redisClient})
	if err != nil {
		log.Fatalf("Failed to create jukebox repository: %v", err)
	}

	suspicionRepository, err := suspicionRepo.NewRedis(&suspicionRepo.Config{RedisClient: redisClient})
	if err != nil {
		log.Fatalf("Failed to create suspicion repository: %v", err)
	}

	photostripRepository, err := photostripRepo.NewRedis(&photostripRepo.Config{RedisClient: redisClient})
	if err != nil {
		log.Fatalf("Failed to create photo strip repository: %v", err)
	}

	blobStore, err := newBlobStore(ctx, &cfg)
	if err != nil {
		log.Fatalf("Failed to create blob store: %v", err)
	}

	eventHub := hub.New()

	boardSvc, err := boardService.New(&boardService.Config{
		BoardRepo:  boardRepository,
		RosterRepo: rosterRepository,
		Hub:        eventHub,
	})
	if err != nil {
		log.Fatalf("Failed to create board service: %v", err)
	}

	walletSvc, err := walletService.New(&walletService.Config{
		WalletRepo: walletRepository,
		RosterRepo: rosterRepository,
		Hub:        eventHub,
	})
	if err != nil {
		log.Fatalf("Failed to create wallet service: %v", err)
	}

	jukeboxSvc, err := jukeboxService.New(&jukeboxService.Config{
		JukeboxRepo:   jukeboxRepository,
		Hub:           eventHub,
		SongDir:       cfg.SongDir,
		ThemeFilename: cfg.ThemeTrack,
	})
	if err != nil {
		log.Fatalf("Failed to create jukebox service: %v", err)
	}

	suspicionSvc, err := suspicionService.New(&suspicionService.Config{
		SuspicionRepo: suspicionRepository,
		RosterRepo:    rosterRepository,
		Hub:           eventHub,
		Cooldown:      cfg.AccuseCooldown,
	})
	if err != nil {
		log.Fatalf("Failed to create suspicion service: %v", err)
	}

	sessionSvc, err := sessionService.New(&sessionService.Config{
		RosterRepo:     rosterRepository,
		BoardRepo:      boardRepository,
		WalletRepo:     walletRepository,
		JukeboxRepo:    jukeboxRepository,
		SuspicionRepo:  suspicionRepository,
		BoardService:   boardSvc,
		WalletService:  walletSvc,
		JukeboxService: jukeboxSvc,
		Hub:            eventHub,
		SeedBalance:    cfg.SeedBalance,
	})
	if err != nil {
		log.Fatalf("Failed to create session service: %v", err)
	}

	photoboothSvc, err := photoboothService.New(&photoboothService.Config{
		PhotoStripRepo: photostripRepository,
		RosterRepo:     rosterRepository,
		BlobStore:      blobStore,
		Hub:            eventHub,
	})
	if err != nil {
		log.Fatalf("Failed to create photo booth service: %v", err)
	}

	handler, err := httpapi.New(&httpapi.Config{
		SessionService:    sessionSvc,
		WalletService:     walletSvc,
		BoardService:      boardSvc,
		JukeboxService:    jukeboxSvc,
		SuspicionService:  suspicionSvc,
		PhotoboothService: photoboothSvc,
		Hub:               eventHub,
		JoinBaseURL:       cfg.JoinBaseURL,
	})
	if err != nil {
		log.Fatalf("Failed to create HTTP handler: %v", err)
	}

	app := fiber.New()
	app.Use(cors.New())
	if cfg.PhotoBackend == "local" {
		app.Static("/photos", cfg.PhotoDir)
	}
	handler.Register(app)

	go func() {
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()
	log.Printf("Listening on %s", cfg.HTTPAddr)

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	if err := app.Shutdown(); err != nil {
		log.Printf("Error stopping HTTP server: %v", err)
	}

	log.Println("Server has been shut down")
}

// newBlobStore builds the photo storage backend selected by config
func newBlobStore(ctx context.Context, cfg *config) (blobstore.Store, error) {
	switch cfg.PhotoBackend {
	case "s3":
		return blobstore.NewS3(ctx, &blobstore.S3Config{
			AccountID:       cfg.S3AccountID,
			AccessKeyID:     cfg.S3AccessKeyID,
			AccessKeySecret: cfg.S3AccessKeySecret,
			Bucket:          cfg.S3Bucket,
			BaseURL:         cfg.S3BaseURL,
		})
	case "local":
		return blobstore.NewLocal(cfg.PhotoDir, "/photos")
	}

	return nil, fmt.Errorf("unknown photo backend %q", cfg.PhotoBackend)
}
