package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/promnight/promnight/internal/hub"
	boardService "github.com/promnight/promnight/internal/services/board"
	jukeboxService "github.com/promnight/promnight/internal/services/jukebox"
	photoboothService "github.com/promnight/promnight/internal/services/photobooth"
	sessionService "github.com/promnight/promnight/internal/services/session"
	suspicionService "github.com/promnight/promnight/internal/services/suspicion"
	walletService "github.com/promnight/promnight/internal/services/wallet"
)

// Config holds the dependencies of the HTTP handler
type Config struct {
	SessionService    sessionService.Service
	WalletService     walletService.Service
	BoardService      boardService.Service
	JukeboxService    jukeboxService.Service
	SuspicionService  suspicionService.Service
	PhotoboothService photoboothService.Service
	Hub               *hub.Hub

	// JoinBaseURL is the address encoded in the join QR code
	JoinBaseURL string
}

// Handler exposes the session over HTTP for the player phones and the
// shared TV display
type Handler struct {
	sessionService    sessionService.Service
	walletService     walletService.Service
	boardService      boardService.Service
	jukeboxService    jukeboxService.Service
	suspicionService  suspicionService.Service
	photoboothService photoboothService.Service
	hub               *hub.Hub
	joinBaseURL       string
}

// New creates a new HTTP handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.SessionService == nil {
		return nil, errors.New("session service cannot be nil")
	}
	if cfg.WalletService == nil {
		return nil, errors.New("wallet service cannot be nil")
	}
	if cfg.BoardService == nil {
		return nil, errors.New("board service cannot be nil")
	}
	if cfg.JukeboxService == nil {
		return nil, errors.New("jukebox service cannot be nil")
	}
	if cfg.SuspicionService == nil {
		return nil, errors.New("suspicion service cannot be nil")
	}
	if cfg.PhotoboothService == nil {
		return nil, errors.New("photo booth service cannot be nil")
	}
	if cfg.Hub == nil {
		return nil, errors.New("hub cannot be nil")
	}

	return &Handler{
		sessionService:    cfg.SessionService,
		walletService:     cfg.WalletService,
		boardService:      cfg.BoardService,
		jukeboxService:    cfg.JukeboxService,
		suspicionService:  cfg.SuspicionService,
		photoboothService: cfg.PhotoboothService,
		hub:               cfg.Hub,
		joinBaseURL:       cfg.JoinBaseURL,
	}, nil
}

// Register mounts all routes on the app
func (h *Handler) Register(app *fiber.App) {
	app.Get("/qr.png", h.joinQR)
	app.Get("/api/events", h.events)

	api := app.Group("/api")

	api.Post("/login", h.login)
	api.Get("/state", h.state)
	api.Get("/characters/:id", h.getCharacter)

	api.Get("/wallet/:id", h.walletOverview)
	api.Post("/wallet/send", h.walletSend)
	api.Post("/wallet/request", h.walletRequest)
	api.Post("/wallet/respond", h.walletRespond)
	api.Post("/wallet/notifications/:id/dismiss", h.walletDismiss)

	api.Get("/board", h.listBoard)
	api.Post("/board", h.postBoard)

	api.Get("/dm/threads", h.dmThreads)
	api.Post("/dm", h.postDM)
	api.Get("/dm/:otherId", h.dmThread)
	api.Post("/dm/:otherId/read", h.markDMRead)

	api.Get("/jukebox/songs", h.jukeboxSongs)
	api.Get("/jukebox/queue", h.jukeboxQueue)
	api.Post("/jukebox/queue", h.jukeboxEnqueue)
	api.Post("/jukebox/finish", h.jukeboxFinish)
	api.Post("/jukebox/skip", h.jukeboxSkip)

	api.Post("/accuse", h.accuse)

	api.Get("/photostrips", h.listPhotoStrips)
	api.Post("/photostrips", h.savePhotoStrip)

	gm := api.Group("/gm")
	gm.Post("/kill", h.gmKill)
	gm.Post("/revive", h.gmRevive)
	gm.Post("/seed", h.gmSeed)
	gm.Post("/announce", h.gmAnnounce)
	gm.Post("/board/clear", h.gmClearBoard)
}
