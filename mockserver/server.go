package mockserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kbukum/mallkit/logger"
	"github.com/kbukum/mallkit/observability"
)

// Server is the mock mall backend: a gin engine mounted on a ServeMux behind
// an h2c handler.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	handler    http.Handler
	store      *Store
	tokens     *TokenIssuer
	config     Config
	version    string
	log        *logger.Logger

	mu       sync.Mutex
	listener net.Listener
}

// Option customizes a Server.
type Option func(*Server)

// WithStore serves s instead of a freshly seeded store.
func WithStore(s *Store) Option {
	return func(srv *Server) { srv.store = s }
}

// WithVersion sets the version reported by /health.
func WithVersion(v string) Option {
	return func(srv *Server) { srv.version = v }
}

// New builds the server with its middleware and routes. cfg is defaulted and
// validated here.
func New(cfg Config, log *logger.Logger, opts ...Option) (*Server, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Get(logger.ComponentMock)
	}

	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		engine: gin.New(),
		config: cfg,
		log:    log,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = NewStore()
		s.store.Seed()
	}
	s.tokens = NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	s.engine.Use(Recovery(log), RequestID(), Trace(), RequestLogger(log))
	s.registerRoutes()

	mux := http.NewServeMux()
	mux.Handle("/", s.engine)
	s.handler = h2c.NewHandler(mux, &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          cfg.IdleTimeout,
	})

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s, nil
}

func (s *Server) registerRoutes() {
	h := &handlers{store: s.store, tokens: s.tokens, log: s.log}

	s.engine.GET("/health", s.health)
	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, Response{Code: CodeNotFound, Message: "接口不存在"})
	})

	api := s.engine.Group("/api/v1", Latency(s.config.Latency))
	api.POST("/wechat/login", h.wechatLogin)
	api.GET("/products", h.listProducts)
	api.GET("/products/categories", h.listCategories)
	api.GET("/products/:id", h.getProduct)
	api.GET("/banners", h.listBanners)
	api.GET("/comments/product/:id", h.listProductComments)
	api.GET("/coupons", h.listCoupons)

	auth := api.Group("", Auth(s.tokens))
	auth.GET("/user/profile", h.profile)
	auth.PUT("/user/profile", h.updateProfile)

	auth.GET("/cart", h.listCart)
	auth.POST("/cart", h.addCart)
	auth.PUT("/cart/:id", h.updateCart)
	auth.DELETE("/cart/:id", h.removeCart)

	auth.GET("/orders", h.listOrders)
	auth.POST("/orders", h.createOrder)
	auth.GET("/orders/:id", h.getOrder)
	auth.PUT("/orders/:id/pay", h.payOrder)
	auth.PUT("/orders/:id/cancel", h.cancelOrder)

	auth.GET("/addresses", h.listAddresses)
	auth.POST("/addresses", h.createAddress)
	auth.PUT("/addresses/:id", h.updateAddress)
	auth.DELETE("/addresses/:id", h.deleteAddress)
	auth.PUT("/addresses/:id/default", h.defaultAddress)

	auth.POST("/comments", h.createComment)
	auth.GET("/coupons/my", h.myCoupons)
	auth.POST("/coupons/:id/claim", h.claimCoupon)
}

func (s *Server) health(c *gin.Context) {
	sh := observability.NewServiceHealth("mallmock", s.version)
	sh.AddComponent(s.Health(c.Request.Context()))

	status := http.StatusOK
	if sh.Status == observability.HealthStatusDown {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, sh)
}

// Name identifies the server in a component registry.
func (s *Server) Name() string { return "mockserver" }

// Health probes the store and reports its row counts.
func (s *Server) Health(ctx context.Context) observability.Health {
	ch := observability.Probe(ctx, "store", s.store.Ping)
	ch.Details = s.store.Counts()
	return ch
}

// Handler returns the root handler, for mounting in httptest.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Store returns the backing store.
func (s *Server) Store() *Store {
	return s.store
}

// Tokens returns the token issuer guarding protected routes.
func (s *Server) Tokens() *TokenIssuer {
	return s.tokens
}

// Start binds the port and begins serving. It returns once the listener is
// bound; serving continues in a goroutine.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("mock server failed to bind %s: %w", s.httpServer.Addr, err)
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("Server error", logger.Fields(logger.FieldError, err.Error()))
		}
	}()

	s.log.Info("Mock server started", logger.Fields("addr", listener.Addr().String()))
	return nil
}

// Stop gracefully shuts down the server with a 5-second deadline.
func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("mock server shutdown: %w", err)
	}
	s.log.Info("Mock server shut down")
	return nil
}

// Addr returns the bound address once started, else the configured one.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}
