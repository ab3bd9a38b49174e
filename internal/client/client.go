// Package client is the entry point of the library. A Client owns one
// configuration, one transport and one session shared by every facade.
package client

import (
	"context"
	"database/sql"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/suar-net/iberbanco-go/internal/auth"
	"github.com/suar-net/iberbanco-go/internal/config"
	"github.com/suar-net/iberbanco-go/internal/database"
	"github.com/suar-net/iberbanco-go/internal/model"
	"github.com/suar-net/iberbanco-go/internal/repository"
	"github.com/suar-net/iberbanco-go/internal/sdkerr"
	"github.com/suar-net/iberbanco-go/internal/service"
	"github.com/suar-net/iberbanco-go/internal/transport"
)

type Client struct {
	mu        sync.Mutex
	cfg       *config.Config
	transport *transport.HTTP
	auth      *auth.Authenticator
	logger    *zap.Logger
	db        *sql.DB
	history   repository.IRequestRepository
	svcOpts   []service.Option

	authSvc      service.IAuthService
	users        service.IUserService
	accounts     service.IAccountService
	transactions service.ITransactionService
	cards        service.ICardService
	crypto       service.ICryptoService
	exchange     service.IExchangeService
	export       service.IExportService
}

type options struct {
	logger     *zap.Logger
	recorder   transport.Recorder
	httpClient *http.Client
	now        func() time.Time
}

type Option func(*options)

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithRecorder keeps a history of every call. It takes precedence over the
// history_dsn setting.
func WithRecorder(r transport.Recorder) Option {
	return func(o *options) { o.recorder = r }
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithClock replaces time.Now for signing and date-relative checks.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New validates cfg and builds a client. A nil cfg means the sandbox
// defaults. When cfg.HistoryDSN is set the request history is written to
// Postgres; call Close to release the connection.
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Client{
		cfg:     cfg.Clone(),
		auth:    auth.New(cfg.Username, auth.WithClock(o.now)),
		logger:  o.logger,
		svcOpts: []service.Option{service.WithClock(o.now)},
	}

	if o.recorder == nil && cfg.HistoryDSN != "" {
		db, err := database.ConnectDB(cfg.HistoryDSN)
		if err != nil {
			return nil, err
		}
		c.db = db
		o.recorder = repository.NewRepository(db).Request()
		c.logger.Info("recording request history")
	}
	if h, ok := o.recorder.(repository.IRequestRepository); ok {
		c.history = h
	}

	topts := []transport.Option{transport.WithLogger(o.logger)}
	if o.recorder != nil {
		topts = append(topts, transport.WithRecorder(o.recorder))
	}
	if o.httpClient != nil {
		topts = append(topts, transport.WithHTTPClient(o.httpClient))
	}
	c.transport = transport.NewHTTP(c.cfg, topts...)
	return c, nil
}

// FromEnvironment builds a client from IBERBANCO_* variables.
func FromEnvironment(opts ...Option) (*Client, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	return New(cfg, opts...)
}

func (c *Client) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// History returns the latest limit recorded requests, newest first, read
// through the connection the client records with.
func (c *Client) History(ctx context.Context, limit int) ([]*model.RequestLog, error) {
	if c.history == nil {
		return nil, sdkerr.Configuration("history_dsn", "request history is off: set IBERBANCO_HISTORY_DSN")
	}
	return c.history.Recent(ctx, limit)
}

func (c *Client) Auth() service.IAuthService {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.authSvc == nil {
		c.authSvc = service.NewAuthService(c.transport, c.auth, c.svcOpts...)
	}
	return c.authSvc
}

func (c *Client) Users() service.IUserService {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.users == nil {
		c.users = service.NewUserService(c.transport, c.auth, c.svcOpts...)
	}
	return c.users
}

func (c *Client) Accounts() service.IAccountService {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.accounts == nil {
		c.accounts = service.NewAccountService(c.transport, c.auth, c.svcOpts...)
	}
	return c.accounts
}

func (c *Client) Transactions() service.ITransactionService {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.transactions == nil {
		c.transactions = service.NewTransactionService(c.transport, c.auth, c.svcOpts...)
	}
	return c.transactions
}

func (c *Client) Cards() service.ICardService {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cards == nil {
		c.cards = service.NewCardService(c.transport, c.auth, c.svcOpts...)
	}
	return c.cards
}

func (c *Client) CryptoTransactions() service.ICryptoService {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.crypto == nil {
		c.crypto = service.NewCryptoService(c.transport, c.auth, c.svcOpts...)
	}
	return c.crypto
}

func (c *Client) Exchange() service.IExchangeService {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.exchange == nil {
		c.exchange = service.NewExchangeService(c.transport, c.auth, c.svcOpts...)
	}
	return c.exchange
}

func (c *Client) Export() service.IExportService {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.export == nil {
		c.export = service.NewExportService(c.transport, c.auth, c.svcOpts...)
	}
	return c.export
}

// Authenticate logs in and keeps the returned session token for every later
// signed call.
func (c *Client) Authenticate(ctx context.Context, username, password string) (model.Envelope, error) {
	env, err := c.Auth().Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	var login model.LoginResponse
	if err := env.Decode(&login); err == nil && login.Token != "" {
		c.auth.SetToken(login.Token)
		c.logger.Debug("session established", zap.String("username", username))
	}
	return env, nil
}

func (c *Client) SetAuthToken(token string) {
	c.auth.SetToken(token)
}

func (c *Client) AuthToken() string {
	return c.auth.Token()
}

func (c *Client) IsAuthenticated() bool {
	return c.auth.IsAuthenticated()
}

// Authenticator exposes the session shared by the facades.
func (c *Client) Authenticator() *auth.Authenticator {
	return c.auth
}

// Config returns a copy of the current configuration.
func (c *Client) Config() *config.Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.Clone()
}

// UpdateConfig applies the keyed options accepted by config.New and pushes
// the result to the transport. A new username re-keys request signing.
func (c *Client) UpdateConfig(opts map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.cfg.Clone()
	if err := next.Apply(opts); err != nil {
		return err
	}
	if next.Username != c.cfg.Username {
		c.auth.SetUsername(next.Username)
	}
	c.cfg = next
	c.transport.Configure(next)
	return nil
}

func (c *Client) EnableDebug() {
	_ = c.UpdateConfig(map[string]any{"debug": true})
}

func (c *Client) DisableDebug() {
	_ = c.UpdateConfig(map[string]any{"debug": false})
}

func Version() string {
	return config.Version
}
