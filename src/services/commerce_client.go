package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/username/settleadmin/backend/src/config"
	"github.com/username/settleadmin/backend/src/logger"
	"github.com/username/settleadmin/backend/src/models"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// apiEnvelope is the response wrapper every commerce API endpoint uses.
type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error,omitempty"`
}

var collectionPaths = map[models.RecordKind]string{
	models.KindServiceOrder: "/api/admin/orders",
	models.KindProductOrder: "/api/admin/product-orders",
	models.KindPayment:      "/api/admin/payments",
	models.KindUser:         "/api/admin/users",
	models.KindWebinar:      "/api/admin/webinars",
	models.KindProduct:      "/api/admin/products",
}

// commerceClientImpl implements CommerceClient over HTTPS with a bearer
// token. Outbound calls are paced by a shared limiter so a bulk fan-out
// cannot stampede the backend.
type commerceClientImpl struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewCommerceClient creates the upstream API client. The bearer token is
// injected by an oauth2 static token source; if the token happens to be a
// JWT its expiry is logged at startup, but validation stays the backend's
// job.
func NewCommerceClient(cfg *config.AppConfig) CommerceClient {
	logTokenExpiry(cfg.CommerceAPIToken)

	base := &http.Client{Timeout: cfg.RequestTimeout}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.CommerceAPIToken, TokenType: "Bearer"})
	client := oauth2.NewClient(ctx, ts)
	client.Timeout = cfg.RequestTimeout

	return &commerceClientImpl{
		baseURL:    cfg.CommerceAPIBaseURL,
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Limit(cfg.APIRequestsPerSecond), cfg.APIRequestBurst),
	}
}

func logTokenExpiry(token string) {
	if token == "" {
		return
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		logger.L.Debug("API token is not a JWT, treating as opaque bearer token")
		return
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return
	}
	if time.Now().After(exp.Time) {
		logger.L.Warn("Configured API token is already expired", "expiredAt", exp.Time)
	} else {
		logger.L.Info("API token parsed", "expiresAt", exp.Time)
	}
}

func (c *commerceClientImpl) FetchCollection(ctx context.Context, kind models.RecordKind) (json.RawMessage, error) {
	path, ok := collectionPaths[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	env, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *commerceClientImpl) UpdateStatus(ctx context.Context, kind models.RecordKind, id, status string) error {
	path, ok := collectionPaths[kind]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	body, err := json.Marshal(map[string]string{"status": status})
	if err != nil {
		return fmt.Errorf("encoding status body: %w", err)
	}
	_, err = c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%s/status", path, id), body)
	if err != nil {
		return fmt.Errorf("updating status of %s %s: %w", kind, id, err)
	}
	return nil
}

func (c *commerceClientImpl) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/api/health", nil)
	return err
}

func (c *commerceClientImpl) do(ctx context.Context, method, path string, body []byte) (*apiEnvelope, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", ErrFetchFailed, err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrFetchFailed, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrFetchFailed, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s %s returned %d", ErrFetchFailed, method, path, resp.StatusCode)
	}

	var env apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: malformed envelope from %s: %v", ErrFetchFailed, path, err)
	}
	if !env.Success {
		return nil, fmt.Errorf("%w: %s reported failure: %s", ErrFetchFailed, path, env.Error)
	}
	return &env, nil
}
