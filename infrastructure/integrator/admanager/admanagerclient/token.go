package admanagerclient

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/vfg2006/ad-revenue-api/internal/config"
)

// TokenProvider obtém o access token usado nas chamadas da API
type TokenProvider interface {
	GetAccessToken(ctx context.Context, credentialName string) (string, error)
}

// ServiceAccountTokenProvider troca a chave da service account por um access token
// (fluxo JWT bearer). Cada credencial tem sua própria TokenSource, que mantém o
// token em cache até perto da expiração.
type ServiceAccountTokenProvider struct {
	cfg        config.ServiceAccount
	httpClient *http.Client

	mu      sync.Mutex
	sources map[string]oauth2.TokenSource
}

func NewServiceAccountTokenProvider(cfg config.ServiceAccount, httpClient *http.Client) *ServiceAccountTokenProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &ServiceAccountTokenProvider{
		cfg:        cfg,
		httpClient: httpClient,
		sources:    make(map[string]oauth2.TokenSource),
	}
}

func (p *ServiceAccountTokenProvider) GetAccessToken(ctx context.Context, credentialName string) (string, error) {
	source, err := p.tokenSource(credentialName)
	if err != nil {
		return "", err
	}

	token, err := source.Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			return "", &TransportError{Op: "token", StatusCode: retrieveErr.Response.StatusCode, Err: err}
		}
		return "", &TransportError{Op: "token", Err: err}
	}

	return token.AccessToken, nil
}

func (p *ServiceAccountTokenProvider) tokenSource(credentialName string) (oauth2.TokenSource, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if source, ok := p.sources[credentialName]; ok {
		return source, nil
	}

	path := p.keyPath(credentialName)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "token: erro ao ler chave da service account %s", path)
	}

	conf, err := google.JWTConfigFromJSON(raw, p.cfg.Scope)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "token: chave da service account inválida %s", path)
	}
	if p.cfg.TokenURL != "" {
		conf.TokenURL = p.cfg.TokenURL
	}

	// A TokenSource guarda o contexto; o cliente HTTP vai por ele
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, p.httpClient)
	source := conf.TokenSource(ctx)
	p.sources[credentialName] = source

	logrus.WithFields(logrus.Fields{
		"credential": credentialName,
		"email":      conf.Email,
	}).Debug("token: service account carregada")

	return source, nil
}

// keyPath resolve o arquivo de chave: um por credencial em KeyDir, ou o KeyFile padrão
func (p *ServiceAccountTokenProvider) keyPath(credentialName string) string {
	if credentialName != "" && p.cfg.KeyDir != "" {
		return filepath.Join(p.cfg.KeyDir, credentialName+".json")
	}
	return p.cfg.KeyFile
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
