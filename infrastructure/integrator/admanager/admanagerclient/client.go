package admanagerclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	admanagerdomain "github.com/vfg2006/ad-revenue-api/infrastructure/integrator/admanager/domain"
	"github.com/vfg2006/ad-revenue-api/internal/config"
	"github.com/vfg2006/ad-revenue-api/internal/domain"
)

const (
	reportService  = "ReportService"
	networkService = "NetworkService"
)

// Credential identifica a rede e a credencial usadas em uma chamada
type Credential struct {
	Name        string
	NetworkCode string
}

// Client é o cliente do ReportService do Ad Manager
type Client interface {
	SubmitJob(ctx context.Context, cred Credential, query admanagerdomain.ReportQuery) (string, error)
	PollStatus(ctx context.Context, cred Credential, jobID string) (domain.JobStatus, error)
	GetDownloadURL(ctx context.Context, cred Credential, jobID string) (string, error)
	GetNetworkCurrency(ctx context.Context, cred Credential) (string, error)
	Download(ctx context.Context, downloadURL string) ([]byte, error)
}

type AdManagerClient struct {
	cfg        config.AdManager
	tokens     TokenProvider
	httpClient *http.Client
	limiter    *rate.Limiter
	parser     ReplyParser
}

func NewClient(cfg config.AdManager, tokens TokenProvider, httpClient *http.Client) *AdManagerClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &AdManagerClient{
		cfg:        cfg,
		tokens:     tokens,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, 1),
		parser:     NewReplyParser(),
	}
}

func (c *AdManagerClient) SubmitJob(ctx context.Context, cred Credential, query admanagerdomain.ReportQuery) (string, error) {
	body, err := c.call(ctx, "runReportJob", reportService, cred, newRunReportJob(c.cfg.Namespace(), query), c.cfg.RequestTimeout)
	if err != nil {
		return "", err
	}

	jobID, err := c.parser.ExtractJobID(body)
	if err != nil {
		return "", err
	}

	logrus.WithFields(logrus.Fields{
		"network_code": cred.NetworkCode,
		"job_id":       jobID,
		"date_range":   query.DateRange.String(),
	}).Debug("admanager: job de relatório submetido")

	return jobID, nil
}

func (c *AdManagerClient) PollStatus(ctx context.Context, cred Credential, jobID string) (domain.JobStatus, error) {
	body, err := c.call(ctx, "getReportJobStatus", reportService, cred, newGetReportJobStatus(c.cfg.Namespace(), jobID), c.cfg.RequestTimeout)
	if err != nil {
		return "", err
	}
	return c.parser.ExtractStatus(body)
}

func (c *AdManagerClient) GetDownloadURL(ctx context.Context, cred Credential, jobID string) (string, error) {
	body, err := c.call(ctx, "getReportDownloadUrlWithOptions", reportService, cred, newGetReportDownloadURL(c.cfg.Namespace(), jobID), c.cfg.RequestTimeout)
	if err != nil {
		return "", err
	}
	return c.parser.ExtractDownloadURL(body)
}

func (c *AdManagerClient) GetNetworkCurrency(ctx context.Context, cred Credential) (string, error) {
	body, err := c.call(ctx, "getCurrentNetwork", networkService, cred, newGetCurrentNetwork(c.cfg.Namespace()), c.cfg.MetadataTimeout)
	if err != nil {
		return "", err
	}
	return c.parser.ExtractCurrencyCode(body)
}

// Download baixa o export inteiro, sem limite de tamanho
func (c *AdManagerClient) Download(ctx context.Context, downloadURL string) ([]byte, error) {
	ctx, cancel := withTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return nil, &TransportError{Op: "download", Err: errors.Wrap(err, "erro ao criar a requisição")}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "download", Err: errors.Wrap(err, "erro ao fazer a requisição")}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{Op: "download", StatusCode: resp.StatusCode, Err: errors.New(resp.Status)}
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "download", Err: errors.Wrap(err, "erro ao ler o export")}
	}

	return payload, nil
}

// call faz um ciclo requisição/resposta SOAP com token, limite de taxa e timeout
func (c *AdManagerClient) call(
	ctx context.Context,
	op, service string,
	cred Credential,
	content interface{},
	timeout time.Duration,
) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &TransportError{Op: op, Err: errors.Wrap(err, "limite de taxa")}
	}

	token, err := c.tokens.GetAccessToken(ctx, cred.Name)
	if err != nil {
		return nil, err
	}

	payload, err := buildEnvelope(c.cfg.Namespace(), cred.NetworkCode, c.cfg.ApplicationName, content)
	if err != nil {
		return nil, errors.Wrapf(err, "admanager: %s: erro ao montar envelope", op)
	}

	ctx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.ServiceURL(service), bytes.NewReader(payload))
	if err != nil {
		return nil, &TransportError{Op: op, Err: errors.Wrap(err, "erro ao criar a requisição")}
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", `""`)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: errors.Wrap(err, "erro ao fazer a requisição")}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: errors.Wrap(err, "erro ao ler a resposta")}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		cause := errors.New(truncate(string(body), 256))
		if fault := c.parser.ExtractFault(body); fault != nil {
			cause = errors.Errorf("%s: %s", fault.Code, fault.Message)
		}

		logrus.WithFields(logrus.Fields{
			"network_code": cred.NetworkCode,
			"status_code":  resp.StatusCode,
		}).WithError(cause).Warnf("admanager: %s falhou", op)

		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode, Err: cause}
	}

	return body, nil
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
