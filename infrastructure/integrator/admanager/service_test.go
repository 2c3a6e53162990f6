package admanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/ad-revenue-api/infrastructure/integrator/admanager/admanagerclient"
	"github.com/vfg2006/ad-revenue-api/infrastructure/integrator/admanager/admanagerclient/mocks"
	"github.com/vfg2006/ad-revenue-api/internal/config"
	"github.com/vfg2006/ad-revenue-api/internal/domain"
)

func newTestIntegrator(t *testing.T) (*AdManagerIntegrator, *mocks.MockClient) {
	t.Helper()

	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	cfg := &config.Config{ReportSync: config.ReportSync{
		PollInterval:    10 * time.Second,
		MaxPollAttempts: 90,
		TolerantPolling: true,
	}}

	integrator := New(cfg, client)
	integrator.runner.sleep = func(ctx context.Context, d time.Duration) error { return nil }

	return integrator, client
}

func testAccount(currency *string) *domain.Account {
	cred := "publisher-a"
	return &domain.Account{
		ID:             "acc-1",
		Name:           "Publisher A",
		NetworkCode:    "1234",
		Status:         domain.AccountStatusActive,
		CredentialName: &cred,
		CurrencyCode:   currency,
	}
}

func TestFetchReport(t *testing.T) {
	integrator, client := newTestIntegrator(t)
	cred := admanagerclient.Credential{Name: "publisher-a", NetworkCode: "1234"}
	dateRange := domain.NewDateRange(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))

	gomock.InOrder(
		client.EXPECT().SubmitJob(gomock.Any(), cred, gomock.Any()).Return("job-9", nil),
		client.EXPECT().PollStatus(gomock.Any(), cred, "job-9").Return(domain.JobStatusCompleted, nil),
		client.EXPECT().GetDownloadURL(gomock.Any(), cred, "job-9").Return("https://dl/report", nil),
		client.EXPECT().Download(gomock.Any(), "https://dl/report").Return(gzipped(t, "Dimension.DATE,Column.AD_EXCHANGE_CLICKS\n2024-01-01,3\n"), nil),
		client.EXPECT().GetNetworkCurrency(gomock.Any(), cred).Return("BRL", nil),
	)

	export, err := integrator.FetchReport(context.Background(), testAccount(nil), dateRange)

	require.NoError(t, err)
	assert.Equal(t, "job-9", export.JobID)
	assert.Equal(t, "BRL", export.CurrencyCode)
	assert.Equal(t, 1, export.Polls)
	require.Len(t, export.Records, 1)
	assert.Equal(t, "3", export.Records[0].Get("Column.AD_EXCHANGE_CLICKS"))
}

func TestFetchReport_ErroNoDownloadPropaga(t *testing.T) {
	integrator, client := newTestIntegrator(t)

	downloadErr := &admanagerclient.TransportError{Op: "download", StatusCode: 503, Err: errors.New("unavailable")}

	client.EXPECT().SubmitJob(gomock.Any(), gomock.Any(), gomock.Any()).Return("job-9", nil)
	client.EXPECT().PollStatus(gomock.Any(), gomock.Any(), "job-9").Return(domain.JobStatusCompleted, nil)
	client.EXPECT().GetDownloadURL(gomock.Any(), gomock.Any(), "job-9").Return("https://dl/report", nil)
	client.EXPECT().Download(gomock.Any(), "https://dl/report").Return(nil, downloadErr)

	_, err := integrator.FetchReport(context.Background(), testAccount(nil), domain.DateRange{})

	assert.ErrorIs(t, err, downloadErr)
}

func TestResolveCurrency_Fallbacks(t *testing.T) {
	eur := " eur "

	tests := []struct {
		name     string
		account  *domain.Account
		network  string
		netErr   error
		expected string
	}{
		{name: "moeda da rede", account: testAccount(&eur), network: "JPY", expected: "JPY"},
		{name: "moeda cadastrada", account: testAccount(&eur), netErr: errors.New("timeout"), expected: "EUR"},
		{name: "padrão USD", account: testAccount(nil), netErr: errors.New("timeout"), expected: DefaultCurrency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			integrator, client := newTestIntegrator(t)
			client.EXPECT().GetNetworkCurrency(gomock.Any(), gomock.Any()).Return(tt.network, tt.netErr)

			cred := admanagerclient.Credential{Name: tt.account.Credential(), NetworkCode: tt.account.NetworkCode}
			got := integrator.resolveCurrency(context.Background(), cred, tt.account)

			assert.Equal(t, tt.expected, got)
		})
	}
}
