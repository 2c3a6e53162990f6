package admanagerclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/ad-revenue-api/internal/domain"
)

func TestExtractJobID(t *testing.T) {
	parser := NewReplyParser()

	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{
			name: "prefixo ns1",
			body: `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body>
				<ns1:runReportJobResponse xmlns:ns1="https://www.google.com/apis/ads/publisher/v202405">
					<ns1:rval><ns1:id>123456</ns1:id><ns1:reportQuery><ns1:dimensions>DATE</ns1:dimensions></ns1:reportQuery></ns1:rval>
				</ns1:runReportJobResponse></soap:Body></soap:Envelope>`,
			want: "123456",
		},
		{
			name: "sem prefixo",
			body: `<Envelope><Body><runReportJobResponse><rval><id> 987 </id></rval></runReportJobResponse></Body></Envelope>`,
			want: "987",
		},
		{
			name: "tag alternativa reportJobId",
			body: `<Envelope><Body><response><reportJobId>555</reportJobId></response></Body></Envelope>`,
			want: "555",
		},
		{
			name:    "sem id",
			body:    `<Envelope><Body><runReportJobResponse><rval></rval></runReportJobResponse></Body></Envelope>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.ExtractJobID([]byte(tt.body))
			if tt.wantErr {
				var protocolErr *ProtocolError
				require.ErrorAs(t, err, &protocolErr)
				assert.Equal(t, "id", protocolErr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractStatus(t *testing.T) {
	parser := NewReplyParser()

	tests := []struct {
		name    string
		body    string
		want    domain.JobStatus
		wantErr bool
	}{
		{
			name: "completed",
			body: `<s:Envelope xmlns:s="x"><s:Body><a:getReportJobStatusResponse xmlns:a="y"><a:rval>COMPLETED</a:rval></a:getReportJobStatusResponse></s:Body></s:Envelope>`,
			want: domain.JobStatusCompleted,
		},
		{
			name: "in progress",
			body: `<Envelope><Body><getReportJobStatusResponse><rval>IN_PROGRESS</rval></getReportJobStatusResponse></Body></Envelope>`,
			want: domain.JobStatusInProgress,
		},
		{
			name: "tag alternativa status",
			body: `<Envelope><Body><x><status>failed</status></x></Body></Envelope>`,
			want: domain.JobStatusFailed,
		},
		{
			name:    "valor desconhecido",
			body:    `<Envelope><Body><x><rval>EXPLODED</rval></x></Body></Envelope>`,
			wantErr: true,
		},
		{
			name:    "xml inválido",
			body:    `<Envelope><Body>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.ExtractStatus([]byte(tt.body))
			if tt.wantErr {
				var protocolErr *ProtocolError
				assert.ErrorAs(t, err, &protocolErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractDownloadURL_RemoveEntidadesHTML(t *testing.T) {
	parser := NewReplyParser()

	body := `<Envelope><Body><getReportDownloadUrlWithOptionsResponse>
		<rval>https://storage.example.com/report?id=1&amp;amp;sig=abc&amp;amp;exp=2</rval>
	</getReportDownloadUrlWithOptionsResponse></Body></Envelope>`

	got, err := parser.ExtractDownloadURL([]byte(body))

	require.NoError(t, err)
	assert.Equal(t, "https://storage.example.com/report?id=1&sig=abc&exp=2", got)
}

func TestExtractDownloadURL_Ausente(t *testing.T) {
	parser := NewReplyParser()

	_, err := parser.ExtractDownloadURL([]byte(`<Envelope><Body><other>x</other></Body></Envelope>`))

	var protocolErr *ProtocolError
	require.ErrorAs(t, err, &protocolErr)
	assert.Equal(t, "url", protocolErr.Field)
}

func TestExtractCurrencyCode(t *testing.T) {
	parser := NewReplyParser()

	body := `<Envelope><Body><getCurrentNetworkResponse><rval>
		<id>1</id><networkCode>1234</networkCode><currencyCode>brl</currencyCode>
	</rval></getCurrentNetworkResponse></Body></Envelope>`

	got, err := parser.ExtractCurrencyCode([]byte(body))

	require.NoError(t, err)
	assert.Equal(t, "BRL", got)
}

func TestExtractFault(t *testing.T) {
	parser := NewReplyParser()

	body := `<soap:Envelope xmlns:soap="x"><soap:Body><soap:Fault>
		<faultcode>soap:Server</faultcode>
		<faultstring>[QuotaError.EXCEEDED_QUOTA @ ]</faultstring>
	</soap:Fault></soap:Body></soap:Envelope>`

	fault := parser.ExtractFault([]byte(body))

	require.NotNil(t, fault)
	assert.Equal(t, "soap:Server", fault.Code)
	assert.True(t, fault.IsQuotaExceeded())
	assert.Nil(t, parser.ExtractFault([]byte(`<Envelope><Body/></Envelope>`)))
}

func TestExtract_CharsetLatin1(t *testing.T) {
	parser := NewReplyParser()

	body := append([]byte(`<?xml version="1.0" encoding="ISO-8859-1"?><Envelope><Body><r><rval>`), []byte("COMPLETED")...)
	body = append(body, []byte(`</rval></r></Body></Envelope>`)...)

	got, err := parser.ExtractStatus(body)

	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusCompleted, got)
}
