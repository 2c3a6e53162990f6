package admanagerclient

import (
	"encoding/xml"

	admanagerdomain "github.com/vfg2006/ad-revenue-api/infrastructure/integrator/admanager/domain"
	"github.com/vfg2006/ad-revenue-api/internal/domain"
)

const soapEnvelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"

type envelope struct {
	XMLName xml.Name   `xml:"soapenv:Envelope"`
	SoapNS  string     `xml:"xmlns:soapenv,attr"`
	Header  soapHeader `xml:"soapenv:Header"`
	Body    soapBody   `xml:"soapenv:Body"`
}

type soapHeader struct {
	RequestHeader requestHeader `xml:"RequestHeader"`
}

type requestHeader struct {
	XMLNS           string `xml:"xmlns,attr"`
	NetworkCode     string `xml:"networkCode"`
	ApplicationName string `xml:"applicationName"`
}

type soapBody struct {
	Content interface{}
}

type runReportJobRequest struct {
	XMLName   xml.Name  `xml:"runReportJob"`
	XMLNS     string    `xml:"xmlns,attr"`
	ReportJob reportJob `xml:"reportJob"`
}

type reportJob struct {
	ReportQuery reportQuery `xml:"reportQuery"`
}

type reportQuery struct {
	Dimensions    []string `xml:"dimensions"`
	Columns       []string `xml:"columns"`
	StartDate     soapDate `xml:"startDate"`
	EndDate       soapDate `xml:"endDate"`
	DateRangeType string   `xml:"dateRangeType"`
}

type soapDate struct {
	Year  int `xml:"year"`
	Month int `xml:"month"`
	Day   int `xml:"day"`
}

type getReportJobStatusRequest struct {
	XMLName     xml.Name `xml:"getReportJobStatus"`
	XMLNS       string   `xml:"xmlns,attr"`
	ReportJobID string   `xml:"reportJobId"`
}

type getReportDownloadURLRequest struct {
	XMLName     xml.Name              `xml:"getReportDownloadUrlWithOptions"`
	XMLNS       string                `xml:"xmlns,attr"`
	ReportJobID string                `xml:"reportJobId"`
	Options     reportDownloadOptions `xml:"reportDownloadOptions"`
}

type reportDownloadOptions struct {
	ExportFormat            string `xml:"exportFormat"`
	IncludeReportProperties bool   `xml:"includeReportProperties"`
	IncludeTotalsRow        bool   `xml:"includeTotalsRow"`
	UseGzipCompression      bool   `xml:"useGzipCompression"`
}

type getCurrentNetworkRequest struct {
	XMLName xml.Name `xml:"getCurrentNetwork"`
	XMLNS   string   `xml:"xmlns,attr"`
}

func toSOAPDate(d domain.DateRange, end bool) soapDate {
	t := d.StartDate
	if end {
		t = d.EndDate
	}
	return soapDate{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// buildEnvelope serializa a operação dentro do envelope SOAP com o cabeçalho da rede
func buildEnvelope(namespace, networkCode, applicationName string, content interface{}) ([]byte, error) {
	env := envelope{
		SoapNS: soapEnvelopeNS,
		Header: soapHeader{RequestHeader: requestHeader{
			XMLNS:           namespace,
			NetworkCode:     networkCode,
			ApplicationName: applicationName,
		}},
		Body: soapBody{Content: content},
	}

	out, err := xml.Marshal(env)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

func newRunReportJob(namespace string, query admanagerdomain.ReportQuery) runReportJobRequest {
	return runReportJobRequest{
		XMLNS: namespace,
		ReportJob: reportJob{ReportQuery: reportQuery{
			Dimensions:    query.Dimensions,
			Columns:       query.Columns,
			StartDate:     toSOAPDate(query.DateRange, false),
			EndDate:       toSOAPDate(query.DateRange, true),
			DateRangeType: "CUSTOM_DATE",
		}},
	}
}

func newGetReportJobStatus(namespace, jobID string) getReportJobStatusRequest {
	return getReportJobStatusRequest{XMLNS: namespace, ReportJobID: jobID}
}

func newGetReportDownloadURL(namespace, jobID string) getReportDownloadURLRequest {
	return getReportDownloadURLRequest{
		XMLNS:       namespace,
		ReportJobID: jobID,
		Options: reportDownloadOptions{
			ExportFormat:       "CSV_DUMP",
			UseGzipCompression: true,
		},
	}
}

func newGetCurrentNetwork(namespace string) getCurrentNetworkRequest {
	return getCurrentNetworkRequest{XMLNS: namespace}
}
