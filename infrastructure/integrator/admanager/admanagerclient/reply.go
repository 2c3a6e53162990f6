package admanagerclient

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/text/encoding/htmlindex"

	admanagerdomain "github.com/vfg2006/ad-revenue-api/infrastructure/integrator/admanager/domain"
	"github.com/vfg2006/ad-revenue-api/internal/domain"
)

// ReplyParser extrai os campos das respostas do ReportService.
// O prefixo de namespace das tags varia por endpoint, então a busca é feita pelo nome local.
type ReplyParser interface {
	ExtractJobID(body []byte) (string, error)
	ExtractStatus(body []byte) (domain.JobStatus, error)
	ExtractDownloadURL(body []byte) (string, error)
	ExtractCurrencyCode(body []byte) (string, error)
	ExtractFault(body []byte) *admanagerdomain.Fault
}

type xmlReplyParser struct{}

func NewReplyParser() ReplyParser {
	return xmlReplyParser{}
}

// Caminhos aceitos para cada campo, em ordem de preferência
var (
	jobIDPaths    = [][]string{{"rval", "id"}, {"reportJobId"}}
	statusPaths   = [][]string{{"rval"}, {"reportJobStatus"}, {"status"}}
	urlPaths      = [][]string{{"rval"}, {"url"}, {"downloadUrl"}}
	currencyPaths = [][]string{{"rval", "currencyCode"}, {"currencyCode"}}
)

func (xmlReplyParser) ExtractJobID(body []byte) (string, error) {
	id, err := findText(body, jobIDPaths)
	if err != nil {
		return "", &ProtocolError{Op: "runReportJob", Field: "id", Reason: err.Error()}
	}
	if id == "" {
		return "", missingField("runReportJob", "id")
	}
	return id, nil
}

func (xmlReplyParser) ExtractStatus(body []byte) (domain.JobStatus, error) {
	raw, err := findText(body, statusPaths)
	if err != nil {
		return "", &ProtocolError{Op: "getReportJobStatus", Field: "status", Reason: err.Error()}
	}
	if raw == "" {
		return "", missingField("getReportJobStatus", "status")
	}

	status := domain.JobStatus(strings.ToUpper(raw))
	switch status {
	case domain.JobStatusPending, domain.JobStatusInProgress, domain.JobStatusCompleted, domain.JobStatusFailed:
		return status, nil
	default:
		return "", &ProtocolError{
			Op:     "getReportJobStatus",
			Field:  "status",
			Reason: fmt.Sprintf("valor desconhecido %q", raw),
		}
	}
}

func (xmlReplyParser) ExtractDownloadURL(body []byte) (string, error) {
	raw, err := findText(body, urlPaths)
	if err != nil {
		return "", &ProtocolError{Op: "getReportDownloadUrlWithOptions", Field: "url", Reason: err.Error()}
	}
	if raw == "" {
		return "", missingField("getReportDownloadUrlWithOptions", "url")
	}

	// A URL pode vir com entidades HTML duplamente escapadas
	return html.UnescapeString(raw), nil
}

func (xmlReplyParser) ExtractCurrencyCode(body []byte) (string, error) {
	code, err := findText(body, currencyPaths)
	if err != nil {
		return "", &ProtocolError{Op: "getCurrentNetwork", Field: "currencyCode", Reason: err.Error()}
	}
	if code == "" {
		return "", missingField("getCurrentNetwork", "currencyCode")
	}
	return strings.ToUpper(code), nil
}

func (xmlReplyParser) ExtractFault(body []byte) *admanagerdomain.Fault {
	code, _ := findText(body, [][]string{{"Fault", "faultcode"}})
	message, _ := findText(body, [][]string{{"Fault", "faultstring"}})
	if code == "" && message == "" {
		return nil
	}
	return &admanagerdomain.Fault{Code: code, Message: message}
}

func newDecoder(r io.Reader) *xml.Decoder {
	decoder := xml.NewDecoder(r)
	decoder.Strict = false
	decoder.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return nil, errors.Wrapf(err, "charset não suportado %q", charset)
		}
		return enc.NewDecoder().Reader(input), nil
	}
	return decoder
}

// findText percorre o XML uma vez e devolve o texto do primeiro caminho encontrado,
// respeitando a ordem de preferência. Um caminho casa com o sufixo da pilha de elementos.
func findText(body []byte, paths [][]string) (string, error) {
	decoder := newDecoder(bytes.NewReader(body))

	found := make([]string, len(paths))
	stack := make([]string, 0, 16)
	var text strings.Builder

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.Wrap(err, "resposta XML inválida")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			stack = append(stack, t.Name.Local)
			text.Reset()
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			value := strings.TrimSpace(text.String())
			text.Reset()
			if value != "" {
				for i, path := range paths {
					if found[i] == "" && hasSuffix(stack, path) {
						found[i] = value
					}
				}
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	for _, value := range found {
		if value != "" {
			return value, nil
		}
	}
	return "", nil
}

func hasSuffix(stack, path []string) bool {
	if len(path) > len(stack) {
		return false
	}
	offset := len(stack) - len(path)
	for i, name := range path {
		if !strings.EqualFold(stack[offset+i], name) {
			return false
		}
	}
	return true
}
