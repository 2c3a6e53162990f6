package admanager

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"

	"github.com/vfg2006/ad-revenue-api/infrastructure/integrator/admanager/admanagerclient"
	"github.com/vfg2006/ad-revenue-api/internal/domain"
)

var gzipMagic = []byte{0x1f, 0x8b}

// DecodeExport descompacta o export e converte cada linha em um RawRecord,
// usando o cabeçalho como chave. Linhas com número de colunas diferente são toleradas.
func DecodeExport(ctx context.Context, payload []byte) ([]domain.RawRecord, error) {
	var r io.Reader = bytes.NewReader(payload)

	if bytes.HasPrefix(payload, gzipMagic) {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, exportError(errors.Wrap(err, "gzip inválido"))
		}
		defer gz.Close()
		r = gz
	}

	reader := csv.NewReader(bufio.NewReader(r))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err == io.EOF {
		return []domain.RawRecord{}, nil
	}
	if err != nil {
		return nil, exportError(errors.Wrap(err, "erro ao ler cabeçalho"))
	}
	columns := normalizeHeader(header)

	records := make([]domain.RawRecord, 0, 1024)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, exportError(errors.Wrap(err, "erro ao ler linha"))
		}

		if record := toRecord(columns, row); record != nil {
			records = append(records, record)
		}
	}

	return records, nil
}

func normalizeHeader(header []string) []string {
	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
	}
	return columns
}

// toRecord ignora colunas extras sem cabeçalho e linhas totalmente vazias
func toRecord(columns, row []string) domain.RawRecord {
	record := make(domain.RawRecord, len(columns))
	empty := true

	for i, column := range columns {
		if column == "" || i >= len(row) {
			continue
		}
		value := strings.TrimSpace(row[i])
		if value != "" {
			empty = false
		}
		record[column] = value
	}

	if empty {
		return nil
	}
	return record
}

func exportError(err error) error {
	return &admanagerclient.ProtocolError{Op: "download", Field: "export", Reason: err.Error()}
}
