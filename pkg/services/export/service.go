package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

// Service picks the exporter for a format.
type Service struct {
	exporters map[Format]Exporter
}

func NewService() *Service {
	return &Service{
		exporters: map[Format]Exporter{
			FormatCSV:  NewCSVExporter(),
			FormatXLSX: NewExcelExporter(),
			FormatPDF:  NewPDFExporter(),
		},
	}
}

func (s *Service) Exporter(format Format) (Exporter, error) {
	e, ok := s.exporters[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
	return e, nil
}

// Export renders data and returns the file together with its exporter.
func (s *Service) Export(data *Data, format Format) ([]byte, Exporter, error) {
	e, err := s.Exporter(format)
	if err != nil {
		return nil, nil, err
	}
	var buf bytes.Buffer
	if err := e.Export(data, &buf); err != nil {
		return nil, nil, fmt.Errorf("failed to export %s: %w", format, err)
	}
	return buf.Bytes(), e, nil
}

func (s *Service) ExportToWriter(data *Data, format Format, w io.Writer) error {
	e, err := s.Exporter(format)
	if err != nil {
		return err
	}
	return e.Export(data, w)
}
