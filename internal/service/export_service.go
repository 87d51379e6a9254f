package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/andy/depobill/internal/domain"
	"github.com/andy/depobill/internal/export"
	"github.com/andy/depobill/internal/render"
	"github.com/andy/depobill/internal/repository"
)

var ErrValidation = errors.New("invoice is incomplete")

// ValidationError lists the required fields that were left empty
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: missing %s", ErrValidation, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ExportRequest is one invoice as filled in on the form
type ExportRequest struct {
	Biller    domain.BillerProfile
	Client    domain.AddressRecord
	CaseInfo  string
	Number    int // Less than 1 means use the stored sequence value
	Date      string
	Items     []domain.LineItem
	PayableTo string
}

type ExportOptions struct {
	Format export.Format // Defaults to PDF
	Saver  export.Saver  // Defaults to the direct saver
}

type ExportResult struct {
	Path         string
	Format       export.Format
	Number       int
	NextNumber   int
	Total        decimal.Decimal
	AddressSaved bool
	Warnings     []string // Post-save bookkeeping that failed
}

// ExportService renders, saves and then records a finished invoice
type ExportService interface {
	// Export writes the invoice. The sequence, profile and address book
	// change only after the file is saved. Returns export.ErrCancelled
	// when the user backs out of choosing a destination.
	Export(ctx context.Context, req ExportRequest, opts ExportOptions) (*ExportResult, error)

	// Preview renders the document without writing anything
	Preview(ctx context.Context, req ExportRequest) (*render.Document, error)

	// CurrentInvoiceNumber returns the number the next invoice will use
	CurrentInvoiceNumber(ctx context.Context) int

	// SetInvoiceNumber stores a manually chosen next number
	SetInvoiceNumber(ctx context.Context, n int) error
}

type exportService struct {
	sequence    repository.SequenceRepository
	profile     repository.ProfileRepository
	addresses   repository.AddressBookRepository
	rasterizers map[export.Format]export.Rasterizer
	fallback    export.Saver
	logger      *log.Logger
}

// NewExportService creates a new export service. fallback is used when no
// saver is requested and when the requested one fails for a reason other
// than cancellation.
func NewExportService(
	sequence repository.SequenceRepository,
	profile repository.ProfileRepository,
	addresses repository.AddressBookRepository,
	fallback export.Saver,
	logger *log.Logger,
	rasterizers ...export.Rasterizer,
) ExportService {
	byFormat := make(map[export.Format]export.Rasterizer, len(rasterizers))
	for _, r := range rasterizers {
		byFormat[r.Format()] = r
	}
	return &exportService{
		sequence:    sequence,
		profile:     profile,
		addresses:   addresses,
		rasterizers: byFormat,
		fallback:    fallback,
		logger:      logger,
	}
}

func (s *exportService) Export(ctx context.Context, req ExportRequest, opts ExportOptions) (*ExportResult, error) {
	doc, number, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	format := opts.Format
	if format == "" {
		format = export.FormatPDF
	}
	rasterizer, ok := s.rasterizers[format]
	if !ok {
		return nil, fmt.Errorf("no rasterizer for format %q", format)
	}

	artifact, err := rasterizer.Rasterize(ctx, doc)
	if err != nil {
		if isCancel(err) {
			return nil, export.ErrCancelled
		}
		return nil, fmt.Errorf("failed to render invoice: %w", err)
	}
	defer func() {
		if err := artifact.Cleanup(); err != nil {
			s.logger.Warn("scratch cleanup failed", "path", artifact.Path, "err", err)
		}
	}()

	path, err := s.save(ctx, artifact, doc.Filename(string(format)), opts.Saver)
	if err != nil {
		return nil, err
	}

	result := &ExportResult{
		Path:       path,
		Format:     format,
		Number:     number,
		NextNumber: number + 1,
		Total:      doc.Total,
	}
	s.commit(ctx, req, result)

	s.logger.Info("invoice exported", "number", number, "path", path, "total", doc.TotalText)
	return result, nil
}

func (s *exportService) Preview(ctx context.Context, req ExportRequest) (*render.Document, error) {
	doc, _, err := s.prepare(ctx, req)
	return doc, err
}

func (s *exportService) CurrentInvoiceNumber(ctx context.Context) int {
	return s.sequence.Current(ctx)
}

func (s *exportService) SetInvoiceNumber(ctx context.Context, n int) error {
	return s.sequence.Set(ctx, n)
}

// prepare validates req and renders it with the number it will be saved under
func (s *exportService) prepare(ctx context.Context, req ExportRequest) (*render.Document, int, error) {
	if err := validate(req); err != nil {
		return nil, 0, err
	}

	number := req.Number
	if number < 1 {
		number = s.sequence.Current(ctx)
		s.logger.Debug("invoice number invalid, using stored value", "given", req.Number, "using", number)
	}

	doc, err := render.Render(render.Input{
		Biller:    req.Biller,
		Client:    req.Client,
		CaseInfo:  req.CaseInfo,
		Number:    number,
		Date:      req.Date,
		Items:     req.Items,
		PayableTo: req.PayableTo,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return doc, number, nil
}

// save tries the requested saver, then the fallback unless the user cancelled
func (s *exportService) save(ctx context.Context, a *export.Artifact, name string, saver export.Saver) (string, error) {
	if saver == nil {
		saver = s.fallback
	}

	path, err := saver.Save(ctx, a, name)
	if err == nil {
		return path, nil
	}
	if isCancel(err) {
		s.logger.Debug("export cancelled", "file", name)
		return "", export.ErrCancelled
	}
	if saver == s.fallback {
		return "", fmt.Errorf("failed to save invoice: %w", err)
	}

	s.logger.Warn("save failed, writing to output directory instead", "err", err)
	path, err = s.fallback.Save(ctx, a, name)
	if err != nil {
		return "", fmt.Errorf("failed to save invoice: %w", err)
	}
	return path, nil
}

// commit records a saved invoice. Failures here do not undo the saved file
// so they are logged and reported as warnings.
func (s *exportService) commit(ctx context.Context, req ExportRequest, result *ExportResult) {
	warn := func(msg string, err error) {
		s.logger.Warn(msg, "err", err)
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", msg, err))
	}

	if err := s.sequence.Set(ctx, result.NextNumber); err != nil {
		warn("failed to advance invoice number", err)
	}

	current, err := s.profile.Get(ctx)
	if err != nil {
		warn("failed to read biller profile", err)
	} else if err := s.profile.Save(ctx, current.Merge(req.Biller)); err != nil {
		warn("failed to save biller profile", err)
	}

	if req.Client.HasAddress() {
		if err := s.addresses.Upsert(ctx, req.Client); err != nil {
			warn("failed to save client address", err)
		} else {
			result.AddressSaved = true
		}
	}
}

func validate(req ExportRequest) error {
	var missing []string
	if strings.TrimSpace(req.Biller.Name) == "" {
		missing = append(missing, "your name")
	}
	if strings.TrimSpace(req.Client.Name) == "" {
		missing = append(missing, "client name")
	}
	if strings.TrimSpace(req.Date) == "" {
		missing = append(missing, "invoice date")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

func isCancel(err error) bool {
	return errors.Is(err, export.ErrCancelled) || errors.Is(err, context.Canceled)
}
