package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/visitordesk/api/internal/entity"
	"github.com/visitordesk/api/internal/repository"
)

// MaxImageSize bounds the inbound card image payload.
const MaxImageSize = 10 << 20

// AssetUploader sends an image buffer to the remote media host and returns a
// durable URL for the stored asset.
type AssetUploader interface {
	Upload(ctx context.Context, data []byte, name, contentType string) (string, error)
}

// ImageOptimizer recompresses a card image. It must never fail outward; on any
// internal error it returns the buffer it was given.
type ImageOptimizer interface {
	Optimize(data []byte) []byte
}

// SubmitInput carries the fields of a visiting-card submission.
type SubmitInput struct {
	PersonalPhoneNumber string
	Name                string
	Email               string
	CompanyName         string
	CompanyPhoneNumber  string
	Address             string
	OTPVerified         bool
	CaptureMethod       string

	Image            []byte
	ImageContentType string
}

// VisitorsService orchestrates validation, image handling, and persistence for
// visitor records.
type VisitorsService struct {
	repo      repository.VisitorsRepository
	store     AssetUploader
	optimizer ImageOptimizer
	logger    *zap.Logger
	now       func() time.Time
}

// NewVisitorsService wires the submission workflow.
func NewVisitorsService(repo repository.VisitorsRepository, store AssetUploader, optimizer ImageOptimizer, logger *zap.Logger) *VisitorsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VisitorsService{
		repo:      repo,
		store:     store,
		optimizer: optimizer,
		logger:    logger,
		now:       time.Now,
	}
}

// Submit runs the card submission workflow: fail-fast validation, best-effort
// image optimization, asset upload concurrent with the repository lookup, then
// an atomic create-or-update keyed by phone number. The boolean result reports
// whether a new record was created.
func (s *VisitorsService) Submit(ctx context.Context, input SubmitInput) (*entity.Visitor, bool, error) {
	if err := s.validateSubmit(&input); err != nil {
		return nil, false, err
	}

	buffer := input.Image
	if s.optimizer != nil {
		buffer = s.optimizer.Optimize(buffer)
	}

	assetName := fmt.Sprintf("visitor_%s_%d", input.PersonalPhoneNumber, s.now().UnixMilli())

	var (
		imageURL string
		existing *entity.Visitor
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		url, err := s.store.Upload(gctx, buffer, assetName, input.ImageContentType)
		if err != nil {
			return fmt.Errorf("upload visiting card: %w", err)
		}
		imageURL = url
		return nil
	})
	g.Go(func() error {
		record, err := s.repo.FindByPhone(gctx, input.PersonalPhoneNumber)
		if err != nil && !errors.Is(err, repository.ErrVisitorNotFound) {
			return fmt.Errorf("lookup visitor: %w", err)
		}
		existing = record
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("card submission failed",
			zap.String("phone", input.PersonalPhoneNumber),
			zap.Error(err))
		return nil, false, err
	}

	visitor := &entity.Visitor{
		PersonalPhoneNumber:  input.PersonalPhoneNumber,
		Name:                 input.Name,
		Email:                input.Email,
		CompanyName:          input.CompanyName,
		CompanyPhoneNumber:   input.CompanyPhoneNumber,
		Address:              input.Address,
		VisitingCardImageURL: imageURL,
		OTPVerified:          input.OTPVerified,
		CaptureMethod:        input.CaptureMethod,
	}

	persisted, created, err := s.repo.Upsert(ctx, visitor)
	if err != nil {
		s.logger.Error("card submission failed",
			zap.String("phone", input.PersonalPhoneNumber),
			zap.Error(err))
		return nil, false, fmt.Errorf("persist visitor: %w", err)
	}

	if !created && existing == nil {
		// A concurrent submission for the same phone won the insert; the
		// unique index degraded this write to an update of the winner's row.
		s.logger.Warn("visitor lookup raced with a concurrent submission",
			zap.String("phone", input.PersonalPhoneNumber))
	}

	s.logger.Info("visitor card stored",
		zap.String("visitor_id", persisted.ID.String()),
		zap.Bool("created", created))
	return persisted, created, nil
}

func (s *VisitorsService) validateSubmit(input *SubmitInput) error {
	input.PersonalPhoneNumber = strings.TrimSpace(input.PersonalPhoneNumber)
	if err := ValidatePersonalPhone(input.PersonalPhoneNumber); err != nil {
		return err
	}

	email, err := NormalizeEmail(input.Email)
	if err != nil {
		return err
	}
	input.Email = email

	input.CompanyPhoneNumber = strings.TrimSpace(input.CompanyPhoneNumber)
	if err := ValidateCompanyPhone(input.CompanyPhoneNumber); err != nil {
		return err
	}

	input.Name = strings.TrimSpace(input.Name)
	if utf8.RuneCountInString(input.Name) > maxNameLength {
		return invalidField("name", "Name must be at most 100 characters.")
	}
	input.CompanyName = strings.TrimSpace(input.CompanyName)
	input.Address = strings.TrimSpace(input.Address)
	if utf8.RuneCountInString(input.Address) > maxAddressLength {
		return invalidField("address", "Address must be at most 250 characters.")
	}

	if input.CaptureMethod != entity.CaptureMethodCamera {
		input.CaptureMethod = entity.CaptureMethodUpload
	}

	if len(input.Image) == 0 {
		return invalidField("image", "Image file is required.")
	}
	if !strings.HasPrefix(input.ImageContentType, "image/") {
		return invalidField("image", "Only image files are allowed.")
	}
	if len(input.Image) > MaxImageSize {
		return invalidField("image", "File size must be less than 10MB.")
	}

	return nil
}

// List returns every visitor, newest first.
func (s *VisitorsService) List(ctx context.Context) ([]entity.Visitor, error) {
	return s.repo.List(ctx)
}

// Update overwrites the mutable fields of an existing record (admin surface).
func (s *VisitorsService) Update(ctx context.Context, id uuid.UUID, input repository.UpdateVisitorInput) (*entity.Visitor, error) {
	input.PersonalPhoneNumber = strings.TrimSpace(input.PersonalPhoneNumber)
	if err := ValidatePersonalPhone(input.PersonalPhoneNumber); err != nil {
		return nil, err
	}
	input.CompanyPhoneNumber = strings.TrimSpace(input.CompanyPhoneNumber)
	if err := ValidateCompanyPhone(input.CompanyPhoneNumber); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Email) != "" {
		email, err := NormalizeEmail(input.Email)
		if err != nil {
			return nil, err
		}
		input.Email = email
	} else {
		input.Email = ""
	}

	input.Name = strings.TrimSpace(input.Name)
	if utf8.RuneCountInString(input.Name) > maxNameLength {
		return nil, invalidField("name", "Name must be at most 100 characters.")
	}
	input.CompanyName = strings.TrimSpace(input.CompanyName)
	input.Address = strings.TrimSpace(input.Address)
	if utf8.RuneCountInString(input.Address) > maxAddressLength {
		return nil, invalidField("address", "Address must be at most 250 characters.")
	}

	return s.repo.UpdateByID(ctx, id, input)
}

// Delete removes a record by id and returns it.
func (s *VisitorsService) Delete(ctx context.Context, id uuid.UUID) (*entity.Visitor, error) {
	return s.repo.DeleteByID(ctx, id)
}
