package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/rubrica-go-api/internal/dto"
	"github.com/noah-isme/rubrica-go-api/internal/models"
	"github.com/noah-isme/rubrica-go-api/internal/observability"
	"github.com/noah-isme/rubrica-go-api/internal/repository"
	"github.com/noah-isme/rubrica-go-api/pkg/ai"
)

var (
	// ErrUnsupportedImageType indicates the uploaded file is not a readable image.
	ErrUnsupportedImageType = errors.New("unsupported image type")
	// ErrTranscriptionEmpty indicates the transcriber returned no usable text.
	ErrTranscriptionEmpty = errors.New("transcription produced no text")
)

// ImageStorage abstracts uploading image bytes and returning a public URL.
type ImageStorage interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// TranscriptionService turns handwritten submission images into text
// ready for rubric evaluation.
type TranscriptionService interface {
	TranscribeSubmission(ctx context.Context, submissionID uint, file *multipart.FileHeader) (dto.SubmissionResponse, error)
}

type transcriptionService struct {
	submissions repository.SubmissionRepository
	storage     ImageStorage
	transcriber ai.Transcriber
	logger      zerolog.Logger
	tracer      trace.Tracer
}

// NewTranscriptionService constructs the transcription service.
func NewTranscriptionService(submissions repository.SubmissionRepository, storage ImageStorage, transcriber ai.Transcriber, logger zerolog.Logger) TranscriptionService {
	return &transcriptionService{
		submissions: submissions,
		storage:     storage,
		transcriber: transcriber,
		logger:      logger.With().Str("component", "transcription_service").Logger(),
		tracer:      otel.Tracer("github.com/noah-isme/rubrica-go-api/internal/service/transcription"),
	}
}

func (s *transcriptionService) TranscribeSubmission(ctx context.Context, submissionID uint, file *multipart.FileHeader) (dto.SubmissionResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "transcription.submission", trace.WithAttributes(
		attribute.Int("transcription.submission_id", int(submissionID)),
	))
	defer span.End()

	submission, err := s.submissions.GetByID(spanCtx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	if file == nil {
		return dto.SubmissionResponse{}, fmt.Errorf("submission image is required")
	}

	if err := validateImageType(file); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "image validation failed")
		return dto.SubmissionResponse{}, err
	}

	reader, err := file.Open()
	if err != nil {
		return dto.SubmissionResponse{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer reader.Close()

	imageURL, err := s.storage.Upload(spanCtx, file.Filename, reader)
	if err != nil {
		span.RecordError(err)
		return dto.SubmissionResponse{}, fmt.Errorf("failed to store image: %w", err)
	}

	start := time.Now()
	text, err := s.transcriber.Transcribe(spanCtx, imageURL)
	observability.TranscriptionDuration().Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transcription failed")
		return dto.SubmissionResponse{}, fmt.Errorf("failed to transcribe image: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return dto.SubmissionResponse{}, ErrTranscriptionEmpty
	}

	submission.ImageURL = imageURL
	submission.RawText = text
	submission.WordCount = countWords(text)
	submission.Status = models.SubmissionStatusTranscribed

	if err := s.submissions.Update(spanCtx, &submission); err != nil {
		return dto.SubmissionResponse{}, err
	}

	updated, err := s.submissions.GetByID(spanCtx, submission.ID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	s.logger.Info().
		Uint("submission_id", submission.ID).
		Int("word_count", submission.WordCount).
		Msg("submission transcribed")

	return dto.NewSubmissionResponse(updated), nil
}

func countWords(text string) int {
	return len(strings.Fields(text))
}

func validateImageType(file *multipart.FileHeader) error {
	reader, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	defer reader.Close()

	mime, err := mimetype.DetectReader(reader)
	if err != nil {
		return fmt.Errorf("failed to detect image type: %w", err)
	}

	allowed := []string{"image/png", "image/jpeg", "image/webp", "image/heic"}
	for _, a := range allowed {
		if mime.Is(a) {
			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrUnsupportedImageType, mime.String())
}
