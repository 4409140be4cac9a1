package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/igordesouzasouza/catalog-ingest/internal/apperr"
	"github.com/igordesouzasouza/catalog-ingest/internal/config"
)

var _ Uploader = (*CloudinaryUploader)(nil)

// CloudinaryUploader uploads images into a fixed Cloudinary folder. Every
// upload runs under a deadline; the original admin backend could hang forever
// waiting for the hosting callback, the timeout here is the explicit policy
// replacing that.
type CloudinaryUploader struct {
	cld     *cloudinary.Cloudinary
	folder  string
	timeout time.Duration
}

func NewCloudinaryUploader(cfg config.Media) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
	if err != nil {
		return nil, fmt.Errorf("create cloudinary client: %w", err)
	}

	return &CloudinaryUploader{
		cld:     cld,
		folder:  cfg.Folder,
		timeout: cfg.UploadTimeout,
	}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, image []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	ctx, span := tracer.Start(ctx, "CloudinaryUploader.Upload",
		trace.WithAttributes(
			attribute.String("folder", u.folder),
			attribute.Int("image.bytes", len(image)),
		),
	)
	defer span.End()

	res, err := u.cld.Upload.Upload(ctx, bytes.NewReader(image), uploader.UploadParams{
		Folder: u.folder,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to upload image")
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return "", apperr.UploadTimeoutErr.WrapParent(err)
		}
		return "", apperr.UploadErr.WrapParent(err)
	}

	// The SDK reports API-level rejections in the response body with a nil
	// error.
	if res.Error.Message != "" {
		err := fmt.Errorf("cloudinary: %s", res.Error.Message)
		span.RecordError(err)
		span.SetStatus(codes.Error, "upload rejected")
		return "", apperr.UploadErr.WrapParent(err)
	}

	if res.SecureURL == "" {
		err := errors.New("cloudinary: empty secure url in response")
		span.RecordError(err)
		span.SetStatus(codes.Error, "upload response missing url")
		return "", apperr.UploadErr.WrapParent(err)
	}

	span.SetStatus(codes.Ok, "")
	return res.SecureURL, nil
}
