package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"go-jobtrack-backend/internal/domain"
	"go-jobtrack-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const (
	photoMaxDimension = 512
	photoJPEGQuality  = 85
)

type userUsecase struct {
	userRepo  domain.UserRepository
	validate  *validator.Validate
	uploadDir string
}

// NewUserUsecase creates a new user usecase. uploadDir is where resized
// profile photos are written; it is served statically under /uploads.
func NewUserUsecase(userRepo domain.UserRepository, validate *validator.Validate, uploadDir string) domain.UserUsecase {
	return &userUsecase{
		userRepo:  userRepo,
		validate:  validate,
		uploadDir: uploadDir,
	}
}

func (uc *userUsecase) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

func (uc *userUsecase) UpdateProfile(ctx context.Context, userID string, patch domain.UserProfilePatch) (*domain.User, error) {
	if err := uc.validate.Struct(patch); err != nil {
		return nil, apperror.BadRequest("Username is required")
	}

	user, err := uc.userRepo.UpdateProfile(ctx, userID, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

// UploadPhoto resizes the uploaded image, re-encodes it as JPEG and stores
// it under a random filename, then records the public URL on the user row.
func (uc *userUsecase) UploadPhoto(ctx context.Context, userID string, data []byte) (string, error) {
	compressed, err := compressImage(data, photoMaxDimension, photoJPEGQuality)
	if err != nil {
		return "", apperror.BadRequest("Uploaded file is not a supported image")
	}

	if err := os.MkdirAll(uc.uploadDir, 0o755); err != nil {
		return "", apperror.Internal(err)
	}

	filename := fmt.Sprintf("profile_%s.jpg", uuid.NewString())
	if err := os.WriteFile(filepath.Join(uc.uploadDir, filename), compressed, 0o644); err != nil {
		return "", apperror.Internal(err)
	}

	url := "/uploads/" + filename
	if err := uc.userRepo.UpdatePhotoURL(ctx, userID, url); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", apperror.NotFound("User not found")
		}
		return "", apperror.Internal(err)
	}
	return url, nil
}

// compressImage scales an image down to the given max dimension, keeping
// aspect ratio, and re-encodes it as JPEG.
func compressImage(data []byte, maxDimension int, quality int) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	newWidth, newHeight := width, height
	if width > height {
		if width > maxDimension {
			newWidth = maxDimension
			newHeight = int(float64(height) * float64(maxDimension) / float64(width))
		}
	} else {
		if height > maxDimension {
			newHeight = maxDimension
			newWidth = int(float64(width) * float64(maxDimension) / float64(height))
		}
	}

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
