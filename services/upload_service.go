package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/projecthub/dto"
	"github.com/rs/zerolog"
)

const (
	// MaxUploadSize is the per-file limit
	MaxUploadSize = 50 << 20
	// MaxUploadFiles bounds a multi-file upload
	MaxUploadFiles = 10
)

var allowedMimeTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"video/mp4":       true,
	"video/webm":      true,
	"video/quicktime": true,
	"audio/mpeg":      true,
	"audio/wav":       true,
	"audio/ogg":       true,
}

var uploadSubdirs = []string{"images", "videos", "audio", "misc"}

// UploadService stores user files on disk under a directory per media type
type UploadService struct {
	dir     string
	baseURL string
	log     zerolog.Logger
}

func NewUploadService(dir, baseURL string, log zerolog.Logger) *UploadService {
	return &UploadService{dir: dir, baseURL: strings.TrimRight(baseURL, "/"), log: log}
}

// Dir returns the root directory served at /uploads
func (s *UploadService) Dir() string {
	return s.dir
}

// Save validates and stores one file. Nothing is written when validation fails.
func (s *UploadService) Save(fh *multipart.FileHeader) (*dto.UploadResponse, error) {
	mimeType, err := inspectUpload(fh)
	if err != nil {
		return nil, err
	}
	resp, err := s.store(fh, mimeType)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("file", resp.Filename).Str("mimetype", mimeType).Int64("size", resp.Size).Msg("file uploaded")
	return resp, nil
}

// SaveMany validates every file before storing any of them.
// A failure while storing removes the files already written.
func (s *UploadService) SaveMany(files []*multipart.FileHeader) ([]dto.UploadResponse, error) {
	if len(files) == 0 {
		return nil, Validation("no file provided")
	}
	if len(files) > MaxUploadFiles {
		return nil, Validation("at most %d files per upload", MaxUploadFiles)
	}
	types := make([]string, len(files))
	for i, fh := range files {
		mimeType, err := inspectUpload(fh)
		if err != nil {
			return nil, err
		}
		types[i] = mimeType
	}

	result := make([]dto.UploadResponse, 0, len(files))
	for i, fh := range files {
		resp, err := s.store(fh, types[i])
		if err != nil {
			for _, done := range result {
				_ = os.Remove(filepath.Join(s.dir, subdirFor(done.Mimetype), done.Filename))
			}
			return nil, err
		}
		result = append(result, *resp)
	}
	s.log.Info().Int("files", len(result)).Msg("files uploaded")
	return result, nil
}

// inspectUpload checks size and type without writing anything
func inspectUpload(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", Validation("no file provided")
	}
	if fh.Size > MaxUploadSize {
		return "", Validation("file %s exceeds the %d MB limit", fh.Filename, MaxUploadSize>>20)
	}

	src, err := fh.Open()
	if err != nil {
		return "", Internal(fmt.Errorf("open upload: %w", err))
	}
	defer src.Close()

	mimeType, err := detectMimeType(fh, src)
	if err != nil {
		return "", Internal(err)
	}
	if !allowedMimeTypes[mimeType] {
		return "", Validation("file type %s is not allowed", mimeType)
	}
	return mimeType, nil
}

func (s *UploadService) store(fh *multipart.FileHeader, mimeType string) (*dto.UploadResponse, error) {
	subdir := subdirFor(mimeType)
	if err := os.MkdirAll(filepath.Join(s.dir, subdir), 0o755); err != nil {
		return nil, Internal(fmt.Errorf("create upload dir: %w", err))
	}

	src, err := fh.Open()
	if err != nil {
		return nil, Internal(fmt.Errorf("open upload: %w", err))
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext == "" {
		if known := mimetype.Lookup(mimeType); known != nil {
			ext = known.Extension()
		}
	}
	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, subdir, name)

	dst, err := os.Create(path)
	if err != nil {
		return nil, Internal(fmt.Errorf("create file: %w", err))
	}
	written, err := io.Copy(dst, io.LimitReader(src, MaxUploadSize+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && written > MaxUploadSize {
		err = Validation("file %s exceeds the %d MB limit", fh.Filename, MaxUploadSize>>20)
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, internalIf(err)
	}

	return &dto.UploadResponse{
		URL:          fmt.Sprintf("%s/uploads/%s/%s", s.baseURL, subdir, name),
		Filename:     name,
		OriginalName: fh.Filename,
		Mimetype:     mimeType,
		Size:         written,
	}, nil
}

// Delete removes a stored file
func (s *UploadService) Delete(subdir, filename string) error {
	valid := false
	for _, d := range uploadSubdirs {
		if d == subdir {
			valid = true
			break
		}
	}
	if !valid {
		return Validation("invalid upload directory")
	}
	if filename == "" || strings.Contains(filename, "..") || strings.ContainsAny(filename, `/\`) {
		return Validation("invalid file name")
	}

	err := os.Remove(filepath.Join(s.dir, subdir, filename))
	if errors.Is(err, os.ErrNotExist) {
		return NotFound("file not found")
	}
	if err != nil {
		return Internal(err)
	}
	s.log.Info().Str("file", filename).Msg("file deleted")
	return nil
}

// declaredType returns the part's content type, or "" when it says nothing useful
func declaredType(fh *multipart.FileHeader) string {
	mt := strings.ToLower(strings.TrimSpace(fh.Header.Get("Content-Type")))
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	if mt == "application/octet-stream" {
		return ""
	}
	return mt
}

// detectMimeType trusts the declared type and sniffs the content only when none was given
func detectMimeType(fh *multipart.FileHeader, src multipart.File) (string, error) {
	if mt := declaredType(fh); mt != "" {
		return mt, nil
	}
	detected, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("detect file type: %w", err)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}
	mt := detected.String()
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = mt[:i]
	}
	return mt, nil
}

func subdirFor(mimeType string) string {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return "images"
	case strings.HasPrefix(mimeType, "video/"):
		return "videos"
	case strings.HasPrefix(mimeType, "audio/"):
		return "audio"
	}
	return "misc"
}
