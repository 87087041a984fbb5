package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"edulink/internal/config"
	"edulink/internal/domain"
	"edulink/internal/port"
)

// UploadDocumentInput is the DTO for a vault upload.
type UploadDocumentInput struct {
	Type   domain.DocumentType
	File   multipart.File
	Header *multipart.FileHeader
}

// DocumentPreview is a document with its raw bytes for inline display.
type DocumentPreview struct {
	Document *domain.Document
	Data     []byte
}

// DocumentService defines the document vault contract.
type DocumentService interface {
	Upload(ctx context.Context, actor domain.Actor, input UploadDocumentInput) (*domain.Document, error)
	GetVault(ctx context.Context, actor domain.Actor, intervenantID uuid.UUID) (*domain.Vault, error)
	GetDownloadURL(ctx context.Context, actor domain.Actor, docID uuid.UUID) (string, error)
	Preview(ctx context.Context, actor domain.Actor, docID uuid.UUID) (*DocumentPreview, error)
	Delete(ctx context.Context, actor domain.Actor, docID uuid.UUID) error
}

type documentService struct {
	docRepo         port.DocumentRepository
	intervenantRepo port.IntervenantRepository
	storage         port.ObjectStorage
	cfg             *config.S3Config
}

// NewDocumentService creates a new DocumentService implementation.
func NewDocumentService(
	docRepo port.DocumentRepository,
	intervenantRepo port.IntervenantRepository,
	storage port.ObjectStorage,
	cfg *config.S3Config,
) DocumentService {
	return &documentService{
		docRepo:         docRepo,
		intervenantRepo: intervenantRepo,
		storage:         storage,
		cfg:             cfg,
	}
}

func (s *documentService) Upload(ctx context.Context, actor domain.Actor, input UploadDocumentInput) (*domain.Document, error) {
	if actor.Role != domain.RoleIntervenant {
		return nil, domain.ErrInsufficientRole
	}
	req, ok := domain.RequirementFor(input.Type)
	if !ok {
		return nil, domain.ErrInvalidDocumentType
	}

	// Validate file extension
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if input.Type == domain.DocProfileImage && fileType == domain.FileTypePDF {
		return nil, domain.ErrUnsupportedFileType
	}

	// Validate file size
	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Read first 512 bytes for magic-byte content type detection
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	if detected, valid := domain.AllowedContentTypes[http.DetectContentType(buf[:n])]; !valid || detected != fileType {
		return nil, domain.ErrUnsupportedFileType
	}
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	existing, err := s.docRepo.ListByIntervenant(ctx, actor.ProfileID)
	if err != nil {
		return nil, err
	}
	if !domain.CanUpload(req, existing) {
		return nil, domain.ErrDocumentTypeAlreadyExists
	}

	docID := uuid.New()
	s3Key := fmt.Sprintf("intervenants/%s/documents/%s/%s.%s", actor.ProfileID, input.Type, docID, ext)
	contentType := domain.AllowedFileTypes[fileType]
	doc := &domain.Document{
		ID:            docID,
		IntervenantID: actor.ProfileID,
		Type:          input.Type,
		FileName:      docID.String() + "." + ext,
		OriginalName:  input.Header.Filename,
		FileType:      fileType,
		FileSize:      input.Header.Size,
		ContentType:   contentType,
		S3Bucket:      s.cfg.Bucket,
		S3Key:         s3Key,
	}

	log.Printf("documentService.Upload: uploading %s %s (%s, %d bytes) for intervenant %s",
		input.Type, input.Header.Filename, contentType, input.Header.Size, actor.ProfileID)

	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         s3Key,
		Body:        input.File,
		ContentType: contentType,
		Size:        input.Header.Size,
	})
	if err != nil {
		log.Printf("documentService.Upload: S3 upload failed for document %s: %v", docID, err)
		return nil, domain.ErrUploadFailed
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		if delErr := s.storage.Delete(ctx, s.cfg.Bucket, s3Key); delErr != nil {
			log.Printf("documentService.Upload: failed to remove orphan object %s: %v", s3Key, delErr)
		}
		return nil, err
	}
	return doc, nil
}

// GetVault is available to the owner and to admins.
func (s *documentService) GetVault(ctx context.Context, actor domain.Actor, intervenantID uuid.UUID) (*domain.Vault, error) {
	if !actor.IsAdmin() && !(actor.Role == domain.RoleIntervenant && actor.ProfileID == intervenantID) {
		return nil, domain.ErrForbidden
	}
	docs, err := s.docRepo.ListByIntervenant(ctx, intervenantID)
	if err != nil {
		return nil, err
	}
	return domain.BuildVault(docs), nil
}

func (s *documentService) GetDownloadURL(ctx context.Context, actor domain.Actor, docID uuid.UUID) (string, error) {
	doc, err := s.readable(ctx, actor, docID)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, doc.S3Bucket, doc.S3Key, s.cfg.PresignExpiry)
}

func (s *documentService) Preview(ctx context.Context, actor domain.Actor, docID uuid.UUID) (*DocumentPreview, error) {
	doc, err := s.readable(ctx, actor, docID)
	if err != nil {
		return nil, err
	}
	data, err := s.storage.Download(ctx, doc.S3Bucket, doc.S3Key)
	if err != nil {
		return nil, err
	}
	return &DocumentPreview{Document: doc, Data: data}, nil
}

// readable loads a document and checks that actor may read it: owner and admins
// always, écoles only non-sensitive documents of approved intervenants.
func (s *documentService) readable(ctx context.Context, actor domain.Actor, docID uuid.UUID) (*domain.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case domain.RoleAdmin:
		return doc, nil
	case domain.RoleIntervenant:
		if doc.IntervenantID == actor.ProfileID {
			return doc, nil
		}
		return nil, domain.ErrNotFound
	case domain.RoleEcole:
		if doc.Sensitive() {
			return nil, domain.ErrForbidden
		}
		intervenant, err := s.intervenantRepo.GetByID(ctx, doc.IntervenantID)
		if err != nil {
			return nil, err
		}
		if intervenant.Status != domain.ModerationApproved {
			return nil, domain.ErrNotFound
		}
		return doc, nil
	}
	return nil, domain.ErrForbidden
}

func (s *documentService) Delete(ctx context.Context, actor domain.Actor, docID uuid.UUID) error {
	doc, err := s.docRepo.GetByID(ctx, docID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && !(actor.Role == domain.RoleIntervenant && doc.IntervenantID == actor.ProfileID) {
		return domain.ErrNotFound
	}

	log.Printf("documentService.Delete: deleting document %s (%s) of intervenant %s", doc.ID, doc.Type, doc.IntervenantID)

	if err := s.storage.Delete(ctx, doc.S3Bucket, doc.S3Key); err != nil {
		log.Printf("documentService.Delete: failed to delete from S3: %v", err)
		return fmt.Errorf("deleting from storage: %w", err)
	}
	return s.docRepo.Delete(ctx, docID)
}
