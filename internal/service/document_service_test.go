package service_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"edulink/internal/config"
	"edulink/internal/domain"
	"edulink/internal/port"
	"edulink/internal/service"
	"edulink/mocks"
)

func testS3Config() config.S3Config {
	return config.S3Config{
		Bucket:        "test-bucket",
		Region:        "eu-west-3",
		MaxFileSizeMB: 10,
		PresignExpiry: 900,
	}
}

// createMultipartFile creates a fake multipart file header and content for testing.
func createMultipartFile(filename string, content []byte, contentType string) (multipart.File, *multipart.FileHeader) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)

	part, _ := writer.CreatePart(h)
	_, _ = part.Write(content)
	writer.Close()

	reader := multipart.NewReader(body, writer.Boundary())
	form, _ := reader.ReadForm(int64(len(content) + 1024))
	file, _ := form.File["file"][0].Open()
	return file, form.File["file"][0]
}

func pdfContent() []byte {
	return []byte("%PDF-1.4 test content that is at least a few bytes long for detection purposes")
}

func pngContent() []byte {
	header := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	return append(header, bytes.Repeat([]byte{0x00}, 100)...)
}

type docDeps struct {
	docs         *mocks.MockDocumentRepo
	intervenants *mocks.MockIntervenantRepo
	storage      *mocks.MockObjectStorage
}

func newDocumentService() (service.DocumentService, docDeps) {
	d := docDeps{
		docs:         new(mocks.MockDocumentRepo),
		intervenants: new(mocks.MockIntervenantRepo),
		storage:      new(mocks.MockObjectStorage),
	}
	cfg := testS3Config()
	return service.NewDocumentService(d.docs, d.intervenants, d.storage, &cfg), d
}

func intervenantActor() domain.Actor {
	return domain.Actor{UserID: uuid.New(), Role: domain.RoleIntervenant, ProfileID: uuid.New()}
}

func TestDocumentService_Upload_CV(t *testing.T) {
	svc, d := newDocumentService()
	actor := intervenantActor()

	file, header := createMultipartFile("cv.pdf", pdfContent(), "application/pdf")
	defer file.Close()

	d.docs.On("ListByIntervenant", mock.Anything, actor.ProfileID).Return([]domain.Document{}, nil)
	d.storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "test-bucket" && in.ContentType == "application/pdf"
	})).Return(&port.UploadOutput{}, nil)
	d.docs.On("Create", mock.Anything, mock.AnythingOfType("*domain.Document")).Return(nil)

	doc, err := svc.Upload(context.Background(), actor, service.UploadDocumentInput{Type: domain.DocCV, File: file, Header: header})
	require.NoError(t, err)
	assert.Equal(t, domain.DocCV, doc.Type)
	assert.Equal(t, "cv.pdf", doc.OriginalName)
	assert.Equal(t, "intervenants/"+actor.ProfileID.String()+"/documents/CV/"+doc.ID.String()+".pdf", doc.S3Key)
	d.storage.AssertExpectations(t)
}

func TestDocumentService_Upload_SingleSlotAlreadyFilled(t *testing.T) {
	svc, d := newDocumentService()
	actor := intervenantActor()

	file, header := createMultipartFile("cv2.pdf", pdfContent(), "application/pdf")
	defer file.Close()

	d.docs.On("ListByIntervenant", mock.Anything, actor.ProfileID).
		Return([]domain.Document{{ID: uuid.New(), Type: domain.DocCV}}, nil)

	_, err := svc.Upload(context.Background(), actor, service.UploadDocumentInput{Type: domain.DocCV, File: file, Header: header})
	assert.ErrorIs(t, err, domain.ErrDocumentTypeAlreadyExists)
	d.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestDocumentService_Upload_MultipleDiplomes(t *testing.T) {
	svc, d := newDocumentService()
	actor := intervenantActor()

	file, header := createMultipartFile("master.png", pngContent(), "image/png")
	defer file.Close()

	d.docs.On("ListByIntervenant", mock.Anything, actor.ProfileID).
		Return([]domain.Document{{ID: uuid.New(), Type: domain.DocDiplome}}, nil)
	d.storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	d.docs.On("Create", mock.Anything, mock.Anything).Return(nil)

	doc, err := svc.Upload(context.Background(), actor, service.UploadDocumentInput{Type: domain.DocDiplome, File: file, Header: header})
	require.NoError(t, err)
	assert.Equal(t, domain.FileTypePNG, doc.FileType)
}

func TestDocumentService_Upload_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		docType  domain.DocumentType
		filename string
		content  []byte
		wantErr  error
	}{
		{"unknown type", "PASSPORT", "a.pdf", pdfContent(), domain.ErrInvalidDocumentType},
		{"bad extension", domain.DocCV, "cv.docx", pdfContent(), domain.ErrUnsupportedFileType},
		{"pdf profile image", domain.DocProfileImage, "me.pdf", pdfContent(), domain.ErrUnsupportedFileType},
		{"extension does not match bytes", domain.DocCV, "cv.pdf", pngContent(), domain.ErrUnsupportedFileType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newDocumentService()
			file, header := createMultipartFile(tt.filename, tt.content, "application/octet-stream")
			defer file.Close()

			_, err := svc.Upload(context.Background(), intervenantActor(),
				service.UploadDocumentInput{Type: tt.docType, File: file, Header: header})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDocumentService_Upload_RemovesObjectWhenRowFails(t *testing.T) {
	svc, d := newDocumentService()
	actor := intervenantActor()

	file, header := createMultipartFile("kbis.pdf", pdfContent(), "application/pdf")
	defer file.Close()

	d.docs.On("ListByIntervenant", mock.Anything, actor.ProfileID).Return([]domain.Document{}, nil)
	d.storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	d.docs.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDocumentTypeAlreadyExists)
	d.storage.On("Delete", mock.Anything, "test-bucket", mock.AnythingOfType("string")).Return(nil)

	_, err := svc.Upload(context.Background(), actor, service.UploadDocumentInput{Type: domain.DocKbis, File: file, Header: header})
	assert.ErrorIs(t, err, domain.ErrDocumentTypeAlreadyExists)
	d.storage.AssertExpectations(t)
}

func TestDocumentService_GetVault_Completion(t *testing.T) {
	svc, d := newDocumentService()
	actor := intervenantActor()

	docs := []domain.Document{
		{ID: uuid.New(), Type: domain.DocCV},
		{ID: uuid.New(), Type: domain.DocDiplome},
		{ID: uuid.New(), Type: domain.DocRIB},
		{ID: uuid.New(), Type: domain.DocProfileImage},
	}
	d.docs.On("ListByIntervenant", mock.Anything, actor.ProfileID).Return(docs, nil)

	vault, err := svc.GetVault(context.Background(), actor, actor.ProfileID)
	require.NoError(t, err)
	// 3 of the 7 required types are filled.
	assert.Equal(t, 43, vault.Completion)
	require.Len(t, vault.Requirements, len(domain.DocumentRequirements))
	assert.Equal(t, domain.DocProfileImage, vault.Requirements[0].Type)
	assert.False(t, vault.Requirements[1].CanUpload)
	assert.True(t, vault.Requirements[2].CanUpload)
}

func TestDocumentService_GetVault_OtherIntervenantForbidden(t *testing.T) {
	svc, _ := newDocumentService()
	_, err := svc.GetVault(context.Background(), intervenantActor(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDocumentService_GetDownloadURL_EcoleAccess(t *testing.T) {
	ecole := domain.Actor{UserID: uuid.New(), Role: domain.RoleEcole, ProfileID: uuid.New()}
	approved := &domain.Intervenant{ID: uuid.New(), Status: domain.ModerationApproved}
	pending := &domain.Intervenant{ID: uuid.New(), Status: domain.ModerationPending}

	cv := &domain.Document{ID: uuid.New(), IntervenantID: approved.ID, Type: domain.DocCV, S3Bucket: "b", S3Key: "k"}
	rib := &domain.Document{ID: uuid.New(), IntervenantID: approved.ID, Type: domain.DocRIB}
	pendingCV := &domain.Document{ID: uuid.New(), IntervenantID: pending.ID, Type: domain.DocCV}

	svc, d := newDocumentService()
	d.docs.On("GetByID", mock.Anything, cv.ID).Return(cv, nil)
	d.docs.On("GetByID", mock.Anything, rib.ID).Return(rib, nil)
	d.docs.On("GetByID", mock.Anything, pendingCV.ID).Return(pendingCV, nil)
	d.intervenants.On("GetByID", mock.Anything, approved.ID).Return(approved, nil)
	d.intervenants.On("GetByID", mock.Anything, pending.ID).Return(pending, nil)
	d.storage.On("GetPresignedURL", mock.Anything, "b", "k", int64(900)).Return("https://signed", nil)

	url, err := svc.GetDownloadURL(context.Background(), ecole, cv.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://signed", url)

	_, err = svc.GetDownloadURL(context.Background(), ecole, rib.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.GetDownloadURL(context.Background(), ecole, pendingCV.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentService_Delete(t *testing.T) {
	svc, d := newDocumentService()
	actor := intervenantActor()
	doc := &domain.Document{ID: uuid.New(), IntervenantID: actor.ProfileID, Type: domain.DocCV, S3Bucket: "b", S3Key: "k"}

	d.docs.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)
	d.storage.On("Delete", mock.Anything, "b", "k").Return(nil)
	d.docs.On("Delete", mock.Anything, doc.ID).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), actor, doc.ID))

	err := svc.Delete(context.Background(), intervenantActor(), doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentService_Delete_StorageFailureKeepsRow(t *testing.T) {
	svc, d := newDocumentService()
	actor := intervenantActor()
	doc := &domain.Document{ID: uuid.New(), IntervenantID: actor.ProfileID, S3Bucket: "b", S3Key: "k"}

	d.docs.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)
	d.storage.On("Delete", mock.Anything, "b", "k").Return(errors.New("s3 down"))

	assert.Error(t, svc.Delete(context.Background(), actor, doc.ID))
	d.docs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
