package livenessService

import (
	"LivenessGateway/internal/api/liveness"
	"LivenessGateway/internal/entity"
	"LivenessGateway/pkg/log"
	"LivenessGateway/pkg/rekognition"
	"LivenessGateway/pkg/utils"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	sessionID string
	session   *entity.LivenessSession
	cmp       *entity.FaceComparison
	err       error

	createCalls  int
	resultCalls  int
	compareCalls int
	settings     entity.LivenessSessionSettings
	source       []byte
	target       []byte
	threshold    float64
}

func (f *fakeClient) CreateLivenessSession(_ context.Context, settings entity.LivenessSessionSettings) (string, error) {
	f.createCalls++
	f.settings = settings
	return f.sessionID, f.err
}

func (f *fakeClient) GetLivenessSessionResults(_ context.Context, _ string) (*entity.LivenessSession, error) {
	f.resultCalls++
	return f.session, f.err
}

func (f *fakeClient) CompareFaces(_ context.Context, source, target []byte, threshold float64) (*entity.FaceComparison, error) {
	f.compareCalls++
	f.source, f.target, f.threshold = source, target, threshold
	return f.cmp, f.err
}

type fakePresigner struct {
	err error
}

func (p *fakePresigner) PresignObject(bucket, key, version string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s?versionId=%s", bucket, key, version), nil
}

func newTestService(client *fakeClient, presigner *fakePresigner) ILivenessService {
	opts := Options{
		LivenessThreshold: 80,
		AuditImagesLimit:  2,
		OutputBucket:      "liveness-bucket",
	}
	if presigner == nil {
		return NewLivenessService(log.NewDiscardLogger(), client, nil, utils.New(), opts)
	}
	return NewLivenessService(log.NewDiscardLogger(), client, presigner, utils.New(), opts)
}

func float(v float64) *float64 { return &v }
func str(v string) *string     { return &v }

func TestCreateSession(t *testing.T) {
	client := &fakeClient{sessionID: "abc-123"}
	svc := newTestService(client, nil)

	id, err := svc.CreateSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc-123", id)
	assert.Equal(t, 1, client.createCalls)
	assert.NotEmpty(t, client.settings.ClientRequestToken)
	assert.Equal(t, int64(2), client.settings.AuditImagesLimit)
	assert.Equal(t, "liveness-bucket", client.settings.OutputBucket)
}

func TestCreateSessionUpstreamFailure(t *testing.T) {
	client := &fakeClient{err: errors.New("AccessDeniedException: not authorized")}
	svc := newTestService(client, nil)

	_, err := svc.CreateSession(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, liveness.ErrUpstream)
	assert.Equal(t, "AccessDeniedException: not authorized", err.Error())
}

func TestGetSessionResultsSucceeded(t *testing.T) {
	client := &fakeClient{session: &entity.LivenessSession{
		SessionID:  "abc-123",
		Status:     "SUCCEEDED",
		Confidence: float(91.4),
	}}
	svc := newTestService(client, nil)

	res, err := svc.GetSessionResults(context.Background(), "abc-123")
	require.NoError(t, err)
	assert.True(t, res.IsLive)
	assert.Equal(t, 91.4, *res.Confidence)
	assert.NotNil(t, res.AuditImages)
	assert.Empty(t, res.AuditImages)
	assert.Nil(t, res.ReferenceImage)
	assert.Nil(t, res.Challenge)
}

func TestGetSessionResultsLowConfidence(t *testing.T) {
	client := &fakeClient{session: &entity.LivenessSession{
		SessionID:  "abc-123",
		Status:     "SUCCEEDED",
		Confidence: float(65.0),
	}}
	svc := newTestService(client, nil)

	res, err := svc.GetSessionResults(context.Background(), "abc-123")
	require.NoError(t, err)
	assert.False(t, res.IsLive)
}

func TestGetSessionResultsRequiresSessionID(t *testing.T) {
	client := &fakeClient{}
	svc := newTestService(client, nil)

	_, err := svc.GetSessionResults(context.Background(), "")
	assert.ErrorIs(t, err, liveness.ErrSessionIDRequired)
	assert.Equal(t, 0, client.resultCalls)
}

func TestGetSessionResultsNotFound(t *testing.T) {
	client := &fakeClient{err: fmt.Errorf("get results: %w", rekognition.ErrSessionNotFound)}
	svc := newTestService(client, nil)

	_, err := svc.GetSessionResults(context.Background(), "missing")
	assert.ErrorIs(t, err, liveness.ErrSessionNotFound)
	assert.NotErrorIs(t, err, liveness.ErrUpstream)
}

func TestGetSessionResultsDeadlinePassesThrough(t *testing.T) {
	client := &fakeClient{err: fmt.Errorf("get results: %w", context.DeadlineExceeded)}
	svc := newTestService(client, nil)

	_, err := svc.GetSessionResults(context.Background(), "abc-123")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGetSessionResultsPresignsStoredImages(t *testing.T) {
	client := &fakeClient{session: &entity.LivenessSession{
		SessionID: "abc-123",
		Status:    "SUCCEEDED",
		ReferenceImage: &entity.AuditImage{
			S3Object: &entity.S3Object{Bucket: str("b"), Name: str("ref.jpg"), Version: str("v1")},
		},
		AuditImages: []entity.AuditImage{
			{Bytes: []byte{1, 2, 3}},
			{S3Object: &entity.S3Object{Bucket: str("b"), Name: str("audit-1.jpg")}},
		},
	}}
	svc := newTestService(client, &fakePresigner{})

	res, err := svc.GetSessionResults(context.Background(), "abc-123")
	require.NoError(t, err)
	assert.Equal(t, "https://b.s3.amazonaws.com/ref.jpg?versionId=v1", res.ReferenceImage.PresignedURL)
	assert.Empty(t, res.AuditImages[0].PresignedURL)
	assert.Equal(t, "https://b.s3.amazonaws.com/audit-1.jpg?versionId=", res.AuditImages[1].PresignedURL)
	assert.Equal(t, "ref.jpg", *res.ReferenceImage.S3Object.Name)
}

func TestGetSessionResultsPresignFailureKeepsLocator(t *testing.T) {
	client := &fakeClient{session: &entity.LivenessSession{
		SessionID: "abc-123",
		Status:    "FAILED",
		ReferenceImage: &entity.AuditImage{
			S3Object: &entity.S3Object{Bucket: str("b"), Name: str("ref.jpg")},
		},
	}}
	svc := newTestService(client, &fakePresigner{err: errors.New("no credentials")})

	res, err := svc.GetSessionResults(context.Background(), "abc-123")
	require.NoError(t, err)
	assert.Empty(t, res.ReferenceImage.PresignedURL)
	assert.Equal(t, "b", *res.ReferenceImage.S3Object.Bucket)
}

func TestCompareFaces(t *testing.T) {
	client := &fakeClient{cmp: &entity.FaceComparison{
		FaceMatches: []entity.FaceMatch{
			{Similarity: float(99.2), Face: entity.ComparedFace{Confidence: float(99.9)}},
		},
		SourceImageFace: &entity.SourceImageFace{Confidence: float(99.8)},
	}}
	svc := newTestService(client, nil)

	src := base64.StdEncoding.EncodeToString([]byte("source"))
	dst := base64.StdEncoding.EncodeToString([]byte("target"))

	res, err := svc.CompareFaces(context.Background(), src, dst, 90)
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalMatches)
	assert.Equal(t, 90.0, res.SimilarityThreshold)
	assert.NotNil(t, res.UnmatchedFaces)
	assert.Equal(t, 99.8, *res.SourceImageFace.Confidence)

	assert.Equal(t, []byte("source"), client.source)
	assert.Equal(t, []byte("target"), client.target)
	assert.Equal(t, 90.0, client.threshold)
}

func TestCompareFacesRejectsBeforeCall(t *testing.T) {
	valid := base64.StdEncoding.EncodeToString([]byte("img"))

	tests := []struct {
		name      string
		source    string
		target    string
		threshold float64
		want      error
	}{
		{"missing source", "", valid, 80, liveness.ErrImagesRequired},
		{"missing target", valid, "", 80, liveness.ErrImagesRequired},
		{"threshold too high", valid, valid, 150, liveness.ErrInvalidThreshold},
		{"threshold negative", valid, valid, -1, liveness.ErrInvalidThreshold},
		{"bad source encoding", "%%%", valid, 80, liveness.ErrInvalidImageEncoding},
		{"bad target encoding", valid, "%%%", 80, liveness.ErrInvalidImageEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{}
			svc := newTestService(client, nil)

			_, err := svc.CompareFaces(context.Background(), tt.source, tt.target, tt.threshold)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 0, client.compareCalls)
		})
	}
}
