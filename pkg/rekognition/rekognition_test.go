package rekognition

import (
	"LivenessGateway/internal/entity"
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/rekognition"
	"github.com/aws/aws-sdk-go/service/rekognition/rekognitioniface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	rekognitioniface.RekognitionAPI

	createInput  *rekognition.CreateFaceLivenessSessionInput
	createOutput *rekognition.CreateFaceLivenessSessionOutput
	resultsOut   *rekognition.GetFaceLivenessSessionResultsOutput
	compareInput *rekognition.CompareFacesInput
	compareOut   *rekognition.CompareFacesOutput
	err          error
}

func (f *fakeAPI) CreateFaceLivenessSessionWithContext(_ aws.Context, in *rekognition.CreateFaceLivenessSessionInput, _ ...request.Option) (*rekognition.CreateFaceLivenessSessionOutput, error) {
	f.createInput = in
	return f.createOutput, f.err
}

func (f *fakeAPI) GetFaceLivenessSessionResultsWithContext(_ aws.Context, _ *rekognition.GetFaceLivenessSessionResultsInput, _ ...request.Option) (*rekognition.GetFaceLivenessSessionResultsOutput, error) {
	return f.resultsOut, f.err
}

func (f *fakeAPI) CompareFacesWithContext(_ aws.Context, in *rekognition.CompareFacesInput, _ ...request.Option) (*rekognition.CompareFacesOutput, error) {
	f.compareInput = in
	return f.compareOut, f.err
}

func TestCreateLivenessSessionSettings(t *testing.T) {
	api := &fakeAPI{createOutput: &rekognition.CreateFaceLivenessSessionOutput{SessionId: aws.String("abc-123")}}
	client := NewWithAPI(api)

	id, err := client.CreateLivenessSession(context.Background(), entity.LivenessSessionSettings{
		ClientRequestToken: "token-1",
		AuditImagesLimit:   2,
		OutputBucket:       "liveness-bucket",
		OutputKeyPrefix:    "sessions/",
	})
	require.NoError(t, err)
	assert.Equal(t, "abc-123", id)

	require.NotNil(t, api.createInput.Settings)
	assert.Equal(t, "token-1", aws.StringValue(api.createInput.ClientRequestToken))
	assert.Equal(t, int64(2), aws.Int64Value(api.createInput.Settings.AuditImagesLimit))
	assert.Equal(t, "liveness-bucket", aws.StringValue(api.createInput.Settings.OutputConfig.S3Bucket))
	assert.Equal(t, "sessions/", aws.StringValue(api.createInput.Settings.OutputConfig.S3KeyPrefix))
}

func TestCreateLivenessSessionWithoutSettings(t *testing.T) {
	api := &fakeAPI{createOutput: &rekognition.CreateFaceLivenessSessionOutput{SessionId: aws.String("abc-123")}}

	_, err := NewWithAPI(api).CreateLivenessSession(context.Background(), entity.LivenessSessionSettings{})
	require.NoError(t, err)
	assert.Nil(t, api.createInput.Settings)
	assert.Nil(t, api.createInput.ClientRequestToken)
}

func TestCreateLivenessSessionEmptyID(t *testing.T) {
	api := &fakeAPI{createOutput: &rekognition.CreateFaceLivenessSessionOutput{}}

	_, err := NewWithAPI(api).CreateLivenessSession(context.Background(), entity.LivenessSessionSettings{})
	assert.Error(t, err)
}

func TestGetLivenessSessionResultsMapping(t *testing.T) {
	api := &fakeAPI{resultsOut: &rekognition.GetFaceLivenessSessionResultsOutput{
		SessionId:  aws.String("abc-123"),
		Status:     aws.String("SUCCEEDED"),
		Confidence: aws.Float64(91.4),
		ReferenceImage: &rekognition.AuditImage{
			Bytes:       []byte{0xff, 0xd8},
			BoundingBox: &rekognition.BoundingBox{Width: aws.Float64(0.5)},
			S3Object:    &rekognition.S3Object{Bucket: aws.String("b"), Name: aws.String("ref.jpg")},
		},
		AuditImages: []*rekognition.AuditImage{
			{Bytes: []byte{1}},
			nil,
			{Bytes: []byte{2}},
		},
	}}

	res, err := NewWithAPI(api).GetLivenessSessionResults(context.Background(), "abc-123")
	require.NoError(t, err)

	assert.Equal(t, "abc-123", res.SessionID)
	assert.Equal(t, "SUCCEEDED", res.Status)
	assert.Equal(t, 91.4, *res.Confidence)
	require.NotNil(t, res.ReferenceImage)
	assert.Equal(t, []byte{0xff, 0xd8}, res.ReferenceImage.Bytes)
	assert.Equal(t, 0.5, *res.ReferenceImage.BoundingBox.Width)
	assert.Equal(t, "ref.jpg", *res.ReferenceImage.S3Object.Name)
	assert.Len(t, res.AuditImages, 2)
	assert.Nil(t, res.Challenge)
}

func TestGetLivenessSessionResultsNotFound(t *testing.T) {
	api := &fakeAPI{err: awserr.New(rekognition.ErrCodeSessionNotFoundException, "no such session", nil)}

	_, err := NewWithAPI(api).GetLivenessSessionResults(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrSessionNotFound))
}

func TestCompareFacesMapping(t *testing.T) {
	api := &fakeAPI{compareOut: &rekognition.CompareFacesOutput{
		FaceMatches: []*rekognition.CompareFacesMatch{{
			Similarity: aws.Float64(99.1),
			Face: &rekognition.ComparedFace{
				Confidence: aws.Float64(99.9),
				Landmarks:  []*rekognition.Landmark{{Type: aws.String("eyeLeft"), X: aws.Float64(0.1)}},
				Pose:       &rekognition.Pose{Yaw: aws.Float64(3)},
			},
		}},
		UnmatchedFaces:  []*rekognition.ComparedFace{{Confidence: aws.Float64(97)}},
		SourceImageFace: &rekognition.ComparedSourceImageFace{Confidence: aws.Float64(99.5)},
	}}

	res, err := NewWithAPI(api).CompareFaces(context.Background(), []byte("src"), []byte("dst"), 75)
	require.NoError(t, err)

	assert.Equal(t, 75.0, aws.Float64Value(api.compareInput.SimilarityThreshold))
	assert.Equal(t, []byte("src"), api.compareInput.SourceImage.Bytes)
	assert.Equal(t, []byte("dst"), api.compareInput.TargetImage.Bytes)

	require.Len(t, res.FaceMatches, 1)
	assert.Equal(t, 99.1, *res.FaceMatches[0].Similarity)
	assert.Equal(t, 99.9, *res.FaceMatches[0].Face.Confidence)
	assert.Equal(t, "eyeLeft", *res.FaceMatches[0].Face.Landmarks[0].Type)
	assert.Len(t, res.UnmatchedFaces, 1)
	assert.Equal(t, 99.5, *res.SourceImageFace.Confidence)
}

func TestWrapErrorPrefersContextError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := wrapError(ctx, "compare faces", awserr.New(request.CanceledErrorCode, "canceled", nil))
	assert.True(t, errors.Is(err, context.Canceled))
}
