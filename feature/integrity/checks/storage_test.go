package checks

import (
	"context"
	"errors"
	"testing"

	"catalog-sync/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCheckStorage(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "catalog-sync").Return(false, nil)

	report, err := CheckStorage(context.Background(), mockClient, "catalog-sync")

	require.NoError(t, err)
	assert.False(t, report.Exists)
}

func TestCheckStorage_Error(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "catalog-sync").Return(false, errors.New("down"))

	_, err := CheckStorage(context.Background(), mockClient, "catalog-sync")
	assert.Error(t, err)
}

func TestFixStorage(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "catalog-sync").Return(false, nil)
	mockClient.On("MakeBucket", mock.Anything, "catalog-sync", mock.Anything).Return(nil)

	require.NoError(t, FixStorage(context.Background(), mockClient, "catalog-sync", "", zap.NewNop()))
	mockClient.AssertExpectations(t)
}
