package accesscode

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// mockLoader is a mock implementation of the Loader interface for testing.
type mockLoader struct {
	loadFunc func(ctx context.Context, filePath string) (CodeSet, error)
}

func (m *mockLoader) Load(ctx context.Context, filePath string) (CodeSet, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx, filePath)
	}
	return nil, errors.New("not implemented")
}

func TestFallbackLoader_S3Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	// Create mock S3 loader that succeeds
	s3Set := NewMapCodeSet(10)
	s3Set.(*mapCodeSet).Add("S3CODE123")
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) (CodeSet, error) {
			assert.Equal(t, "access-codes/test.gz", filePath, "S3 key should have prefix")
			return s3Set, nil
		},
	}

	// Create mock file loader (should not be called)
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) (CodeSet, error) {
			t.Error("file loader should not be called when S3 succeeds")
			return nil, errors.New("should not be called")
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "access-codes/", true, logger)

	set, err := fallback.Load(ctx, "test.gz")
	assert.NoError(t, err)
	assert.NotNil(t, set)
	assert.True(t, set.Contains("S3CODE123"))
}

func TestFallbackLoader_S3FailsFallsBackToLocal(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	// Create mock S3 loader that fails
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) (CodeSet, error) {
			return nil, errors.New("S3 connection failed")
		},
	}

	// Create mock file loader that succeeds
	localSet := NewMapCodeSet(10)
	localSet.(*mapCodeSet).Add("LOCALCODE1")
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) (CodeSet, error) {
			assert.Equal(t, "test.gz", filePath, "local file path should not have prefix")
			return localSet, nil
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "access-codes/", true, logger)

	set, err := fallback.Load(ctx, "test.gz")
	assert.NoError(t, err)
	assert.NotNil(t, set)
	assert.True(t, set.Contains("LOCALCODE1"))
}

func TestFallbackLoader_S3Disabled(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	// Create mock S3 loader (should not be called)
	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) (CodeSet, error) {
			t.Error("S3 loader should not be called when S3 is disabled")
			return nil, errors.New("should not be called")
		},
	}

	// Create mock file loader that succeeds
	localSet := NewMapCodeSet(10)
	localSet.(*mapCodeSet).Add("LOCALCODE2")
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) (CodeSet, error) {
			assert.Equal(t, "test.gz", filePath)
			return localSet, nil
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "access-codes/", false, logger)

	set, err := fallback.Load(ctx, "test.gz")
	assert.NoError(t, err)
	assert.NotNil(t, set)
	assert.True(t, set.Contains("LOCALCODE2"))
}

func TestFallbackLoader_S3LoaderNil(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	localSet := NewMapCodeSet(10)
	localSet.(*mapCodeSet).Add("LOCALCODE3")
	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) (CodeSet, error) {
			return localSet, nil
		},
	}

	// Nil S3 loader should fall through to local even when S3 is enabled
	fallback := NewFallbackLoader(nil, fileLoader, "access-codes/", true, logger)

	set, err := fallback.Load(ctx, "test.gz")
	assert.NoError(t, err)
	assert.NotNil(t, set)
	assert.True(t, set.Contains("LOCALCODE3"))
}

func TestFallbackLoader_BothFail(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	s3Loader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) (CodeSet, error) {
			return nil, errors.New("S3 error")
		},
	}

	fileLoader := &mockLoader{
		loadFunc: func(ctx context.Context, filePath string) (CodeSet, error) {
			return nil, errors.New("file not found")
		},
	}

	fallback := NewFallbackLoader(s3Loader, fileLoader, "access-codes/", true, logger)

	set, err := fallback.Load(ctx, "test.gz")
	assert.Error(t, err)
	assert.Nil(t, set)
	assert.Contains(t, err.Error(), "file not found")
}

func TestFallbackLoader_PrefixHandling(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	tests := []struct {
		name       string
		s3Prefix   string
		filePath   string
		expectedS3 string
	}{
		{
			name:       "prefix with trailing slash",
			s3Prefix:   "access-codes/",
			filePath:   "file.gz",
			expectedS3: "access-codes/file.gz",
		},
		{
			name:       "prefix without trailing slash",
			s3Prefix:   "access-codes",
			filePath:   "file.gz",
			expectedS3: "access-codesfile.gz",
		},
		{
			name:       "empty prefix",
			s3Prefix:   "",
			filePath:   "file.gz",
			expectedS3: "file.gz",
		},
		{
			name:       "nested prefix",
			s3Prefix:   "data/registries/prod/",
			filePath:   "file.gz",
			expectedS3: "data/registries/prod/file.gz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s3Set := NewMapCodeSet(10)
			s3Loader := &mockLoader{
				loadFunc: func(ctx context.Context, filePath string) (CodeSet, error) {
					assert.Equal(t, tt.expectedS3, filePath)
					return s3Set, nil
				},
			}

			fileLoader := &mockLoader{} // Won't be called

			fallback := NewFallbackLoader(s3Loader, fileLoader, tt.s3Prefix, true, logger)
			_, err := fallback.Load(ctx, tt.filePath)
			assert.NoError(t, err)
		})
	}
}
