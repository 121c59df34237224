package helper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareModel(t *testing.T) {
	t.Run("Existing model path is returned without download", func(t *testing.T) {
		modelPath := filepath.Join("./models", "test_mock-model")
		err := os.MkdirAll(modelPath, 0750)
		require.NoError(t, err, "expected directory creation to succeed")
		defer os.RemoveAll(modelPath)

		path, err := PrepareModel("test/mock-model", "onnx/model.onnx")
		assert.NoError(t, err, "expected no error for existing model")
		assert.Equal(t, modelPath, path, "expected path of existing model")
	})

	t.Run("Model names with slashes are sanitized", func(t *testing.T) {
		modelPath := filepath.Join("./models", "organization_model-name")
		err := os.MkdirAll(modelPath, 0750)
		require.NoError(t, err, "expected directory creation to succeed")
		defer os.RemoveAll(modelPath)

		path, err := PrepareModel("organization/model-name", "")
		assert.NoError(t, err, "expected no error for existing model")
		assert.Equal(t, modelPath, path, "expected sanitized model path")
	})

	t.Run("Model names without slashes are used directly", func(t *testing.T) {
		modelPath := filepath.Join("./models", "simple-model")
		err := os.MkdirAll(modelPath, 0750)
		require.NoError(t, err, "expected directory creation to succeed")
		defer os.RemoveAll(modelPath)

		path, err := PrepareModel("simple-model", "")
		assert.NoError(t, err, "expected no error for existing model")
		assert.Equal(t, modelPath, path, "expected unmodified model path")
	})
}
