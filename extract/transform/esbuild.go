// Package transform provides the esbuild-backed source transformer.
package transform

import (
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/LegacyCodeHQ/minipack/extract"
)

// ESBuild lowers ES modules to CommonJS so they run inside the bundle's
// function(require, module, exports) wrapper.
type ESBuild struct {
	Target api.Target
}

// NewESBuild returns a transformer targeting ES2015, which every host the
// bundle is run on understands.
func NewESBuild() *ESBuild {
	return &ESBuild{Target: api.ES2015}
}

// Transform implements extract.Transformer.
func (t *ESBuild) Transform(filePath string, sourceCode []byte) (string, error) {
	result := api.Transform(string(sourceCode), api.TransformOptions{
		Loader:     loaderFor(filePath),
		Format:     api.FormatCommonJS,
		Target:     t.Target,
		Sourcefile: filePath,
		LogLevel:   api.LogLevelSilent,
	})

	if len(result.Errors) > 0 {
		return "", transformError(filePath, result.Errors)
	}
	return string(result.Code), nil
}

func loaderFor(filePath string) api.Loader {
	if strings.EqualFold(filepath.Ext(filePath), ".jsx") {
		return api.LoaderJSX
	}
	return api.LoaderJS
}

func transformError(filePath string, messages []api.Message) *extract.TransformError {
	first := messages[0]
	err := &extract.TransformError{Path: filePath, Message: first.Text}
	if first.Location != nil {
		err.Line = first.Location.Line
		// esbuild columns are 0-based
		err.Column = first.Location.Column + 1
	}
	if len(messages) > 1 {
		texts := make([]string, 0, len(messages))
		for _, msg := range messages {
			texts = append(texts, msg.Text)
		}
		err.Message = strings.Join(texts, "; ")
	}
	return err
}
