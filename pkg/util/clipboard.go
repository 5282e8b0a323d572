package util

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"
)

var (
	clipboardUnsupported = func() bool { return clipboard.Unsupported }
	writeClipboard       = clipboard.WriteAll

	fallbackOutput io.Writer = os.Stderr
)

// CopyToClipboard copies text using the system clipboard and falls back to an
// OSC 52 terminal sequence when no clipboard tool is available. Failures are
// logged and never returned.
func CopyToClipboard(ctx context.Context, text string) {
	logger := zerolog.Ctx(ctx)

	if !clipboardUnsupported() {
		err := writeClipboard(text)
		if err == nil {
			logger.Debug().Msg("text copied to clipboard")
			return
		}
		logger.Warn().Err(err).Msg("failed to copy text using system clipboard")
	}

	fallbackCopy(logger, text)
}

func fallbackCopy(logger *zerolog.Logger, text string) {
	seq := fmt.Sprintf("\x1b]52;c;%s\a", base64.StdEncoding.EncodeToString([]byte(text)))
	if _, err := io.WriteString(fallbackOutput, seq); err != nil {
		logger.Error().Err(err).Msg("fallback copy method failed")
		return
	}
	logger.Debug().Msg("text copied to clipboard using terminal escape sequence")
}
