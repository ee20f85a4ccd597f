package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// progressOut receives upload progress bars; tests silence it.
var progressOut io.Writer = os.Stderr

// uploadProgress returns a byte-counting bar for one upload of size bytes.
func uploadProgress(size int64) io.Writer {
	return progressbar.NewOptions64(size,
		progressbar.OptionSetDescription("uploading"),
		progressbar.OptionSetWriter(progressOut),
		progressbar.OptionShowBytes(true),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionFullWidth(),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(progressOut)
		}),
	)
}
