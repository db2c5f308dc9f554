package export

import (
	"fmt"
	"io"
	"os"

	"github.com/andybalholm/brotli"
)

// CompressFile brotli-compresses localPath next to itself and returns the
// path of the .br file. The partner drop accepts compressed feeds only.
func CompressFile(localPath string) (string, error) {
	src, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("export: open %s: %w", localPath, err)
	}
	defer src.Close()

	outPath := localPath + ".br"
	dst, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("export: create %s: %w", outPath, err)
	}
	defer dst.Close()

	bw := brotli.NewWriterLevel(dst, brotli.BestCompression)
	if _, err := io.Copy(bw, src); err != nil {
		return "", fmt.Errorf("export: compress %s: %w", localPath, err)
	}
	if err := bw.Close(); err != nil {
		return "", fmt.Errorf("export: flush %s: %w", outPath, err)
	}
	return outPath, nil
}
