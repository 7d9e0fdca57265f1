package corpus

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
)

// DefaultMetadataURL is the Stanford SNAP Amazon product metadata dump.
const DefaultMetadataURL = "https://snap.stanford.edu/data/amazon/productGraph/metadata.json.gz"

// Download fetches the corpus archive to path unless it already exists.
func Download(ctx context.Context, url, path string) error {
	if _, err := os.Stat(path); err == nil {
		slog.Info("Corpus file already present, skipping download", "path", path)
		return nil
	}

	slog.Info("Downloading corpus", "url", url, "path", path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create download request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("download corpus: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download corpus: unexpected status %d", resp.StatusCode)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create corpus file: %w", err)
	}
	defer out.Close()

	written, err := io.Copy(out, resp.Body)
	if err != nil {
		return fmt.Errorf("write corpus file: %w", err)
	}

	slog.Info("Corpus downloaded", "path", path, "bytes", written)
	return nil
}
