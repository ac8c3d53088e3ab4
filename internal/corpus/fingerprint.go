// Package corpus loads the tabular knowledge source and fingerprints it
// for change detection.
package corpus

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/tabletalk-labs/tabletalk-cli/internal/core/domain"
	"github.com/tabletalk-labs/tabletalk-cli/internal/logger"
)

// Fingerprint computes the hex-encoded SHA-256 digest of the corpus
// file's raw bytes. Identical bytes always yield an identical digest.
func Fingerprint(corpusPath string) (string, error) {
	data, err := os.ReadFile(corpusPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", domain.ErrCorpusMissing, corpusPath)
		}
		return "", fmt.Errorf("read corpus: %w", err)
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// ReadSidecar returns the previously recorded fingerprint, or empty
// string if the sidecar does not exist or cannot be read. An unreadable
// sidecar is treated as "no previous fingerprint", never a hard failure.
func ReadSidecar(sidecarPath string) string {
	data, err := os.ReadFile(sidecarPath)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Sidecar unreadable, forcing rebuild: %v", err)
		}
		return ""
	}
	return strings.TrimSpace(string(data))
}

// WriteSidecar records the fingerprint. Must be called only after the
// index bundle has been persisted: the sidecar going in last means a
// crash mid-sequence reads as "stale, rebuild again".
func WriteSidecar(sidecarPath, fingerprint string) error {
	if err := os.WriteFile(sidecarPath, []byte(fingerprint+"\n"), 0600); err != nil {
		return fmt.Errorf("write sidecar: %w", err)
	}
	return nil
}

// ShouldReindex reports whether the corpus changed since the sidecar was
// last written, along with the freshly computed fingerprint. Detection
// is pure: the caller writes the sidecar after a successful rebuild.
// A missing corpus file is fatal.
func ShouldReindex(corpusPath, sidecarPath string) (bool, string, error) {
	current, err := Fingerprint(corpusPath)
	if err != nil {
		return false, "", err
	}

	previous := ReadSidecar(sidecarPath)
	if previous == "" {
		logger.Debug("No previous fingerprint, reindex required")
		return true, current, nil
	}

	changed := previous != current
	if changed {
		logger.Debug("Corpus fingerprint changed: %s -> %s", previous, current)
	} else {
		logger.Debug("Corpus unchanged (fingerprint %s)", current)
	}
	return changed, current, nil
}
