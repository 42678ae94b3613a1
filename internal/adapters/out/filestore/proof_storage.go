// Package filestore keeps uploaded proofs of delivery in a local directory.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/pkg/errs"

	"github.com/google/uuid"
)

// DefaultMaxProofBytes bounds the size of a single proof file.
const DefaultMaxProofBytes int64 = 10 << 20

var allowedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".heic": true, ".pdf": true,
}

// ProofStorage writes each file under <root>/<order id>/ with a generated
// name and returns the path relative to root as its reference.
type ProofStorage struct {
	root     string
	maxBytes int64
}

func NewProofStorage(root string, maxBytes int64) (*ProofStorage, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errs.NewValueIsRequiredError("root")
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxProofBytes
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create proof dir: %w", err)
	}
	return &ProofStorage{root: root, maxBytes: maxBytes}, nil
}

func (s *ProofStorage) Save(ctx context.Context, orderID kernel.UUID, filename string, content io.Reader) (string, error) {
	if err := orderID.Validate(); err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return "", errs.NewValueIsInvalidErrorWithCause("proof_of_delivery",
			fmt.Errorf("file type %q is not accepted", ext))
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Join(s.root, orderID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create order proof dir: %w", err)
	}

	name := uuid.NewString() + ext
	target := filepath.Join(dir, name)
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create proof file: %w", err)
	}

	written, err := io.Copy(f, io.LimitReader(content, s.maxBytes+1))
	closeErr := f.Close()
	if err == nil && written > s.maxBytes {
		err = errs.NewValueIsOutOfRangeError("proof_of_delivery", written, 1, s.maxBytes)
	}
	if err == nil && written == 0 {
		err = errs.NewValueIsRequiredError("proof_of_delivery")
	}
	if err = errors.Join(err, closeErr); err != nil {
		_ = os.Remove(target)
		return "", err
	}

	return path.Join(orderID.String(), name), nil
}

// Open returns the stored file behind a reference returned by Save.
func (s *ProofStorage) Open(reference string) (*os.File, error) {
	clean := path.Clean("/" + reference)
	if clean == "/" {
		return nil, errs.NewValueIsRequiredError("reference")
	}
	f, err := os.Open(filepath.Join(s.root, filepath.FromSlash(clean[1:])))
	if errors.Is(err, os.ErrNotExist) {
		return nil, errs.NewObjectNotFoundError("proof", reference)
	}
	return f, err
}
