// Package store implements the artifact store on the file system: one
// directory per family-and-convention, basis files as graph6 lists, operator
// matrices in SMS coordinate format and ranks as tagged integers. Writes are
// atomic (tmp file plus rename) so a crashed run never leaves a torn
// artifact behind.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"

	"github.com/skeinlabs/gcx/internal/core/domain"
	"github.com/skeinlabs/gcx/internal/core/ports"
)

var _ ports.ArtifactStore = (*Store)(nil)

// Store implements ports.ArtifactStore using a file-per-artifact strategy.
type Store struct {
	root string
}

// NewStore creates a store rooted at the given directory.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, domain.DirPerm); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}
	return &Store{root: root}, nil
}

// Root returns the store's root directory.
func (s *Store) Root() string { return s.root }

// Clean removes every stored artifact.
func (s *Store) Clean() error {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(s.root, e.Name())); err != nil {
			return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
		}
	}
	return nil
}

// GetBasis retrieves the generator basis for a grading key.
func (s *Store) GetBasis(key domain.GradingKey) (domain.Basis, error) {
	data, err := s.read(s.basisPath(key))
	if err != nil {
		return domain.Basis{}, err
	}
	basis, err := decodeBasis(key, data)
	if err != nil {
		return domain.Basis{}, zerr.With(err, "path", s.basisPath(key))
	}
	return basis, nil
}

// PutBasis stores a basis.
func (s *Store) PutBasis(basis domain.Basis) error {
	return s.write(s.basisPath(basis.Key), encodeBasis(basis))
}

// GetMatrix retrieves the differential matrix for an operator key.
func (s *Store) GetMatrix(op domain.OperatorKey) (domain.SparseMatrix, error) {
	data, err := s.read(s.MatrixPath(op))
	if err != nil {
		return domain.SparseMatrix{}, err
	}
	m, err := decodeMatrix(data)
	if err != nil {
		return domain.SparseMatrix{}, zerr.With(err, "path", s.MatrixPath(op))
	}
	return m, nil
}

// PutMatrix stores a differential matrix.
func (s *Store) PutMatrix(op domain.OperatorKey, m domain.SparseMatrix) error {
	return s.write(s.MatrixPath(op), encodeMatrix(m))
}

// MatrixPath returns where the operator's matrix file lives.
func (s *Store) MatrixPath(op domain.OperatorKey) string {
	return filepath.Join(s.operatorDir(op), gradeName(op.Source)+domain.MatrixFileExt)
}

// GetRank retrieves the rank of an operator over a coefficient domain.
func (s *Store) GetRank(op domain.OperatorKey, dom domain.CoefficientDomain) (domain.Rank, error) {
	data, err := s.read(s.rankPath(op, dom))
	if err != nil {
		return domain.Rank{}, err
	}
	rank, err := decodeRank(dom, data)
	if err != nil {
		return domain.Rank{}, zerr.With(err, "path", s.rankPath(op, dom))
	}
	return rank, nil
}

// PutRank stores a rank.
func (s *Store) PutRank(op domain.OperatorKey, rank domain.Rank) error {
	return s.write(s.rankPath(op, rank.Domain), encodeRank(rank))
}

// GetCohomology retrieves the assembled dimension table.
func (s *Store) GetCohomology() ([]domain.CohomologyEntry, error) {
	path := filepath.Join(s.root, domain.CohomologyFileName)
	data, err := s.read(path)
	if err != nil {
		return nil, err
	}
	entries, err := decodeCohomology(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return entries, nil
}

// PutCohomology stores the assembled dimension table.
func (s *Store) PutCohomology(entries []domain.CohomologyEntry) error {
	return s.write(filepath.Join(s.root, domain.CohomologyFileName), encodeCohomology(entries))
}

func (s *Store) basisPath(key domain.GradingKey) string {
	return filepath.Join(s.root, key.SubType(), "basis", gradeName(key)+domain.BasisFileExt)
}

func (s *Store) operatorDir(op domain.OperatorKey) string {
	return filepath.Join(s.root, op.Source.SubType(), string(op.Kind))
}

func (s *Store) rankPath(op domain.OperatorKey, dom domain.CoefficientDomain) string {
	name := fmt.Sprintf("%s.%s%s", gradeName(op.Source), dom.String(), domain.RankFileExt)
	return filepath.Join(s.operatorDir(op), name)
}

func gradeName(key domain.GradingKey) string {
	if key.Family == domain.FamilyHairy {
		return fmt.Sprintf("v%d_l%d_h%d", key.Vertices, key.Loops, key.Hairs)
	}
	return fmt.Sprintf("v%d_l%d", key.Vertices, key.Loops)
}

func (s *Store) read(path string) ([]byte, error) {
	//nolint:gosec // Paths are derived from validated grading keys.
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrCacheMiss, "artifact not in store"), "path", path)
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	return data, nil
}

// write lands the artifact atomically: the bytes go to a temp file in the
// target directory and the rename makes them visible in one step.
func (s *Store) write(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	return nil
}
