// Package validate checks the algebraic identities of the complex: each
// differential squares to zero and distinct differentials anti-commute.
// Violations are findings for the run report, not failures: a nonzero
// composite almost always means a sign convention bug upstream.
package validate

import (
	"context"
	"errors"

	"go.trai.ch/zerr"

	"github.com/skeinlabs/gcx/internal/core/domain"
	"github.com/skeinlabs/gcx/internal/core/ports"
)

// Validator checks identities on matrices already in the store.
type Validator struct {
	store ports.ArtifactStore
}

// NewValidator creates a validator.
func NewValidator(store ports.ArtifactStore) *Validator {
	return &Validator{store: store}
}

// Check runs every identity rooted at one grading and kind: the square-zero
// composite of the kind's consecutive matrices, and the anti-commutation
// quadruple with the delete differential when kind is contract. Checks whose
// matrices are not all in the store are skipped; they belong to another run.
func (v *Validator) Check(ctx context.Context, key domain.GradingKey, kind domain.OperatorKind) ([]domain.ValidationFinding, error) {
	var findings []domain.ValidationFinding

	finding, ok, err := v.squareZero(ctx, key, kind)
	if err != nil {
		return nil, err
	}
	if ok {
		findings = append(findings, finding)
	}

	if kind == domain.KindContract {
		finding, ok, err := v.antiCommute(ctx, key)
		if err != nil {
			return nil, err
		}
		if ok {
			findings = append(findings, finding)
		}
	}
	return findings, nil
}

// squareZero checks that applying the differential twice from key is zero.
func (v *Validator) squareZero(_ context.Context, key domain.GradingKey, kind domain.OperatorKind) (domain.ValidationFinding, bool, error) {
	first := domain.OperatorKey{Kind: kind, Source: key}
	second := domain.OperatorKey{Kind: kind, Source: first.Target()}

	m1, ok, err := v.matrix(first)
	if err != nil || !ok {
		return domain.ValidationFinding{}, false, err
	}
	m2, ok, err := v.matrix(second)
	if err != nil || !ok {
		return domain.ValidationFinding{}, false, err
	}

	composite, err := m2.Mul(m1)
	if err != nil {
		return domain.ValidationFinding{}, false, zerr.Wrap(err, domain.ErrValidation.Error())
	}
	if composite.IsZero() {
		return domain.ValidationFinding{}, false, nil
	}
	return domain.ValidationFinding{
		Check:          "square-zero",
		Left:           first,
		Right:          second,
		NonzeroEntries: len(composite.Entries),
	}, true, nil
}

// antiCommute checks d_delete after d_contract plus d_contract after
// d_delete is zero on the quadruple of gradings around key.
func (v *Validator) antiCommute(_ context.Context, key domain.GradingKey) (domain.ValidationFinding, bool, error) {
	contractFirst := domain.OperatorKey{Kind: domain.KindContract, Source: key}
	deleteSecond := domain.OperatorKey{Kind: domain.KindDelete, Source: contractFirst.Target()}
	deleteFirst := domain.OperatorKey{Kind: domain.KindDelete, Source: key}
	contractSecond := domain.OperatorKey{Kind: domain.KindContract, Source: deleteFirst.Target()}

	c1, ok, err := v.matrix(contractFirst)
	if err != nil || !ok {
		return domain.ValidationFinding{}, false, err
	}
	d2, ok, err := v.matrix(deleteSecond)
	if err != nil || !ok {
		return domain.ValidationFinding{}, false, err
	}
	d1, ok, err := v.matrix(deleteFirst)
	if err != nil || !ok {
		return domain.ValidationFinding{}, false, err
	}
	c2, ok, err := v.matrix(contractSecond)
	if err != nil || !ok {
		return domain.ValidationFinding{}, false, err
	}

	left, err := d2.Mul(c1)
	if err != nil {
		return domain.ValidationFinding{}, false, zerr.Wrap(err, domain.ErrValidation.Error())
	}
	right, err := c2.Mul(d1)
	if err != nil {
		return domain.ValidationFinding{}, false, zerr.Wrap(err, domain.ErrValidation.Error())
	}
	sum, err := left.Add(right)
	if err != nil {
		return domain.ValidationFinding{}, false, zerr.Wrap(err, domain.ErrValidation.Error())
	}
	if sum.IsZero() {
		return domain.ValidationFinding{}, false, nil
	}
	return domain.ValidationFinding{
		Check:          "anti-commute",
		Left:           contractFirst,
		Right:          deleteFirst,
		NonzeroEntries: len(sum.Entries),
	}, true, nil
}

// matrix fetches one operator matrix; a miss means the check cannot run.
func (v *Validator) matrix(op domain.OperatorKey) (domain.SparseMatrix, bool, error) {
	m, err := v.store.GetMatrix(op)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) || errors.Is(err, domain.ErrStoreCorrupt) {
			return domain.SparseMatrix{}, false, nil
		}
		return domain.SparseMatrix{}, false, zerr.With(err, "operator", op.String())
	}
	return m, true, nil
}
