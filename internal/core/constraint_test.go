package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"reqctl/internal/types"
)

func TestParseDeclaration(t *testing.T) {
	tests := []struct {
		raw     string
		op      types.ConstraintOp
		name    string
		version string
	}{
		{"matplotlib=1.5.1", types.ConstraintOpEq, "matplotlib", "1.5.1"},
		{"matplotlib==1.5.1", types.ConstraintOpEq2, "matplotlib", "1.5.1"},
		{"scikit-learn>=0.18.0", types.ConstraintOpGte, "scikit-learn", "0.18.0"},
		{"h5py<=2.7.0", types.ConstraintOpLte, "h5py", "2.7.0"},
		{"nose>1.3", types.ConstraintOpGt, "nose", "1.3"},
		{"coverage<5", types.ConstraintOpLt, "coverage", "5"},
		{"pandas!=0.19.0", types.ConstraintOpNe, "pandas", "0.19.0"},
		{"dill~=0.2.5", types.ConstraintOpCompat, "dill", "0.2.5"},
		{"h5py", types.ConstraintOpNone, "h5py", ""},
	}

	for _, tt := range tests {
		decl, err := ParseDeclaration(tt.raw, "test")
		require.NoError(t, err)
		if diff := cmp.Diff(tt.op, decl.Op); diff != "" {
			t.Fatalf("unexpected op (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(tt.name, decl.Name); diff != "" {
			t.Fatalf("unexpected name (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(tt.version, decl.Version); diff != "" {
			t.Fatalf("unexpected version (-want +got):\n%s", diff)
		}
	}
}

func TestParseDeclarationNormalizesName(t *testing.T) {
	decl, err := ParseDeclaration("Scikit_Learn>=0.18.0", "test")
	require.NoError(t, err)
	require.Equal(t, "scikit-learn", decl.Name)
	require.Equal(t, "Scikit_Learn", decl.RawName)
}

func TestParseDeclarationErrors(t *testing.T) {
	tests := []string{
		"",
		"   ",
		"==1.5.1",
		"matplotlib==",
		">=0.18.0",
	}
	for _, raw := range tests {
		_, err := ParseDeclaration(raw, "test")
		require.Error(t, err, "expected error for %q", raw)
	}
}
