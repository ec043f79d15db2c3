package workload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"cfsched/internal/sched"
)

func writeWorkload(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workload.yml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadValidWorkload(t *testing.T) {
	path := writeWorkload(t, `
tasks:
  - arrival_ms: 0
    burst_ms: 60
    nice: 0
  - arrival_ms: 10
    burst_ms: 20
    nice: -5
`)

	b, err := Load(path)
	require.NoError(t, err)
	require.Len(t, b.Tasks, 2)
	require.Equal(t, Spec{ArrivalMS: 10, BurstMS: 20, Nice: -5}, b.Tasks[1])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/does/not/exist.yml")
	require.Error(t, err)
}

func TestValidateEmptyBatch(t *testing.T) {
	b := &Batch{}
	require.ErrorIs(t, b.Validate(), ErrEmptyBatch)
}

func TestValidateCapacity(t *testing.T) {
	b := &Batch{}
	for i := 0; i <= sched.MaxTasks; i++ {
		b.Tasks = append(b.Tasks, Spec{BurstMS: 10})
	}
	require.ErrorIs(t, b.Validate(), ErrCapacityExceeded)
}

func TestValidateRanges(t *testing.T) {
	cases := []struct {
		name string
		spec Spec
		want string
	}{
		{"negative arrival", Spec{ArrivalMS: -1, BurstMS: 10}, "arrival_ms"},
		{"zero burst", Spec{BurstMS: 0}, "burst_ms"},
		{"nice too low", Spec{BurstMS: 10, Nice: -21}, "nice"},
		{"nice too high", Spec{BurstMS: 10, Nice: 20}, "nice"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := &Batch{Tasks: []Spec{tc.spec}}
			err := b.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestDefaultBatchIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestDefaultBatchMatchesExampleFile(t *testing.T) {
	b, err := Load(filepath.Join("..", "..", "workload.yml"))
	require.NoError(t, err)
	require.Equal(t, Default(), b, "workload.yml must stay in sync with the built-in default")
}
