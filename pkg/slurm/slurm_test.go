package slurm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unet-submit/pkg/batch"
	"unet-submit/pkg/utils"
)

func TestParseJobId(t *testing.T) {
	id, err := ParseJobId("Submitted batch job 4567")
	require.NoError(t, err)
	assert.Equal(t, uint32(4567), id)

	id, err = ParseJobId("sbatch: Submitted batch job 12345 on cluster gpu")
	require.NoError(t, err)
	assert.Equal(t, uint32(12345), id)

	_, err = ParseJobId("sbatch: error: invalid partition specified")
	assert.Error(t, err)

	_, err = ParseJobId("")
	assert.Error(t, err)
}

func TestNormalizeState(t *testing.T) {
	assert.Equal(t, "RUNNING", normalizeState(" RUNNING \n"))
	assert.Equal(t, "CANCELLED", normalizeState("CANCELLED by 1000"))
	assert.Equal(t, "COMPLETED", normalizeState("COMPLETED+"))
	assert.Equal(t, "PENDING", normalizeState("PENDING\nPENDING"))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal("COMPLETED"))
	assert.True(t, IsTerminal("FAILED"))
	assert.True(t, IsTerminal("CANCELLED"))
	assert.False(t, IsTerminal("PENDING"))
	assert.False(t, IsTerminal("RUNNING"))
}

// Submit against a stub sbatch placed on PATH: the script must reach the
// scheduler binary intact and the reported job id must be parsed back.
func TestSubmitWithStubScheduler(t *testing.T) {
	binDir := t.TempDir()
	captured := filepath.Join(binDir, "captured.sh")
	stub := "#!/bin/sh\ncat \"$1\" > " + captured + "\necho \"Submitted batch job 1234\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "sbatch"), []byte(stub), 0755))
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	client := NewClient("sbatch")
	require.True(t, client.IsAvailable())

	script := batch.Render(batch.FromConfig(utils.DefaultConfig()))
	jobId, err := client.Submit(script)
	require.NoError(t, err)
	assert.Equal(t, uint32(1234), jobId)

	data, err := os.ReadFile(captured)
	require.NoError(t, err)
	assert.Equal(t, script, string(data))
}

func TestSubmitFailure(t *testing.T) {
	binDir := t.TempDir()
	stub := "#!/bin/sh\necho \"sbatch: error: Batch job submission failed\" >&2\nexit 1\n"
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "sbatch"), []byte(stub), 0755))
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	_, err := NewClient("sbatch").Submit("#!/bin/bash\n")
	assert.Error(t, err)
}

func TestIsAvailable(t *testing.T) {
	assert.False(t, NewClient("definitely-not-a-real-scheduler").IsAvailable())
}
