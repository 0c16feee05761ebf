package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/digipath/dataset"
)

func TestValidate(t *testing.T) {
	ds, err := dataset.Load(catalogDir)
	require.NoError(t, err)

	rep := dataset.Validate(ds)
	assert.False(t, rep.Clean())

	require.Len(t, rep.Dangling, 1)
	assert.Equal(t, "46", rep.Dangling[0].From)
	assert.Equal(t, "9999", rep.Dangling[0].To)

	assert.Equal(t, []string{"120"}, rep.UnlearnableMoves)
	assert.Equal(t, []string{"400"}, rep.Isolated)
	assert.Equal(t, []string{"46→239: bond"}, rep.UnknownRequirementKeys)
}

func TestValidate_Nil(t *testing.T) {
	assert.True(t, dataset.Validate(nil).Clean())
}
