package tablegateway

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDefinition() TableDefinition {
	return TableDefinition{
		Table:             "posts",
		ModifiableColumns: []string{"title", "body"},
	}
}

func TestNew_nilExecutor(t *testing.T) {
	_, err := New(context.Background(), validDefinition(), nil, Settings{})

	assert.ErrorIs(t, err, ErrConfig)
}

func TestNew_missingTable(t *testing.T) {
	def := validDefinition()
	def.Table = ""

	_, err := New(context.Background(), def, stubExecutor(t), Settings{})

	assert.ErrorIs(t, err, ErrConfig)
}

func TestNew_missingModifiableColumns(t *testing.T) {
	def := validDefinition()
	def.ModifiableColumns = nil

	_, err := New(context.Background(), def, stubExecutor(t), Settings{})

	assert.ErrorIs(t, err, ErrConfig)
}

func TestNew_primaryKeyListedAsModifiable(t *testing.T) {
	def := validDefinition()
	def.ModifiableColumns = []string{"id", "title"}

	_, err := New(context.Background(), def, stubExecutor(t), Settings{})

	assert.ErrorIs(t, err, ErrConfig)
}

func TestNew_auditColumnListedAsModifiable(t *testing.T) {
	def := validDefinition()
	def.ModifiableColumns = []string{"title", "created_by"}

	_, err := New(context.Background(), def, stubExecutor(t), Settings{})

	assert.ErrorIs(t, err, ErrConfig)
}

func TestNew_auditColumnModifiableWhenAuditDisabled(t *testing.T) {
	def := validDefinition()
	def.ModifiableColumns = []string{"title", "created_by"}
	def.OmitAuditColumns = true

	_, err := New(context.Background(), def, stubExecutor(t), Settings{})

	require.NoError(t, err)
}

func TestNew_defaultPrimaryKey(t *testing.T) {
	gw, err := New(context.Background(), validDefinition(), stubExecutor(t), Settings{})

	require.NoError(t, err)
	assert.Equal(t, "id", gw.def.primaryKey())
}

func TestNew_customPrimaryKey(t *testing.T) {
	def := validDefinition()
	def.PrimaryKey = "post_id"

	gw, err := New(context.Background(), def, stubExecutor(t), Settings{})

	require.NoError(t, err)
	assert.Equal(t, "post_id", gw.def.primaryKey())
}
