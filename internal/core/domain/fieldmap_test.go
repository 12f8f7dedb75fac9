package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wargaku/rtrw_portal_app/internal/core/domain"
)

func TestLookupField(t *testing.T) {
	tests := []struct {
		name       string
		field      string
		wantColumn string
		wantOK     bool
	}{
		{name: "occupation", field: "Pekerjaan", wantColumn: "occupation", wantOK: true},
		{name: "religion", field: "Agama", wantColumn: "religion", wantOK: true},
		{name: "marital status", field: "Status Perkawinan", wantColumn: "marital_status", wantOK: true},
		{name: "education", field: "Pendidikan", wantColumn: "education", wantOK: true},
		{name: "phone", field: "No Telepon", wantColumn: "phone", wantOK: true},
		{name: "address", field: "Alamat", wantColumn: "address", wantOK: true},
		{name: "unknown field", field: "Golongan Darah", wantOK: false},
		{name: "case sensitive", field: "pekerjaan", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapping, ok := domain.LookupField(tt.field)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantColumn, mapping.Column)
			}
		})
	}
}

func TestFieldMapping_Accessors(t *testing.T) {
	account := domain.Account{Occupation: "Guru"}

	mapping, ok := domain.LookupField("Pekerjaan")
	require.True(t, ok)

	assert.Equal(t, "Guru", mapping.Get(account))
	assert.Equal(t, "occupation", mapping.Column)
}

func TestMappedFields_SortedAndComplete(t *testing.T) {
	fields := domain.MappedFields()

	require.Len(t, fields, 6)
	assert.IsIncreasing(t, fields)
	for _, name := range fields {
		_, ok := domain.LookupField(name)
		assert.True(t, ok, "field %q must resolve", name)
	}
}
