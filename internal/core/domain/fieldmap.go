package domain

import "sort"

// FieldCatalogVersion identifies the change-request field catalog below.
// Bump it whenever an entry is added or renamed so stored requests can be
// audited against the catalog they were created under.
const FieldCatalogVersion = 1

// FieldMapping binds a human-readable change-request field name to the
// account attribute it updates: the storage column for the transactional
// write and a reader for snapshotting the old value.
type FieldMapping struct {
	Column string
	Get    func(Account) string
}

// fieldCatalog is the fixed lookup table. Unknown names are rejected when a
// change request is created and re-checked at approval time; they are never
// silently dropped.
var fieldCatalog = map[string]FieldMapping{
	"Pekerjaan": {
		Column: "occupation",
		Get:    func(a Account) string { return a.Occupation },
	},
	"Agama": {
		Column: "religion",
		Get:    func(a Account) string { return a.Religion },
	},
	"Status Perkawinan": {
		Column: "marital_status",
		Get:    func(a Account) string { return a.MaritalStatus },
	},
	"Pendidikan": {
		Column: "education",
		Get:    func(a Account) string { return a.Education },
	},
	"No Telepon": {
		Column: "phone",
		Get:    func(a Account) string { return a.Phone },
	},
	"Alamat": {
		Column: "address",
		Get:    func(a Account) string { return a.Address },
	},
}

// LookupField resolves a change-request field name against the catalog.
func LookupField(name string) (FieldMapping, bool) {
	m, ok := fieldCatalog[name]
	return m, ok
}

// MappedFields returns the catalog's field names, sorted for stable display.
func MappedFields() []string {
	names := make([]string, 0, len(fieldCatalog))
	for name := range fieldCatalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
