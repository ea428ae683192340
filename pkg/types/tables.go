package types

type Table string

func (t Table) Name() string {
	return string(t)
}

const (
	TABLE_ENTRY           Table = "memoir_entries"
	TABLE_ENTRY_IMAGE     Table = "memoir_entry_images"
	TABLE_USER            Table = "memoir_user"
	TABLE_ACCESS_TOKEN    Table = "memoir_access_token"
	TABLE_FILE_MANAGEMENT Table = "memoir_file_management"
	TABLE_ORPHAN_OBJECT   Table = "memoir_orphan_object"
)

const NO_PAGING uint64 = 0
