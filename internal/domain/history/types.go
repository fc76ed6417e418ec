package history

type EntryType string

const (
	EntryCreated   EntryType = "CREATED"
	EntryUpdated   EntryType = "UPDATED"
	EntryCancelled EntryType = "CANCELLED"
	EntryDeleted   EntryType = "DELETED"
)

func (t EntryType) Valid() bool {
	switch t {
	case EntryCreated, EntryUpdated, EntryCancelled, EntryDeleted:
		return true
	default:
		return false
	}
}
