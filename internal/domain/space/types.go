package space

// ModerationStatus is set by the external moderation collaborator and
// consumed here as a search filter predicate.
type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "PENDING"
	ModerationApproved ModerationStatus = "APPROVED"
	ModerationRejected ModerationStatus = "REJECTED"
)

func (m ModerationStatus) String() string {
	return string(m)
}

func (m ModerationStatus) IsValid() bool {
	switch m {
	case ModerationPending, ModerationApproved, ModerationRejected:
		return true
	default:
		return false
	}
}

type Type string

const (
	TypeDriveway Type = "driveway"
	TypeGarage   Type = "garage"
	TypeLot      Type = "lot"
	TypeStreet   Type = "street"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeDriveway, TypeGarage, TypeLot, TypeStreet:
		return true
	default:
		return false
	}
}
