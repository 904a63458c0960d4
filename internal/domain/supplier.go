package domain

type Supplier struct {
	ID            uint
	Code          string
	Name          string
	Phone         *string
	Address       *string
	ContactPerson *string
	Notes         *string
}
