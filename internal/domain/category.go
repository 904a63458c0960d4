package domain

type ProductCategory struct {
	ID    uint
	Code  string
	Name  string
	Notes *string
}
