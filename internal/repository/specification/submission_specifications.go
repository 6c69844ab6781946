package specification

import "gorm.io/gorm"

type ByScheme struct {
	Scheme string
}

func (s ByScheme) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("scheme = ?", s.Scheme)
}
