package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The uuid defaults in the column tags only apply on Postgres; the sqlite
// driver used in dev and tests gets its ids from these hooks.

func (u *User) BeforeCreate(*gorm.DB) error         { ensureID(&u.ID); return nil }
func (s *Store) BeforeCreate(*gorm.DB) error        { ensureID(&s.ID); return nil }
func (b *Billboard) BeforeCreate(*gorm.DB) error    { ensureID(&b.ID); return nil }
func (c *Category) BeforeCreate(*gorm.DB) error     { ensureID(&c.ID); return nil }
func (c *Color) BeforeCreate(*gorm.DB) error        { ensureID(&c.ID); return nil }
func (s *Size) BeforeCreate(*gorm.DB) error         { ensureID(&s.ID); return nil }
func (p *Product) BeforeCreate(*gorm.DB) error      { ensureID(&p.ID); return nil }
func (p *ProductImage) BeforeCreate(*gorm.DB) error { ensureID(&p.ID); return nil }
func (o *Order) BeforeCreate(*gorm.DB) error        { ensureID(&o.ID); return nil }
func (i *OrderItem) BeforeCreate(*gorm.DB) error    { ensureID(&i.ID); return nil }

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
