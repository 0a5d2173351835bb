package model

// Contact is a row of the contatos table.
type Contact struct {
	ID        int64  `json:"id" db:"id"`
	Instagram string `json:"instagram" db:"instagram"`
	Facebook  string `json:"facebook" db:"facebook"`
	Whatsapp  string `json:"whatsapp" db:"whatsapp"`
	Email     string `json:"email" db:"email"`
}

// ContactPatch carries the fields a PUT may change. Empty means "keep".
type ContactPatch struct {
	Instagram string
	Facebook  string
	Whatsapp  string
	Email     string
}

// Apply merges p into a copy of c.
func (c Contact) Apply(p ContactPatch) Contact {
	c.Instagram = pick(c.Instagram, p.Instagram)
	c.Facebook = pick(c.Facebook, p.Facebook)
	c.Whatsapp = pick(c.Whatsapp, p.Whatsapp)
	c.Email = pick(c.Email, p.Email)
	return c
}
