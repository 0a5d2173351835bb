package model

// Image is a row of the imagens table.
type Image struct {
	ID         int64  `json:"id" db:"id"`
	LinkImagem string `json:"link_imagem" db:"link_imagem"`
}

// ImagePatch carries the fields a PUT may change. Empty means "keep".
type ImagePatch struct {
	LinkImagem string
}

// Apply merges p into a copy of i.
func (i Image) Apply(p ImagePatch) Image {
	i.LinkImagem = pick(i.LinkImagem, p.LinkImagem)
	return i
}
