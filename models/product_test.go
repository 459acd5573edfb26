package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageFor(t *testing.T) {
	p := &Product{Images: []ProductImage{
		{Cor: "", URL: "/uploads/products/generic.jpg"},
		{Cor: "Azul", URL: "/uploads/products/azul.jpg"},
	}}

	assert.Equal(t, "/uploads/products/azul.jpg", p.ImageFor("Azul"))
	assert.Equal(t, "/uploads/products/azul.jpg", p.ImageFor(" azul "))
	assert.Equal(t, "/uploads/products/generic.jpg", p.ImageFor("Vermelho"))
	assert.Equal(t, "/uploads/products/generic.jpg", p.ImageFor(""))
}

func TestImageFor_NoImages(t *testing.T) {
	p := &Product{}
	assert.Empty(t, p.ImageFor("Azul"))

	var nilProduct *Product
	assert.Empty(t, nilProduct.ImageFor("Azul"))
}
