package qrcode

import (
	"os"
	"path/filepath"

	qr "github.com/skip2/go-qrcode"
)

// Generator escribe el PNG del código escaneable en disco.
// El path resultante es parte del contrato de respuesta, así que el
// create espera a que el archivo exista (o falle) antes de responder.
type Generator struct {
	size int
}

func New() *Generator {
	return &Generator{size: 256}
}

func (g *Generator) Generate(content, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return qr.WriteFile(content, qr.Medium, g.size, path)
}
