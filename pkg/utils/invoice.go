package utils

import (
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const invoiceAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewInvoiceNumber gera um número de venda no formato VND-20240115-X7K2QW.
// O sufixo aleatório evita colisão entre caixas emitindo no mesmo instante.
func NewInvoiceNumber(t time.Time) (string, error) {
	suffix, err := gonanoid.Generate(invoiceAlphabet, 6)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("VND-%s-%s", t.Format("20060102"), suffix), nil
}
